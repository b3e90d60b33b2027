package services

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/motoshop/motoshop/internal/core/domain"
	"github.com/motoshop/motoshop/internal/core/ports"
)

type PostService struct {
	postRepo    ports.PostRepository
	commentRepo ports.CommentRepository
	storage     ports.MediaStorage
	logger      ports.LoggerPort
	validate    *validator.Validate
}

func NewPostService(
	postRepo ports.PostRepository,
	commentRepo ports.CommentRepository,
	storage ports.MediaStorage,
	logger ports.LoggerPort,
	validate *validator.Validate,
) *PostService {
	return &PostService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		storage:     storage,
		logger:      logger,
		validate:    validate,
	}
}

func (s *PostService) CreatePost(ctx context.Context, post *domain.Post) (*domain.Post, error) {
	if err := s.validate.Struct(post); err != nil {
		s.logger.Error("Post validation failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	created, err := s.postRepo.CreatePost(ctx, post)
	if err != nil {
		s.logger.Error("Failed to create post", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}

	s.logger.Info("Post created successfully", map[string]interface{}{
		"post_id": created.ID,
	})
	return created, nil
}

func (s *PostService) GetPostByID(ctx context.Context, id int64) (*domain.Post, error) {
	post, err := s.postRepo.GetPostByID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to get post", map[string]interface{}{
			"error":   err.Error(),
			"post_id": id,
		})
		return nil, err
	}
	return post, nil
}

// GetPostWithComments attaches the post's comments, newest first.
func (s *PostService) GetPostWithComments(ctx context.Context, id int64) (*domain.Post, error) {
	post, err := s.GetPostByID(ctx, id)
	if err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.GetCommentsByPostID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to get comments", map[string]interface{}{
			"error":   err.Error(),
			"post_id": id,
		})
		return nil, fmt.Errorf("failed to get comments of post %d: %w", id, err)
	}
	post.Comments = comments
	return post, nil
}

func (s *PostService) ListPosts(ctx context.Context) ([]*domain.Post, error) {
	return s.postRepo.ListPosts(ctx)
}

func (s *PostService) UpdatePost(ctx context.Context, post *domain.Post) (*domain.Post, error) {
	if err := s.validate.Struct(post); err != nil {
		s.logger.Error("Post validation failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	updated, err := s.postRepo.UpdatePost(ctx, post)
	if err != nil {
		s.logger.Error("Failed to update post", map[string]interface{}{
			"error":   err.Error(),
			"post_id": post.ID,
		})
		return nil, err
	}
	return updated, nil
}

func (s *PostService) UpdateCover(ctx context.Context, id int64, upload *domain.Upload) (*domain.Post, error) {
	post, err := s.postRepo.GetPostByID(ctx, id)
	if err != nil {
		return nil, err
	}

	key, err := storeUpload(ctx, s.storage, domain.PostCoversDir, upload)
	if err != nil {
		return nil, err
	}

	previous := post.Cover
	post.Cover = key
	updated, err := s.UpdatePost(ctx, post)
	if err != nil {
		removeMedia(ctx, s.storage, s.logger, key)
		return nil, err
	}
	removeMedia(ctx, s.storage, s.logger, previous)
	return updated, nil
}

// DeletePost removes the post; its comments are deleted with it.
func (s *PostService) DeletePost(ctx context.Context, id int64) error {
	post, err := s.postRepo.GetPostByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.postRepo.DeletePost(ctx, id); err != nil {
		s.logger.Error("Failed to delete post", map[string]interface{}{
			"error":   err.Error(),
			"post_id": id,
		})
		return err
	}
	removeMedia(ctx, s.storage, s.logger, post.Cover)

	s.logger.Info("Post deleted successfully", map[string]interface{}{
		"post_id": id,
	})
	return nil
}

func (s *PostService) AddComment(ctx context.Context, comment *domain.Comment) (*domain.Comment, error) {
	if err := s.validate.Struct(comment); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if _, err := s.postRepo.GetPostByID(ctx, comment.PostID); err != nil {
		return nil, err
	}

	created, err := s.commentRepo.CreateComment(ctx, comment)
	if err != nil {
		s.logger.Error("Failed to create comment", map[string]interface{}{
			"error":   err.Error(),
			"post_id": comment.PostID,
		})
		return nil, err
	}

	s.logger.Info("Comment added", map[string]interface{}{
		"comment_id": created.ID,
		"post_id":    created.PostID,
	})
	return created, nil
}

func (s *PostService) GetCommentByID(ctx context.Context, id int64) (*domain.Comment, error) {
	return s.commentRepo.GetCommentByID(ctx, id)
}

func (s *PostService) GetComments(ctx context.Context, postID int64) ([]*domain.Comment, error) {
	return s.commentRepo.GetCommentsByPostID(ctx, postID)
}

func (s *PostService) ListComments(ctx context.Context) ([]*domain.Comment, error) {
	return s.commentRepo.ListComments(ctx)
}

func (s *PostService) DeleteComment(ctx context.Context, id int64) error {
	if err := s.commentRepo.DeleteComment(ctx, id); err != nil {
		s.logger.Error("Failed to delete comment", map[string]interface{}{
			"error":      err.Error(),
			"comment_id": id,
		})
		return err
	}
	return nil
}
