package ports

import (
	"context"

	"github.com/motoshop/motoshop/internal/core/domain"
)

type PostRepository interface {
	CreatePost(ctx context.Context, post *domain.Post) (*domain.Post, error)
	GetPostByID(ctx context.Context, id int64) (*domain.Post, error)
	ListPosts(ctx context.Context) ([]*domain.Post, error)
	UpdatePost(ctx context.Context, post *domain.Post) (*domain.Post, error)
	DeletePost(ctx context.Context, id int64) error
}

// CommentRepository returns comments newest first.
type CommentRepository interface {
	CreateComment(ctx context.Context, comment *domain.Comment) (*domain.Comment, error)
	GetCommentByID(ctx context.Context, id int64) (*domain.Comment, error)
	GetCommentsByPostID(ctx context.Context, postID int64) ([]*domain.Comment, error)
	ListComments(ctx context.Context) ([]*domain.Comment, error)
	DeleteComment(ctx context.Context, id int64) error
}
