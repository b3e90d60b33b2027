package postgres

import (
	"context"
	"database/sql"

	"github.com/motoshop/motoshop/internal/core/domain"
)

const postColumns = `id, title, content, author_id, created, cover`

type PostRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) *PostRepository {
	return &PostRepository{db: db}
}

func scanPost(row rowScanner) (*domain.Post, error) {
	post := &domain.Post{}
	var author sql.NullInt64
	var cover sql.NullString
	err := row.Scan(
		&post.ID,
		&post.Title,
		&post.Content,
		&author,
		&post.Created,
		&cover,
	)
	if err != nil {
		return nil, err
	}
	if author.Valid {
		id := author.Int64
		post.AuthorID = &id
	}
	post.Cover = cover.String
	return post, nil
}

func (r *PostRepository) CreatePost(ctx context.Context, post *domain.Post) (*domain.Post, error) {
	query := `INSERT INTO posts (title, content, author_id, cover)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + postColumns

	created, err := scanPost(r.db.QueryRowContext(ctx, query,
		post.Title,
		post.Content,
		nullInt64(post.AuthorID),
		nullString(post.Cover),
	))
	if err != nil {
		return nil, translateError(err, "post")
	}
	return created, nil
}

func (r *PostRepository) GetPostByID(ctx context.Context, id int64) (*domain.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`

	post, err := scanPost(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, translateError(err, "post")
	}
	return post, nil
}

func (r *PostRepository) ListPosts(ctx context.Context) ([]*domain.Post, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+postColumns+` FROM posts ORDER BY created DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []*domain.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return posts, nil
}

// UpdatePost rewrites title, content, author and cover; created is kept.
func (r *PostRepository) UpdatePost(ctx context.Context, post *domain.Post) (*domain.Post, error) {
	query := `UPDATE posts
		SET
			title = $1,
			content = $2,
			author_id = $3,
			cover = $4
		WHERE id = $5
		RETURNING ` + postColumns

	updated, err := scanPost(r.db.QueryRowContext(ctx, query,
		post.Title,
		post.Content,
		nullInt64(post.AuthorID),
		nullString(post.Cover),
		post.ID,
	))
	if err != nil {
		return nil, translateError(err, "post")
	}
	return updated, nil
}

// DeletePost removes the post together with its comments.
func (r *PostRepository) DeletePost(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffected(result, "post")
}
