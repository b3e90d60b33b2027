package postgres

import (
	"context"
	"database/sql"

	"github.com/motoshop/motoshop/internal/core/domain"
)

const commentColumns = `id, post_id, content, author_id, created`

type CommentRepository struct {
	db *sql.DB
}

func NewCommentRepository(db *sql.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func scanComment(row rowScanner) (*domain.Comment, error) {
	comment := &domain.Comment{}
	err := row.Scan(
		&comment.ID,
		&comment.PostID,
		&comment.Content,
		&comment.AuthorID,
		&comment.Created,
	)
	if err != nil {
		return nil, err
	}
	return comment, nil
}

func (r *CommentRepository) CreateComment(ctx context.Context, comment *domain.Comment) (*domain.Comment, error) {
	query := `INSERT INTO comments (post_id, content, author_id)
		VALUES ($1, $2, $3)
		RETURNING ` + commentColumns

	created, err := scanComment(r.db.QueryRowContext(ctx, query,
		comment.PostID,
		comment.Content,
		comment.AuthorID,
	))
	if err != nil {
		return nil, translateError(err, "comment")
	}
	return created, nil
}

func (r *CommentRepository) GetCommentByID(ctx context.Context, id int64) (*domain.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE id = $1`

	comment, err := scanComment(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, translateError(err, "comment")
	}
	return comment, nil
}

func (r *CommentRepository) GetCommentsByPostID(ctx context.Context, postID int64) ([]*domain.Comment, error) {
	return r.list(ctx, `SELECT `+commentColumns+` FROM comments WHERE post_id = $1 ORDER BY id DESC`, postID)
}

func (r *CommentRepository) ListComments(ctx context.Context) ([]*domain.Comment, error) {
	return r.list(ctx, `SELECT `+commentColumns+` FROM comments ORDER BY id DESC`)
}

func (r *CommentRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Comment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []*domain.Comment
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *CommentRepository) DeleteComment(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffected(result, "comment")
}
