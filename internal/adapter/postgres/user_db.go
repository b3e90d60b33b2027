package postgres

import (
	"context"
	"database/sql"

	"github.com/motoshop/motoshop/internal/core/domain"
)

const userColumns = `id, username, password_hash, first_name, last_name, email,
	is_staff, is_active, date_joined, last_login, photo`

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	user := &domain.User{}
	var lastLogin sql.NullTime
	var photo sql.NullString
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.IsStaff,
		&user.IsActive,
		&user.DateJoined,
		&lastLogin,
		&photo,
	)
	if err != nil {
		return nil, err
	}
	user.LastLogin = lastLogin.Time
	user.Photo = photo.String
	return user, nil
}

func (r *UserRepository) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `INSERT INTO users (username, password_hash, first_name, last_name, email, is_staff, is_active, photo)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, date_joined`

	err := r.db.QueryRowContext(ctx, query,
		user.Username,
		user.PasswordHash,
		user.FirstName,
		user.LastName,
		user.Email,
		user.IsStaff,
		user.IsActive,
		nullString(user.Photo),
	).Scan(&user.ID, &user.DateJoined)
	if err != nil {
		return nil, translateError(err, "user")
	}
	return user, nil
}

func (r *UserRepository) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, translateError(err, "user")
	}
	return user, nil
}

func (r *UserRepository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, username))
	if err != nil {
		return nil, translateError(err, "user")
	}
	return user, nil
}

func (r *UserRepository) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return r.list(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
}

func (r *UserRepository) ListUsersWithPhoto(ctx context.Context) ([]*domain.User, error) {
	return r.list(ctx, `SELECT `+userColumns+` FROM users WHERE photo IS NOT NULL AND photo <> '' ORDER BY id`)
}

func (r *UserRepository) list(ctx context.Context, query string) ([]*domain.User, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) UpdateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `UPDATE users
		SET
			username = $1,
			password_hash = $2,
			first_name = $3,
			last_name = $4,
			email = $5,
			is_staff = $6,
			is_active = $7,
			photo = $8
		WHERE id = $9
		RETURNING ` + userColumns

	updated, err := scanUser(r.db.QueryRowContext(ctx, query,
		user.Username,
		user.PasswordHash,
		user.FirstName,
		user.LastName,
		user.Email,
		user.IsStaff,
		user.IsActive,
		nullString(user.Photo),
		user.ID,
	))
	if err != nil {
		return nil, translateError(err, "user")
	}
	return updated, nil
}

func (r *UserRepository) SetLastLogin(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `UPDATE users SET last_login = CURRENT_TIMESTAMP WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffected(result, "user")
}

// DeleteUser removes the account. PostgreSQL deletes the user's comments and
// clears the author of their posts; orders are left untouched.
func (r *UserRepository) DeleteUser(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffected(result, "user")
}
