package ports

import (
	"context"

	"github.com/motoshop/motoshop/internal/core/domain"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *domain.User) (*domain.User, error)
	GetUserByID(ctx context.Context, id int64) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
	ListUsersWithPhoto(ctx context.Context) ([]*domain.User, error)
	UpdateUser(ctx context.Context, user *domain.User) (*domain.User, error)
	SetLastLogin(ctx context.Context, id int64) error
	DeleteUser(ctx context.Context, id int64) error
}
