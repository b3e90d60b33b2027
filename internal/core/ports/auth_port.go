package ports

import "github.com/motoshop/motoshop/internal/core/domain"

type TokenService interface {
	CreateToken(user *domain.User) (string, *domain.TokenPayload, error)
	VerifyToken(token string) (*domain.TokenPayload, error)
}
