package domain

import (
	"github.com/google/uuid"
)

type UserRole string

const (
	Admin   UserRole = "admin"
	AppUser UserRole = "appuser"
)

type TokenPayload struct {
	ID     uuid.UUID
	UserID int64
	Role   UserRole
}

func (p *TokenPayload) IsAdmin() bool {
	return p.Role == Admin
}
