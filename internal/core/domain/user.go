package domain

import "time"

// Media buckets for uploaded images.
const (
	ProfilePicsDir   = "profile_pics"
	ProductCoversDir = "product_covers"
	PostCoversDir    = "posts_covers"
)

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username" validate:"required,max=150"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"first_name" validate:"max=150"`
	LastName     string    `json:"last_name" validate:"max=150"`
	Email        string    `json:"email" validate:"omitempty,email,max=254"`
	IsStaff      bool      `json:"is_staff"`
	IsActive     bool      `json:"is_active"`
	DateJoined   time.Time `json:"date_joined"`
	LastLogin    time.Time `json:"last_login,omitempty"`
	// Photo is the storage key of the profile picture, empty when none.
	Photo string `json:"photo,omitempty" validate:"max=100"`
}

func (u *User) HasPhoto() bool {
	return u.Photo != ""
}

func (u *User) Role() UserRole {
	if u.IsStaff {
		return Admin
	}
	return AppUser
}

func (u *User) String() string {
	return u.Username
}
