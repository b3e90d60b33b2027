package domain

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("validation error")
	ErrConstraint         = errors.New("constraint violation")
	ErrConflict           = errors.New("already exists")
	ErrUnauthorized       = errors.New("invalid credentials")
	ErrForbidden          = errors.New("access denied")
	ErrPhotoNormalization = errors.New("photo normalization failed")
	ErrUnsupportedMedia   = errors.New("unsupported media type")
)
