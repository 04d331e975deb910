package author

import "errors"

// Repository-level errors
var (
	ErrAuthorNotFound     = errors.New("author not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// Service-level errors
var (
	ErrInvalidPassword = errors.New("invalid password")
	// ErrForbidden is returned when the acting author is not the
	// target of a self-only operation (profile update, delete).
	ErrForbidden = errors.New("you do not have permission to modify this profile")
)
