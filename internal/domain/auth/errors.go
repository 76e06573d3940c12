package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("Invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrIncorrectPassword  = errors.New("current password is incorrect")
)

var (
	ErrAdminRequired = errors.New("admin privileges required")
	ErrForbidden     = errors.New("you can only access your own records")
)
