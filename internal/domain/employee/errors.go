package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrEmailInUse       = errors.New("Email already in use")
	ErrInvalidRole      = errors.New("role must be admin or employee")
)
