package auth

import (
	"context"
)

type AuthService interface {
	Signup(ctx context.Context, req SignupRequest) (TokenResponse, error)
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
	Logout(ctx context.Context, token string, expiresAt int64) error
	Me(ctx context.Context, employeeID string) (SessionEmployee, error)
	UpdateProfile(ctx context.Context, employeeID string, req UpdateProfileRequest) (SessionEmployee, error)
	UpdatePassword(ctx context.Context, employeeID string, req UpdatePasswordRequest) error
	UpdateEmail(ctx context.Context, employeeID string, req UpdateEmailRequest) (SessionEmployee, error)
}
