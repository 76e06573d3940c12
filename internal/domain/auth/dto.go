package auth

import (
	"strings"

	"github.com/bistrohq/staff-backend-go/internal/domain/employee"
	"github.com/bistrohq/staff-backend-go/internal/pkg/validator"
)

const minPasswordLength = 6

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	JobType  string `json:"jobType"`
}

func (r *SignupRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs.Add("name", "name is required")
	}

	// Email
	if validator.IsEmpty(r.Email) {
		errs.Add("email", "email is required")
	} else if !validator.IsValidEmail(strings.TrimSpace(r.Email)) {
		errs.Add("email", "email must be a valid email address")
	}

	// Password
	if len(r.Password) < minPasswordLength {
		errs.Add("password", "password must be at least 6 characters long")
	}

	return errs.Err()
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Email) {
		errs.Add("email", "email is required")
	}
	if validator.IsEmpty(r.Password) {
		errs.Add("password", "password is required")
	}

	return errs.Err()
}

// UpdateProfileRequest is the self-service profile edit. Role and rate stay admin-only.
type UpdateProfileRequest struct {
	Name         *string `json:"name,omitempty"`
	JobType      *string `json:"jobType,omitempty"`
	ProfileImage *string `json:"profileImage,omitempty"`
}

func (r *UpdateProfileRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs.Add("name", "name must not be empty")
	}
	return errs.Err()
}

type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (r *UpdatePasswordRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.CurrentPassword) {
		errs.Add("currentPassword", "currentPassword is required")
	}
	if len(r.NewPassword) < minPasswordLength {
		errs.Add("newPassword", "newPassword must be at least 6 characters long")
	}
	return errs.Err()
}

type UpdateEmailRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *UpdateEmailRequest) Validate() error {
	var errs validator.ValidationErrors
	if !validator.IsValidEmail(strings.TrimSpace(r.Email)) {
		errs.Add("email", "email must be a valid email address")
	}
	if validator.IsEmpty(r.Password) {
		errs.Add("password", "password is required")
	}
	return errs.Err()
}

// SessionEmployee is the logged-in employee returned with every session.
type SessionEmployee = employee.EmployeeResponse

type TokenResponse struct {
	AccessToken          string          `json:"accessToken"`
	AccessTokenExpiresAt int64           `json:"accessTokenExpiresAt"`
	Employee             SessionEmployee `json:"employee"`
}
