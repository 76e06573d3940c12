package employee

import (
	"strings"
	"time"

	"github.com/bistrohq/staff-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type EmployeeFilter struct {
	Role *Role
}

type EmployeeResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	Role         Role            `json:"role"`
	JobType      string          `json:"jobType"`
	HourlyRate   decimal.Decimal `json:"hourlyRate"`
	ProfileImage *string         `json:"profileImage,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

func ToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:           e.ID,
		Name:         e.Name,
		Email:        e.Email,
		Role:         e.Role,
		JobType:      e.JobType,
		HourlyRate:   e.HourlyRate,
		ProfileImage: e.ProfileImage,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

// NormalizeEmail is the canonical form used for uniqueness checks.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type CreateEmployeeRequest struct {
	Name         string           `json:"name"`
	Email        string           `json:"email"`
	Role         Role             `json:"role"`
	JobType      string           `json:"jobType"`
	HourlyRate   *decimal.Decimal `json:"hourlyRate,omitempty"`
	ProfileImage *string          `json:"profileImage,omitempty"`
	// Password falls back to the configured default when empty.
	Password string `json:"password,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs.Add("name", "name is required")
	}
	if validator.IsEmpty(r.Email) {
		errs.Add("email", "email is required")
	} else if !validator.IsValidEmail(strings.TrimSpace(r.Email)) {
		errs.Add("email", "email must be a valid email address")
	}
	if r.Role == "" {
		r.Role = RoleEmployee
	}
	if !r.Role.IsValid() {
		errs.Add("role", "role must be admin or employee")
	}
	if r.HourlyRate != nil && r.HourlyRate.IsNegative() {
		errs.Add("hourlyRate", "hourlyRate must not be negative")
	}
	if r.Password != "" && len(r.Password) < 6 {
		errs.Add("password", "password must be at least 6 characters")
	}

	return errs.Err()
}

type UpdateEmployeeRequest struct {
	ID           string           `json:"-"`
	Name         *string          `json:"name,omitempty"`
	Email        *string          `json:"email,omitempty"`
	Role         *Role            `json:"role,omitempty"`
	JobType      *string          `json:"jobType,omitempty"`
	HourlyRate   *decimal.Decimal `json:"hourlyRate,omitempty"`
	ProfileImage *string          `json:"profileImage,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs.Add("id", "id is required")
	}
	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs.Add("name", "name must not be empty")
	}
	if r.Email != nil && !validator.IsValidEmail(strings.TrimSpace(*r.Email)) {
		errs.Add("email", "email must be a valid email address")
	}
	if r.Role != nil && !r.Role.IsValid() {
		errs.Add("role", "role must be admin or employee")
	}
	if r.HourlyRate != nil && r.HourlyRate.IsNegative() {
		errs.Add("hourlyRate", "hourlyRate must not be negative")
	}

	return errs.Err()
}

// Apply copies the set fields onto e.
func (r UpdateEmployeeRequest) Apply(e *Employee) {
	if r.Name != nil {
		e.Name = strings.TrimSpace(*r.Name)
	}
	if r.Email != nil {
		e.Email = strings.TrimSpace(*r.Email)
	}
	if r.Role != nil {
		e.Role = *r.Role
	}
	if r.JobType != nil {
		e.JobType = *r.JobType
	}
	if r.HourlyRate != nil {
		e.HourlyRate = *r.HourlyRate
	}
	if r.ProfileImage != nil {
		e.ProfileImage = r.ProfileImage
	}
}

type UpdateProfileImageRequest struct {
	ImageData string `json:"imageData"`
}

func (r *UpdateProfileImageRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.ImageData) {
		errs.Add("imageData", "imageData is required")
	}
	return errs.Err()
}
