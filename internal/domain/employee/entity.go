package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	Role         Role            `json:"role"`
	JobType      string          `json:"jobType"`
	HourlyRate   decimal.Decimal `json:"hourlyRate"`
	ProfileImage *string         `json:"profileImage,omitempty"`
	PasswordHash string          `json:"passwordHash"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleEmployee
}

func (e Employee) IsAdmin() bool {
	return e.Role == RoleAdmin
}
