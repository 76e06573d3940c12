package bonus

import (
	"context"

	"github.com/bistrohq/staff-backend-go/internal/domain/attendance"
	"github.com/bistrohq/staff-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type BonusService interface {
	// CalculateEligibility counts approved leaves in year; year 0 counts all of them.
	CalculateEligibility(ctx context.Context, employeeID string, year int) (Eligibility, error)
	CalculateAmount(ctx context.Context, report attendance.AttendanceReport) (decimal.Decimal, error)
	EligibleEmployees(ctx context.Context, year int, employeeID string) ([]attendance.AttendanceReport, error)
	ApplyBonus(ctx context.Context, req ApplyBonusRequest) (Award, error)
	ListAwards(ctx context.Context, employeeID string) ([]Award, error)
}

type ApplyBonusRequest struct {
	EmployeeID string `json:"employeeId"`
	Year       int    `json:"year"`
	// Amount overrides the computed amount when set.
	Amount *decimal.Decimal `json:"amount,omitempty"`
}

func (r *ApplyBonusRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.EmployeeID) {
		errs.Add("employeeId", "employeeId is required")
	}
	if r.Year < 2000 || r.Year > 9999 {
		errs.Add("year", "year must be a four digit year")
	}
	if r.Amount != nil && r.Amount.IsNegative() {
		errs.Add("amount", "amount must not be negative")
	}
	return errs.Err()
}
