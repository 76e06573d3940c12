package payroll

import (
	"time"

	"github.com/bistrohq/staff-backend-go/internal/pkg/validator"
)

type PayrollFilter struct {
	PeriodStart string
	EmployeeID  string
	Status      *PayrollStatus
}

func (f PayrollFilter) Match(p PayrollItem) bool {
	if f.PeriodStart != "" && p.PeriodStart != f.PeriodStart {
		return false
	}
	if f.EmployeeID != "" && p.EmployeeID != f.EmployeeID {
		return false
	}
	if f.Status != nil && p.Status != *f.Status {
		return false
	}
	return true
}

type GeneratePayrollRequest struct {
	Month string `json:"month"` // YYYY-MM

	periodStart time.Time
}

func (r *GeneratePayrollRequest) Validate() error {
	var errs validator.ValidationErrors
	t, ok := validator.IsValidMonth(r.Month)
	if !ok {
		errs.Add("month", "month must be YYYY-MM")
	}
	r.periodStart = t
	return errs.Err()
}

// Period returns the first and last day of the requested month. Validate must have been called first.
func (r GeneratePayrollRequest) Period() (start, end time.Time) {
	return r.periodStart, r.periodStart.AddDate(0, 1, -1)
}

// MonthBounds parses "YYYY-MM" into the first day of the month.
func MonthBounds(month string) (string, error) {
	t, ok := validator.IsValidMonth(month)
	if !ok {
		return "", ErrInvalidPeriod
	}
	return t.Format(validator.DateLayout), nil
}
