package bonus

import (
	"context"
	"time"
)

type AwardRepository interface {
	// Create fails with ErrBonusAlreadyApplied when the employee already has an award for the year.
	Create(ctx context.Context, a Award) (Award, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]Award, error)
	// ListPayable returns the employee's awards applied before the given time
	// that are unlinked or already linked to payrollItemID.
	ListPayable(ctx context.Context, employeeID string, before time.Time, payrollItemID string) ([]Award, error)
	LinkPayrollItem(ctx context.Context, awardIDs []string, payrollItemID string) error
}
