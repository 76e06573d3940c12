package bonus

import (
	"time"

	"github.com/shopspring/decimal"
)

// Award is an applied bonus. There is at most one per employee and year.
// PayrollItemID is set once the award is counted in a payroll item.
type Award struct {
	ID            string          `json:"id"`
	EmployeeID    string          `json:"employeeId"`
	Year          int             `json:"year"`
	Percentage    int             `json:"percentage"`
	Amount        decimal.Decimal `json:"amount"`
	AppliedAt     time.Time       `json:"appliedAt"`
	PayrollItemID *string         `json:"payrollItemId"`
}
