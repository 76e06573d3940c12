package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayrollStatus enum
type PayrollStatus string

const (
	PayrollStatusDraft     PayrollStatus = "draft"
	PayrollStatusProcessed PayrollStatus = "processed"
	PayrollStatusPaid      PayrollStatus = "paid"
)

// CanTransition allows draft -> processed -> paid only.
func (s PayrollStatus) CanTransition(to PayrollStatus) bool {
	switch s {
	case PayrollStatusDraft:
		return to == PayrollStatusProcessed
	case PayrollStatusProcessed:
		return to == PayrollStatusPaid
	}
	return false
}

// PayrollItem is one employee's pay for one period.
type PayrollItem struct {
	ID            string          `json:"id"`
	EmployeeID    string          `json:"employeeId"`
	PeriodStart   string          `json:"periodStart"`
	PeriodEnd     string          `json:"periodEnd"`
	RegularHours  decimal.Decimal `json:"regularHours"`
	OvertimeHours decimal.Decimal `json:"overtimeHours"`
	RegularPay    decimal.Decimal `json:"regularPay"`
	OvertimePay   decimal.Decimal `json:"overtimePay"`
	BonusPay      decimal.Decimal `json:"bonusPay"`
	Deductions    decimal.Decimal `json:"deductions"`
	TotalPay      decimal.Decimal `json:"totalPay"`
	LateMinutes   int             `json:"lateMinutes"`
	Status        PayrollStatus   `json:"status"`
	ProcessedDate *time.Time      `json:"processedDate,omitempty"`
	PaidDate      *time.Time      `json:"paidDate,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}
