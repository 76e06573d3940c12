package payroll

import "errors"

var (
	ErrPayrollItemNotFound      = errors.New("payroll item not found")
	ErrInvalidPayrollTransition = errors.New("payroll item cannot move to that status")
	ErrInvalidPeriod            = errors.New("invalid payroll period")
)
