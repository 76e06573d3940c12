package bonus

import "errors"

var (
	ErrBonusAlreadyApplied = errors.New("bonus already applied for this employee and year")
	ErrNotEligible         = errors.New("employee is not eligible for a bonus")
)
