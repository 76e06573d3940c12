package bonus

import (
	"github.com/shopspring/decimal"
)

// MaxEligibleLeaves is the approved-leave count at which the bonus is lost.
const MaxEligibleLeaves = 5

// Eligibility is the bonus standing derived from approved leave usage.
type Eligibility struct {
	Eligible        bool `json:"eligible"`
	BonusPercentage int  `json:"bonusPercentage"`
	LeavesUsed      int  `json:"leavesUsed"`
}

// Evaluate applies the leave ladder: 0-1 leaves 7%, 2 leaves 5%, 3-4 leaves 3%, 5 or more nothing.
func Evaluate(leavesUsed int) Eligibility {
	pct := 0
	switch {
	case leavesUsed < 2:
		pct = 7
	case leavesUsed < 3:
		pct = 5
	case leavesUsed < MaxEligibleLeaves:
		pct = 3
	}
	return Eligibility{
		Eligible:        leavesUsed < MaxEligibleLeaves,
		BonusPercentage: pct,
		LeavesUsed:      leavesUsed,
	}
}

// Amount is hourlyRate * monthlyHours * pct/100, rounded to cents.
func Amount(hourlyRate decimal.Decimal, monthlyHours int, pct int) decimal.Decimal {
	if pct <= 0 || hourlyRate.IsNegative() {
		return decimal.Zero
	}
	return hourlyRate.
		Mul(decimal.NewFromInt(int64(monthlyHours))).
		Mul(decimal.NewFromInt(int64(pct))).
		Div(decimal.NewFromInt(100)).
		Round(2)
}
