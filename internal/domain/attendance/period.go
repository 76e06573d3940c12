package attendance

import (
	"time"

	"github.com/bistrohq/staff-backend-go/internal/pkg/validator"
)

type Period string

const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
	PeriodAll   Period = "all"
)

func ParsePeriod(s string) (Period, error) {
	switch p := Period(s); p {
	case "":
		return PeriodAll, nil
	case PeriodWeek, PeriodMonth, PeriodYear, PeriodAll:
		return p, nil
	}
	return "", ErrInvalidPeriod
}

// Window returns the inclusive date bounds of the period containing now.
// Weeks start on Monday. PeriodAll is unbounded and returns empty strings.
func (p Period) Window(now time.Time) (from, to string) {
	y, m, d := now.Date()
	loc := now.Location()

	var start, end time.Time
	switch p {
	case PeriodWeek:
		offset := (int(now.Weekday()) + 6) % 7
		start = time.Date(y, m, d-offset, 0, 0, 0, 0, loc)
		end = start.AddDate(0, 0, 6)
	case PeriodMonth:
		start = time.Date(y, m, 1, 0, 0, 0, 0, loc)
		end = start.AddDate(0, 1, -1)
	case PeriodYear:
		start = time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
		end = time.Date(y, time.December, 31, 0, 0, 0, 0, loc)
	default:
		return "", ""
	}
	return start.Format(validator.DateLayout), end.Format(validator.DateLayout)
}

// YearWindow returns the date bounds of a calendar year; year 0 is unbounded.
func YearWindow(year int) (from, to string) {
	if year == 0 {
		return "", ""
	}
	return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC).Format(validator.DateLayout),
		time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC).Format(validator.DateLayout)
}
