package shift

import (
	"fmt"
	"time"

	"github.com/bistrohq/staff-backend-go/internal/pkg/validator"
)

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusStarted   Status = "started"
	StatusCompleted Status = "completed"
	StatusMissed    Status = "missed"
)

// Shift is a scheduled block of work. Actual clock-in/out lives on the
// attendance record keyed by the shift ID.
type Shift struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employeeId"`
	Day        string    `json:"day"`
	Date       string    `json:"date"`
	StartTime  string    `json:"startTime"`
	EndTime    string    `json:"endTime"`
	Type       string    `json:"type"`
	Status     Status    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Window resolves the scheduled start and end in loc. An end at or before
// the start falls on the next calendar day.
func (s Shift) Window(loc *time.Location) (start, end time.Time, err error) {
	start, err = time.ParseInLocation(validator.DateLayout+" "+validator.ClockLayout, s.Date+" "+s.StartTime, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parse shift start: %w", err)
	}
	end, err = time.ParseInLocation(validator.DateLayout+" "+validator.ClockLayout, s.Date+" "+s.EndTime, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parse shift end: %w", err)
	}
	if !end.After(start) {
		end = end.AddDate(0, 0, 1)
	}
	return start, end, nil
}

// Overlaps reports whether two shifts of the same employee share any time.
func (s Shift) Overlaps(other Shift) bool {
	if s.EmployeeID != other.EmployeeID {
		return false
	}
	aStart, aEnd, err := s.Window(time.UTC)
	if err != nil {
		return false
	}
	bStart, bEnd, err := other.Window(time.UTC)
	if err != nil {
		return false
	}
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// DayName returns the weekday name of an ISO date, or "" when unparsable.
func DayName(date string) string {
	t, ok := validator.IsValidDate(date)
	if !ok {
		return ""
	}
	return t.Weekday().String()
}
