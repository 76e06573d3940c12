package attendance

import (
	"time"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusStarted   Status = "started"
	StatusCompleted Status = "completed"
	StatusAbsent    Status = "absent"
)

// Record is the single attendance entity. Records created by clock-in carry
// the shift they belong to; imported or manually marked rows may not.
type Record struct {
	ID                string     `json:"id"`
	EmployeeID        string     `json:"employeeId"`
	ShiftID           *string    `json:"shiftId,omitempty"`
	Date              string     `json:"date"`
	StartTime         *time.Time `json:"startTime,omitempty"`
	EndTime           *time.Time `json:"endTime,omitempty"`
	Duration          *float64   `json:"duration,omitempty"` // hours
	Status            Status     `json:"status"`
	Notes             string     `json:"notes,omitempty"`
	IsLate            bool       `json:"isLate"`
	LateMinutes       int        `json:"lateMinutes"`
	Overtime          int        `json:"overtime"` // minutes
	EarlyLeaveMinutes int        `json:"earlyLeaveMinutes"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

func (r Record) Hours() float64 {
	if r.Duration == nil {
		return 0
	}
	return *r.Duration
}

// DurationHours is the unrounded length of [start, end] in hours.
func DurationHours(start, end time.Time) float64 {
	return end.Sub(start).Hours()
}

// MinutesBetween floors the positive gap from a to b in whole minutes, 0 if b is not after a.
func MinutesBetween(a, b time.Time) int {
	if !b.After(a) {
		return 0
	}
	return int(b.Sub(a) / time.Minute)
}
