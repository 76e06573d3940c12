package attendance

import "errors"

// Attendance domain errors
var (
	// Clock-in/out transitions
	ErrAlreadyStarted   = errors.New("shift has already been started")
	ErrAlreadyCompleted = errors.New("shift has already been completed")
	ErrShiftNotStarted  = errors.New("shift has not been started")
	ErrShiftMissed      = errors.New("shift was marked as missed")
	ErrNoOpenShift      = errors.New("no shift in progress")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrInvalidPeriod      = errors.New("period must be week, month, year or all")
)
