package attendance

import (
	"context"
	"time"
)

type AttendanceService interface {
	StartShift(ctx context.Context, req StartShiftRequest) (ShiftAttendance, error)
	EndShift(ctx context.Context, req EndShiftRequest) (ShiftAttendance, error)
	CurrentShift(ctx context.Context, employeeID, date string) (ShiftAttendance, error)

	GetAttendance(ctx context.Context, employeeID, date string) ([]Record, error)
	ListByDate(ctx context.Context, date string) ([]Record, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]Record, error)
	MarkAbsent(ctx context.Context, req MarkAbsentRequest) (Record, error)
	UpdateAttendance(ctx context.Context, req UpdateAttendanceRequest) (Record, error)

	GetReport(ctx context.Context, employeeID string, period Period) (AttendanceReport, error)
	// GetYearReport covers one calendar year; year 0 covers all records.
	GetYearReport(ctx context.Context, employeeID string, year int) (AttendanceReport, error)

	// Sweeps run by the scheduler.
	MarkMissedShifts(ctx context.Context) (int, error)
	CloseStaleShifts(ctx context.Context, grace time.Duration) (int, error)
}
