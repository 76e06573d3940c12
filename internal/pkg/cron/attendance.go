package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bistrohq/staff-backend-go/internal/domain/attendance"
)

// AttendanceJobs sweeps shifts nobody clocked into and sessions nobody closed.
type AttendanceJobs struct {
	attendanceService attendance.AttendanceService
	grace             time.Duration
}

func NewAttendanceJobs(attendanceService attendance.AttendanceService, grace time.Duration) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceService: attendanceService,
		grace:             grace,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob("mark_missed_shifts", interval, j.MarkMissedShifts)
	scheduler.AddJob("close_stale_shifts", interval, j.CloseStaleShifts)
}

func (j *AttendanceJobs) MarkMissedShifts(ctx context.Context) error {
	n, err := j.attendanceService.MarkMissedShifts(ctx)
	if err != nil {
		return fmt.Errorf("failed to mark missed shifts: %w", err)
	}
	if n > 0 {
		slog.Info("Cron: marked missed shifts", "count", n)
	}
	return nil
}

func (j *AttendanceJobs) CloseStaleShifts(ctx context.Context) error {
	n, err := j.attendanceService.CloseStaleShifts(ctx, j.grace)
	if err != nil {
		return fmt.Errorf("failed to close stale shifts: %w", err)
	}
	if n > 0 {
		slog.Info("Cron: auto-closed stale shifts", "count", n, "grace", j.grace)
	}
	return nil
}
