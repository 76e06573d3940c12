package report

import (
	"context"

	"github.com/bistrohq/staff-backend-go/internal/domain/attendance"
)

type ReportService interface {
	Summary(ctx context.Context, period attendance.Period) (Summary, error)
	EmployeeReports(ctx context.Context, period attendance.Period) ([]attendance.AttendanceReport, error)
	// ExportAttendance renders EmployeeReports as an xlsx workbook.
	ExportAttendance(ctx context.Context, period attendance.Period) ([]byte, error)
}
