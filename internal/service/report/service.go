package report

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/bistrohq/staff-backend-go/internal/domain/attendance"
	"github.com/bistrohq/staff-backend-go/internal/domain/employee"
	"github.com/bistrohq/staff-backend-go/internal/domain/leave"
	"github.com/bistrohq/staff-backend-go/internal/domain/report"
	"github.com/bistrohq/staff-backend-go/internal/pkg/clock"
	"github.com/bistrohq/staff-backend-go/internal/pkg/export"
	"github.com/bistrohq/staff-backend-go/internal/pkg/validator"
)

type ReportServiceImpl struct {
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendance.AttendanceRepository
	leaveRepo      leave.LeaveRequestRepository
	attendanceSvc  attendance.AttendanceService
	clock          clock.Clock
	location       *time.Location
}

func NewReportService(
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	leaveRepo leave.LeaveRequestRepository,
	attendanceSvc attendance.AttendanceService,
	clk clock.Clock,
	location *time.Location,
) report.ReportService {
	if location == nil {
		location = time.UTC
	}
	return &ReportServiceImpl{
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		leaveRepo:      leaveRepo,
		attendanceSvc:  attendanceSvc,
		clock:          clk,
		location:       location,
	}
}

func (s *ReportServiceImpl) staff(ctx context.Context) ([]employee.Employee, error) {
	role := employee.RoleEmployee
	staff, err := s.employeeRepo.List(ctx, employee.EmployeeFilter{Role: &role})
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return staff, nil
}

// Summary implements report.ReportService. Today's counts are distinct
// employees; the rate and average cover every staff record in the period.
func (s *ReportServiceImpl) Summary(ctx context.Context, period attendance.Period) (report.Summary, error) {
	period, err := attendance.ParsePeriod(string(period))
	if err != nil {
		return report.Summary{}, err
	}
	staff, err := s.staff(ctx)
	if err != nil {
		return report.Summary{}, err
	}
	isStaff := make(map[string]bool, len(staff))
	for _, e := range staff {
		isStaff[e.ID] = true
	}

	now := s.clock.Now().In(s.location)
	today := now.Format(validator.DateLayout)
	sum := report.Summary{Date: today, Period: period, TotalEmployees: len(staff)}

	todays, err := s.attendanceRepo.List(ctx, attendance.RecordFilter{Date: today})
	if err != nil {
		return report.Summary{}, fmt.Errorf("failed to list attendance: %w", err)
	}
	present, absent := map[string]bool{}, map[string]bool{}
	for _, rec := range todays {
		if !isStaff[rec.EmployeeID] {
			continue
		}
		switch rec.Status {
		case attendance.StatusStarted, attendance.StatusCompleted:
			present[rec.EmployeeID] = true
		case attendance.StatusAbsent:
			absent[rec.EmployeeID] = true
		}
	}
	sum.PresentToday = len(present)
	sum.AbsentToday = len(absent)

	approved := leave.LeaveRequestStatusApproved
	leaves, err := s.leaveRepo.List(ctx, leave.LeaveFilter{Status: &approved})
	if err != nil {
		return report.Summary{}, fmt.Errorf("failed to list leave requests: %w", err)
	}
	onLeave := map[string]bool{}
	for _, l := range leaves {
		if isStaff[l.EmployeeID] && l.StartDate <= today && today <= l.EndDate {
			onLeave[l.EmployeeID] = true
		}
	}
	sum.OnLeaveToday = len(onLeave)

	from, to := period.Window(now)
	records, err := s.attendanceRepo.List(ctx, attendance.RecordFilter{From: from, To: to})
	if err != nil {
		return report.Summary{}, fmt.Errorf("failed to list attendance: %w", err)
	}
	var total, attended int
	var hours float64
	for _, rec := range records {
		if !isStaff[rec.EmployeeID] {
			continue
		}
		total++
		if rec.Status == attendance.StatusCompleted {
			attended++
			hours += rec.Hours()
		}
	}
	sum.AttendanceRate = attendance.AttendanceRate(attended, total)
	if attended > 0 {
		sum.AverageHoursWorked = math.Round(hours/float64(attended)*100) / 100
	}
	return sum, nil
}

// EmployeeReports implements report.ReportService.
func (s *ReportServiceImpl) EmployeeReports(ctx context.Context, period attendance.Period) ([]attendance.AttendanceReport, error) {
	period, err := attendance.ParsePeriod(string(period))
	if err != nil {
		return nil, err
	}
	staff, err := s.staff(ctx)
	if err != nil {
		return nil, err
	}

	reports := make([]attendance.AttendanceReport, 0, len(staff))
	for _, e := range staff {
		rep, err := s.attendanceSvc.GetReport(ctx, e.ID, period)
		if err != nil {
			return nil, fmt.Errorf("failed to build report for %s: %w", e.ID, err)
		}
		reports = append(reports, rep)
	}
	return reports, nil
}

// ExportAttendance implements report.ReportService.
func (s *ReportServiceImpl) ExportAttendance(ctx context.Context, period attendance.Period) ([]byte, error) {
	reports, err := s.EmployeeReports(ctx, period)
	if err != nil {
		return nil, err
	}
	return export.AttendanceWorkbook(reports)
}
