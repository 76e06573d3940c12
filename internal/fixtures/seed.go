// Package fixtures holds the demo bistro data loaded into an empty store.
package fixtures

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bistrohq/staff-backend-go/internal/domain/attendance"
	"github.com/bistrohq/staff-backend-go/internal/domain/employee"
	"github.com/bistrohq/staff-backend-go/internal/domain/leave"
	"github.com/bistrohq/staff-backend-go/internal/domain/shift"
	"github.com/bistrohq/staff-backend-go/internal/pkg/database"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

func strPtr(s string) *string       { return &s }
func float64Ptr(f float64) *float64 { return &f }

func timePtr(t time.Time) *time.Time { return &t }

func utc(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

type Repositories struct {
	Employees  employee.EmployeeRepository
	Shifts     shift.ShiftRepository
	Attendance attendance.AttendanceRepository
	Leaves     leave.LeaveRequestRepository
}

type SeedEmployee struct {
	employee.Employee
	Password string
}

func Employees() []SeedEmployee {
	return []SeedEmployee{
		{employee.Employee{ID: "1", Name: "Prabhath@33", Email: "admin@bistro.com", Role: employee.RoleAdmin, JobType: "Manager", HourlyRate: decimal.NewFromInt(25)}, "admin123"},
		{employee.Employee{ID: "2", Name: "Jane Smith", Email: "employee@bistro.com", Role: employee.RoleEmployee, JobType: "Waiter", HourlyRate: decimal.NewFromInt(15)}, "employee123"},
		{employee.Employee{ID: "3", Name: "Mike Johnson", Email: "mike@bistro.com", Role: employee.RoleEmployee, JobType: "Chef", HourlyRate: decimal.NewFromInt(20)}, "mike123"},
		{employee.Employee{ID: "4", Name: "Sarah Williams", Email: "sarah@bistro.com", Role: employee.RoleEmployee, JobType: "Bartender", HourlyRate: decimal.NewFromInt(18)}, "sarah123"},
	}
}

func Shifts() []shift.Shift {
	return []shift.Shift{
		{ID: "shift-1", EmployeeID: "2", Day: "Monday", Date: "2024-03-25", StartTime: "09:00", EndTime: "17:00", Type: "Morning", Status: shift.StatusCompleted},
		{ID: "shift-2", EmployeeID: "3", Day: "Monday", Date: "2024-03-25", StartTime: "10:00", EndTime: "18:00", Type: "Morning", Status: shift.StatusCompleted},
		{ID: "shift-3", EmployeeID: "4", Day: "Monday", Date: "2024-03-25", StartTime: "16:00", EndTime: "00:00", Type: "Evening", Status: shift.StatusScheduled},
	}
}

func LeaveRequests() []leave.LeaveRequest {
	return []leave.LeaveRequest{
		{
			ID: "leave-1", EmployeeID: "2", StartDate: "2024-04-10", EndDate: "2024-04-15",
			Type: leave.TypeVacation, Reason: "Family vacation", Status: leave.LeaveRequestStatusPending,
			RequestDate: utc("2024-03-20T00:00:00Z"),
		},
		{
			ID: "leave-2", EmployeeID: "3", StartDate: "2024-03-28", EndDate: "2024-03-30",
			Type: leave.TypeSick, Reason: "Flu", Status: leave.LeaveRequestStatusApproved,
			RequestDate:  utc("2024-03-15T00:00:00Z"),
			ResponseDate: timePtr(utc("2024-03-16T00:00:00Z")),
			ResponseNote: strPtr("Get well soon"),
			RespondedBy:  strPtr("1"),
		},
	}
}

// AttendanceRecords are the shiftless legacy rows of 2024-03-24.
func AttendanceRecords() []attendance.Record {
	return []attendance.Record{
		{
			ID: "att-1", EmployeeID: "2", Date: "2024-03-24",
			StartTime: timePtr(utc("2024-03-24T09:00:00Z")), EndTime: timePtr(utc("2024-03-24T17:10:00Z")),
			Duration: float64Ptr(8.17), Status: attendance.StatusCompleted,
		},
		{
			ID: "att-2", EmployeeID: "3", Date: "2024-03-24",
			StartTime: timePtr(utc("2024-03-24T10:00:00Z")), EndTime: timePtr(utc("2024-03-24T18:20:00Z")),
			Duration: float64Ptr(8.33), Status: attendance.StatusCompleted,
		},
		{ID: "att-3", EmployeeID: "4", Date: "2024-03-24", Status: attendance.StatusAbsent, Notes: "No show"},
	}
}

// Seed loads the demo data in one transaction. It does nothing when any
// employee already exists and reports whether it seeded.
func Seed(ctx context.Context, tx database.Transactor, repos Repositories) (bool, error) {
	existing, err := repos.Employees.List(ctx, employee.EmployeeFilter{})
	if err != nil {
		return false, fmt.Errorf("failed to check existing employees: %w", err)
	}
	if len(existing) > 0 {
		return false, nil
	}

	err = tx.WithinTransaction(ctx, func(ctx context.Context) error {
		for _, e := range Employees() {
			hash, err := bcrypt.GenerateFromPassword([]byte(e.Password), bcrypt.DefaultCost)
			if err != nil {
				return fmt.Errorf("failed to hash password for %s: %w", e.Email, err)
			}
			e.PasswordHash = string(hash)
			if _, err := repos.Employees.Create(ctx, e.Employee); err != nil {
				return fmt.Errorf("failed to seed employee %s: %w", e.ID, err)
			}
		}
		for _, s := range Shifts() {
			if _, err := repos.Shifts.Create(ctx, s); err != nil {
				return fmt.Errorf("failed to seed shift %s: %w", s.ID, err)
			}
		}
		for _, l := range LeaveRequests() {
			if _, err := repos.Leaves.Create(ctx, l); err != nil {
				return fmt.Errorf("failed to seed leave request %s: %w", l.ID, err)
			}
		}
		for _, r := range AttendanceRecords() {
			if _, err := repos.Attendance.Create(ctx, r); err != nil {
				return fmt.Errorf("failed to seed attendance %s: %w", r.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	slog.Info("Seeded demo data", "employees", len(Employees()), "shifts", len(Shifts()))
	return true, nil
}
