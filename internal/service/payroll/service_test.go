package payroll

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/bistrohq/staff-backend-go/internal/domain/attendance"
	"github.com/bistrohq/staff-backend-go/internal/domain/bonus"
	"github.com/bistrohq/staff-backend-go/internal/domain/notification"
	"github.com/bistrohq/staff-backend-go/internal/domain/payroll"
	"github.com/bistrohq/staff-backend-go/internal/fixtures"
	"github.com/bistrohq/staff-backend-go/internal/pkg/clock"
	"github.com/bistrohq/staff-backend-go/internal/pkg/sse"
	"github.com/bistrohq/staff-backend-go/internal/repository/memory"
	notificationservice "github.com/bistrohq/staff-backend-go/internal/service/notification"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc           payroll.PayrollService
	attendance    attendance.AttendanceRepository
	awards        bonus.AwardRepository
	notifications notification.Service
}

func setup(t *testing.T) fixture {
	t.Helper()
	store := memory.NewStore()
	repos := fixtures.Repositories{
		Employees:  memory.NewEmployeeRepository(store),
		Shifts:     memory.NewShiftRepository(store),
		Attendance: memory.NewAttendanceRepository(store),
		Leaves:     memory.NewLeaveRequestRepository(store),
	}
	_, err := fixtures.Seed(context.Background(), store, repos)
	require.NoError(t, err)

	clk := clock.NewMock(time.Date(2024, 4, 2, 9, 0, 0, 0, time.UTC))
	notifications := notificationservice.NewNotificationService(memory.NewNotificationRepository(store), sse.NewHub(4), clk)
	awards := memory.NewAwardRepository(store)
	svc := NewPayrollService(store, memory.NewPayrollRepository(store), repos.Employees, repos.Attendance, awards, notifications, clk, Config{
		OvertimeMultiplier:     decimal.NewFromFloat(1.5),
		LateDeductionPerMinute: decimal.NewFromFloat(0.10),
	})
	return fixture{svc: svc, attendance: repos.Attendance, awards: awards, notifications: notifications}
}

func (f fixture) completed(t *testing.T, employeeID, date string, hours float64, overtime, late int) {
	t.Helper()
	_, err := f.attendance.Create(context.Background(), attendance.Record{
		EmployeeID: employeeID, Date: date, Duration: &hours, Status: attendance.StatusCompleted,
		Overtime: overtime, LateMinutes: late, IsLate: late > 0,
	})
	require.NoError(t, err)
}

func byEmployee(items []payroll.PayrollItem) map[string]payroll.PayrollItem {
	out := make(map[string]payroll.PayrollItem, len(items))
	for _, it := range items {
		out[it.EmployeeID] = it
	}
	return out
}

func TestGenerate(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	f.completed(t, "2", "2024-03-26", 9, 60, 10)
	f.completed(t, "2", "2024-04-01", 8, 0, 0) // outside March
	_, err := f.awards.Create(ctx, bonus.Award{
		EmployeeID: "2", Year: 2023, Percentage: 5, Amount: decimal.NewFromInt(50),
		AppliedAt: time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	items, err := f.svc.Generate(ctx, payroll.GeneratePayrollRequest{Month: "2024-03"})
	require.NoError(t, err)
	require.Len(t, items, 3) // admins are not on payroll

	got := byEmployee(items)
	jane := got["2"]
	assert.Equal(t, "2024-03-01", jane.PeriodStart)
	assert.Equal(t, "2024-03-31", jane.PeriodEnd)
	assert.Equal(t, payroll.PayrollStatusDraft, jane.Status)
	assert.Equal(t, "16.17", jane.RegularHours.StringFixed(2))
	assert.Equal(t, "1.00", jane.OvertimeHours.StringFixed(2))
	assert.Equal(t, "242.55", jane.RegularPay.StringFixed(2))
	assert.Equal(t, "22.50", jane.OvertimePay.StringFixed(2))
	assert.Equal(t, "50.00", jane.BonusPay.StringFixed(2))
	assert.Equal(t, 10, jane.LateMinutes)
	assert.Equal(t, "1.00", jane.Deductions.StringFixed(2))
	assert.Equal(t, "314.05", jane.TotalPay.StringFixed(2))

	assert.Equal(t, "166.60", got["3"].TotalPay.StringFixed(2))
	assert.True(t, got["4"].TotalPay.IsZero())
}

func TestGenerate_InvalidMonth(t *testing.T) {
	f := setup(t)
	_, err := f.svc.Generate(context.Background(), payroll.GeneratePayrollRequest{Month: "2024-3"})
	require.Error(t, err)
}

func TestGenerate_RecomputesDraftsOnly(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	req := payroll.GeneratePayrollRequest{Month: "2024-03"}

	first, err := f.svc.Generate(ctx, req)
	require.NoError(t, err)
	jane := byEmployee(first)["2"]
	mike := byEmployee(first)["3"]

	_, err = f.svc.Process(ctx, mike.ID)
	require.NoError(t, err)

	f.completed(t, "2", "2024-03-27", 8, 0, 0)
	f.completed(t, "3", "2024-03-27", 8, 0, 0)

	second, err := f.svc.Generate(ctx, req)
	require.NoError(t, err)
	require.Len(t, second, 3)

	got := byEmployee(second)
	assert.Equal(t, jane.ID, got["2"].ID)
	assert.Equal(t, "242.55", got["2"].RegularPay.StringFixed(2))
	assert.Equal(t, payroll.PayrollStatusProcessed, got["3"].Status)
	assert.Equal(t, "166.60", got["3"].TotalPay.StringFixed(2))
}

func TestGenerate_LateAwardRollsIntoNextDraft(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	april, err := f.svc.Generate(ctx, payroll.GeneratePayrollRequest{Month: "2024-04"})
	require.NoError(t, err)
	janeApril := byEmployee(april)["2"]
	_, err = f.svc.Process(ctx, janeApril.ID)
	require.NoError(t, err)

	award, err := f.awards.Create(ctx, bonus.Award{
		EmployeeID: "2", Year: 2024, Percentage: 5, Amount: decimal.NewFromInt(80),
		AppliedAt: time.Date(2024, 4, 20, 12, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	again, err := f.svc.Generate(ctx, payroll.GeneratePayrollRequest{Month: "2024-04"})
	require.NoError(t, err)
	assert.Equal(t, payroll.PayrollStatusProcessed, byEmployee(again)["2"].Status)
	assert.True(t, byEmployee(again)["2"].BonusPay.IsZero())

	may, err := f.svc.Generate(ctx, payroll.GeneratePayrollRequest{Month: "2024-05"})
	require.NoError(t, err)
	janeMay := byEmployee(may)["2"]
	assert.Equal(t, "80.00", janeMay.BonusPay.StringFixed(2))

	// Recomputing the draft keeps the award it already holds.
	may, err = f.svc.Generate(ctx, payroll.GeneratePayrollRequest{Month: "2024-05"})
	require.NoError(t, err)
	assert.Equal(t, "80.00", byEmployee(may)["2"].BonusPay.StringFixed(2))

	june, err := f.svc.Generate(ctx, payroll.GeneratePayrollRequest{Month: "2024-06"})
	require.NoError(t, err)
	assert.True(t, byEmployee(june)["2"].BonusPay.IsZero())

	linked, err := f.awards.ListByEmployee(ctx, "2")
	require.NoError(t, err)
	require.Len(t, linked, 1)
	assert.Equal(t, award.ID, linked[0].ID)
	require.NotNil(t, linked[0].PayrollItemID)
	assert.Equal(t, janeMay.ID, *linked[0].PayrollItemID)
}

func TestStatusTransitions(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	items, err := f.svc.Generate(ctx, payroll.GeneratePayrollRequest{Month: "2024-03"})
	require.NoError(t, err)
	id := byEmployee(items)["3"].ID

	_, err = f.svc.Pay(ctx, id)
	assert.ErrorIs(t, err, payroll.ErrInvalidPayrollTransition)

	processed, err := f.svc.Process(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, payroll.PayrollStatusProcessed, processed.Status)
	require.NotNil(t, processed.ProcessedDate)

	_, err = f.svc.Process(ctx, id)
	assert.ErrorIs(t, err, payroll.ErrInvalidPayrollTransition)

	paid, err := f.svc.Pay(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, payroll.PayrollStatusPaid, paid.Status)
	require.NotNil(t, paid.PaidDate)

	notices, err := f.notifications.List(ctx, "3", true)
	require.NoError(t, err)
	require.Len(t, notices, 1)
	assert.Equal(t, notification.TypePayment, notices[0].Type)
	assert.Contains(t, notices[0].Message, "$166.60")

	_, err = f.svc.Pay(ctx, "missing")
	assert.ErrorIs(t, err, payroll.ErrPayrollItemNotFound)
}

func TestList(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.svc.Generate(ctx, payroll.GeneratePayrollRequest{Month: "2024-03"})
	require.NoError(t, err)

	all, err := f.svc.List(ctx, payroll.PayrollFilter{PeriodStart: "2024-03-01"})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	none, err := f.svc.List(ctx, payroll.PayrollFilter{PeriodStart: "2024-02-01"})
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestPayslip(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	items, err := f.svc.Generate(ctx, payroll.GeneratePayrollRequest{Month: "2024-03"})
	require.NoError(t, err)

	pdf, err := f.svc.Payslip(ctx, items[0].ID)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))

	_, err = f.svc.Payslip(ctx, "missing")
	assert.ErrorIs(t, err, payroll.ErrPayrollItemNotFound)
}
