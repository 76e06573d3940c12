package postgresql_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/bistrohq/staff-backend-go/internal/domain/bonus"
	"github.com/bistrohq/staff-backend-go/internal/domain/employee"
	"github.com/bistrohq/staff-backend-go/internal/domain/leave"
	"github.com/bistrohq/staff-backend-go/internal/domain/payroll"
	"github.com/bistrohq/staff-backend-go/internal/domain/shift"
	"github.com/bistrohq/staff-backend-go/internal/pkg/database"
	"github.com/bistrohq/staff-backend-go/internal/repository/postgresql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tables = []string{
	"employees", "shifts", "attendance", "leave_requests",
	"notifications", "notes", "payroll_items", "bonus_awards",
}

// setupTestDB connects to TEST_DATABASE_URL, applies the schema and empties every table.
func setupTestDB(t *testing.T) *database.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()

	db, err := database.NewPostgreSQLDB(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	require.NoError(t, postgresql.Migrate(ctx, db))
	for _, table := range tables {
		_, err := db.Exec(ctx, "TRUNCATE TABLE "+table)
		require.NoError(t, err)
	}
	return db
}

func TestEmployeeRepository(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewEmployeeRepository(db)

	created, err := repo.Create(ctx, employee.Employee{
		Name: "Jane Smith", Email: "employee@bistro.com", Role: employee.RoleEmployee,
		JobType: "Waiter", HourlyRate: decimal.NewFromInt(15), PasswordHash: "hash",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	_, err = repo.Create(ctx, employee.Employee{Name: "Dup", Email: "EMPLOYEE@bistro.com", Role: employee.RoleEmployee, PasswordHash: "x"})
	assert.ErrorIs(t, err, employee.ErrEmailInUse)

	got, err := repo.GetByEmail(ctx, "Employee@Bistro.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.True(t, got.HourlyRate.Equal(decimal.NewFromInt(15)))

	got.JobType = "Host"
	require.NoError(t, repo.Update(ctx, got))

	role := employee.RoleEmployee
	list, err := repo.List(ctx, employee.EmployeeFilter{Role: &role})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Host", list[0].JobType)

	require.NoError(t, repo.Delete(ctx, created.ID))
	_, err = repo.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, created.ID), employee.ErrEmployeeNotFound)
}

func TestTransactor_RollsBack(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	tx := postgresql.NewTransactor(db)
	shifts := postgresql.NewShiftRepository(db)

	boom := errors.New("boom")
	err := tx.WithinTransaction(ctx, func(ctx context.Context) error {
		_, err := shifts.Create(ctx, shift.Shift{
			EmployeeID: "2", Day: "Monday", Date: "2024-03-25", StartTime: "09:00", EndTime: "17:00", Status: shift.StatusScheduled,
		})
		require.NoError(t, err)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	list, err := shifts.List(ctx, shift.ShiftFilter{EmployeeID: "2"})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestShiftRepository_DeleteByEmployeeBetween(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewShiftRepository(db)

	for _, d := range []string{"2024-04-09", "2024-04-10", "2024-04-15", "2024-04-16"} {
		_, err := repo.Create(ctx, shift.Shift{
			EmployeeID: "2", Day: shift.DayName(d), Date: d, StartTime: "09:00", EndTime: "17:00", Status: shift.StatusScheduled,
		})
		require.NoError(t, err)
	}

	n, err := repo.DeleteByEmployeeBetween(ctx, "2", "2024-04-10", "2024-04-15")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	left, err := repo.List(ctx, shift.ShiftFilter{Status: []shift.Status{shift.StatusScheduled}})
	require.NoError(t, err)
	require.Len(t, left, 2)
	assert.Equal(t, "2024-04-09", left[0].Date)
	assert.Equal(t, "2024-04-16", left[1].Date)
}

func TestLeaveRequestRepository_CountApproved(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := postgresql.NewLeaveRequestRepository(db)

	for _, l := range []leave.LeaveRequest{
		{EmployeeID: "3", StartDate: "2023-12-30", EndDate: "2024-01-02", Type: leave.TypeVacation, Status: leave.LeaveRequestStatusApproved},
		{EmployeeID: "3", StartDate: "2024-03-28", EndDate: "2024-03-30", Type: leave.TypeSick, Status: leave.LeaveRequestStatusApproved},
		{EmployeeID: "3", StartDate: "2024-05-01", EndDate: "2024-05-01", Type: leave.TypeSick, Status: leave.LeaveRequestStatusRejected},
	} {
		l.RequestDate = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		_, err := repo.Create(ctx, l)
		require.NoError(t, err)
	}

	n, err := repo.CountApproved(ctx, "3", "2024-01-01", "2024-12-31")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = repo.CountApproved(ctx, "3", "", "")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestPayrollAndAwards(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	items := postgresql.NewPayrollRepository(db)
	awards := postgresql.NewAwardRepository(db)

	item, err := items.Create(ctx, payroll.PayrollItem{
		EmployeeID: "2", PeriodStart: "2024-03-01", PeriodEnd: "2024-03-31",
		RegularPay: decimal.RequireFromString("122.55"), TotalPay: decimal.RequireFromString("122.55"),
		Status: payroll.PayrollStatusDraft,
	})
	require.NoError(t, err)

	got, err := items.GetByEmployeePeriod(ctx, "2", "2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, item.ID, got.ID)
	assert.Equal(t, "122.55", got.TotalPay.StringFixed(2))

	a := bonus.Award{EmployeeID: "2", Year: 2024, Percentage: 5, Amount: decimal.NewFromInt(120), AppliedAt: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)}
	_, err = awards.Create(ctx, a)
	require.NoError(t, err)
	_, err = awards.Create(ctx, a)
	assert.ErrorIs(t, err, bonus.ErrBonusAlreadyApplied)

	april := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	payable, err := awards.ListPayable(ctx, "2", april, item.ID)
	require.NoError(t, err)
	require.Len(t, payable, 1)
	assert.Nil(t, payable[0].PayrollItemID)

	require.NoError(t, awards.LinkPayrollItem(ctx, []string{payable[0].ID}, item.ID))
	payable, err = awards.ListPayable(ctx, "2", april, item.ID)
	require.NoError(t, err)
	require.Len(t, payable, 1)
	require.NotNil(t, payable[0].PayrollItemID)
	assert.Equal(t, item.ID, *payable[0].PayrollItemID)

	payable, err = awards.ListPayable(ctx, "2", april, "other-item")
	require.NoError(t, err)
	assert.Empty(t, payable)
}
