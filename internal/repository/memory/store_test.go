package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/bistrohq/staff-backend-go/internal/domain/bonus"
	"github.com/bistrohq/staff-backend-go/internal/domain/employee"
	"github.com/bistrohq/staff-backend-go/internal/domain/leave"
	"github.com/bistrohq/staff-backend-go/internal/domain/shift"
	"github.com/bistrohq/staff-backend-go/internal/pkg/clock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingMirror struct {
	mu      sync.Mutex
	entries map[string][]byte
	saves   int
}

func (m *recordingMirror) Load(ctx context.Context) (map[string][]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string][]byte, len(m.entries))
	for k, v := range m.entries {
		out[k] = v
	}
	return out, nil
}

func (m *recordingMirror) Save(ctx context.Context, entries map[string][]byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.entries == nil {
		m.entries = make(map[string][]byte)
	}
	for k, v := range entries {
		m.entries[k] = v
	}
	m.saves++
	return nil
}

func TestStore_TransactionRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	shifts := NewShiftRepository(store)
	leaves := NewLeaveRequestRepository(store)

	_, err := shifts.Create(ctx, shift.Shift{ID: "shift-1", EmployeeID: "2", Date: "2024-04-12", StartTime: "09:00", EndTime: "17:00"})
	require.NoError(t, err)
	_, err = leaves.Create(ctx, leave.LeaveRequest{ID: "leave-1", EmployeeID: "2", Status: leave.LeaveRequestStatusPending})
	require.NoError(t, err)

	boom := errors.New("boom")
	err = store.WithinTransaction(ctx, func(txCtx context.Context) error {
		l, err := leaves.GetByID(txCtx, "leave-1")
		require.NoError(t, err)
		l.Status = leave.LeaveRequestStatusApproved
		require.NoError(t, leaves.Update(txCtx, l))

		removed, err := shifts.DeleteByEmployeeBetween(txCtx, "2", "2024-04-10", "2024-04-15")
		require.NoError(t, err)
		assert.Equal(t, 1, removed)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	l, err := leaves.GetByID(ctx, "leave-1")
	require.NoError(t, err)
	assert.Equal(t, leave.LeaveRequestStatusPending, l.Status)
	_, err = shifts.GetByID(ctx, "shift-1")
	assert.NoError(t, err)
}

func TestStore_TransactionCommitsAndMirrorsTouchedCollections(t *testing.T) {
	ctx := context.Background()
	mirror := &recordingMirror{}
	store, err := Open(ctx, mirror)
	require.NoError(t, err)
	shifts := NewShiftRepository(store)
	leaves := NewLeaveRequestRepository(store)

	err = store.WithinTransaction(ctx, func(txCtx context.Context) error {
		if _, err := shifts.Create(txCtx, shift.Shift{ID: "s", EmployeeID: "2", Date: "2024-04-12"}); err != nil {
			return err
		}
		// nested calls join the same transaction
		return store.WithinTransaction(txCtx, func(inner context.Context) error {
			_, err := leaves.Create(inner, leave.LeaveRequest{ID: "l", EmployeeID: "2"})
			return err
		})
	})
	require.NoError(t, err)

	assert.Equal(t, 1, mirror.saves)
	assert.Contains(t, mirror.entries, KeyShifts)
	assert.Contains(t, mirror.entries, KeyLeaveRequests)
	assert.NotContains(t, mirror.entries, KeyEmployees)

	reopened, err := Open(ctx, mirror)
	require.NoError(t, err)
	got, err := NewShiftRepository(reopened).GetByID(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, "2024-04-12", got.Date)
}

func TestEmployeeRepository_EmailUniqueCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	repo := NewEmployeeRepository(NewStore())

	_, err := repo.Create(ctx, employee.Employee{ID: "2", Email: "employee@bistro.com"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, employee.Employee{Email: "Employee@Bistro.com"})
	assert.ErrorIs(t, err, employee.ErrEmailInUse)

	found, err := repo.GetByEmail(ctx, "EMPLOYEE@bistro.com")
	require.NoError(t, err)
	assert.Equal(t, "2", found.ID)
}

func TestShiftRepository_ListExactDateOrdered(t *testing.T) {
	ctx := context.Background()
	repo := NewShiftRepository(NewStore())

	for _, s := range []shift.Shift{
		{ID: "c", EmployeeID: "4", Date: "2024-03-25", StartTime: "16:00", EndTime: "00:00"},
		{ID: "a", EmployeeID: "2", Date: "2024-03-25", StartTime: "09:00", EndTime: "17:00"},
		{ID: "x", EmployeeID: "2", Date: "2024-03-26", StartTime: "08:00", EndTime: "12:00"},
	} {
		_, err := repo.Create(ctx, s)
		require.NoError(t, err)
	}

	got, err := repo.List(ctx, shift.ShiftFilter{Date: "2024-03-25"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "c", got[1].ID)
	for _, s := range got {
		assert.Equal(t, "2024-03-25", s.Date)
	}
}

func TestStore_StampsWithClock(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 25, 8, 30, 0, 0, time.UTC)
	clk := clock.NewMock(now)
	repo := NewEmployeeRepository(NewStore(WithClock(clk)))

	created, err := repo.Create(ctx, employee.Employee{ID: "2", Email: "employee@bistro.com"})
	require.NoError(t, err)
	assert.Equal(t, now, created.CreatedAt)
	assert.Equal(t, now, created.UpdatedAt)

	// Explicit timestamps are kept.
	earlier := now.Add(-time.Hour)
	clk.Advance(time.Hour)
	kept, err := repo.Create(ctx, employee.Employee{ID: "3", Email: "mike@bistro.com", CreatedAt: earlier})
	require.NoError(t, err)
	assert.Equal(t, earlier, kept.CreatedAt)
	assert.Equal(t, now.Add(time.Hour), kept.UpdatedAt)
}

func TestAwardRepository_PayableUntilLinked(t *testing.T) {
	ctx := context.Background()
	repo := NewAwardRepository(NewStore())
	may := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	a, err := repo.Create(ctx, bonus.Award{EmployeeID: "2", Year: 2024, Percentage: 5, Amount: decimal.NewFromInt(80), AppliedAt: may.AddDate(0, 0, -11)})
	require.NoError(t, err)
	_, err = repo.Create(ctx, bonus.Award{EmployeeID: "3", Year: 2024, Percentage: 5, Amount: decimal.NewFromInt(60), AppliedAt: may.AddDate(0, 0, -11)})
	require.NoError(t, err)

	got, err := repo.ListPayable(ctx, "2", may, "")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, a.ID, got[0].ID)

	got, err = repo.ListPayable(ctx, "2", may.AddDate(0, 0, -20), "")
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, repo.LinkPayrollItem(ctx, []string{a.ID}, "item-may"))

	got, err = repo.ListPayable(ctx, "2", may, "")
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = repo.ListPayable(ctx, "2", may, "item-may")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.NotNil(t, got[0].PayrollItemID)
	assert.Equal(t, "item-may", *got[0].PayrollItemID)
}
