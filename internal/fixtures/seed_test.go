package fixtures

import (
	"context"
	"testing"

	"github.com/bistrohq/staff-backend-go/internal/domain/employee"
	"github.com/bistrohq/staff-backend-go/internal/domain/shift"
	"github.com/bistrohq/staff-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func memoryRepos(store *memory.Store) Repositories {
	return Repositories{
		Employees:  memory.NewEmployeeRepository(store),
		Shifts:     memory.NewShiftRepository(store),
		Attendance: memory.NewAttendanceRepository(store),
		Leaves:     memory.NewLeaveRequestRepository(store),
	}
}

func TestSeed_LoadsOnceAndHashesPasswords(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	repos := memoryRepos(store)

	seeded, err := Seed(ctx, store, repos)
	require.NoError(t, err)
	assert.True(t, seeded)

	admin, err := repos.Employees.GetByEmail(ctx, "ADMIN@bistro.com")
	require.NoError(t, err)
	assert.Equal(t, employee.RoleAdmin, admin.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("admin123")))

	shifts, err := repos.Shifts.List(ctx, shift.ShiftFilter{Date: "2024-03-25"})
	require.NoError(t, err)
	assert.Len(t, shifts, 3)

	seeded, err = Seed(ctx, store, repos)
	require.NoError(t, err)
	assert.False(t, seeded)

	all, err := repos.Employees.List(ctx, employee.EmployeeFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 4)
}
