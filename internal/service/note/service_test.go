package note

import (
	"context"
	"testing"
	"time"

	"github.com/bistrohq/staff-backend-go/internal/domain/employee"
	"github.com/bistrohq/staff-backend-go/internal/domain/note"
	"github.com/bistrohq/staff-backend-go/internal/pkg/clock"
	"github.com/bistrohq/staff-backend-go/internal/pkg/validator"
	"github.com/bistrohq/staff-backend-go/internal/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (note.NoteService, *clock.Mock) {
	t.Helper()
	store := memory.NewStore()
	employees := memory.NewEmployeeRepository(store)
	_, err := employees.Create(context.Background(), employee.Employee{
		ID: "2", Name: "Jane Smith", Email: "employee@bistro.com", Role: employee.RoleEmployee, HourlyRate: decimal.NewFromInt(15),
	})
	require.NoError(t, err)

	clk := clock.NewMock(time.Date(2024, 3, 25, 9, 0, 0, 0, time.UTC))
	return NewNoteService(memory.NewNoteRepository(store), employees, clk), clk
}

func TestAddNote(t *testing.T) {
	svc, clk := setup(t)
	ctx := context.Background()

	n, err := svc.AddNote(ctx, note.CreateNoteRequest{EmployeeID: "2", Content: "Covered the bar"})
	require.NoError(t, err)
	assert.NotEmpty(t, n.ID)
	assert.Equal(t, note.DefaultCategory, n.Category)
	assert.True(t, n.Date.Equal(clk.Now()))

	clk.Advance(time.Hour)
	_, err = svc.AddNote(ctx, note.CreateNoteRequest{EmployeeID: "2", Content: "Late twice", Category: "performance"})
	require.NoError(t, err)

	notes, err := svc.ListByEmployee(ctx, "2")
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, "performance", notes[0].Category)
	assert.Equal(t, "Covered the bar", notes[1].Content)
}

func TestAddNote_Errors(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	_, err := svc.AddNote(ctx, note.CreateNoteRequest{EmployeeID: "2"})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "content")

	_, err = svc.AddNote(ctx, note.CreateNoteRequest{EmployeeID: "99", Content: "x"})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestListByEmployee_Empty(t *testing.T) {
	svc, _ := setup(t)
	notes, err := svc.ListByEmployee(context.Background(), "2")
	require.NoError(t, err)
	assert.NotNil(t, notes)
	assert.Empty(t, notes)
}
