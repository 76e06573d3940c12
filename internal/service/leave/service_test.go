package leave

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bistrohq/staff-backend-go/internal/domain/leave"
	"github.com/bistrohq/staff-backend-go/internal/domain/notification"
	"github.com/bistrohq/staff-backend-go/internal/domain/shift"
	"github.com/bistrohq/staff-backend-go/internal/fixtures"
	"github.com/bistrohq/staff-backend-go/internal/pkg/clock"
	"github.com/bistrohq/staff-backend-go/internal/pkg/sse"
	"github.com/bistrohq/staff-backend-go/internal/repository/memory"
	notificationservice "github.com/bistrohq/staff-backend-go/internal/service/notification"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store         *memory.Store
	repos         fixtures.Repositories
	clock         *clock.Mock
	notifications notification.Service
	svc           leave.LeaveService
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

	clk := clock.NewMock(time.Date(2024, 3, 21, 9, 0, 0, 0, time.UTC))
	notifications := notificationservice.NewNotificationService(memory.NewNotificationRepository(store), sse.NewHub(4), clk)
	return fixture{
		store:         store,
		repos:         repos,
		clock:         clk,
		notifications: notifications,
		svc:           NewLeaveService(store, repos.Leaves, repos.Shifts, repos.Employees, notifications, clk),
	}
}

func (f fixture) addShift(t *testing.T, id, employeeID, date string) {
	t.Helper()
	_, err := f.repos.Shifts.Create(context.Background(), shift.Shift{
		ID: id, EmployeeID: employeeID, Day: shift.DayName(date), Date: date,
		StartTime: "09:00", EndTime: "17:00", Status: shift.StatusScheduled,
	})
	require.NoError(t, err)
}

func strPtr(s string) *string { return &s }

func TestApproveLeave_RemovesCoveredShiftsAndNotifies(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	f.addShift(t, "s-apr-12", "2", "2024-04-12")
	f.addShift(t, "s-apr-15", "2", "2024-04-15")
	f.addShift(t, "s-apr-16", "2", "2024-04-16")
	f.addShift(t, "s-other", "3", "2024-04-12")

	approved, err := f.svc.ApproveLeave(ctx, leave.RespondLeaveRequest{ID: "leave-1", Note: strPtr("Enjoy"), RespondedBy: "1"})
	require.NoError(t, err)
	assert.Equal(t, leave.LeaveRequestStatusApproved, approved.Status)
	require.NotNil(t, approved.ResponseDate)
	assert.True(t, approved.ResponseDate.Equal(f.clock.Now()))
	require.NotNil(t, approved.RespondedBy)
	assert.Equal(t, "1", *approved.RespondedBy)

	for id, wantGone := range map[string]bool{"s-apr-12": true, "s-apr-15": true, "s-apr-16": false, "s-other": false} {
		_, err := f.repos.Shifts.GetByID(ctx, id)
		if wantGone {
			assert.ErrorIs(t, err, shift.ErrShiftNotFound, id)
		} else {
			assert.NoError(t, err, id)
		}
	}

	notices, err := f.notifications.List(ctx, "2", false)
	require.NoError(t, err)
	require.Len(t, notices, 1)
	assert.Equal(t, notification.TypeMessage, notices[0].Type)
	assert.Equal(t, "Leave Approved", notices[0].Title)
	assert.Equal(t, "Your leave request (2024-04-10 to 2024-04-15) was approved. Reply: Enjoy", notices[0].Message)
}

func TestRejectLeave_KeepsShifts(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	f.addShift(t, "s-apr-12", "2", "2024-04-12")

	rejected, err := f.svc.RejectLeave(ctx, leave.RespondLeaveRequest{ID: "leave-1"})
	require.NoError(t, err)
	assert.Equal(t, leave.LeaveRequestStatusRejected, rejected.Status)

	_, err = f.repos.Shifts.GetByID(ctx, "s-apr-12")
	assert.NoError(t, err)

	notices, err := f.notifications.List(ctx, "2", false)
	require.NoError(t, err)
	require.Len(t, notices, 1)
	assert.Equal(t, "Leave Rejected", notices[0].Title)
	assert.Equal(t, "Your leave request (2024-04-10 to 2024-04-15) was rejected.", notices[0].Message)
}

func TestRespond_OnlyFromPending(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	_, err := f.svc.ApproveLeave(ctx, leave.RespondLeaveRequest{ID: "leave-2"})
	assert.ErrorIs(t, err, leave.ErrLeaveAlreadyProcessed)
	_, err = f.svc.RejectLeave(ctx, leave.RespondLeaveRequest{ID: "leave-2"})
	assert.ErrorIs(t, err, leave.ErrLeaveAlreadyProcessed)
	_, err = f.svc.ApproveLeave(ctx, leave.RespondLeaveRequest{ID: "missing"})
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)

	notices, err := f.notifications.List(ctx, "3", false)
	require.NoError(t, err)
	assert.Empty(t, notices)
}

type failingNotifications struct {
	notification.Service
}

func (failingNotifications) Create(ctx context.Context, req notification.CreateNotificationRequest) (notification.Notification, error) {
	return notification.Notification{}, errors.New("notification store unavailable")
}

func TestApproveLeave_RollsBackWhenNotificationFails(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	f.addShift(t, "s-apr-12", "2", "2024-04-12")

	svc := NewLeaveService(f.store, f.repos.Leaves, f.repos.Shifts, f.repos.Employees, failingNotifications{f.notifications}, f.clock)
	_, err := svc.ApproveLeave(ctx, leave.RespondLeaveRequest{ID: "leave-1"})
	require.Error(t, err)

	req, err := f.repos.Leaves.GetByID(ctx, "leave-1")
	require.NoError(t, err)
	assert.Equal(t, leave.LeaveRequestStatusPending, req.Status)
	assert.Nil(t, req.ResponseDate)

	_, err = f.repos.Shifts.GetByID(ctx, "s-apr-12")
	assert.NoError(t, err)
}

func TestRequestLeave(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	created, err := f.svc.RequestLeave(ctx, leave.CreateLeaveRequest{
		EmployeeID: "4", StartDate: "2024-05-01", EndDate: "2024-05-03", Type: leave.TypePersonal, Reason: "Moving",
	})
	require.NoError(t, err)
	assert.Equal(t, leave.LeaveRequestStatusPending, created.Status)
	assert.True(t, created.RequestDate.Equal(f.clock.Now()))

	_, err = f.svc.RequestLeave(ctx, leave.CreateLeaveRequest{
		EmployeeID: "4", StartDate: "2024-05-03", EndDate: "2024-05-04", Type: leave.TypeOther,
	})
	assert.ErrorIs(t, err, leave.ErrOverlappingLeave)

	_, err = f.svc.RequestLeave(ctx, leave.CreateLeaveRequest{
		EmployeeID: "4", StartDate: "2024-06-05", EndDate: "2024-06-01", Type: leave.TypeSick,
	})
	assert.ErrorIs(t, err, leave.ErrInvalidDateRange)

	_, err = f.svc.RequestLeave(ctx, leave.CreateLeaveRequest{
		EmployeeID: "4", StartDate: "2024-06-01", EndDate: "2024-06-01", Type: "holiday",
	})
	assert.Error(t, err)
}

func TestGetLeaveRequests_FilterAndOrder(t *testing.T) {
	ctx := context.Background()
	f := setup(t)

	all, err := f.svc.GetLeaveRequests(ctx, leave.LeaveFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "leave-1", all[0].ID, "newest request first")

	approved := leave.LeaveRequestStatusApproved
	got, err := f.svc.GetLeaveRequests(ctx, leave.LeaveFilter{Status: &approved})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "leave-2", got[0].ID)

	got, err = f.svc.GetLeaveRequests(ctx, leave.LeaveFilter{EmployeeID: "4"})
	require.NoError(t, err)
	assert.Empty(t, got)
}
