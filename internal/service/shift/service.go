package shift

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bistrohq/staff-backend-go/internal/domain/employee"
	"github.com/bistrohq/staff-backend-go/internal/domain/notification"
	"github.com/bistrohq/staff-backend-go/internal/domain/shift"
	"github.com/bistrohq/staff-backend-go/internal/pkg/clock"
	"github.com/bistrohq/staff-backend-go/internal/pkg/database"
	"github.com/bistrohq/staff-backend-go/internal/pkg/validator"
)

type ShiftServiceImpl struct {
	tx              database.Transactor
	shiftRepo       shift.ShiftRepository
	employeeRepo    employee.EmployeeRepository
	notificationSvc notification.Service
	clock           clock.Clock
}

func NewShiftService(
	tx database.Transactor,
	shiftRepo shift.ShiftRepository,
	employeeRepo employee.EmployeeRepository,
	notificationSvc notification.Service,
	clk clock.Clock,
) shift.ShiftService {
	return &ShiftServiceImpl{
		tx:              tx,
		shiftRepo:       shiftRepo,
		employeeRepo:    employeeRepo,
		notificationSvc: notificationSvc,
		clock:           clk,
	}
}

// AssignmentMessage is the notification text sent for a new shift.
func AssignmentMessage(s shift.Shift) string {
	return fmt.Sprintf("You have been assigned a new shift on %s (%s - %s).", s.Date, s.StartTime, s.EndTime)
}

// checkOverlap looks at the neighbouring days too so overnight shifts are caught.
func (s *ShiftServiceImpl) checkOverlap(ctx context.Context, candidate shift.Shift) error {
	day, ok := validator.IsValidDate(candidate.Date)
	if !ok {
		return fmt.Errorf("invalid shift date %q", candidate.Date)
	}
	neighbours, err := s.shiftRepo.List(ctx, shift.ShiftFilter{
		EmployeeID: candidate.EmployeeID,
		From:       day.AddDate(0, 0, -1).Format(validator.DateLayout),
		To:         day.AddDate(0, 0, 1).Format(validator.DateLayout),
	})
	if err != nil {
		return fmt.Errorf("failed to list shifts: %w", err)
	}
	for _, other := range neighbours {
		if other.ID != candidate.ID && candidate.Overlaps(other) {
			return shift.ErrShiftOverlap
		}
	}
	return nil
}

// Create implements shift.ShiftService.
func (s *ShiftServiceImpl) Create(ctx context.Context, req shift.CreateShiftRequest) (shift.Shift, error) {
	if err := req.Validate(); err != nil {
		return shift.Shift{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return shift.Shift{}, err
	}

	now := s.clock.Now().UTC()
	candidate := shift.Shift{
		EmployeeID: req.EmployeeID,
		Day:        shift.DayName(req.Date),
		Date:       req.Date,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Type:       req.Type,
		Status:     shift.StatusScheduled,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	var (
		created shift.Shift
		notice  notification.Notification
	)
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.checkOverlap(ctx, candidate); err != nil {
			return err
		}

		var err error
		created, err = s.shiftRepo.Create(ctx, candidate)
		if err != nil {
			return fmt.Errorf("failed to create shift: %w", err)
		}

		notice, err = s.notificationSvc.Create(ctx, notification.CreateNotificationRequest{
			UserID:  created.EmployeeID,
			Title:   "Shift Assignment",
			Message: AssignmentMessage(created),
			Type:    notification.TypeShift,
		})
		if err != nil {
			return fmt.Errorf("failed to create shift notification: %w", err)
		}
		return nil
	})
	if err != nil {
		return shift.Shift{}, err
	}

	s.notificationSvc.Publish(notice)
	slog.Info("Shift created", "shift_id", created.ID, "employee_id", created.EmployeeID, "date", created.Date)
	return created, nil
}

// Update implements shift.ShiftService.
func (s *ShiftServiceImpl) Update(ctx context.Context, req shift.UpdateShiftRequest) (shift.Shift, error) {
	if err := req.Validate(); err != nil {
		return shift.Shift{}, err
	}

	var updated shift.Shift
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		current, err := s.shiftRepo.GetByID(ctx, req.ID)
		if err != nil {
			return err
		}
		req.Apply(&current)
		if current.StartTime == current.EndTime {
			return validator.ValidationErrors{{Field: "endTime", Message: "endTime must differ from startTime"}}
		}
		if err := s.checkOverlap(ctx, current); err != nil {
			return err
		}

		current.UpdatedAt = s.clock.Now().UTC()
		if err := s.shiftRepo.Update(ctx, current); err != nil {
			return fmt.Errorf("failed to update shift: %w", err)
		}
		updated = current
		return nil
	})
	if err != nil {
		return shift.Shift{}, err
	}
	return updated, nil
}

// Delete implements shift.ShiftService.
func (s *ShiftServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.shiftRepo.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("Shift deleted", "shift_id", id)
	return nil
}

// Get implements shift.ShiftService.
func (s *ShiftServiceImpl) Get(ctx context.Context, id string) (shift.Shift, error) {
	return s.shiftRepo.GetByID(ctx, id)
}

// List implements shift.ShiftService.
func (s *ShiftServiceImpl) List(ctx context.Context, filter shift.ShiftFilter) ([]shift.Shift, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	shifts, err := s.shiftRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	if shifts == nil {
		shifts = []shift.Shift{}
	}
	return shifts, nil
}
