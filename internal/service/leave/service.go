package leave

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bistrohq/staff-backend-go/internal/domain/employee"
	"github.com/bistrohq/staff-backend-go/internal/domain/leave"
	"github.com/bistrohq/staff-backend-go/internal/domain/notification"
	"github.com/bistrohq/staff-backend-go/internal/domain/shift"
	"github.com/bistrohq/staff-backend-go/internal/pkg/clock"
	"github.com/bistrohq/staff-backend-go/internal/pkg/database"
)

type LeaveServiceImpl struct {
	tx database.Transactor
	leave.LeaveRequestRepository
	shiftRepo       shift.ShiftRepository
	employeeRepo    employee.EmployeeRepository
	notificationSvc notification.Service
	clock           clock.Clock
}

func NewLeaveService(
	tx database.Transactor,
	leaveRequestRepository leave.LeaveRequestRepository,
	shiftRepo shift.ShiftRepository,
	employeeRepo employee.EmployeeRepository,
	notificationSvc notification.Service,
	clk clock.Clock,
) leave.LeaveService {
	return &LeaveServiceImpl{
		tx:                     tx,
		LeaveRequestRepository: leaveRequestRepository,
		shiftRepo:              shiftRepo,
		employeeRepo:           employeeRepo,
		notificationSvc:        notificationSvc,
		clock:                  clk,
	}
}

// ResponseMessage is the notification text for a decided request.
func ResponseMessage(req leave.LeaveRequest) string {
	verb := "approved"
	if req.Status == leave.LeaveRequestStatusRejected {
		verb = "rejected"
	}
	msg := fmt.Sprintf("Your leave request (%s to %s) was %s.", req.StartDate, req.EndDate, verb)
	if req.ResponseNote != nil && *req.ResponseNote != "" {
		msg += " Reply: " + *req.ResponseNote
	}
	return msg
}

// RequestLeave implements leave.LeaveService.
func (s *LeaveServiceImpl) RequestLeave(ctx context.Context, req leave.CreateLeaveRequest) (leave.LeaveRequest, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequest{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return leave.LeaveRequest{}, err
	}

	var created leave.LeaveRequest
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.LeaveRequestRepository.List(ctx, leave.LeaveFilter{EmployeeID: req.EmployeeID})
		if err != nil {
			return fmt.Errorf("failed to list leave requests: %w", err)
		}
		for _, l := range existing {
			if l.Status != leave.LeaveRequestStatusRejected && l.OverlapsRange(req.StartDate, req.EndDate) {
				return leave.ErrOverlappingLeave
			}
		}

		created, err = s.LeaveRequestRepository.Create(ctx, leave.LeaveRequest{
			EmployeeID:  req.EmployeeID,
			StartDate:   req.StartDate,
			EndDate:     req.EndDate,
			Type:        req.Type,
			Reason:      req.Reason,
			Status:      leave.LeaveRequestStatusPending,
			RequestDate: s.clock.Now().UTC(),
		})
		if err != nil {
			return fmt.Errorf("failed to create leave request: %w", err)
		}
		return nil
	})
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	slog.Info("Leave requested", "leave_id", created.ID, "employee_id", created.EmployeeID)
	return created, nil
}

// respond moves a pending request to status. On approval the employee's
// shifts inside the leave are removed in the same transaction.
func (s *LeaveServiceImpl) respond(ctx context.Context, req leave.RespondLeaveRequest, status leave.LeaveRequestStatus) (leave.LeaveRequest, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequest{}, err
	}

	var (
		request leave.LeaveRequest
		notice  notification.Notification
		removed int
	)
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		request, err = s.LeaveRequestRepository.GetByID(ctx, req.ID)
		if err != nil {
			return err
		}
		if request.IsTerminal() {
			return leave.ErrLeaveAlreadyProcessed
		}

		now := s.clock.Now().UTC()
		request.Status = status
		request.ResponseDate = &now
		request.ResponseNote = req.Note
		if req.RespondedBy != "" {
			respondedBy := req.RespondedBy
			request.RespondedBy = &respondedBy
		}
		if err := s.LeaveRequestRepository.Update(ctx, request); err != nil {
			return fmt.Errorf("failed to update leave request: %w", err)
		}

		if status == leave.LeaveRequestStatusApproved {
			removed, err = s.shiftRepo.DeleteByEmployeeBetween(ctx, request.EmployeeID, request.StartDate, request.EndDate)
			if err != nil {
				return fmt.Errorf("failed to remove shifts covered by leave: %w", err)
			}
		}

		title := "Leave Approved"
		if status == leave.LeaveRequestStatusRejected {
			title = "Leave Rejected"
		}
		notice, err = s.notificationSvc.Create(ctx, notification.CreateNotificationRequest{
			UserID:  request.EmployeeID,
			Title:   title,
			Message: ResponseMessage(request),
			Type:    notification.TypeMessage,
		})
		if err != nil {
			return fmt.Errorf("failed to create leave notification: %w", err)
		}
		return nil
	})
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	s.notificationSvc.Publish(notice)
	slog.Info("Leave request decided", "leave_id", request.ID, "status", request.Status, "shifts_removed", removed)
	return request, nil
}

// ApproveLeave implements leave.LeaveService.
func (s *LeaveServiceImpl) ApproveLeave(ctx context.Context, req leave.RespondLeaveRequest) (leave.LeaveRequest, error) {
	return s.respond(ctx, req, leave.LeaveRequestStatusApproved)
}

// RejectLeave implements leave.LeaveService.
func (s *LeaveServiceImpl) RejectLeave(ctx context.Context, req leave.RespondLeaveRequest) (leave.LeaveRequest, error) {
	return s.respond(ctx, req, leave.LeaveRequestStatusRejected)
}

// GetLeaveRequest implements leave.LeaveService.
func (s *LeaveServiceImpl) GetLeaveRequest(ctx context.Context, id string) (leave.LeaveRequest, error) {
	return s.LeaveRequestRepository.GetByID(ctx, id)
}

// GetLeaveRequests implements leave.LeaveService.
func (s *LeaveServiceImpl) GetLeaveRequests(ctx context.Context, filter leave.LeaveFilter) ([]leave.LeaveRequest, error) {
	requests, err := s.LeaveRequestRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	if requests == nil {
		requests = []leave.LeaveRequest{}
	}
	return requests, nil
}
