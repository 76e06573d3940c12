package leave

import "context"

type LeaveRequestRepository interface {
	Create(ctx context.Context, req LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	// List returns requests newest first by request date.
	List(ctx context.Context, filter LeaveFilter) ([]LeaveRequest, error)
	Update(ctx context.Context, req LeaveRequest) error
	// CountApproved counts the employee's approved leaves overlapping [from, to]; empty bounds are open.
	CountApproved(ctx context.Context, employeeID, from, to string) (int, error)
}
