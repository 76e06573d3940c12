package leave

import "context"

type LeaveService interface {
	RequestLeave(ctx context.Context, req CreateLeaveRequest) (LeaveRequest, error)
	ApproveLeave(ctx context.Context, req RespondLeaveRequest) (LeaveRequest, error)
	RejectLeave(ctx context.Context, req RespondLeaveRequest) (LeaveRequest, error)
	GetLeaveRequest(ctx context.Context, id string) (LeaveRequest, error)
	GetLeaveRequests(ctx context.Context, filter LeaveFilter) ([]LeaveRequest, error)
}
