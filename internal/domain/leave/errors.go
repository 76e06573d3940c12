package leave

import "errors"

var (
	ErrLeaveRequestNotFound  = errors.New("Leave request not found")
	ErrLeaveAlreadyProcessed = errors.New("Leave request already processed")
	ErrInvalidDateRange      = errors.New("end date must not be before start date")
	ErrOverlappingLeave      = errors.New("leave overlaps an existing pending or approved request")
)
