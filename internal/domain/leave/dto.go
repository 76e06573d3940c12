package leave

import "github.com/bistrohq/staff-backend-go/internal/pkg/validator"

type LeaveFilter struct {
	EmployeeID string
	Status     *LeaveRequestStatus
}

func (f LeaveFilter) Match(l LeaveRequest) bool {
	if f.EmployeeID != "" && l.EmployeeID != f.EmployeeID {
		return false
	}
	if f.Status != nil && l.Status != *f.Status {
		return false
	}
	return true
}

type CreateLeaveRequest struct {
	EmployeeID string    `json:"employeeId"`
	StartDate  string    `json:"startDate"`
	EndDate    string    `json:"endDate"`
	Type       LeaveType `json:"type"`
	Reason     string    `json:"reason"`
}

func (r *CreateLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs.Add("employeeId", "employeeId is required")
	}

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs.Add("startDate", "startDate must be YYYY-MM-DD")
	}
	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs.Add("endDate", "endDate must be YYYY-MM-DD")
	}

	if !r.Type.IsValid() {
		errs.Add("type", "type must be sick, vacation, personal or other")
	}

	if err := errs.Err(); err != nil {
		return err
	}

	if end.Before(start) {
		return ErrInvalidDateRange
	}
	return nil
}

// RespondLeaveRequest approves or rejects a pending request.
type RespondLeaveRequest struct {
	ID          string  `json:"-"`
	Note        *string `json:"note,omitempty"`
	RespondedBy string  `json:"-"`
}

func (r *RespondLeaveRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.ID) {
		errs.Add("id", "id is required")
	}
	return errs.Err()
}
