package leave

import (
	"time"
)

type LeaveType string

const (
	TypeSick     LeaveType = "sick"
	TypeVacation LeaveType = "vacation"
	TypePersonal LeaveType = "personal"
	TypeOther    LeaveType = "other"
)

func (t LeaveType) IsValid() bool {
	switch t {
	case TypeSick, TypeVacation, TypePersonal, TypeOther:
		return true
	}
	return false
}

type LeaveRequestStatus string

const (
	LeaveRequestStatusPending  LeaveRequestStatus = "pending"
	LeaveRequestStatusApproved LeaveRequestStatus = "approved"
	LeaveRequestStatusRejected LeaveRequestStatus = "rejected"
)

type LeaveRequest struct {
	ID           string             `json:"id"`
	EmployeeID   string             `json:"employeeId"`
	StartDate    string             `json:"startDate"`
	EndDate      string             `json:"endDate"`
	Type         LeaveType          `json:"type"`
	Reason       string             `json:"reason"`
	Status       LeaveRequestStatus `json:"status"`
	RequestDate  time.Time          `json:"requestDate"`
	ResponseDate *time.Time         `json:"responseDate,omitempty"`
	ResponseNote *string            `json:"responseNote,omitempty"`
	RespondedBy  *string            `json:"respondedBy,omitempty"`
}

// IsTerminal reports whether the request was already approved or rejected.
func (l LeaveRequest) IsTerminal() bool {
	return l.Status != LeaveRequestStatusPending
}

// Covers reports whether date lies in [StartDate, EndDate].
func (l LeaveRequest) Covers(date string) bool {
	return date >= l.StartDate && date <= l.EndDate
}

// OverlapsRange reports whether the leave shares a day with [from, to]. Empty bounds are open.
func (l LeaveRequest) OverlapsRange(from, to string) bool {
	if from != "" && l.EndDate < from {
		return false
	}
	if to != "" && l.StartDate > to {
		return false
	}
	return true
}
