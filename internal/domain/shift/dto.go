package shift

import (
	"github.com/bistrohq/staff-backend-go/internal/pkg/validator"
)

// ShiftFilter narrows List. Zero fields match everything. Date is an exact
// calendar match; From/To bound the date inclusively.
type ShiftFilter struct {
	Date       string
	EmployeeID string
	From       string
	To         string
	Status     []Status
}

func (f ShiftFilter) Match(s Shift) bool {
	if f.Date != "" && s.Date != f.Date {
		return false
	}
	if f.EmployeeID != "" && s.EmployeeID != f.EmployeeID {
		return false
	}
	if f.From != "" && s.Date < f.From {
		return false
	}
	if f.To != "" && s.Date > f.To {
		return false
	}
	if len(f.Status) > 0 {
		found := false
		for _, st := range f.Status {
			if s.Status == st {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (f *ShiftFilter) Validate() error {
	var errs validator.ValidationErrors
	for field, v := range map[string]string{"date": f.Date, "from": f.From, "to": f.To} {
		if v == "" {
			continue
		}
		if _, ok := validator.IsValidDate(v); !ok {
			errs.Add(field, field+" must be YYYY-MM-DD")
		}
	}
	return errs.Err()
}

type CreateShiftRequest struct {
	EmployeeID string `json:"employeeId"`
	Date       string `json:"date"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
	Type       string `json:"type"`
}

func (r *CreateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs.Add("employeeId", "employeeId is required")
	}
	validateSchedule(&errs, r.Date, r.StartTime, r.EndTime)

	return errs.Err()
}

type UpdateShiftRequest struct {
	ID         string  `json:"-"`
	EmployeeID *string `json:"employeeId,omitempty"`
	Date       *string `json:"date,omitempty"`
	StartTime  *string `json:"startTime,omitempty"`
	EndTime    *string `json:"endTime,omitempty"`
	Type       *string `json:"type,omitempty"`
}

func (r *UpdateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs.Add("id", "id is required")
	}
	if r.EmployeeID != nil && validator.IsEmpty(*r.EmployeeID) {
		errs.Add("employeeId", "employeeId must not be empty")
	}
	if r.Date != nil {
		if _, ok := validator.IsValidDate(*r.Date); !ok {
			errs.Add("date", "date must be YYYY-MM-DD")
		}
	}
	if r.StartTime != nil && !validator.IsValidClock(*r.StartTime) {
		errs.Add("startTime", "startTime must be HH:MM")
	}
	if r.EndTime != nil && !validator.IsValidClock(*r.EndTime) {
		errs.Add("endTime", "endTime must be HH:MM")
	}

	return errs.Err()
}

// Apply copies the set fields onto s and re-derives the weekday.
func (r UpdateShiftRequest) Apply(s *Shift) {
	if r.EmployeeID != nil {
		s.EmployeeID = *r.EmployeeID
	}
	if r.Date != nil {
		s.Date = *r.Date
		s.Day = DayName(s.Date)
	}
	if r.StartTime != nil {
		s.StartTime = *r.StartTime
	}
	if r.EndTime != nil {
		s.EndTime = *r.EndTime
	}
	if r.Type != nil {
		s.Type = *r.Type
	}
}

func validateSchedule(errs *validator.ValidationErrors, date, start, end string) {
	if _, ok := validator.IsValidDate(date); !ok {
		errs.Add("date", "date must be YYYY-MM-DD")
	}
	if !validator.IsValidClock(start) {
		errs.Add("startTime", "startTime must be HH:MM")
	}
	if !validator.IsValidClock(end) {
		errs.Add("endTime", "endTime must be HH:MM")
	}
	if start != "" && start == end {
		errs.Add("endTime", "endTime must differ from startTime")
	}
}
