package attendance

import (
	"time"

	"github.com/bistrohq/staff-backend-go/internal/domain/shift"
	"github.com/bistrohq/staff-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type RecordFilter struct {
	EmployeeID string
	Date       string
	From       string
	To         string
	Status     []Status
}

func (f RecordFilter) Match(r Record) bool {
	if f.EmployeeID != "" && r.EmployeeID != f.EmployeeID {
		return false
	}
	if f.Date != "" && r.Date != f.Date {
		return false
	}
	if f.From != "" && r.Date < f.From {
		return false
	}
	if f.To != "" && r.Date > f.To {
		return false
	}
	if len(f.Status) > 0 {
		for _, st := range f.Status {
			if r.Status == st {
				return true
			}
		}
		return false
	}
	return true
}

// StartShiftRequest locates the shift by ShiftID, or by employee and date.
type StartShiftRequest struct {
	EmployeeID string  `json:"employeeId"`
	Date       string  `json:"date"`
	ShiftID    *string `json:"shiftId,omitempty"`
	Notes      string  `json:"notes,omitempty"`
}

func (r *StartShiftRequest) Validate() error {
	return validateLocator(r.EmployeeID, r.Date, r.ShiftID)
}

type EndShiftRequest struct {
	EmployeeID string  `json:"employeeId"`
	Date       string  `json:"date"`
	ShiftID    *string `json:"shiftId,omitempty"`
	Notes      string  `json:"notes,omitempty"`
}

func (r *EndShiftRequest) Validate() error {
	return validateLocator(r.EmployeeID, r.Date, r.ShiftID)
}

func validateLocator(employeeID, date string, shiftID *string) error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(employeeID) {
		errs.Add("employeeId", "employeeId is required")
	}
	if shiftID == nil || validator.IsEmpty(*shiftID) {
		if _, ok := validator.IsValidDate(date); !ok {
			errs.Add("date", "date must be YYYY-MM-DD when shiftId is not given")
		}
	}
	return errs.Err()
}

type MarkAbsentRequest struct {
	EmployeeID string `json:"employeeId"`
	Date       string `json:"date"`
	Notes      string `json:"notes,omitempty"`
}

func (r *MarkAbsentRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.EmployeeID) {
		errs.Add("employeeId", "employeeId is required")
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs.Add("date", "date must be YYYY-MM-DD")
	}
	return errs.Err()
}

// UpdateAttendanceRequest is an admin correction of a record.
type UpdateAttendanceRequest struct {
	ID          string  `json:"-"`
	StartTime   *string `json:"startTime,omitempty"` // RFC3339
	EndTime     *string `json:"endTime,omitempty"`   // RFC3339
	Status      *Status `json:"status,omitempty"`
	Notes       *string `json:"notes,omitempty"`
	LateMinutes *int    `json:"lateMinutes,omitempty"`
	Overtime    *int    `json:"overtime,omitempty"`

	startTime *time.Time
	endTime   *time.Time
}

func (r *UpdateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs.Add("id", "id is required")
	}
	if r.StartTime != nil {
		if t, ok := validator.IsValidDateTime(*r.StartTime); ok {
			r.startTime = &t
		} else {
			errs.Add("startTime", "startTime must be an RFC3339 timestamp")
		}
	}
	if r.EndTime != nil {
		if t, ok := validator.IsValidDateTime(*r.EndTime); ok {
			r.endTime = &t
		} else {
			errs.Add("endTime", "endTime must be an RFC3339 timestamp")
		}
	}
	if r.startTime != nil && r.endTime != nil && r.endTime.Before(*r.startTime) {
		errs.Add("endTime", "endTime must not be before startTime")
	}
	if r.Status != nil {
		switch *r.Status {
		case StatusPending, StatusStarted, StatusCompleted, StatusAbsent:
		default:
			errs.Add("status", "status must be pending, started, completed or absent")
		}
	}
	if r.LateMinutes != nil && *r.LateMinutes < 0 {
		errs.Add("lateMinutes", "lateMinutes must not be negative")
	}
	if r.Overtime != nil && *r.Overtime < 0 {
		errs.Add("overtime", "overtime must not be negative")
	}

	return errs.Err()
}

// Apply copies the corrections onto rec and recomputes the duration when both ends are known.
// Validate must have been called first.
func (r UpdateAttendanceRequest) Apply(rec *Record) {
	if r.startTime != nil {
		t := r.startTime.UTC()
		rec.StartTime = &t
	}
	if r.endTime != nil {
		t := r.endTime.UTC()
		rec.EndTime = &t
	}
	if r.Status != nil {
		rec.Status = *r.Status
	}
	if r.Notes != nil {
		rec.Notes = *r.Notes
	}
	if r.LateMinutes != nil {
		rec.LateMinutes = *r.LateMinutes
		rec.IsLate = *r.LateMinutes > 0
	}
	if r.Overtime != nil {
		rec.Overtime = *r.Overtime
	}
	if rec.StartTime != nil && rec.EndTime != nil {
		d := DurationHours(*rec.StartTime, *rec.EndTime)
		rec.Duration = &d
	}
}

// ShiftAttendance is a shift with its clock-in/out overlay.
type ShiftAttendance struct {
	shift.Shift
	AttendanceID    string     `json:"attendanceId,omitempty"`
	ActualStartTime *time.Time `json:"actualStartTime,omitempty"`
	ActualEndTime   *time.Time `json:"actualEndTime,omitempty"`
	ActualStatus    Status     `json:"actualStatus,omitempty"`
	Duration        *float64   `json:"duration,omitempty"`
	IsLate          bool       `json:"isLate"`
	LateMinutes     int        `json:"lateMinutes"`
	Overtime        int        `json:"overtime"`
}

func NewShiftAttendance(s shift.Shift, rec *Record) ShiftAttendance {
	out := ShiftAttendance{Shift: s}
	if rec != nil {
		out.AttendanceID = rec.ID
		out.ActualStartTime = rec.StartTime
		out.ActualEndTime = rec.EndTime
		out.ActualStatus = rec.Status
		out.Duration = rec.Duration
		out.IsLate = rec.IsLate
		out.LateMinutes = rec.LateMinutes
		out.Overtime = rec.Overtime
	}
	return out
}

type AttendanceReport struct {
	EmployeeID     string          `json:"employeeId"`
	EmployeeName   string          `json:"employeeName,omitempty"`
	Period         Period          `json:"period"`
	From           string          `json:"from,omitempty"`
	To             string          `json:"to,omitempty"`
	TotalShifts    int             `json:"totalShifts"`
	AttendedShifts int             `json:"attendedShifts"`
	MissedShifts   int             `json:"missedShifts"`
	TotalHours     float64         `json:"totalHours"`
	AttendanceRate int             `json:"attendanceRate"`
	LeavesUsed     int             `json:"leavesUsed"`
	TotalOvertime  int             `json:"totalOvertime"`
	TotalLate      int             `json:"totalLate"`
	BonusEligible  bool            `json:"bonusEligible"`
	BonusAmount    decimal.Decimal `json:"bonusAmount"`
}

// AttendanceRate is round(attended/total*100), 0 when nothing was recorded.
func AttendanceRate(attended, total int) int {
	if total == 0 {
		return 0
	}
	return int(float64(attended)/float64(total)*100 + 0.5)
}
