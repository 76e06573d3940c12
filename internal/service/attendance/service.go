package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/bistrohq/staff-backend-go/internal/domain/attendance"
	"github.com/bistrohq/staff-backend-go/internal/domain/bonus"
	"github.com/bistrohq/staff-backend-go/internal/domain/employee"
	"github.com/bistrohq/staff-backend-go/internal/domain/leave"
	"github.com/bistrohq/staff-backend-go/internal/domain/shift"
	"github.com/bistrohq/staff-backend-go/internal/pkg/clock"
	"github.com/bistrohq/staff-backend-go/internal/pkg/database"
	"github.com/bistrohq/staff-backend-go/internal/pkg/validator"
)

type Config struct {
	// Location is the restaurant's wall-clock zone. Shift times are read in it.
	Location          *time.Location
	BonusMonthlyHours int
}

type AttendanceServiceImpl struct {
	tx             database.Transactor
	attendanceRepo attendance.AttendanceRepository
	shiftRepo      shift.ShiftRepository
	employeeRepo   employee.EmployeeRepository
	leaveRepo      leave.LeaveRequestRepository
	clock          clock.Clock
	config         Config
}

func NewAttendanceService(
	tx database.Transactor,
	attendanceRepo attendance.AttendanceRepository,
	shiftRepo shift.ShiftRepository,
	employeeRepo employee.EmployeeRepository,
	leaveRepo leave.LeaveRequestRepository,
	clk clock.Clock,
	cfg Config,
) attendance.AttendanceService {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &AttendanceServiceImpl{
		tx:             tx,
		attendanceRepo: attendanceRepo,
		shiftRepo:      shiftRepo,
		employeeRepo:   employeeRepo,
		leaveRepo:      leaveRepo,
		clock:          clk,
		config:         cfg,
	}
}

// tracked is a shift with its attendance record, if any, and the status that
// governs clock-in and clock-out.
type tracked struct {
	shift  shift.Shift
	record *attendance.Record
	status shift.Status
}

func statusFromRecord(st attendance.Status) shift.Status {
	switch st {
	case attendance.StatusStarted:
		return shift.StatusStarted
	case attendance.StatusCompleted:
		return shift.StatusCompleted
	case attendance.StatusAbsent:
		return shift.StatusMissed
	}
	return shift.StatusScheduled
}

func (s *AttendanceServiceImpl) track(ctx context.Context, sh shift.Shift) (tracked, error) {
	rec, err := s.attendanceRepo.GetByShiftID(ctx, sh.ID)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return tracked{shift: sh, status: sh.Status}, nil
		}
		return tracked{}, fmt.Errorf("failed to get attendance for shift %s: %w", sh.ID, err)
	}
	return tracked{shift: sh, record: &rec, status: statusFromRecord(rec.Status)}, nil
}

// locate returns the candidate shifts for a clock action, in start order.
func (s *AttendanceServiceImpl) locate(ctx context.Context, employeeID, date string, shiftID *string) ([]tracked, error) {
	var shifts []shift.Shift
	if shiftID != nil && *shiftID != "" {
		sh, err := s.shiftRepo.GetByID(ctx, *shiftID)
		if err != nil {
			return nil, err
		}
		if sh.EmployeeID != employeeID {
			return nil, shift.ErrShiftNotFound
		}
		shifts = []shift.Shift{sh}
	} else {
		var err error
		shifts, err = s.shiftRepo.List(ctx, shift.ShiftFilter{EmployeeID: employeeID, Date: date})
		if err != nil {
			return nil, fmt.Errorf("failed to list shifts: %w", err)
		}
	}
	if len(shifts) == 0 {
		return nil, shift.ErrShiftNotFound
	}

	out := make([]tracked, 0, len(shifts))
	for _, sh := range shifts {
		t, err := s.track(ctx, sh)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func hasStatus(ts []tracked, st shift.Status) bool {
	for _, t := range ts {
		if t.status == st {
			return true
		}
	}
	return false
}

func appendNote(existing, note string) string {
	note = strings.TrimSpace(note)
	switch {
	case note == "":
		return existing
	case existing == "":
		return note
	}
	return existing + "\n" + note
}

func roundHours(h float64) float64 {
	return math.Round(h*100) / 100
}

// StartShift implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) StartShift(ctx context.Context, req attendance.StartShiftRequest) (attendance.ShiftAttendance, error) {
	if err := req.Validate(); err != nil {
		return attendance.ShiftAttendance{}, err
	}

	var result attendance.ShiftAttendance
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		candidates, err := s.locate(ctx, req.EmployeeID, req.Date, req.ShiftID)
		if err != nil {
			return err
		}
		if hasStatus(candidates, shift.StatusStarted) {
			return attendance.ErrAlreadyStarted
		}

		var target *tracked
		for i := range candidates {
			if candidates[i].status == shift.StatusScheduled {
				target = &candidates[i]
				break
			}
		}
		if target == nil {
			switch {
			case hasStatus(candidates, shift.StatusCompleted):
				return attendance.ErrAlreadyCompleted
			case hasStatus(candidates, shift.StatusMissed):
				return attendance.ErrShiftMissed
			}
			return shift.ErrShiftNotFound
		}

		scheduledStart, _, err := target.shift.Window(s.config.Location)
		if err != nil {
			return err
		}
		now := s.clock.Now().In(s.config.Location)
		late := attendance.MinutesBetween(scheduledStart, now)
		startedAt := now.UTC()

		rec := attendance.Record{
			EmployeeID: target.shift.EmployeeID,
			ShiftID:    &target.shift.ID,
			Date:       target.shift.Date,
			CreatedAt:  startedAt,
		}
		if target.record != nil {
			rec = *target.record
		}
		rec.StartTime = &startedAt
		rec.Status = attendance.StatusStarted
		rec.IsLate = late > 0
		rec.LateMinutes = late
		rec.Notes = appendNote(rec.Notes, req.Notes)
		rec.UpdatedAt = startedAt

		if target.record != nil {
			if err := s.attendanceRepo.Update(ctx, rec); err != nil {
				return fmt.Errorf("failed to update attendance: %w", err)
			}
		} else {
			if rec, err = s.attendanceRepo.Create(ctx, rec); err != nil {
				return fmt.Errorf("failed to create attendance: %w", err)
			}
		}

		target.shift.Status = shift.StatusStarted
		target.shift.UpdatedAt = startedAt
		if err := s.shiftRepo.Update(ctx, target.shift); err != nil {
			return fmt.Errorf("failed to update shift: %w", err)
		}

		result = attendance.NewShiftAttendance(target.shift, &rec)
		return nil
	})
	if err != nil {
		return attendance.ShiftAttendance{}, err
	}

	slog.Info("Shift started", "shift_id", result.ID, "employee_id", result.EmployeeID, "late_minutes", result.LateMinutes)
	return result, nil
}

// EndShift implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) EndShift(ctx context.Context, req attendance.EndShiftRequest) (attendance.ShiftAttendance, error) {
	if err := req.Validate(); err != nil {
		return attendance.ShiftAttendance{}, err
	}

	var result attendance.ShiftAttendance
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		candidates, err := s.locate(ctx, req.EmployeeID, req.Date, req.ShiftID)
		if err != nil {
			return err
		}

		var target *tracked
		for i := range candidates {
			if candidates[i].status == shift.StatusStarted {
				target = &candidates[i]
				break
			}
		}
		if target == nil {
			switch {
			case hasStatus(candidates, shift.StatusScheduled):
				return attendance.ErrShiftNotStarted
			case hasStatus(candidates, shift.StatusCompleted):
				return attendance.ErrAlreadyCompleted
			case hasStatus(candidates, shift.StatusMissed):
				return attendance.ErrShiftMissed
			}
			return shift.ErrShiftNotFound
		}

		rec, err := s.closeRecord(ctx, target, s.clock.Now().In(s.config.Location), req.Notes)
		if err != nil {
			return err
		}
		result = attendance.NewShiftAttendance(target.shift, &rec)
		return nil
	})
	if err != nil {
		return attendance.ShiftAttendance{}, err
	}

	slog.Info("Shift ended", "shift_id", result.ID, "employee_id", result.EmployeeID, "overtime_minutes", result.Overtime)
	return result, nil
}

// closeRecord completes a started shift at end. A started shift without a
// record is treated as started on schedule. t.shift is updated in place.
func (s *AttendanceServiceImpl) closeRecord(ctx context.Context, t *tracked, end time.Time, note string) (attendance.Record, error) {
	scheduledStart, scheduledEnd, err := t.shift.Window(s.config.Location)
	if err != nil {
		return attendance.Record{}, err
	}
	endedAt := end.UTC()

	rec := attendance.Record{
		EmployeeID: t.shift.EmployeeID,
		ShiftID:    &t.shift.ID,
		Date:       t.shift.Date,
		CreatedAt:  endedAt,
	}
	if t.record != nil {
		rec = *t.record
	}
	if rec.StartTime == nil {
		st := scheduledStart.UTC()
		rec.StartTime = &st
	}

	duration := attendance.DurationHours(*rec.StartTime, endedAt)
	rec.EndTime = &endedAt
	rec.Duration = &duration
	rec.Status = attendance.StatusCompleted
	rec.Overtime = attendance.MinutesBetween(scheduledEnd, end)
	rec.EarlyLeaveMinutes = attendance.MinutesBetween(end, scheduledEnd)
	rec.Notes = appendNote(rec.Notes, note)
	rec.UpdatedAt = endedAt

	if t.record != nil {
		if err := s.attendanceRepo.Update(ctx, rec); err != nil {
			return attendance.Record{}, fmt.Errorf("failed to update attendance: %w", err)
		}
	} else {
		if rec, err = s.attendanceRepo.Create(ctx, rec); err != nil {
			return attendance.Record{}, fmt.Errorf("failed to create attendance: %w", err)
		}
	}

	t.shift.Status = shift.StatusCompleted
	t.shift.UpdatedAt = endedAt
	if err := s.shiftRepo.Update(ctx, t.shift); err != nil {
		return attendance.Record{}, fmt.Errorf("failed to update shift: %w", err)
	}
	return rec, nil
}

// CurrentShift implements attendance.AttendanceService. An empty date searches
// every date.
func (s *AttendanceServiceImpl) CurrentShift(ctx context.Context, employeeID, date string) (attendance.ShiftAttendance, error) {
	shifts, err := s.shiftRepo.List(ctx, shift.ShiftFilter{EmployeeID: employeeID, Date: date})
	if err != nil {
		return attendance.ShiftAttendance{}, fmt.Errorf("failed to list shifts: %w", err)
	}
	for _, sh := range shifts {
		t, err := s.track(ctx, sh)
		if err != nil {
			return attendance.ShiftAttendance{}, err
		}
		if t.status == shift.StatusStarted {
			return attendance.NewShiftAttendance(t.shift, t.record), nil
		}
	}
	return attendance.ShiftAttendance{}, attendance.ErrNoOpenShift
}

func (s *AttendanceServiceImpl) list(ctx context.Context, filter attendance.RecordFilter) ([]attendance.Record, error) {
	records, err := s.attendanceRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	if records == nil {
		records = []attendance.Record{}
	}
	return records, nil
}

// GetAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetAttendance(ctx context.Context, employeeID, date string) ([]attendance.Record, error) {
	return s.list(ctx, attendance.RecordFilter{EmployeeID: employeeID, Date: date})
}

// ListByDate implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListByDate(ctx context.Context, date string) ([]attendance.Record, error) {
	if _, ok := validator.IsValidDate(date); !ok {
		return nil, validator.ValidationErrors{{Field: "date", Message: "date must be YYYY-MM-DD"}}
	}
	return s.list(ctx, attendance.RecordFilter{Date: date})
}

// ListByEmployee implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListByEmployee(ctx context.Context, employeeID string) ([]attendance.Record, error) {
	return s.list(ctx, attendance.RecordFilter{EmployeeID: employeeID})
}

// MarkAbsent implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) MarkAbsent(ctx context.Context, req attendance.MarkAbsentRequest) (attendance.Record, error) {
	if err := req.Validate(); err != nil {
		return attendance.Record{}, err
	}

	var result attendance.Record
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		now := s.clock.Now().UTC()
		candidates, err := s.locate(ctx, req.EmployeeID, req.Date, nil)
		if err != nil && !errors.Is(err, shift.ErrShiftNotFound) {
			return err
		}

		if len(candidates) == 0 {
			existing, err := s.attendanceRepo.List(ctx, attendance.RecordFilter{EmployeeID: req.EmployeeID, Date: req.Date})
			if err != nil {
				return fmt.Errorf("failed to list attendance: %w", err)
			}
			for _, rec := range existing {
				switch rec.Status {
				case attendance.StatusStarted:
					return attendance.ErrAlreadyStarted
				case attendance.StatusCompleted, attendance.StatusAbsent:
					return attendance.ErrAlreadyCompleted
				}
			}
			result, err = s.attendanceRepo.Create(ctx, attendance.Record{
				EmployeeID: req.EmployeeID,
				Date:       req.Date,
				Status:     attendance.StatusAbsent,
				Notes:      strings.TrimSpace(req.Notes),
				CreatedAt:  now,
				UpdatedAt:  now,
			})
			if err != nil {
				return fmt.Errorf("failed to create attendance: %w", err)
			}
			return nil
		}

		if hasStatus(candidates, shift.StatusStarted) {
			return attendance.ErrAlreadyStarted
		}
		for _, t := range candidates {
			if t.status == shift.StatusScheduled {
				result, err = s.markMissed(ctx, t, now, req.Notes)
				return err
			}
		}
		if hasStatus(candidates, shift.StatusCompleted) {
			return attendance.ErrAlreadyCompleted
		}
		return attendance.ErrShiftMissed
	})
	if err != nil {
		return attendance.Record{}, err
	}

	slog.Info("Employee marked absent", "employee_id", req.EmployeeID, "date", req.Date)
	return result, nil
}

func (s *AttendanceServiceImpl) markMissed(ctx context.Context, t tracked, now time.Time, note string) (attendance.Record, error) {
	var (
		rec attendance.Record
		err error
	)
	if t.record != nil {
		rec = *t.record
		rec.Status = attendance.StatusAbsent
		rec.Notes = appendNote(rec.Notes, note)
		rec.UpdatedAt = now
		err = s.attendanceRepo.Update(ctx, rec)
	} else {
		rec, err = s.attendanceRepo.Create(ctx, attendance.Record{
			EmployeeID: t.shift.EmployeeID,
			ShiftID:    &t.shift.ID,
			Date:       t.shift.Date,
			Status:     attendance.StatusAbsent,
			Notes:      strings.TrimSpace(note),
			CreatedAt:  now,
			UpdatedAt:  now,
		})
	}
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to record absence: %w", err)
	}

	t.shift.Status = shift.StatusMissed
	t.shift.UpdatedAt = now
	if err := s.shiftRepo.Update(ctx, t.shift); err != nil {
		return attendance.Record{}, fmt.Errorf("failed to update shift: %w", err)
	}
	return rec, nil
}

// UpdateAttendance implements attendance.AttendanceService. A status change
// is mirrored onto the linked shift.
func (s *AttendanceServiceImpl) UpdateAttendance(ctx context.Context, req attendance.UpdateAttendanceRequest) (attendance.Record, error) {
	if err := req.Validate(); err != nil {
		return attendance.Record{}, err
	}

	var result attendance.Record
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		rec, err := s.attendanceRepo.GetByID(ctx, req.ID)
		if err != nil {
			return err
		}
		previous := rec.Status
		req.Apply(&rec)
		// One-sided corrections are checked against the stored times.
		if rec.StartTime != nil && rec.EndTime != nil && rec.EndTime.Before(*rec.StartTime) {
			var errs validator.ValidationErrors
			errs.Add("endTime", "endTime must not be before startTime")
			return errs
		}
		rec.UpdatedAt = s.clock.Now().UTC()

		if err := s.attendanceRepo.Update(ctx, rec); err != nil {
			return fmt.Errorf("failed to update attendance: %w", err)
		}

		if rec.ShiftID != nil && rec.Status != previous {
			sh, err := s.shiftRepo.GetByID(ctx, *rec.ShiftID)
			switch {
			case errors.Is(err, shift.ErrShiftNotFound):
			case err != nil:
				return err
			default:
				sh.Status = statusFromRecord(rec.Status)
				sh.UpdatedAt = rec.UpdatedAt
				if err := s.shiftRepo.Update(ctx, sh); err != nil {
					return fmt.Errorf("failed to update shift: %w", err)
				}
			}
		}
		result = rec
		return nil
	})
	if err != nil {
		return attendance.Record{}, err
	}
	return result, nil
}

// GetReport implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetReport(ctx context.Context, employeeID string, period attendance.Period) (attendance.AttendanceReport, error) {
	if _, err := attendance.ParsePeriod(string(period)); err != nil {
		return attendance.AttendanceReport{}, err
	}
	if period == "" {
		period = attendance.PeriodAll
	}
	from, to := period.Window(s.clock.Now().In(s.config.Location))
	return s.report(ctx, employeeID, period, from, to)
}

// GetYearReport implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetYearReport(ctx context.Context, employeeID string, year int) (attendance.AttendanceReport, error) {
	period := attendance.PeriodYear
	if year == 0 {
		period = attendance.PeriodAll
	}
	from, to := attendance.YearWindow(year)
	return s.report(ctx, employeeID, period, from, to)
}

func (s *AttendanceServiceImpl) report(ctx context.Context, employeeID string, period attendance.Period, from, to string) (attendance.AttendanceReport, error) {
	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return attendance.AttendanceReport{}, err
	}

	records, err := s.attendanceRepo.List(ctx, attendance.RecordFilter{EmployeeID: employeeID, From: from, To: to})
	if err != nil {
		return attendance.AttendanceReport{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	rep := attendance.AttendanceReport{
		EmployeeID:   emp.ID,
		EmployeeName: emp.Name,
		Period:       period,
		From:         from,
		To:           to,
		TotalShifts:  len(records),
	}
	var hours float64
	for _, rec := range records {
		switch rec.Status {
		case attendance.StatusCompleted:
			rep.AttendedShifts++
		case attendance.StatusAbsent:
			rep.MissedShifts++
		}
		hours += rec.Hours()
		rep.TotalOvertime += rec.Overtime
		rep.TotalLate += rec.LateMinutes
	}
	rep.TotalHours = roundHours(hours)
	rep.AttendanceRate = attendance.AttendanceRate(rep.AttendedShifts, rep.TotalShifts)

	rep.LeavesUsed, err = s.leaveRepo.CountApproved(ctx, employeeID, from, to)
	if err != nil {
		return attendance.AttendanceReport{}, fmt.Errorf("failed to count approved leaves: %w", err)
	}

	eligibility := bonus.Evaluate(rep.LeavesUsed)
	rep.BonusEligible = eligibility.Eligible
	rep.BonusAmount = bonus.Amount(emp.HourlyRate, s.config.BonusMonthlyHours, eligibility.BonusPercentage)
	return rep, nil
}

// MarkMissedShifts implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) MarkMissedShifts(ctx context.Context) (int, error) {
	marked := 0
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		now := s.clock.Now().In(s.config.Location)
		shifts, err := s.shiftRepo.List(ctx, shift.ShiftFilter{
			To:     now.Format(validator.DateLayout),
			Status: []shift.Status{shift.StatusScheduled},
		})
		if err != nil {
			return fmt.Errorf("failed to list scheduled shifts: %w", err)
		}

		for _, sh := range shifts {
			_, end, err := sh.Window(s.config.Location)
			if err != nil {
				slog.Warn("Skipping shift with unreadable schedule", "shift_id", sh.ID, "error", err)
				continue
			}
			if !now.After(end) {
				continue
			}
			t, err := s.track(ctx, sh)
			if err != nil {
				return err
			}
			if t.status != shift.StatusScheduled {
				continue
			}
			if _, err := s.markMissed(ctx, t, now.UTC(), "Auto-marked absent: no clock-in"); err != nil {
				return err
			}
			marked++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return marked, nil
}

// CloseStaleShifts implements attendance.AttendanceService. Records are
// closed at the scheduled end.
func (s *AttendanceServiceImpl) CloseStaleShifts(ctx context.Context, grace time.Duration) (int, error) {
	closed := 0
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		now := s.clock.Now().In(s.config.Location)
		open, err := s.attendanceRepo.List(ctx, attendance.RecordFilter{Status: []attendance.Status{attendance.StatusStarted}})
		if err != nil {
			return fmt.Errorf("failed to list open attendance: %w", err)
		}

		for _, rec := range open {
			if rec.ShiftID == nil {
				continue
			}
			sh, err := s.shiftRepo.GetByID(ctx, *rec.ShiftID)
			if errors.Is(err, shift.ErrShiftNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			_, end, err := sh.Window(s.config.Location)
			if err != nil {
				continue
			}
			if !now.After(end.Add(grace)) {
				continue
			}
			if _, err := s.closeRecord(ctx, &tracked{shift: sh, record: &rec, status: shift.StatusStarted}, end, "Auto-closed at scheduled end"); err != nil {
				return err
			}
			closed++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return closed, nil
}
