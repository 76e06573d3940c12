package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/bistrohq/staff-backend-go/internal/domain/attendance"
	"github.com/bistrohq/staff-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

const attendanceColumns = `id, employee_id, shift_id, date, start_time, end_time, duration, status, notes,
	is_late, late_minutes, overtime, early_leave_minutes, created_at, updated_at`

func scanRecord(row pgx.Row) (attendance.Record, error) {
	var rec attendance.Record
	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.ShiftID, &rec.Date, &rec.StartTime, &rec.EndTime, &rec.Duration,
		&rec.Status, &rec.Notes, &rec.IsLate, &rec.LateMinutes, &rec.Overtime, &rec.EarlyLeaveMinutes,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	return rec, err
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Create(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	q := getQuerier(ctx, r.db)
	if rec.ID == "" {
		rec.ID = newID()
	}

	query := `
		INSERT INTO attendance (
			id, employee_id, shift_id, date, start_time, end_time, duration, status, notes,
			is_late, late_minutes, overtime, early_leave_minutes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		rec.ID, rec.EmployeeID, rec.ShiftID, rec.Date, rec.StartTime, rec.EndTime, rec.Duration, rec.Status, rec.Notes,
		rec.IsLate, rec.LateMinutes, rec.Overtime, rec.EarlyLeaveMinutes,
	).Scan(&rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to insert attendance: %w", err)
	}
	return rec, nil
}

func (r *attendanceRepositoryImpl) getOne(ctx context.Context, column, value string) (attendance.Record, error) {
	q := getQuerier(ctx, r.db)
	rec, err := scanRecord(q.QueryRow(ctx, `SELECT `+attendanceColumns+` FROM attendance WHERE `+column+` = $1`, value))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	return rec, nil
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.Record, error) {
	return r.getOne(ctx, "id", id)
}

// GetByShiftID implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByShiftID(ctx context.Context, shiftID string) (attendance.Record, error) {
	return r.getOne(ctx, "shift_id", shiftID)
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) List(ctx context.Context, filter attendance.RecordFilter) ([]attendance.Record, error) {
	q := getQuerier(ctx, r.db)

	var w where
	if filter.EmployeeID != "" {
		w.add("employee_id = $%d", filter.EmployeeID)
	}
	if filter.Date != "" {
		w.add("date = $%d", filter.Date)
	}
	if filter.From != "" {
		w.add("date >= $%d", filter.From)
	}
	if filter.To != "" {
		w.add("date <= $%d", filter.To)
	}
	if len(filter.Status) > 0 {
		w.add("status = ANY($%d)", stringsOf(filter.Status))
	}

	rows, err := q.Query(ctx, `SELECT `+attendanceColumns+` FROM attendance`+w.String()+` ORDER BY date, created_at`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	defer rows.Close()

	var out []attendance.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Update implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Update(ctx context.Context, rec attendance.Record) error {
	q := getQuerier(ctx, r.db)

	query := `
		UPDATE attendance SET
			employee_id = $2, shift_id = $3, date = $4, start_time = $5, end_time = $6, duration = $7,
			status = $8, notes = $9, is_late = $10, late_minutes = $11, overtime = $12,
			early_leave_minutes = $13, updated_at = NOW()
		WHERE id = $1
	`
	tag, err := q.Exec(ctx, query,
		rec.ID, rec.EmployeeID, rec.ShiftID, rec.Date, rec.StartTime, rec.EndTime, rec.Duration,
		rec.Status, rec.Notes, rec.IsLate, rec.LateMinutes, rec.Overtime, rec.EarlyLeaveMinutes,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance: %w", err)
	}
	return affectedOne(tag, attendance.ErrAttendanceNotFound)
}
