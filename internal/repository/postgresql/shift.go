package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/bistrohq/staff-backend-go/internal/domain/shift"
	"github.com/bistrohq/staff-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type shiftRepositoryImpl struct {
	db *database.DB
}

func NewShiftRepository(db *database.DB) shift.ShiftRepository {
	return &shiftRepositoryImpl{db: db}
}

const shiftColumns = `id, employee_id, day, date, start_time, end_time, type, status, created_at, updated_at`

func scanShift(row pgx.Row) (shift.Shift, error) {
	var s shift.Shift
	err := row.Scan(&s.ID, &s.EmployeeID, &s.Day, &s.Date, &s.StartTime, &s.EndTime, &s.Type, &s.Status, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

// Create implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) Create(ctx context.Context, s shift.Shift) (shift.Shift, error) {
	q := getQuerier(ctx, r.db)
	if s.ID == "" {
		s.ID = newID()
	}

	query := `
		INSERT INTO shifts (id, employee_id, day, date, start_time, end_time, type, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`
	err := q.QueryRow(ctx, query, s.ID, s.EmployeeID, s.Day, s.Date, s.StartTime, s.EndTime, s.Type, s.Status).
		Scan(&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return shift.Shift{}, fmt.Errorf("failed to insert shift: %w", err)
	}
	return s, nil
}

// GetByID implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) GetByID(ctx context.Context, id string) (shift.Shift, error) {
	q := getQuerier(ctx, r.db)
	s, err := scanShift(q.QueryRow(ctx, `SELECT `+shiftColumns+` FROM shifts WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.Shift{}, shift.ErrShiftNotFound
		}
		return shift.Shift{}, fmt.Errorf("failed to get shift: %w", err)
	}
	return s, nil
}

// List implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) List(ctx context.Context, filter shift.ShiftFilter) ([]shift.Shift, error) {
	q := getQuerier(ctx, r.db)

	var w where
	if filter.Date != "" {
		w.add("date = $%d", filter.Date)
	}
	if filter.EmployeeID != "" {
		w.add("employee_id = $%d", filter.EmployeeID)
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

	rows, err := q.Query(ctx, `SELECT `+shiftColumns+` FROM shifts`+w.String()+` ORDER BY date, start_time, created_at`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	defer rows.Close()

	var out []shift.Shift
	for rows.Next() {
		s, err := scanShift(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Update implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) Update(ctx context.Context, s shift.Shift) error {
	q := getQuerier(ctx, r.db)

	query := `
		UPDATE shifts SET
			employee_id = $2, day = $3, date = $4, start_time = $5, end_time = $6,
			type = $7, status = $8, updated_at = NOW()
		WHERE id = $1
	`
	tag, err := q.Exec(ctx, query, s.ID, s.EmployeeID, s.Day, s.Date, s.StartTime, s.EndTime, s.Type, s.Status)
	if err != nil {
		return fmt.Errorf("failed to update shift: %w", err)
	}
	return affectedOne(tag, shift.ErrShiftNotFound)
}

// Delete implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := getQuerier(ctx, r.db)
	tag, err := q.Exec(ctx, `DELETE FROM shifts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete shift: %w", err)
	}
	return affectedOne(tag, shift.ErrShiftNotFound)
}

// DeleteByEmployeeBetween implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) DeleteByEmployeeBetween(ctx context.Context, employeeID, from, to string) (int, error) {
	q := getQuerier(ctx, r.db)
	tag, err := q.Exec(ctx, `DELETE FROM shifts WHERE employee_id = $1 AND date >= $2 AND date <= $3`, employeeID, from, to)
	if err != nil {
		return 0, fmt.Errorf("failed to delete shifts: %w", err)
	}
	return int(tag.RowsAffected()), nil
}
