package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/bistrohq/staff-backend-go/internal/domain/leave"
	"github.com/bistrohq/staff-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveColumns = `id, employee_id, start_date, end_date, type, reason, status,
	request_date, response_date, response_note, responded_by`

func scanLeave(row pgx.Row) (leave.LeaveRequest, error) {
	var l leave.LeaveRequest
	err := row.Scan(&l.ID, &l.EmployeeID, &l.StartDate, &l.EndDate, &l.Type, &l.Reason, &l.Status,
		&l.RequestDate, &l.ResponseDate, &l.ResponseNote, &l.RespondedBy)
	return l, err
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := getQuerier(ctx, r.db)
	if req.ID == "" {
		req.ID = newID()
	}

	query := `
		INSERT INTO leave_requests (
			id, employee_id, start_date, end_date, type, reason, status,
			request_date, response_date, response_note, responded_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := q.Exec(ctx, query,
		req.ID, req.EmployeeID, req.StartDate, req.EndDate, req.Type, req.Reason, req.Status,
		req.RequestDate, req.ResponseDate, req.ResponseNote, req.RespondedBy,
	)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to insert leave request: %w", err)
	}
	return req, nil
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := getQuerier(ctx, r.db)
	l, err := scanLeave(q.QueryRow(ctx, `SELECT `+leaveColumns+` FROM leave_requests WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request: %w", err)
	}
	return l, nil
}

// List implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) List(ctx context.Context, filter leave.LeaveFilter) ([]leave.LeaveRequest, error) {
	q := getQuerier(ctx, r.db)

	var w where
	if filter.EmployeeID != "" {
		w.add("employee_id = $%d", filter.EmployeeID)
	}
	if filter.Status != nil {
		w.add("status = $%d", string(*filter.Status))
	}

	rows, err := q.Query(ctx, `SELECT `+leaveColumns+` FROM leave_requests`+w.String()+` ORDER BY request_date DESC`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	var out []leave.LeaveRequest
	for rows.Next() {
		l, err := scanLeave(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// Update implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Update(ctx context.Context, req leave.LeaveRequest) error {
	q := getQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests SET
			start_date = $2, end_date = $3, type = $4, reason = $5, status = $6,
			response_date = $7, response_note = $8, responded_by = $9
		WHERE id = $1
	`
	tag, err := q.Exec(ctx, query,
		req.ID, req.StartDate, req.EndDate, req.Type, req.Reason, req.Status,
		req.ResponseDate, req.ResponseNote, req.RespondedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update leave request: %w", err)
	}
	return affectedOne(tag, leave.ErrLeaveRequestNotFound)
}

// CountApproved implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) CountApproved(ctx context.Context, employeeID, from, to string) (int, error) {
	q := getQuerier(ctx, r.db)

	var w where
	w.add("employee_id = $%d", employeeID)
	w.add("status = $%d", string(leave.LeaveRequestStatusApproved))
	if from != "" {
		w.add("end_date >= $%d", from)
	}
	if to != "" {
		w.add("start_date <= $%d", to)
	}

	var count int
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM leave_requests`+w.String(), w.args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count approved leaves: %w", err)
	}
	return count, nil
}
