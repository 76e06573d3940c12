package postgresql

import (
	"context"
	"fmt"

	"github.com/bistrohq/staff-backend-go/internal/domain/note"
	"github.com/bistrohq/staff-backend-go/internal/pkg/database"
)

type noteRepositoryImpl struct {
	db *database.DB
}

func NewNoteRepository(db *database.DB) note.NoteRepository {
	return &noteRepositoryImpl{db: db}
}

func (r *noteRepositoryImpl) Create(ctx context.Context, n note.Note) (note.Note, error) {
	q := getQuerier(ctx, r.db)
	if n.ID == "" {
		n.ID = newID()
	}
	_, err := q.Exec(ctx, `INSERT INTO notes (id, employee_id, content, date, category) VALUES ($1, $2, $3, $4, $5)`,
		n.ID, n.EmployeeID, n.Content, n.Date, n.Category)
	if err != nil {
		return note.Note{}, fmt.Errorf("failed to insert note: %w", err)
	}
	return n, nil
}

func (r *noteRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]note.Note, error) {
	q := getQuerier(ctx, r.db)
	rows, err := q.Query(ctx, `
		SELECT id, employee_id, content, date, category
		FROM notes
		WHERE employee_id = $1
		ORDER BY date DESC
	`, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	var out []note.Note
	for rows.Next() {
		var n note.Note
		if err := rows.Scan(&n.ID, &n.EmployeeID, &n.Content, &n.Date, &n.Category); err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		out = append(out, n)
	}
	return out, rows.Err()
}
