package note

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bistrohq/staff-backend-go/internal/domain/employee"
	"github.com/bistrohq/staff-backend-go/internal/domain/note"
	"github.com/bistrohq/staff-backend-go/internal/pkg/clock"
)

type NoteServiceImpl struct {
	note.NoteRepository
	employeeRepo employee.EmployeeRepository
	clock        clock.Clock
}

func NewNoteService(noteRepo note.NoteRepository, employeeRepo employee.EmployeeRepository, clk clock.Clock) note.NoteService {
	return &NoteServiceImpl{
		NoteRepository: noteRepo,
		employeeRepo:   employeeRepo,
		clock:          clk,
	}
}

// AddNote implements note.NoteService.
func (s *NoteServiceImpl) AddNote(ctx context.Context, req note.CreateNoteRequest) (note.Note, error) {
	if err := req.Validate(); err != nil {
		return note.Note{}, err
	}
	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return note.Note{}, err
	}

	n, err := s.NoteRepository.Create(ctx, note.Note{
		EmployeeID: req.EmployeeID,
		Content:    req.Content,
		Category:   req.Category,
		Date:       s.clock.Now().UTC(),
	})
	if err != nil {
		return note.Note{}, fmt.Errorf("failed to create note: %w", err)
	}

	slog.Debug("Note added", "employee_id", n.EmployeeID, "category", n.Category)
	return n, nil
}

// ListByEmployee implements note.NoteService.
func (s *NoteServiceImpl) ListByEmployee(ctx context.Context, employeeID string) ([]note.Note, error) {
	notes, err := s.NoteRepository.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	if notes == nil {
		notes = []note.Note{}
	}
	return notes, nil
}
