package note

import (
	"context"

	"github.com/bistrohq/staff-backend-go/internal/pkg/validator"
)

type NoteService interface {
	AddNote(ctx context.Context, req CreateNoteRequest) (Note, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]Note, error)
}

type CreateNoteRequest struct {
	EmployeeID string `json:"employeeId"`
	Content    string `json:"content"`
	Category   string `json:"category,omitempty"`
}

func (r *CreateNoteRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.EmployeeID) {
		errs.Add("employeeId", "employeeId is required")
	}
	if validator.IsEmpty(r.Content) {
		errs.Add("content", "content is required")
	}
	if validator.IsEmpty(r.Category) {
		r.Category = DefaultCategory
	}
	return errs.Err()
}
