package note

import "context"

type NoteRepository interface {
	Create(ctx context.Context, n Note) (Note, error)
	// ListByEmployee returns notes newest first.
	ListByEmployee(ctx context.Context, employeeID string) ([]Note, error)
}
