package memory

import (
	"context"
	"slices"

	"github.com/bistrohq/staff-backend-go/internal/domain/note"
)

type noteRepositoryImpl struct {
	store *Store
}

func NewNoteRepository(store *Store) note.NoteRepository {
	return &noteRepositoryImpl{store: store}
}

func (r *noteRepositoryImpl) Create(ctx context.Context, n note.Note) (note.Note, error) {
	if n.ID == "" {
		n.ID = newID()
	}
	err := r.store.write(ctx, KeyNotes, func(st *state) error {
		st.notes = append(st.notes, n)
		return nil
	})
	if err != nil {
		return note.Note{}, err
	}
	return n, nil
}

func (r *noteRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]note.Note, error) {
	var out []note.Note
	r.store.read(ctx, func(st *state) {
		for _, n := range st.notes {
			if n.EmployeeID == employeeID {
				out = append(out, n)
			}
		}
	})
	slices.SortStableFunc(out, func(a, b note.Note) int {
		return b.Date.Compare(a.Date)
	})
	return out, nil
}
