package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/bistrohq/staff-backend-go/internal/domain/shift"
)

type shiftRepositoryImpl struct {
	store *Store
}

func NewShiftRepository(store *Store) shift.ShiftRepository {
	return &shiftRepositoryImpl{store: store}
}

func shiftID(s shift.Shift) string { return s.ID }

func (r *shiftRepositoryImpl) Create(ctx context.Context, s shift.Shift) (shift.Shift, error) {
	if s.ID == "" {
		s.ID = newID()
	}
	r.store.stamp(&s.CreatedAt, &s.UpdatedAt)

	err := r.store.write(ctx, KeyShifts, func(st *state) error {
		if indexByID(st.shifts, s.ID, shiftID) >= 0 {
			return fmt.Errorf("shift %s: %w", s.ID, errDuplicateID)
		}
		st.shifts = append(st.shifts, s)
		return nil
	})
	if err != nil {
		return shift.Shift{}, err
	}
	return s, nil
}

func (r *shiftRepositoryImpl) GetByID(ctx context.Context, id string) (shift.Shift, error) {
	var (
		found shift.Shift
		ok    bool
	)
	r.store.read(ctx, func(st *state) {
		if i := indexByID(st.shifts, id, shiftID); i >= 0 {
			found, ok = st.shifts[i], true
		}
	})
	if !ok {
		return shift.Shift{}, shift.ErrShiftNotFound
	}
	return found, nil
}

func (r *shiftRepositoryImpl) List(ctx context.Context, filter shift.ShiftFilter) ([]shift.Shift, error) {
	var out []shift.Shift
	r.store.read(ctx, func(st *state) {
		for _, s := range st.shifts {
			if filter.Match(s) {
				out = append(out, s)
			}
		}
	})
	slices.SortStableFunc(out, func(a, b shift.Shift) int {
		return cmp.Or(cmp.Compare(a.Date, b.Date), cmp.Compare(a.StartTime, b.StartTime))
	})
	return out, nil
}

func (r *shiftRepositoryImpl) Update(ctx context.Context, s shift.Shift) error {
	return r.store.write(ctx, KeyShifts, func(st *state) error {
		i := indexByID(st.shifts, s.ID, shiftID)
		if i < 0 {
			return shift.ErrShiftNotFound
		}
		st.shifts[i] = s
		return nil
	})
}

func (r *shiftRepositoryImpl) Delete(ctx context.Context, id string) error {
	return r.store.write(ctx, KeyShifts, func(st *state) error {
		i := indexByID(st.shifts, id, shiftID)
		if i < 0 {
			return shift.ErrShiftNotFound
		}
		st.shifts = slices.Delete(st.shifts, i, i+1)
		return nil
	})
}

func (r *shiftRepositoryImpl) DeleteByEmployeeBetween(ctx context.Context, employeeID, from, to string) (int, error) {
	removed := 0
	err := r.store.write(ctx, KeyShifts, func(st *state) error {
		before := len(st.shifts)
		st.shifts = slices.DeleteFunc(st.shifts, func(s shift.Shift) bool {
			return s.EmployeeID == employeeID && s.Date >= from && s.Date <= to
		})
		removed = before - len(st.shifts)
		return nil
	})
	return removed, err
}
