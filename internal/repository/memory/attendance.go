package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/bistrohq/staff-backend-go/internal/domain/attendance"
)

type attendanceRepositoryImpl struct {
	store *Store
}

func NewAttendanceRepository(store *Store) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{store: store}
}

func recordID(r attendance.Record) string { return r.ID }

func (r *attendanceRepositoryImpl) Create(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	if rec.ID == "" {
		rec.ID = newID()
	}
	r.store.stamp(&rec.CreatedAt, &rec.UpdatedAt)

	err := r.store.write(ctx, KeyAttendance, func(st *state) error {
		for _, existing := range st.attendance {
			if existing.ID == rec.ID {
				return fmt.Errorf("attendance %s: %w", rec.ID, errDuplicateID)
			}
			if rec.ShiftID != nil && existing.ShiftID != nil && *existing.ShiftID == *rec.ShiftID {
				return fmt.Errorf("attendance for shift %s: %w", *rec.ShiftID, errDuplicateID)
			}
		}
		st.attendance = append(st.attendance, rec)
		return nil
	})
	if err != nil {
		return attendance.Record{}, err
	}
	return rec, nil
}

func (r *attendanceRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.Record, error) {
	var (
		found attendance.Record
		ok    bool
	)
	r.store.read(ctx, func(st *state) {
		if i := indexByID(st.attendance, id, recordID); i >= 0 {
			found, ok = st.attendance[i], true
		}
	})
	if !ok {
		return attendance.Record{}, attendance.ErrAttendanceNotFound
	}
	return found, nil
}

func (r *attendanceRepositoryImpl) GetByShiftID(ctx context.Context, shiftID string) (attendance.Record, error) {
	var (
		found attendance.Record
		ok    bool
	)
	r.store.read(ctx, func(st *state) {
		i := slices.IndexFunc(st.attendance, func(rec attendance.Record) bool {
			return rec.ShiftID != nil && *rec.ShiftID == shiftID
		})
		if i >= 0 {
			found, ok = st.attendance[i], true
		}
	})
	if !ok {
		return attendance.Record{}, attendance.ErrAttendanceNotFound
	}
	return found, nil
}

func (r *attendanceRepositoryImpl) List(ctx context.Context, filter attendance.RecordFilter) ([]attendance.Record, error) {
	var out []attendance.Record
	r.store.read(ctx, func(st *state) {
		for _, rec := range st.attendance {
			if filter.Match(rec) {
				out = append(out, rec)
			}
		}
	})
	slices.SortStableFunc(out, func(a, b attendance.Record) int {
		return cmp.Or(cmp.Compare(a.Date, b.Date), a.CreatedAt.Compare(b.CreatedAt))
	})
	return out, nil
}

func (r *attendanceRepositoryImpl) Update(ctx context.Context, rec attendance.Record) error {
	return r.store.write(ctx, KeyAttendance, func(st *state) error {
		i := indexByID(st.attendance, rec.ID, recordID)
		if i < 0 {
			return attendance.ErrAttendanceNotFound
		}
		st.attendance[i] = rec
		return nil
	})
}
