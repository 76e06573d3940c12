package attendance

import "context"

type AttendanceRepository interface {
	Create(ctx context.Context, r Record) (Record, error)
	GetByID(ctx context.Context, id string) (Record, error)
	GetByShiftID(ctx context.Context, shiftID string) (Record, error)
	// List returns records ordered by date, then creation time.
	List(ctx context.Context, filter RecordFilter) ([]Record, error)
	Update(ctx context.Context, r Record) error
}
