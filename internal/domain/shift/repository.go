package shift

import "context"

type ShiftRepository interface {
	Create(ctx context.Context, s Shift) (Shift, error)
	GetByID(ctx context.Context, id string) (Shift, error)
	// List returns shifts ordered by date, then start time.
	List(ctx context.Context, filter ShiftFilter) ([]Shift, error)
	Update(ctx context.Context, s Shift) error
	Delete(ctx context.Context, id string) error
	// DeleteByEmployeeBetween removes the employee's shifts dated within [from, to] inclusive.
	DeleteByEmployeeBetween(ctx context.Context, employeeID, from, to string) (int, error)
}
