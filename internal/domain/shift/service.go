package shift

import "context"

type ShiftService interface {
	Create(ctx context.Context, req CreateShiftRequest) (Shift, error)
	Update(ctx context.Context, req UpdateShiftRequest) (Shift, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (Shift, error)
	List(ctx context.Context, filter ShiftFilter) ([]Shift, error)
}
