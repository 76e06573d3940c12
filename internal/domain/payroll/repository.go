package payroll

import "context"

type PayrollRepository interface {
	Create(ctx context.Context, item PayrollItem) (PayrollItem, error)
	GetByID(ctx context.Context, id string) (PayrollItem, error)
	GetByEmployeePeriod(ctx context.Context, employeeID, periodStart string) (PayrollItem, error)
	List(ctx context.Context, filter PayrollFilter) ([]PayrollItem, error)
	Update(ctx context.Context, item PayrollItem) error
}
