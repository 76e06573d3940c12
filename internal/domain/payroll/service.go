package payroll

import "context"

type PayrollService interface {
	Generate(ctx context.Context, req GeneratePayrollRequest) ([]PayrollItem, error)
	List(ctx context.Context, filter PayrollFilter) ([]PayrollItem, error)
	Get(ctx context.Context, id string) (PayrollItem, error)
	Process(ctx context.Context, id string) (PayrollItem, error)
	Pay(ctx context.Context, id string) (PayrollItem, error)
	Payslip(ctx context.Context, id string) ([]byte, error)
}
