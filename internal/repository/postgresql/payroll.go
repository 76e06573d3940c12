package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/bistrohq/staff-backend-go/internal/domain/payroll"
	"github.com/bistrohq/staff-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

const payrollColumns = `id, employee_id, period_start, period_end, regular_hours, overtime_hours,
	regular_pay, overtime_pay, bonus_pay, deductions, total_pay, late_minutes, status,
	processed_date, paid_date, created_at, updated_at`

func scanPayrollItem(row pgx.Row) (payroll.PayrollItem, error) {
	var p payroll.PayrollItem
	err := row.Scan(
		&p.ID, &p.EmployeeID, &p.PeriodStart, &p.PeriodEnd, &p.RegularHours, &p.OvertimeHours,
		&p.RegularPay, &p.OvertimePay, &p.BonusPay, &p.Deductions, &p.TotalPay, &p.LateMinutes, &p.Status,
		&p.ProcessedDate, &p.PaidDate, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func (r *payrollRepository) Create(ctx context.Context, item payroll.PayrollItem) (payroll.PayrollItem, error) {
	q := getQuerier(ctx, r.db)
	if item.ID == "" {
		item.ID = newID()
	}

	query := `
		INSERT INTO payroll_items (
			id, employee_id, period_start, period_end, regular_hours, overtime_hours,
			regular_pay, overtime_pay, bonus_pay, deductions, total_pay, late_minutes, status,
			processed_date, paid_date
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		item.ID, item.EmployeeID, item.PeriodStart, item.PeriodEnd, item.RegularHours, item.OvertimeHours,
		item.RegularPay, item.OvertimePay, item.BonusPay, item.Deductions, item.TotalPay, item.LateMinutes, item.Status,
		item.ProcessedDate, item.PaidDate,
	).Scan(&item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return payroll.PayrollItem{}, fmt.Errorf("failed to insert payroll item: %w", err)
	}
	return item, nil
}

func (r *payrollRepository) getOne(ctx context.Context, cond string, args ...any) (payroll.PayrollItem, error) {
	q := getQuerier(ctx, r.db)
	p, err := scanPayrollItem(q.QueryRow(ctx, `SELECT `+payrollColumns+` FROM payroll_items WHERE `+cond, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollItem{}, payroll.ErrPayrollItemNotFound
		}
		return payroll.PayrollItem{}, fmt.Errorf("failed to get payroll item: %w", err)
	}
	return p, nil
}

func (r *payrollRepository) GetByID(ctx context.Context, id string) (payroll.PayrollItem, error) {
	return r.getOne(ctx, "id = $1", id)
}

func (r *payrollRepository) GetByEmployeePeriod(ctx context.Context, employeeID, periodStart string) (payroll.PayrollItem, error) {
	return r.getOne(ctx, "employee_id = $1 AND period_start = $2", employeeID, periodStart)
}

func (r *payrollRepository) List(ctx context.Context, filter payroll.PayrollFilter) ([]payroll.PayrollItem, error) {
	q := getQuerier(ctx, r.db)

	var w where
	if filter.PeriodStart != "" {
		w.add("period_start = $%d", filter.PeriodStart)
	}
	if filter.EmployeeID != "" {
		w.add("employee_id = $%d", filter.EmployeeID)
	}
	if filter.Status != nil {
		w.add("status = $%d", string(*filter.Status))
	}

	rows, err := q.Query(ctx, `SELECT `+payrollColumns+` FROM payroll_items`+w.String()+` ORDER BY period_start DESC, employee_id`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll items: %w", err)
	}
	defer rows.Close()

	var out []payroll.PayrollItem
	for rows.Next() {
		p, err := scanPayrollItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll item: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *payrollRepository) Update(ctx context.Context, item payroll.PayrollItem) error {
	q := getQuerier(ctx, r.db)

	query := `
		UPDATE payroll_items SET
			regular_hours = $2, overtime_hours = $3, regular_pay = $4, overtime_pay = $5,
			bonus_pay = $6, deductions = $7, total_pay = $8, late_minutes = $9, status = $10,
			processed_date = $11, paid_date = $12, updated_at = NOW()
		WHERE id = $1
	`
	tag, err := q.Exec(ctx, query,
		item.ID, item.RegularHours, item.OvertimeHours, item.RegularPay, item.OvertimePay,
		item.BonusPay, item.Deductions, item.TotalPay, item.LateMinutes, item.Status,
		item.ProcessedDate, item.PaidDate,
	)
	if err != nil {
		return fmt.Errorf("failed to update payroll item: %w", err)
	}
	return affectedOne(tag, payroll.ErrPayrollItemNotFound)
}
