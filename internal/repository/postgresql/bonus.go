package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/bistrohq/staff-backend-go/internal/domain/bonus"
	"github.com/bistrohq/staff-backend-go/internal/pkg/database"
)

type awardRepositoryImpl struct {
	db *database.DB
}

func NewAwardRepository(db *database.DB) bonus.AwardRepository {
	return &awardRepositoryImpl{db: db}
}

const awardColumns = `id, employee_id, year, percentage, amount, applied_at, payroll_item_id`

func (r *awardRepositoryImpl) Create(ctx context.Context, a bonus.Award) (bonus.Award, error) {
	q := getQuerier(ctx, r.db)
	if a.ID == "" {
		a.ID = newID()
	}
	_, err := q.Exec(ctx, `INSERT INTO bonus_awards (`+awardColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		a.ID, a.EmployeeID, a.Year, a.Percentage, a.Amount, a.AppliedAt, a.PayrollItemID)
	if err != nil {
		if isUniqueViolation(err) {
			return bonus.Award{}, bonus.ErrBonusAlreadyApplied
		}
		return bonus.Award{}, fmt.Errorf("failed to insert bonus award: %w", err)
	}
	return a, nil
}

func (r *awardRepositoryImpl) list(ctx context.Context, w where) ([]bonus.Award, error) {
	q := getQuerier(ctx, r.db)
	rows, err := q.Query(ctx, `SELECT `+awardColumns+` FROM bonus_awards`+w.String()+` ORDER BY applied_at`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list bonus awards: %w", err)
	}
	defer rows.Close()

	var out []bonus.Award
	for rows.Next() {
		var a bonus.Award
		if err := rows.Scan(&a.ID, &a.EmployeeID, &a.Year, &a.Percentage, &a.Amount, &a.AppliedAt, &a.PayrollItemID); err != nil {
			return nil, fmt.Errorf("failed to scan bonus award: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *awardRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]bonus.Award, error) {
	var w where
	w.add("employee_id = $%d", employeeID)
	return r.list(ctx, w)
}

func (r *awardRepositoryImpl) ListPayable(ctx context.Context, employeeID string, before time.Time, payrollItemID string) ([]bonus.Award, error) {
	var w where
	w.add("employee_id = $%d", employeeID)
	w.add("applied_at < $%d", before)
	w.add("(payroll_item_id IS NULL OR payroll_item_id = $%d)", payrollItemID)
	return r.list(ctx, w)
}

func (r *awardRepositoryImpl) LinkPayrollItem(ctx context.Context, awardIDs []string, payrollItemID string) error {
	if len(awardIDs) == 0 {
		return nil
	}
	q := getQuerier(ctx, r.db)
	if _, err := q.Exec(ctx, `UPDATE bonus_awards SET payroll_item_id = $1 WHERE id = ANY($2)`, payrollItemID, awardIDs); err != nil {
		return fmt.Errorf("failed to link bonus awards: %w", err)
	}
	return nil
}
