package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/bistrohq/staff-backend-go/internal/domain/payroll"
)

type payrollRepositoryImpl struct {
	store *Store
}

func NewPayrollRepository(store *Store) payroll.PayrollRepository {
	return &payrollRepositoryImpl{store: store}
}

func payrollID(p payroll.PayrollItem) string { return p.ID }

func (r *payrollRepositoryImpl) Create(ctx context.Context, item payroll.PayrollItem) (payroll.PayrollItem, error) {
	if item.ID == "" {
		item.ID = newID()
	}
	r.store.stamp(&item.CreatedAt, &item.UpdatedAt)

	err := r.store.write(ctx, KeyPayroll, func(st *state) error {
		for _, existing := range st.payroll {
			if existing.ID == item.ID ||
				(existing.EmployeeID == item.EmployeeID && existing.PeriodStart == item.PeriodStart) {
				return fmt.Errorf("payroll item %s/%s: %w", item.EmployeeID, item.PeriodStart, errDuplicateID)
			}
		}
		st.payroll = append(st.payroll, item)
		return nil
	})
	if err != nil {
		return payroll.PayrollItem{}, err
	}
	return item, nil
}

func (r *payrollRepositoryImpl) GetByID(ctx context.Context, id string) (payroll.PayrollItem, error) {
	var (
		found payroll.PayrollItem
		ok    bool
	)
	r.store.read(ctx, func(st *state) {
		if i := indexByID(st.payroll, id, payrollID); i >= 0 {
			found, ok = st.payroll[i], true
		}
	})
	if !ok {
		return payroll.PayrollItem{}, payroll.ErrPayrollItemNotFound
	}
	return found, nil
}

func (r *payrollRepositoryImpl) GetByEmployeePeriod(ctx context.Context, employeeID, periodStart string) (payroll.PayrollItem, error) {
	var (
		found payroll.PayrollItem
		ok    bool
	)
	r.store.read(ctx, func(st *state) {
		i := slices.IndexFunc(st.payroll, func(p payroll.PayrollItem) bool {
			return p.EmployeeID == employeeID && p.PeriodStart == periodStart
		})
		if i >= 0 {
			found, ok = st.payroll[i], true
		}
	})
	if !ok {
		return payroll.PayrollItem{}, payroll.ErrPayrollItemNotFound
	}
	return found, nil
}

func (r *payrollRepositoryImpl) List(ctx context.Context, filter payroll.PayrollFilter) ([]payroll.PayrollItem, error) {
	var out []payroll.PayrollItem
	r.store.read(ctx, func(st *state) {
		for _, p := range st.payroll {
			if filter.Match(p) {
				out = append(out, p)
			}
		}
	})
	slices.SortStableFunc(out, func(a, b payroll.PayrollItem) int {
		return cmp.Or(cmp.Compare(b.PeriodStart, a.PeriodStart), cmp.Compare(a.EmployeeID, b.EmployeeID))
	})
	return out, nil
}

func (r *payrollRepositoryImpl) Update(ctx context.Context, item payroll.PayrollItem) error {
	return r.store.write(ctx, KeyPayroll, func(st *state) error {
		i := indexByID(st.payroll, item.ID, payrollID)
		if i < 0 {
			return payroll.ErrPayrollItemNotFound
		}
		st.payroll[i] = item
		return nil
	})
}
