package memory

import (
	"context"
	"fmt"
	"slices"

	"github.com/bistrohq/staff-backend-go/internal/domain/employee"
)

type employeeRepositoryImpl struct {
	store *Store
}

func NewEmployeeRepository(store *Store) employee.EmployeeRepository {
	return &employeeRepositoryImpl{store: store}
}

func employeeID(e employee.Employee) string { return e.ID }

func (r *employeeRepositoryImpl) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	if e.ID == "" {
		e.ID = newID()
	}
	r.store.stamp(&e.CreatedAt, &e.UpdatedAt)

	err := r.store.write(ctx, KeyEmployees, func(st *state) error {
		email := employee.NormalizeEmail(e.Email)
		for _, existing := range st.employees {
			if existing.ID == e.ID {
				return fmt.Errorf("employee %s: %w", e.ID, errDuplicateID)
			}
			if employee.NormalizeEmail(existing.Email) == email {
				return employee.ErrEmailInUse
			}
		}
		st.employees = append(st.employees, e)
		return nil
	})
	if err != nil {
		return employee.Employee{}, err
	}
	return e, nil
}

func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	var (
		found employee.Employee
		ok    bool
	)
	r.store.read(ctx, func(st *state) {
		if i := indexByID(st.employees, id, employeeID); i >= 0 {
			found, ok = st.employees[i], true
		}
	})
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return found, nil
}

func (r *employeeRepositoryImpl) GetByEmail(ctx context.Context, email string) (employee.Employee, error) {
	email = employee.NormalizeEmail(email)
	var (
		found employee.Employee
		ok    bool
	)
	r.store.read(ctx, func(st *state) {
		i := slices.IndexFunc(st.employees, func(e employee.Employee) bool {
			return employee.NormalizeEmail(e.Email) == email
		})
		if i >= 0 {
			found, ok = st.employees[i], true
		}
	})
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return found, nil
}

func (r *employeeRepositoryImpl) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, error) {
	var out []employee.Employee
	r.store.read(ctx, func(st *state) {
		for _, e := range st.employees {
			if filter.Role != nil && e.Role != *filter.Role {
				continue
			}
			out = append(out, e)
		}
	})
	return out, nil
}

func (r *employeeRepositoryImpl) Update(ctx context.Context, e employee.Employee) error {
	return r.store.write(ctx, KeyEmployees, func(st *state) error {
		i := indexByID(st.employees, e.ID, employeeID)
		if i < 0 {
			return employee.ErrEmployeeNotFound
		}
		email := employee.NormalizeEmail(e.Email)
		for _, other := range st.employees {
			if other.ID != e.ID && employee.NormalizeEmail(other.Email) == email {
				return employee.ErrEmailInUse
			}
		}
		st.employees[i] = e
		return nil
	})
}

func (r *employeeRepositoryImpl) Delete(ctx context.Context, id string) error {
	return r.store.write(ctx, KeyEmployees, func(st *state) error {
		i := indexByID(st.employees, id, employeeID)
		if i < 0 {
			return employee.ErrEmployeeNotFound
		}
		st.employees = slices.Delete(st.employees, i, i+1)
		return nil
	})
}
