package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/bistrohq/staff-backend-go/internal/domain/employee"
	"github.com/bistrohq/staff-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `id, name, email, role, job_type, hourly_rate, profile_image, password_hash, created_at, updated_at`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(&e.ID, &e.Name, &e.Email, &e.Role, &e.JobType, &e.HourlyRate,
		&e.ProfileImage, &e.PasswordHash, &e.CreatedAt, &e.UpdatedAt)
	return e, err
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	q := getQuerier(ctx, r.db)
	if e.ID == "" {
		e.ID = newID()
	}

	query := `
		INSERT INTO employees (id, name, email, role, job_type, hourly_rate, profile_image, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		e.ID, e.Name, e.Email, e.Role, e.JobType, e.HourlyRate, e.ProfileImage, e.PasswordHash,
	).Scan(&e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return employee.Employee{}, employee.ErrEmailInUse
		}
		return employee.Employee{}, fmt.Errorf("failed to insert employee: %w", err)
	}
	return e, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := getQuerier(ctx, r.db)
	e, err := scanEmployee(q.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return e, nil
}

// GetByEmail implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByEmail(ctx context.Context, email string) (employee.Employee, error) {
	q := getQuerier(ctx, r.db)
	e, err := scanEmployee(q.QueryRow(ctx,
		`SELECT `+employeeColumns+` FROM employees WHERE LOWER(email) = LOWER($1)`, employee.NormalizeEmail(email)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by email: %w", err)
	}
	return e, nil
}

// List implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, error) {
	q := getQuerier(ctx, r.db)

	var w where
	if filter.Role != nil {
		w.add("role = $%d", string(*filter.Role))
	}
	rows, err := q.Query(ctx, `SELECT `+employeeColumns+` FROM employees`+w.String()+` ORDER BY created_at, id`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var out []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Update(ctx context.Context, e employee.Employee) error {
	q := getQuerier(ctx, r.db)

	query := `
		UPDATE employees SET
			name = $2, email = $3, role = $4, job_type = $5, hourly_rate = $6,
			profile_image = $7, password_hash = $8, updated_at = NOW()
		WHERE id = $1
	`
	tag, err := q.Exec(ctx, query, e.ID, e.Name, e.Email, e.Role, e.JobType, e.HourlyRate, e.ProfileImage, e.PasswordHash)
	if err != nil {
		if isUniqueViolation(err) {
			return employee.ErrEmailInUse
		}
		return fmt.Errorf("failed to update employee: %w", err)
	}
	return affectedOne(tag, employee.ErrEmployeeNotFound)
}

// Delete implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := getQuerier(ctx, r.db)
	tag, err := q.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	return affectedOne(tag, employee.ErrEmployeeNotFound)
}
