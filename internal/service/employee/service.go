package employee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bistrohq/staff-backend-go/internal/domain/employee"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	DefaultPassword   string
	DefaultHourlyRate decimal.Decimal
}

type EmployeeServiceImpl struct {
	employee.EmployeeRepository
	config Config
}

func NewEmployeeService(employeeRepository employee.EmployeeRepository, cfg Config) employee.EmployeeService {
	return &EmployeeServiceImpl{
		EmployeeRepository: employeeRepository,
		config:             cfg,
	}
}

// HashPassword bcrypt-hashes a plaintext password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// List implements employee.EmployeeService.
func (s *EmployeeServiceImpl) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.EmployeeResponse, error) {
	employees, err := s.EmployeeRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	out := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		out = append(out, employee.ToResponse(e))
	}
	return out, nil
}

// Get implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Get(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	e, err := s.EmployeeRepository.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.ToResponse(e), nil
}

// Create implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	email := strings.TrimSpace(req.Email)
	if _, err := s.EmployeeRepository.GetByEmail(ctx, email); err == nil {
		return employee.EmployeeResponse{}, employee.ErrEmailInUse
	} else if !errors.Is(err, employee.ErrEmployeeNotFound) {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to check email: %w", err)
	}

	password := req.Password
	if password == "" {
		password = s.config.DefaultPassword
	}
	hash, err := HashPassword(password)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	rate := s.config.DefaultHourlyRate
	if req.HourlyRate != nil {
		rate = *req.HourlyRate
	}

	created, err := s.EmployeeRepository.Create(ctx, employee.Employee{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		Role:         req.Role,
		JobType:      req.JobType,
		HourlyRate:   rate,
		ProfileImage: req.ProfileImage,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, employee.ErrEmailInUse) {
			return employee.EmployeeResponse{}, err
		}
		return employee.EmployeeResponse{}, fmt.Errorf("failed to create employee: %w", err)
	}

	slog.Info("Employee created", "employee_id", created.ID, "role", created.Role)
	return employee.ToResponse(created), nil
}

// Update implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	e, err := s.EmployeeRepository.GetByID(ctx, req.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	req.Apply(&e)
	e.UpdatedAt = time.Now().UTC()

	if err := s.EmployeeRepository.Update(ctx, e); err != nil {
		if errors.Is(err, employee.ErrEmailInUse) || errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.EmployeeResponse{}, err
		}
		return employee.EmployeeResponse{}, fmt.Errorf("failed to update employee: %w", err)
	}

	updated, err := s.EmployeeRepository.GetByID(ctx, req.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.ToResponse(updated), nil
}

// Delete implements employee.EmployeeService. Records referencing the
// employee are left in place.
func (s *EmployeeServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.EmployeeRepository.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("Employee deleted", "employee_id", id)
	return nil
}

// UpdateProfileImage implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateProfileImage(ctx context.Context, id string, imageData string) (employee.EmployeeResponse, error) {
	req := employee.UpdateProfileImageRequest{ImageData: imageData}
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}
	return s.Update(ctx, employee.UpdateEmployeeRequest{ID: id, ProfileImage: &imageData})
}
