package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/bistrohq/staff-backend-go/internal/domain/auth"
	"github.com/bistrohq/staff-backend-go/internal/domain/employee"
	"github.com/bistrohq/staff-backend-go/internal/pkg/jwt"
	employeeservice "github.com/bistrohq/staff-backend-go/internal/service/employee"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	employee.EmployeeRepository
	jwt.Service
	defaultHourlyRate decimal.Decimal
}

func NewAuthService(employeeRepository employee.EmployeeRepository, jwtService jwt.Service, defaultHourlyRate decimal.Decimal) auth.AuthService {
	return &AuthServiceImpl{
		EmployeeRepository: employeeRepository,
		Service:            jwtService,
		defaultHourlyRate:  defaultHourlyRate,
	}
}

func (a *AuthServiceImpl) issueToken(e employee.Employee) (auth.TokenResponse, error) {
	token, expiresAt, err := a.Service.GenerateAccessToken(e.ID, e.Email, string(e.Role))
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}
	return auth.TokenResponse{
		AccessToken:          token,
		AccessTokenExpiresAt: expiresAt,
		Employee:             employee.ToResponse(e),
	}, nil
}

func (a *AuthServiceImpl) verifyPassword(e employee.Employee, password string) bool {
	if e.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(e.PasswordHash), []byte(password)) == nil
}

// Signup implements auth.AuthService.
func (a *AuthServiceImpl) Signup(ctx context.Context, req auth.SignupRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	email := strings.TrimSpace(req.Email)
	if _, err := a.EmployeeRepository.GetByEmail(ctx, email); err == nil {
		return auth.TokenResponse{}, employee.ErrEmailInUse
	} else if !errors.Is(err, employee.ErrEmployeeNotFound) {
		return auth.TokenResponse{}, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := employeeservice.HashPassword(req.Password)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := a.EmployeeRepository.Create(ctx, employee.Employee{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		Role:         employee.RoleEmployee,
		JobType:      req.JobType,
		HourlyRate:   a.defaultHourlyRate,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, employee.ErrEmailInUse) {
			return auth.TokenResponse{}, err
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to create employee: %w", err)
	}

	slog.Info("Employee signed up", "employee_id", created.ID)
	return a.issueToken(created)
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	e, err := a.EmployeeRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get employee by email: %w", err)
	}

	if !a.verifyPassword(e, req.Password) {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	return a.issueToken(e)
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, token string, expiresAt int64) error {
	if token == "" {
		return auth.ErrInvalidToken
	}
	a.Service.RevokeToken(token, expiresAt)
	return nil
}

// Me implements auth.AuthService.
func (a *AuthServiceImpl) Me(ctx context.Context, employeeID string) (auth.SessionEmployee, error) {
	e, err := a.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return auth.SessionEmployee{}, err
	}
	return employee.ToResponse(e), nil
}

// UpdateProfile implements auth.AuthService.
func (a *AuthServiceImpl) UpdateProfile(ctx context.Context, employeeID string, req auth.UpdateProfileRequest) (auth.SessionEmployee, error) {
	if err := req.Validate(); err != nil {
		return auth.SessionEmployee{}, err
	}

	e, err := a.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return auth.SessionEmployee{}, err
	}
	if req.Name != nil {
		e.Name = strings.TrimSpace(*req.Name)
	}
	if req.JobType != nil {
		e.JobType = *req.JobType
	}
	if req.ProfileImage != nil {
		e.ProfileImage = req.ProfileImage
	}
	e.UpdatedAt = time.Now().UTC()

	if err := a.EmployeeRepository.Update(ctx, e); err != nil {
		return auth.SessionEmployee{}, fmt.Errorf("failed to update profile: %w", err)
	}
	return employee.ToResponse(e), nil
}

// UpdatePassword implements auth.AuthService.
func (a *AuthServiceImpl) UpdatePassword(ctx context.Context, employeeID string, req auth.UpdatePasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	e, err := a.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return err
	}
	if !a.verifyPassword(e, req.CurrentPassword) {
		return auth.ErrIncorrectPassword
	}

	hash, err := employeeservice.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	e.PasswordHash = hash
	e.UpdatedAt = time.Now().UTC()

	if err := a.EmployeeRepository.Update(ctx, e); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	slog.Info("Password changed", "employee_id", employeeID)
	return nil
}

// UpdateEmail implements auth.AuthService.
func (a *AuthServiceImpl) UpdateEmail(ctx context.Context, employeeID string, req auth.UpdateEmailRequest) (auth.SessionEmployee, error) {
	if err := req.Validate(); err != nil {
		return auth.SessionEmployee{}, err
	}

	e, err := a.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return auth.SessionEmployee{}, err
	}
	if !a.verifyPassword(e, req.Password) {
		return auth.SessionEmployee{}, auth.ErrIncorrectPassword
	}

	e.Email = strings.TrimSpace(req.Email)
	e.UpdatedAt = time.Now().UTC()
	if err := a.EmployeeRepository.Update(ctx, e); err != nil {
		if errors.Is(err, employee.ErrEmailInUse) {
			return auth.SessionEmployee{}, err
		}
		return auth.SessionEmployee{}, fmt.Errorf("failed to update email: %w", err)
	}
	return employee.ToResponse(e), nil
}
