package auth

import (
	"context"
	"testing"
	"time"

	"github.com/bistrohq/staff-backend-go/internal/domain/auth"
	"github.com/bistrohq/staff-backend-go/internal/domain/employee"
	"github.com/bistrohq/staff-backend-go/internal/pkg/jwt"
	"github.com/bistrohq/staff-backend-go/internal/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (auth.AuthService, *jwt.JWTService, employee.EmployeeRepository) {
	t.Helper()
	repo := memory.NewEmployeeRepository(memory.NewStore())
	jwtService := jwt.NewJWTService("test-secret", time.Hour)
	return NewAuthService(repo, jwtService, decimal.NewFromInt(15)), jwtService, repo
}

func signup(t *testing.T, svc auth.AuthService) auth.TokenResponse {
	t.Helper()
	resp, err := svc.Signup(context.Background(), auth.SignupRequest{
		Name:     "Jane Smith",
		Email:    "employee@bistro.com",
		Password: "employee123",
		JobType:  "Waiter",
	})
	require.NoError(t, err)
	return resp
}

func TestSignup_CreatesEmployeeWithDefaults(t *testing.T) {
	svc, _, _ := newTestService(t)

	resp := signup(t, svc)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, employee.RoleEmployee, resp.Employee.Role)
	assert.True(t, resp.Employee.HourlyRate.Equal(decimal.NewFromInt(15)))
	assert.Equal(t, "Waiter", resp.Employee.JobType)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService(t)
	signup(t, svc)

	_, err := svc.Signup(context.Background(), auth.SignupRequest{
		Name: "Other", Email: "Employee@Bistro.com", Password: "secret1",
	})
	assert.ErrorIs(t, err, employee.ErrEmailInUse)
}

func TestLogin(t *testing.T) {
	svc, _, _ := newTestService(t)
	created := signup(t, svc)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"matching credentials", "employee@bistro.com", "employee123", nil},
		{"email is case-insensitive", "EMPLOYEE@bistro.com", "employee123", nil},
		{"wrong password", "employee@bistro.com", "nope123", auth.ErrInvalidCredentials},
		{"unknown email", "ghost@bistro.com", "employee123", auth.ErrInvalidCredentials},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.Login(context.Background(), auth.LoginRequest{Email: tt.email, Password: tt.password})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, "Invalid credentials", err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, created.Employee.ID, resp.Employee.ID)
		})
	}
}

func TestLogout_RevokesToken(t *testing.T) {
	svc, jwtService, _ := newTestService(t)
	resp := signup(t, svc)

	require.NoError(t, svc.Logout(context.Background(), resp.AccessToken, resp.AccessTokenExpiresAt))
	assert.True(t, jwtService.IsTokenRevoked(resp.AccessToken))
	assert.ErrorIs(t, svc.Logout(context.Background(), "", 0), auth.ErrInvalidToken)
}

func TestUpdatePassword_VerifiesCurrent(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)
	resp := signup(t, svc)

	err := svc.UpdatePassword(ctx, resp.Employee.ID, auth.UpdatePasswordRequest{CurrentPassword: "wrong", NewPassword: "newpass1"})
	assert.ErrorIs(t, err, auth.ErrIncorrectPassword)

	require.NoError(t, svc.UpdatePassword(ctx, resp.Employee.ID, auth.UpdatePasswordRequest{CurrentPassword: "employee123", NewPassword: "newpass1"}))

	_, err = svc.Login(ctx, auth.LoginRequest{Email: "employee@bistro.com", Password: "employee123"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	_, err = svc.Login(ctx, auth.LoginRequest{Email: "employee@bistro.com", Password: "newpass1"})
	assert.NoError(t, err)
}

func TestUpdateEmail(t *testing.T) {
	ctx := context.Background()
	svc, _, repo := newTestService(t)
	resp := signup(t, svc)

	_, err := repo.Create(ctx, employee.Employee{Name: "Mike", Email: "mike@bistro.com", Role: employee.RoleEmployee})
	require.NoError(t, err)

	_, err = svc.UpdateEmail(ctx, resp.Employee.ID, auth.UpdateEmailRequest{Email: "jane@bistro.com", Password: "bad"})
	assert.ErrorIs(t, err, auth.ErrIncorrectPassword)

	_, err = svc.UpdateEmail(ctx, resp.Employee.ID, auth.UpdateEmailRequest{Email: "MIKE@bistro.com", Password: "employee123"})
	assert.ErrorIs(t, err, employee.ErrEmailInUse)

	updated, err := svc.UpdateEmail(ctx, resp.Employee.ID, auth.UpdateEmailRequest{Email: "jane@bistro.com", Password: "employee123"})
	require.NoError(t, err)
	assert.Equal(t, "jane@bistro.com", updated.Email)
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)
	resp := signup(t, svc)

	name := "Jane S."
	updated, err := svc.UpdateProfile(ctx, resp.Employee.ID, auth.UpdateProfileRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Jane S.", updated.Name)
	assert.Equal(t, "Waiter", updated.JobType)

	me, err := svc.Me(ctx, resp.Employee.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane S.", me.Name)
}
