package bonus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bistrohq/staff-backend-go/internal/domain/attendance"
	"github.com/bistrohq/staff-backend-go/internal/domain/bonus"
	"github.com/bistrohq/staff-backend-go/internal/domain/employee"
	"github.com/bistrohq/staff-backend-go/internal/domain/leave"
	"github.com/bistrohq/staff-backend-go/internal/domain/notification"
	"github.com/bistrohq/staff-backend-go/internal/pkg/clock"
	"github.com/bistrohq/staff-backend-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type Config struct {
	MonthlyHours int
}

type BonusServiceImpl struct {
	tx              database.Transactor
	awardRepo       bonus.AwardRepository
	employeeRepo    employee.EmployeeRepository
	leaveRepo       leave.LeaveRequestRepository
	attendanceSvc   attendance.AttendanceService
	notificationSvc notification.Service
	clock           clock.Clock
	config          Config
}

func NewBonusService(
	tx database.Transactor,
	awardRepo bonus.AwardRepository,
	employeeRepo employee.EmployeeRepository,
	leaveRepo leave.LeaveRequestRepository,
	attendanceSvc attendance.AttendanceService,
	notificationSvc notification.Service,
	clk clock.Clock,
	cfg Config,
) bonus.BonusService {
	return &BonusServiceImpl{
		tx:              tx,
		awardRepo:       awardRepo,
		employeeRepo:    employeeRepo,
		leaveRepo:       leaveRepo,
		attendanceSvc:   attendanceSvc,
		notificationSvc: notificationSvc,
		clock:           clk,
		config:          cfg,
	}
}

// CalculateEligibility implements bonus.BonusService.
func (s *BonusServiceImpl) CalculateEligibility(ctx context.Context, employeeID string, year int) (bonus.Eligibility, error) {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return bonus.Eligibility{}, err
	}
	from, to := attendance.YearWindow(year)
	used, err := s.leaveRepo.CountApproved(ctx, employeeID, from, to)
	if err != nil {
		return bonus.Eligibility{}, fmt.Errorf("failed to count approved leaves: %w", err)
	}
	return bonus.Evaluate(used), nil
}

// CalculateAmount implements bonus.BonusService. Unknown employees earn nothing.
func (s *BonusServiceImpl) CalculateAmount(ctx context.Context, report attendance.AttendanceReport) (decimal.Decimal, error) {
	emp, err := s.employeeRepo.GetByID(ctx, report.EmployeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, fmt.Errorf("failed to get employee: %w", err)
	}
	eligibility := bonus.Evaluate(report.LeavesUsed)
	return bonus.Amount(emp.HourlyRate, s.config.MonthlyHours, eligibility.BonusPercentage), nil
}

// EligibleEmployees implements bonus.BonusService. Every staff member (or the
// requested one) is listed with their standing, eligible or not.
func (s *BonusServiceImpl) EligibleEmployees(ctx context.Context, year int, employeeID string) ([]attendance.AttendanceReport, error) {
	var ids []string
	if employeeID != "" {
		ids = []string{employeeID}
	} else {
		role := employee.RoleEmployee
		staff, err := s.employeeRepo.List(ctx, employee.EmployeeFilter{Role: &role})
		if err != nil {
			return nil, fmt.Errorf("failed to list employees: %w", err)
		}
		for _, e := range staff {
			ids = append(ids, e.ID)
		}
	}

	reports := make([]attendance.AttendanceReport, 0, len(ids))
	for _, id := range ids {
		rep, err := s.attendanceSvc.GetYearReport(ctx, id, year)
		if err != nil {
			return nil, err
		}
		reports = append(reports, rep)
	}
	return reports, nil
}

// ApplyBonus implements bonus.BonusService.
func (s *BonusServiceImpl) ApplyBonus(ctx context.Context, req bonus.ApplyBonusRequest) (bonus.Award, error) {
	if err := req.Validate(); err != nil {
		return bonus.Award{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return bonus.Award{}, err
	}
	eligibility, err := s.CalculateEligibility(ctx, req.EmployeeID, req.Year)
	if err != nil {
		return bonus.Award{}, err
	}

	amount := bonus.Amount(emp.HourlyRate, s.config.MonthlyHours, eligibility.BonusPercentage)
	if req.Amount != nil {
		amount = req.Amount.Round(2)
	} else if !eligibility.Eligible {
		return bonus.Award{}, bonus.ErrNotEligible
	}

	var (
		award  bonus.Award
		notice notification.Notification
	)
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		award, err = s.awardRepo.Create(ctx, bonus.Award{
			EmployeeID: req.EmployeeID,
			Year:       req.Year,
			Percentage: eligibility.BonusPercentage,
			Amount:     amount,
			AppliedAt:  s.clock.Now().UTC(),
		})
		if err != nil {
			if errors.Is(err, bonus.ErrBonusAlreadyApplied) {
				return err
			}
			return fmt.Errorf("failed to create bonus award: %w", err)
		}

		notice, err = s.notificationSvc.Create(ctx, notification.CreateNotificationRequest{
			UserID:  req.EmployeeID,
			Title:   "Bonus Applied",
			Message: fmt.Sprintf("A %d bonus of $%s has been applied to your account.", req.Year, amount.StringFixed(2)),
			Type:    notification.TypePayment,
		})
		if err != nil {
			return fmt.Errorf("failed to create bonus notification: %w", err)
		}
		return nil
	})
	if err != nil {
		return bonus.Award{}, err
	}

	s.notificationSvc.Publish(notice)
	slog.Info("Bonus applied", "employee_id", award.EmployeeID, "year", award.Year, "amount", award.Amount.String())
	return award, nil
}

// ListAwards implements bonus.BonusService. An empty employeeID lists nothing.
func (s *BonusServiceImpl) ListAwards(ctx context.Context, employeeID string) ([]bonus.Award, error) {
	awards, err := s.awardRepo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bonus awards: %w", err)
	}
	if awards == nil {
		awards = []bonus.Award{}
	}
	return awards, nil
}
