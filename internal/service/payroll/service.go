package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bistrohq/staff-backend-go/internal/domain/attendance"
	"github.com/bistrohq/staff-backend-go/internal/domain/bonus"
	"github.com/bistrohq/staff-backend-go/internal/domain/employee"
	"github.com/bistrohq/staff-backend-go/internal/domain/notification"
	"github.com/bistrohq/staff-backend-go/internal/domain/payroll"
	"github.com/bistrohq/staff-backend-go/internal/pkg/clock"
	"github.com/bistrohq/staff-backend-go/internal/pkg/database"
	"github.com/bistrohq/staff-backend-go/internal/pkg/payslip"
	"github.com/bistrohq/staff-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type Config struct {
	OvertimeMultiplier     decimal.Decimal
	LateDeductionPerMinute decimal.Decimal
}

type PayrollServiceImpl struct {
	tx              database.Transactor
	payrollRepo     payroll.PayrollRepository
	employeeRepo    employee.EmployeeRepository
	attendanceRepo  attendance.AttendanceRepository
	awardRepo       bonus.AwardRepository
	notificationSvc notification.Service
	clock           clock.Clock
	config          Config
}

func NewPayrollService(
	tx database.Transactor,
	payrollRepo payroll.PayrollRepository,
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	awardRepo bonus.AwardRepository,
	notificationSvc notification.Service,
	clk clock.Clock,
	cfg Config,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		tx:              tx,
		payrollRepo:     payrollRepo,
		employeeRepo:    employeeRepo,
		attendanceRepo:  attendanceRepo,
		awardRepo:       awardRepo,
		notificationSvc: notificationSvc,
		clock:           clk,
		config:          cfg,
	}
}

var minutesPerHour = decimal.NewFromInt(60)

// compute fills the hour and pay columns of item from the employee's
// completed attendance and the bonuses applied in the period.
func (s *PayrollServiceImpl) compute(item *payroll.PayrollItem, emp employee.Employee, records []attendance.Record, awards []bonus.Award) {
	regular, overtime := decimal.Zero, decimal.Zero
	late := 0
	for _, rec := range records {
		worked := decimal.NewFromFloat(rec.Hours())
		ot := decimal.NewFromInt(int64(rec.Overtime)).Div(minutesPerHour)
		overtime = overtime.Add(ot)
		regular = regular.Add(decimal.Max(decimal.Zero, worked.Sub(ot)))
		late += rec.LateMinutes
	}

	bonusPay := decimal.Zero
	for _, a := range awards {
		if a.EmployeeID == emp.ID {
			bonusPay = bonusPay.Add(a.Amount)
		}
	}

	item.RegularHours = regular.Round(2)
	item.OvertimeHours = overtime.Round(2)
	item.RegularPay = item.RegularHours.Mul(emp.HourlyRate).Round(2)
	item.OvertimePay = item.OvertimeHours.Mul(emp.HourlyRate).Mul(s.config.OvertimeMultiplier).Round(2)
	item.BonusPay = bonusPay.Round(2)
	item.LateMinutes = late
	item.Deductions = decimal.NewFromInt(int64(late)).Mul(s.config.LateDeductionPerMinute).Round(2)
	item.TotalPay = item.RegularPay.Add(item.OvertimePay).Add(item.BonusPay).Sub(item.Deductions)
}

// Generate implements payroll.PayrollService. Drafts are recomputed; processed
// and paid items are returned as they are.
func (s *PayrollServiceImpl) Generate(ctx context.Context, req payroll.GeneratePayrollRequest) ([]payroll.PayrollItem, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	start, end := req.Period()
	periodStart, periodEnd := start.Format(validator.DateLayout), end.Format(validator.DateLayout)

	var items []payroll.PayrollItem
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		role := employee.RoleEmployee
		staff, err := s.employeeRepo.List(ctx, employee.EmployeeFilter{Role: &role})
		if err != nil {
			return fmt.Errorf("failed to list employees: %w", err)
		}
		// Awards applied after an earlier item was settled roll into this one.
		payableBefore := start.AddDate(0, 1, 0)
		now := s.clock.Now().UTC()

		for _, emp := range staff {
			existing, err := s.payrollRepo.GetByEmployeePeriod(ctx, emp.ID, periodStart)
			found := err == nil
			if err != nil && !errors.Is(err, payroll.ErrPayrollItemNotFound) {
				return fmt.Errorf("failed to get payroll item: %w", err)
			}
			if found && existing.Status != payroll.PayrollStatusDraft {
				items = append(items, existing)
				continue
			}

			records, err := s.attendanceRepo.List(ctx, attendance.RecordFilter{
				EmployeeID: emp.ID,
				From:       periodStart,
				To:         periodEnd,
				Status:     []attendance.Status{attendance.StatusCompleted},
			})
			if err != nil {
				return fmt.Errorf("failed to list attendance: %w", err)
			}

			item := payroll.PayrollItem{
				EmployeeID:  emp.ID,
				PeriodStart: periodStart,
				PeriodEnd:   periodEnd,
				Status:      payroll.PayrollStatusDraft,
				CreatedAt:   now,
			}
			if found {
				item = existing
			}
			awards, err := s.awardRepo.ListPayable(ctx, emp.ID, payableBefore, item.ID)
			if err != nil {
				return fmt.Errorf("failed to list bonus awards: %w", err)
			}
			s.compute(&item, emp, records, awards)
			item.UpdatedAt = now

			if found {
				err = s.payrollRepo.Update(ctx, item)
			} else {
				item, err = s.payrollRepo.Create(ctx, item)
			}
			if err != nil {
				return fmt.Errorf("failed to save payroll item for %s: %w", emp.ID, err)
			}
			awardIDs := make([]string, 0, len(awards))
			for _, a := range awards {
				awardIDs = append(awardIDs, a.ID)
			}
			if err := s.awardRepo.LinkPayrollItem(ctx, awardIDs, item.ID); err != nil {
				return fmt.Errorf("failed to link bonus awards: %w", err)
			}
			items = append(items, item)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Payroll generated", "period", periodStart, "items", len(items))
	if items == nil {
		items = []payroll.PayrollItem{}
	}
	return items, nil
}

// List implements payroll.PayrollService.
func (s *PayrollServiceImpl) List(ctx context.Context, filter payroll.PayrollFilter) ([]payroll.PayrollItem, error) {
	items, err := s.payrollRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll: %w", err)
	}
	if items == nil {
		items = []payroll.PayrollItem{}
	}
	return items, nil
}

// Get implements payroll.PayrollService.
func (s *PayrollServiceImpl) Get(ctx context.Context, id string) (payroll.PayrollItem, error) {
	return s.payrollRepo.GetByID(ctx, id)
}

func (s *PayrollServiceImpl) transition(ctx context.Context, id string, to payroll.PayrollStatus, after func(ctx context.Context, item payroll.PayrollItem) error) (payroll.PayrollItem, error) {
	var item payroll.PayrollItem
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		item, err = s.payrollRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if !item.Status.CanTransition(to) {
			return payroll.ErrInvalidPayrollTransition
		}

		now := s.clock.Now().UTC()
		item.Status = to
		item.UpdatedAt = now
		switch to {
		case payroll.PayrollStatusProcessed:
			item.ProcessedDate = &now
		case payroll.PayrollStatusPaid:
			item.PaidDate = &now
		}
		if err := s.payrollRepo.Update(ctx, item); err != nil {
			return fmt.Errorf("failed to update payroll item: %w", err)
		}
		if after != nil {
			return after(ctx, item)
		}
		return nil
	})
	if err != nil {
		return payroll.PayrollItem{}, err
	}

	slog.Info("Payroll item updated", "payroll_id", item.ID, "status", item.Status)
	return item, nil
}

// Process implements payroll.PayrollService.
func (s *PayrollServiceImpl) Process(ctx context.Context, id string) (payroll.PayrollItem, error) {
	return s.transition(ctx, id, payroll.PayrollStatusProcessed, nil)
}

// Pay implements payroll.PayrollService.
func (s *PayrollServiceImpl) Pay(ctx context.Context, id string) (payroll.PayrollItem, error) {
	var notice notification.Notification
	item, err := s.transition(ctx, id, payroll.PayrollStatusPaid, func(ctx context.Context, item payroll.PayrollItem) error {
		var err error
		notice, err = s.notificationSvc.Create(ctx, notification.CreateNotificationRequest{
			UserID:  item.EmployeeID,
			Title:   "Payment Sent",
			Message: fmt.Sprintf("Your pay of $%s for %s to %s has been paid.", item.TotalPay.StringFixed(2), item.PeriodStart, item.PeriodEnd),
			Type:    notification.TypePayment,
		})
		if err != nil {
			return fmt.Errorf("failed to create payment notification: %w", err)
		}
		return nil
	})
	if err != nil {
		return payroll.PayrollItem{}, err
	}

	s.notificationSvc.Publish(notice)
	return item, nil
}

// Payslip implements payroll.PayrollService.
func (s *PayrollServiceImpl) Payslip(ctx context.Context, id string) ([]byte, error) {
	item, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	emp, err := s.employeeRepo.GetByID(ctx, item.EmployeeID)
	if err != nil {
		if !errors.Is(err, employee.ErrEmployeeNotFound) {
			return nil, fmt.Errorf("failed to get employee: %w", err)
		}
		emp = employee.Employee{ID: item.EmployeeID, Name: "Former employee"}
	}
	return payslip.Render(item, emp)
}
