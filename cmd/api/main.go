package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bistrohq/staff-backend-go/internal/config"
	"github.com/bistrohq/staff-backend-go/internal/domain/attendance"
	"github.com/bistrohq/staff-backend-go/internal/domain/bonus"
	"github.com/bistrohq/staff-backend-go/internal/domain/employee"
	"github.com/bistrohq/staff-backend-go/internal/domain/leave"
	"github.com/bistrohq/staff-backend-go/internal/domain/note"
	"github.com/bistrohq/staff-backend-go/internal/domain/notification"
	"github.com/bistrohq/staff-backend-go/internal/domain/payroll"
	"github.com/bistrohq/staff-backend-go/internal/domain/shift"
	"github.com/bistrohq/staff-backend-go/internal/fixtures"
	appHTTP "github.com/bistrohq/staff-backend-go/internal/handler/http"
	"github.com/bistrohq/staff-backend-go/internal/pkg/clock"
	"github.com/bistrohq/staff-backend-go/internal/pkg/cron"
	"github.com/bistrohq/staff-backend-go/internal/pkg/database"
	"github.com/bistrohq/staff-backend-go/internal/pkg/jwt"
	"github.com/bistrohq/staff-backend-go/internal/pkg/snapshot"
	"github.com/bistrohq/staff-backend-go/internal/pkg/sse"
	"github.com/bistrohq/staff-backend-go/internal/repository/memory"
	"github.com/bistrohq/staff-backend-go/internal/repository/postgresql"
	attendanceService "github.com/bistrohq/staff-backend-go/internal/service/attendance"
	serviceAuth "github.com/bistrohq/staff-backend-go/internal/service/auth"
	bonusService "github.com/bistrohq/staff-backend-go/internal/service/bonus"
	employeeService "github.com/bistrohq/staff-backend-go/internal/service/employee"
	leaveService "github.com/bistrohq/staff-backend-go/internal/service/leave"
	noteService "github.com/bistrohq/staff-backend-go/internal/service/note"
	notificationService "github.com/bistrohq/staff-backend-go/internal/service/notification"
	payrollService "github.com/bistrohq/staff-backend-go/internal/service/payroll"
	reportService "github.com/bistrohq/staff-backend-go/internal/service/report"
	shiftService "github.com/bistrohq/staff-backend-go/internal/service/shift"
)

const (
	appName    = "bistro-staff"
	appVersion = "v1.0.0"
)

type repositories struct {
	tx            database.Transactor
	employees     employee.EmployeeRepository
	shifts        shift.ShiftRepository
	attendance    attendance.AttendanceRepository
	leaves        leave.LeaveRequestRepository
	notifications notification.Repository
	notes         note.NoteRepository
	payroll       payroll.PayrollRepository
	awards        bonus.AwardRepository
	close         func()
}

func openRepositories(ctx context.Context, cfg *config.Config, clk clock.Clock) (*repositories, error) {
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		if err := postgresql.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, err
		}
		return &repositories{
			tx:            postgresql.NewTransactor(db),
			employees:     postgresql.NewEmployeeRepository(db),
			shifts:        postgresql.NewShiftRepository(db),
			attendance:    postgresql.NewAttendanceRepository(db),
			leaves:        postgresql.NewLeaveRequestRepository(db),
			notifications: postgresql.NewNotificationRepository(db),
			notes:         postgresql.NewNoteRepository(db),
			payroll:       postgresql.NewPayrollRepository(db),
			awards:        postgresql.NewAwardRepository(db),
			close:         db.Close,
		}, nil

	case config.DriverSQLite:
		mirror, err := snapshot.OpenSQLite(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, err
		}
		store, err := memory.Open(ctx, mirror, memory.WithClock(clk))
		if err != nil {
			mirror.Close()
			return nil, err
		}
		repos := memoryRepositories(store)
		repos.close = func() {
			if err := mirror.Close(); err != nil {
				slog.Error("Failed to close snapshot store", "error", err)
			}
		}
		return repos, nil

	default:
		return memoryRepositories(memory.NewStore(memory.WithClock(clk))), nil
	}
}

func memoryRepositories(store *memory.Store) *repositories {
	return &repositories{
		tx:            store,
		employees:     memory.NewEmployeeRepository(store),
		shifts:        memory.NewShiftRepository(store),
		attendance:    memory.NewAttendanceRepository(store),
		leaves:        memory.NewLeaveRequestRepository(store),
		notifications: memory.NewNotificationRepository(store),
		notes:         memory.NewNoteRepository(store),
		payroll:       memory.NewPayrollRepository(store),
		awards:        memory.NewAwardRepository(store),
		close:         func() {},
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Error loading config", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel()})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	clk := clock.New()
	repos, err := openRepositories(ctx, cfg, clk)
	if err != nil {
		slog.Error("Error opening storage", "driver", cfg.Storage.Driver, "error", err)
		os.Exit(1)
	}
	defer repos.close()

	if cfg.Storage.SeedData {
		seeded, err := fixtures.Seed(ctx, repos.tx, fixtures.Repositories{
			Employees:  repos.employees,
			Shifts:     repos.shifts,
			Attendance: repos.attendance,
			Leaves:     repos.leaves,
		})
		if err != nil {
			slog.Error("Error seeding data", "error", err)
			os.Exit(1)
		}
		if seeded {
			slog.Info("Seeded demo data")
		}
	}

	location := cfg.Location()
	hub := sse.NewHub(0)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	notificationSvc := notificationService.NewNotificationService(repos.notifications, hub, clk)
	authSvc := serviceAuth.NewAuthService(repos.employees, JWTService, cfg.Employee.DefaultHourlyRate)
	employeeSvc := employeeService.NewEmployeeService(repos.employees, employeeService.Config{
		DefaultPassword:   cfg.Employee.DefaultPassword,
		DefaultHourlyRate: cfg.Employee.DefaultHourlyRate,
	})
	noteSvc := noteService.NewNoteService(repos.notes, repos.employees, clk)
	shiftSvc := shiftService.NewShiftService(repos.tx, repos.shifts, repos.employees, notificationSvc, clk)
	attendanceSvc := attendanceService.NewAttendanceService(
		repos.tx,
		repos.attendance,
		repos.shifts,
		repos.employees,
		repos.leaves,
		clk,
		attendanceService.Config{Location: location, BonusMonthlyHours: cfg.Bonus.MonthlyHours},
	)
	leaveSvc := leaveService.NewLeaveService(repos.tx, repos.leaves, repos.shifts, repos.employees, notificationSvc, clk)
	bonusSvc := bonusService.NewBonusService(
		repos.tx,
		repos.awards,
		repos.employees,
		repos.leaves,
		attendanceSvc,
		notificationSvc,
		clk,
		bonusService.Config{MonthlyHours: cfg.Bonus.MonthlyHours},
	)
	payrollSvc := payrollService.NewPayrollService(
		repos.tx,
		repos.payroll,
		repos.employees,
		repos.attendance,
		repos.awards,
		notificationSvc,
		clk,
		payrollService.Config{
			OvertimeMultiplier:     cfg.Payroll.OvertimeMultiplier,
			LateDeductionPerMinute: cfg.Payroll.LateDeductionPerMinute,
		},
	)
	reportSvc := reportService.NewReportService(repos.employees, repos.attendance, repos.leaves, attendanceSvc, clk, location)

	router := appHTTP.NewRouter(appHTTP.RouterOptions{
		AppName:     appName,
		Version:     appVersion,
		Env:         cfg.App.Env,
		FrontendURL: cfg.App.FrontendURL,
		LogLevel:    cfg.LogLevel(),
	}, JWTService, appHTTP.Handlers{
		Auth:         appHTTP.NewAuthHandler(authSvc),
		Employee:     appHTTP.NewEmployeeHandler(employeeSvc, noteSvc),
		Shift:        appHTTP.NewShiftHandler(shiftSvc),
		Attendance:   appHTTP.NewAttendanceHandler(attendanceSvc),
		Leave:        appHTTP.NewLeaveHandler(leaveSvc),
		Bonus:        appHTTP.NewBonusHandler(bonusSvc),
		Payroll:      appHTTP.NewPayrollHandler(payrollSvc),
		Notification: appHTTP.NewNotificationHandler(notificationSvc, JWTService),
		Report:       appHTTP.NewReportHandler(reportSvc),
	})

	scheduler := cron.NewScheduler()
	if cfg.Cron.Enabled {
		cron.NewAttendanceJobs(attendanceSvc, cfg.Cron.StaleShiftGrace).RegisterJobs(scheduler, cfg.Cron.Interval)
		scheduler.Start()
		defer scheduler.Stop()
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	// Open event streams never go idle, so end them when shutdown starts.
	server.RegisterOnShutdown(hub.Close)

	go func() {
		slog.Info("Server running", "addr", server.Addr, "storage", cfg.Storage.Driver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
}
