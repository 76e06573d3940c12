package http

import (
	"log/slog"
	"os"

	"github.com/bistrohq/staff-backend-go/internal/handler/http/middleware"
	"github.com/bistrohq/staff-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// RouterOptions carries the request-logger labels and the CORS origin.
type RouterOptions struct {
	AppName     string
	Version     string
	Env         string
	FrontendURL string
	LogLevel    slog.Level
}

// Handlers groups every HTTP handler mounted under /api/v1.
type Handlers struct {
	Auth         AuthHandler
	Employee     EmployeeHandler
	Shift        ShiftHandler
	Attendance   AttendanceHandler
	Leave        LeaveHandler
	Bonus        BonusHandler
	Payroll      PayrollHandler
	Notification NotificationHandler
	Report       ReportHandler
}

func NewRouter(opts RouterOptions, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(opts.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", opts.AppName),
		slog.String("version", opts.Version),
		slog.String("env", opts.Env),
	)

	origins := []string{"http://localhost:3000"}
	if opts.FrontendURL != "" {
		origins = []string{opts.FrontendURL}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  opts.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", h.Auth.Signup)
			r.Post("/login", h.Auth.Login)
		})

		// EventSource authenticates with a stream token in the query string.
		r.Get("/notifications/stream", h.Notification.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService))

			r.Route("/auth/me", func(r chi.Router) {
				r.Get("/", h.Auth.Me)
				r.Put("/", h.Auth.UpdateProfile)
				r.Put("/password", h.Auth.UpdatePassword)
				r.Put("/email", h.Auth.UpdateEmail)
			})
			r.Post("/auth/logout", h.Auth.Logout)

			r.Route("/employees", func(r chi.Router) {
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.Employee.Get)
					r.Put("/profile-image", h.Employee.UpdateProfileImage)
				})

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", h.Employee.List)
					r.Post("/", h.Employee.Create)
					r.Put("/{id}", h.Employee.Update)
					r.Delete("/{id}", h.Employee.Delete)
					r.Get("/{id}/notes", h.Employee.ListNotes)
					r.Post("/{id}/notes", h.Employee.AddNote)
				})
			})

			r.Route("/shifts", func(r chi.Router) {
				r.Get("/", h.Shift.List)
				r.Get("/{id}", h.Shift.Get)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", h.Shift.Create)
					r.Put("/{id}", h.Shift.Update)
					r.Delete("/{id}", h.Shift.Delete)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Get("/", h.Attendance.List)
				r.Get("/current", h.Attendance.CurrentShift)
				r.Get("/report", h.Attendance.Report)
				r.Post("/start", h.Attendance.StartShift)
				r.Post("/end", h.Attendance.EndShift)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/absent", h.Attendance.MarkAbsent)
					r.Put("/{id}", h.Attendance.Update)
				})
			})

			r.Route("/leave-requests", func(r chi.Router) {
				r.Get("/", h.Leave.ListRequests)
				r.Post("/", h.Leave.CreateRequest)
				r.Get("/{id}", h.Leave.GetRequest)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/{id}/approve", h.Leave.ApproveRequest)
					r.Post("/{id}/reject", h.Leave.RejectRequest)
				})
			})

			r.Route("/bonus", func(r chi.Router) {
				r.Get("/eligibility", h.Bonus.Eligibility)
				r.Get("/awards", h.Bonus.ListAwards)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/eligible", h.Bonus.EligibleEmployees)
					r.Post("/amount", h.Bonus.Amount)
					r.Post("/apply", h.Bonus.Apply)
				})
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Get("/{id}", h.Payroll.Get)
				r.Get("/{id}/payslip", h.Payroll.Payslip)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", h.Payroll.List)
					r.Post("/generate", h.Payroll.Generate)
					r.Post("/{id}/process", h.Payroll.Process)
					r.Post("/{id}/pay", h.Payroll.Pay)
				})
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", h.Notification.List)
				r.Get("/unread-count", h.Notification.UnreadCount)
				r.Post("/stream-token", h.Notification.GetStreamToken)
				r.Patch("/read-all", h.Notification.MarkAllAsRead)
				r.Patch("/{id}/read", h.Notification.MarkAsRead)

				// Admin only
				r.With(middleware.AdminOnly).Post("/", h.Notification.Send)
			})

			r.Route("/reports", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Get("/summary", h.Report.Summary)
				r.Get("/employees", h.Report.EmployeeReports)
				r.Get("/attendance/export", h.Report.ExportAttendance)
			})
		})
	})
	return r
}
