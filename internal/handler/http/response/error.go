package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/bistrohq/staff-backend-go/internal/domain/attendance"
	"github.com/bistrohq/staff-backend-go/internal/domain/auth"
	"github.com/bistrohq/staff-backend-go/internal/domain/bonus"
	"github.com/bistrohq/staff-backend-go/internal/domain/employee"
	"github.com/bistrohq/staff-backend-go/internal/domain/leave"
	"github.com/bistrohq/staff-backend-go/internal/domain/notification"
	"github.com/bistrohq/staff-backend-go/internal/domain/payroll"
	"github.com/bistrohq/staff-backend-go/internal/domain/shift"
	"github.com/bistrohq/staff-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrIncorrectPassword):
		Unauthorized(w, "Current password is incorrect")
	case errors.Is(err, auth.ErrAdminRequired), errors.Is(err, auth.ErrForbidden):
		Forbidden(w, err.Error())

	// Not found
	case errors.Is(err, employee.ErrEmployeeNotFound),
		errors.Is(err, shift.ErrShiftNotFound),
		errors.Is(err, attendance.ErrAttendanceNotFound),
		errors.Is(err, attendance.ErrNoOpenShift),
		errors.Is(err, leave.ErrLeaveRequestNotFound),
		errors.Is(err, notification.ErrNotificationNotFound),
		errors.Is(err, payroll.ErrPayrollItemNotFound):
		NotFound(w, err.Error())

	// State conflicts
	case errors.Is(err, employee.ErrEmailInUse),
		errors.Is(err, shift.ErrShiftOverlap),
		errors.Is(err, attendance.ErrAlreadyStarted),
		errors.Is(err, attendance.ErrAlreadyCompleted),
		errors.Is(err, attendance.ErrShiftNotStarted),
		errors.Is(err, attendance.ErrShiftMissed),
		errors.Is(err, leave.ErrLeaveAlreadyProcessed),
		errors.Is(err, leave.ErrOverlappingLeave),
		errors.Is(err, bonus.ErrBonusAlreadyApplied),
		errors.Is(err, bonus.ErrNotEligible),
		errors.Is(err, payroll.ErrInvalidPayrollTransition):
		Conflict(w, err.Error())

	// Bad input that is not a field validation
	case errors.Is(err, leave.ErrInvalidDateRange),
		errors.Is(err, attendance.ErrInvalidPeriod),
		errors.Is(err, payroll.ErrInvalidPeriod),
		errors.Is(err, employee.ErrInvalidRole),
		errors.Is(err, notification.ErrInvalidNotificationType):
		BadRequest(w, err.Error(), nil)

	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
