package middleware

import (
	"net/http"

	"github.com/bistrohq/staff-backend-go/internal/domain/auth"
	"github.com/bistrohq/staff-backend-go/internal/handler/http/response"
)

func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !IsAdmin(r) {
			response.HandleError(w, auth.ErrAdminRequired)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// SelfOrAdmin reports whether the caller may act on employeeID's records.
func SelfOrAdmin(r *http.Request, employeeID string) bool {
	return IsAdmin(r) || (employeeID != "" && employeeID == EmployeeID(r))
}
