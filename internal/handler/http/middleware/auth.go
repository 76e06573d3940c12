package middleware

import (
	"net/http"

	"github.com/bistrohq/staff-backend-go/internal/domain/auth"
	"github.com/bistrohq/staff-backend-go/internal/domain/employee"
	"github.com/bistrohq/staff-backend-go/internal/handler/http/response"
	"github.com/bistrohq/staff-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

// AuthRequired accepts only unrevoked access tokens. It runs after jwtauth.Verifier.
func AuthRequired(jwtService jwt.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}
			if token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			tokenType, ok := claims["type"].(string)
			if tokenType != jwt.TokenTypeAccess || !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}
			if jwtService.IsTokenRevoked(jwtauth.TokenFromHeader(r)) {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}

// EmployeeID returns the authenticated employee's id, or "".
func EmployeeID(r *http.Request) string {
	_, claims, _ := jwtauth.FromContext(r.Context())
	id, _ := claims["employee_id"].(string)
	return id
}

func IsAdmin(r *http.Request) bool {
	_, claims, _ := jwtauth.FromContext(r.Context())
	role, _ := claims["role"].(string)
	return role == string(employee.RoleAdmin)
}
