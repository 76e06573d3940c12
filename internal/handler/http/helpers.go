package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/bistrohq/staff-backend-go/internal/domain/auth"
	"github.com/bistrohq/staff-backend-go/internal/handler/http/middleware"
	"github.com/bistrohq/staff-backend-go/internal/handler/http/response"
)

func jsonDecoder(r *http.Request) *json.Decoder {
	return json.NewDecoder(r.Body)
}

// decodeJSON reads the request body into dst and writes a 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, op string, dst interface{}) bool {
	if err := jsonDecoder(r).Decode(dst); err != nil {
		slog.Error(op+" decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return false
	}
	return true
}

// decodeOptional is decodeJSON for endpoints whose body may be empty.
func decodeOptional(r *http.Request, dst interface{}) error {
	err := jsonDecoder(r).Decode(dst)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// allowFor writes a 403 unless the caller is an admin or employeeID itself.
func allowFor(w http.ResponseWriter, r *http.Request, employeeID string) bool {
	if !middleware.SelfOrAdmin(r, employeeID) {
		response.HandleError(w, auth.ErrForbidden)
		return false
	}
	return true
}

// scopedEmployee returns the employee a request acts on: the requested one for
// admins, the caller otherwise. Non-admins asking for someone else get a 403.
func scopedEmployee(w http.ResponseWriter, r *http.Request, requested string) (string, bool) {
	if requested == "" && !middleware.IsAdmin(r) {
		requested = middleware.EmployeeID(r)
	}
	if requested != "" && !allowFor(w, r, requested) {
		return "", false
	}
	return requested, true
}

func getIntQueryParam(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}
	intVal, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return intVal
}

func getBoolQueryParam(r *http.Request, key string, defaultVal bool) bool {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}
	return val == "true" || val == "1"
}
