package http

import (
	"net/http"

	"github.com/bistrohq/staff-backend-go/internal/domain/attendance"
	"github.com/bistrohq/staff-backend-go/internal/handler/http/middleware"
	"github.com/bistrohq/staff-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	StartShift(w http.ResponseWriter, r *http.Request)
	EndShift(w http.ResponseWriter, r *http.Request)
	CurrentShift(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Report(w http.ResponseWriter, r *http.Request)
	MarkAbsent(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &AttendanceHandlerImpl{attendanceService: attendanceService}
}

// ownEmployeeID fills an empty employee id with the caller and checks access.
func ownEmployeeID(w http.ResponseWriter, r *http.Request, employeeID *string) bool {
	if *employeeID == "" {
		*employeeID = middleware.EmployeeID(r)
	}
	return allowFor(w, r, *employeeID)
}

// StartShift implements AttendanceHandler.
func (h *AttendanceHandlerImpl) StartShift(w http.ResponseWriter, r *http.Request) {
	var req attendance.StartShiftRequest
	if !decodeJSON(w, r, "StartShift", &req) {
		return
	}
	if !ownEmployeeID(w, r, &req.EmployeeID) {
		return
	}

	sa, err := h.attendanceService.StartShift(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Shift started", sa)
}

// EndShift implements AttendanceHandler.
func (h *AttendanceHandlerImpl) EndShift(w http.ResponseWriter, r *http.Request) {
	var req attendance.EndShiftRequest
	if !decodeJSON(w, r, "EndShift", &req) {
		return
	}
	if !ownEmployeeID(w, r, &req.EmployeeID) {
		return
	}

	sa, err := h.attendanceService.EndShift(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Shift ended", sa)
}

// CurrentShift implements AttendanceHandler.
func (h *AttendanceHandlerImpl) CurrentShift(w http.ResponseWriter, r *http.Request) {
	employeeID := r.URL.Query().Get("employeeId")
	if !ownEmployeeID(w, r, &employeeID) {
		return
	}

	sa, err := h.attendanceService.CurrentShift(r.Context(), employeeID, r.URL.Query().Get("date"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, sa)
}

// List implements AttendanceHandler. Admins may list a whole day.
func (h *AttendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	date := q.Get("date")
	employeeID, ok := scopedEmployee(w, r, q.Get("employeeId"))
	if !ok {
		return
	}

	var (
		records []attendance.Record
		err     error
	)
	switch {
	case employeeID == "" && date != "":
		records, err = h.attendanceService.ListByDate(r.Context(), date)
	case employeeID == "":
		response.BadRequest(w, "employeeId or date is required", nil)
		return
	case date != "":
		records, err = h.attendanceService.GetAttendance(r.Context(), employeeID, date)
	default:
		records, err = h.attendanceService.ListByEmployee(r.Context(), employeeID)
	}
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.List(w, records, len(records))
}

// Report implements AttendanceHandler.
func (h *AttendanceHandlerImpl) Report(w http.ResponseWriter, r *http.Request) {
	employeeID := r.URL.Query().Get("employeeId")
	if !ownEmployeeID(w, r, &employeeID) {
		return
	}

	rep, err := h.attendanceService.GetReport(r.Context(), employeeID, attendance.Period(r.URL.Query().Get("period")))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, rep)
}

// MarkAbsent implements AttendanceHandler.
func (h *AttendanceHandlerImpl) MarkAbsent(w http.ResponseWriter, r *http.Request) {
	var req attendance.MarkAbsentRequest
	if !decodeJSON(w, r, "MarkAbsent", &req) {
		return
	}

	rec, err := h.attendanceService.MarkAbsent(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Marked absent", rec)
}

// Update implements AttendanceHandler.
func (h *AttendanceHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req attendance.UpdateAttendanceRequest
	if !decodeJSON(w, r, "UpdateAttendance", &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")

	rec, err := h.attendanceService.UpdateAttendance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Attendance updated", rec)
}
