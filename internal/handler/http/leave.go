package http

import (
	"net/http"

	"github.com/bistrohq/staff-backend-go/internal/domain/leave"
	"github.com/bistrohq/staff-backend-go/internal/handler/http/middleware"
	"github.com/bistrohq/staff-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type LeaveHandler interface {
	ListRequests(w http.ResponseWriter, r *http.Request)
	GetRequest(w http.ResponseWriter, r *http.Request)
	CreateRequest(w http.ResponseWriter, r *http.Request)
	ApproveRequest(w http.ResponseWriter, r *http.Request)
	RejectRequest(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &LeaveHandlerImpl{leaveService: leaveService}
}

// ListRequests implements LeaveHandler.
func (l *LeaveHandlerImpl) ListRequests(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	employeeID, ok := scopedEmployee(w, r, q.Get("employeeId"))
	if !ok {
		return
	}

	filter := leave.LeaveFilter{EmployeeID: employeeID}
	if status := q.Get("status"); status != "" {
		st := leave.LeaveRequestStatus(status)
		filter.Status = &st
	}

	requests, err := l.leaveService.GetLeaveRequests(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.List(w, requests, len(requests))
}

// GetRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) GetRequest(w http.ResponseWriter, r *http.Request) {
	req, err := l.leaveService.GetLeaveRequest(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if !allowFor(w, r, req.EmployeeID) {
		return
	}
	response.Success(w, req)
}

// CreateRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) CreateRequest(w http.ResponseWriter, r *http.Request) {
	var req leave.CreateLeaveRequest
	if !decodeJSON(w, r, "CreateLeaveRequest", &req) {
		return
	}
	if req.EmployeeID == "" {
		req.EmployeeID = middleware.EmployeeID(r)
	}
	if !allowFor(w, r, req.EmployeeID) {
		return
	}

	created, err := l.leaveService.RequestLeave(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Leave request submitted", created)
}

// respondRequest decodes the optional {note} body. An empty body is allowed.
func respondRequest(w http.ResponseWriter, r *http.Request) (leave.RespondLeaveRequest, bool) {
	var req leave.RespondLeaveRequest
	if err := decodeOptional(r, &req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return req, false
	}
	req.ID = chi.URLParam(r, "id")
	req.RespondedBy = middleware.EmployeeID(r)
	return req, true
}

// ApproveRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	req, ok := respondRequest(w, r)
	if !ok {
		return
	}

	approved, err := l.leaveService.ApproveLeave(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Leave request approved successfully", approved)
}

// RejectRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) RejectRequest(w http.ResponseWriter, r *http.Request) {
	req, ok := respondRequest(w, r)
	if !ok {
		return
	}

	rejected, err := l.leaveService.RejectLeave(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Leave request rejected", rejected)
}
