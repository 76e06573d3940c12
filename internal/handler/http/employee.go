package http

import (
	"net/http"

	"github.com/bistrohq/staff-backend-go/internal/domain/employee"
	"github.com/bistrohq/staff-backend-go/internal/domain/note"
	"github.com/bistrohq/staff-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type EmployeeHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	UpdateProfileImage(w http.ResponseWriter, r *http.Request)

	AddNote(w http.ResponseWriter, r *http.Request)
	ListNotes(w http.ResponseWriter, r *http.Request)
}

type EmployeeHandlerImpl struct {
	employeeService employee.EmployeeService
	noteService     note.NoteService
}

func NewEmployeeHandler(employeeService employee.EmployeeService, noteService note.NoteService) EmployeeHandler {
	return &EmployeeHandlerImpl{
		employeeService: employeeService,
		noteService:     noteService,
	}
}

// List implements EmployeeHandler.
func (h *EmployeeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var filter employee.EmployeeFilter
	if role := r.URL.Query().Get("role"); role != "" {
		rl := employee.Role(role)
		if !rl.IsValid() {
			response.HandleError(w, employee.ErrInvalidRole)
			return
		}
		filter.Role = &rl
	}

	employees, err := h.employeeService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.List(w, employees, len(employees))
}

// Get implements EmployeeHandler.
func (h *EmployeeHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !allowFor(w, r, id) {
		return
	}

	emp, err := h.employeeService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, emp)
}

// Create implements EmployeeHandler.
func (h *EmployeeHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req employee.CreateEmployeeRequest
	if !decodeJSON(w, r, "CreateEmployee", &req) {
		return
	}

	emp, err := h.employeeService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Employee created successfully", emp)
}

// Update implements EmployeeHandler.
func (h *EmployeeHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req employee.UpdateEmployeeRequest
	if !decodeJSON(w, r, "UpdateEmployee", &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")

	emp, err := h.employeeService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Employee updated successfully", emp)
}

// Delete implements EmployeeHandler.
func (h *EmployeeHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.employeeService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Employee deleted successfully", nil)
}

// UpdateProfileImage implements EmployeeHandler.
func (h *EmployeeHandlerImpl) UpdateProfileImage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !allowFor(w, r, id) {
		return
	}

	var req employee.UpdateProfileImageRequest
	if !decodeJSON(w, r, "UpdateProfileImage", &req) {
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	emp, err := h.employeeService.UpdateProfileImage(r.Context(), id, req.ImageData)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Profile image updated", emp)
}

// AddNote implements EmployeeHandler.
func (h *EmployeeHandlerImpl) AddNote(w http.ResponseWriter, r *http.Request) {
	var req note.CreateNoteRequest
	if !decodeJSON(w, r, "AddNote", &req) {
		return
	}
	req.EmployeeID = chi.URLParam(r, "id")

	n, err := h.noteService.AddNote(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Note added", n)
}

// ListNotes implements EmployeeHandler.
func (h *EmployeeHandlerImpl) ListNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := h.noteService.ListByEmployee(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.List(w, notes, len(notes))
}
