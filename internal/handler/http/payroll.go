package http

import (
	"fmt"
	"net/http"

	"github.com/bistrohq/staff-backend-go/internal/domain/payroll"
	"github.com/bistrohq/staff-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PayrollHandler interface {
	Generate(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Process(w http.ResponseWriter, r *http.Request)
	Pay(w http.ResponseWriter, r *http.Request)
	Payslip(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

func (h *payrollHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	var req payroll.GeneratePayrollRequest
	if !decodeJSON(w, r, "GeneratePayroll", &req) {
		return
	}

	items, err := h.payrollService.Generate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.List(w, items, len(items))
}

// List filters by ?month=YYYY-MM, ?employeeId and ?status.
func (h *payrollHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := payroll.PayrollFilter{EmployeeID: q.Get("employeeId")}
	if month := q.Get("month"); month != "" {
		start, err := payroll.MonthBounds(month)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		filter.PeriodStart = start
	}
	if status := q.Get("status"); status != "" {
		st := payroll.PayrollStatus(status)
		filter.Status = &st
	}

	items, err := h.payrollService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.List(w, items, len(items))
}

func (h *payrollHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	item, err := h.payrollService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if !allowFor(w, r, item.EmployeeID) {
		return
	}
	response.Success(w, item)
}

func (h *payrollHandlerImpl) Process(w http.ResponseWriter, r *http.Request) {
	item, err := h.payrollService.Process(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Payroll processed", item)
}

func (h *payrollHandlerImpl) Pay(w http.ResponseWriter, r *http.Request) {
	item, err := h.payrollService.Pay(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Payroll paid", item)
}

func (h *payrollHandlerImpl) Payslip(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	item, err := h.payrollService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if !allowFor(w, r, item.EmployeeID) {
		return
	}

	pdf, err := h.payrollService.Payslip(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.File(w, "application/pdf", fmt.Sprintf("payslip-%s-%s.pdf", item.EmployeeID, item.PeriodStart), pdf)
}
