package http

import (
	"net/http"

	"github.com/bistrohq/staff-backend-go/internal/domain/attendance"
	"github.com/bistrohq/staff-backend-go/internal/domain/bonus"
	"github.com/bistrohq/staff-backend-go/internal/handler/http/response"
	"github.com/shopspring/decimal"
)

type BonusHandler interface {
	Eligibility(w http.ResponseWriter, r *http.Request)
	Amount(w http.ResponseWriter, r *http.Request)
	EligibleEmployees(w http.ResponseWriter, r *http.Request)
	Apply(w http.ResponseWriter, r *http.Request)
	ListAwards(w http.ResponseWriter, r *http.Request)
}

type BonusHandlerImpl struct {
	bonusService bonus.BonusService
}

func NewBonusHandler(bonusService bonus.BonusService) BonusHandler {
	return &BonusHandlerImpl{bonusService: bonusService}
}

// Eligibility implements BonusHandler.
func (h *BonusHandlerImpl) Eligibility(w http.ResponseWriter, r *http.Request) {
	employeeID := r.URL.Query().Get("employeeId")
	if !ownEmployeeID(w, r, &employeeID) {
		return
	}

	e, err := h.bonusService.CalculateEligibility(r.Context(), employeeID, getIntQueryParam(r, "year", 0))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, e)
}

type bonusAmountResponse struct {
	Amount decimal.Decimal `json:"amount"`
}

// Amount implements BonusHandler. The body is an attendance report.
func (h *BonusHandlerImpl) Amount(w http.ResponseWriter, r *http.Request) {
	var rep attendance.AttendanceReport
	if !decodeJSON(w, r, "BonusAmount", &rep) {
		return
	}

	amount, err := h.bonusService.CalculateAmount(r.Context(), rep)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, bonusAmountResponse{Amount: amount})
}

// EligibleEmployees implements BonusHandler.
func (h *BonusHandlerImpl) EligibleEmployees(w http.ResponseWriter, r *http.Request) {
	reports, err := h.bonusService.EligibleEmployees(r.Context(), getIntQueryParam(r, "year", 0), r.URL.Query().Get("employeeId"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.List(w, reports, len(reports))
}

// Apply implements BonusHandler.
func (h *BonusHandlerImpl) Apply(w http.ResponseWriter, r *http.Request) {
	var req bonus.ApplyBonusRequest
	if !decodeJSON(w, r, "ApplyBonus", &req) {
		return
	}

	award, err := h.bonusService.ApplyBonus(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Bonus applied", award)
}

// ListAwards implements BonusHandler.
func (h *BonusHandlerImpl) ListAwards(w http.ResponseWriter, r *http.Request) {
	employeeID := r.URL.Query().Get("employeeId")
	if !ownEmployeeID(w, r, &employeeID) {
		return
	}

	awards, err := h.bonusService.ListAwards(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.List(w, awards, len(awards))
}
