package http

import (
	"fmt"
	"net/http"

	"github.com/bistrohq/staff-backend-go/internal/domain/attendance"
	"github.com/bistrohq/staff-backend-go/internal/domain/report"
	"github.com/bistrohq/staff-backend-go/internal/handler/http/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportHandler interface {
	Summary(w http.ResponseWriter, r *http.Request)
	EmployeeReports(w http.ResponseWriter, r *http.Request)
	ExportAttendance(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{reportService: reportService}
}

func period(r *http.Request) attendance.Period {
	return attendance.Period(r.URL.Query().Get("period"))
}

func (h *reportHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	sum, err := h.reportService.Summary(r.Context(), period(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, sum)
}

func (h *reportHandlerImpl) EmployeeReports(w http.ResponseWriter, r *http.Request) {
	reports, err := h.reportService.EmployeeReports(r.Context(), period(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.List(w, reports, len(reports))
}

func (h *reportHandlerImpl) ExportAttendance(w http.ResponseWriter, r *http.Request) {
	p := period(r)
	out, err := h.reportService.ExportAttendance(r.Context(), p)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if p == "" {
		p = attendance.PeriodAll
	}
	response.File(w, xlsxContentType, fmt.Sprintf("attendance-%s.xlsx", p), out)
}
