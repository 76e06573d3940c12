// Package payslip renders a single payroll item as a one-page PDF.
package payslip

import (
	"bytes"
	"fmt"

	"github.com/bistrohq/staff-backend-go/internal/domain/employee"
	"github.com/bistrohq/staff-backend-go/internal/domain/payroll"
	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

const currency = "USD"

func Render(item payroll.PayrollItem, emp employee.Employee) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Payslip "+item.PeriodStart, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s (%s)", emp.Name, emp.JobType))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Email: %s", emp.Email))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s to %s", item.PeriodStart, item.PeriodEnd))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Status: %s", item.Status))
	pdf.Ln(10)

	rows := []struct {
		label string
		value string
	}{
		{"Hourly rate", money(emp.HourlyRate)},
		{"Regular hours", item.RegularHours.StringFixed(2)},
		{"Overtime hours", item.OvertimeHours.StringFixed(2)},
		{"Regular pay", money(item.RegularPay)},
		{"Overtime pay", money(item.OvertimePay)},
		{"Bonus", money(item.BonusPay)},
		{fmt.Sprintf("Deductions (%d min late)", item.LateMinutes), money(item.Deductions)},
	}
	for _, row := range rows {
		pdf.CellFormat(90, 8, row.label, "B", 0, "L", false, 0, "")
		pdf.CellFormat(60, 8, row.value, "B", 1, "R", false, 0, "")
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(90, 8, "Net pay", "", 0, "L", false, 0, "")
	pdf.CellFormat(60, 8, money(item.TotalPay), "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render payslip %s: %w", item.ID, err)
	}
	return buf.Bytes(), nil
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2) + " " + currency
}
