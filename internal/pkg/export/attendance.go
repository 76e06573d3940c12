// Package export writes attendance reports as spreadsheets.
package export

import (
	"fmt"

	"github.com/bistrohq/staff-backend-go/internal/domain/attendance"
	"github.com/xuri/excelize/v2"
)

const AttendanceSheet = "Attendance"

var attendanceHeader = []interface{}{
	"Employee ID", "Employee", "Period", "From", "To",
	"Total Shifts", "Attended", "Missed", "Hours", "Attendance Rate (%)",
	"Leaves Used", "Overtime (min)", "Late (min)", "Bonus Eligible", "Bonus Amount",
}

// AttendanceWorkbook renders one row per report under a bold header row.
func AttendanceWorkbook(reports []attendance.AttendanceReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", AttendanceSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(AttendanceSheet, "A1", &attendanceHeader); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(len(attendanceHeader), 1)
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(AttendanceSheet, "A1", last, bold); err != nil {
		return nil, fmt.Errorf("style header: %w", err)
	}

	for i, r := range reports {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []interface{}{
			r.EmployeeID, r.EmployeeName, string(r.Period), r.From, r.To,
			r.TotalShifts, r.AttendedShifts, r.MissedShifts, r.TotalHours, r.AttendanceRate,
			r.LeavesUsed, r.TotalOvertime, r.TotalLate, r.BonusEligible, r.BonusAmount.StringFixed(2),
		}
		if err := f.SetSheetRow(AttendanceSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
