package export

import (
	"bytes"
	"testing"

	"github.com/bistrohq/staff-backend-go/internal/domain/attendance"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestAttendanceWorkbook_RoundTrip(t *testing.T) {
	reports := []attendance.AttendanceReport{
		{
			EmployeeID:     "2",
			EmployeeName:   "Jane Smith",
			Period:         attendance.PeriodAll,
			TotalShifts:    1,
			AttendedShifts: 1,
			AttendanceRate: 100,
			BonusEligible:  true,
			BonusAmount:    decimal.RequireFromString("168"),
		},
		{EmployeeID: "4", EmployeeName: "Sarah Williams", Period: attendance.PeriodAll, TotalShifts: 1, MissedShifts: 1},
	}

	out, err := AttendanceWorkbook(reports)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(AttendanceSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Employee ID", rows[0][0])
	assert.Equal(t, "Jane Smith", rows[1][1])
	assert.Equal(t, "100", rows[1][9])
	assert.Equal(t, "168.00", rows[1][14])
	assert.Equal(t, "Sarah Williams", rows[2][1])
}

func TestAttendanceWorkbook_EmptyHasHeaderOnly(t *testing.T) {
	out, err := AttendanceWorkbook(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(AttendanceSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
