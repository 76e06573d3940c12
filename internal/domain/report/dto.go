package report

import "github.com/bistrohq/staff-backend-go/internal/domain/attendance"

// Summary is the admin dashboard view of the restaurant for today and the period.
type Summary struct {
	Date               string            `json:"date"`
	Period             attendance.Period `json:"period"`
	TotalEmployees     int               `json:"totalEmployees"`
	PresentToday       int               `json:"presentToday"`
	AbsentToday        int               `json:"absentToday"`
	OnLeaveToday       int               `json:"onLeaveToday"`
	AttendanceRate     int               `json:"attendanceRate"`
	AverageHoursWorked float64           `json:"averageHoursWorked"`
}
