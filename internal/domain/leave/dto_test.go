package leave

import (
	"testing"

	"github.com/bistrohq/staff-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateLeaveRequest_Validate(t *testing.T) {
	tests := []struct {
		name   string
		req    CreateLeaveRequest
		fields []string
	}{
		{
			name: "valid",
			req:  CreateLeaveRequest{EmployeeID: "2", StartDate: "2024-05-01", EndDate: "2024-05-03", Type: TypeVacation},
		},
		{
			name:   "every field missing",
			req:    CreateLeaveRequest{},
			fields: []string{"employeeId", "startDate", "endDate", "type"},
		},
		{
			name:   "bad dates",
			req:    CreateLeaveRequest{EmployeeID: "2", StartDate: "05/01/2024", EndDate: "2024-5-3", Type: TypeSick},
			fields: []string{"startDate", "endDate"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if len(tt.fields) == 0 {
				assert.NoError(t, err)
				return
			}
			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			got := verrs.ToMap()
			assert.Len(t, got, len(tt.fields))
			for _, f := range tt.fields {
				assert.Contains(t, got, f)
			}
		})
	}
}

func TestCreateLeaveRequest_ValidateDateOrder(t *testing.T) {
	req := CreateLeaveRequest{EmployeeID: "2", StartDate: "2024-06-05", EndDate: "2024-06-01", Type: TypeSick}
	assert.ErrorIs(t, req.Validate(), ErrInvalidDateRange)
}
