package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bistrohq/staff-backend-go/internal/fixtures"
	"github.com/bistrohq/staff-backend-go/internal/pkg/clock"
	"github.com/bistrohq/staff-backend-go/internal/pkg/jwt"
	"github.com/bistrohq/staff-backend-go/internal/pkg/sse"
	"github.com/bistrohq/staff-backend-go/internal/repository/memory"
	attendanceService "github.com/bistrohq/staff-backend-go/internal/service/attendance"
	authService "github.com/bistrohq/staff-backend-go/internal/service/auth"
	bonusService "github.com/bistrohq/staff-backend-go/internal/service/bonus"
	employeeService "github.com/bistrohq/staff-backend-go/internal/service/employee"
	leaveService "github.com/bistrohq/staff-backend-go/internal/service/leave"
	noteService "github.com/bistrohq/staff-backend-go/internal/service/note"
	notificationService "github.com/bistrohq/staff-backend-go/internal/service/notification"
	payrollService "github.com/bistrohq/staff-backend-go/internal/service/payroll"
	reportService "github.com/bistrohq/staff-backend-go/internal/service/report"
	shiftService "github.com/bistrohq/staff-backend-go/internal/service/shift"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const handlerTestSecret = "test-secret-key-for-jwt"

type testServer struct {
	router *chi.Mux
	clock  *clock.Mock
	hub    *sse.Hub
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Details map[string]string `json:"details"`
	} `json:"error"`
	Meta *struct {
		Count int `json:"count"`
	} `json:"meta"`
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ctx := context.Background()

	store := memory.NewStore()
	employees := memory.NewEmployeeRepository(store)
	shifts := memory.NewShiftRepository(store)
	attendanceRepo := memory.NewAttendanceRepository(store)
	leaves := memory.NewLeaveRequestRepository(store)
	awards := memory.NewAwardRepository(store)
	_, err := fixtures.Seed(ctx, store, fixtures.Repositories{
		Employees: employees, Shifts: shifts, Attendance: attendanceRepo, Leaves: leaves,
	})
	require.NoError(t, err)

	clk := clock.NewMock(time.Date(2024, 3, 26, 8, 55, 0, 0, time.UTC))
	jwtSvc := jwt.NewJWTService(handlerTestSecret, time.Hour)
	hub := sse.NewHub(0)
	notifSvc := notificationService.NewNotificationService(memory.NewNotificationRepository(store), hub, clk)
	attendanceSvc := attendanceService.NewAttendanceService(store, attendanceRepo, shifts, employees, leaves, clk,
		attendanceService.Config{Location: time.UTC, BonusMonthlyHours: 160})
	rate := decimal.NewFromInt(15)

	router := NewRouter(RouterOptions{AppName: "bistro-staff-test", Env: "test"}, jwtSvc, Handlers{
		Auth: NewAuthHandler(authService.NewAuthService(employees, jwtSvc, rate)),
		Employee: NewEmployeeHandler(
			employeeService.NewEmployeeService(employees, employeeService.Config{DefaultPassword: "employee123", DefaultHourlyRate: rate}),
			noteService.NewNoteService(memory.NewNoteRepository(store), employees, clk),
		),
		Shift:      NewShiftHandler(shiftService.NewShiftService(store, shifts, employees, notifSvc, clk)),
		Attendance: NewAttendanceHandler(attendanceSvc),
		Leave:      NewLeaveHandler(leaveService.NewLeaveService(store, leaves, shifts, employees, notifSvc, clk)),
		Bonus: NewBonusHandler(bonusService.NewBonusService(store, awards, employees, leaves, attendanceSvc, notifSvc, clk,
			bonusService.Config{MonthlyHours: 160})),
		Payroll: NewPayrollHandler(payrollService.NewPayrollService(store, memory.NewPayrollRepository(store), employees, attendanceRepo,
			awards, notifSvc, clk, payrollService.Config{OvertimeMultiplier: decimal.NewFromFloat(1.5)})),
		Notification: NewNotificationHandler(notifSvc, jwtSvc),
		Report:       NewReportHandler(reportService.NewReportService(employees, attendanceRepo, leaves, attendanceSvc, clk, time.UTC)),
	})

	return &testServer{router: router, clock: clk, hub: hub}
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder, data interface{}) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	if data != nil {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env
}

func (s *testServer) login(t *testing.T, email, password string) string {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": email, "password": password})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var session struct {
		AccessToken string `json:"accessToken"`
	}
	decodeEnvelope(t, rec, &session)
	require.NotEmpty(t, session.AccessToken)
	return session.AccessToken
}

func TestRouter_Heartbeat(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_Login(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "admin@bistro.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "", "password": ""})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token := s.login(t, "employee@bistro.com", "employee123")
	rec = s.do(t, http.MethodGet, "/api/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var me struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	decodeEnvelope(t, rec, &me)
	assert.Equal(t, "2", me.ID)
	assert.Equal(t, "employee", me.Role)
}

func TestRouter_LogoutRevokesToken(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, "employee@bistro.com", "employee123")

	rec := s.do(t, http.MethodPost, "/api/v1/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodGet, "/api/v1/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_AdminOnlyRoutes(t *testing.T) {
	s := newTestServer(t)
	employeeToken := s.login(t, "employee@bistro.com", "employee123")
	adminToken := s.login(t, "admin@bistro.com", "admin123")

	newShift := map[string]string{
		"employeeId": "2", "date": "2024-03-26", "startTime": "09:00", "endTime": "17:00", "type": "Morning",
	}
	rec := s.do(t, http.MethodPost, "/api/v1/shifts", employeeToken, newShift)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/v1/shifts", adminToken, newShift)
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodGet, "/api/v1/employees", employeeToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/employees", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec, nil)
	require.NotNil(t, env.Meta)
	assert.Equal(t, 4, env.Meta.Count)

	rename := map[string]string{"name": "Michael Chen"}
	rec = s.do(t, http.MethodPut, "/api/v1/employees/3", employeeToken, rename)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodPut, "/api/v1/employees/3", adminToken, rename)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var updated struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	decodeEnvelope(t, rec, &updated)
	assert.Equal(t, "3", updated.ID)
	assert.Equal(t, "Michael Chen", updated.Name)

	rec = s.do(t, http.MethodDelete, "/api/v1/employees/4", employeeToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodDelete, "/api/v1/employees/4", adminToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodGet, "/api/v1/employees/4", adminToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/reports/summary", employeeToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouter_SelfOrAdmin(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, "employee@bistro.com", "employee123")

	rec := s.do(t, http.MethodGet, "/api/v1/employees/2", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/employees/3", token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/leave-requests/leave-2", token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/leave-requests", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var requests []struct {
		ID         string `json:"id"`
		EmployeeID string `json:"employeeId"`
	}
	decodeEnvelope(t, rec, &requests)
	require.Len(t, requests, 1)
	assert.Equal(t, "leave-1", requests[0].ID)
}

func TestRouter_ShiftDayFlow(t *testing.T) {
	s := newTestServer(t)
	adminToken := s.login(t, "admin@bistro.com", "admin123")
	employeeToken := s.login(t, "employee@bistro.com", "employee123")

	rec := s.do(t, http.MethodPost, "/api/v1/shifts", adminToken, map[string]string{
		"employeeId": "2", "date": "2024-03-26", "startTime": "09:00", "endTime": "17:00", "type": "Morning",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodPost, "/api/v1/attendance/end", employeeToken, map[string]string{"date": "2024-03-26"})
	assert.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodPost, "/api/v1/attendance/start", employeeToken, map[string]string{"date": "2024-03-26"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodPost, "/api/v1/attendance/start", employeeToken, map[string]string{"date": "2024-03-26"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/v1/attendance/start", employeeToken, map[string]string{"employeeId": "3", "date": "2024-03-26"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	s.clock.Advance(8*time.Hour + 10*time.Minute)
	rec = s.do(t, http.MethodPost, "/api/v1/attendance/end", employeeToken, map[string]string{"date": "2024-03-26"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var ended struct {
		Status       string `json:"status"`
		ActualStatus string `json:"actualStatus"`
	}
	decodeEnvelope(t, rec, &ended)
	assert.Equal(t, "completed", ended.Status)
	assert.Equal(t, "completed", ended.ActualStatus)

	rec = s.do(t, http.MethodGet, "/api/v1/notifications/unread-count", employeeToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var unread struct {
		UnreadCount int `json:"unreadCount"`
	}
	decodeEnvelope(t, rec, &unread)
	assert.Equal(t, 1, unread.UnreadCount)
}

func TestRouter_LeaveApprovalNotifies(t *testing.T) {
	s := newTestServer(t)
	adminToken := s.login(t, "admin@bistro.com", "admin123")
	employeeToken := s.login(t, "employee@bistro.com", "employee123")

	rec := s.do(t, http.MethodPost, "/api/v1/leave-requests/leave-1/approve", employeeToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/v1/leave-requests/leave-1/approve", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodPost, "/api/v1/leave-requests/leave-1/reject", adminToken, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/notifications?unreadOnly=true", employeeToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var notices []struct {
		ID   string `json:"id"`
		Type string `json:"type"`
	}
	decodeEnvelope(t, rec, &notices)
	require.Len(t, notices, 1)

	rec = s.do(t, http.MethodPatch, "/api/v1/notifications/"+notices[0].ID+"/read", employeeToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodGet, "/api/v1/notifications?unreadOnly=true", employeeToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec, nil)
	assert.Equal(t, 0, env.Meta.Count)
}

func TestRouter_Payslip(t *testing.T) {
	s := newTestServer(t)
	adminToken := s.login(t, "admin@bistro.com", "admin123")
	employeeToken := s.login(t, "employee@bistro.com", "employee123")

	rec := s.do(t, http.MethodPost, "/api/v1/payroll/generate", adminToken, map[string]string{"month": "2024-03"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var items []struct {
		ID         string `json:"id"`
		EmployeeID string `json:"employeeId"`
	}
	decodeEnvelope(t, rec, &items)
	require.Len(t, items, 3)

	byEmployee := make(map[string]string)
	for _, item := range items {
		byEmployee[item.EmployeeID] = item.ID
	}

	rec = s.do(t, http.MethodGet, "/api/v1/payroll/"+byEmployee["2"]+"/payslip", employeeToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))

	rec = s.do(t, http.MethodGet, "/api/v1/payroll/"+byEmployee["3"]+"/payslip", employeeToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/v1/payroll/"+byEmployee["2"]+"/pay", adminToken, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRouter_StreamToken(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, "employee@bistro.com", "employee123")

	rec := s.do(t, http.MethodGet, "/api/v1/notifications/stream", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/notifications/stream?token="+token, "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/v1/notifications/stream-token", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var st struct {
		Token     string `json:"token"`
		ExpiresIn int    `json:"expiresIn"`
	}
	decodeEnvelope(t, rec, &st)
	assert.NotEmpty(t, st.Token)
	assert.Positive(t, st.ExpiresIn)
}

func (s *testServer) streamToken(t *testing.T, accessToken string) string {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/v1/notifications/stream-token", accessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var st struct {
		Token string `json:"token"`
	}
	decodeEnvelope(t, rec, &st)
	return st.Token
}

// openStream serves the event stream in the background and returns a channel
// closed when the handler returns.
func (s *testServer) openStream(t *testing.T, ctx context.Context, streamToken string) (*httptest.ResponseRecorder, <-chan struct{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/notifications/stream?token="+streamToken, nil).WithContext(ctx)
	rec := httptest.NewRecorder()
	done := make(chan struct{})
	go func() {
		defer close(done)
		s.router.ServeHTTP(rec, req)
	}()
	return rec, done
}

func TestRouter_StreamEndsOnShutdown(t *testing.T) {
	s := newTestServer(t)
	token := s.streamToken(t, s.login(t, "employee@bistro.com", "employee123"))

	rec, done := s.openStream(t, context.Background(), token)
	require.Eventually(t, func() bool { return s.hub.SubscriberCount("2") == 1 }, time.Second, 10*time.Millisecond)

	s.hub.Close()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("stream still open after hub close")
	}
	assert.Contains(t, rec.Body.String(), "event: connected")
}

func TestRouter_StreamEndsWhenClientLeaves(t *testing.T) {
	s := newTestServer(t)
	token := s.streamToken(t, s.login(t, "employee@bistro.com", "employee123"))

	ctx, cancel := context.WithCancel(context.Background())
	_, done := s.openStream(t, ctx, token)
	require.Eventually(t, func() bool { return s.hub.SubscriberCount("2") == 1 }, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("stream still open after client left")
	}
	assert.Equal(t, 0, s.hub.SubscriberCount("2"))
}
