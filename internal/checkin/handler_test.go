package checkin_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gympass/internal/api"
	"gympass/internal/auth"
	"gympass/internal/checkin"
	"gympass/internal/entitlement"
)

type MockService struct{ mock.Mock }

func (m *MockService) RequestCheckIn(ctx context.Context, userID, gymID int) (*checkin.CheckIn, error) {
	args := m.Called(ctx, userID, gymID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*checkin.CheckIn), args.Error(1)
}

func (m *MockService) CheckOut(ctx context.Context, userID, checkInID int) (*checkin.CheckIn, error) {
	args := m.Called(ctx, userID, checkInID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*checkin.CheckIn), args.Error(1)
}

func (m *MockService) Verify(ctx context.Context, checkInID, staffID int) (*checkin.CheckIn, error) {
	args := m.Called(ctx, checkInID, staffID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*checkin.CheckIn), args.Error(1)
}

func (m *MockService) Reject(ctx context.Context, checkInID, staffID int) (*checkin.CheckIn, error) {
	args := m.Called(ctx, checkInID, staffID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*checkin.CheckIn), args.Error(1)
}

func (m *MockService) ListPending(ctx context.Context, gymID, staffID int) ([]checkin.CheckInWithDetails, error) {
	args := m.Called(ctx, gymID, staffID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]checkin.CheckInWithDetails), args.Error(1)
}

func (m *MockService) ListForUser(ctx context.Context, userID int) ([]checkin.CheckIn, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]checkin.CheckIn), args.Error(1)
}

func setIdentity(userID int, role auth.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("identity", &auth.Identity{UserID: userID, Email: "test@example.com", Role: role})
		c.Next()
	}
}

func setupRouter(svc checkin.Service, userID int, role auth.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := checkin.NewHandler(svc)

	router := gin.New()
	router.Use(setIdentity(userID, role))
	router.POST("/gyms/:gymID/checkin", h.RequestCheckIn)
	router.POST("/checkins/:checkInID/checkout", h.CheckOut)
	router.GET("/checkins", h.ListMyCheckIns)
	router.GET("/staff/gyms/:gymID/checkins/pending", h.ListPending)
	router.POST("/staff/checkins/:checkInID/verify", h.Verify)
	router.POST("/staff/checkins/:checkInID/reject", h.Reject)
	return router
}

func TestRequestCheckInHandler(t *testing.T) {
	svc := new(MockService)
	router := setupRouter(svc, 7, auth.RoleMember)

	svc.On("RequestCheckIn", mock.Anything, 7, 1).
		Return(&checkin.CheckIn{ID: 10, UserID: 7, GymID: 1, Status: checkin.StatusPending, CheckInTime: time.Now()}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/gyms/1/checkin", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var body checkin.CheckIn
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 10, body.ID)
	assert.Equal(t, checkin.StatusPending, body.Status)
}

func TestRequestCheckInHandler_NoEntitlement(t *testing.T) {
	svc := new(MockService)
	router := setupRouter(svc, 7, auth.RoleMember)

	svc.On("RequestCheckIn", mock.Anything, 7, 2).
		Return(nil, &checkin.NoEntitlementError{Reason: entitlement.ReasonGymNotMultiEnabled})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/gyms/2/checkin", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusForbidden, w.Code)

	var body api.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "gym_not_multi_gym_enabled", body.Reason)
}

func TestRequestCheckInHandler_Conflict(t *testing.T) {
	svc := new(MockService)
	router := setupRouter(svc, 7, auth.RoleMember)

	svc.On("RequestCheckIn", mock.Anything, 7, 1).Return(nil, checkin.ErrAlreadyCheckedIn)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/gyms/1/checkin", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRequestCheckInHandler_GymNotFound(t *testing.T) {
	svc := new(MockService)
	router := setupRouter(svc, 7, auth.RoleMember)

	svc.On("RequestCheckIn", mock.Anything, 7, 404).Return(nil, checkin.ErrGymNotFound)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/gyms/404/checkin", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRequestCheckInHandler_BadGymID(t *testing.T) {
	svc := new(MockService)
	router := setupRouter(svc, 7, auth.RoleMember)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/gyms/abc/checkin", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "RequestCheckIn", mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckOutHandler(t *testing.T) {
	svc := new(MockService)
	router := setupRouter(svc, 7, auth.RoleMember)

	now := time.Now()
	svc.On("CheckOut", mock.Anything, 7, 10).
		Return(&checkin.CheckIn{ID: 10, UserID: 7, GymID: 1, Status: checkin.StatusVerified, CheckOutTime: &now}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/checkins/10/checkout", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
}

func TestCheckOutHandler_NoActive(t *testing.T) {
	svc := new(MockService)
	router := setupRouter(svc, 7, auth.RoleMember)

	svc.On("CheckOut", mock.Anything, 7, 10).Return(nil, checkin.ErrNoActiveCheckIn)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/checkins/10/checkout", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestVerifyHandler(t *testing.T) {
	svc := new(MockService)
	router := setupRouter(svc, 99, auth.RoleGymOwner)

	staffID := 99
	svc.On("Verify", mock.Anything, 10, 99).
		Return(&checkin.CheckIn{ID: 10, UserID: 7, GymID: 1, Status: checkin.StatusVerified, VerifiedBy: &staffID}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/staff/checkins/10/verify", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body checkin.CheckIn
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, checkin.StatusVerified, body.Status)
}

func TestVerifyHandler_Forbidden(t *testing.T) {
	svc := new(MockService)
	router := setupRouter(svc, 55, auth.RoleGymOwner)

	svc.On("Verify", mock.Anything, 10, 55).Return(nil, checkin.ErrForbidden)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/staff/checkins/10/verify", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRejectHandler_AlreadyDecided(t *testing.T) {
	svc := new(MockService)
	router := setupRouter(svc, 99, auth.RoleGymOwner)

	svc.On("Reject", mock.Anything, 10, 99).Return(nil, checkin.ErrAlreadyDecided)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/staff/checkins/10/reject", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestListPendingHandler(t *testing.T) {
	svc := new(MockService)
	router := setupRouter(svc, 99, auth.RoleGymOwner)

	svc.On("ListPending", mock.Anything, 1, 99).
		Return([]checkin.CheckInWithDetails{
			{CheckIn: checkin.CheckIn{ID: 10, UserID: 7, GymID: 1, Status: checkin.StatusPending}, GymName: "Iron Temple", UserName: "Alex", UserEmail: "alex@example.com"},
		}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/staff/gyms/1/checkins/pending", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body []checkin.CheckInWithDetails
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, "Alex", body[0].UserName)
}

func TestListMyCheckInsHandler(t *testing.T) {
	svc := new(MockService)
	router := setupRouter(svc, 7, auth.RoleMember)

	svc.On("ListForUser", mock.Anything, 7).
		Return([]checkin.CheckIn{{ID: 10, UserID: 7, GymID: 1, Status: checkin.StatusRejected}}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/checkins", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
}
