package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	providerRepo "inkbook/database/repository/provider"
	"inkbook/models"
	"inkbook/services/booking"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubDashboardService serves dashboard handler tests.
type stubDashboardService struct {
	booking.BookingService

	bookings     []models.Booking
	booking      *models.Booking
	updateStatus string
	stats        *models.MonthlyStats
}

func (s *stubDashboardService) ListBookings(ctx context.Context, providerID, statusFilter string) ([]models.Booking, error) {
	if statusFilter != "" {
		var out []models.Booking
		for _, b := range s.bookings {
			if b.Status == statusFilter {
				out = append(out, b)
			}
		}
		return out, nil
	}
	return s.bookings, nil
}

func (s *stubDashboardService) TodayBookings(ctx context.Context, providerID string) ([]models.Booking, error) {
	return s.bookings[:1], nil
}

func (s *stubDashboardService) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	if s.booking != nil && s.booking.ID == id {
		return s.booking, nil
	}
	return nil, booking.NewNotFoundError("booking " + id + " not found")
}

func (s *stubDashboardService) UpdateStatus(ctx context.Context, bookingID, status string) (*models.Booking, error) {
	if !booking.CanTransition(s.booking.Status, status) {
		return nil, booking.NewInvalidTransitionError("illegal move")
	}
	s.updateStatus = status
	b := *s.booking
	b.Status = status
	return &b, nil
}

func (s *stubDashboardService) RefundDeposit(ctx context.Context, bookingID string, amount float64) (*models.Booking, error) {
	b := *s.booking
	b.Refunded = true
	b.RefundAmount = amount
	return &b, nil
}

func (s *stubDashboardService) MonthlyStats(ctx context.Context, providerID, month string) (*models.MonthlyStats, error) {
	return s.stats, nil
}

// stubProviderStore satisfies the pieces of ProviderRepository the dashboard uses.
type stubProviderStore struct {
	providerRepo.ProviderRepository
	availability *models.Availability
	policy       *models.BookingPolicy
}

func (s *stubProviderStore) UpdateAvailability(ctx context.Context, id string, availability models.Availability) error {
	s.availability = &availability
	return nil
}

func (s *stubProviderStore) UpdatePolicy(ctx context.Context, id string, policy models.BookingPolicy) error {
	s.policy = &policy
	return nil
}

func newDashboardRouter(svc booking.BookingService, store providerRepo.ProviderRepository, providerID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	// Stand-in for the JWT middleware.
	r.Use(func(c *gin.Context) {
		if providerID != "" {
			c.Set("providerID", providerID)
		}
	})
	h := NewDashboardHandler(store, svc)
	r.GET("/api/dashboard/bookings", h.ListBookings)
	r.PATCH("/api/dashboard/bookings/:id/status", h.UpdateBookingStatus)
	r.POST("/api/dashboard/bookings/:id/refund", h.RefundDeposit)
	r.GET("/api/dashboard/stats", h.MonthlyStats)
	r.PUT("/api/dashboard/availability", h.UpdateAvailability)
	r.PUT("/api/dashboard/policy", h.UpdatePolicy)
	return r
}

func TestDashboardListBookings(t *testing.T) {
	svc := &stubDashboardService{
		bookings: []models.Booking{
			{ID: "b-1", ProviderID: "prov-1", Status: models.StatusConfirmed},
			{ID: "b-2", ProviderID: "prov-1", Status: models.StatusPending},
		},
	}
	r := newDashboardRouter(svc, &stubProviderStore{}, "prov-1")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/dashboard/bookings", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Bookings []models.Booking `json:"bookings"`
		Count    int              `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Count)

	// Status filter.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/dashboard/bookings?status=pending", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Count)

	// Today view.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/dashboard/bookings?today=true", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Count)
}

func TestDashboardRequiresIdentity(t *testing.T) {
	r := newDashboardRouter(&stubDashboardService{}, &stubProviderStore{}, "")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/dashboard/bookings", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDashboardUpdateStatus(t *testing.T) {
	svc := &stubDashboardService{
		booking: &models.Booking{ID: "b-1", ProviderID: "prov-1", Status: models.StatusConfirmed},
	}
	r := newDashboardRouter(svc, &stubProviderStore{}, "prov-1")

	req := httptest.NewRequest(http.MethodPatch, "/api/dashboard/bookings/b-1/status",
		strings.NewReader(`{"status":"in_progress"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.StatusInProgress, svc.updateStatus)
}

func TestDashboardUpdateStatusConflict(t *testing.T) {
	svc := &stubDashboardService{
		booking: &models.Booking{ID: "b-1", ProviderID: "prov-1", Status: models.StatusCompleted},
	}
	r := newDashboardRouter(svc, &stubProviderStore{}, "prov-1")

	req := httptest.NewRequest(http.MethodPatch, "/api/dashboard/bookings/b-1/status",
		strings.NewReader(`{"status":"pending"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

// Another provider's booking must look like it doesn't exist.
func TestDashboardHidesForeignBookings(t *testing.T) {
	svc := &stubDashboardService{
		booking: &models.Booking{ID: "b-1", ProviderID: "prov-2", Status: models.StatusConfirmed},
	}
	r := newDashboardRouter(svc, &stubProviderStore{}, "prov-1")

	req := httptest.NewRequest(http.MethodPatch, "/api/dashboard/bookings/b-1/status",
		strings.NewReader(`{"status":"in_progress"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, svc.updateStatus)
}

func TestDashboardRefund(t *testing.T) {
	svc := &stubDashboardService{
		booking: &models.Booking{ID: "b-1", ProviderID: "prov-1", Status: models.StatusCancelled, DepositPaid: true, DepositAmount: 100},
	}
	r := newDashboardRouter(svc, &stubProviderStore{}, "prov-1")

	req := httptest.NewRequest(http.MethodPost, "/api/dashboard/bookings/b-1/refund",
		strings.NewReader(`{"amount":100}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var got models.Booking
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.True(t, got.Refunded)
	assert.Equal(t, 100.0, got.RefundAmount)
}

func TestDashboardStats(t *testing.T) {
	svc := &stubDashboardService{
		stats: &models.MonthlyStats{Month: "2026-03", TotalBookings: 7, TotalRevenue: 1400},
	}
	r := newDashboardRouter(svc, &stubProviderStore{}, "prov-1")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/dashboard/stats?month=2026-03", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var got models.MonthlyStats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, 7, got.TotalBookings)

	// Missing month parameter.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/dashboard/stats", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDashboardUpdateAvailability(t *testing.T) {
	store := &stubProviderStore{}
	r := newDashboardRouter(&stubDashboardService{}, store, "prov-1")

	body := `{"days":["TUE","WED","FRI"],"startTime":"11:00","endTime":"19:00","slotDuration":90}`
	req := httptest.NewRequest(http.MethodPut, "/api/dashboard/availability", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, store.availability)
	assert.Equal(t, 90, store.availability.SlotDuration)
}

func TestDashboardUpdatePolicy(t *testing.T) {
	store := &stubProviderStore{}
	r := newDashboardRouter(&stubDashboardService{}, store, "prov-1")

	body := `{"depositPercent":30,"customMinDeposit":75,"platformFeePercent":8}`
	req := httptest.NewRequest(http.MethodPut, "/api/dashboard/policy", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, store.policy)
	assert.Equal(t, 30, store.policy.DepositPercent)
	assert.Equal(t, 75.0, store.policy.CustomMinDeposit)
	assert.Equal(t, 8.0, store.policy.PlatformFeePercent)
}

func TestDashboardUpdatePolicyRejectsBadValues(t *testing.T) {
	store := &stubProviderStore{}
	r := newDashboardRouter(&stubDashboardService{}, store, "prov-1")

	cases := []string{
		`{"depositPercent":140,"customMinDeposit":50,"platformFeePercent":5}`,
		`{"depositPercent":-1,"customMinDeposit":50,"platformFeePercent":5}`,
		`{"depositPercent":50,"customMinDeposit":-10,"platformFeePercent":5}`,
		`{"depositPercent":50,"customMinDeposit":50,"platformFeePercent":101}`,
	}
	for _, body := range cases {
		req := httptest.NewRequest(http.MethodPut, "/api/dashboard/policy", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.Nil(t, store.policy)
	}
}

func TestDashboardUpdateAvailabilityRejectsBadConfig(t *testing.T) {
	store := &stubProviderStore{}
	r := newDashboardRouter(&stubDashboardService{}, store, "prov-1")

	cases := []string{
		`{"days":["FUNDAY"],"startTime":"10:00","endTime":"18:00","slotDuration":60}`,
		`{"days":["MON"],"startTime":"18:00","endTime":"10:00","slotDuration":60}`,
		`{"days":["MON"],"startTime":"10:00","endTime":"18:00","slotDuration":0}`,
	}
	for _, body := range cases {
		req := httptest.NewRequest(http.MethodPut, "/api/dashboard/availability", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.Nil(t, store.availability)
	}
}
