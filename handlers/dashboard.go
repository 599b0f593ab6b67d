package handlers

import (
	"net/http"

	providerRepo "inkbook/database/repository/provider"
	"inkbook/models"
	"inkbook/services/booking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DashboardHandler serves the authenticated provider dashboard.
type DashboardHandler struct {
	Repo    providerRepo.ProviderRepository
	Service booking.BookingService
}

func NewDashboardHandler(repo providerRepo.ProviderRepository, svc booking.BookingService) *DashboardHandler {
	return &DashboardHandler{Repo: repo, Service: svc}
}

// authedProviderID returns the provider ID set by the auth middleware.
func authedProviderID(c *gin.Context) (string, bool) {
	id := c.GetString("providerID")
	if id == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing provider identity"})
		return "", false
	}
	return id, true
}

// ListBookings handles GET /api/dashboard/bookings?status=&today=.
func (h *DashboardHandler) ListBookings(c *gin.Context) {
	providerID, ok := authedProviderID(c)
	if !ok {
		return
	}

	var (
		bookings []models.Booking
		err      error
	)
	if c.Query("today") == "true" {
		bookings, err = h.Service.TodayBookings(c.Request.Context(), providerID)
	} else {
		bookings, err = h.Service.ListBookings(c.Request.Context(), providerID, c.Query("status"))
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings, "count": len(bookings)})
}

// UpdateBookingStatus handles PATCH /api/dashboard/bookings/:id/status.
func (h *DashboardHandler) UpdateBookingStatus(c *gin.Context) {
	providerID, ok := authedProviderID(c)
	if !ok {
		return
	}

	var input struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if !h.ownsBooking(c, providerID, c.Param("id")) {
		return
	}
	b, err := h.Service.UpdateStatus(c.Request.Context(), c.Param("id"), input.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// RefundDeposit handles POST /api/dashboard/bookings/:id/refund.
func (h *DashboardHandler) RefundDeposit(c *gin.Context) {
	providerID, ok := authedProviderID(c)
	if !ok {
		return
	}

	var input struct {
		Amount float64 `json:"amount"` // 0 refunds the full deposit
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if !h.ownsBooking(c, providerID, c.Param("id")) {
		return
	}
	b, err := h.Service.RefundDeposit(c.Request.Context(), c.Param("id"), input.Amount)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// MonthlyStats handles GET /api/dashboard/stats?month=YYYY-MM.
func (h *DashboardHandler) MonthlyStats(c *gin.Context) {
	providerID, ok := authedProviderID(c)
	if !ok {
		return
	}
	month := c.Query("month")
	if month == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month query parameter is required"})
		return
	}

	stats, err := h.Service.MonthlyStats(c.Request.Context(), providerID, month)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// UpdateAvailability handles PUT /api/dashboard/availability. Changing hours
// never touches existing bookings; it only affects slots offered from now on.
func (h *DashboardHandler) UpdateAvailability(c *gin.Context) {
	providerID, ok := authedProviderID(c)
	if !ok {
		return
	}

	var availability models.Availability
	if err := c.ShouldBindJSON(&availability); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	for _, d := range availability.Days {
		if !validWeekday(d) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown weekday " + d})
			return
		}
	}
	if _, err := booking.GenerateSlots(availability); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid availability: " + err.Error()})
		return
	}

	if err := h.Repo.UpdateAvailability(c.Request.Context(), providerID, availability); err != nil {
		getLogger(c).Error("Failed to update availability", zap.String("providerID", providerID), zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to update availability"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"availability": availability})
}

// UpdatePolicy handles PUT /api/dashboard/policy. Overrides apply to new
// bookings only; deposits already quoted keep their original amounts.
func (h *DashboardHandler) UpdatePolicy(c *gin.Context) {
	providerID, ok := authedProviderID(c)
	if !ok {
		return
	}

	var policy models.BookingPolicy
	if err := c.ShouldBindJSON(&policy); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if policy.DepositPercent < 0 || policy.DepositPercent > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "depositPercent must be between 0 and 100"})
		return
	}
	if policy.CustomMinDeposit < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "customMinDeposit cannot be negative"})
		return
	}
	if policy.PlatformFeePercent < 0 || policy.PlatformFeePercent > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "platformFeePercent must be between 0 and 100"})
		return
	}

	if err := h.Repo.UpdatePolicy(c.Request.Context(), providerID, policy); err != nil {
		getLogger(c).Error("Failed to update policy", zap.String("providerID", providerID), zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to update policy"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"policy": policy})
}

// ownsBooking rejects dashboard operations against another provider's booking.
func (h *DashboardHandler) ownsBooking(c *gin.Context, providerID, bookingID string) bool {
	b, err := h.Service.GetBooking(c.Request.Context(), bookingID)
	if err != nil {
		respondServiceError(c, err)
		return false
	}
	if b.ProviderID != providerID {
		c.JSON(http.StatusNotFound, gin.H{"error": "booking " + bookingID + " not found"})
		return false
	}
	return true
}

func validWeekday(label string) bool {
	for _, w := range models.WeekdayLabels {
		if w == label {
			return true
		}
	}
	return false
}
