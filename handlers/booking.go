package handlers

import (
	"net/http"

	"inkbook/services/booking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the public booking flow.
type BookingHandler struct {
	Service booking.BookingService
	Logger  *zap.Logger
}

func NewBookingHandler(svc booking.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Service: svc, Logger: logger}
}

// CreateBooking handles POST /api/bookings. Clients may send an
// Idempotency-Key header so that a retried submission replays the original
// booking instead of reserving a second slot.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var input booking.CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	input.IdempotencyKey = c.GetHeader("Idempotency-Key")

	b, err := h.Service.CreateBooking(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// GetBooking handles GET /api/bookings/:id.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	b, err := h.Service.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// ConfirmPayment handles POST /api/payments/confirm, the payment
// collaborator's callback after a deposit charge succeeds.
func (h *BookingHandler) ConfirmPayment(c *gin.Context) {
	var input struct {
		BookingID        string `json:"bookingId"`
		PaymentReference string `json:"paymentReference"`
		// Older callers send the short form.
		PaymentRef string `json:"paymentRef"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if input.BookingID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bookingId is required"})
		return
	}
	ref := input.PaymentReference
	if ref == "" {
		ref = input.PaymentRef
	}

	b, err := h.Service.ConfirmDeposit(c.Request.Context(), input.BookingID, ref)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}
