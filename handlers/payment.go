package handlers

import (
	"math"
	"net/http"

	"inkbook/models"
	"inkbook/services/booking"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"
)

// PaymentHandler creates Stripe payment intents for booking deposits.
type PaymentHandler struct {
	Service booking.BookingService
	Logger  *zap.Logger
}

func NewPaymentHandler(svc booking.BookingService, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{Service: svc, Logger: logger}
}

// CreateDepositIntent handles POST /api/bookings/:id/deposit-intent. The
// intent amount always comes from the stored booking, never from the client.
func (h *PaymentHandler) CreateDepositIntent(c *gin.Context) {
	bookingID := c.Param("id")

	b, err := h.Service.GetBooking(c.Request.Context(), bookingID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if b.DepositPaid {
		c.JSON(http.StatusConflict, gin.H{"error": "deposit has already been paid"})
		return
	}
	if b.Status != models.StatusPending {
		c.JSON(http.StatusConflict, gin.H{"error": "booking is not awaiting a deposit"})
		return
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(math.Round(b.DepositAmount * 100))),
		Currency: stripe.String(string(stripe.CurrencyUSD)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.AddMetadata("bookingId", b.ID)
	params.AddMetadata("providerId", b.ProviderID)

	intent, err := paymentintent.New(params)
	if err != nil {
		h.Logger.Error("Failed to create payment intent", zap.String("bookingID", b.ID), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to create payment intent"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"bookingId":     b.ID,
		"clientSecret":  intent.ClientSecret,
		"depositAmount": b.DepositAmount,
	})
}
