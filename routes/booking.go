package routes

import (
	"inkbook/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes registers all endpoints for the booking flow.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	booking := r.Group("/api/bookings")
	{
		booking.POST("", hb.CreateBookingHandler)                          // Reserve a slot
		booking.GET("/:id", hb.GetBookingHandler)                          // Booking status page
		booking.POST("/:id/deposit-intent", hb.CreateDepositIntentHandler) // Stripe deposit intent
	}

	payments := r.Group("/api/payments")
	{
		payments.POST("/confirm", hb.ConfirmPaymentHandler) // Payment callback
	}
}
