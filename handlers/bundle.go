// File: inkbook/handlers/bundle.go
package handlers

import (
	providerRepoPkg "inkbook/database/repository/provider"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all your endpoint handlers into one struct.
type HandlerBundle struct {
	ProviderRepo providerRepoPkg.ProviderRepository

	// Public provider endpoints
	RegisterProviderHandler    gin.HandlerFunc
	GetProviderByHandleHandler gin.HandlerFunc
	ListSlotsHandler           gin.HandlerFunc

	// Public booking endpoints
	CreateBookingHandler       gin.HandlerFunc
	GetBookingHandler          gin.HandlerFunc
	CreateDepositIntentHandler gin.HandlerFunc
	ConfirmPaymentHandler      gin.HandlerFunc

	// Dashboard endpoints
	ListBookingsHandler        gin.HandlerFunc
	UpdateBookingStatusHandler gin.HandlerFunc
	RefundDepositHandler       gin.HandlerFunc
	MonthlyStatsHandler        gin.HandlerFunc
	UpdateAvailabilityHandler  gin.HandlerFunc
	UpdatePolicyHandler        gin.HandlerFunc
}
