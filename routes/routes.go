package routes

import (
	"net/http"
	"time"

	"inkbook/handlers"
	"inkbook/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterProviderRoutes registers the public provider profile endpoints.
func RegisterProviderRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/providers")
	{
		api.POST("/register", hb.RegisterProviderHandler)
		api.GET("/:handle", hb.GetProviderByHandleHandler)
		api.GET("/:handle/slots", hb.ListSlotsHandler)
	}
}

// RegisterDashboardRoutes registers the authenticated provider dashboard.
func RegisterDashboardRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/dashboard")
	{
		api.Use(middleware.JWTAuthProviderMiddleware(hb.ProviderRepo))
		api.GET("/bookings", hb.ListBookingsHandler)
		api.PATCH("/bookings/:id/status", hb.UpdateBookingStatusHandler)
		api.POST("/bookings/:id/refund", hb.RefundDepositHandler)
		api.GET("/stats", hb.MonthlyStatsHandler)
		api.PUT("/availability", hb.UpdateAvailabilityHandler)
		api.PUT("/policy", hb.UpdatePolicyHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm InkBook"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "Idempotency-Key"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterProviderRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterDashboardRoutes(r, hb)
	RegisterHealthRoute(r)
}
