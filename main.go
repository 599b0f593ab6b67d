// File: inkbook/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"inkbook/config"
	"inkbook/database"
	bookingRepoPkg "inkbook/database/repository/booking"
	providerRepoPkg "inkbook/database/repository/provider"
	"inkbook/handlers"
	"inkbook/middleware"
	"inkbook/routes"
	"inkbook/services/booking"
	"inkbook/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitIdempotencyCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	provRepo := providerRepoPkg.NewMongoProviderRepo()
	bookRepo := bookingRepoPkg.NewMongoBookingRepo()

	// services.
	bookingService := &booking.DefaultBookingService{
		Repo:         bookRepo,
		ProviderRepo: provRepo,
		Cache:        utils.GetCacheClient(),
		Idempotency:  booking.NewIdempotencyStore(utils.GetIdempotencyClient()),
		CacheTTL:     time.Duration(config.AppConfig.SlotCacheTTLSeconds) * time.Second,
	}

	providerHandler := handlers.NewProviderHandler(provRepo, bookingService)
	bookingHandler := handlers.NewBookingHandler(bookingService, logger)
	paymentHandler := handlers.NewPaymentHandler(bookingService, logger)
	dashboardHandler := handlers.NewDashboardHandler(provRepo, bookingService)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		ProviderRepo: provRepo,

		// Public provider endpoints.
		RegisterProviderHandler:    providerHandler.RegisterProvider,
		GetProviderByHandleHandler: providerHandler.GetProviderByHandle,
		ListSlotsHandler:           providerHandler.ListSlots,

		// Public booking endpoints.
		CreateBookingHandler:       bookingHandler.CreateBooking,
		GetBookingHandler:          bookingHandler.GetBooking,
		CreateDepositIntentHandler: paymentHandler.CreateDepositIntent,
		ConfirmPaymentHandler:      bookingHandler.ConfirmPayment,

		// Dashboard endpoints.
		ListBookingsHandler:        dashboardHandler.ListBookings,
		UpdateBookingStatusHandler: dashboardHandler.UpdateBookingStatus,
		RefundDepositHandler:       dashboardHandler.RefundDeposit,
		MonthlyStatsHandler:        dashboardHandler.MonthlyStats,
		UpdateAvailabilityHandler:  dashboardHandler.UpdateAvailability,
		UpdatePolicyHandler:        dashboardHandler.UpdatePolicy,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
