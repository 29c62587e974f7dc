package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/shoplite/ecommerce-backend/internal/config"
	"github.com/shoplite/ecommerce-backend/internal/handler"
	"github.com/shoplite/ecommerce-backend/internal/repository"
	"github.com/shoplite/ecommerce-backend/internal/service"
	"github.com/shoplite/ecommerce-backend/internal/validator"
)

func main() {
	// Load configuration first
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Initialize zerolog based on configuration
	initLogger(cfg)

	// Single in-memory store, constructed once and injected everywhere
	store := repository.NewStore()

	// Initialize Fiber with production-ready configuration
	app := fiber.New(fiber.Config{
		AppName:      "E-Commerce Backend",
		ReadTimeout:  30 * time.Second,  // Max time to read request
		WriteTimeout: 30 * time.Second,  // Max time to write response
		IdleTimeout:  120 * time.Second, // Max time for keep-alive connections
		BodyLimit:    1 * 1024 * 1024,   // 1MB body limit
	})

	// Middleware
	app.Use(recover.New())
	app.Use(requestid.New()) // Adds X-Request-ID header to all requests
	app.Use(logger.New())

	// Initialize validator
	validate := validator.New()

	// Initialize components (layered architecture)
	cartRepo := repository.NewCartRepository(store)
	orderRepo := repository.NewOrderRepository(store)
	couponRepo := repository.NewCouponRepository(store)

	cartService := service.NewCartService(store, cartRepo)
	couponService := service.NewCouponService(couponRepo, orderRepo,
		cfg.Coupon.Cadence, cfg.Coupon.CodeLength, cfg.Coupon.DefaultDiscount)
	checkoutService := service.NewCheckoutService(store, cartService, couponService, orderRepo)
	analyticsService := service.NewAnalyticsService(orderRepo, couponService)

	cartHandler := handler.NewCartHandler(cartService, validate)
	checkoutHandler := handler.NewCheckoutHandler(checkoutService, validate)
	adminHandler := handler.NewAdminHandler(couponService, analyticsService, validate)

	// Health handler
	healthHandler := handler.NewHealthHandler()
	app.Get("/health", healthHandler.Check)

	// Cart routes
	app.Post("/cart/:user_id/items", cartHandler.AddItem)
	app.Get("/cart/:user_id", cartHandler.GetCart)
	app.Delete("/cart/:user_id", cartHandler.ClearCart)

	// Checkout routes
	app.Post("/checkout", checkoutHandler.Checkout)
	app.Get("/checkout/:order_id", checkoutHandler.GetOrder)

	// Admin routes
	app.Post("/admin/coupons/generate", adminHandler.GenerateCoupon)
	app.Get("/admin/analytics", adminHandler.Analytics)
	app.Get("/admin/coupons", adminHandler.ListCoupons)

	// Start server with graceful shutdown
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("starting server")
		if err := app.Listen(":" + cfg.Server.Port); err != nil {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("received shutdown signal")
	log.Info().Int("timeout_seconds", cfg.Server.ShutdownTimeout).Msg("shutting down server...")

	// Create shutdown context with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer shutdownCancel()

	// Shutdown server (waits for in-flight requests)
	log.Info().Msg("waiting for in-flight requests to complete...")
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}

	// The store is in-memory; nothing survives the process.
	log.Info().Msg("server stopped")
}

// initLogger configures zerolog based on the application configuration.
func initLogger(cfg *config.Config) {
	// Set log level
	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Log.Pretty {
		// Human-readable output for development
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).
			With().Timestamp().Logger()
	} else {
		// JSON output for production
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	}
}
