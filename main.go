package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/onurcolak/broadcast-hub/environments"
	"github.com/onurcolak/broadcast-hub/handlers"
	"github.com/onurcolak/broadcast-hub/internal/middlewares"
	"github.com/onurcolak/broadcast-hub/internal/randomizer"
	"github.com/onurcolak/broadcast-hub/internal/repository"
	"github.com/onurcolak/broadcast-hub/internal/scheduler"
	"github.com/onurcolak/broadcast-hub/internal/service"
	"github.com/onurcolak/broadcast-hub/pkg/database"
	"github.com/onurcolak/broadcast-hub/pkg/gateway"
	"github.com/onurcolak/broadcast-hub/pkg/logger"
	"github.com/onurcolak/broadcast-hub/pkg/redis"
	"github.com/onurcolak/broadcast-hub/pkg/validator"
	"github.com/onurcolak/broadcast-hub/pkg/webhook"
	"github.com/onurcolak/broadcast-hub/routes"

	_ "github.com/onurcolak/broadcast-hub/docs" // swagger docs
)

// @title Broadcast Hub API
// @version 1.0
// @description Schedules WhatsApp broadcast sequences through the WhaCenter gateway and reports their progress
// @termsOfService http://swagger.io/terms/

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /

// @schemes http https
func main() {
	// Load config
	cfg := environments.Load()

	logger.Init(cfg.Log)
	defer func() { _ = logger.Sync() }()

	logger.Infof("Starting Broadcast Hub...")

	if cfg.Auth.BroadcastAPIKey == "" {
		logger.Warnf("BROADCAST_API_KEY is not set, broadcast endpoints are open")
	}

	// Init DB
	db, err := database.NewMySQLDB(cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.RunMigrations(db); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}

	planner := scheduler.NewPlanner(cfg.Timezone, randomizer.SharedRand{})

	// Seed data
	if os.Getenv("SEED_DATA") == "true" {
		result, err := database.SeedTestData(db, database.NextMorning(time.Now(), planner.StorageLocation()))
		if err != nil {
			logger.Warnf("Failed to seed test data: %v", err)
		} else if result != nil {
			logger.Infof("Seeded demo sequence %s", result.SequenceID)
		}
	}

	// Init redis
	redisClient, err := redis.NewRedisClient(cfg.Redis)
	if err != nil {
		logger.Warnf("Redis not available, last run reports disabled: %v", err)
		redisClient = nil
	}

	gatewayClient := gateway.NewClient(cfg.Gateway)
	logger.Infof("Gateway configured: %s", gatewayClient.BaseURL())

	alertClient := webhook.NewWebhookClient(cfg.Alert)

	// Initialize repository
	broadcastRepo := repository.NewBroadcastRepository(db)

	// Initialize services
	broadcastService := service.NewBroadcastService(
		broadcastRepo,
		gatewayClient,
		randomizer.New(randomizer.SharedRand{}),
		planner,
		cfg.Broadcast,
	)
	summaryService := service.NewSummaryService(broadcastRepo, cfg.Broadcast)

	if redisClient != nil {
		broadcastService.WithReportCache(redisClient)
		summaryService.WithReportCache(redisClient)
	}
	if alertClient.Enabled() {
		broadcastService.WithAlerts(alertClient)
	}

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(broadcastRepo)
	if redisClient != nil {
		healthHandler.WithCache(redisClient)
	}
	broadcastHandler := handlers.NewBroadcastHandler(broadcastService, summaryService)

	e := echo.New()
	e.HideBanner = true
	e.Validator = validator.New()

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.RequestID())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{
			echo.HeaderOrigin,
			echo.HeaderContentType,
			echo.HeaderAccept,
			echo.HeaderAuthorization,
			middlewares.APIKeyHeader,
		},
	}))

	// Setup routes
	routes.RegisterRoutes(e, healthHandler, broadcastHandler, cfg)

	// Start server in goroutine
	go func() {
		addr := ":" + cfg.Server.Port
		logger.Infof("Server starting on http://localhost%s", addr)
		logger.Infof("Swagger docs available at http://localhost%s/swagger/index.html", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Infof("Shutting down gracefully...")

	// Lock runs in flight finish within this window or are cut off
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	logger.Infof("Shutting down HTTP server...")
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	} else {
		logger.Infof("HTTP server stopped successfully")
	}

	// Close database connection
	logger.Infof("Closing database connection...")
	if err := db.Close(); err != nil {
		logger.Errorf("Error closing database: %v", err)
	}

	// Close Redis connection
	if redisClient != nil {
		logger.Infof("Closing Redis connection...")
		if err := redisClient.Close(); err != nil {
			logger.Errorf("Error closing Redis: %v", err)
		}
	}

	logger.Infof("Graceful shutdown completed")
}
