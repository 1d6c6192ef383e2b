package routes

import (
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/onurcolak/broadcast-hub/environments"
	"github.com/onurcolak/broadcast-hub/handlers"
	"github.com/onurcolak/broadcast-hub/internal/middlewares"
)

// RegisterRoutes registers all API routes with middleware
func RegisterRoutes(
	e *echo.Echo,
	healthHandler *handlers.HealthHandler,
	broadcastHandler *handlers.BroadcastHandler,
	cfg *environments.Config,
) {
	e.GET("/health", healthHandler.Health)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Broadcast routes, guarded only when BROADCAST_API_KEY is set
	broadcast := e.Group("/api/broadcast", middlewares.APIKeyAuth(cfg.Auth.BroadcastAPIKey))

	broadcast.POST("/lock", broadcastHandler.LockBroadcast)
	broadcast.GET("/summary", broadcastHandler.GetSummary)
}
