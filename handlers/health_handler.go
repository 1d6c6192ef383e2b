package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const serviceName = "broadcast-hub"

type pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles health checks.
type HealthHandler struct {
	db           pinger
	cache        pinger
	checkTimeout time.Duration
}

func NewHealthHandler(db pinger) *HealthHandler {
	return &HealthHandler{
		db:           db,
		checkTimeout: 2 * time.Second,
	}
}

// WithCache adds the report cache to the checked components.
func (h *HealthHandler) WithCache(cache pinger) *HealthHandler {
	h.cache = cache
	return h
}

// Health returns overall status and basic component statuses (DB and Redis).
// @Summary Health check
// @Description Returns overall status with DB and Redis connectivity results
// @Tags health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]any
// @Router /health [get]
func (h *HealthHandler) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.checkTimeout)
	defer cancel()

	overallStatus := "ok"

	dbStatus := "up"
	if h.db == nil {
		dbStatus = "down"
		overallStatus = "down"
	} else if err := h.db.Ping(ctx); err != nil {
		dbStatus = "down"
		overallStatus = "down"
	}

	redisStatus := "disabled"
	if h.cache != nil {
		if err := h.cache.Ping(ctx); err != nil {
			redisStatus = "down"
			if overallStatus == "ok" {
				overallStatus = "degraded"
			}
		} else {
			redisStatus = "up"
		}
	}

	return c.JSON(http.StatusOK, map[string]any{
		"status":    overallStatus,
		"service":   serviceName,
		"timestamp": time.Now().Format(time.RFC3339),
		"components": map[string]any{
			"database": map[string]any{
				"status": dbStatus,
			},
			"redis": map[string]any{
				"status": redisStatus,
			},
		},
	})
}
