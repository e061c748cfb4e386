package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"hireboard-api/internal/logging"
	"hireboard-api/internal/store"
	"hireboard-api/pkg/models"
	"hireboard-api/pkg/utils"
)

var startTime = time.Now()

const version = "1.0.0"

// HealthHandler handles health check requests
func HealthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, models.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   version,
		Uptime:    utils.FormatDuration(time.Since(startTime)),
		Checks: map[string]string{
			"api": "ok",
		},
	})
}

// ReadinessCheck reports whether an optional dependency is reachable.
type ReadinessCheck func(ctx context.Context) error

// ReadinessHandler handles readiness probe requests. The store must be
// reachable for the service to be ready; optional dependencies (session
// cache, document storage) only degrade the reported status, since the
// service keeps working without them.
func ReadinessHandler(records store.RecordStore, optional map[string]ReadinessCheck) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		checks := map[string]string{"api": "ok"}
		status := "ready"
		code := http.StatusOK

		if err := records.Ping(ctx); err != nil {
			logging.GetGlobalLogger().Error("Readiness check failed", map[string]interface{}{"error": err.Error()})
			checks["store"] = "unreachable"
			status = "not_ready"
			code = http.StatusServiceUnavailable
		} else {
			checks["store"] = "ok"
		}

		for name, check := range optional {
			if err := check(ctx); err != nil {
				logging.GetGlobalLogger().Warn("Optional dependency unavailable", map[string]interface{}{
					"dependency": name,
					"error":      err.Error(),
				})
				checks[name] = "unavailable"
				if status == "ready" {
					status = "degraded"
				}
			} else {
				checks[name] = "ok"
			}
		}

		return c.JSON(code, models.HealthResponse{
			Status:    status,
			Timestamp: time.Now(),
			Version:   version,
			Uptime:    utils.FormatDuration(time.Since(startTime)),
			Checks:    checks,
		})
	}
}

// LivenessHandler handles liveness probe requests
func LivenessHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, models.HealthResponse{
		Status:    "alive",
		Timestamp: time.Now(),
		Version:   version,
		Uptime:    utils.FormatDuration(time.Since(startTime)),
	})
}

// StatusHandler provides detailed service status
func StatusHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, models.HealthResponse{
		Status:    "operational",
		Timestamp: time.Now(),
		Version:   version,
		Uptime:    utils.FormatDuration(time.Since(startTime)),
		Checks: map[string]string{
			"api": "operational",
		},
	})
}
