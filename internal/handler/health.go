package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/JoeWHoward/DockerPlayground/internal/middleware"
	"github.com/JoeWHoward/DockerPlayground/internal/server"
)

// HealthHandler reports whether the service and its dependencies answer.
type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

// probe is one dependency check.
type probe struct {
	name string
	// required probes turn the overall status unhealthy on failure.
	required bool
	run      func(ctx context.Context) error
}

func (h *HealthHandler) probes() []probe {
	hc := h.server.Config.Observability.HealthChecks
	if !hc.Enabled {
		return nil
	}

	var probes []probe
	if h.server.Config.Observability.HasCheck("database") {
		probes = append(probes, probe{name: "database", required: true, run: h.server.DB.Ping})
	}
	if h.server.Redis != nil && h.server.Config.Observability.HasCheck("redis") {
		probes = append(probes, probe{name: "redis", run: func(ctx context.Context) error {
			return h.server.Redis.Ping(ctx).Err()
		}})
	}
	return probes
}

// CheckHealth answers 200 when every required probe passes and 503
// otherwise. Redis is optional, so a failing Redis is reported but does
// not change the status.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	checks := make(map[string]any)
	response := map[string]any{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      checks,
	}

	isHealthy := true
	timeout := h.server.Config.Observability.HealthChecks.Timeout

	for _, p := range h.probes() {
		ctx, cancel := context.WithTimeout(c.Request().Context(), timeout)
		probeStart := time.Now()
		err := p.run(ctx)
		cancel()
		elapsed := time.Since(probeStart)

		if err != nil {
			checks[p.name] = map[string]any{
				"status":        "unhealthy",
				"response_time": elapsed.String(),
				"error":         err.Error(),
			}
			if p.required {
				isHealthy = false
			}

			logger.Error().
				Err(err).
				Str("check", p.name).
				Dur("response_time", elapsed).
				Msg("health check failed")

			h.recordHealthCheckError(map[string]any{
				"check_type":       p.name,
				"operation":        "health_check",
				"error_type":       p.name + "_unhealthy",
				"response_time_ms": elapsed.Milliseconds(),
				"error_message":    err.Error(),
			})
			continue
		}

		checks[p.name] = map[string]any{
			"status":        "healthy",
			"response_time": elapsed.String(),
		}

		logger.Debug().
			Str("check", p.name).
			Dur("response_time", elapsed).
			Msg("health check passed")
	}

	if !isHealthy {
		response["status"] = "unhealthy"

		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("service unhealthy")

		h.recordHealthCheckError(map[string]any{
			"check_type":        "overall",
			"operation":         "health_check",
			"error_type":        "overall_unhealthy",
			"total_duration_ms": time.Since(start).Milliseconds(),
		})

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	if err := c.JSON(http.StatusOK, response); err != nil {
		logger.Error().Err(err).Msg("failed to write JSON response")
		return fmt.Errorf("failed to write JSON response: %w", err)
	}

	return nil
}

func (h *HealthHandler) recordHealthCheckError(attrs map[string]any) {
	if app := h.server.LoggerService.GetApplication(); app != nil {
		app.RecordCustomEvent("HealthCheckError", attrs)
	}
}
