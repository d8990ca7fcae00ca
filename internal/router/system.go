package router

import (
	"github.com/labstack/echo/v4"

	"github.com/JoeWHoward/DockerPlayground/internal/handler"
)

// registerSystemRoutes registers the endpoints that are not part of the API:
// health, docs UI and the static files the docs load.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)

	r.Static("/static", "static")

	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
}
