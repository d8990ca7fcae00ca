package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/JoeWHoward/DockerPlayground/internal/handler"
)

// registerAPIRoutes registers the data routes. Each of them runs inside a
// unit of work.
func registerAPIRoutes(r *echo.Echo, h *handler.Handlers, unitOfWork echo.MiddlewareFunc) {
	r.GET("/", handler.Handle(h.Root.Handler, h.Root.Seed, http.StatusOK, &handler.SeedRequest{}), unitOfWork)

	r.GET("/users/:user_id", handler.Handle(h.User.Handler, h.User.GetUser, http.StatusOK, &handler.GetUserRequest{}), unitOfWork)
	r.GET("/users/:user_id/addresses", handler.Handle(h.User.Handler, h.User.ListAddresses, http.StatusOK, &handler.GetUserRequest{}), unitOfWork)

	r.GET("/addresses/:address_id", handler.Handle(h.Address.Handler, h.Address.GetAddress, http.StatusOK, &handler.GetAddressRequest{}), unitOfWork)
}
