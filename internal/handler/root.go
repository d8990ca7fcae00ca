package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/JoeWHoward/DockerPlayground/internal/middleware"
	"github.com/JoeWHoward/DockerPlayground/internal/server"
	"github.com/JoeWHoward/DockerPlayground/internal/service"
)

type RootHandler struct {
	Handler
	seed *service.SeedService
}

func NewRootHandler(s *server.Server, seed *service.SeedService) *RootHandler {
	return &RootHandler{
		Handler: NewHandler(s),
		seed:    seed,
	}
}

// Seed writes the sample users and addresses and returns the first address.
func (h *RootHandler) Seed(c echo.Context, _ *SeedRequest) (map[string]any, error) {
	sess, err := middleware.GetSession(c)
	if err != nil {
		return nil, err
	}
	return h.seed.Persist(c.Request().Context(), sess)
}
