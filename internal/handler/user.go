package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/JoeWHoward/DockerPlayground/internal/middleware"
	"github.com/JoeWHoward/DockerPlayground/internal/server"
	"github.com/JoeWHoward/DockerPlayground/internal/service"
)

type UserHandler struct {
	Handler
	users *service.UserService
}

func NewUserHandler(s *server.Server, users *service.UserService) *UserHandler {
	return &UserHandler{
		Handler: NewHandler(s),
		users:   users,
	}
}

func (h *UserHandler) GetUser(c echo.Context, req *GetUserRequest) (map[string]any, error) {
	sess, err := middleware.GetSession(c)
	if err != nil {
		return nil, err
	}

	user, err := h.users.Get(sess, req.UserID)
	if err != nil {
		return nil, err
	}
	return user.AsMap(), nil
}

// ListAddresses returns the field mappings of a user's addresses.
func (h *UserHandler) ListAddresses(c echo.Context, req *GetUserRequest) ([]map[string]any, error) {
	sess, err := middleware.GetSession(c)
	if err != nil {
		return nil, err
	}

	addresses, err := h.users.Addresses(sess, req.UserID)
	if err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(addresses))
	for i := range addresses {
		out = append(out, addresses[i].AsMap())
	}
	return out, nil
}
