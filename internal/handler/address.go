package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/JoeWHoward/DockerPlayground/internal/middleware"
	"github.com/JoeWHoward/DockerPlayground/internal/server"
	"github.com/JoeWHoward/DockerPlayground/internal/service"
)

type AddressHandler struct {
	Handler
	addresses *service.AddressService
}

func NewAddressHandler(s *server.Server, addresses *service.AddressService) *AddressHandler {
	return &AddressHandler{
		Handler:   NewHandler(s),
		addresses: addresses,
	}
}

func (h *AddressHandler) GetAddress(c echo.Context, req *GetAddressRequest) (map[string]any, error) {
	sess, err := middleware.GetSession(c)
	if err != nil {
		return nil, err
	}

	address, err := h.addresses.Get(sess, req.AddressID)
	if err != nil {
		return nil, err
	}
	return address.AsMap(), nil
}
