package handler

import (
	"github.com/JoeWHoward/DockerPlayground/internal/server"
	"github.com/JoeWHoward/DockerPlayground/internal/service"
)

// Handlers groups all HTTP handlers.
type Handlers struct {
	Root    *RootHandler
	User    *UserHandler
	Address *AddressHandler
	Health  *HealthHandler
	OpenAPI *OpenAPIHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Root:    NewRootHandler(s, services.Seed),
		User:    NewUserHandler(s, services.User),
		Address: NewAddressHandler(s, services.Address),
		Health:  NewHealthHandler(s),
		OpenAPI: NewOpenAPIHandler(s),
	}
}
