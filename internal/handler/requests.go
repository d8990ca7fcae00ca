package handler

import "github.com/JoeWHoward/DockerPlayground/internal/validation"

// SeedRequest carries nothing; GET / takes no input.
type SeedRequest struct{}

func (r *SeedRequest) Validate() error {
	return nil
}

type GetUserRequest struct {
	UserID int64 `param:"user_id"`
}

func (r *GetUserRequest) Validate() error {
	return validation.Struct(r)
}

type GetAddressRequest struct {
	AddressID int64 `param:"address_id"`
}

func (r *GetAddressRequest) Validate() error {
	return validation.Struct(r)
}
