package service

import (
	"github.com/JoeWHoward/DockerPlayground/internal/database"
	"github.com/JoeWHoward/DockerPlayground/internal/model"
	"github.com/JoeWHoward/DockerPlayground/internal/repository"
)

type AddressService struct {
	repos *repository.Repositories
}

func NewAddressService(repos *repository.Repositories) *AddressService {
	return &AddressService{repos: repos}
}

// Get flushes anything staged on sess before looking the address up.
func (s *AddressService) Get(sess *database.Session, addressID int64) (*model.Address, error) {
	if err := sess.Flush(); err != nil {
		return nil, err
	}
	return s.repos.Address.GetByID(sess, addressID)
}
