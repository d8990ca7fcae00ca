package service

import (
	"github.com/JoeWHoward/DockerPlayground/internal/database"
	"github.com/JoeWHoward/DockerPlayground/internal/model"
	"github.com/JoeWHoward/DockerPlayground/internal/repository"
)

type UserService struct {
	repos *repository.Repositories
}

func NewUserService(repos *repository.Repositories) *UserService {
	return &UserService{repos: repos}
}

func (s *UserService) Get(sess *database.Session, userID int64) (*model.User, error) {
	return s.repos.User.GetByID(sess, userID)
}

// Addresses lists the addresses of userID. An unknown user is a not-found
// error rather than an empty list.
func (s *UserService) Addresses(sess *database.Session, userID int64) ([]model.Address, error) {
	if _, err := s.repos.User.GetByID(sess, userID); err != nil {
		return nil, err
	}
	return s.repos.Address.ListByUser(sess, userID)
}
