package repository

import (
	"github.com/JoeWHoward/DockerPlayground/internal/database"
	"github.com/JoeWHoward/DockerPlayground/internal/model"
)

type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

// GetByID loads one user without relations.
func (r *UserRepository) GetByID(sess *database.Session, userID int64) (*model.User, error) {
	return database.Get[model.User](sess, userID)
}
