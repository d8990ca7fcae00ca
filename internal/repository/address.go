package repository

import (
	"github.com/JoeWHoward/DockerPlayground/internal/database"
	"github.com/JoeWHoward/DockerPlayground/internal/model"
)

type AddressRepository struct{}

func NewAddressRepository() *AddressRepository {
	return &AddressRepository{}
}

func (r *AddressRepository) GetByID(sess *database.Session, addressID int64) (*model.Address, error) {
	return database.Get[model.Address](sess, addressID)
}

// ListByUser returns the addresses owned by userID, oldest first.
func (r *AddressRepository) ListByUser(sess *database.Session, userID int64) ([]model.Address, error) {
	return database.Find[model.Address](sess, "user_id = ?", userID)
}
