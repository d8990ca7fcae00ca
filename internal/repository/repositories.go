package repository

// Repositories is a container for all repository instances.
type Repositories struct {
	User    *UserRepository
	Address *AddressRepository
}

// NewRepositories constructs the repository container.
func NewRepositories() *Repositories {
	return &Repositories{
		User:    NewUserRepository(),
		Address: NewAddressRepository(),
	}
}
