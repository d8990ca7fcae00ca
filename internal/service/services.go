package service

import (
	"github.com/JoeWHoward/DockerPlayground/internal/lib/job"
	"github.com/JoeWHoward/DockerPlayground/internal/repository"
	"github.com/JoeWHoward/DockerPlayground/internal/server"
)

type Services struct {
	Seed    *SeedService
	User    *UserService
	Address *AddressService
	Job     *job.JobService
}

func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	// Left nil when Redis is off so SeedService skips the welcome emails.
	var enqueuer TaskEnqueuer
	if s.Job != nil {
		enqueuer = s.Job.Client
	}

	return &Services{
		Seed:    NewSeedService(s.Logger, enqueuer),
		User:    NewUserService(repos),
		Address: NewAddressService(repos),
		Job:     s.Job,
	}, nil
}
