package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/JoeWHoward/DockerPlayground/internal/database"
	"github.com/JoeWHoward/DockerPlayground/internal/lib/job"
	"github.com/JoeWHoward/DockerPlayground/internal/model"
)

// TaskEnqueuer pushes background tasks. *asynq.Client implements it.
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// SeedService owns the sample users and addresses built at startup and
// writes them on demand.
//
// The same Go values are written on every call: the first write inserts
// them, later writes update the same rows.
type SeedService struct {
	mu        sync.Mutex
	users     []*model.User
	addresses []*model.Address
	enqueuer  TaskEnqueuer
	logger    *zerolog.Logger
}

// NewSeedService builds the seed graph. enqueuer may be nil.
func NewSeedService(logger *zerolog.Logger, enqueuer TaskEnqueuer) *SeedService {
	s := &SeedService{enqueuer: enqueuer, logger: logger}
	s.users, s.addresses = seedGraph()
	return s
}

func seedGraph() ([]*model.User, []*model.Address) {
	joe := &model.User{Name: "Joe", Fullname: "Joe Howard"}
	bob := &model.User{Name: "Bob", Fullname: "Bob Howard"}

	a1 := model.NewAddress("joseph.howard307@gmail.com", joe)
	a2 := model.NewAddress("bobthebugguy@gmail.com", bob)

	return []*model.User{joe, bob}, []*model.Address{a1, a2}
}

// Persist stages both users and both addresses on sess, commits, and
// returns the field mapping of the first address.
//
// If the commit fails the seed graph is rebuilt, so identifiers from the
// rolled back transaction are never reused.
func (s *SeedService) Persist(ctx context.Context, sess *database.Session) (map[string]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var fresh []*model.Address
	for _, a := range s.addresses {
		if a.ID == 0 {
			fresh = append(fresh, a)
		}
	}

	if err := s.persist(sess); err != nil {
		s.users, s.addresses = seedGraph()
		return nil, err
	}

	for _, a := range fresh {
		s.enqueueWelcome(ctx, a)
	}

	return s.addresses[0].AsMap(), nil
}

func (s *SeedService) persist(sess *database.Session) error {
	users := make([]any, len(s.users))
	for i, u := range s.users {
		users[i] = u
	}
	addresses := make([]any, len(s.addresses))
	for i, a := range s.addresses {
		addresses[i] = a
	}

	if err := sess.Add(users...); err != nil {
		return err
	}
	if err := sess.Add(addresses...); err != nil {
		return err
	}
	if err := sess.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed data: %w", err)
	}
	return nil
}

// enqueueWelcome is best effort: the rows are already committed.
func (s *SeedService) enqueueWelcome(ctx context.Context, a *model.Address) {
	if s.enqueuer == nil || a.EmailAddress == nil {
		return
	}

	userName := ""
	if a.User != nil {
		userName = a.User.Name
	}

	task, err := job.NewWelcomeEmailTask(a.ID, *a.EmailAddress, userName)
	if err != nil {
		s.logger.Error().Err(err).Int64("address_id", a.ID).Msg("failed to build welcome email task")
		return
	}

	if _, err := s.enqueuer.EnqueueContext(ctx, task); err != nil {
		if errors.Is(err, asynq.ErrTaskIDConflict) {
			s.logger.Debug().Int64("address_id", a.ID).Msg("welcome email already enqueued")
			return
		}
		s.logger.Error().Err(err).Int64("address_id", a.ID).Msg("failed to enqueue welcome email")
		return
	}

	s.logger.Info().Int64("address_id", a.ID).Msg("welcome email enqueued")
}
