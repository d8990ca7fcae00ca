package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/JoeWHoward/DockerPlayground/internal/database"
	"github.com/JoeWHoward/DockerPlayground/internal/database/databasetest"
	"github.com/JoeWHoward/DockerPlayground/internal/lib/job"
	"github.com/JoeWHoward/DockerPlayground/internal/model"
	"github.com/JoeWHoward/DockerPlayground/internal/repository"
	"github.com/JoeWHoward/DockerPlayground/internal/service"
)

type fakeEnqueuer struct {
	mu    sync.Mutex
	tasks []*asynq.Task
	err   error
}

func (f *fakeEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.tasks = append(f.tasks, task)
	return &asynq.TaskInfo{Type: task.Type()}, nil
}

func (f *fakeEnqueuer) recipients(t *testing.T) []string {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []string
	for _, task := range f.tasks {
		var p job.WelcomeEmailPayload
		require.NoError(t, json.Unmarshal(task.Payload(), &p))
		out = append(out, p.EmailAddress)
	}
	return out
}

func persist(t *testing.T, db *database.Database, seed *service.SeedService) (map[string]any, error) {
	t.Helper()
	sess := db.NewSession(context.Background())
	defer sess.Close()
	return seed.Persist(context.Background(), sess)
}

func countUsers(t *testing.T, db *database.Database) int {
	t.Helper()
	sess := db.NewSession(context.Background())
	defer sess.Close()
	users, err := database.Find[model.User](sess, "1 = 1")
	require.NoError(t, err)
	return len(users)
}

func TestSeedService_Persist(t *testing.T) {
	db := databasetest.New(t)
	logger := zerolog.Nop()
	enqueuer := &fakeEnqueuer{}
	seed := service.NewSeedService(&logger, enqueuer)

	got, err := persist(t, db, seed)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"id":            int64(1),
		"email_address": "joseph.howard307@gmail.com",
		"user_id":       int64(1),
	}, got)
	assert.Equal(t, []string{"joseph.howard307@gmail.com", "bobthebugguy@gmail.com"}, enqueuer.recipients(t))

	t.Run("second call reuses the same rows", func(t *testing.T) {
		again, err := persist(t, db, seed)
		require.NoError(t, err)
		assert.Equal(t, got, again)
		assert.Equal(t, 2, countUsers(t, db))
		assert.Len(t, enqueuer.recipients(t), 2, "no welcome email for rows that already existed")
	})

	t.Run("returned mapping is a copy", func(t *testing.T) {
		got["email_address"] = "changed"
		again, err := persist(t, db, seed)
		require.NoError(t, err)
		assert.Equal(t, "joseph.howard307@gmail.com", again["email_address"])
	})
}

func TestSeedService_PersistWithoutJobs(t *testing.T) {
	db := databasetest.New(t)
	logger := zerolog.Nop()
	seed := service.NewSeedService(&logger, nil)

	got, err := persist(t, db, seed)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got["id"])
}

func TestSeedService_EnqueueFailureIsNotFatal(t *testing.T) {
	db := databasetest.New(t)
	logger := zerolog.Nop()
	seed := service.NewSeedService(&logger, &fakeEnqueuer{err: errors.New("redis down")})

	got, err := persist(t, db, seed)
	require.NoError(t, err)
	assert.Equal(t, "joseph.howard307@gmail.com", got["email_address"])
}

func TestSeedService_FailureRebuildsGraph(t *testing.T) {
	db := databasetest.New(t)
	logger := zerolog.Nop()
	enqueuer := &fakeEnqueuer{}
	seed := service.NewSeedService(&logger, enqueuer)

	require.NoError(t, db.ORM.Migrator().DropTable("address"))

	_, err := persist(t, db, seed)
	require.Error(t, err)
	assert.Empty(t, enqueuer.recipients(t))
	assert.Zero(t, countUsers(t, db), "the users were rolled back with the failed addresses")

	require.NoError(t, db.CreateAll(context.Background()))

	got, err := persist(t, db, seed)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got["id"])
	assert.Equal(t, int64(1), got["user_id"])
	assert.Equal(t, 2, countUsers(t, db))
	assert.Len(t, enqueuer.recipients(t), 2)
}

func TestSeedService_ConcurrentCalls(t *testing.T) {
	db := databasetest.New(t)
	logger := zerolog.Nop()
	seed := service.NewSeedService(&logger, nil)

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sess := db.NewSession(context.Background())
			defer sess.Close()
			_, err := seed.Persist(context.Background(), sess)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, 2, countUsers(t, db))
}

func TestUserAndAddressServices(t *testing.T) {
	db := databasetest.New(t)
	repos := repository.NewRepositories()
	users := service.NewUserService(repos)
	addresses := service.NewAddressService(repos)
	logger := zerolog.Nop()

	_, err := persist(t, db, service.NewSeedService(&logger, nil))
	require.NoError(t, err)

	sess := db.NewSession(context.Background())
	defer sess.Close()

	user, err := users.Get(sess, 2)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"id": int64(2), "name": "Bob", "fullname": "Bob Howard"}, user.AsMap())

	addrs, err := users.Addresses(sess, 1)
	require.NoError(t, err)
	require.Len(t, addrs, 1)
	assert.Equal(t, "joseph.howard307@gmail.com", *addrs[0].EmailAddress)

	_, err = users.Addresses(sess, 404)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	// A staged address is visible by id once Get has flushed it.
	staged := model.NewAddress("joe@work.example", user)
	require.NoError(t, sess.Add(staged))
	require.Zero(t, staged.ID)

	addr, err := addresses.Get(sess, 3)
	require.NoError(t, err)
	assert.Equal(t, staged.ID, addr.ID)
	assert.Equal(t, "joe@work.example", *addr.EmailAddress)

	_, err = addresses.Get(sess, 404)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}
