package job

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JoeWHoward/DockerPlayground/internal/config"
)

type sentEmail struct {
	to, firstName string
}

type fakeSender struct {
	sent []sentEmail
	err  error
}

func (f *fakeSender) SendWelcomeEmail(_ context.Context, to, firstName string) error {
	f.sent = append(f.sent, sentEmail{to, firstName})
	return f.err
}

func newTestService(sender WelcomeSender) *JobService {
	logger := zerolog.Nop()
	return &JobService{logger: &logger, emails: sender}
}

func TestNewWelcomeEmailTask(t *testing.T) {
	task, err := NewWelcomeEmailTask(1, "joseph.howard307@gmail.com", "Joe")
	require.NoError(t, err)
	assert.Equal(t, TaskWelcome, task.Type())

	var p WelcomeEmailPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &p))
	assert.Equal(t, WelcomeEmailPayload{AddressID: 1, EmailAddress: "joseph.howard307@gmail.com", UserName: "Joe"}, p)
}

func TestHandleWelcomeEmailTask(t *testing.T) {
	task, err := NewWelcomeEmailTask(2, "bobthebugguy@gmail.com", "Bob")
	require.NoError(t, err)

	t.Run("sends", func(t *testing.T) {
		sender := &fakeSender{}
		require.NoError(t, newTestService(sender).Mux().ProcessTask(context.Background(), task))
		assert.Equal(t, []sentEmail{{"bobthebugguy@gmail.com", "Bob"}}, sender.sent)
	})

	t.Run("send failure is retried", func(t *testing.T) {
		sender := &fakeSender{err: errors.New("provider down")}
		err := newTestService(sender).handleWelcomeEmailTask(context.Background(), task)
		require.Error(t, err)
		assert.False(t, errors.Is(err, asynq.SkipRetry))
	})

	t.Run("disabled sender", func(t *testing.T) {
		assert.NoError(t, newTestService(nil).handleWelcomeEmailTask(context.Background(), task))
	})

	t.Run("malformed payload", func(t *testing.T) {
		bad := asynq.NewTask(TaskWelcome, []byte("{"))
		err := newTestService(&fakeSender{}).handleWelcomeEmailTask(context.Background(), bad)
		assert.True(t, errors.Is(err, asynq.SkipRetry))
	})
}

func TestJobService_Enqueue(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg := config.Default()
	cfg.Redis.Address = mr.Addr()
	logger := zerolog.Nop()

	svc := NewJobService(&logger, cfg)
	svc.InitHandlers(cfg, &logger)
	assert.Nil(t, svc.emails, "no api key means no sender")
	defer svc.Client.Close()

	task, err := NewWelcomeEmailTask(1, "joseph.howard307@gmail.com", "Joe")
	require.NoError(t, err)

	info, err := svc.Client.EnqueueContext(context.Background(), task)
	require.NoError(t, err)
	assert.Equal(t, "default", info.Queue)
	assert.Equal(t, 3, info.MaxRetry)
	assert.Equal(t, WelcomeTaskID(1), info.ID)

	_, err = svc.Client.EnqueueContext(context.Background(), task)
	assert.ErrorIs(t, err, asynq.ErrTaskIDConflict, "one welcome email per address")
}
