package job

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

const (
	TaskWelcome = "email:welcome"
)

// WelcomeEmailPayload is the JSON payload stored in Redis for TaskWelcome.
type WelcomeEmailPayload struct {
	AddressID    int64  `json:"address_id"`
	EmailAddress string `json:"email_address"`
	UserName     string `json:"user_name"`
}

// WelcomeTaskID is the asynq task id for an address. Enqueueing the same
// address twice while the first task is retained fails with
// asynq.ErrTaskIDConflict.
func WelcomeTaskID(addressID int64) string {
	return fmt.Sprintf("welcome:address:%d", addressID)
}

// NewWelcomeEmailTask builds a TaskWelcome task for a newly stored address:
// 3 retries on the default queue, 30s per attempt, kept for a day after
// completion.
func NewWelcomeEmailTask(addressID int64, emailAddress, userName string) (*asynq.Task, error) {
	payload, err := json.Marshal(WelcomeEmailPayload{
		AddressID:    addressID,
		EmailAddress: emailAddress,
		UserName:     userName,
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskWelcome,
		payload,
		asynq.TaskID(WelcomeTaskID(addressID)),
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
		asynq.Retention(24*time.Hour),
	), nil
}
