package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/JoeWHoward/DockerPlayground/internal/config"
	"github.com/JoeWHoward/DockerPlayground/internal/lib/email"
)

// WelcomeSender delivers welcome emails. *email.Client implements it.
type WelcomeSender interface {
	SendWelcomeEmail(ctx context.Context, to, firstName string) error
}

// InitHandlers sets up the dependencies of the task handlers. Without a
// Resend API key welcome tasks are acknowledged and dropped.
func (j *JobService) InitHandlers(cfg *config.Config, logger *zerolog.Logger) {
	if cfg.Integration.ResendAPIKey == "" {
		logger.Warn().Msg("resend api key not set, welcome emails are disabled")
		return
	}
	j.emails = email.NewClient(cfg, logger)
}

func (j *JobService) handleWelcomeEmailTask(ctx context.Context, t *asynq.Task) error {
	var p WelcomeEmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		// A malformed payload will not get better on retry.
		return fmt.Errorf("failed to unmarshal welcome email payload: %v: %w", err, asynq.SkipRetry)
	}

	log := j.logger.With().
		Str("type", "welcome").
		Int64("address_id", p.AddressID).
		Str("to", p.EmailAddress).
		Logger()

	if j.emails == nil {
		log.Info().Msg("email sending disabled, skipping welcome email")
		return nil
	}

	log.Info().Msg("processing welcome email task")

	if err := j.emails.SendWelcomeEmail(ctx, p.EmailAddress, p.UserName); err != nil {
		log.Error().Err(err).Msg("failed to send welcome email")
		return err
	}

	log.Info().Msg("successfully sent welcome email")

	return nil
}
