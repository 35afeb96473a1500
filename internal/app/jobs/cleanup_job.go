package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

const (
	cleanupSchedule  = "0 0 * * *"
	unverifiedMaxAge = 24 * time.Hour
	sweepTimeout     = 2 * time.Minute
)

type unverifiedUserStore interface {
	DeleteUnverifiedCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type expiredTokenStore interface {
	DeleteExpiredTokens(ctx context.Context) error
}

// CleanupJob removes accounts that never verified their email, together
// with expired verification codes.
type CleanupJob struct {
	users  unverifiedUserStore
	tokens expiredTokenStore
	cron   *cron.Cron
	logger zerolog.Logger
}

// NewCleanupJob creates a new CleanupJob
func NewCleanupJob(users unverifiedUserStore, tokens expiredTokenStore, logger zerolog.Logger) *CleanupJob {
	return &CleanupJob{
		users:  users,
		tokens: tokens,
		cron:   cron.New(),
		logger: logger,
	}
}

// Start schedules the nightly sweep. It returns an error only when the
// schedule expression cannot be parsed.
func (j *CleanupJob) Start() error {
	if _, err := j.cron.AddFunc(cleanupSchedule, j.Sweep); err != nil {
		return err
	}
	j.cron.Start()
	j.logger.Info().Str("schedule", cleanupSchedule).Msg("Cleanup job scheduled")
	return nil
}

// Stop halts the scheduler and waits for a running sweep to finish.
func (j *CleanupJob) Stop() {
	<-j.cron.Stop().Done()
}

// Sweep runs a single cleanup pass.
func (j *CleanupJob) Sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	cutoff := time.Now().Add(-unverifiedMaxAge)
	deleted, err := j.users.DeleteUnverifiedCreatedBefore(ctx, cutoff)
	if err != nil {
		j.logger.Error().Err(err).Msg("Failed to delete unverified accounts")
	} else if deleted > 0 {
		j.logger.Info().Int64("count", deleted).Msg("Deleted unverified accounts")
	}

	if err := j.tokens.DeleteExpiredTokens(ctx); err != nil {
		j.logger.Error().Err(err).Msg("Failed to delete expired verification codes")
	}
}
