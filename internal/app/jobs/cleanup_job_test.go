package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserSweeper struct {
	cutoffs []time.Time
	deleted int64
	err     error
}

func (f *fakeUserSweeper) DeleteUnverifiedCreatedBefore(_ context.Context, cutoff time.Time) (int64, error) {
	f.cutoffs = append(f.cutoffs, cutoff)
	return f.deleted, f.err
}

type fakeTokenSweeper struct {
	calls int
	err   error
}

func (f *fakeTokenSweeper) DeleteExpiredTokens(_ context.Context) error {
	f.calls++
	return f.err
}

func TestSweep(t *testing.T) {
	t.Run("deletes stale accounts and expired codes", func(t *testing.T) {
		users := &fakeUserSweeper{deleted: 3}
		tokens := &fakeTokenSweeper{}
		job := NewCleanupJob(users, tokens, zerolog.Nop())

		job.Sweep()

		require.Len(t, users.cutoffs, 1)
		expected := time.Now().Add(-unverifiedMaxAge)
		assert.WithinDuration(t, expected, users.cutoffs[0], time.Minute)
		assert.Equal(t, 1, tokens.calls)
	})

	t.Run("a user sweep failure still clears expired codes", func(t *testing.T) {
		users := &fakeUserSweeper{err: errors.New("connection refused")}
		tokens := &fakeTokenSweeper{}
		job := NewCleanupJob(users, tokens, zerolog.Nop())

		job.Sweep()

		assert.Equal(t, 1, tokens.calls)
	})
}

func TestStartAndStop(t *testing.T) {
	job := NewCleanupJob(&fakeUserSweeper{}, &fakeTokenSweeper{}, zerolog.Nop())

	require.NoError(t, job.Start())
	job.Stop()
}
