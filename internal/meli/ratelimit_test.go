package meli_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"melicalc/internal/meli"
)

func TestRateLimiter_DailyLimit(t *testing.T) {
	t.Parallel()

	rl := meli.NewRateLimiter(1000, 1000, 3)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, rl.Wait(ctx))
	}

	err := rl.Wait(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, meli.ErrDailyLimitReached)
	assert.Equal(t, int64(3), rl.DailyCount())
	assert.Equal(t, int64(0), rl.Remaining())
}

func TestRateLimiter_DailyWindowReset(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	rl := meli.NewRateLimiter(1000, 1000, 1,
		meli.WithRateLimiterNowFunc(func() time.Time { return now }))
	ctx := context.Background()

	require.NoError(t, rl.Wait(ctx))
	require.ErrorIs(t, rl.Wait(ctx), meli.ErrDailyLimitReached)

	now = now.Add(25 * time.Hour)
	require.NoError(t, rl.Wait(ctx), "quota resets after the window expires")
}

func TestRateLimiter_ContextCancellation(t *testing.T) {
	t.Parallel()

	rl := meli.NewRateLimiter(0.001, 1, 100)
	ctx := context.Background()

	// Drain the burst token.
	require.NoError(t, rl.Wait(ctx))

	ctx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	assert.Error(t, rl.Wait(ctx))
}
