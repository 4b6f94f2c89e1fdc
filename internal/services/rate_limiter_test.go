package services

import (
	"context"
	"testing"
	"time"

	"catalog/internal/coordination"
	"catalog/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiterFixedWindow(t *testing.T) {
	store := coordination.NewLocalStore()
	now := time.Now()
	store.SetClock(func() time.Time { return now })

	limiter := NewRateLimiter(store)
	ctx := context.Background()

	var last Decision
	for i := 1; i <= 100; i++ {
		d, err := limiter.Admit(ctx, "10.0.0.1")
		require.NoError(t, err)
		require.True(t, d.Allowed, "request %d within the threshold must be admitted", i)
		last = d
	}
	assert.Equal(t, int64(0), last.Remaining, "100th request exhausts the allowance")

	d, err := limiter.Admit(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, d.Allowed, "101st request in the window is denied")
	assert.Equal(t, int64(0), d.Remaining, "remaining floors at zero, never negative")

	// a fresh window readmits
	now = now.Add(61 * time.Second)
	d, err = limiter.Admit(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, d.Allowed)
	assert.Equal(t, int64(99), d.Remaining)
}

func TestRateLimiterPerIdentity(t *testing.T) {
	limiter := RateLimiter{Store: coordination.NewLocalStore(), Limit: 1, Window: time.Minute}
	ctx := context.Background()

	d, err := limiter.Admit(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, d.Allowed)

	d, err = limiter.Admit(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, d.Allowed)

	d, err = limiter.Admit(ctx, "10.0.0.2")
	require.NoError(t, err)
	assert.True(t, d.Allowed, "another identity owns its own counter")
}

func TestRateLimiterStoreFailureIsTyped(t *testing.T) {
	limiter := NewRateLimiter(errStore{})

	_, err := limiter.Admit(context.Background(), "10.0.0.1")
	require.Error(t, err)
	assert.True(t, domain.IsUpstreamUnavailable(err),
		"the caller decides the fail-open policy from a typed error")
}
