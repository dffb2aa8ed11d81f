package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlidingWindowLimiter(t *testing.T) {
	limiter := NewSlidingWindowLimiter(3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, err := limiter.Allow(ctx, "key")
		require.NoError(t, err)
		assert.True(t, allowed)
	}

	allowed, err := limiter.Allow(ctx, "key")
	require.NoError(t, err)
	assert.False(t, allowed)

	// Other keys are independent
	allowed, err = limiter.Allow(ctx, "other")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestSlidingWindowExpiry(t *testing.T) {
	limiter := NewSlidingWindowLimiter(1, 50*time.Millisecond)
	ctx := context.Background()

	allowed, err := limiter.Allow(ctx, "key")
	require.NoError(t, err)
	require.True(t, allowed)

	allowed, _ = limiter.Allow(ctx, "key")
	assert.False(t, allowed)

	time.Sleep(60 * time.Millisecond)

	allowed, err = limiter.Allow(ctx, "key")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestSlidingWindowReset(t *testing.T) {
	limiter := NewSlidingWindowLimiter(1, time.Minute)
	ctx := context.Background()

	_, err := limiter.Allow(ctx, "key")
	require.NoError(t, err)

	allowed, _ := limiter.Allow(ctx, "key")
	require.False(t, allowed)

	require.NoError(t, limiter.Reset(ctx, "key"))

	allowed, err = limiter.Allow(ctx, "key")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestIPAndUserLimitersUseSeparateKeyspaces(t *testing.T) {
	ctx := context.Background()

	ipLimiter := NewIPRateLimiter(1)
	userLimiter := NewUserRateLimiter(1)

	allowed, err := ipLimiter.Allow(ctx, "192.0.2.1")
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = userLimiter.Allow(ctx, "192.0.2.1")
	require.NoError(t, err)
	assert.True(t, allowed, "user limiter should not share state with the IP limiter")
}
