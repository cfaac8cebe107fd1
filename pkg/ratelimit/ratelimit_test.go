package ratelimit_test

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inmovista/inmovista/pkg/ratelimit"
)

func TestMemoryStore_WindowBoundary(t *testing.T) {
	clock := clockwork.NewFakeClock()
	store := ratelimit.NewMemoryStore(10*time.Minute, 5, clock)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		allowed, err := store.CheckAndIncrement(ctx, "203.0.113.7")
		require.NoError(t, err)
		assert.True(t, allowed, "submission %d should pass", i+1)
	}

	allowed, err := store.CheckAndIncrement(ctx, "203.0.113.7")
	require.NoError(t, err)
	assert.False(t, allowed, "sixth submission in window must be throttled")

	// Rejected attempts do not extend the window.
	clock.Advance(10*time.Minute + time.Second)
	allowed, err = store.CheckAndIncrement(ctx, "203.0.113.7")
	require.NoError(t, err)
	assert.True(t, allowed, "window rolled over, counter reset")
}

func TestMemoryStore_SlidingNotFixed(t *testing.T) {
	clock := clockwork.NewFakeClock()
	store := ratelimit.NewMemoryStore(10*time.Minute, 5, clock)
	ctx := context.Background()

	// Two early hits, then three later ones fill the quota.
	for i := 0; i < 2; i++ {
		allowed, _ := store.CheckAndIncrement(ctx, "k")
		assert.True(t, allowed)
	}
	clock.Advance(9 * time.Minute)
	for i := 0; i < 3; i++ {
		allowed, _ := store.CheckAndIncrement(ctx, "k")
		assert.True(t, allowed)
	}
	allowed, _ := store.CheckAndIncrement(ctx, "k")
	assert.False(t, allowed)

	// Two minutes on, the two early hits have slid out but the three
	// later ones still count.
	clock.Advance(2 * time.Minute)
	allowed, _ = store.CheckAndIncrement(ctx, "k")
	assert.True(t, allowed)
	allowed, _ = store.CheckAndIncrement(ctx, "k")
	assert.True(t, allowed)
	allowed, _ = store.CheckAndIncrement(ctx, "k")
	assert.False(t, allowed)
}

func TestMemoryStore_KeysAreIndependent(t *testing.T) {
	clock := clockwork.NewFakeClock()
	store := ratelimit.NewMemoryStore(10*time.Minute, 1, clock)
	ctx := context.Background()

	allowed, _ := store.CheckAndIncrement(ctx, "a")
	assert.True(t, allowed)
	allowed, _ = store.CheckAndIncrement(ctx, "a")
	assert.False(t, allowed)

	allowed, _ = store.CheckAndIncrement(ctx, "b")
	assert.True(t, allowed)
}
