package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newLimiter(rate, burst int) (*TokenBucketLimiter, *clock) {
	c := &clock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	l := NewTokenBucketLimiter(rate, burst)
	l.now = c.now
	return l, c
}

func allow(t *testing.T, l *TokenBucketLimiter, key string) bool {
	t.Helper()
	ok, err := l.Allow(context.Background(), key)
	require.NoError(t, err)
	return ok
}

func TestTokenBucketBurstAndRefill(t *testing.T) {
	l, c := newLimiter(2, 3)

	for i := 0; i < 3; i++ {
		assert.True(t, allow(t, l, "10.0.0.1"))
	}
	assert.False(t, allow(t, l, "10.0.0.1"))
	assert.True(t, allow(t, l, "10.0.0.2"), "keys are independent")

	c.advance(500 * time.Millisecond)
	assert.True(t, allow(t, l, "10.0.0.1"))
	assert.False(t, allow(t, l, "10.0.0.1"))

	c.advance(time.Minute)
	for i := 0; i < 3; i++ {
		assert.True(t, allow(t, l, "10.0.0.1"))
	}
	assert.False(t, allow(t, l, "10.0.0.1"), "refill is capped at the burst")
}

func TestTokenBucketReset(t *testing.T) {
	l, _ := newLimiter(1, 1)
	assert.True(t, allow(t, l, "k"))
	assert.False(t, allow(t, l, "k"))

	require.NoError(t, l.Reset(context.Background(), "k"))
	assert.True(t, allow(t, l, "k"))
}

func TestTokenBucketSweep(t *testing.T) {
	l, c := newLimiter(1, 1)
	allow(t, l, "old")
	c.advance(2 * time.Hour)
	allow(t, l, "new")

	assert.Equal(t, 1, l.sweep())
	assert.Len(t, l.buckets, 1)
}

func TestTokenBucketCancelledContext(t *testing.T) {
	l, _ := newLimiter(1, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := l.Allow(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)
}
