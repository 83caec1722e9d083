package ratelimiter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFixedWindowLimitsPerKey(t *testing.T) {
	rl := NewFixedWindowLimiter(2, time.Minute)
	defer rl.Stop()

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	ok, _ := rl.Allow("10.0.0.1")
	assert.True(t, ok)
	ok, _ = rl.Allow("10.0.0.1")
	assert.True(t, ok)

	ok, retry := rl.Allow("10.0.0.1")
	assert.False(t, ok)
	assert.Equal(t, time.Minute, retry)

	ok, _ = rl.Allow("10.0.0.2")
	assert.True(t, ok, "other keys have their own window")

	now = now.Add(30 * time.Second)
	_, retry = rl.Allow("10.0.0.1")
	assert.Equal(t, 30*time.Second, retry)

	now = now.Add(31 * time.Second)
	ok, _ = rl.Allow("10.0.0.1")
	assert.True(t, ok, "window resets")
}
