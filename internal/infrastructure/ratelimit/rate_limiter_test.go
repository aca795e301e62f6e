package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func TestAllowRespectsBurst(t *testing.T) {
	rl := NewRateLimiter(Policy{Limit: rate.Every(time.Minute), Burst: 2}, nil)
	frozen := time.Now()
	rl.now = func() time.Time { return frozen }

	ok, _ := rl.Allow("1.2.3.4", "default")
	assert.True(t, ok)
	ok, _ = rl.Allow("1.2.3.4", "default")
	assert.True(t, ok)

	ok, wait := rl.Allow("1.2.3.4", "default")
	assert.False(t, ok)
	assert.Greater(t, wait, time.Duration(0))

	ok, _ = rl.Allow("5.6.7.8", "default")
	assert.True(t, ok, "buckets are per client")
}

func TestActionPolicies(t *testing.T) {
	rl := NewRateLimiter(
		Policy{Limit: rate.Every(time.Minute), Burst: 5},
		map[string]Policy{"auth": {Limit: rate.Every(time.Minute), Burst: 1}},
	)
	frozen := time.Now()
	rl.now = func() time.Time { return frozen }

	ok, _ := rl.Allow("c", "auth")
	assert.True(t, ok)
	ok, _ = rl.Allow("c", "auth")
	assert.False(t, ok)

	ok, _ = rl.Allow("c", "default")
	assert.True(t, ok)
}

func TestCleanupDropsIdleBuckets(t *testing.T) {
	rl := NewRateLimiter(Policy{Limit: 1, Burst: 1}, nil)
	start := time.Now()
	rl.now = func() time.Time { return start }
	rl.Allow("old", "default")

	rl.now = func() time.Time { return start.Add(2 * time.Hour) }
	rl.Allow("fresh", "default")

	assert.Equal(t, 1, rl.Cleanup(time.Hour))
	assert.Equal(t, 1, rl.Size())
}
