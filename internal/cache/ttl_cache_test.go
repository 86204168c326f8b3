package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTTLCacheHitAndExpiry(t *testing.T) {
	c := NewTTLCache(24 * time.Hour)

	now := time.Now()
	c.SetClock(func() time.Time { return now })

	key := HashKey("some job description")
	c.Set(key, []float32{0.1, 0.2})

	v, ok := c.Get(key)
	assert.True(t, ok)
	assert.Equal(t, []float32{0.1, 0.2}, v)

	// One minute past the TTL the entry is treated as expired.
	now = now.Add(24*time.Hour + time.Minute)
	_, ok = c.Get(key)
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestTTLCacheMiss(t *testing.T) {
	c := NewTTLCache(time.Hour)
	_, ok := c.Get(HashKey("never stored"))
	assert.False(t, ok)
}

func TestHashKeyDeterministic(t *testing.T) {
	assert.Equal(t, HashKey("abc"), HashKey("abc"))
	assert.NotEqual(t, HashKey("abc"), HashKey("abd"))
}

func TestLazySweepPurgesExpired(t *testing.T) {
	c := NewTTLCache(time.Hour)
	c.sweepEvery = 4

	now := time.Now()
	c.SetClock(func() time.Time { return now })

	c.Set("a", 1)
	c.Set("b", 2)

	now = now.Add(2 * time.Hour)
	c.Set("c", 3)
	c.Set("d", 4) // 4th write triggers the sweep

	assert.Equal(t, 2, c.Len())
	_, ok := c.Get("c")
	assert.True(t, ok)
}
