// Package cache provides a small process-local TTL cache keyed by content
// hash. It backs the embedding cache (24h) and the completion cache (1h) as
// two separately injected instances.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"
)

type entry struct {
	value     any
	createdAt time.Time
}

// TTLCache maps content-hash keys to values with a fixed time-to-live.
// Expired entries are purged lazily on access, never on a timer.
type TTLCache struct {
	mu  sync.RWMutex
	ttl time.Duration
	now func() time.Time

	entries map[string]entry
	// opportunistic cleanup runs at most once per sweepEvery writes
	writes     int
	sweepEvery int
}

func NewTTLCache(ttl time.Duration) *TTLCache {
	return &TTLCache{
		ttl:        ttl,
		now:        time.Now,
		entries:    make(map[string]entry),
		sweepEvery: 256,
	}
}

// HashKey derives the canonical cache key for a piece of content.
func HashKey(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

// Get returns the cached value for key, treating entries older than the TTL
// as absent.
func (c *TTLCache) Get(key string) (any, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.createdAt) > c.ttl {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false
	}
	return e.value, true
}

// Set stores value under key, stamping it with the current time.
func (c *TTLCache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{value: value, createdAt: c.now()}
	c.writes++
	if c.writes >= c.sweepEvery {
		c.writes = 0
		c.purgeExpiredLocked()
	}
}

// Len reports the number of live and expired entries currently held.
func (c *TTLCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *TTLCache) purgeExpiredLocked() {
	cutoff := c.now().Add(-c.ttl)
	for k, e := range c.entries {
		if e.createdAt.Before(cutoff) {
			delete(c.entries, k)
		}
	}
}

// SetClock overrides the time source. Test helper.
func (c *TTLCache) SetClock(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}
