package cache

import (
	"strings"
	"sync"
	"time"
)

// Cache is an in-process TTL cache keyed by call arguments. Callers must
// treat identical-argument hits within the TTL as the previously computed
// result, not a re-execution.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
}

type entry struct {
	val any
	exp time.Time // zero = never expires
}

func New() *Cache {
	return &Cache{
		entries: make(map[string]entry),
	}
}

// Key joins argument parts into a cache key.
func Key(parts ...string) string {
	return strings.Join(parts, "|")
}

// Get returns the cached value, expiring lazily.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if !e.exp.IsZero() && time.Now().After(e.exp) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false
	}
	return e.val, true
}

// Set stores a value. ttl <= 0 means no expiry (argument-keyed forever).
func (c *Cache) Set(key string, val any, ttl time.Duration) {
	e := entry{val: val}
	if ttl > 0 {
		e.exp = time.Now().Add(ttl)
	}

	c.mu.Lock()
	c.entries[key] = e
	c.mu.Unlock()
}

func (c *Cache) Delete(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}
