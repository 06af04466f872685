package venue

import (
	"sync"
	"time"
)

// DefaultCacheTTL is used when Set is given a non-positive ttl.
const DefaultCacheTTL = 10 * time.Minute

type cacheEntry[T any] struct {
	data    T
	stored  time.Time
	expires time.Duration
}

// ResponseCache keeps API responses for a limited time. It is safe for
// concurrent use.
type ResponseCache[T any] struct {
	mu      sync.Mutex
	entries map[string]cacheEntry[T]
	now     func() time.Time
}

// NewResponseCache returns an empty cache. A nil now uses the wall clock.
func NewResponseCache[T any](now func() time.Time) *ResponseCache[T] {
	if now == nil {
		now = time.Now
	}
	return &ResponseCache[T]{entries: make(map[string]cacheEntry[T]), now: now}
}

// Set stores data under key for ttl.
func (c *ResponseCache[T]) Set(key string, data T, ttl time.Duration) {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry[T]{data: data, stored: c.now(), expires: ttl}
}

// Get returns the data under key. Expired entries are removed and reported
// as missing.
func (c *ResponseCache[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var zero T
	e, ok := c.entries[key]
	if !ok {
		return zero, false
	}
	if c.now().Sub(e.stored) > e.expires {
		delete(c.entries, key)
		return zero, false
	}
	return e.data, true
}

// Len returns the number of stored entries, expired ones included.
func (c *ResponseCache[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
