package session

import (
	"sync"
	"time"
)

// CacheStats is a point-in-time snapshot of a cache's effectiveness.
type CacheStats struct {
	Size    int     `json:"size"`
	MaxSize int     `json:"maxSize"`
	Hits    int64   `json:"hits"`
	Misses  int64   `json:"misses"`
	HitRate float64 `json:"hitRate"`
	TTL     string  `json:"ttl"`
}

type cacheEntry[V any] struct {
	value   V
	expires time.Time
}

// TTLCache is a small thread-safe cache with per-entry expiry and a size cap.
// When full, expired entries are purged first, then the entry closest to
// expiry is evicted.
type TTLCache[K comparable, V any] struct {
	mu      sync.Mutex
	ttl     time.Duration
	maxSize int
	entries map[K]cacheEntry[V]
	hits    int64
	misses  int64
}

// NewTTLCache creates a cache holding at most maxSize entries for ttl each.
func NewTTLCache[K comparable, V any](maxSize int, ttl time.Duration) *TTLCache[K, V] {
	return &TTLCache[K, V]{
		ttl:     ttl,
		maxSize: maxSize,
		entries: make(map[K]cacheEntry[V]),
	}
}

// Get returns the cached value if present and not expired.
func (c *TTLCache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok || time.Now().After(entry.expires) {
		if ok {
			delete(c.entries, key)
		}
		c.misses++
		var zero V
		return zero, false
	}
	c.hits++
	return entry.value, true
}

// Set stores a value under the key.
func (c *TTLCache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	if len(c.entries) >= c.maxSize {
		c.purgeLocked(now)
	}
	if len(c.entries) >= c.maxSize {
		c.evictOldestLocked()
	}

	c.entries[key] = cacheEntry[V]{value: value, expires: now.Add(c.ttl)}
}

// Delete removes one entry.
func (c *TTLCache[K, V]) Delete(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Clear removes every entry and resets the hit counters.
func (c *TTLCache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[K]cacheEntry[V])
	c.hits = 0
	c.misses = 0
}

// Len returns the number of live entries.
func (c *TTLCache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns hit/miss counters.
func (c *TTLCache[K, V]) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	stats := CacheStats{
		Size:    len(c.entries),
		MaxSize: c.maxSize,
		Hits:    c.hits,
		Misses:  c.misses,
		TTL:     c.ttl.String(),
	}
	if total := c.hits + c.misses; total > 0 {
		stats.HitRate = float64(c.hits) / float64(total) * 100
	}
	return stats
}

func (c *TTLCache[K, V]) purgeLocked(now time.Time) {
	for key, entry := range c.entries {
		if now.After(entry.expires) {
			delete(c.entries, key)
		}
	}
}

func (c *TTLCache[K, V]) evictOldestLocked() {
	var oldestKey K
	var oldest time.Time
	found := false
	for key, entry := range c.entries {
		if !found || entry.expires.Before(oldest) {
			oldestKey = key
			oldest = entry.expires
			found = true
		}
	}
	if found {
		delete(c.entries, oldestKey)
	}
}
