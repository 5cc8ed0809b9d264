package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	hits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clubhub_cache_hits_total",
		Help: "Cache lookups served from either layer.",
	})
	misses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clubhub_cache_misses_total",
		Help: "Cache lookups that fell through to the store.",
	})
)

// Fallback is the durable second cache layer (redis in production). Entries
// written there carry their own expiry so a promoted value keeps its deadline.
type Fallback interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, val string, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

type entry struct {
	Value     string `json:"v"`
	ExpiresAt int64  `json:"exp"` // unix millis
}

func (e entry) expired(now time.Time) bool {
	return now.UnixMilli() >= e.ExpiresAt
}

// Cache memoizes repository reads: an in-process map in front of an optional
// durable fallback. A missing or expired entry reads as absent and is evicted.
type Cache struct {
	mu       sync.Mutex
	entries  map[string]entry
	fallback Fallback // nil when running without redis
}

// New creates a cache. fallback may be nil.
func New(fallback Fallback) *Cache {
	return &Cache{entries: make(map[string]entry), fallback: fallback}
}

// Get returns the cached value for key, checking memory first and the
// fallback second. Expired entries are evicted from both layers.
func (c *Cache) Get(ctx context.Context, key string) (string, bool) {
	now := time.Now()

	c.mu.Lock()
	e, ok := c.entries[key]
	if ok && e.expired(now) {
		delete(c.entries, key)
		ok = false
	}
	c.mu.Unlock()
	if ok {
		hits.Inc()
		return e.Value, true
	}

	if c.fallback != nil {
		if raw, found := c.fallback.Get(ctx, key); found {
			var fe entry
			if err := json.Unmarshal([]byte(raw), &fe); err == nil && !fe.expired(now) {
				c.mu.Lock()
				c.entries[key] = fe
				c.mu.Unlock()
				hits.Inc()
				return fe.Value, true
			}
			_ = c.fallback.Del(ctx, key)
		}
	}

	misses.Inc()
	return "", false
}

// Set writes both layers with the given TTL.
func (c *Cache) Set(ctx context.Context, key, value string, ttl time.Duration) {
	e := entry{Value: value, ExpiresAt: time.Now().Add(ttl).UnixMilli()}

	c.mu.Lock()
	c.entries[key] = e
	c.mu.Unlock()

	if c.fallback != nil {
		if raw, err := json.Marshal(e); err == nil {
			_ = c.fallback.Set(ctx, key, string(raw), ttl)
		}
	}
}

// Invalidate removes key from both layers. Called after every write to an
// entity so the next read bypasses the stale copy.
func (c *Cache) Invalidate(ctx context.Context, key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()

	if c.fallback != nil {
		_ = c.fallback.Del(ctx, key)
	}
}
