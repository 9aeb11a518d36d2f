package cache

import (
	"sync"
	"time"

	"github.com/center-assignment/internal/domain"
	"github.com/center-assignment/internal/domain/repository"
	"go.uber.org/zap"
)

type entry struct {
	value    domain.DistanceResult
	storedAt time.Time
}

type distanceCache struct {
	ttl    time.Duration
	now    func() time.Time
	logger *zap.Logger

	mu      sync.Mutex
	entries map[string]entry
	hits    int64
	misses  int64
	expired int64
}

// Option configures the distance cache
type Option func(*distanceCache)

// WithClock replaces time.Now, for tests
func WithClock(now func() time.Time) Option {
	return func(c *distanceCache) {
		c.now = now
	}
}

// NewDistanceCache creates an in-memory TTL cache. Expired entries are evicted lazily on lookup.
func NewDistanceCache(ttl time.Duration, logger *zap.Logger, opts ...Option) repository.DistanceCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &distanceCache{
		ttl:     ttl,
		now:     time.Now,
		logger:  logger,
		entries: make(map[string]entry),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *distanceCache) Get(key string) (domain.DistanceResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		c.misses++
		return domain.DistanceResult{}, false
	}
	if c.now().Sub(e.storedAt) >= c.ttl {
		delete(c.entries, key)
		c.expired++
		c.misses++
		c.logger.Debug("Cache entry expired", zap.String("key", key))
		return domain.DistanceResult{}, false
	}

	c.hits++
	return e.value, true
}

func (c *distanceCache) Set(key string, value domain.DistanceResult) {
	c.mu.Lock()
	c.entries[key] = entry{value: value, storedAt: c.now()}
	c.mu.Unlock()
}

func (c *distanceCache) Clear() {
	c.mu.Lock()
	n := len(c.entries)
	c.entries = make(map[string]entry)
	c.mu.Unlock()

	c.logger.Info("Distance cache cleared", zap.Int("entries", n))
}

func (c *distanceCache) Stats() repository.CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return repository.CacheStats{
		Size:    len(c.entries),
		TTLMs:   c.ttl.Milliseconds(),
		Hits:    c.hits,
		Misses:  c.misses,
		Expired: c.expired,
	}
}
