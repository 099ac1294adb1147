package store

import (
	"context"
	"fmt"
	"maps"
	"sync"
	"time"

	"kycgate/internal/identity/metrics"
	"kycgate/internal/identity/models"
	"kycgate/pkg/platform/sentinel"
)

type cacheEntry struct {
	details   models.BVNDetails
	expiresAt time.Time
}

// InMemoryLookupCache caches pipeline results per BVN until the TTL passes.
type InMemoryLookupCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration
	metrics *metrics.Metrics
	now     func() time.Time
}

type MemoryCacheOption func(*InMemoryLookupCache)

// WithClock overrides time.Now, for expiry tests.
func WithClock(now func() time.Time) MemoryCacheOption {
	return func(c *InMemoryLookupCache) { c.now = now }
}

// NewInMemoryLookupCache builds a cache; metrics may be nil.
func NewInMemoryLookupCache(ttl time.Duration, m *metrics.Metrics, opts ...MemoryCacheOption) *InMemoryLookupCache {
	c := &InMemoryLookupCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		metrics: m,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *InMemoryLookupCache) Find(_ context.Context, bvn string) (models.BVNDetails, error) {
	c.mu.RLock()
	entry, ok := c.entries[lookupKey(bvn)]
	c.mu.RUnlock()

	if !ok || !c.now().Before(entry.expiresAt) {
		c.metrics.RecordCacheMiss()
		return nil, fmt.Errorf("lookup cache: %w", sentinel.ErrNotFound)
	}
	c.metrics.RecordCacheHit()
	return maps.Clone(entry.details), nil
}

func (c *InMemoryLookupCache) Save(_ context.Context, bvn string, details models.BVNDetails) error {
	if details == nil {
		return fmt.Errorf("lookup details are required")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[lookupKey(bvn)] = cacheEntry{details: maps.Clone(details), expiresAt: c.now().Add(c.ttl)}
	return nil
}
