package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"kycgate/internal/identity/metrics"
	"kycgate/internal/identity/models"
	"kycgate/pkg/platform/privacy"
	"kycgate/pkg/platform/sentinel"
)

const redisLookupKeyPrefix = "kycgate:lookup:"

// RedisLookupCache caches pipeline results in Redis with TTL eviction. Keys
// hold the BVN hash, never the BVN.
type RedisLookupCache struct {
	client  *redis.Client
	ttl     time.Duration
	metrics *metrics.Metrics
}

// NewRedisLookupCache constructs a Redis-backed lookup cache; metrics may be nil.
func NewRedisLookupCache(client *redis.Client, ttl time.Duration, m *metrics.Metrics) *RedisLookupCache {
	return &RedisLookupCache{client: client, ttl: ttl, metrics: m}
}

// Find returns a wrapped sentinel.ErrNotFound on a miss.
func (c *RedisLookupCache) Find(ctx context.Context, bvn string) (models.BVNDetails, error) {
	data, err := c.client.Get(ctx, lookupKey(bvn)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			c.metrics.RecordCacheMiss()
			return nil, fmt.Errorf("lookup cache: %w", sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find lookup cache: %w", err)
	}

	var details models.BVNDetails
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&details); err != nil {
		return nil, fmt.Errorf("decode lookup cache: %w", err)
	}
	c.metrics.RecordCacheHit()
	return details, nil
}

func (c *RedisLookupCache) Save(ctx context.Context, bvn string, details models.BVNDetails) error {
	if details == nil {
		return fmt.Errorf("lookup details are required")
	}
	payload, err := json.Marshal(details)
	if err != nil {
		return fmt.Errorf("encode lookup cache: %w", err)
	}
	if err := c.client.Set(ctx, lookupKey(bvn), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("save lookup cache: %w", err)
	}
	return nil
}

func lookupKey(bvn string) string {
	return redisLookupKeyPrefix + privacy.HashBVN(bvn)
}
