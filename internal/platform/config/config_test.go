package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func lookup(values map[string]string) func(string) string {
	return func(k string) string { return values[k] }
}

func TestFromLookup(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := fromLookup(lookup(nil))

		assert.Equal(t, ":8080", cfg.Addr)
		assert.False(t, cfg.SandboxMode)
		assert.Equal(t, 10*time.Second, cfg.Provider.Timeout)
		assert.Equal(t, 5*time.Minute, cfg.Provider.CacheTTL)
		assert.Equal(t, "pgx", cfg.Database.Driver)
		assert.Equal(t, 10, cfg.Redis.PoolSize)
		assert.Empty(t, cfg.Kafka.Brokers)
		assert.Equal(t, DefaultAuditTopic, cfg.Kafka.AuditTopic)
		assert.Equal(t, "all", cfg.Kafka.Acks)
	})

	t.Run("TEST environment enables sandbox", func(t *testing.T) {
		cfg := fromLookup(lookup(map[string]string{"ENVIRONMENT": "test"}))
		assert.True(t, cfg.SandboxMode)
		assert.Equal(t, EnvironmentTest, cfg.Environment)
	})

	t.Run("SANDBOX_MODE flag enables sandbox", func(t *testing.T) {
		cfg := fromLookup(lookup(map[string]string{"ENVIRONMENT": "production", "SANDBOX_MODE": "true"}))
		assert.True(t, cfg.SandboxMode)
	})

	t.Run("overrides", func(t *testing.T) {
		cfg := fromLookup(lookup(map[string]string{
			"KYCGATE_ADDR":       ":9090",
			"OKRA_URL":           "https://api.okra.ng/v2/",
			"OKRA_TOKEN":         "tok",
			"OKRA_TIMEOUT":       "3s",
			"PROVIDER_CACHE_TTL": "1m",
			"DATABASE_URL":       "postgres://localhost/kycgate",
			"DATABASE_DRIVER":    "postgres",
			"REDIS_POOL_SIZE":    "32",
			"KAFKA_BROKERS":      " b1:9092, b2:9092 ,b1:9092,",
			"KAFKA_AUDIT_TOPIC":  "audit",
			"SEED_CUSTOMERS":     "1",
		}))

		assert.Equal(t, ":9090", cfg.Addr)
		assert.Equal(t, "https://api.okra.ng/v2", cfg.Provider.BaseURL)
		assert.Equal(t, "tok", cfg.Provider.Token)
		assert.Equal(t, 3*time.Second, cfg.Provider.Timeout)
		assert.Equal(t, time.Minute, cfg.Provider.CacheTTL)
		assert.Equal(t, "postgres", cfg.Database.Driver)
		assert.Equal(t, 32, cfg.Redis.PoolSize)
		assert.Equal(t, []string{"b1:9092", "b2:9092"}, cfg.Kafka.Brokers)
		assert.Equal(t, "audit", cfg.Kafka.AuditTopic)
		assert.True(t, cfg.SeedCustomers)
	})

	t.Run("invalid values fall back", func(t *testing.T) {
		cfg := fromLookup(lookup(map[string]string{
			"OKRA_TIMEOUT":    "soon",
			"REDIS_POOL_SIZE": "-1",
			"SANDBOX_MODE":    "maybe",
		}))
		assert.Equal(t, 10*time.Second, cfg.Provider.Timeout)
		assert.Equal(t, 10, cfg.Redis.PoolSize)
		assert.False(t, cfg.SandboxMode)
	})
}
