package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	kstrings "kycgate/pkg/platform/strings"
)

// Server captures process level configuration.
type Server struct {
	Addr          string
	Environment   string
	SandboxMode   bool
	SeedCustomers bool
	Provider      ProviderConfig
	Database      DatabaseConfig
	Redis         RedisConfig
	Kafka         KafkaConfig
}

// ProviderConfig configures the KYC provider client.
type ProviderConfig struct {
	BaseURL  string
	Token    string
	Timeout  time.Duration
	CacheTTL time.Duration
}

// DatabaseConfig configures the Postgres pool. Driver is "pgx" or "postgres" (lib/pq).
type DatabaseConfig struct {
	URL             string
	Driver          string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// RedisConfig configures the provider lookup cache connection.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig configures the audit event producer.
type KafkaConfig struct {
	Brokers         []string
	AuditTopic      string
	Acks            string
	Retries         int
	DeliveryTimeout time.Duration
}

// EnvironmentTest is the ENVIRONMENT value that switches the provider to fixtures.
const EnvironmentTest = "TEST"

// DefaultAuditTopic is where identity audit events are published.
const DefaultAuditTopic = "kycgate.identity.audit"

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	return fromLookup(os.Getenv)
}

func fromLookup(getenv func(string) string) Server {
	env := strings.ToUpper(strings.TrimSpace(getenv("ENVIRONMENT")))

	return Server{
		Addr:          stringOr(getenv("KYCGATE_ADDR"), ":8080"),
		Environment:   env,
		SandboxMode:   env == EnvironmentTest || boolOr(getenv("SANDBOX_MODE"), false),
		SeedCustomers: boolOr(getenv("SEED_CUSTOMERS"), false),
		Provider: ProviderConfig{
			BaseURL:  strings.TrimRight(getenv("OKRA_URL"), "/"),
			Token:    getenv("OKRA_TOKEN"),
			Timeout:  durationOr(getenv("OKRA_TIMEOUT"), 10*time.Second),
			CacheTTL: durationOr(getenv("PROVIDER_CACHE_TTL"), 5*time.Minute),
		},
		Database: DatabaseConfig{
			URL:             getenv("DATABASE_URL"),
			Driver:          stringOr(getenv("DATABASE_DRIVER"), "pgx"),
			MaxOpenConns:    intOr(getenv("DATABASE_MAX_OPEN_CONNS"), 25),
			MaxIdleConns:    intOr(getenv("DATABASE_MAX_IDLE_CONNS"), 5),
			ConnMaxLifetime: durationOr(getenv("DATABASE_CONN_MAX_LIFETIME"), 5*time.Minute),
		},
		Redis: RedisConfig{
			URL:          getenv("REDIS_URL"),
			PoolSize:     intOr(getenv("REDIS_POOL_SIZE"), 10),
			MinIdleConns: intOr(getenv("REDIS_MIN_IDLE_CONNS"), 2),
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		Kafka: KafkaConfig{
			Brokers:         kstrings.DedupeAndTrim(strings.Split(getenv("KAFKA_BROKERS"), ",")),
			AuditTopic:      stringOr(getenv("KAFKA_AUDIT_TOPIC"), DefaultAuditTopic),
			Acks:            stringOr(getenv("KAFKA_ACKS"), "all"),
			Retries:         3,
			DeliveryTimeout: 30 * time.Second,
		},
	}
}

func stringOr(v, fallback string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return fallback
}

func boolOr(v string, fallback bool) bool {
	if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
		return b
	}
	return fallback
}

func intOr(v string, fallback int) int {
	if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && n > 0 {
		return n
	}
	return fallback
}

func durationOr(v string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(strings.TrimSpace(v)); err == nil && d > 0 {
		return d
	}
	return fallback
}
