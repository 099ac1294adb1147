package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"kycgate/internal/identity/handler"
	"kycgate/internal/identity/metrics"
	"kycgate/internal/identity/pipeline"
	"kycgate/internal/identity/providers"
	"kycgate/internal/identity/providers/okra"
	"kycgate/internal/identity/providers/sandbox"
	"kycgate/internal/identity/service"
	"kycgate/internal/identity/store"
	"kycgate/internal/identity/tracer"
	"kycgate/internal/platform/config"
	"kycgate/internal/platform/database"
	"kycgate/internal/platform/health"
	"kycgate/internal/platform/httpserver"
	"kycgate/internal/platform/kafka/producer"
	"kycgate/internal/platform/logger"
	"kycgate/internal/platform/redis"
	httptransport "kycgate/internal/transport/http"
	audit "kycgate/pkg/platform/audit"
	"kycgate/pkg/platform/audit/publisher"
	"kycgate/pkg/platform/circuit"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.FromEnv()
	log := logger.New()

	if err := run(cfg, log); err != nil {
		log.Error("kycgate stopped", "error", err)
		os.Exit(1)
	}
}

// run wires dependencies and blocks until a signal arrives or a component fails.
func run(cfg config.Server, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	identityMetrics := metrics.New(reg)
	probes := health.New(cfg.Environment, cfg.SandboxMode)

	client, err := buildProvider(cfg, log)
	if err != nil {
		return err
	}

	customers, closeStore, err := buildStore(ctx, cfg, log, probes)
	if err != nil {
		return err
	}
	defer closeStore()

	rc, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	var cache service.LookupCache = store.NewInMemoryLookupCache(cfg.Provider.CacheTTL, identityMetrics)
	if rc != nil {
		defer rc.Close() //nolint:errcheck // shutdown
		probes.RegisterCheck("redis", rc.Health)
		cache = store.NewRedisLookupCache(rc.Client, cfg.Provider.CacheTTL, identityMetrics)
	}

	auditor, closeAudit, err := buildAuditPublisher(ctx, cfg, log, probes)
	if err != nil {
		return err
	}
	defer closeAudit()

	trace := tracer.NewOTel()
	orchestrator := pipeline.New(client,
		pipeline.WithTracer(trace),
		pipeline.WithMetrics(identityMetrics),
		pipeline.WithLogger(log),
	)
	svc := service.New(customers, orchestrator, client,
		service.WithLogger(log),
		service.WithLookupCache(cache),
		service.WithAuditPublisher(auditor),
		service.WithTracer(trace),
		service.WithMetrics(identityMetrics),
	)

	router := httptransport.NewRouter(httptransport.Deps{
		Logger:   log,
		Registry: reg,
		Health:   probes,
		Features: []httptransport.Routes{handler.New(svc, log)},
	})
	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting kycgate",
			"addr", cfg.Addr,
			"provider", client.ID(),
			"environment", cfg.Environment,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	if rc != nil {
		g.Go(func() error {
			return rc.RunPoolStats(gctx, 15*time.Second)
		})
	}

	return g.Wait()
}

func buildProvider(cfg config.Server, log *slog.Logger) (providers.Client, error) {
	if cfg.SandboxMode {
		return sandbox.New(), nil
	}
	if cfg.Provider.BaseURL == "" {
		return nil, errors.New("OKRA_URL is required outside sandbox mode")
	}
	live := okra.New(okra.Config{
		BaseURL: cfg.Provider.BaseURL,
		Token:   cfg.Provider.Token,
		Timeout: cfg.Provider.Timeout,
	})
	return providers.WithBreaker(live, circuit.New(okra.ProviderID), providers.WithBreakerLogger(log)), nil
}

// buildStore picks Postgres when DATABASE_URL is set and the in-memory store otherwise.
func buildStore(ctx context.Context, cfg config.Server, log *slog.Logger, probes *health.Handler) (service.CustomerStore, func(), error) {
	var (
		customers service.CustomerStore
		closeFn   = func() {}
	)

	pool, err := database.New(cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("connect database: %w", err)
	}
	if pool != nil {
		if err := database.Migrate(ctx, pool.DB()); err != nil {
			pool.Close() //nolint:errcheck // init failure
			return nil, nil, fmt.Errorf("migrate database: %w", err)
		}
		probes.RegisterCheck("database", pool.Health)
		customers = store.NewPostgres(pool.DB())
		closeFn = func() { pool.Close() } //nolint:errcheck // shutdown
	} else {
		log.Warn("DATABASE_URL not set, customers are kept in memory")
		customers = store.NewInMemoryStore()
	}

	if cfg.SeedCustomers || cfg.SandboxMode {
		creator, ok := customers.(store.Creator)
		if ok {
			if err := store.SeedDemoCustomers(ctx, creator); err != nil {
				closeFn()
				return nil, nil, fmt.Errorf("seed customers: %w", err)
			}
		}
	}
	return customers, closeFn, nil
}

// buildAuditPublisher returns a Kafka-backed publisher when brokers are configured.
func buildAuditPublisher(ctx context.Context, cfg config.Server, log *slog.Logger, probes *health.Handler) (audit.Publisher, func(), error) {
	if len(cfg.Kafka.Brokers) == 0 {
		return publisher.Noop{}, func() {}, nil
	}

	p, err := producer.New(cfg.Kafka, log)
	if err != nil {
		return nil, nil, fmt.Errorf("create kafka producer: %w", err)
	}
	if err := p.EnsureTopic(ctx, cfg.Kafka.AuditTopic, 3, 1); err != nil {
		log.Warn("could not ensure audit topic", "topic", cfg.Kafka.AuditTopic, "error", err)
	}
	probes.RegisterCheck("kafka", p.Health)

	return publisher.NewKafkaPublisher(p, cfg.Kafka.AuditTopic, publisher.WithLogger(log)),
		func() { p.Close() }, //nolint:errcheck // shutdown
		nil
}
