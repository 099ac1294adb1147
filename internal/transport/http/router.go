package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"kycgate/internal/platform/health"
	"kycgate/pkg/platform/middleware/metadata"
	"kycgate/pkg/platform/middleware/request"
	"kycgate/pkg/platform/middleware/requesttime"
)

const (
	// MaxBodyBytes caps request bodies; every public payload is a handful of short strings.
	MaxBodyBytes = 1 << 20
	// RequestTimeout leaves room for three sequential provider calls.
	RequestTimeout = 45 * time.Second
)

// Routes is implemented by feature handlers that mount their own endpoints.
type Routes interface {
	Register(r chi.Router)
}

// Deps bundles what the router needs from main.
type Deps struct {
	Logger   *slog.Logger
	Registry *prometheus.Registry
	Health   *health.Handler
	Features []Routes
}

// NewRouter wires the middleware stack, probes, metrics and feature routes.
func NewRouter(deps Deps) http.Handler {
	reg := deps.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	r := chi.NewRouter()

	r.Use(request.RequestID)
	r.Use(request.Recovery(deps.Logger))
	r.Use(request.Logger(deps.Logger))
	r.Use(requesttime.Middleware)
	r.Use(metadata.ClientMetadata)
	r.Use(request.LatencyMiddleware(request.NewMetrics(reg), routePattern))

	if deps.Health != nil {
		deps.Health.Register(r)
	}
	// Process-wide collectors (Go runtime, redis pool) live on the default registry.
	gatherers := prometheus.Gatherers{reg, prometheus.DefaultGatherer}
	r.Handle("/metrics", promhttp.HandlerFor(gatherers, promhttp.HandlerOpts{}))

	r.Group(func(api chi.Router) {
		api.Use(request.BodyLimit(MaxBodyBytes))
		api.Use(request.Timeout(RequestTimeout))
		api.Use(request.ContentTypeJSON)
		for _, f := range deps.Features {
			f.Register(api)
		}
	})

	return r
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		return rctx.RoutePattern()
	}
	return ""
}
