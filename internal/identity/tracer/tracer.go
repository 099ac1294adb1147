// Package tracer is a small tracing abstraction for the identity module, so
// pipeline and service code never import OpenTelemetry directly.
//
// Implementations:
//   - NoopTracer: tests
//   - OTelTracer: OpenTelemetry adapter for production
package tracer

import (
	"context"
	"time"
)

// Span represents an active trace span.
type Span interface {
	// End completes the span, marking it failed when err is non-nil.
	// End must be called exactly once, typically via defer.
	End(err error)
	SetAttributes(attrs ...Attribute)
	AddEvent(name string, attrs ...Attribute)
}

// Tracer creates spans. Implementations must be safe for concurrent use.
type Tracer interface {
	Start(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span)
}

// Attribute is a key-value pair attached to spans.
type Attribute struct {
	Key   string
	Value any
}

func String(key, value string) Attribute {
	return Attribute{Key: key, Value: value}
}

func Bool(key string, value bool) Attribute {
	return Attribute{Key: key, Value: value}
}

func Int64(key string, value int64) Attribute {
	return Attribute{Key: key, Value: value}
}

// Duration creates a duration attribute in milliseconds.
func Duration(key string, value time.Duration) Attribute {
	return Attribute{Key: key, Value: value.Milliseconds()}
}

// Span names.
const (
	SpanVerify        = "identity.verify"
	SpanPipelineRun   = "pipeline.run"
	SpanAccountsByBVN = "pipeline.accounts_by_bvn"
	SpanConfirmNUBAN  = "pipeline.confirm_nuban"
	SpanConfirmBVN    = "pipeline.confirm_bvn"
)

// Attribute keys. BVNs only ever appear hashed.
const (
	AttrBVNHash      = "bvn.hash"
	AttrCustomerCode = "customer.code"
	AttrProvider     = "provider.id"
	AttrState        = "pipeline.state"
	AttrAccountCount = "accounts.count"
	AttrCacheHit     = "cache.hit"
	AttrReused       = "identity.reused"
)

// Event names.
const (
	EventAuditEmitted = "audit.emitted"
	EventStateChanged = "pipeline.state_changed"
)
