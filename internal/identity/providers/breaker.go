package providers

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"kycgate/internal/identity/models"
	"kycgate/pkg/platform/circuit"
)

// DefaultProbeInterval is how often an open breaker lets a call through.
const DefaultProbeInterval = 10 * time.Second

// BreakerClient stops calling a provider that keeps timing out or failing.
// Only retryable failures count against the provider; a well-formed
// rejection such as not_found means it is up.
type BreakerClient struct {
	next          Client
	breaker       *circuit.Breaker
	probeInterval time.Duration
	now           func() time.Time
	logger        *slog.Logger

	mu        sync.Mutex
	nextProbe time.Time
}

type BreakerOption func(*BreakerClient)

func WithProbeInterval(d time.Duration) BreakerOption {
	return func(c *BreakerClient) {
		if d > 0 {
			c.probeInterval = d
		}
	}
}

func WithBreakerClock(now func() time.Time) BreakerOption {
	return func(c *BreakerClient) {
		c.now = now
	}
}

func WithBreakerLogger(l *slog.Logger) BreakerOption {
	return func(c *BreakerClient) {
		c.logger = l
	}
}

// WithBreaker wraps next with breaker.
func WithBreaker(next Client, breaker *circuit.Breaker, opts ...BreakerOption) *BreakerClient {
	c := &BreakerClient{
		next:          next,
		breaker:       breaker,
		probeInterval: DefaultProbeInterval,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *BreakerClient) ID() string { return c.next.ID() }

func (c *BreakerClient) AccountsByBVN(ctx context.Context, bvn string) (*models.AccountsEnvelope, error) {
	return guarded(ctx, c, OpAccountsByBVN, func(ctx context.Context) (*models.AccountsEnvelope, error) {
		return c.next.AccountsByBVN(ctx, bvn)
	})
}

func (c *BreakerClient) ConfirmNUBAN(ctx context.Context, nuban, bank, bvn string) (*models.NUBANEnvelope, error) {
	return guarded(ctx, c, OpConfirmNUBAN, func(ctx context.Context) (*models.NUBANEnvelope, error) {
		return c.next.ConfirmNUBAN(ctx, nuban, bank, bvn)
	})
}

func (c *BreakerClient) ConfirmBVN(ctx context.Context, dob, bvn string) (*models.BVNEnvelope, error) {
	return guarded(ctx, c, OpConfirmBVN, func(ctx context.Context) (*models.BVNEnvelope, error) {
		return c.next.ConfirmBVN(ctx, dob, bvn)
	})
}

func guarded[T any](ctx context.Context, c *BreakerClient, op string, call func(context.Context) (T, error)) (T, error) {
	if !c.allow() {
		var zero T
		return zero, NewProviderError(ErrorProviderOutage, c.next.ID(), op, "provider temporarily unavailable", nil)
	}

	out, err := call(ctx)
	if err != nil && IsRetryable(err) {
		_, change := c.breaker.RecordFailure()
		c.schedule()
		if change.Opened {
			c.log(ctx, "provider circuit opened", op)
		}
		return out, err
	}
	if _, change := c.breaker.RecordSuccess(); change.Closed {
		c.log(ctx, "provider circuit closed", op)
	}
	return out, err
}

// allow admits every call while closed and one call per probe interval while open.
func (c *BreakerClient) allow() bool {
	if !c.breaker.IsOpen() {
		return true
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	if now.Before(c.nextProbe) {
		return false
	}
	c.nextProbe = now.Add(c.probeInterval)
	return true
}

func (c *BreakerClient) schedule() {
	if !c.breaker.IsOpen() {
		return
	}
	c.mu.Lock()
	c.nextProbe = c.now().Add(c.probeInterval)
	c.mu.Unlock()
}

func (c *BreakerClient) log(ctx context.Context, msg, op string) {
	if c.logger == nil {
		return
	}
	c.logger.WarnContext(ctx, msg,
		"breaker", c.breaker.Name(),
		"provider", c.next.ID(),
		"operation", op,
	)
}
