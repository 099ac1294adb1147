// Package pipeline runs the three dependent provider lookups that resolve a
// BVN to its full identity payload.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"kycgate/internal/identity/metrics"
	"kycgate/internal/identity/models"
	"kycgate/internal/identity/providers"
	"kycgate/internal/identity/tracer"
	"kycgate/internal/platform/logger"
	"kycgate/pkg/platform/privacy"
)

// State is a step of the lookup state machine.
type State string

const (
	StateInit            State = "INIT"
	StateAccountsFetched State = "ACCOUNTS_FETCHED"
	StateNUBANConfirmed  State = "NUBAN_CONFIRMED"
	StateBVNConfirmed    State = "BVN_CONFIRMED"
	StateDone            State = "DONE"
	StateFailed          State = "FAILED"
)

// Error reports the state the pipeline failed from and the step that failed.
// Err is models.ErrLookupFailed, models.ErrNoAccountsFound or a
// *providers.ProviderError.
type Error struct {
	State   State
	Step    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("pipeline failed at %s (%s): %v", e.State, e.Step, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Orchestrator runs INIT → ACCOUNTS_FETCHED → NUBAN_CONFIRMED → BVN_CONFIRMED → DONE.
// Each call needs the previous call's output, so steps never run concurrently.
type Orchestrator struct {
	client  providers.Client
	tracer  tracer.Tracer
	metrics *metrics.Metrics
	logger  *slog.Logger
	now     func() time.Time
}

type Option func(*Orchestrator)

func WithTracer(t tracer.Tracer) Option {
	return func(o *Orchestrator) { o.tracer = t }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(o *Orchestrator) { o.metrics = m }
}

func WithLogger(l *slog.Logger) Option {
	return func(o *Orchestrator) { o.logger = l }
}

func New(client providers.Client, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		client: client,
		tracer: tracer.NewNoop(),
		logger: logger.Discard(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// run tracks the current state of a single execution.
type run struct {
	o     *Orchestrator
	state State
	span  tracer.Span
}

// Run resolves bvn to the provider's identity payload. Any failure aborts
// immediately with *Error; nothing is retried.
func (o *Orchestrator) Run(ctx context.Context, bvn string) (result models.BVNDetails, err error) {
	ctx, span := o.tracer.Start(ctx, tracer.SpanPipelineRun,
		tracer.String(tracer.AttrBVNHash, privacy.ShortHashBVN(bvn)),
		tracer.String(tracer.AttrProvider, o.client.ID()),
	)
	r := &run{o: o, state: StateInit, span: span}
	defer func() {
		span.SetAttributes(tracer.String(tracer.AttrState, string(r.state)))
		span.End(err)
	}()

	accounts, err := r.fetchAccounts(ctx, bvn)
	if err != nil {
		return nil, err
	}

	// First account wins; no ranking is applied.
	dob, err := r.confirmNUBAN(ctx, accounts[0], bvn)
	if err != nil {
		return nil, err
	}

	details, err := r.confirmBVN(ctx, dob, bvn)
	if err != nil {
		return nil, err
	}

	r.advance(StateDone)
	return details, nil
}

func (r *run) fetchAccounts(ctx context.Context, bvn string) ([]models.Account, error) {
	var env *models.AccountsEnvelope
	err := r.step(ctx, tracer.SpanAccountsByBVN, providers.OpAccountsByBVN, func(ctx context.Context) (err error) {
		env, err = r.o.client.AccountsByBVN(ctx, bvn)
		return err
	})
	if err != nil {
		return nil, err
	}
	if !env.OK() {
		return nil, r.fail(providers.OpAccountsByBVN, env.Message, models.ErrLookupFailed)
	}
	if len(env.Data.Response) == 0 {
		return nil, r.fail(providers.OpAccountsByBVN, env.Message, models.ErrNoAccountsFound)
	}
	r.span.SetAttributes(tracer.Int64(tracer.AttrAccountCount, int64(len(env.Data.Response))))
	r.advance(StateAccountsFetched)
	return env.Data.Response, nil
}

func (r *run) confirmNUBAN(ctx context.Context, account models.Account, bvn string) (string, error) {
	var env *models.NUBANEnvelope
	err := r.step(ctx, tracer.SpanConfirmNUBAN, providers.OpConfirmNUBAN, func(ctx context.Context) (err error) {
		env, err = r.o.client.ConfirmNUBAN(ctx, account.AccountNo, account.Bank, bvn)
		return err
	})
	if err != nil {
		return "", err
	}
	if !env.OK() {
		return "", r.fail(providers.OpConfirmNUBAN, env.Message, models.ErrLookupFailed)
	}
	r.advance(StateNUBANConfirmed)
	return env.Data.Response.Birthdate, nil
}

func (r *run) confirmBVN(ctx context.Context, dob, bvn string) (models.BVNDetails, error) {
	var env *models.BVNEnvelope
	err := r.step(ctx, tracer.SpanConfirmBVN, providers.OpConfirmBVN, func(ctx context.Context) (err error) {
		env, err = r.o.client.ConfirmBVN(ctx, dob, bvn)
		return err
	})
	if err != nil {
		return nil, err
	}
	if !env.OK() {
		return nil, r.fail(providers.OpConfirmBVN, env.Message, models.ErrLookupFailed)
	}
	r.advance(StateBVNConfirmed)
	return env.Data.Response, nil
}

// step times and traces one provider call, converting a call error into a
// pipeline failure from the current state.
func (r *run) step(ctx context.Context, spanName, op string, call func(context.Context) error) error {
	ctx, span := r.o.tracer.Start(ctx, spanName)
	start := r.o.now()
	err := call(ctx)
	r.o.metrics.ObserveStep(op, r.o.now().Sub(start).Seconds())
	span.End(err)
	if err != nil {
		return r.fail(op, "", err)
	}
	return nil
}

func (r *run) fail(step, message string, cause error) error {
	failed := &Error{State: r.state, Step: step, Message: message, Err: cause}
	category := FailureCategory(cause)
	r.o.metrics.RecordPipelineFailure(string(r.state), category)
	r.o.logger.Warn("identity pipeline failed",
		"state", string(r.state),
		"step", step,
		"category", category,
		"error", cause,
	)
	r.state = StateFailed
	return failed
}

// Failure categories for lookups the provider answered but did not confirm.
const (
	CategoryNoAccounts   = "no_accounts"
	CategoryNotConfirmed = "not_confirmed"
)

// FailureCategory labels a step failure: taxonomy failures by name, provider
// errors by their normalized category.
func FailureCategory(err error) string {
	switch {
	case errors.Is(err, models.ErrNoAccountsFound):
		return CategoryNoAccounts
	case errors.Is(err, models.ErrLookupFailed):
		return CategoryNotConfirmed
	default:
		return string(providers.GetCategory(err))
	}
}

func (r *run) advance(next State) {
	r.span.AddEvent(tracer.EventStateChanged,
		tracer.String("from", string(r.state)),
		tracer.String("to", string(next)),
	)
	r.state = next
}
