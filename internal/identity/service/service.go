// Package service verifies customer identities: it runs the provider pipeline,
// merges the result with the stored customer and attaches it at most once.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"kycgate/internal/identity/merge"
	"kycgate/internal/identity/metrics"
	"kycgate/internal/identity/models"
	"kycgate/internal/identity/tracer"
	"kycgate/internal/platform/logger"
	"kycgate/pkg/platform/audit"
	"kycgate/pkg/platform/privacy"
	"kycgate/pkg/platform/sentinel"
	"kycgate/pkg/random"
	"kycgate/pkg/requestcontext"
)

type Service struct {
	store     CustomerStore
	pipeline  Pipeline
	client    ProviderClient
	cache     LookupCache
	merger    *merge.Engine
	publisher audit.Publisher
	tracer    tracer.Tracer
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

type Option func(*Service)

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithLookupCache puts a cache in front of the pipeline.
func WithLookupCache(c LookupCache) Option {
	return func(s *Service) { s.cache = c }
}

func WithAuditPublisher(p audit.Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

func WithTracer(t tracer.Tracer) Option {
	return func(s *Service) { s.tracer = t }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithCodeGenerator replaces the random source for identity codes.
func WithCodeGenerator(g random.Generator) Option {
	return func(s *Service) { s.merger = merge.New(g) }
}

func New(store CustomerStore, pipeline Pipeline, client ProviderClient, opts ...Option) *Service {
	s := &Service{
		store:    store,
		pipeline: pipeline,
		client:   client,
		merger:   merge.New(nil),
		tracer:   tracer.NewNoop(),
		logger:   logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// VerifyCustomerIdentity resolves bvn through the provider and attaches the
// merged identity to the customer identified by code.
//
// A customer that already carries an identity gets it back unchanged and
// nothing is written. A BVN already attached to a different customer fails
// with models.ErrDuplicateIdentity. All failures return a not_found domain
// error except store failures, which are internal.
//
// The ownership check and the guarded write are separate statements. Two
// concurrent calls for the same customer with different BVNs can both pass
// the check; the later write wins.
func (s *Service) VerifyCustomerIdentity(ctx context.Context, code, bvn string) (result *models.VerificationResult, err error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanVerify,
		tracer.String(tracer.AttrCustomerCode, code),
		tracer.String(tracer.AttrBVNHash, privacy.ShortHashBVN(bvn)),
	)
	defer func() {
		s.metrics.RecordVerification(outcome(result, err))
		span.End(err)
	}()

	details, err := s.lookup(ctx, bvn)
	if err != nil {
		return nil, translateVerificationError(err)
	}

	if err := s.ensureUnclaimed(ctx, code, bvn); err != nil {
		return nil, translateVerificationError(err)
	}

	customer, err := s.store.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, translateVerificationError(models.ErrCustomerNotFound)
		}
		return nil, translateVerificationError(fmt.Errorf("load customer: %w", err))
	}

	if customer.HasIdentity() {
		span.SetAttributes(tracer.Bool(tracer.AttrReused, true))
		result = &models.VerificationResult{Code: customer.Code, Identity: customer.Identity, Reused: true}
		s.emit(ctx, span, audit.ActionIdentityReused, bvn, result)
		return result, nil
	}

	identity := s.merger.Merge(customer, bvn, details)
	if err := s.store.ConditionalAttachIdentity(ctx, code, identity.BVN, identity); err != nil {
		return nil, translateVerificationError(fmt.Errorf("attach identity: %w", err))
	}

	stored, err := s.store.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, translateVerificationError(models.ErrCustomerNotFound)
		}
		return nil, translateVerificationError(fmt.Errorf("reload customer: %w", err))
	}
	if !stored.HasIdentity() {
		return nil, translateVerificationError(fmt.Errorf("reload customer %s: identity was not attached", code))
	}

	// The guarded write is a no-op when a concurrent request attached first;
	// the stored identity then is not the one merged here.
	reused := stored.Identity.Code != identity.Code
	result = &models.VerificationResult{Code: stored.Code, Identity: stored.Identity, Reused: reused}
	if reused {
		span.SetAttributes(tracer.Bool(tracer.AttrReused, true))
		s.emit(ctx, span, audit.ActionIdentityReused, bvn, result)
		return result, nil
	}

	s.logger.InfoContext(ctx, "identity attached",
		"request_id", requestcontext.RequestID(ctx),
		"customer_code", code,
		"bvn", privacy.RedactBVN(bvn),
		"identity", identityCode(stored.Identity),
	)
	s.emit(ctx, span, audit.ActionIdentityVerified, bvn, result)
	return result, nil
}

// CheckIdentity runs the pipeline (or serves a cached result) without touching
// any customer.
func (s *Service) CheckIdentity(ctx context.Context, bvn string) (models.BVNDetails, error) {
	details, err := s.lookup(ctx, bvn)
	if err != nil {
		return nil, translateVerificationError(err)
	}
	return details, nil
}

func (s *Service) AccountsByBVN(ctx context.Context, bvn string) (*models.AccountsEnvelope, error) {
	env, err := s.client.AccountsByBVN(ctx, bvn)
	if err != nil {
		return nil, translateVerificationError(err)
	}
	return env, nil
}

func (s *Service) ConfirmNUBAN(ctx context.Context, nuban, bank, bvn string) (*models.NUBANEnvelope, error) {
	env, err := s.client.ConfirmNUBAN(ctx, nuban, bank, bvn)
	if err != nil {
		return nil, translateVerificationError(err)
	}
	return env, nil
}

func (s *Service) ConfirmBVN(ctx context.Context, dob, bvn string) (*models.BVNEnvelope, error) {
	env, err := s.client.ConfirmBVN(ctx, dob, bvn)
	if err != nil {
		return nil, translateVerificationError(err)
	}
	return env, nil
}

// lookup serves from the cache when it can. A miss runs the pipeline; other
// cache read errors abort. Failing to store a fresh result is only logged.
func (s *Service) lookup(ctx context.Context, bvn string) (models.BVNDetails, error) {
	if s.cache != nil {
		cached, err := s.cache.Find(ctx, bvn)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, sentinel.ErrNotFound) {
			return nil, fmt.Errorf("lookup cache: %w", err)
		}
	}

	details, err := s.pipeline.Run(ctx, bvn)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Save(ctx, bvn, details); err != nil {
			s.logger.WarnContext(ctx, "failed to cache identity lookup",
				"request_id", requestcontext.RequestID(ctx),
				"bvn", privacy.RedactBVN(bvn),
				"error", err,
			)
		}
	}
	return details, nil
}

// ensureUnclaimed fails when bvn is attached to a customer other than code.
func (s *Service) ensureUnclaimed(ctx context.Context, code, bvn string) error {
	existing, err := s.store.FindIdentityByBVN(ctx, bvn)
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("find identity by bvn: %w", err)
	case existing.OwnerCode != code:
		return models.ErrDuplicateIdentity
	default:
		return nil
	}
}

// emit publishes an audit event. Delivery failures are logged and dropped.
func (s *Service) emit(ctx context.Context, span tracer.Span, action audit.Action, bvn string, result *models.VerificationResult) {
	if s.publisher == nil {
		return
	}
	event := audit.Event{
		Action:        action,
		Timestamp:     requestcontext.Now(ctx),
		CustomerCode:  result.Code,
		IdentityCode:  identityCode(result.Identity),
		SubjectIDHash: privacy.HashBVN(bvn),
		RequestID:     requestcontext.RequestID(ctx),
	}
	if result.Identity != nil {
		event.OnWashlist = result.Identity.OnWashlist
	}
	if err := s.publisher.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to emit audit event",
			"request_id", event.RequestID,
			"action", action,
			"error", err,
		)
		return
	}
	span.AddEvent(tracer.EventAuditEmitted, tracer.String("action", string(action)))
}

func outcome(result *models.VerificationResult, err error) string {
	switch {
	case err == nil && result != nil && result.Reused:
		return metrics.OutcomeReused
	case err == nil:
		return metrics.OutcomeVerified
	case errors.Is(err, models.ErrDuplicateIdentity), errors.Is(err, sentinel.ErrConflict):
		return metrics.OutcomeDuplicate
	case errors.Is(err, models.ErrCustomerNotFound):
		return metrics.OutcomeNotFound
	default:
		return metrics.OutcomeFailed
	}
}

func identityCode(identity *models.Identity) string {
	if identity == nil {
		return ""
	}
	return identity.Code
}
