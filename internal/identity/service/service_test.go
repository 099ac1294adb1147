package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"kycgate/internal/identity/metrics"
	"kycgate/internal/identity/models"
	"kycgate/internal/identity/pipeline"
	"kycgate/internal/identity/providers"
	"kycgate/internal/identity/service/mocks"
	dErrors "kycgate/pkg/domain-errors"
	"kycgate/pkg/platform/audit"
	"kycgate/pkg/platform/audit/publisher"
	"kycgate/pkg/platform/privacy"
	"kycgate/pkg/platform/sentinel"
	"kycgate/pkg/random"
	"kycgate/pkg/requestcontext"
)

const testBVN = "22338485291"

type ServiceSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	store    *mocks.MockCustomerStore
	pipeline *mocks.MockPipeline
	cache    *mocks.MockLookupCache
	client   *mocks.MockProviderClient
	recorder *publisher.Recorder
	metrics  *metrics.Metrics
	service  *Service
	ctx      context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.store = mocks.NewMockCustomerStore(s.ctrl)
	s.pipeline = mocks.NewMockPipeline(s.ctrl)
	s.cache = mocks.NewMockLookupCache(s.ctrl)
	s.client = mocks.NewMockProviderClient(s.ctrl)
	s.recorder = publisher.NewRecorder()
	s.metrics = metrics.New(prometheus.NewRegistry())
	s.service = New(s.store, s.pipeline, s.client,
		WithAuditPublisher(s.recorder),
		WithMetrics(s.metrics),
		WithCodeGenerator(random.Fixed("abc123")),
	)
	s.ctx = requestcontext.WithRequestID(context.Background(), "req-1")
}

func (s *ServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

func details() models.BVNDetails {
	return models.BVNDetails{
		"FirstName": "john",
		"LastName":  "doe",
		"Phone":     "2348135613401",
		"Email":     "danyadegokey@gmail.com",
		"Bvn":       testBVN,
		"Washlist":  true,
	}
}

func customer() *models.Customer {
	return &models.Customer{
		ID:          uuid.MustParse("6f1c1f9a-3f55-4a8e-9d5b-1a3e1c0e2f10"),
		Code:        "CUST001",
		FirstName:   "Jane",
		PhoneNumber: "08011112222",
		Email:       "a@x.com",
	}
}

func (s *ServiceSuite) TestVerifyAttachesMergedIdentity() {
	var attached *models.Identity
	gomock.InOrder(
		s.pipeline.EXPECT().Run(gomock.Any(), testBVN).Return(details(), nil),
		s.store.EXPECT().FindIdentityByBVN(gomock.Any(), testBVN).Return(nil, sentinel.ErrNotFound),
		s.store.EXPECT().FindByCode(gomock.Any(), "CUST001").Return(customer(), nil),
		s.store.EXPECT().ConditionalAttachIdentity(gomock.Any(), "CUST001", testBVN, gomock.Any()).
			DoAndReturn(func(_ context.Context, _, _ string, identity *models.Identity) error {
				attached = identity
				return nil
			}),
		s.store.EXPECT().FindByCode(gomock.Any(), "CUST001").DoAndReturn(func(context.Context, string) (*models.Customer, error) {
			c := customer()
			c.Identity = attached
			return c, nil
		}),
	)

	result, err := s.service.VerifyCustomerIdentity(s.ctx, "CUST001", testBVN)
	s.Require().NoError(err)

	s.Equal("CUST001", result.Code)
	s.False(result.Reused)
	s.Equal("idt_abc123", result.Identity.Code)
	s.Equal([]string{"08011112222", "2348135613401"}, result.Identity.Phones)
	s.Equal([]string{"a@x.com", "danyadegokey@gmail.com"}, result.Identity.Emails)
	s.Equal([]string{"Jane"}, result.Identity.Aliases)
	s.Equal(customer().ID, result.Identity.Customer)

	events := s.recorder.Events()
	s.Require().Len(events, 1)
	s.Equal(audit.ActionIdentityVerified, events[0].Action)
	s.Equal("idt_abc123", events[0].IdentityCode)
	s.Equal(privacy.HashBVN(testBVN), events[0].SubjectIDHash)
	s.Equal("req-1", events[0].RequestID)
	s.True(events[0].OnWashlist)

	s.Equal(1.0, testutil.ToFloat64(s.metrics.VerificationsTotal.WithLabelValues(metrics.OutcomeVerified)))
}

func (s *ServiceSuite) TestVerifyReturnsExistingIdentityWithoutWriting() {
	existing := customer()
	existing.Identity = &models.Identity{Code: "idt_old000", BVN: testBVN}

	s.pipeline.EXPECT().Run(gomock.Any(), testBVN).Return(details(), nil)
	s.store.EXPECT().FindIdentityByBVN(gomock.Any(), testBVN).
		Return(&models.Identity{Code: "idt_old000", BVN: testBVN, OwnerCode: "CUST001"}, nil)
	s.store.EXPECT().FindByCode(gomock.Any(), "CUST001").Return(existing, nil)
	s.store.EXPECT().ConditionalAttachIdentity(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	result, err := s.service.VerifyCustomerIdentity(s.ctx, "CUST001", testBVN)
	s.Require().NoError(err)
	s.True(result.Reused)
	s.Equal("idt_old000", result.Identity.Code)

	events := s.recorder.Events()
	s.Require().Len(events, 1)
	s.Equal(audit.ActionIdentityReused, events[0].Action)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.VerificationsTotal.WithLabelValues(metrics.OutcomeReused)))
}

func (s *ServiceSuite) TestVerifyLosingConcurrentAttachReportsReused() {
	winner := customer()
	winner.Identity = &models.Identity{Code: "idt_first0", BVN: testBVN}

	gomock.InOrder(
		s.pipeline.EXPECT().Run(gomock.Any(), testBVN).Return(details(), nil),
		s.store.EXPECT().FindIdentityByBVN(gomock.Any(), testBVN).Return(nil, sentinel.ErrNotFound),
		s.store.EXPECT().FindByCode(gomock.Any(), "CUST001").Return(customer(), nil),
		// the guard matches the identity written meanwhile, so nothing is written
		s.store.EXPECT().ConditionalAttachIdentity(gomock.Any(), "CUST001", testBVN, gomock.Any()).Return(nil),
		s.store.EXPECT().FindByCode(gomock.Any(), "CUST001").Return(winner, nil),
	)

	result, err := s.service.VerifyCustomerIdentity(s.ctx, "CUST001", testBVN)
	s.Require().NoError(err)

	s.True(result.Reused)
	s.Equal("idt_first0", result.Identity.Code)
	events := s.recorder.Events()
	s.Require().Len(events, 1)
	s.Equal(audit.ActionIdentityReused, events[0].Action)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.VerificationsTotal.WithLabelValues(metrics.OutcomeReused)))
}

func (s *ServiceSuite) TestVerifyCustomerRemovedBeforeReload() {
	gomock.InOrder(
		s.pipeline.EXPECT().Run(gomock.Any(), testBVN).Return(details(), nil),
		s.store.EXPECT().FindIdentityByBVN(gomock.Any(), testBVN).Return(nil, sentinel.ErrNotFound),
		s.store.EXPECT().FindByCode(gomock.Any(), "CUST001").Return(customer(), nil),
		s.store.EXPECT().ConditionalAttachIdentity(gomock.Any(), "CUST001", testBVN, gomock.Any()).Return(nil),
		s.store.EXPECT().FindByCode(gomock.Any(), "CUST001").Return(nil, sentinel.ErrNotFound),
	)

	_, err := s.service.VerifyCustomerIdentity(s.ctx, "CUST001", testBVN)

	s.ErrorIs(err, models.ErrCustomerNotFound)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	s.Empty(s.recorder.Events())
	s.Equal(1.0, testutil.ToFloat64(s.metrics.VerificationsTotal.WithLabelValues(metrics.OutcomeNotFound)))
}

func (s *ServiceSuite) TestVerifyRejectsBVNOwnedByAnotherCustomer() {
	s.pipeline.EXPECT().Run(gomock.Any(), testBVN).Return(details(), nil)
	s.store.EXPECT().FindIdentityByBVN(gomock.Any(), testBVN).
		Return(&models.Identity{Code: "idt_other0", BVN: testBVN, OwnerCode: "CUST999"}, nil)

	_, err := s.service.VerifyCustomerIdentity(s.ctx, "CUST001", testBVN)

	s.ErrorIs(err, models.ErrDuplicateIdentity)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	s.Empty(s.recorder.Events())
	s.Equal(1.0, testutil.ToFloat64(s.metrics.VerificationsTotal.WithLabelValues(metrics.OutcomeDuplicate)))
}

func (s *ServiceSuite) TestVerifyUnknownCustomer() {
	s.pipeline.EXPECT().Run(gomock.Any(), testBVN).Return(details(), nil)
	s.store.EXPECT().FindIdentityByBVN(gomock.Any(), testBVN).Return(nil, sentinel.ErrNotFound)
	s.store.EXPECT().FindByCode(gomock.Any(), "NOPE").Return(nil, sentinel.ErrNotFound)

	_, err := s.service.VerifyCustomerIdentity(s.ctx, "NOPE", testBVN)

	s.ErrorIs(err, models.ErrCustomerNotFound)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	s.Equal(1.0, testutil.ToFloat64(s.metrics.VerificationsTotal.WithLabelValues(metrics.OutcomeNotFound)))
}

func (s *ServiceSuite) TestVerifyPipelineFailureAbortsBeforeStore() {
	cause := &pipeline.Error{State: pipeline.StateInit, Step: providers.OpAccountsByBVN, Err: models.ErrNoAccountsFound}
	s.pipeline.EXPECT().Run(gomock.Any(), testBVN).Return(nil, cause)

	_, err := s.service.VerifyCustomerIdentity(s.ctx, "CUST001", testBVN)

	s.ErrorIs(err, models.ErrNoAccountsFound)
	var de *dErrors.Error
	s.Require().True(errors.As(err, &de))
	s.Equal(dErrors.CodeNotFound, de.Code)
	s.Equal(map[string]any{"state": "INIT", "step": providers.OpAccountsByBVN}, de.Details)
}

func (s *ServiceSuite) TestVerifyProviderErrorCarriesDetail() {
	pe := providers.NewProviderError(providers.ErrorNotFound, "okra", providers.OpConfirmBVN, "BVN not found", nil).
		WithDetail(map[string]any{"bvn": "unknown"})
	s.pipeline.EXPECT().Run(gomock.Any(), testBVN).
		Return(nil, &pipeline.Error{State: pipeline.StateNUBANConfirmed, Step: providers.OpConfirmBVN, Err: pe})

	_, err := s.service.VerifyCustomerIdentity(s.ctx, "CUST001", testBVN)

	var de *dErrors.Error
	s.Require().True(errors.As(err, &de))
	s.Equal(dErrors.CodeNotFound, de.Code)
	s.Equal("BVN not found", de.Message)
	s.Equal(map[string]any{"bvn": "unknown"}, de.Details)
}

func (s *ServiceSuite) TestVerifyConflictOnWriteIsDuplicate() {
	s.pipeline.EXPECT().Run(gomock.Any(), testBVN).Return(details(), nil)
	s.store.EXPECT().FindIdentityByBVN(gomock.Any(), testBVN).Return(nil, sentinel.ErrNotFound)
	s.store.EXPECT().FindByCode(gomock.Any(), "CUST001").Return(customer(), nil)
	s.store.EXPECT().ConditionalAttachIdentity(gomock.Any(), "CUST001", testBVN, gomock.Any()).Return(sentinel.ErrConflict)

	_, err := s.service.VerifyCustomerIdentity(s.ctx, "CUST001", testBVN)

	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	var de *dErrors.Error
	s.Require().True(errors.As(err, &de))
	s.Equal(models.ErrDuplicateIdentity.Error(), de.Message)
}

func (s *ServiceSuite) TestVerifyStoreFailureIsInternal() {
	s.pipeline.EXPECT().Run(gomock.Any(), testBVN).Return(details(), nil)
	s.store.EXPECT().FindIdentityByBVN(gomock.Any(), testBVN).Return(nil, errors.New("connection refused"))

	_, err := s.service.VerifyCustomerIdentity(s.ctx, "CUST001", testBVN)

	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	s.Equal(1.0, testutil.ToFloat64(s.metrics.VerificationsTotal.WithLabelValues(metrics.OutcomeFailed)))
}

func (s *ServiceSuite) TestAuditFailureDoesNotFailVerification() {
	failing := auditFunc(func(context.Context, audit.Event) error { return errors.New("broker down") })
	svc := New(s.store, s.pipeline, s.client, WithAuditPublisher(failing))

	existing := customer()
	existing.Identity = &models.Identity{Code: "idt_old000", BVN: testBVN}
	s.pipeline.EXPECT().Run(gomock.Any(), testBVN).Return(details(), nil)
	s.store.EXPECT().FindIdentityByBVN(gomock.Any(), testBVN).Return(nil, sentinel.ErrNotFound)
	s.store.EXPECT().FindByCode(gomock.Any(), "CUST001").Return(existing, nil)

	result, err := svc.VerifyCustomerIdentity(s.ctx, "CUST001", testBVN)
	s.Require().NoError(err)
	s.Equal("idt_old000", result.Identity.Code)
}

func (s *ServiceSuite) TestCheckIdentityUsesCache() {
	svc := New(s.store, s.pipeline, s.client, WithLookupCache(s.cache))

	s.Run("hit skips the pipeline", func() {
		s.cache.EXPECT().Find(gomock.Any(), testBVN).Return(details(), nil)

		got, err := svc.CheckIdentity(s.ctx, testBVN)
		s.Require().NoError(err)
		s.Equal(testBVN, got["Bvn"])
	})

	s.Run("miss runs the pipeline and saves", func() {
		gomock.InOrder(
			s.cache.EXPECT().Find(gomock.Any(), testBVN).Return(nil, sentinel.ErrNotFound),
			s.pipeline.EXPECT().Run(gomock.Any(), testBVN).Return(details(), nil),
			s.cache.EXPECT().Save(gomock.Any(), testBVN, details()).Return(nil),
		)

		_, err := svc.CheckIdentity(s.ctx, testBVN)
		s.Require().NoError(err)
	})

	s.Run("save failure is tolerated", func() {
		s.cache.EXPECT().Find(gomock.Any(), testBVN).Return(nil, sentinel.ErrNotFound)
		s.pipeline.EXPECT().Run(gomock.Any(), testBVN).Return(details(), nil)
		s.cache.EXPECT().Save(gomock.Any(), testBVN, gomock.Any()).Return(errors.New("redis down"))

		_, err := svc.CheckIdentity(s.ctx, testBVN)
		s.NoError(err)
	})

	s.Run("read failure aborts", func() {
		s.cache.EXPECT().Find(gomock.Any(), testBVN).Return(nil, errors.New("redis down"))

		_, err := svc.CheckIdentity(s.ctx, testBVN)
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})
}

func (s *ServiceSuite) TestPassthroughs() {
	s.Run("accounts by bvn", func() {
		env := &models.AccountsEnvelope{Status: models.StatusSuccess}
		s.client.EXPECT().AccountsByBVN(gomock.Any(), testBVN).Return(env, nil)

		got, err := s.service.AccountsByBVN(s.ctx, testBVN)
		s.Require().NoError(err)
		s.Same(env, got)
	})

	s.Run("confirm nuban translates provider errors", func() {
		pe := providers.NewProviderError(providers.ErrorAuthentication, "okra", providers.OpConfirmNUBAN, "invalid token", nil)
		s.client.EXPECT().ConfirmNUBAN(gomock.Any(), "0124781881", "slug bank", testBVN).Return(nil, pe)

		_, err := s.service.ConfirmNUBAN(s.ctx, "0124781881", "slug bank", testBVN)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("confirm bvn", func() {
		env := &models.BVNEnvelope{Status: models.StatusSuccess, Data: models.Payload[models.BVNDetails]{Response: details()}}
		s.client.EXPECT().ConfirmBVN(gomock.Any(), "1991-11-06", testBVN).Return(env, nil)

		got, err := s.service.ConfirmBVN(s.ctx, "1991-11-06", testBVN)
		s.Require().NoError(err)
		s.Equal(testBVN, got.Data.Response["Bvn"])
	})
}

type auditFunc func(context.Context, audit.Event) error

func (f auditFunc) Emit(ctx context.Context, e audit.Event) error { return f(ctx, e) }
