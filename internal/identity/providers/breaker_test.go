package providers_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kycgate/internal/identity/models"
	"kycgate/internal/identity/providers"
	"kycgate/internal/identity/providers/sandbox"
	"kycgate/pkg/platform/circuit"
)

// flakyClient fails AccountsByBVN with err until err is cleared.
type flakyClient struct {
	*sandbox.Client
	err   error
	calls int
}

func (f *flakyClient) AccountsByBVN(ctx context.Context, bvn string) (*models.AccountsEnvelope, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.Client.AccountsByBVN(ctx, bvn)
}

func TestBreakerClient(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	outage := providers.NewProviderError(providers.ErrorProviderOutage, "okra", providers.OpAccountsByBVN, "down", nil)
	flaky := &flakyClient{Client: sandbox.New(), err: outage}
	breaker := circuit.New("okra", circuit.WithFailureThreshold(2), circuit.WithSuccessThreshold(1))
	client := providers.WithBreaker(flaky, breaker,
		providers.WithProbeInterval(time.Minute),
		providers.WithBreakerClock(clock),
	)

	for range 2 {
		_, err := client.AccountsByBVN(ctx, sandbox.FixtureBVN)
		require.Error(t, err)
	}
	require.True(t, breaker.IsOpen())
	assert.Equal(t, 2, flaky.calls)

	// open: the provider is not called until the probe interval passes
	_, err := client.AccountsByBVN(ctx, sandbox.FixtureBVN)
	assert.Equal(t, providers.ErrorProviderOutage, providers.GetCategory(err))
	assert.Equal(t, 2, flaky.calls)

	flaky.err = nil
	now = now.Add(time.Minute)

	env, err := client.AccountsByBVN(ctx, sandbox.FixtureBVN)
	require.NoError(t, err)
	assert.True(t, env.OK())
	assert.Equal(t, 3, flaky.calls)
	assert.False(t, breaker.IsOpen())
}

func TestBreakerClientIgnoresNonRetryableFailures(t *testing.T) {
	notFound := providers.NewProviderError(providers.ErrorNotFound, "okra", providers.OpAccountsByBVN, "no record", nil)
	flaky := &flakyClient{Client: sandbox.New(), err: notFound}
	breaker := circuit.New("okra", circuit.WithFailureThreshold(1))
	client := providers.WithBreaker(flaky, breaker)

	for range 3 {
		_, err := client.AccountsByBVN(context.Background(), sandbox.FixtureBVN)
		assert.True(t, errors.Is(err, notFound))
	}
	assert.False(t, breaker.IsOpen())
	assert.Equal(t, "sandbox", client.ID())
}
