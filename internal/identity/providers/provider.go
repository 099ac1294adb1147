// Package providers defines the KYC verification client contract and its
// normalized error taxonomy. Implementations live in subpackages: okra talks
// to the live provider, sandbox returns fixed fixtures.
package providers

import (
	"context"

	"kycgate/internal/identity/models"
)

// Operation names, used for error attribution, spans and metrics.
const (
	OpAccountsByBVN = "accounts_by_bvn"
	OpConfirmNUBAN  = "confirm_nuban"
	OpConfirmBVN    = "confirm_bvn"
)

// Client exposes the three provider operations. Each returns the provider's
// envelope as-is; interpreting Status is the caller's job. Transport and
// non-2xx failures return *ProviderError.
type Client interface {
	ID() string
	AccountsByBVN(ctx context.Context, bvn string) (*models.AccountsEnvelope, error)
	ConfirmNUBAN(ctx context.Context, nuban, bank, bvn string) (*models.NUBANEnvelope, error)
	ConfirmBVN(ctx context.Context, dob, bvn string) (*models.BVNEnvelope, error)
}
