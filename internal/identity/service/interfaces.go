package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"kycgate/internal/identity/models"
	"kycgate/internal/identity/providers"
)

// CustomerStore is the persistence the service needs. Lookups return a wrapped
// sentinel.ErrNotFound when nothing matches; ConditionalAttachIdentity returns
// a wrapped sentinel.ErrConflict when another customer holds the BVN.
type CustomerStore interface {
	FindByCode(ctx context.Context, code string) (*models.Customer, error)
	FindIdentityByBVN(ctx context.Context, bvn string) (*models.Identity, error)
	ConditionalAttachIdentity(ctx context.Context, code, bvnGuard string, identity *models.Identity) error
}

// Pipeline resolves a BVN to the provider's identity payload.
type Pipeline interface {
	Run(ctx context.Context, bvn string) (models.BVNDetails, error)
}

// LookupCache caches pipeline results by BVN.
type LookupCache interface {
	Find(ctx context.Context, bvn string) (models.BVNDetails, error)
	Save(ctx context.Context, bvn string, details models.BVNDetails) error
}

// ProviderClient serves the single-call passthrough operations.
type ProviderClient interface {
	providers.Client
}
