// Package store persists customers and caches provider lookups.
package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"kycgate/internal/identity/models"
	"kycgate/pkg/platform/sentinel"
)

// InMemoryStore keeps customers in a map keyed by code. It enforces the same
// BVN uniqueness the Postgres index does.
type InMemoryStore struct {
	mu        sync.RWMutex
	customers map[string]*models.Customer
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{customers: make(map[string]*models.Customer)}
}

// Create adds a customer. Codes are unique.
func (s *InMemoryStore) Create(_ context.Context, customer *models.Customer) error {
	if customer == nil || customer.Code == "" {
		return fmt.Errorf("customer code is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.customers[customer.Code]; ok {
		return fmt.Errorf("customer %s: %w", customer.Code, sentinel.ErrConflict)
	}
	c := *customer
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	c.Identity = customer.Identity.Clone()
	s.customers[c.Code] = &c
	return nil
}

func (s *InMemoryStore) FindByCode(_ context.Context, code string) (*models.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.customers[code]
	if !ok {
		return nil, fmt.Errorf("customer %s: %w", code, sentinel.ErrNotFound)
	}
	out := *c
	out.Identity = c.Identity.Clone()
	return &out, nil
}

func (s *InMemoryStore) FindIdentityByBVN(_ context.Context, bvn string) (*models.Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if owner := s.ownerOf(bvn); owner != nil {
		identity := owner.Identity.Clone()
		identity.OwnerCode = owner.Code
		return identity, nil
	}
	return nil, fmt.Errorf("identity: %w", sentinel.ErrNotFound)
}

// ConditionalAttachIdentity sets identity on the customer unless its current
// identity already carries bvnGuard. A missing customer or a failed guard is a
// silent no-op. Attaching a BVN another customer holds returns ErrConflict.
func (s *InMemoryStore) ConditionalAttachIdentity(_ context.Context, code, bvnGuard string, identity *models.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.customers[code]
	if !ok {
		return nil
	}
	if c.Identity != nil && c.Identity.BVN == bvnGuard {
		return nil
	}
	if owner := s.ownerOf(identity.BVN); owner != nil && owner.Code != code {
		return fmt.Errorf("identity bvn: %w", sentinel.ErrConflict)
	}
	stored := identity.Clone()
	stored.OwnerCode = ""
	c.Identity = stored
	return nil
}

// ownerOf must be called with the lock held.
func (s *InMemoryStore) ownerOf(bvn string) *models.Customer {
	for _, c := range s.customers {
		if c.Identity != nil && c.Identity.BVN == bvn {
			return c
		}
	}
	return nil
}
