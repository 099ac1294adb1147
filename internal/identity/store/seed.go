package store

import (
	"context"
	"errors"
	"fmt"

	"kycgate/internal/identity/models"
	"kycgate/pkg/platform/sentinel"
)

// Creator is the onboarding write used by seeding.
type Creator interface {
	Create(ctx context.Context, customer *models.Customer) error
}

// DemoCustomers are the customers seeded for sandbox runs.
func DemoCustomers() []*models.Customer {
	return []*models.Customer{
		{Code: "CUST001", FirstName: "Jane", PhoneNumber: "08011112222", Email: "a@x.com"},
		{Code: "CUST002", FirstName: "john", OtherName: "junior", LastName: "doe", PhoneNumber: "2348135613401"},
	}
}

// SeedDemoCustomers creates the demo customers, skipping codes that already exist.
func SeedDemoCustomers(ctx context.Context, s Creator) error {
	for _, c := range DemoCustomers() {
		if err := s.Create(ctx, c); err != nil && !errors.Is(err, sentinel.ErrConflict) {
			return fmt.Errorf("seed customer %s: %w", c.Code, err)
		}
	}
	return nil
}
