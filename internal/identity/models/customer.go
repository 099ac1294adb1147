package models

import (
	"time"

	"github.com/google/uuid"
)

// Customer is an onboarded customer. Onboarding owns every field except
// Identity, which verification attaches at most once.
type Customer struct {
	ID          uuid.UUID `json:"id"`
	Code        string    `json:"code"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	OtherName   string    `json:"otherName"`
	PhoneNumber string    `json:"phone_number"`
	Email       string    `json:"email"`
	Identity    *Identity `json:"identity,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// HasIdentity reports whether a verified identity is already attached.
func (c *Customer) HasIdentity() bool {
	return c != nil && c.Identity != nil
}

// VerificationResult is returned from a customer identity verification.
type VerificationResult struct {
	Code     string    `json:"code"`
	Identity *Identity `json:"identity"`
	// Reused is set when the customer already carried an identity and nothing was written.
	Reused bool `json:"-"`
}
