package audit

import (
	"context"
	"time"
)

// Action names an audited identity operation.
type Action string

const (
	// ActionIdentityVerified is emitted when a new identity is attached to a customer.
	ActionIdentityVerified Action = "identity_verified"
	// ActionIdentityReused is emitted when verification returned the identity the
	// customer already carried.
	ActionIdentityReused Action = "identity_reused"
)

// Event is emitted from domain logic to capture key actions. It never carries a
// raw BVN; SubjectIDHash holds its SHA-256 digest.
type Event struct {
	Action        Action    `json:"action"`
	Timestamp     time.Time `json:"timestamp"`
	CustomerCode  string    `json:"customer_code"`
	IdentityCode  string    `json:"identity_code,omitempty"`
	SubjectIDHash string    `json:"subject_id_hash,omitempty"`
	OnWashlist    bool      `json:"on_washlist"`
	RequestID     string    `json:"request_id,omitempty"`
}

// Publisher delivers audit events to a sink.
type Publisher interface {
	Emit(ctx context.Context, event Event) error
}
