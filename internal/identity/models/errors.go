package models

import "errors"

// Verification failure taxonomy. Provider transport failures are
// *providers.ProviderError and pipeline aborts are *pipeline.Error; both wrap
// one of these or the provider error.
var (
	ErrLookupFailed      = errors.New("identity lookup failed")
	ErrNoAccountsFound   = errors.New("no accounts found for bvn")
	ErrDuplicateIdentity = errors.New("this identity already exists")
	ErrCustomerNotFound  = errors.New("this customer does not exist")
)
