package service

import (
	"errors"

	"kycgate/internal/identity/models"
	"kycgate/internal/identity/pipeline"
	"kycgate/internal/identity/providers"
	dErrors "kycgate/pkg/domain-errors"
	"kycgate/pkg/platform/sentinel"
)

// translateVerificationError turns taxonomy, pipeline and provider failures
// into not-found domain errors carrying the provider's message and detail.
// Store failures become internal errors.
func translateVerificationError(err error) error {
	if err == nil {
		return nil
	}

	var pe *providers.ProviderError
	if errors.As(err, &pe) {
		return dErrors.WithDetails(err, dErrors.CodeNotFound, pe.Message, pe.Detail)
	}

	var pipeErr *pipeline.Error
	if errors.As(err, &pipeErr) {
		msg := pipeErr.Message
		if msg == "" {
			msg = pipeErr.Err.Error()
		}
		return dErrors.WithDetails(err, dErrors.CodeNotFound, msg, map[string]any{
			"state": string(pipeErr.State),
			"step":  pipeErr.Step,
		})
	}

	for _, taxonomy := range []error{
		models.ErrLookupFailed,
		models.ErrNoAccountsFound,
		models.ErrDuplicateIdentity,
		models.ErrCustomerNotFound,
	} {
		if errors.Is(err, taxonomy) {
			return dErrors.WithDetails(err, dErrors.CodeNotFound, taxonomy.Error(), nil)
		}
	}

	if errors.Is(err, sentinel.ErrConflict) {
		return dErrors.WithDetails(err, dErrors.CodeNotFound, models.ErrDuplicateIdentity.Error(), nil)
	}

	return dErrors.Wrap(err, dErrors.CodeInternal, "identity verification failed")
}
