// Package handler exposes identity verification over HTTP.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"kycgate/internal/identity/models"
	dErrors "kycgate/pkg/domain-errors"
	"kycgate/pkg/platform/httputil"
	"kycgate/pkg/requestcontext"
)

// IdentityService is the service surface the handler needs.
type IdentityService interface {
	VerifyCustomerIdentity(ctx context.Context, code, bvn string) (*models.VerificationResult, error)
	CheckIdentity(ctx context.Context, bvn string) (models.BVNDetails, error)
	AccountsByBVN(ctx context.Context, bvn string) (*models.AccountsEnvelope, error)
	ConfirmNUBAN(ctx context.Context, nuban, bank, bvn string) (*models.NUBANEnvelope, error)
	ConfirmBVN(ctx context.Context, dob, bvn string) (*models.BVNEnvelope, error)
}

const (
	MessageIdentityProcessed = "Identity successfully processed"
	MessageIdentityChecked   = "Identity successfully checked"
)

type Handler struct {
	service IdentityService
	logger  *slog.Logger
}

func New(service IdentityService, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the identity routes.
func (h *Handler) Register(r chi.Router) {
	r.Post("/identities/accounts-by-bvn", h.HandleAccountsByBVN)
	r.Post("/identities/confirm-nuban", h.HandleConfirmNUBAN)
	r.Post("/identities/confirm-bvn", h.HandleConfirmBVN)
	r.Post("/identities/check", h.HandleCheck)
	r.Post("/customers/{code}/identity", h.HandleVerifyCustomer)
}

// Response is the success envelope shared by the identity endpoints.
type Response struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

type CreatedIdentity struct {
	CreatedIdentity *models.VerificationResult `json:"createdIdentity"`
}

// HandleVerifyCustomer handles POST /customers/{code}/identity. A newly
// attached identity answers 201; an identity the customer already had answers 200.
func (h *Handler) HandleVerifyCustomer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	code := strings.TrimSpace(chi.URLParam(r, "code"))
	if code == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "customer code is required"))
		return
	}

	req, ok := httputil.DecodeAndPrepare[models.VerifyIdentityRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.VerifyCustomerIdentity(ctx, code, req.BVN)
	if err != nil {
		h.logger.WarnContext(ctx, "identity verification failed",
			"request_id", requestID,
			"customer_code", code,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	status := http.StatusCreated
	if result.Reused {
		status = http.StatusOK
	}
	httputil.WriteJSON(w, status, Response{
		Status:  models.StatusSuccess,
		Message: MessageIdentityProcessed,
		Data:    CreatedIdentity{CreatedIdentity: result},
	})
}

// HandleCheck handles POST /identities/check: the pipeline only, nothing is stored.
func (h *Handler) HandleCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[models.VerifyIdentityRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	details, err := h.service.CheckIdentity(ctx, req.BVN)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, Response{
		Status:  models.StatusSuccess,
		Message: MessageIdentityChecked,
		Data:    details,
	})
}

func (h *Handler) HandleAccountsByBVN(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[models.AccountsByBVNRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	env, err := h.service.AccountsByBVN(ctx, req.BVN)
	writeEnvelope(w, env, err)
}

func (h *Handler) HandleConfirmNUBAN(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[models.ConfirmNUBANRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	env, err := h.service.ConfirmNUBAN(ctx, req.NUBAN, req.Bank, req.BVN)
	writeEnvelope(w, env, err)
}

func (h *Handler) HandleConfirmBVN(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[models.ConfirmBVNRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	env, err := h.service.ConfirmBVN(ctx, req.DOB, req.BVN)
	writeEnvelope(w, env, err)
}

// writeEnvelope relays a provider envelope unchanged.
func writeEnvelope(w http.ResponseWriter, env any, err error) {
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, env)
}
