// Package okra is the HTTP client for the Okra KYC provider.
package okra

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"kycgate/internal/identity/models"
	"kycgate/internal/identity/providers"
)

// ProviderID identifies the Okra client in errors and spans.
const ProviderID = "okra"

const maxResponseBytes = 1 << 20

// HTTPDoer is the minimal interface needed from an HTTP client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config configures the client.
type Config struct {
	BaseURL    string
	Token      string
	Timeout    time.Duration
	HTTPClient HTTPDoer
}

// Client posts JSON to the provider's endpoints relative to BaseURL.
type Client struct {
	baseURL string
	token   string
	client  HTTPDoer
}

// New creates a client. It is built once at startup and shared; it holds no
// per-call state.
func New(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
		client:  client,
	}
}

func (c *Client) ID() string { return ProviderID }

func (c *Client) AccountsByBVN(ctx context.Context, bvn string) (*models.AccountsEnvelope, error) {
	return post[[]models.Account](ctx, c, "accounts-by-bvn", providers.OpAccountsByBVN,
		models.AccountsByBVNRequest{BVN: bvn})
}

func (c *Client) ConfirmNUBAN(ctx context.Context, nuban, bank, bvn string) (*models.NUBANEnvelope, error) {
	return post[models.NUBANDetails](ctx, c, "confirm-nuban", providers.OpConfirmNUBAN,
		models.ConfirmNUBANRequest{NUBAN: nuban, Bank: bank, BVN: bvn})
}

func (c *Client) ConfirmBVN(ctx context.Context, dob, bvn string) (*models.BVNEnvelope, error) {
	return post[models.BVNDetails](ctx, c, "confirm-bvn", providers.OpConfirmBVN,
		models.ConfirmBVNRequest{DOB: dob, BVN: bvn})
}

// failureBody is what the provider sends alongside a non-2xx status.
type failureBody struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

func post[T any](ctx context.Context, c *Client, path, op string, payload any) (*models.Envelope[T], error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, providers.NewProviderError(providers.ErrorBadData, ProviderID, op, "failed to marshal request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+path, bytes.NewReader(body))
	if err != nil {
		return nil, providers.NewProviderError(providers.ErrorInternal, ProviderID, op, "failed to create request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) || isTimeout(err) {
			return nil, providers.NewProviderError(providers.ErrorTimeout, ProviderID, op, "request timeout", err)
		}
		return nil, providers.NewProviderError(providers.ErrorProviderOutage, ProviderID, op, "failed to execute request", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, providers.NewProviderError(providers.ErrorBadData, ProviderID, op, "failed to read response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, statusError(op, resp.StatusCode, raw)
	}

	// Numbers stay json.Number so numeric BVNs and phones survive untouched.
	var env models.Envelope[T]
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&env); err != nil {
		return nil, providers.NewProviderError(providers.ErrorBadData, ProviderID, op, "failed to parse response", err)
	}
	return &env, nil
}

// statusError classifies a non-2xx reply, keeping the provider's own message
// and data payload when the body carries them.
func statusError(op string, status int, raw []byte) *providers.ProviderError {
	var fb failureBody
	_ = json.Unmarshal(raw, &fb)

	msg := fb.Message
	if msg == "" {
		msg = fmt.Sprintf("provider returned status %d", status)
	}

	var category providers.ErrorCategory
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		category = providers.ErrorAuthentication
	case status == http.StatusNotFound:
		category = providers.ErrorNotFound
	case status == http.StatusTooManyRequests:
		category = providers.ErrorRateLimited
	case status == http.StatusServiceUnavailable || status == http.StatusGatewayTimeout || status == http.StatusBadGateway:
		category = providers.ErrorProviderOutage
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		category = providers.ErrorBadData
	default:
		category = providers.ErrorInternal
	}

	return providers.NewProviderError(category, ProviderID, op, msg, nil).WithDetail(fb.Data)
}

func isTimeout(err error) bool {
	var te interface{ Timeout() bool }
	return errors.As(err, &te) && te.Timeout()
}

var _ providers.Client = (*Client)(nil)
