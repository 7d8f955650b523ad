package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"gridspot/internal/bookings"
	"gridspot/internal/shared/config"
)

// HTTPClient opens checkout sessions against the external payment provider.
// It implements bookings.CheckoutClient. Signature verification of inbound
// webhooks is the provider's contract obligation, not handled here.
type HTTPClient struct {
	providerURL string
	apiKey      string
	successURL  string
	cancelURL   string
	httpClient  *http.Client
}

func NewHTTPClient(cfg *config.Config) *HTTPClient {
	return &HTTPClient{
		providerURL: cfg.Payment.ProviderURL,
		apiKey:      cfg.Payment.APIKey,
		successURL:  cfg.Payment.SuccessURL,
		cancelURL:   cfg.Payment.CancelURL,
		httpClient: &http.Client{
			Timeout: cfg.Payment.Timeout,
		},
	}
}

type createSessionRequest struct {
	AmountCents int64  `json:"amount_cents"`
	Description string `json:"description"`
	SuccessURL  string `json:"success_url"`
	CancelURL   string `json:"cancel_url"`
	BuyerEmail  string `json:"buyer_email"`
	Reference   string `json:"reference"`
}

type createSessionResponse struct {
	SessionID   string `json:"session_id"`
	RedirectURL string `json:"redirect_url"`
}

// CreateCheckoutSession opens a provider checkout session and returns the
// session identifier plus the redirect handle for the client
func (c *HTTPClient) CreateCheckoutSession(ctx context.Context, params bookings.CheckoutParams) (*bookings.CheckoutSession, error) {
	payload := createSessionRequest{
		AmountCents: params.AmountCents,
		Description: params.Description,
		SuccessURL:  c.successURL + "?ref=" + params.SuccessRef,
		CancelURL:   c.cancelURL + "?ref=" + params.CancelRef,
		BuyerEmail:  params.BuyerEmail,
		Reference:   params.SuccessRef,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal session request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.providerURL+"/v1/checkout/sessions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build session request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("provider request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("provider returned status %d", resp.StatusCode)
	}

	var sessionResp createSessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&sessionResp); err != nil {
		return nil, fmt.Errorf("decode session response: %w", err)
	}
	if sessionResp.SessionID == "" {
		return nil, fmt.Errorf("provider returned empty session id")
	}

	return &bookings.CheckoutSession{
		SessionID:   sessionResp.SessionID,
		RedirectURL: sessionResp.RedirectURL,
	}, nil
}
