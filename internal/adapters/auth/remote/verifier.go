// Package remote verifica tokens contra un IAM externo por HTTP.
package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"pet-spa-booking/internal/apperr"
	"pet-spa-booking/internal/platform/httpclient"
	"pet-spa-booking/internal/ports/auth"
)

const verifyPath = "/v1/tokens/verify"

type Config struct {
	BaseURL string
	APIKey  string

	// Si está vacío se usa "X-Api-Key".
	APIKeyHeader string

	Timeout time.Duration
}

// Verifier implementa auth.AuthVerifier delegando en el IAM.
type Verifier struct {
	http         *httpclient.Client
	apiKey       string
	apiKeyHeader string
}

func NewVerifier(cfg Config) (*Verifier, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" || strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("remote verifier: base url and api key are required")
	}
	c, err := httpclient.New(httpclient.Options{BaseURL: cfg.BaseURL, Timeout: cfg.Timeout})
	if err != nil {
		return nil, err
	}
	h := strings.TrimSpace(cfg.APIKeyHeader)
	if h == "" {
		h = "X-Api-Key"
	}
	return &Verifier{http: c, apiKey: strings.TrimSpace(cfg.APIKey), apiKeyHeader: h}, nil
}

type verifyRequest struct {
	Token string `json:"token"`
}

type verifyResponse struct {
	UserID          string `json:"user_id"`
	Email           string `json:"email"`
	Role            string `json:"role"`
	OwnedResourceID string `json:"owned_resource_id"`
}

// Verify: 401/403 del IAM es Unauthorized; cualquier otra falla se propaga.
func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, apperr.Unauthorized("missing token")
	}

	var out verifyResponse
	err := v.http.DoJSON(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   verifyPath,
		Header: map[string]string{
			v.apiKeyHeader:  v.apiKey,
			"Authorization": "Bearer " + token,
		},
		Body: verifyRequest{Token: token},
	}, &out)
	if err != nil {
		var httpErr *httpclient.HTTPError
		if errors.As(err, &httpErr) && httpErr.Rejected() {
			return auth.Claims{}, apperr.Unauthorized("invalid token")
		}
		return auth.Claims{}, fmt.Errorf("remote verify: %w", err)
	}

	sub := strings.TrimSpace(out.UserID)
	if sub == "" {
		return auth.Claims{}, apperr.Unauthorized("iam response missing user_id")
	}
	return auth.Claims{
		Subject:         sub,
		Email:           strings.TrimSpace(out.Email),
		Role:            strings.TrimSpace(out.Role),
		OwnedResourceID: strings.TrimSpace(out.OwnedResourceID),
	}, nil
}
