package portal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"shelter-map/internal/platform/httpclient"
	"shelter-map/internal/ports/auth"
)

var (
	ErrPortalNotConfigured = errors.New("portal client not configured")
	ErrPortalUnauthorized  = errors.New("portal unauthorized")
	ErrPortalUpstream      = errors.New("portal upstream error")
)

// Config del cliente del portal de identidad de la plataforma.
// BaseURL y APIKey normalmente vienen de env vars en quien lo instancia.
type Config struct {
	BaseURL string
	APIKey  string

	// Opcional: header de la API key. Vacío => "X-Api-Key".
	APIKeyHeader string

	Timeout time.Duration
}

type Client struct {
	http         *httpclient.Client
	apiKey       string
	apiKeyHeader string
}

func NewClient(cfg Config) (*Client, error) {
	h := strings.TrimSpace(cfg.APIKeyHeader)
	if h == "" {
		h = "X-Api-Key"
	}

	hc, err := httpclient.NewWithBaseURL(strings.TrimSpace(cfg.BaseURL), cfg.Timeout)
	if err != nil {
		return nil, err
	}

	return &Client{
		http:         hc,
		apiKey:       strings.TrimSpace(cfg.APIKey),
		apiKeyHeader: h,
	}, nil
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.http != nil && c.http.BaseURL != "" && c.apiKey != ""
}

// VerifyToken valida un token de staff contra el portal y trae los claims.
func (c *Client) VerifyToken(ctx context.Context, token string) (auth.Claims, error) {
	if !c.IsConfigured() {
		return auth.Claims{}, ErrPortalNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrPortalUnauthorized
	}

	headers := map[string]string{
		c.apiKeyHeader: c.apiKey,
		// El portal espera el token también en Authorization.
		"Authorization": "Bearer " + token,
	}

	var out struct {
		UserID    string `json:"user_id"`
		Email     string `json:"email"`
		ShelterID string `json:"shelter_id"`
	}

	err := c.http.DoJSON(ctx, http.MethodPost, "/v1/tokens/verify", headers, map[string]string{"token": token}, &out)
	if err != nil {
		var httpErr *httpclient.HTTPError
		if errors.As(err, &httpErr) {
			if httpErr.StatusCode == http.StatusUnauthorized || httpErr.StatusCode == http.StatusForbidden {
				return auth.Claims{}, ErrPortalUnauthorized
			}
			return auth.Claims{}, fmt.Errorf("%w: status=%d", ErrPortalUpstream, httpErr.StatusCode)
		}
		return auth.Claims{}, fmt.Errorf("%w: %v", ErrPortalUpstream, err)
	}

	out.UserID = strings.TrimSpace(out.UserID)
	out.ShelterID = strings.TrimSpace(out.ShelterID)
	if out.UserID == "" || out.ShelterID == "" {
		return auth.Claims{}, errors.New("portal response missing user_id/shelter_id")
	}

	return auth.Claims{
		UserID:    out.UserID,
		Email:     strings.TrimSpace(out.Email),
		ShelterID: out.ShelterID,
	}, nil
}
