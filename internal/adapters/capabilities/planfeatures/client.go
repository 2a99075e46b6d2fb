package planfeatures

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"shelter-map/internal/platform/httpclient"
)

var (
	ErrPlansNotConfigured = errors.New("plan-features client not configured")
	ErrPlansUnauthorized  = errors.New("plan-features unauthorized")
	ErrPlansUpstream      = errors.New("plan-features upstream error")
)

type Config struct {
	BaseURL string
	APIKey  string

	APIKeyHeader string
	Timeout      time.Duration
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

// FeaturesResponse es el mapa de features del plan del shelter.
// Ejemplo: {"map:edit": true, "documents:ocr": false}
type FeaturesResponse struct {
	Features map[string]bool `json:"features"`
}

// GetFeatures trae las features habilitadas por el plan de un shelter.
func (c *Client) GetFeatures(ctx context.Context, shelterID string) (FeaturesResponse, error) {
	if !c.IsConfigured() {
		return FeaturesResponse{}, ErrPlansNotConfigured
	}
	shelterID = strings.TrimSpace(shelterID)
	if shelterID == "" {
		return FeaturesResponse{}, errors.New("shelterID required")
	}

	headers := map[string]string{c.apiKeyHeader: c.apiKey}

	var out FeaturesResponse
	err := c.http.DoJSON(ctx, http.MethodGet, "/v1/features?shelter_id="+shelterID, headers, nil, &out)
	if err != nil {
		var httpErr *httpclient.HTTPError
		if errors.As(err, &httpErr) {
			if httpErr.StatusCode == http.StatusUnauthorized || httpErr.StatusCode == http.StatusForbidden {
				return FeaturesResponse{}, ErrPlansUnauthorized
			}
			return FeaturesResponse{}, fmt.Errorf("%w: status=%d", ErrPlansUpstream, httpErr.StatusCode)
		}
		return FeaturesResponse{}, fmt.Errorf("%w: %v", ErrPlansUpstream, err)
	}

	if out.Features == nil {
		out.Features = map[string]bool{}
	}
	return out, nil
}
