package planfeatures

import (
	"context"
	"errors"
	"os"
	"strings"
	"sync"
	"time"

	"shelter-map/internal/ports/capabilities"
)

// Resolver implementa capabilities.Resolver contra plan-features, con un
// cache TTL por shelter para no pegarle al upstream en cada drag.
// Si ALLOW_ALL_CAPABILITIES=true (env), todo devuelve true (modo dev).
type Resolver struct {
	client   *Client
	allowAll bool

	ttl time.Duration
	now func() time.Time

	mu    sync.Mutex
	cache map[string]cachedFeatures
}

type cachedFeatures struct {
	features  map[string]bool
	expiresAt time.Time
}

func NewResolver(client *Client) *Resolver {
	allowAll := strings.EqualFold(strings.TrimSpace(os.Getenv("ALLOW_ALL_CAPABILITIES")), "true")
	return &Resolver{
		client:   client,
		allowAll: allowAll,
		ttl:      5 * time.Minute,
		now:      time.Now,
		cache:    make(map[string]cachedFeatures),
	}
}

// Has responde si el plan del shelter habilita una capability.
func (r *Resolver) Has(ctx context.Context, shelterID, capability string) (bool, error) {
	capability = strings.TrimSpace(capability)
	if capability == "" {
		return false, errors.New("capability required")
	}

	if r.allowAll {
		return true, nil
	}

	if r == nil || r.client == nil || !r.client.IsConfigured() {
		// Preferimos fallar explícito en vez de "permitir" sin control.
		return false, ErrPlansNotConfigured
	}

	features, err := r.features(ctx, shelterID)
	if err != nil {
		return false, err
	}
	return features[capability], nil
}

func (r *Resolver) features(ctx context.Context, shelterID string) (map[string]bool, error) {
	r.mu.Lock()
	if c, ok := r.cache[shelterID]; ok && r.now().Before(c.expiresAt) {
		r.mu.Unlock()
		return c.features, nil
	}
	r.mu.Unlock()

	resp, err := r.client.GetFeatures(ctx, shelterID)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.cache[shelterID] = cachedFeatures{
		features:  resp.Features,
		expiresAt: r.now().Add(r.ttl),
	}
	r.mu.Unlock()

	return resp.Features, nil
}

var _ capabilities.Resolver = (*Resolver)(nil)
