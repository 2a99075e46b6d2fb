package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"shelter-map/internal/domain/kennels"
)

type kennelRepo struct {
	mu   sync.RWMutex
	byID map[string]kennels.Kennel
}

func NewKennelRepo() kennels.Repository {
	return &kennelRepo{
		byID: make(map[string]kennels.Kennel),
	}
}

func (r *kennelRepo) Create(ctx context.Context, k kennels.Kennel) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(k.ID) == "" {
		return errors.New("kennel id required")
	}
	if _, exists := r.byID[k.ID]; exists {
		return errors.New("kennel already exists")
	}
	r.byID[k.ID] = k
	return nil
}

func (r *kennelRepo) Update(ctx context.Context, k kennels.Kennel) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(k.ID) == "" {
		return errors.New("kennel id required")
	}
	if _, exists := r.byID[k.ID]; !exists {
		return kennels.ErrNotFound
	}
	r.byID[k.ID] = k
	return nil
}

func (r *kennelRepo) GetByID(ctx context.Context, id string) (kennels.Kennel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	k, ok := r.byID[id]
	if !ok {
		return kennels.Kennel{}, kennels.ErrNotFound
	}
	return k, nil
}

func (r *kennelRepo) ListByShelter(ctx context.Context, shelterID string) ([]kennels.Kennel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]kennels.Kennel, 0)
	for _, k := range r.byID {
		if k.ShelterID == shelterID {
			out = append(out, k)
		}
	}

	// Orden estable por created_at asc: es el índice del auto-layout,
	// no puede depender del orden de iteración del map.
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out, nil
}
