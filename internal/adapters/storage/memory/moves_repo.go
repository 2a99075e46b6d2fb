package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"shelter-map/internal/domain/moves"
)

type moveRepo struct {
	mu   sync.RWMutex
	byID map[string]moves.Move
}

func NewMoveRepo() moves.Repository {
	return &moveRepo{
		byID: make(map[string]moves.Move),
	}
}

func (r *moveRepo) Append(ctx context.Context, m moves.Move) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(m.ID) == "" {
		return errors.New("move id required")
	}
	if _, exists := r.byID[m.ID]; exists {
		return errors.New("move already exists")
	}
	r.byID[m.ID] = m
	return nil
}

func (r *moveRepo) ListByAnimal(ctx context.Context, animalID string) ([]moves.Move, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]moves.Move, 0)
	for _, m := range r.byID {
		if m.AnimalID == animalID {
			out = append(out, m)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].MovedAt.Before(out[j].MovedAt)
	})

	return out, nil
}
