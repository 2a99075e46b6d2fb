package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"shelter-map/internal/domain/animals"
)

type animalRepo struct {
	mu   sync.RWMutex
	byID map[string]animals.Animal
}

func NewAnimalRepo() animals.Repository {
	return &animalRepo{
		byID: make(map[string]animals.Animal),
	}
}

func (r *animalRepo) Create(ctx context.Context, a animals.Animal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(a.ID) == "" {
		return errors.New("animal id required")
	}
	if _, exists := r.byID[a.ID]; exists {
		return errors.New("animal already exists")
	}
	r.byID[a.ID] = a
	return nil
}

func (r *animalRepo) Update(ctx context.Context, a animals.Animal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(a.ID) == "" {
		return errors.New("animal id required")
	}
	if _, exists := r.byID[a.ID]; !exists {
		return animals.ErrNotFound
	}
	r.byID[a.ID] = a
	return nil
}

func (r *animalRepo) GetByID(ctx context.Context, id string) (animals.Animal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return animals.Animal{}, animals.ErrNotFound
	}
	return a, nil
}

func (r *animalRepo) ListByShelter(ctx context.Context, shelterID string) ([]animals.Animal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]animals.Animal, 0)
	for _, a := range r.byID {
		if a.ShelterID == shelterID {
			out = append(out, a)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out, nil
}

func (r *animalRepo) CountByKennel(ctx context.Context, shelterID string) (map[string]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]int)
	for _, a := range r.byID {
		if a.ShelterID != shelterID || a.KennelID == "" {
			continue
		}
		out[a.KennelID]++
	}
	return out, nil
}
