package memory

import (
	"context"
	"sync"

	"shelter-map/internal/ports/kv"
)

// Store implementa kv.Store en memoria: modo dev y tests.
// Obviamente no sobrevive reinicios.
type Store struct {
	mu   sync.RWMutex
	data map[string]string
}

func New() *Store {
	return &Store{data: make(map[string]string)}
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

var _ kv.Store = (*Store)(nil)
