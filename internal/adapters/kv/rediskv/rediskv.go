package rediskv

import (
	"context"
	"errors"

	"shelter-map/internal/ports/kv"

	"github.com/redis/go-redis/v9"
)

// Store implementa kv.Store sobre Redis. Se usa cuando el companion corre
// en varios dispositivos del mismo refugio y conviene compartir el estado
// local del plano entre ellos.
type Store struct {
	client *redis.Client
	prefix string
}

type Config struct {
	Addr     string
	Password string
	DB       int

	// Prefix aísla shelters que comparten instancia. Opcional.
	Prefix string
}

func New(cfg Config) *Store {
	return &Store{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
		prefix: cfg.Prefix,
	}
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.client.Get(ctx, s.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	// Sin TTL: las posiciones libres duran hasta que un drop las limpie.
	return s.client.Set(ctx, s.prefix+key, value, 0).Err()
}

func (s *Store) Close() error {
	return s.client.Close()
}

var _ kv.Store = (*Store)(nil)
