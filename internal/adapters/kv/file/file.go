package file

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"shelter-map/internal/ports/kv"
)

// Store implementa kv.Store sobre archivos JSON en un directorio
// (el storage local duradero del cliente de escritorio/companion).
// Un archivo ilegible se trata como key ausente; la tolerancia a contenido
// corrupto la maneja el caller.
type Store struct {
	dir string
}

func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	b, err := os.ReadFile(s.path(key))
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return string(b), true, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	return os.WriteFile(s.path(key), []byte(value), 0o644)
}

// path sanitiza la key a un nombre de archivo plano.
func (s *Store) path(key string) string {
	name := strings.NewReplacer("/", "_", "\\", "_", ":", "_").Replace(key)
	return filepath.Join(s.dir, name+".json")
}

var _ kv.Store = (*Store)(nil)
