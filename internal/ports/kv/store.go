package kv

import "context"

// Store es storage local key-value duradero (el "localStorage" del cliente).
// Get devuelve found=false si la key no existe; payload corrupto es problema
// del caller (el motor lo trata como vacío).
type Store interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
}
