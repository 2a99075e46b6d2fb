package capabilities

import "context"

// Capabilities que consultan los handlers del mapa.
const (
	// CapMapEdit habilita el editor de plano (mover boxes, reasignar animales).
	CapMapEdit = "map:edit"
)

type Resolver interface {
	Has(ctx context.Context, shelterID, capability string) (bool, error)
}
