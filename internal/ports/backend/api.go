package backend

import (
	"context"

	"shelter-map/internal/domain/animals"
	"shelter-map/internal/domain/kennels"
)

// Geometry es el payload del upsert de geometría de un kennel.
type Geometry struct {
	X int
	Y int
	W int
	H int
}

// API es lo único que el motor del plano consume del backend.
// El scope (shelter, credenciales) va en el adapter, no acá: el motor se
// instancia por cliente ya autenticado.
type API interface {
	ListKennels(ctx context.Context) ([]kennels.Kennel, error)
	ListAnimals(ctx context.Context) ([]animals.Animal, error)

	UpdateKennelGeometry(ctx context.Context, kennelID string, g Geometry) error
	MoveAnimal(ctx context.Context, animalID, targetKennelID string) error
}
