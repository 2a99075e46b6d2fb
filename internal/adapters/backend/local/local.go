package local

import (
	"context"

	"shelter-map/internal/domain/animals"
	"shelter-map/internal/domain/kennels"
	"shelter-map/internal/ports/backend"
)

// Backend implementa backend.API contra los services in-process.
// Lo usa el motor cuando corre dentro del propio proceso del API
// (dashboard server-side) y los tests.
type Backend struct {
	kennels *kennels.Service
	animals *animals.Service

	shelterID string
	userID    string
}

func New(kennelsSvc *kennels.Service, animalsSvc *animals.Service, shelterID, userID string) *Backend {
	return &Backend{
		kennels:   kennelsSvc,
		animals:   animalsSvc,
		shelterID: shelterID,
		userID:    userID,
	}
}

func (b *Backend) ListKennels(ctx context.Context) ([]kennels.Kennel, error) {
	return b.kennels.ListByShelter(ctx, b.shelterID)
}

func (b *Backend) ListAnimals(ctx context.Context) ([]animals.Animal, error) {
	return b.animals.ListByShelter(ctx, b.shelterID)
}

func (b *Backend) UpdateKennelGeometry(ctx context.Context, kennelID string, g backend.Geometry) error {
	_, err := b.kennels.UpdateGeometry(ctx, kennelID, b.shelterID, kennels.GeometryInput{
		X: g.X, Y: g.Y, W: g.W, H: g.H,
	})
	return err
}

func (b *Backend) MoveAnimal(ctx context.Context, animalID, targetKennelID string) error {
	_, err := b.animals.Move(ctx, animalID, b.shelterID, b.userID, targetKennelID)
	return err
}

var _ backend.API = (*Backend)(nil)
