package moves

import "context"

type Repository interface {
	Append(ctx context.Context, m Move) error

	// ListByAnimal devuelve el historial ordenado por MovedAt asc.
	ListByAnimal(ctx context.Context, animalID string) ([]Move, error)
}
