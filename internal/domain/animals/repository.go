package animals

import "context"

type Repository interface {
	Create(ctx context.Context, a Animal) error
	Update(ctx context.Context, a Animal) error
	GetByID(ctx context.Context, id string) (Animal, error)
	ListByShelter(ctx context.Context, shelterID string) ([]Animal, error)

	// CountByKennel devuelve cuántos animales tiene asignado cada kennel
	// del shelter. Kennels sin animales pueden no aparecer en el mapa.
	CountByKennel(ctx context.Context, shelterID string) (map[string]int, error)
}
