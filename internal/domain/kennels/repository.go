package kennels

import "context"

type Repository interface {
	Create(ctx context.Context, k Kennel) error
	Update(ctx context.Context, k Kennel) error
	GetByID(ctx context.Context, id string) (Kennel, error)
	ListByShelter(ctx context.Context, shelterID string) ([]Kennel, error)
}
