package kennels

import (
	"context"
	"strings"
)

// ForShelter devuelve el kennel solo si pertenece al shelter.
// Un kennel de otro tenant se reporta como not found (no confirmamos
// existencia cross-tenant).
// Lo usa animals para validar el destino de un move sin ciclo de imports.
func (s *Service) ForShelter(ctx context.Context, kennelID, shelterID string) (Kennel, error) {
	if strings.TrimSpace(kennelID) == "" || strings.TrimSpace(shelterID) == "" {
		return Kennel{}, ErrNotFound
	}

	k, err := s.repo.GetByID(ctx, kennelID)
	if err != nil {
		return Kennel{}, err
	}
	if k.ShelterID != shelterID {
		return Kennel{}, ErrNotFound
	}
	return k, nil
}
