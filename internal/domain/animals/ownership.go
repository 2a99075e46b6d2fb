package animals

import "context"

// ShelterOf expone el shelter dueño de un animal.
// Se usa para evitar ciclos de imports entre módulos (animals <-> moves).
func (s *Service) ShelterOf(ctx context.Context, animalID string) (string, error) {
	a, err := s.GetByID(ctx, animalID)
	if err != nil {
		return "", err
	}
	return a.ShelterID, nil
}
