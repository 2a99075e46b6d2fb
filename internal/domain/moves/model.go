package moves

import "time"

// Move es una entrada del historial de movimientos de un animal.
// Append-only: nunca se edita ni se borra.
type Move struct {
	ID        string
	ShelterID string

	AnimalID     string
	FromKennelID string // "" = venía sin kennel (intake o canvas libre)
	ToKennelID   string

	MovedBy string // user id del staff que hizo el drop
	MovedAt time.Time
}
