package animals

import "time"

// Animal representa un animal del refugio en lo que el mapa necesita:
// identidad, nombre visible, foto y su kennel actual.
// KennelID = "" significa sin kennel asignado (intake / suelto en canvas).
// La asignación es propiedad del server: el cliente solo la cambia vía Move.
type Animal struct {
	ID        string
	ShelterID string

	Name     string
	PhotoURL string

	KennelID string

	CreatedAt time.Time
	UpdatedAt time.Time
}
