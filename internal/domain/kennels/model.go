package kennels

import "time"

// Status define los estados operativos de un kennel.
// @Enum available, maintenance, closed
type Status string

const (
	StatusAvailable   Status = "available"
	StatusMaintenance Status = "maintenance"
	StatusClosed      Status = "closed"
)

func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusAvailable, StatusMaintenance, StatusClosed:
		return Status(s), true
	case "":
		// default para altas sin status explícito
		return StatusAvailable, true
	default:
		return "", false
	}
}

// Kennel representa un box físico del refugio.
// Las dimensiones físicas son opcionales (0 = no registrado); la geometría
// de mapa (MapX..MapH) en 0 significa "sin posición guardada" y el cliente
// cae al auto-layout.
type Kennel struct {
	ID        string
	ShelterID string

	Name     string
	Capacity int
	Status   Status

	// Dimensiones físicas en centímetros. 0 = no registrado.
	LengthCm int
	WidthCm  int

	// Geometría persistida del mapa, en píxeles de canvas.
	MapX int
	MapY int
	MapW int
	MapH int

	// Derivado del lado server (count de animales asignados).
	// El repo no lo guarda; lo llena el handler al listar.
	OccupiedCount int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasStoredGeometry indica si el kennel tiene posición de mapa persistida.
// Todo en 0 = nunca se arrastró, el layout es efímero.
func (k Kennel) HasStoredGeometry() bool {
	return k.MapX != 0 || k.MapY != 0 || k.MapW != 0 || k.MapH != 0
}

// OverCapacity indica sobrecupo. Es representable a propósito: el server
// no rechaza asignaciones por cupo, el mapa lo renderiza distinto.
func (k Kennel) OverCapacity() bool {
	return k.Capacity > 0 && k.OccupiedCount > k.Capacity
}
