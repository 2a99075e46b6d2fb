package layout

// BoxGeometry es la geometría efectiva de un kennel en píxeles de canvas.
// Puede venir de la geometría persistida o del auto-layout (efímera hasta
// el primer drag).
type BoxGeometry struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// IsZero = "sin posición guardada" (la convención del backend es todo en 0).
func (g BoxGeometry) IsZero() bool {
	return g.X == 0 && g.Y == 0 && g.W == 0 && g.H == 0
}

// FreePosition es la coordenada client-only de un animal suelto en el canvas.
// Nunca viaja al server; vive en el storage local duradero.
type FreePosition struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Size son las dimensiones scrolleables del canvas.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// PlacementKind resuelve la autoridad mixta de posición de un animal:
// implícita por su kennel, explícita client-only, o ninguna (bandeja de
// intake). FreePosition suprime a Anchored; nunca coexisten en la vista.
type PlacementKind string

const (
	PlacementAnchored   PlacementKind = "anchored"
	PlacementFree       PlacementKind = "free"
	PlacementUnassigned PlacementKind = "unassigned"
)

type Placement struct {
	Kind     PlacementKind
	KennelID string // solo para Anchored
	X, Y     int    // solo para Free
}
