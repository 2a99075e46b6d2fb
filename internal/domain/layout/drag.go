package layout

import "errors"

var (
	ErrDragInProgress = errors.New("drag already in progress")
	ErrNoDrag         = errors.New("no drag in progress")
	ErrUnknownSubject = errors.New("unknown drag subject")
	ErrUnknownTarget  = errors.New("unknown drop target")
)

// SubjectKind distingue los dos tipos arrastrables del plano.
type SubjectKind string

const (
	SubjectKennelBox   SubjectKind = "kennel-box"
	SubjectAnimalToken SubjectKind = "animal-token"
)

// Subject identifica qué se está arrastrando.
// Union etiquetada en vez de kind-checks sueltos por handler.
type Subject struct {
	Kind SubjectKind
	ID   string
}

func KennelBox(id string) Subject { return Subject{Kind: SubjectKennelBox, ID: id} }

func AnimalToken(id string) Subject { return Subject{Kind: SubjectAnimalToken, ID: id} }

// TargetKind distingue dónde se soltó: canvas abierto o la drop-zone de
// un kennel.
type TargetKind string

const (
	TargetCanvas     TargetKind = "canvas"
	TargetKennelZone TargetKind = "kennel-zone"
)

type Target struct {
	Kind     TargetKind
	KennelID string // solo para TargetKennelZone
}

func Canvas() Target { return Target{Kind: TargetCanvas} }

func KennelZone(id string) Target { return Target{Kind: TargetKennelZone, KennelID: id} }

// dragSession es el estado Dragging. nil = Idle.
// Una sola sesión por vez: modelo single-user/single-tab, los eventos de
// puntero son la única fuente de transiciones.
type dragSession struct {
	subject Subject
}
