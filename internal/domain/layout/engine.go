package layout

import (
	"context"
	"encoding/json"
	"sync"

	"shelter-map/internal/domain/animals"
	"shelter-map/internal/domain/kennels"
	"shelter-map/internal/platform/logger"
	"shelter-map/internal/ports/backend"
	"shelter-map/internal/ports/kv"
	"shelter-map/internal/ports/notify"
)

// Key fija del storage local para las posiciones libres.
// Si el formato cambia, se versiona la key y la vieja queda huérfana.
const freePositionsKey = "shelter-map.free-positions.v1"

type Deps struct {
	Backend backend.API
	Store   kv.Store        // storage local duradero
	Notify  notify.Notifier // toasts
	Log     logger.Logger   // opcional
}

// Engine es el estado del plano en el cliente: geometrías efectivas por
// kennel, posiciones libres por animal y la sesión de drag en curso.
//
// Es una write-through cache: la vista SOLO lee de acá. Las escrituras al
// backend son side effects asincrónicos que terminan en una notificación,
// nunca vuelven a tocar el estado local (sin rollback; la recarga trae el
// estado autoritativo). Ver Drop.
type Engine struct {
	cfg  Config
	deps Deps

	mu sync.Mutex
	// Orden estable del backend: el índice en kennels es el índice del
	// auto-layout.
	kennels []kennels.Kennel
	animals []animals.Animal
	boxes   map[string]BoxGeometry
	free    map[string]FreePosition
	drag    *dragSession

	// Escrituras en vuelo, para poder drenarlas en shutdown/tests.
	writes sync.WaitGroup
}

func NewEngine(cfg Config, deps Deps) *Engine {
	if deps.Log == nil {
		deps.Log = logger.New(logger.Options{Level: logger.Error})
	}
	return &Engine{
		cfg:   cfg,
		deps:  deps,
		boxes: make(map[string]BoxGeometry),
		free:  make(map[string]FreePosition),
	}
}

// Load trae kennels y animales del backend, siembra el Position Store
// (geometría persistida o auto-layout) y lee las posiciones libres del
// storage local. Se llama al montar y en cada recarga: el re-fetch es
// autoritativo frente a cualquier escritura optimista no confirmada.
func (e *Engine) Load(ctx context.Context) error {
	ks, err := e.deps.Backend.ListKennels(ctx)
	if err != nil {
		return err
	}
	as, err := e.deps.Backend.ListAnimals(ctx)
	if err != nil {
		return err
	}

	boxes := make(map[string]BoxGeometry, len(ks))
	for i, k := range ks {
		boxes[k.ID] = e.cfg.DefaultPosition(k, i)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.kennels = ks
	e.animals = as
	e.boxes = boxes
	e.free = e.loadFreePositions(ctx)
	e.drag = nil

	return nil
}

// loadFreePositions lee el mapa de posiciones libres del storage local.
// Ausente o corrupto => vacío, sin molestar al usuario (política
// default-to-empty, severidad baja).
func (e *Engine) loadFreePositions(ctx context.Context) map[string]FreePosition {
	out := make(map[string]FreePosition)

	raw, found, err := e.deps.Store.Get(ctx, freePositionsKey)
	if err != nil {
		e.deps.Log.Warn("free positions read failed", map[string]any{"error": err.Error()})
		return out
	}
	if !found || raw == "" {
		return out
	}

	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		e.deps.Log.Warn("free positions corrupt, starting empty", map[string]any{"error": err.Error()})
		return make(map[string]FreePosition)
	}
	return out
}

// persistFreePositions escribe el mapa completo en cada cambio.
// Un fallo de escritura local solo se loguea: el estado en memoria sigue
// siendo la verdad de la vista.
func (e *Engine) persistFreePositions(ctx context.Context) {
	b, err := json.Marshal(e.free)
	if err != nil {
		e.deps.Log.Error("free positions marshal failed", map[string]any{"error": err.Error()})
		return
	}
	if err := e.deps.Store.Set(ctx, freePositionsKey, string(b)); err != nil {
		e.deps.Log.Warn("free positions write failed", map[string]any{"error": err.Error()})
	}
}

// StartDrag: Idle -> Dragging(subject).
func (e *Engine) StartDrag(s Subject) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.drag != nil {
		return ErrDragInProgress
	}

	switch s.Kind {
	case SubjectKennelBox:
		if _, ok := e.boxes[s.ID]; !ok {
			return ErrUnknownSubject
		}
	case SubjectAnimalToken:
		if e.animalByID(s.ID) == nil {
			return ErrUnknownSubject
		}
	default:
		return ErrUnknownSubject
	}

	e.drag = &dragSession{subject: s}
	return nil
}

// Drop: Dragging -> Idle. Única función de transición para toda la matriz
// (sujeto × destino); dx/dy es el delta del puntero en píxeles.
//
// La mutación local es optimista y visible al instante; la escritura al
// backend corre aparte y solo alimenta al notifier.
func (e *Engine) Drop(ctx context.Context, t Target, dx, dy int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.drag == nil {
		return ErrNoDrag
	}
	s := e.drag.subject
	// Pase lo que pase, el drop cierra la sesión.
	e.drag = nil

	switch s.Kind {
	case SubjectKennelBox:
		return e.dropKennelBox(s.ID, dx, dy)
	case SubjectAnimalToken:
		return e.dropAnimalToken(ctx, s.ID, t, dx, dy)
	default:
		return ErrUnknownSubject
	}
}

// dropKennelBox traslada el box por el delta, clampeado a coordenadas no
// negativas. W/H no cambian con un drag. El primer drag de un box sin
// geometría guardada persiste la que calculó el auto-layout: la elección
// se vuelve permanente recién cuando el usuario actuó sobre ella.
func (e *Engine) dropKennelBox(kennelID string, dx, dy int) error {
	g, ok := e.boxes[kennelID]
	if !ok {
		return ErrUnknownSubject
	}

	g.X = clampZero(g.X + dx)
	g.Y = clampZero(g.Y + dy)
	e.boxes[kennelID] = g

	e.asyncWrite(func(ctx context.Context) error {
		return e.deps.Backend.UpdateKennelGeometry(ctx, kennelID, backend.Geometry{
			X: g.X, Y: g.Y, W: g.W, H: g.H,
		})
	}, "", "could not save kennel position")

	return nil
}

func (e *Engine) dropAnimalToken(ctx context.Context, animalID string, t Target, dx, dy int) error {
	switch t.Kind {
	case TargetKennelZone:
		return e.dropIntoKennel(ctx, animalID, t.KennelID)
	case TargetCanvas:
		return e.dropOntoCanvas(ctx, animalID, dx, dy)
	default:
		return ErrUnknownTarget
	}
}

// dropIntoKennel: reasignación server-authoritative. Se limpia cualquier
// FreePosition (la posición pasa a ser implícita por el kennel) y se pide
// el move. Optimista: el kennel_id local cambia ya; si el server rechaza,
// queda la notificación y la recarga reconcilia.
func (e *Engine) dropIntoKennel(ctx context.Context, animalID, kennelID string) error {
	if _, ok := e.boxes[kennelID]; !ok {
		return ErrUnknownTarget
	}
	a := e.animalByID(animalID)
	if a == nil {
		return ErrUnknownSubject
	}

	if _, had := e.free[animalID]; had {
		delete(e.free, animalID)
		e.persistFreePositions(ctx)
	}

	a.KennelID = kennelID

	e.asyncWrite(func(ctx context.Context) error {
		return e.deps.Backend.MoveAnimal(ctx, animalID, kennelID)
	}, "animal moved", "could not move animal")

	return nil
}

// dropOntoCanvas: override visual puro, sin server. La primera expulsión
// ancla justo debajo del box del kennel actual y suma el delta; drags
// posteriores trasladan la FreePosition existente (no se re-ancla).
func (e *Engine) dropOntoCanvas(ctx context.Context, animalID string, dx, dy int) error {
	a := e.animalByID(animalID)
	if a == nil {
		return ErrUnknownSubject
	}

	fp, ok := e.free[animalID]
	if ok {
		fp.X += dx
		fp.Y += dy
	} else {
		anchor := FreePosition{X: e.cfg.GridMargin, Y: e.cfg.GridMargin}
		if box, has := e.boxes[a.KennelID]; has {
			anchor = FreePosition{
				X: box.X + e.cfg.FreeAnchorDX,
				Y: box.Y + box.H + e.cfg.FreeAnchorDY,
			}
		}
		fp = FreePosition{X: anchor.X + dx, Y: anchor.Y + dy}
	}

	e.free[animalID] = fp
	e.persistFreePositions(ctx)
	return nil
}

// asyncWrite dispara una escritura al backend sin bloquear el drop.
// El resultado solo toca al notifier, jamás al estado local. No hay
// timeout propio: una escritura colgada simplemente nunca confirma y la
// UI ya muestra el estado asumido.
func (e *Engine) asyncWrite(call func(context.Context) error, successMsg, errorMsg string) {
	e.writes.Add(1)
	go func() {
		defer e.writes.Done()
		if err := call(context.Background()); err != nil {
			e.deps.Log.Warn("backend write failed", map[string]any{"error": err.Error()})
			e.deps.Notify.Error(errorMsg)
			return
		}
		if successMsg != "" {
			e.deps.Notify.Success(successMsg)
		}
	}()
}

// Flush espera las escrituras en vuelo. Para shutdown y tests.
func (e *Engine) Flush() {
	e.writes.Wait()
}

// Box devuelve la geometría efectiva de un kennel.
func (e *Engine) Box(kennelID string) (BoxGeometry, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	g, ok := e.boxes[kennelID]
	return g, ok
}

// Dragging informa si hay una sesión de drag en curso y sobre qué.
func (e *Engine) Dragging() (Subject, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.drag == nil {
		return Subject{}, false
	}
	return e.drag.subject, true
}

// CanvasBounds recalcula el tamaño del canvas sobre las geometrías actuales.
func (e *Engine) CanvasBounds() Size {
	e.mu.Lock()
	defer e.mu.Unlock()

	boxes := make([]BoxGeometry, 0, len(e.boxes))
	for _, g := range e.boxes {
		boxes = append(boxes, g)
	}
	return e.cfg.CanvasBounds(boxes)
}

// Placement resuelve la posición de un animal: Free suprime a Anchored;
// sin kennel y sin FreePosition es Unassigned (bandeja de intake).
func (e *Engine) Placement(animalID string) (Placement, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	a := e.animalByID(animalID)
	if a == nil {
		return Placement{}, false
	}
	return e.placementLocked(*a), true
}

// Placements devuelve la resolución de todos los animales.
func (e *Engine) Placements() map[string]Placement {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make(map[string]Placement, len(e.animals))
	for _, a := range e.animals {
		out[a.ID] = e.placementLocked(a)
	}
	return out
}

func (e *Engine) placementLocked(a animals.Animal) Placement {
	if fp, ok := e.free[a.ID]; ok {
		return Placement{Kind: PlacementFree, X: fp.X, Y: fp.Y}
	}
	if a.KennelID != "" {
		return Placement{Kind: PlacementAnchored, KennelID: a.KennelID}
	}
	return Placement{Kind: PlacementUnassigned}
}

func (e *Engine) animalByID(id string) *animals.Animal {
	for i := range e.animals {
		if e.animals[i].ID == id {
			return &e.animals[i]
		}
	}
	return nil
}

func clampZero(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
