package layout

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"shelter-map/internal/domain/animals"
	"shelter-map/internal/domain/kennels"
	"shelter-map/internal/ports/backend"
)

// -------------------------
// Fakes (backend, kv, notify)
// -------------------------

type geomCall struct {
	kennelID string
	g        backend.Geometry
}

type moveCall struct {
	animalID string
	kennelID string
}

type fakeBackend struct {
	mu      sync.Mutex
	kennels []kennels.Kennel
	animals []animals.Animal

	geomCalls []geomCall
	moveCalls []moveCall

	geomErr error
	moveErr error
}

func (f *fakeBackend) ListKennels(ctx context.Context) ([]kennels.Kennel, error) {
	return f.kennels, nil
}

func (f *fakeBackend) ListAnimals(ctx context.Context) ([]animals.Animal, error) {
	return f.animals, nil
}

func (f *fakeBackend) UpdateKennelGeometry(ctx context.Context, kennelID string, g backend.Geometry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.geomCalls = append(f.geomCalls, geomCall{kennelID: kennelID, g: g})
	return f.geomErr
}

func (f *fakeBackend) MoveAnimal(ctx context.Context, animalID, targetKennelID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.moveCalls = append(f.moveCalls, moveCall{animalID: animalID, kennelID: targetKennelID})
	return f.moveErr
}

type fakeKV struct {
	mu   sync.Mutex
	data map[string]string
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: map[string]string{}}
}

func (f *fakeKV) Get(ctx context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[key]
	return v, ok, nil
}

func (f *fakeKV) Set(ctx context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = value
	return nil
}

type fakeNotifier struct {
	mu        sync.Mutex
	successes []string
	errors    []string
}

func (f *fakeNotifier) Success(msg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.successes = append(f.successes, msg)
}

func (f *fakeNotifier) Error(msg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errors = append(f.errors, msg)
}

func newTestEngine(t *testing.T, be *fakeBackend, kv *fakeKV) (*Engine, *fakeNotifier) {
	t.Helper()

	n := &fakeNotifier{}
	e := NewEngine(DefaultConfig(), Deps{
		Backend: be,
		Store:   kv,
		Notify:  n,
	})
	if err := e.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	return e, n
}

// -------------------------
// Kennel box drags
// -------------------------

func TestDrop_KennelBox_TranslateAndPersist(t *testing.T) {
	be := &fakeBackend{
		kennels: []kennels.Kennel{{ID: "A"}}, // sin geometría => auto-layout (20,20,160,120)
	}
	e, _ := newTestEngine(t, be, newFakeKV())

	if err := e.StartDrag(KennelBox("A")); err != nil {
		t.Fatalf("start drag: %v", err)
	}
	if err := e.Drop(context.Background(), Canvas(), 50, 30); err != nil {
		t.Fatalf("drop: %v", err)
	}

	// optimista: el store local cambia ya
	g, ok := e.Box("A")
	if !ok {
		t.Fatalf("box A desapareció")
	}
	want := BoxGeometry{X: 70, Y: 50, W: 160, H: 120}
	if g != want {
		t.Fatalf("box A = %+v, want %+v", g, want)
	}

	// el primer drag persiste la geometría del auto-layout ya trasladada
	e.Flush()
	if len(be.geomCalls) != 1 {
		t.Fatalf("expected 1 geometry write, got %d", len(be.geomCalls))
	}
	call := be.geomCalls[0]
	if call.kennelID != "A" || call.g != (backend.Geometry{X: 70, Y: 50, W: 160, H: 120}) {
		t.Fatalf("geometry write = %+v", call)
	}
}

func TestDrop_KennelBox_ClampsAtOrigin(t *testing.T) {
	be := &fakeBackend{
		kennels: []kennels.Kennel{{ID: "A", MapX: 30, MapY: 40, MapW: 160, MapH: 120}},
	}
	e, _ := newTestEngine(t, be, newFakeKV())

	if err := e.StartDrag(KennelBox("A")); err != nil {
		t.Fatalf("start drag: %v", err)
	}
	if err := e.Drop(context.Background(), Canvas(), -500, -10); err != nil {
		t.Fatalf("drop: %v", err)
	}

	g, _ := e.Box("A")
	want := BoxGeometry{X: 0, Y: 30, W: 160, H: 120}
	if g != want {
		t.Fatalf("box A = %+v, want %+v (clamp en 0)", g, want)
	}
}

func TestDrop_KennelBox_FailedWriteKeepsLocalState(t *testing.T) {
	be := &fakeBackend{
		kennels: []kennels.Kennel{{ID: "A", MapX: 100, MapY: 100, MapW: 160, MapH: 120}},
		geomErr: errors.New("boom"),
	}
	e, n := newTestEngine(t, be, newFakeKV())

	_ = e.StartDrag(KennelBox("A"))
	_ = e.Drop(context.Background(), Canvas(), 10, 10)
	e.Flush()

	// sin rollback: la vista conserva lo que armó el usuario
	g, _ := e.Box("A")
	if g != (BoxGeometry{X: 110, Y: 110, W: 160, H: 120}) {
		t.Fatalf("box A = %+v, el fallo de red no debe revertir", g)
	}
	if len(n.errors) != 1 {
		t.Fatalf("expected 1 error notification, got %d", len(n.errors))
	}
}

// -------------------------
// Animal token drags
// -------------------------

func TestDrop_AnimalIntoKennel_ClearsFreeAndMoves(t *testing.T) {
	kvStore := newFakeKV()
	// X arranca suelto en el canvas (sobrevivió de una sesión anterior)
	seed, _ := json.Marshal(map[string]FreePosition{"X": {X: 500, Y: 600}})
	kvStore.data[freePositionsKey] = string(seed)

	be := &fakeBackend{
		kennels: []kennels.Kennel{
			{ID: "A", MapX: 20, MapY: 20, MapW: 160, MapH: 120},
			{ID: "B", MapX: 300, MapY: 20, MapW: 160, MapH: 120},
		},
		animals: []animals.Animal{{ID: "X", Name: "Milo", KennelID: "A"}},
	}
	e, n := newTestEngine(t, be, kvStore)

	if p, _ := e.Placement("X"); p.Kind != PlacementFree {
		t.Fatalf("seed: placement = %+v, want free", p)
	}

	_ = e.StartDrag(AnimalToken("X"))
	if err := e.Drop(context.Background(), KennelZone("B"), 0, 0); err != nil {
		t.Fatalf("drop: %v", err)
	}

	// la posición vuelve a ser implícita por kennel
	p, _ := e.Placement("X")
	if p.Kind != PlacementAnchored || p.KennelID != "B" {
		t.Fatalf("placement = %+v, want anchored en B", p)
	}

	// la FreePosition se limpió también del storage local
	raw, _, _ := kvStore.Get(context.Background(), freePositionsKey)
	var stored map[string]FreePosition
	_ = json.Unmarshal([]byte(raw), &stored)
	if _, still := stored["X"]; still {
		t.Fatalf("free position de X sigue en storage: %s", raw)
	}

	// exactamente un move request, con el kennel correcto
	e.Flush()
	if len(be.moveCalls) != 1 {
		t.Fatalf("expected 1 move request, got %d", len(be.moveCalls))
	}
	if be.moveCalls[0] != (moveCall{animalID: "X", kennelID: "B"}) {
		t.Fatalf("move request = %+v", be.moveCalls[0])
	}
	if len(n.successes) != 1 {
		t.Fatalf("expected success notification, got %+v", n.successes)
	}
}

func TestDrop_AnimalOntoCanvas_AnchorsThenTranslates(t *testing.T) {
	kvStore := newFakeKV()
	be := &fakeBackend{
		kennels: []kennels.Kennel{{ID: "A", MapX: 100, MapY: 100, MapW: 160, MapH: 120}},
		animals: []animals.Animal{{ID: "X", Name: "Milo", KennelID: "A"}},
	}
	e, _ := newTestEngine(t, be, kvStore)

	// primera expulsión: ancla justo debajo del box de A + delta
	_ = e.StartDrag(AnimalToken("X"))
	if err := e.Drop(context.Background(), Canvas(), 10, 40); err != nil {
		t.Fatalf("drop: %v", err)
	}

	p, _ := e.Placement("X")
	if p.Kind != PlacementFree || p.X != 130 || p.Y != 270 {
		t.Fatalf("placement = %+v, want free (130,270)", p)
	}

	// drags posteriores trasladan, no re-anclan
	_ = e.StartDrag(AnimalToken("X"))
	if err := e.Drop(context.Background(), Canvas(), 5, -5); err != nil {
		t.Fatalf("second drop: %v", err)
	}

	p, _ = e.Placement("X")
	if p.X != 135 || p.Y != 265 {
		t.Fatalf("placement tras segundo drag = %+v, want (135,265)", p)
	}

	// puro client-side: cero requests al server
	e.Flush()
	if len(be.moveCalls) != 0 || len(be.geomCalls) != 0 {
		t.Fatalf("canvas drop no debe pegarle al backend: moves=%d geoms=%d", len(be.moveCalls), len(be.geomCalls))
	}
}

func TestFreePositions_SurviveReload(t *testing.T) {
	kvStore := newFakeKV()
	be := &fakeBackend{
		kennels: []kennels.Kennel{{ID: "A", MapX: 20, MapY: 20, MapW: 160, MapH: 120}},
		animals: []animals.Animal{{ID: "X", KennelID: "A"}},
	}

	e1, _ := newTestEngine(t, be, kvStore)
	_ = e1.StartDrag(AnimalToken("X"))
	_ = e1.Drop(context.Background(), Canvas(), 0, 0)

	p1, _ := e1.Placement("X")

	// "recarga de página": otro engine sobre el mismo storage local
	e2, _ := newTestEngine(t, be, kvStore)
	p2, _ := e2.Placement("X")

	if p2.Kind != PlacementFree || p1 != p2 {
		t.Fatalf("free position no sobrevivió la recarga: %+v vs %+v", p1, p2)
	}
}

func TestLoad_CorruptLocalStorageStartsEmpty(t *testing.T) {
	kvStore := newFakeKV()
	kvStore.data[freePositionsKey] = "{{not json"

	be := &fakeBackend{
		kennels: []kennels.Kennel{{ID: "A"}},
		animals: []animals.Animal{{ID: "X", KennelID: "A"}},
	}
	e, _ := newTestEngine(t, be, kvStore)

	// política default-to-empty: se ignora lo corrupto, sin error
	p, ok := e.Placement("X")
	if !ok || p.Kind != PlacementAnchored {
		t.Fatalf("placement = %+v, want anchored (storage corrupto = vacío)", p)
	}
}

func TestPlacement_Unassigned(t *testing.T) {
	be := &fakeBackend{
		animals: []animals.Animal{{ID: "X"}}, // sin kennel, sin free pos
	}
	e, _ := newTestEngine(t, be, newFakeKV())

	p, ok := e.Placement("X")
	if !ok || p.Kind != PlacementUnassigned {
		t.Fatalf("placement = %+v, want unassigned", p)
	}
}

// -------------------------
// State machine
// -------------------------

func TestDragSession_Transitions(t *testing.T) {
	be := &fakeBackend{
		kennels: []kennels.Kennel{{ID: "A"}},
		animals: []animals.Animal{{ID: "X", KennelID: "A"}},
	}
	e, _ := newTestEngine(t, be, newFakeKV())

	// drop sin drag
	if err := e.Drop(context.Background(), Canvas(), 1, 1); !errors.Is(err, ErrNoDrag) {
		t.Fatalf("drop sin drag: err = %v, want ErrNoDrag", err)
	}

	// sujeto desconocido
	if err := e.StartDrag(KennelBox("nope")); !errors.Is(err, ErrUnknownSubject) {
		t.Fatalf("sujeto desconocido: err = %v, want ErrUnknownSubject", err)
	}

	// una sesión por vez
	if err := e.StartDrag(KennelBox("A")); err != nil {
		t.Fatalf("start drag: %v", err)
	}
	if err := e.StartDrag(AnimalToken("X")); !errors.Is(err, ErrDragInProgress) {
		t.Fatalf("segundo drag: err = %v, want ErrDragInProgress", err)
	}
	if _, dragging := e.Dragging(); !dragging {
		t.Fatalf("Dragging() = false durante la sesión")
	}

	// el drop siempre cierra la sesión, incluso con destino inválido
	if err := e.Drop(context.Background(), Canvas(), 0, 0); err != nil {
		t.Fatalf("drop: %v", err)
	}
	if _, dragging := e.Dragging(); dragging {
		t.Fatalf("sesión abierta después del drop")
	}

	_ = e.StartDrag(AnimalToken("X"))
	if err := e.Drop(context.Background(), Target{Kind: "elsewhere"}, 0, 0); !errors.Is(err, ErrUnknownTarget) {
		t.Fatalf("destino desconocido: err = %v, want ErrUnknownTarget", err)
	}
	if err := e.StartDrag(KennelBox("A")); err != nil {
		t.Fatalf("la sesión no se liberó tras un drop fallido: %v", err)
	}
}
