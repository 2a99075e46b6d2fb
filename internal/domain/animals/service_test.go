package animals

import (
	"context"
	"errors"
	"testing"
	"time"

	"shelter-map/internal/domain/kennels"
	"shelter-map/internal/domain/moves"
)

type fakeRepo struct {
	byID map[string]Animal
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: map[string]Animal{}}
}

func (r *fakeRepo) Create(ctx context.Context, a Animal) error {
	r.byID[a.ID] = a
	return nil
}

func (r *fakeRepo) Update(ctx context.Context, a Animal) error {
	if _, ok := r.byID[a.ID]; !ok {
		return ErrNotFound
	}
	r.byID[a.ID] = a
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id string) (Animal, error) {
	a, ok := r.byID[id]
	if !ok {
		return Animal{}, ErrNotFound
	}
	return a, nil
}

func (r *fakeRepo) ListByShelter(ctx context.Context, shelterID string) ([]Animal, error) {
	var out []Animal
	for _, a := range r.byID {
		if a.ShelterID == shelterID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeRepo) CountByKennel(ctx context.Context, shelterID string) (map[string]int, error) {
	out := map[string]int{}
	for _, a := range r.byID {
		if a.ShelterID == shelterID && a.KennelID != "" {
			out[a.KennelID]++
		}
	}
	return out, nil
}

// fakeKennels resuelve por (kennelID, shelterID) como kennels.Service.ForShelter.
type fakeKennels struct {
	byID map[string]kennels.Kennel
}

func (f *fakeKennels) ForShelter(ctx context.Context, kennelID, shelterID string) (kennels.Kennel, error) {
	k, ok := f.byID[kennelID]
	if !ok || k.ShelterID != shelterID {
		return kennels.Kennel{}, kennels.ErrNotFound
	}
	return k, nil
}

type fakeRecorder struct {
	records []moves.RecordInput
	err     error
}

func (f *fakeRecorder) Record(ctx context.Context, in moves.RecordInput) (moves.Move, error) {
	f.records = append(f.records, in)
	return moves.Move{}, f.err
}

func newTestService() (*Service, *fakeRepo, *fakeKennels, *fakeRecorder) {
	repo := newFakeRepo()
	dir := &fakeKennels{byID: map[string]kennels.Kennel{
		"k-open":   {ID: "k-open", ShelterID: "shelter-1", Status: kennels.StatusAvailable},
		"k-maint":  {ID: "k-maint", ShelterID: "shelter-1", Status: kennels.StatusMaintenance},
		"k-closed": {ID: "k-closed", ShelterID: "shelter-1", Status: kennels.StatusClosed},
		"k-other":  {ID: "k-other", ShelterID: "shelter-2", Status: kennels.StatusAvailable},
	}}
	rec := &fakeRecorder{}

	svc := NewService(repo, dir, rec)
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	return svc, repo, dir, rec
}

func TestCreate(t *testing.T) {
	svc, repo, _, _ := newTestService()
	ctx := context.Background()

	a, err := svc.Create(ctx, "shelter-1", CreateInput{Name: " Milo ", KennelID: "k-open"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if a.Name != "Milo" || a.KennelID != "k-open" {
		t.Fatalf("animal = %+v", a)
	}
	if _, ok := repo.byID[a.ID]; !ok {
		t.Fatalf("create no persistió")
	}

	// sin kennel es válido: intake sin asignar
	b, err := svc.Create(ctx, "shelter-1", CreateInput{Name: "Luna"})
	if err != nil {
		t.Fatalf("create sin kennel: %v", err)
	}
	if b.KennelID != "" {
		t.Fatalf("kennel_id = %q, want vacío", b.KennelID)
	}
}

func TestCreate_Validation(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, "", CreateInput{Name: "Milo"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("sin shelter: err = %v", err)
	}
	if _, err := svc.Create(ctx, "shelter-1", CreateInput{Name: "  "}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("sin nombre: err = %v", err)
	}
	// kennel de otro tenant: el directorio responde not found
	if _, err := svc.Create(ctx, "shelter-1", CreateInput{Name: "Milo", KennelID: "k-other"}); !errors.Is(err, kennels.ErrNotFound) {
		t.Fatalf("kennel ajeno: err = %v", err)
	}
}

func TestMove(t *testing.T) {
	svc, repo, _, rec := newTestService()
	ctx := context.Background()

	a, _ := svc.Create(ctx, "shelter-1", CreateInput{Name: "Milo", KennelID: "k-open"})

	moved, err := svc.Move(ctx, a.ID, "shelter-1", "user-1", "k-maint")
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	if moved.KennelID != "k-maint" {
		t.Fatalf("kennel_id = %q, want k-maint", moved.KennelID)
	}
	if stored := repo.byID[a.ID]; stored.KennelID != "k-maint" {
		t.Fatalf("el move no se persistió: %+v", stored)
	}

	// el historial registra origen y destino
	if len(rec.records) != 1 {
		t.Fatalf("expected 1 move record, got %d", len(rec.records))
	}
	r := rec.records[0]
	if r.AnimalID != a.ID || r.FromKennelID != "k-open" || r.ToKennelID != "k-maint" || r.MovedBy != "user-1" {
		t.Fatalf("record = %+v", r)
	}
}

func TestMove_ClosedKennel(t *testing.T) {
	svc, repo, _, rec := newTestService()
	ctx := context.Background()

	a, _ := svc.Create(ctx, "shelter-1", CreateInput{Name: "Milo", KennelID: "k-open"})

	if _, err := svc.Move(ctx, a.ID, "shelter-1", "user-1", "k-closed"); !errors.Is(err, ErrKennelUnavailable) {
		t.Fatalf("err = %v, want ErrKennelUnavailable", err)
	}
	// rechazo sin efectos: ni asignación ni historial
	if stored := repo.byID[a.ID]; stored.KennelID != "k-open" {
		t.Fatalf("el rechazo cambió la asignación: %+v", stored)
	}
	if len(rec.records) != 0 {
		t.Fatalf("el rechazo dejó historial: %+v", rec.records)
	}
}

func TestMove_TenantIsolation(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	a, _ := svc.Create(ctx, "shelter-1", CreateInput{Name: "Milo"})

	// animal ajeno: not found para el otro shelter
	if _, err := svc.Move(ctx, a.ID, "shelter-2", "user-2", "k-other"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("animal ajeno: err = %v, want ErrNotFound", err)
	}
	// kennel ajeno: not found del directorio
	if _, err := svc.Move(ctx, a.ID, "shelter-1", "user-1", "k-other"); !errors.Is(err, kennels.ErrNotFound) {
		t.Fatalf("kennel ajeno: err = %v, want kennels.ErrNotFound", err)
	}
}

func TestMove_RecorderFailureDoesNotRevert(t *testing.T) {
	svc, repo, _, rec := newTestService()
	rec.err = errors.New("boom")
	ctx := context.Background()

	a, _ := svc.Create(ctx, "shelter-1", CreateInput{Name: "Milo", KennelID: "k-open"})

	if _, err := svc.Move(ctx, a.ID, "shelter-1", "user-1", "k-maint"); err != nil {
		t.Fatalf("move: %v", err)
	}
	if stored := repo.byID[a.ID]; stored.KennelID != "k-maint" {
		t.Fatalf("el fallo del historial revirtió el move: %+v", stored)
	}
}

func TestShelterOf(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	a, _ := svc.Create(ctx, "shelter-1", CreateInput{Name: "Milo"})

	owner, err := svc.ShelterOf(ctx, a.ID)
	if err != nil {
		t.Fatalf("shelter of: %v", err)
	}
	if owner != "shelter-1" {
		t.Fatalf("owner = %q, want shelter-1", owner)
	}
	if _, err := svc.ShelterOf(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("inexistente: err = %v, want ErrNotFound", err)
	}
}
