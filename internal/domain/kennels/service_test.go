package kennels

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeRepo struct {
	byID map[string]Kennel
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: map[string]Kennel{}}
}

func (r *fakeRepo) Create(ctx context.Context, k Kennel) error {
	r.byID[k.ID] = k
	return nil
}

func (r *fakeRepo) Update(ctx context.Context, k Kennel) error {
	if _, ok := r.byID[k.ID]; !ok {
		return ErrNotFound
	}
	r.byID[k.ID] = k
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id string) (Kennel, error) {
	k, ok := r.byID[id]
	if !ok {
		return Kennel{}, ErrNotFound
	}
	return k, nil
}

func (r *fakeRepo) ListByShelter(ctx context.Context, shelterID string) ([]Kennel, error) {
	var out []Kennel
	for _, k := range r.byID {
		if k.ShelterID == shelterID {
			out = append(out, k)
		}
	}
	return out, nil
}

func newTestService() (*Service, *fakeRepo) {
	repo := newFakeRepo()
	svc := NewService(repo)
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	return svc, repo
}

func TestCreate(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	k, err := svc.Create(ctx, "shelter-1", CreateInput{
		Name:     "  Box Norte ",
		Capacity: 3,
		LengthCm: 400,
		WidthCm:  300,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if k.ID == "" {
		t.Fatalf("create no asignó ID")
	}
	if k.Name != "Box Norte" {
		t.Fatalf("name = %q, want trimmed", k.Name)
	}
	if k.Status != StatusAvailable {
		t.Fatalf("status = %q, want default available", k.Status)
	}
	if k.HasStoredGeometry() {
		t.Fatalf("un kennel nuevo no debe tener geometría guardada")
	}
	if _, ok := repo.byID[k.ID]; !ok {
		t.Fatalf("create no persistió")
	}
}

func TestCreate_Validation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	cases := []struct {
		name      string
		shelterID string
		in        CreateInput
	}{
		{"sin shelter", "", CreateInput{Name: "Box"}},
		{"sin nombre", "shelter-1", CreateInput{Name: "   "}},
		{"capacidad negativa", "shelter-1", CreateInput{Name: "Box", Capacity: -1}},
		{"largo negativo", "shelter-1", CreateInput{Name: "Box", LengthCm: -10}},
		{"status inválido", "shelter-1", CreateInput{Name: "Box", Status: "open"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Create(ctx, tc.shelterID, tc.in); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("err = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestUpdateGeometry(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	k, err := svc.Create(ctx, "shelter-1", CreateInput{Name: "Box"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := svc.UpdateGeometry(ctx, k.ID, "shelter-1", GeometryInput{X: 70, Y: 50, W: 160, H: 120})
	if err != nil {
		t.Fatalf("update geometry: %v", err)
	}
	if got.MapX != 70 || got.MapY != 50 || got.MapW != 160 || got.MapH != 120 {
		t.Fatalf("geometría = (%d,%d,%d,%d)", got.MapX, got.MapY, got.MapW, got.MapH)
	}
	if !got.HasStoredGeometry() {
		t.Fatalf("HasStoredGeometry = false tras el update")
	}

	// idempotente: repetir la misma escritura deja el mismo estado
	again, err := svc.UpdateGeometry(ctx, k.ID, "shelter-1", GeometryInput{X: 70, Y: 50, W: 160, H: 120})
	if err != nil {
		t.Fatalf("update geometry (repetido): %v", err)
	}
	if again.MapX != got.MapX || again.MapY != got.MapY || again.MapW != got.MapW || again.MapH != got.MapH {
		t.Fatalf("la escritura repetida cambió la geometría")
	}
}

func TestUpdateGeometry_Validation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	k, _ := svc.Create(ctx, "shelter-1", CreateInput{Name: "Box"})

	bad := []GeometryInput{
		{X: -1, Y: 0, W: 160, H: 120},
		{X: 0, Y: -5, W: 160, H: 120},
		{X: 0, Y: 0, W: 0, H: 120},
		{X: 0, Y: 0, W: 160, H: -1},
	}
	for _, in := range bad {
		if _, err := svc.UpdateGeometry(ctx, k.ID, "shelter-1", in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("geometría %+v: err = %v, want ErrInvalidInput", in, err)
		}
	}
}

func TestUpdateGeometry_TenantIsolation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	k, _ := svc.Create(ctx, "shelter-1", CreateInput{Name: "Box"})

	// otro shelter ve not found, nunca el kennel ajeno
	if _, err := svc.UpdateGeometry(ctx, k.ID, "shelter-2", GeometryInput{X: 1, Y: 1, W: 10, H: 10}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestForShelter(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	k, _ := svc.Create(ctx, "shelter-1", CreateInput{Name: "Box"})

	if _, err := svc.ForShelter(ctx, k.ID, "shelter-1"); err != nil {
		t.Fatalf("mismo shelter: %v", err)
	}
	if _, err := svc.ForShelter(ctx, k.ID, "shelter-2"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("cross-tenant: err = %v, want ErrNotFound", err)
	}
	if _, err := svc.ForShelter(ctx, "", "shelter-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("id vacío: err = %v, want ErrNotFound", err)
	}
}

func TestOverCapacity(t *testing.T) {
	k := Kennel{Capacity: 2, OccupiedCount: 3}
	if !k.OverCapacity() {
		t.Fatalf("3 sobre 2 debería ser sobrecupo")
	}
	k.OccupiedCount = 2
	if k.OverCapacity() {
		t.Fatalf("al límite no es sobrecupo")
	}
	// capacidad 0 = sin límite declarado
	k = Kennel{Capacity: 0, OccupiedCount: 10}
	if k.OverCapacity() {
		t.Fatalf("sin capacidad declarada nunca hay sobrecupo")
	}
}
