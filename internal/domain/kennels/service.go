package kennels

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("kennel not found")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	Name     string
	Capacity int
	Status   string
	LengthCm int
	WidthCm  int
}

func (s *Service) Create(ctx context.Context, shelterID string, in CreateInput) (Kennel, error) {
	if strings.TrimSpace(shelterID) == "" {
		return Kennel{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" {
		return Kennel{}, ErrInvalidInput
	}
	if in.Capacity < 0 || in.LengthCm < 0 || in.WidthCm < 0 {
		return Kennel{}, ErrInvalidInput
	}

	st, ok := ParseStatus(strings.TrimSpace(in.Status))
	if !ok {
		return Kennel{}, ErrInvalidInput
	}

	now := s.now()
	k := Kennel{
		ID:        uuid.NewString(),
		ShelterID: shelterID,
		Name:      strings.TrimSpace(in.Name),
		Capacity:  in.Capacity,
		Status:    st,
		LengthCm:  in.LengthCm,
		WidthCm:   in.WidthCm,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, k); err != nil {
		return Kennel{}, err
	}
	return k, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Kennel, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByShelter(ctx context.Context, shelterID string) ([]Kennel, error) {
	return s.repo.ListByShelter(ctx, shelterID)
}

type GeometryInput struct {
	X int
	Y int
	W int
	H int
}

// UpdateGeometry persiste la posición de mapa de un kennel (upsert idempotente:
// escribir la misma geometría dos veces deja el mismo estado).
// Solo cambia map_x..map_h; el resto del kennel queda igual.
func (s *Service) UpdateGeometry(ctx context.Context, kennelID, shelterID string, in GeometryInput) (Kennel, error) {
	if in.X < 0 || in.Y < 0 || in.W <= 0 || in.H <= 0 {
		return Kennel{}, ErrInvalidInput
	}

	k, err := s.ForShelter(ctx, kennelID, shelterID)
	if err != nil {
		return Kennel{}, err
	}

	k.MapX = in.X
	k.MapY = in.Y
	k.MapW = in.W
	k.MapH = in.H
	k.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, k); err != nil {
		return Kennel{}, err
	}
	return k, nil
}
