package animals

import (
	"context"
	"errors"
	"strings"
	"time"

	"shelter-map/internal/domain/kennels"
	"shelter-map/internal/domain/moves"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("animal not found")
	ErrKennelUnavailable = errors.New("kennel is closed")
)

// KennelDirectory lo implementa kennels.Service (ForShelter).
type KennelDirectory interface {
	ForShelter(ctx context.Context, kennelID, shelterID string) (kennels.Kennel, error)
}

// MoveRecorder lo implementa moves.Service.
type MoveRecorder interface {
	Record(ctx context.Context, in moves.RecordInput) (moves.Move, error)
}

type Service struct {
	repo     Repository
	kennels  KennelDirectory
	recorder MoveRecorder // opcional: nil = sin historial
	now      func() time.Time
}

func NewService(repo Repository, kennelDir KennelDirectory, recorder MoveRecorder) *Service {
	return &Service{
		repo:     repo,
		kennels:  kennelDir,
		recorder: recorder,
		now:      time.Now,
	}
}

type CreateInput struct {
	Name     string
	PhotoURL string
	KennelID string // opcional: alta directa dentro de un kennel
}

func (s *Service) Create(ctx context.Context, shelterID string, in CreateInput) (Animal, error) {
	if strings.TrimSpace(shelterID) == "" {
		return Animal{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" {
		return Animal{}, ErrInvalidInput
	}

	kennelID := strings.TrimSpace(in.KennelID)
	if kennelID != "" {
		if _, err := s.kennels.ForShelter(ctx, kennelID, shelterID); err != nil {
			return Animal{}, err
		}
	}

	now := s.now()
	a := Animal{
		ID:        uuid.NewString(),
		ShelterID: shelterID,
		Name:      strings.TrimSpace(in.Name),
		PhotoURL:  strings.TrimSpace(in.PhotoURL),
		KennelID:  kennelID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return Animal{}, err
	}
	return a, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Animal, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByShelter(ctx context.Context, shelterID string) ([]Animal, error) {
	return s.repo.ListByShelter(ctx, shelterID)
}

func (s *Service) CountByKennel(ctx context.Context, shelterID string) (map[string]int, error) {
	return s.repo.CountByKennel(ctx, shelterID)
}

// Move reasigna el animal a otro kennel. Es LA operación que cambia la
// relación de ocupación server-side; el cliente nunca escribe kennel_id
// por otro camino.
func (s *Service) Move(ctx context.Context, animalID, shelterID, actorUserID, targetKennelID string) (Animal, error) {
	if strings.TrimSpace(targetKennelID) == "" {
		return Animal{}, ErrInvalidInput
	}

	a, err := s.repo.GetByID(ctx, animalID)
	if err != nil {
		return Animal{}, err
	}
	if a.ShelterID != shelterID {
		return Animal{}, ErrNotFound
	}

	k, err := s.kennels.ForShelter(ctx, targetKennelID, shelterID)
	if err != nil {
		return Animal{}, err
	}
	if k.Status == kennels.StatusClosed {
		return Animal{}, ErrKennelUnavailable
	}

	from := a.KennelID
	a.KennelID = k.ID
	a.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, a); err != nil {
		return Animal{}, err
	}

	if s.recorder != nil {
		// Historial best-effort: un fallo del log no revierte el move.
		_, _ = s.recorder.Record(ctx, moves.RecordInput{
			ShelterID:    shelterID,
			AnimalID:     a.ID,
			FromKennelID: from,
			ToKennelID:   k.ID,
			MovedBy:      actorUserID,
		})
	}

	return a, nil
}
