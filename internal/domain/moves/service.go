package moves

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
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

type RecordInput struct {
	ShelterID    string
	AnimalID     string
	FromKennelID string
	ToKennelID   string
	MovedBy      string
}

func (s *Service) Record(ctx context.Context, in RecordInput) (Move, error) {
	if strings.TrimSpace(in.ShelterID) == "" {
		return Move{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.AnimalID) == "" || strings.TrimSpace(in.ToKennelID) == "" {
		return Move{}, ErrInvalidInput
	}

	m := Move{
		ID:           uuid.NewString(),
		ShelterID:    in.ShelterID,
		AnimalID:     in.AnimalID,
		FromKennelID: strings.TrimSpace(in.FromKennelID),
		ToKennelID:   in.ToKennelID,
		MovedBy:      strings.TrimSpace(in.MovedBy),
		MovedAt:      s.now(),
	}

	if err := s.repo.Append(ctx, m); err != nil {
		return Move{}, err
	}
	return m, nil
}

func (s *Service) ListByAnimal(ctx context.Context, animalID string) ([]Move, error) {
	return s.repo.ListByAnimal(ctx, animalID)
}
