package moves

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"shelter-map/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// AnimalDirectory lo implementa animals.Service (GetByID alcanza para saber
// a qué shelter pertenece el animal). Interface local: moves no importa animals.
type AnimalDirectory interface {
	ShelterOf(ctx context.Context, animalID string) (string, error)
}

func RegisterRoutes(r chi.Router, svc *Service, animals AnimalDirectory) {
	r.Get("/animals/{animalID}/moves", listMovesHandler(svc, animals))
}

type moveResponse struct {
	ID           string    `json:"id"`
	AnimalID     string    `json:"animal_id"`
	FromKennelID string    `json:"from_kennel_id,omitempty"`
	ToKennelID   string    `json:"to_kennel_id"`
	MovedBy      string    `json:"moved_by,omitempty"`
	MovedAt      time.Time `json:"moved_at"`
}

func listMovesHandler(svc *Service, animals AnimalDirectory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.ShelterID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		animalID := chi.URLParam(r, "animalID")
		shelter, err := animals.ShelterOf(r.Context(), animalID)
		if err != nil || shelter != claims.ShelterID {
			http.Error(w, "animal not found", http.StatusNotFound)
			return
		}

		items, err := svc.ListByAnimal(r.Context(), animalID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]moveResponse, 0, len(items))
		for _, m := range items {
			out = append(out, moveResponse{
				ID:           m.ID,
				AnimalID:     m.AnimalID,
				FromKennelID: m.FromKennelID,
				ToKennelID:   m.ToKennelID,
				MovedBy:      m.MovedBy,
				MovedAt:      m.MovedAt,
			})
		}

		writeJSON(w, http.StatusOK, out)
	}
}

// Duplicado a propósito por módulo, ver nota en kennels/handler.go.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
