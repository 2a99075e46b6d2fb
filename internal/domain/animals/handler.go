package animals

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"shelter-map/internal/domain/kennels"
	"shelter-map/internal/middleware"
	"shelter-map/internal/ports/capabilities"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, caps capabilities.Resolver) {
	r.Route("/animals", func(ar chi.Router) {
		ar.Post("/", createAnimalHandler(svc))
		ar.Get("/", listAnimalsHandler(svc))
		ar.Get("/{animalID}", getAnimalHandler(svc))

		// Reasignación de kennel (drop en drop-zone del mapa)
		ar.Post("/{animalID}/move", moveAnimalHandler(svc, caps))
	})
}

type createAnimalRequest struct {
	Name     string `json:"name"`
	PhotoURL string `json:"photo_url"`
	KennelID string `json:"kennel_id"`
}

type moveAnimalRequest struct {
	TargetKennelID string `json:"target_kennel_id"`
}

type animalResponse struct {
	ID        string    `json:"id"`
	ShelterID string    `json:"shelter_id"`
	Name      string    `json:"name"`
	PhotoURL  string    `json:"photo_url,omitempty"`
	KennelID  string    `json:"kennel_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func createAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.ShelterID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createAnimalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		a, err := svc.Create(r.Context(), claims.ShelterID, CreateInput{
			Name:     req.Name,
			PhotoURL: req.PhotoURL,
			KennelID: req.KennelID,
		})
		if err != nil {
			switch {
			case errors.Is(err, kennels.ErrNotFound):
				http.Error(w, "kennel not found", http.StatusNotFound)
			default:
				http.Error(w, err.Error(), http.StatusBadRequest)
			}
			return
		}

		writeJSON(w, http.StatusCreated, toAnimalResponse(a))
	}
}

func listAnimalsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.ShelterID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListByShelter(r.Context(), claims.ShelterID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]animalResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toAnimalResponse(a))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func getAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.ShelterID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		a, err := svc.GetByID(r.Context(), chi.URLParam(r, "animalID"))
		if err != nil || a.ShelterID != claims.ShelterID {
			http.Error(w, "animal not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, toAnimalResponse(a))
	}
}

func moveAnimalHandler(svc *Service, caps capabilities.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.ShelterID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if caps != nil {
			allowed, err := caps.Has(r.Context(), claims.ShelterID, capabilities.CapMapEdit)
			if err != nil || !allowed {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
		}

		var req moveAnimalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		a, err := svc.Move(r.Context(), chi.URLParam(r, "animalID"), claims.ShelterID, claims.UserID, req.TargetKennelID)
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, ErrNotFound), errors.Is(err, kennels.ErrNotFound):
				http.Error(w, "not found", http.StatusNotFound)
			case errors.Is(err, ErrKennelUnavailable):
				http.Error(w, err.Error(), http.StatusConflict)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, toAnimalResponse(a))
	}
}

func toAnimalResponse(a Animal) animalResponse {
	return animalResponse{
		ID:        a.ID,
		ShelterID: a.ShelterID,
		Name:      a.Name,
		PhotoURL:  a.PhotoURL,
		KennelID:  a.KennelID,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// Duplicado a propósito por módulo, ver nota en kennels/handler.go.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
