package kennels

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"shelter-map/internal/middleware"
	"shelter-map/internal/ports/capabilities"

	"github.com/go-chi/chi/v5"
)

// OccupancyCounter lo implementa animals.Service.
// Interface local para no importar animals desde acá (evita ciclo).
type OccupancyCounter interface {
	CountByKennel(ctx context.Context, shelterID string) (map[string]int, error)
}

func RegisterRoutes(r chi.Router, svc *Service, occ OccupancyCounter, caps capabilities.Resolver) {
	r.Route("/kennels", func(kr chi.Router) {
		kr.Post("/", createKennelHandler(svc))
		kr.Get("/", listKennelsHandler(svc, occ))
		kr.Get("/{kennelID}", getKennelHandler(svc, occ))

		// Geometría de mapa (editor del plano; gated por capability si hay resolver)
		kr.Patch("/{kennelID}/geometry", updateGeometryHandler(svc, caps))
	})
}

type createKennelRequest struct {
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
	Status   string `json:"status"`
	LengthCm int    `json:"length_cm"`
	WidthCm  int    `json:"width_cm"`
}

type geometryRequest struct {
	X int `json:"map_x"`
	Y int `json:"map_y"`
	W int `json:"map_w"`
	H int `json:"map_h"`
}

type kennelResponse struct {
	ID            string    `json:"id"`
	ShelterID     string    `json:"shelter_id"`
	Name          string    `json:"name"`
	Capacity      int       `json:"capacity"`
	OccupiedCount int       `json:"occupied_count"`
	OverCapacity  bool      `json:"over_capacity"`
	Status        string    `json:"status"`
	LengthCm      int       `json:"length_cm,omitempty"`
	WidthCm       int       `json:"width_cm,omitempty"`
	MapX          int       `json:"map_x"`
	MapY          int       `json:"map_y"`
	MapW          int       `json:"map_w"`
	MapH          int       `json:"map_h"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func createKennelHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.ShelterID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createKennelRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		k, err := svc.Create(r.Context(), claims.ShelterID, CreateInput{
			Name:     req.Name,
			Capacity: req.Capacity,
			Status:   req.Status,
			LengthCm: req.LengthCm,
			WidthCm:  req.WidthCm,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, toKennelResponse(k))
	}
}

func listKennelsHandler(svc *Service, occ OccupancyCounter) http.HandlerFunc {
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

		counts := map[string]int{}
		if occ != nil {
			counts, err = occ.CountByKennel(r.Context(), claims.ShelterID)
			if err != nil {
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}
		}

		out := make([]kennelResponse, 0, len(items))
		for _, k := range items {
			k.OccupiedCount = counts[k.ID]
			out = append(out, toKennelResponse(k))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func getKennelHandler(svc *Service, occ OccupancyCounter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.ShelterID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		k, err := svc.ForShelter(r.Context(), chi.URLParam(r, "kennelID"), claims.ShelterID)
		if err != nil {
			http.Error(w, "kennel not found", http.StatusNotFound)
			return
		}

		if occ != nil {
			counts, err := occ.CountByKennel(r.Context(), claims.ShelterID)
			if err == nil {
				k.OccupiedCount = counts[k.ID]
			}
		}

		writeJSON(w, http.StatusOK, toKennelResponse(k))
	}
}

func updateGeometryHandler(svc *Service, caps capabilities.Resolver) http.HandlerFunc {
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

		var req geometryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		k, err := svc.UpdateGeometry(r.Context(), chi.URLParam(r, "kennelID"), claims.ShelterID, GeometryInput{
			X: req.X,
			Y: req.Y,
			W: req.W,
			H: req.H,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, ErrNotFound):
				http.Error(w, "kennel not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, toKennelResponse(k))
	}
}

func toKennelResponse(k Kennel) kennelResponse {
	return kennelResponse{
		ID:            k.ID,
		ShelterID:     k.ShelterID,
		Name:          k.Name,
		Capacity:      k.Capacity,
		OccupiedCount: k.OccupiedCount,
		OverCapacity:  k.OverCapacity(),
		Status:        string(k.Status),
		LengthCm:      k.LengthCm,
		WidthCm:       k.WidthCm,
		MapX:          k.MapX,
		MapY:          k.MapY,
		MapW:          k.MapW,
		MapH:          k.MapH,
		CreatedAt:     k.CreatedAt,
		UpdatedAt:     k.UpdatedAt,
	}
}

// writeJSON está duplicado a propósito en los handlers de cada módulo
// (igual que en kennels/animals/layout) para no crear helpers compartidos antes de tiempo.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
