package layout

import (
	"encoding/json"
	"net/http"
	"strings"

	"shelter-map/internal/domain/kennels"
	"shelter-map/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes expone el snapshot del plano para el primer render del
// dashboard: geometría efectiva por kennel (persistida o auto-layout),
// ocupación y límites del canvas. Las posiciones libres de animales son
// client-only y no aparecen acá.
func RegisterRoutes(r chi.Router, cfg Config, kennelsSvc *kennels.Service, occ kennels.OccupancyCounter) {
	r.Get("/map", mapSnapshotHandler(cfg, kennelsSvc, occ))
}

type mapKennelResponse struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Status        string      `json:"status"`
	Capacity      int         `json:"capacity"`
	OccupiedCount int         `json:"occupied_count"`
	OverCapacity  bool        `json:"over_capacity"`
	Box           BoxGeometry `json:"box"`
	Stored        bool        `json:"stored"` // false = posición efímera de auto-layout
}

type mapSnapshotResponse struct {
	Kennels []mapKennelResponse `json:"kennels"`
	Canvas  Size                `json:"canvas"`
}

func mapSnapshotHandler(cfg Config, svc *kennels.Service, occ kennels.OccupancyCounter) http.HandlerFunc {
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

		boxes := make([]BoxGeometry, 0, len(items))
		out := make([]mapKennelResponse, 0, len(items))
		for i, k := range items {
			k.OccupiedCount = counts[k.ID]
			box := cfg.DefaultPosition(k, i)
			boxes = append(boxes, box)

			out = append(out, mapKennelResponse{
				ID:            k.ID,
				Name:          k.Name,
				Status:        string(k.Status),
				Capacity:      k.Capacity,
				OccupiedCount: k.OccupiedCount,
				OverCapacity:  k.OverCapacity(),
				Box:           box,
				Stored:        k.HasStoredGeometry(),
			})
		}

		writeJSON(w, http.StatusOK, mapSnapshotResponse{
			Kennels: out,
			Canvas:  cfg.CanvasBounds(boxes),
		})
	}
}

// Duplicado a propósito por módulo, ver nota en kennels/handler.go.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
