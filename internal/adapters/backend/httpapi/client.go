package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"shelter-map/internal/domain/animals"
	"shelter-map/internal/domain/kennels"
	"shelter-map/internal/platform/httpclient"
	"shelter-map/internal/ports/backend"
)

// Client implementa backend.API contra el REST del shelter-map API.
// Es el adapter que embebe el companion app cuando el motor corre fuera
// del proceso del server.
type Client struct {
	http    *httpclient.Client
	headers map[string]string
}

type Config struct {
	BaseURL string
	Timeout time.Duration

	// Token de staff; si está vacío se usan los headers de debug (modo dev).
	Token string

	DebugUserID    string
	DebugShelterID string
}

func New(cfg Config) (*Client, error) {
	hc, err := httpclient.NewWithBaseURL(cfg.BaseURL, cfg.Timeout)
	if err != nil {
		return nil, err
	}

	headers := map[string]string{}
	if t := strings.TrimSpace(cfg.Token); t != "" {
		headers["Authorization"] = "Bearer " + t
	} else {
		headers["X-Debug-User-ID"] = strings.TrimSpace(cfg.DebugUserID)
		headers["X-Debug-Shelter-ID"] = strings.TrimSpace(cfg.DebugShelterID)
	}

	return &Client{http: hc, headers: headers}, nil
}

// DTOs espejo de los responses del API (ver kennels/animals handler).
type kennelDTO struct {
	ID            string    `json:"id"`
	ShelterID     string    `json:"shelter_id"`
	Name          string    `json:"name"`
	Capacity      int       `json:"capacity"`
	OccupiedCount int       `json:"occupied_count"`
	Status        string    `json:"status"`
	LengthCm      int       `json:"length_cm"`
	WidthCm       int       `json:"width_cm"`
	MapX          int       `json:"map_x"`
	MapY          int       `json:"map_y"`
	MapW          int       `json:"map_w"`
	MapH          int       `json:"map_h"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type animalDTO struct {
	ID        string    `json:"id"`
	ShelterID string    `json:"shelter_id"`
	Name      string    `json:"name"`
	PhotoURL  string    `json:"photo_url"`
	KennelID  string    `json:"kennel_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Client) ListKennels(ctx context.Context) ([]kennels.Kennel, error) {
	var dtos []kennelDTO
	if err := c.http.DoJSON(ctx, http.MethodGet, "/kennels", c.headers, nil, &dtos); err != nil {
		return nil, err
	}

	out := make([]kennels.Kennel, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, kennels.Kennel{
			ID:            d.ID,
			ShelterID:     d.ShelterID,
			Name:          d.Name,
			Capacity:      d.Capacity,
			OccupiedCount: d.OccupiedCount,
			Status:        kennels.Status(d.Status),
			LengthCm:      d.LengthCm,
			WidthCm:       d.WidthCm,
			MapX:          d.MapX,
			MapY:          d.MapY,
			MapW:          d.MapW,
			MapH:          d.MapH,
			CreatedAt:     d.CreatedAt,
			UpdatedAt:     d.UpdatedAt,
		})
	}
	return out, nil
}

func (c *Client) ListAnimals(ctx context.Context) ([]animals.Animal, error) {
	var dtos []animalDTO
	if err := c.http.DoJSON(ctx, http.MethodGet, "/animals", c.headers, nil, &dtos); err != nil {
		return nil, err
	}

	out := make([]animals.Animal, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, animals.Animal{
			ID:        d.ID,
			ShelterID: d.ShelterID,
			Name:      d.Name,
			PhotoURL:  d.PhotoURL,
			KennelID:  d.KennelID,
			CreatedAt: d.CreatedAt,
			UpdatedAt: d.UpdatedAt,
		})
	}
	return out, nil
}

func (c *Client) UpdateKennelGeometry(ctx context.Context, kennelID string, g backend.Geometry) error {
	body := map[string]int{
		"map_x": g.X,
		"map_y": g.Y,
		"map_w": g.W,
		"map_h": g.H,
	}
	return c.http.DoJSON(ctx, http.MethodPatch, "/kennels/"+kennelID+"/geometry", c.headers, body, nil)
}

func (c *Client) MoveAnimal(ctx context.Context, animalID, targetKennelID string) error {
	body := map[string]string{
		"target_kennel_id": targetKennelID,
	}
	return c.http.DoJSON(ctx, http.MethodPost, "/animals/"+animalID+"/move", c.headers, body, nil)
}

var _ backend.API = (*Client)(nil)
