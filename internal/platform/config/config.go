package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config del servicio. Se carga de un archivo TOML (opcional) y después se
// pisan valores con env vars, así el flujo dev de "solo env" sigue andando.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Storage StorageConfig `toml:"storage"`
	Layout  LayoutConfig  `toml:"layout"`
}

type ServerConfig struct {
	// Addr estilo ":8080".
	Addr string `toml:"addr"`
}

type StorageConfig struct {
	// DSN de Postgres. Vacío => repos in-memory (modo dev).
	DSN string `toml:"dsn"`

	// Redis para el kv de posiciones libres del companion. Vacío => archivo.
	RedisAddr string `toml:"redis_addr"`

	// Directorio del kv en archivo. Vacío => <os.UserConfigDir>/shelter-map.
	StateDir string `toml:"state_dir"`
}

// LayoutConfig espeja layout.Config en el archivo; los ceros significan
// "usar el default del producto". El mapeo a layout.Config lo hace el caller
// (router/main) para que platform no importe domain.
type LayoutConfig struct {
	PixelsPerMeter  int `toml:"pixels_per_meter"`
	MinBoxPx        int `toml:"min_box_px"`
	DefaultLengthCm int `toml:"default_length_cm"`
	DefaultWidthCm  int `toml:"default_width_cm"`
	GridColumns     int `toml:"grid_columns"`
	GridGap         int `toml:"grid_gap"`
	GridMargin      int `toml:"grid_margin"`
	MinCanvasW      int `toml:"min_canvas_w"`
	MinCanvasH      int `toml:"min_canvas_h"`
}

// Load carga la config. path vacío => env MAP_CONFIG; si tampoco hay archivo,
// quedan solo defaults + env.
func Load(path string) (Config, error) {
	cfg := Config{}
	cfg.Server.Addr = ":8080"

	if strings.TrimSpace(path) == "" {
		path = strings.TrimSpace(os.Getenv("MAP_CONFIG"))
	}

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: decode %s: %w", path, err)
		}
	}

	// Env overrides (ganan siempre)
	if v := strings.TrimSpace(os.Getenv("PORT")); v != "" {
		cfg.Server.Addr = ":" + v
	}
	if v := strings.TrimSpace(os.Getenv("DB_DSN")); v != "" {
		cfg.Storage.DSN = v
	}
	if v := strings.TrimSpace(os.Getenv("REDIS_ADDR")); v != "" {
		cfg.Storage.RedisAddr = v
	}
	if v := strings.TrimSpace(os.Getenv("MAP_STATE_DIR")); v != "" {
		cfg.Storage.StateDir = v
	}

	return cfg, nil
}
