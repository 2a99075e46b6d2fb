package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"shelter-map/internal/adapters/auth/portal"
	"shelter-map/internal/adapters/capabilities/planfeatures"
	"shelter-map/internal/adapters/storage/postgres"
	"shelter-map/internal/domain/layout"
	"shelter-map/internal/platform/config"
	"shelter-map/internal/router"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	opts := router.Options{
		Layout: layoutConfig(cfg.Layout),
	}

	// Portal de identidad: sin PORTAL_URL queda el modo dev con headers de debug.
	if base := os.Getenv("PORTAL_URL"); base != "" {
		client, err := portal.NewClient(portal.Config{
			BaseURL: base,
			APIKey:  os.Getenv("PORTAL_API_KEY"),
		})
		if err != nil {
			log.Fatalf("portal error: %v", err)
		}
		opts.AuthVerifier = portal.NewVerifier(client)
	}

	// Gate de plan (map:edit). Sin PLANS_URL no hay gate.
	if base := os.Getenv("PLANS_URL"); base != "" {
		client, err := planfeatures.NewClient(planfeatures.Config{
			BaseURL: base,
			APIKey:  os.Getenv("PLANS_API_KEY"),
		})
		if err != nil {
			log.Fatalf("plan-features error: %v", err)
		}
		opts.Capabilities = planfeatures.NewResolver(client)
	}

	if cfg.Storage.DSN != "" {
		db, err := postgres.Open(cfg.Storage.DSN)
		if err != nil {
			log.Fatalf("postgres error: %v", err)
		}
		opts.DB = db
	}

	r := router.NewRouter(opts)

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Printf("starting server on %s", cfg.Server.Addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}

// layoutConfig pisa los defaults del producto con lo que venga del archivo
// (cero = no seteado).
func layoutConfig(lc config.LayoutConfig) layout.Config {
	out := layout.DefaultConfig()

	if lc.PixelsPerMeter > 0 {
		out.PixelsPerMeter = lc.PixelsPerMeter
	}
	if lc.MinBoxPx > 0 {
		out.MinBoxPx = lc.MinBoxPx
	}
	if lc.DefaultLengthCm > 0 {
		out.DefaultLengthCm = lc.DefaultLengthCm
	}
	if lc.DefaultWidthCm > 0 {
		out.DefaultWidthCm = lc.DefaultWidthCm
	}
	if lc.GridColumns > 0 {
		out.GridColumns = lc.GridColumns
	}
	if lc.GridGap > 0 {
		out.GridGap = lc.GridGap
	}
	if lc.GridMargin > 0 {
		out.GridMargin = lc.GridMargin
	}
	if lc.MinCanvasW > 0 {
		out.MinCanvasW = lc.MinCanvasW
	}
	if lc.MinCanvasH > 0 {
		out.MinCanvasH = lc.MinCanvasH
	}

	return out
}
