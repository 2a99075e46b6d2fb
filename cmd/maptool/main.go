// maptool es un companion de terminal para el plano: carga el mapa contra
// un shelter-map API y permite reproducir drags desde la línea de comandos.
// Sirve para debuggear el motor sin levantar el dashboard.
//
// Ejemplos:
//
//	maptool -api http://localhost:8080 -user u1 -shelter s1
//	maptool -api http://localhost:8080 -user u1 -shelter s1 -drag-kennel <id> -dx 50 -dy 30
//	maptool -api http://localhost:8080 -user u1 -shelter s1 -drag-animal <id> -to <kennelID>
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"shelter-map/internal/adapters/backend/httpapi"
	"shelter-map/internal/adapters/kv/file"
	"shelter-map/internal/adapters/kv/rediskv"
	"shelter-map/internal/adapters/notify/lognotify"
	"shelter-map/internal/domain/layout"
	"shelter-map/internal/platform/config"
	"shelter-map/internal/platform/logger"
	"shelter-map/internal/ports/kv"
)

func main() {
	var (
		apiURL  = flag.String("api", "http://localhost:8080", "base URL del shelter-map API")
		token   = flag.String("token", "", "token de staff (vacío = headers de debug)")
		user    = flag.String("user", "", "user id de debug")
		shelter = flag.String("shelter", "", "shelter id de debug")

		dragKennel = flag.String("drag-kennel", "", "kennel a arrastrar")
		dragAnimal = flag.String("drag-animal", "", "animal a arrastrar")
		toKennel   = flag.String("to", "", "kennel destino del animal (vacío = canvas abierto)")
		dx         = flag.Int("dx", 0, "delta x del drag")
		dy         = flag.Int("dy", 0, "delta y del drag")
	)
	flag.Parse()

	log.SetFlags(0)

	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	backendAPI, err := httpapi.New(httpapi.Config{
		BaseURL:        *apiURL,
		Timeout:        10 * time.Second,
		Token:          *token,
		DebugUserID:    *user,
		DebugShelterID: *shelter,
	})
	if err != nil {
		log.Fatalf("backend error: %v", err)
	}

	store, err := openStore(cfg.Storage)
	if err != nil {
		log.Fatalf("kv error: %v", err)
	}

	lg := logger.NewFromEnv()
	engine := layout.NewEngine(layout.DefaultConfig(), layout.Deps{
		Backend: backendAPI,
		Store:   store,
		Notify:  lognotify.New(lg),
		Log:     lg,
	})

	ctx := context.Background()
	if err := engine.Load(ctx); err != nil {
		log.Fatalf("load error: %v", err)
	}

	switch {
	case *dragKennel != "":
		if err := engine.StartDrag(layout.KennelBox(*dragKennel)); err != nil {
			log.Fatalf("drag error: %v", err)
		}
		if err := engine.Drop(ctx, layout.Canvas(), *dx, *dy); err != nil {
			log.Fatalf("drop error: %v", err)
		}

	case *dragAnimal != "":
		if err := engine.StartDrag(layout.AnimalToken(*dragAnimal)); err != nil {
			log.Fatalf("drag error: %v", err)
		}
		target := layout.Canvas()
		if *toKennel != "" {
			target = layout.KennelZone(*toKennel)
		}
		if err := engine.Drop(ctx, target, *dx, *dy); err != nil {
			log.Fatalf("drop error: %v", err)
		}
	}

	// Drenar escrituras antes de imprimir (y de salir).
	engine.Flush()

	bounds := engine.CanvasBounds()
	fmt.Printf("canvas %dx%d\n", bounds.Width, bounds.Height)
	for id, p := range engine.Placements() {
		switch p.Kind {
		case layout.PlacementAnchored:
			fmt.Printf("animal %s -> kennel %s\n", id, p.KennelID)
		case layout.PlacementFree:
			fmt.Printf("animal %s -> free (%d,%d)\n", id, p.X, p.Y)
		default:
			fmt.Printf("animal %s -> unassigned\n", id)
		}
	}
}

// openStore elige el kv local: Redis si está configurado, si no archivo.
func openStore(sc config.StorageConfig) (kv.Store, error) {
	if sc.RedisAddr != "" {
		return rediskv.New(rediskv.Config{Addr: sc.RedisAddr}), nil
	}

	dir := sc.StateDir
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(base, "shelter-map")
	}
	return file.New(dir)
}
