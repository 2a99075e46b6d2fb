package router

import (
	"database/sql"
	"net/http"
	"os"

	mem "shelter-map/internal/adapters/storage/memory"
	pg "shelter-map/internal/adapters/storage/postgres"
	"shelter-map/internal/domain/animals"
	"shelter-map/internal/domain/kennels"
	"shelter-map/internal/domain/layout"
	"shelter-map/internal/domain/moves"
	"shelter-map/internal/middleware"
	"shelter-map/internal/ports/auth"
	"shelter-map/internal/ports/capabilities"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev con headers de debug)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Opcional: gate de plan (map:edit). nil = sin gate.
	Capabilities capabilities.Resolver

	// Constantes del plano. Zero value = defaults del producto.
	Layout layout.Config
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	var (
		kennelRepo kennels.Repository
		animalRepo animals.Repository
		moveRepo   moves.Repository
	)

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			}
		}
	}

	if db != nil {
		kennelRepo = pg.NewKennelsRepo(db)
		animalRepo = pg.NewAnimalsRepo(db)
		moveRepo = pg.NewMovesRepo(db)
	} else {
		kennelRepo = mem.NewKennelRepo()
		animalRepo = mem.NewAnimalRepo()
		moveRepo = mem.NewMoveRepo()
	}

	layoutCfg := opts.Layout
	if layoutCfg == (layout.Config{}) {
		layoutCfg = layout.DefaultConfig()
	}

	// Services por módulo
	kennelsSvc := kennels.NewService(kennelRepo)
	movesSvc := moves.NewService(moveRepo)
	animalsSvc := animals.NewService(animalRepo, kennelsSvc, movesSvc)

	// Rutas por módulo
	kennels.RegisterRoutes(r, kennelsSvc, animalsSvc, opts.Capabilities)
	animals.RegisterRoutes(r, animalsSvc, opts.Capabilities)
	moves.RegisterRoutes(r, movesSvc, animalsSvc)
	layout.RegisterRoutes(r, layoutCfg, kennelsSvc, animalsSvc)

	return r
}
