package router

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	mem "dog-adoption/internal/adapters/storage/memory"
	pg "dog-adoption/internal/adapters/storage/postgres"
	sqlitekv "dog-adoption/internal/adapters/storage/sqlite"
	"dog-adoption/internal/domain/shelter"
	"dog-adoption/internal/middleware"
	"dog-adoption/internal/platform/logger"
)

type Options struct {
	Log logger.Logger // nil = logger desde env

	// Opcional: backend explícito (tests). Si no viene, se elige por env:
	// DB_DSN → Postgres, SQLITE_PATH → sqlite, si no, in-memory.
	Persistence shelter.Persistence

	// Opcional: catálogo inicial para un almacén vacío. nil = catálogo built-in.
	Seed []shelter.Dog

	// NoSeed desactiva la siembra (tests que quieren arrancar vacío).
	NoSeed bool
}

// New arma el composition root: elige backend, carga el estado previo,
// siembra el catálogo por defecto si hace falta y registra las rutas.
func New(opts Options) (http.Handler, *shelter.Store) {
	log := opts.Log
	if log == nil {
		log = logger.NewFromEnv()
	}

	persist := opts.Persistence
	if persist == nil {
		persist = persistenceFromEnv(log)
	}

	store := shelter.NewStore(persist, log)

	ctx := context.Background()
	store.Load(ctx)
	if !opts.NoSeed {
		seed := opts.Seed
		if seed == nil {
			seed = shelter.DefaultCatalog(time.Now())
		}
		store.SeedDefaults(ctx, seed)
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLog(log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	shelter.RegisterRoutes(r, store)

	return r, store
}

func persistenceFromEnv(log logger.Logger) shelter.Persistence {
	if dsn := os.Getenv("DB_DSN"); dsn != "" {
		db, err := pg.Open(dsn)
		if err == nil {
			return pg.NewPersistence(db)
		}
		log.Warn("postgres open failed, falling back", map[string]any{"error": err.Error()})
	}

	if path := os.Getenv("SQLITE_PATH"); path != "" {
		db, err := sqlitekv.Open(path)
		if err == nil {
			return sqlitekv.NewPersistence(db)
		}
		log.Warn("sqlite open failed, falling back", map[string]any{"error": err.Error()})
	}

	// Sin backend durable configurado: estado solo de la sesión.
	log.Info("using in-memory persistence", nil)
	return mem.NewPersistence()
}
