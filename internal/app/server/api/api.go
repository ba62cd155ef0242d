package api

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/exp/slog"

	"datasets/internal/app/server/api/http/dataset"
	"datasets/internal/app/server/api/http/health"
	"datasets/internal/app/server/api/http/middleware"
	"datasets/internal/app/server/api/http/middleware/cors"
	"datasets/internal/app/server/api/http/middleware/logger"
	"datasets/internal/app/server/config"
	domain "datasets/internal/domain/dataset"
	"datasets/internal/infrastructure/storage"
)

type Handlers struct {
	Health  *health.Handler
	Dataset *dataset.Handler
}

// New builds the router with every operation registered through huma.
func New(cfg *config.Config, st *storage.Storage, log *slog.Logger) *chi.Mux {
	mux := chi.NewMux()
	mux.Use(chimw.RealIP)
	mux.Use(chimw.Recoverer)
	mux.Use(cors.New(cfg.Server.AllowedOrigin))

	humaConfig := huma.DefaultConfig("Datasets API", "1.0.0")
	// Drops the $schema field and Link header huma adds to bodies.
	humaConfig.CreateHooks = nil

	API := humachi.New(mux, humaConfig)

	h := handlers(cfg, st, log)
	h.Health.SetupRoutes(API)
	h.Dataset.SetupRoutes(API)

	return mux
}

func handlers(cfg *config.Config, st *storage.Storage, log *slog.Logger) *Handlers {
	requestLog := logger.New(log).Middleware()
	stack := middleware.NewStack()

	healthHandler := health.NewHandler(st, log, stack.Push(requestLog).Take())

	service := domain.NewService(
		st.Datasets,
		domain.NewRequestValidator(),
		domain.NewBcryptHasher(cfg.Auth.BcryptCost),
		log,
	)
	datasetHandler := dataset.NewHandler(service, log, stack.Push(requestLog).Take())

	return &Handlers{
		Health:  healthHandler,
		Dataset: datasetHandler,
	}
}
