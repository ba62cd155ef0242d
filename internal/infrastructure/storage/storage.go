package storage

import (
	"context"
	"fmt"

	"golang.org/x/exp/slog"

	"datasets/internal/app/server/config"
	"datasets/internal/domain/dataset"
	"datasets/internal/infrastructure/storage/postgres"
	"datasets/internal/infrastructure/storage/sqlite"
)

// Storage is an opened backend and its repositories.
type Storage struct {
	Datasets dataset.Repository

	backend interface {
		Ping(ctx context.Context) error
		Close() error
	}
}

// New opens the backend selected by cfg.DB.Driver.
func New(ctx context.Context, cfg *config.Config, log *slog.Logger) (*Storage, error) {
	switch cfg.DB.Driver {
	case config.DriverPostgres:
		st, err := postgres.New(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("postgres storage: %w", err)
		}
		return &Storage{
			Datasets: postgres.NewDatasetRepository(st.Pool(), log),
			backend:  st,
		}, nil
	case config.DriverSQLite:
		st, err := sqlite.New(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("sqlite storage: %w", err)
		}
		return &Storage{
			Datasets: sqlite.NewDatasetRepository(st.DB(), log),
			backend:  st,
		}, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DB.Driver)
	}
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.backend.Ping(ctx)
}

func (s *Storage) Close() error {
	return s.backend.Close()
}
