package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	// database/sql driver "sqlite"
	_ "modernc.org/sqlite"

	"datasets/internal/app/server/config"
	"datasets/internal/infrastructure/migration"
)

const pragmas = "?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"

type Storage struct {
	db *sql.DB
}

// New applies migrations to the database file at cfg.DB.DatabaseURI and
// opens it with a single connection.
func New(ctx context.Context, cfg *config.Config) (*Storage, error) {
	path := strings.TrimSpace(cfg.DB.DatabaseURI)
	if path == "" {
		return nil, errors.New("sqlite path is required")
	}

	mg := migration.NewMigration(cfg, migration.DefaultEngine)
	if err := mg.Up(); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	db, err := sql.Open("sqlite", path+pragmas)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	return &Storage{db: db}, nil
}

func (s *Storage) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Storage) DB() *sql.DB {
	return s.db
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
