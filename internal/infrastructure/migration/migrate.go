package migration

import (
	"embed"
	"errors"
	"fmt"
	"path"
	"strings"

	"datasets/internal/app/server/config"

	"github.com/golang-migrate/migrate/v4"
	// Blank imports register the database drivers and the file source for migrate.New
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations
var FS embed.FS

// embedScheme selects a directory of FS instead of a file:// source.
const embedScheme = "embed://"

// Migrator is the subset of *migrate.Migrate used here.
type Migrator interface {
	Up() error
	Close() (error, error)
}

// MigrationEngine opens a Migrator; tests substitute a fake.
type MigrationEngine func(sourceURL, databaseURL string) (Migrator, error)

type Migration struct {
	cfg    *config.Config
	engine MigrationEngine
}

func NewMigration(conf *config.Config, engine MigrationEngine) *Migration {
	return &Migration{
		cfg:    conf,
		engine: engine,
	}
}

// DefaultEngine opens embedded migrations for embed:// sources and defers
// to migrate.New for everything else.
func DefaultEngine(sourceURL, databaseURL string) (Migrator, error) {
	if dir, ok := strings.CutPrefix(sourceURL, embedScheme); ok {
		src, err := iofs.New(FS, path.Join("migrations", dir))
		if err != nil {
			return nil, fmt.Errorf("open embedded migrations: %w", err)
		}
		return migrate.NewWithSourceInstance("iofs", src, databaseURL)
	}
	return migrate.New(sourceURL, databaseURL)
}

// SourceURL is MIGRATIONS_PATH as a file:// URL when set, otherwise the
// embedded directory for the configured driver.
func (mg *Migration) SourceURL() string {
	if mg.cfg.DB.Migrations != "" {
		return "file://" + mg.cfg.DB.Migrations
	}
	return embedScheme + mg.cfg.DB.Driver
}

// DatabaseURL is the migrate URL of the configured database.
func (mg *Migration) DatabaseURL() string {
	if mg.cfg.DB.Driver == config.DriverSQLite {
		return "sqlite://" + mg.cfg.DB.DatabaseURI
	}
	return mg.cfg.DB.DatabaseURI
}

func (mg *Migration) Up() (err error) {
	m, err := mg.engine(mg.SourceURL(), mg.DatabaseURL())
	if err != nil {
		return err
	}
	defer func() {
		serr, dberr := m.Close()
		if serr != nil {
			if err != nil {
				err = fmt.Errorf("%w; migration source error: %v", err, serr)
			} else {
				err = serr
			}
		}
		if dberr != nil {
			if err != nil {
				err = fmt.Errorf("%w; migration database error: %v", err, dberr)
			} else {
				err = dberr
			}
		}
	}()
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up: %w", err)
	}
	return nil
}
