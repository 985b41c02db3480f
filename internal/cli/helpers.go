package cli

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jengzang/crime-analytics-go/internal/config"
	"github.com/jengzang/crime-analytics-go/internal/database"
)

// environment is the configuration shared by every subcommand
type environment struct {
	cfg     *config.Config
	catalog *config.Catalog
}

// load reads .env files, the environment and the dataset catalog
func (g *GlobalFlags) load() (*environment, error) {
	if err := config.LoadEnvFiles(g.EnvFile); err != nil {
		return nil, fmt.Errorf("loading %s: %w", g.EnvFile, err)
	}

	cfg := config.Load()
	if g.Datasets != "" {
		cfg.DatasetsFile = g.Datasets
	}

	catalog, err := config.LoadCatalog(cfg.DatasetsFile)
	if err != nil {
		return nil, err
	}

	return &environment{cfg: cfg, catalog: catalog}, nil
}

// openDatabase opens the configured database and applies pending migrations
func (e *environment) openDatabase(ctx context.Context) (*sql.DB, database.Dialect, error) {
	dsn := e.cfg.DSN()
	if e.cfg.DBDriver == "sqlite" && dsn != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
			return nil, nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, dialect, err := database.Open(database.Config{Driver: e.cfg.DBDriver, DSN: dsn})
	if err != nil {
		return nil, nil, err
	}

	if err := database.NewMigrationManager(db, dialect, e.catalog).RunMigrations(ctx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("running migrations: %w", err)
	}

	return db, dialect, nil
}
