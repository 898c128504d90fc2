package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/fardannozami/habit-streak/internal/config"
	"github.com/fardannozami/habit-streak/internal/domain"
	"github.com/fardannozami/habit-streak/internal/infra/postgres"
	"github.com/fardannozami/habit-streak/internal/infra/sqlite"
	"github.com/fardannozami/habit-streak/internal/logger"
)

// Store is a ready-to-use record store with its connection.
type Store interface {
	domain.Store
	Ping(ctx context.Context) error
}

// Open connects to the configured backend and creates the tables. The
// returned *sql.DB must be closed by the caller.
func Open(ctx context.Context, cfg config.Config) (Store, *sql.DB, error) {
	switch cfg.StoreBackend {
	case config.BackendPostgres:
		db, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		store := postgres.NewStore(db)
		if err := store.InitTable(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		logger.Info("store ready", "backend", cfg.StoreBackend)
		return store, db, nil

	case config.BackendSQLite:
		if dir := filepath.Dir(cfg.SQLitePath); dir != "" {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, nil, fmt.Errorf("failed to create data dir: %w", err)
			}
		}
		db, err := sql.Open("sqlite", sqlite.DSN(cfg.SQLitePath))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open database: %w", err)
		}
		store := sqlite.NewStore(db)
		if err := store.InitTable(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		logger.Info("store ready", "backend", cfg.StoreBackend, "path", cfg.SQLitePath)
		return store, db, nil
	}
	return nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
}
