package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // Registers the pgx driver
	"github.com/phrazzld/scry-visual/internal/config"
	"github.com/phrazzld/scry-visual/internal/platform/sqlite"
)

// setupAppDatabase opens the configured database and checks the connection.
// PostgreSQL connections get a pool sized from config; SQLite uses the driver defaults.
func setupAppDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*sql.DB, error) {
	if cfg.Database.Driver == config.DriverSQLite {
		db, err := sqlite.Open(cfg.Database.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite card database: %w", err)
		}
		logger.Info("SQLite card database opened")
		return db, nil
	}

	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxOpenConns / 2)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("Database connection established")
	return db, nil
}
