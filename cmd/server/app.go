package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/scry-visual/internal/config"
	"github.com/phrazzld/scry-visual/internal/events"
	"github.com/phrazzld/scry-visual/internal/platform/memory"
	"github.com/phrazzld/scry-visual/internal/platform/postgres"
	"github.com/phrazzld/scry-visual/internal/platform/sqlite"
	"github.com/phrazzld/scry-visual/internal/service/auth"
	"github.com/phrazzld/scry-visual/internal/service/visual"
	"github.com/phrazzld/scry-visual/internal/store"
)

// application holds all the shared application dependencies.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	cardSource   store.CardSource
	sessionStore store.SessionStore

	eventEmitter *events.InMemoryEventEmitter

	jwtService    auth.JWTService
	visualService visual.Service
}

// newApplication wires stores and services from cfg over an open database.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}

	switch cfg.Database.Driver {
	case config.DriverSQLite:
		app.cardSource = sqlite.NewCardSource(db, logger)
	default:
		app.cardSource = postgres.NewPostgresCardSource(db, logger)
	}

	switch cfg.Game.SessionStore {
	case config.SessionStorePostgres:
		app.sessionStore = postgres.NewPostgresSessionStore(db, logger)
	default:
		app.sessionStore = memory.NewSessionStore(logger)
	}

	app.eventEmitter = events.NewInMemoryEventEmitter(logger)
	app.eventEmitter.RegisterHandler(events.NewLogHandler(logger))

	app.visualService, err = visual.NewService(
		app.cardSource,
		app.sessionStore,
		cfg.Game,
		logger,
		visual.WithEventEmitter(app.eventEmitter),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize visual service: %w", err)
	}

	logger.Info("application initialized",
		slog.String("card_source", fmt.Sprintf("%T", app.cardSource)),
		slog.String("session_store", fmt.Sprintf("%T", app.sessionStore)))

	return app, nil
}
