// Package main implements the entry point for the Scry visual match server,
// which runs the image/term matching game over a deck's flashcards.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/scry-visual/internal/config"
	"github.com/phrazzld/scry-visual/internal/platform/logger"
	"github.com/phrazzld/scry-visual/internal/platform/postgres"
	"github.com/spf13/pflag"
)

// cliOptions are the flags that steer startup rather than configuration.
type cliOptions struct {
	configFile string
	envFile    string
	migrate    string
}

func main() {
	fs := pflag.NewFlagSet("scry-visual", pflag.ExitOnError)
	config.RegisterFlags(fs)

	var opts cliOptions
	fs.StringVar(&opts.configFile, "config", "", "path to a YAML config file")
	fs.StringVar(&opts.envFile, "env-file", ".env", "path to a dotenv file (ignored if missing)")
	fs.StringVar(&opts.migrate, "migrate", "",
		"run a migration command (up, down, status, version) and exit")

	// ExitOnError: Parse exits on bad flags.
	_ = fs.Parse(os.Args[1:])

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, fs, opts); err != nil {
		slog.Error("server exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// run loads configuration, wires the application and serves until ctx is done.
func run(ctx context.Context, fs *pflag.FlagSet, opts cliOptions) error {
	cfg, err := config.Load(
		config.WithConfigFile(opts.configFile),
		config.WithEnvFile(opts.envFile),
		config.WithFlags(fs),
	)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("db_driver", cfg.Database.Driver),
		slog.String("session_store", cfg.Game.SessionStore))

	db, err := setupAppDatabase(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			log.Error("failed to close database", slog.String("error", cerr.Error()))
		}
	}()

	if opts.migrate != "" {
		if cfg.Database.Driver != config.DriverPostgres {
			return fmt.Errorf("migrations require the %s driver", config.DriverPostgres)
		}
		return postgres.Migrate(ctx, db, opts.migrate, log)
	}

	app, err := newApplication(cfg, log, db)
	if err != nil {
		return err
	}

	return app.startHTTPServer(ctx, app.setupRouter())
}
