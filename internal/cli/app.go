package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/saubh/planwise/internal/config"
	"github.com/saubh/planwise/internal/domain/project"
	"github.com/saubh/planwise/internal/interchange"
	"github.com/saubh/planwise/internal/sqlite"
)

// app bundles the wired core for command handlers.
type app struct {
	cfg       config.Config
	logger    *slog.Logger
	svc       *project.Service
	validator *project.Validator
	formatter *project.Formatter
	importer  *interchange.Importer
}

// openApp loads config, opens the store, and loads the project snapshot.
// The returned closer must be deferred by the caller.
func openApp(ctx context.Context) (*app, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	if err := ensureDBDir(cfg.DB.Path); err != nil {
		return nil, nil, fmt.Errorf("preparing database path: %w", err)
	}

	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.RunMigrations(); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("running migrations: %w", err)
	}

	formatter, err := project.NewFormatter(cfg.Format.Locale, cfg.Format.Symbol)
	if err != nil {
		db.Close()
		return nil, nil, err
	}

	svc := project.NewService(sqlite.NewProjectRepository(db), logger)
	if err := svc.Load(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}

	a := &app{
		cfg:       cfg,
		logger:    logger,
		svc:       svc,
		validator: project.NewValidator(),
		formatter: formatter,
		importer:  interchange.NewImporter(svc, logger),
	}
	return a, func() { db.Close() }, nil
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
