package factory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mcoot/playerstore/internal/config"
	"github.com/mcoot/playerstore/internal/logging"
	"github.com/mcoot/playerstore/internal/services/registry"
	"github.com/mcoot/playerstore/internal/storage"
	"github.com/mcoot/playerstore/internal/storage/file"
	"github.com/mcoot/playerstore/internal/storage/memory"
	"github.com/mcoot/playerstore/internal/storage/postgres"
	redisstorage "github.com/mcoot/playerstore/internal/storage/redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Provider storage.Provider

	// Services
	Registry *registry.Service

	Logger *slog.Logger

	closer io.Closer
}

// Config holds configuration for the application factory
type Config struct {
	// Settings is the loaded configuration (optional)
	// If nil, config.Default() is used: a JSON file at ./data.json
	Settings *config.Config
	// Logger is the application logger (optional)
	// If nil, one is built from Settings.Log writing to stderr
	Logger *slog.Logger
}

// New creates a new application with all dependencies wired
func New(ctx context.Context, cfg Config) (*App, error) {
	settings := cfg.Settings
	if settings == nil {
		settings = config.Default()
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		l, err := logging.New(os.Stderr, settings.LoggingConfig())
		if err != nil {
			return nil, err
		}
		logger = l
	}

	provider, closer, err := newProvider(ctx, settings)
	if err != nil {
		return nil, err
	}

	logger.Info("storage configured", slog.String("type", settings.Storage.Type))

	app, err := newWithDependencies(ctx, provider, settings.RegistryConfig(), logger)
	if err != nil {
		if closer != nil {
			_ = closer.Close()
		}
		return nil, err
	}
	app.closer = closer
	return app, nil
}

// newProvider creates the persistence provider selected by settings.
// The closer is nil for providers that hold no connection.
func newProvider(ctx context.Context, settings *config.Config) (storage.Provider, io.Closer, error) {
	switch settings.Storage.Type {
	case config.StorageTypeFile:
		return file.New(settings.Storage.Path), nil, nil
	case config.StorageTypeMemory:
		return memory.New(), nil, nil
	case config.StorageTypeRedis:
		p, err := redisstorage.New(settings.RedisConfig())
		if err != nil {
			return nil, nil, err
		}
		return p, p, nil
	case config.StorageTypePostgres:
		p, err := postgres.New(settings.PostgresConfig())
		if err != nil {
			return nil, nil, err
		}
		if settings.Storage.Postgres.EnsureSchema {
			if err := p.EnsureSchema(ctx); err != nil {
				_ = p.Close()
				return nil, nil, fmt.Errorf("ensure schema: %w", err)
			}
		}
		return p, p, nil
	default:
		return nil, nil, errors.New("invalid storage type: must be 'file', 'memory', 'redis' or 'postgres'")
	}
}

// newWithDependencies creates an App around an existing provider (useful for testing)
func newWithDependencies(ctx context.Context, provider storage.Provider, registryCfg registry.Config, logger *slog.Logger) (*App, error) {
	reg, err := registry.New(ctx, provider, registryCfg, logger)
	if err != nil {
		return nil, err
	}

	return &App{
		Provider: provider,
		Registry: reg,
		Logger:   logger,
	}, nil
}

// Close releases any connection held by the provider
func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}
