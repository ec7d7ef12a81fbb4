package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/tableroom/tableroom/internal/dependencies/clock"
	"github.com/tableroom/tableroom/internal/dependencies/random"
	"github.com/tableroom/tableroom/internal/engine"
	"github.com/tableroom/tableroom/internal/services/identity"
	"github.com/tableroom/tableroom/internal/services/session"
	"github.com/tableroom/tableroom/internal/storage"
	"github.com/tableroom/tableroom/internal/storage/memory"
	redisstorage "github.com/tableroom/tableroom/internal/storage/redis"
	"github.com/tableroom/tableroom/internal/transport/sse"
	"github.com/tableroom/tableroom/internal/transport/ws"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Core
	Registry          *engine.Registry
	IdentityService   *identity.Service
	SessionController *session.Controller

	// Transports
	HubManager      *sse.HubManager
	Broadcaster     *sse.Broadcaster
	WebsocketServer *ws.Server
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	clk := clock.New()
	rnd := random.New()

	return newWithDependencies(store, clk, rnd, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, logger *slog.Logger) *App {
	registry := engine.NewRegistry(clk, logger)
	identityService := identity.New(store, clk, rnd, logger)
	sessionController := session.NewController(registry, identityService, logger)

	hubManager := sse.NewHubManager(logger)
	broadcaster := sse.NewBroadcaster(hubManager, logger)
	websocketServer := ws.NewServer(sessionController, logger)

	sessionController.AddMulticaster(broadcaster)
	sessionController.AddMulticaster(websocketServer)

	return &App{
		Storage:           store,
		Clock:             clk,
		Random:            rnd,
		Registry:          registry,
		IdentityService:   identityService,
		SessionController: sessionController,
		HubManager:        hubManager,
		Broadcaster:       broadcaster,
		WebsocketServer:   websocketServer,
	}
}

// Close releases resources held by the app
func (a *App) Close() error {
	if closer, ok := a.Storage.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
