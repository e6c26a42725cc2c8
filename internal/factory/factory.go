package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/uolchat/batepapo/internal/dependencies/clock"
	"github.com/uolchat/batepapo/internal/services/chat"
	"github.com/uolchat/batepapo/internal/services/directory"
	"github.com/uolchat/batepapo/internal/services/presence"
	"github.com/uolchat/batepapo/internal/storage"
	"github.com/uolchat/batepapo/internal/storage/memory"
	redisstorage "github.com/uolchat/batepapo/internal/storage/redis"
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
	Clock clock.Clock

	// Services
	Chat            *chat.Service
	Directory       *directory.Service
	PresenceMonitor *presence.Monitor
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
	// PresenceConfig holds sweep timing (optional)
	// If zero value, defaults to presence.DefaultConfig()
	PresenceConfig presence.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
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

	return newWithDependencies(store, clk, cfg.PresenceConfig, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, presenceCfg presence.Config, logger *slog.Logger) *App {
	chatService := chat.New(store, clk, logger)
	directoryService := directory.New(store, chatService, clk, logger)
	presenceMonitor := presence.New(directoryService, clk, presenceCfg, logger)

	return &App{
		Storage:         store,
		Clock:           clk,
		Chat:            chatService,
		Directory:       directoryService,
		PresenceMonitor: presenceMonitor,
	}
}
