package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/darknight08zz/protocol456/internal/dependencies/clock"
	"github.com/darknight08zz/protocol456/internal/dependencies/random"
	"github.com/darknight08zz/protocol456/internal/services/admin"
	"github.com/darknight08zz/protocol456/internal/services/game"
	"github.com/darknight08zz/protocol456/internal/services/ledger"
	"github.com/darknight08zz/protocol456/internal/services/roster"
	"github.com/darknight08zz/protocol456/internal/storage"
	"github.com/darknight08zz/protocol456/internal/storage/memory"
	redisstorage "github.com/darknight08zz/protocol456/internal/storage/redis"
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

	// Services
	RosterService  *roster.Service
	LedgerService  *ledger.Service
	GameController *game.Controller
	AdminService   *admin.Service
}

// Config holds configuration for the application factory
type Config struct {
	// Game holds the session parameters (team capacity, round count,
	// round timeout). If zero value, defaults to ledger.DefaultConfig()
	Game ledger.Config
	// AdminPassphrase gates the operator endpoints (optional)
	// If empty, the admin surface is disabled
	AdminPassphrase string
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

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	// Use default game config if not provided
	gameCfg := cfg.Game
	if gameCfg.TotalRounds == 0 {
		gameCfg = ledger.DefaultConfig()
	}

	adminService, err := admin.New(cfg.AdminPassphrase)
	if err != nil {
		return nil, err
	}

	app := newWithDependencies(store, clk, rnd, gameCfg, logger)
	app.AdminService = adminService
	return app, nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, gameCfg ledger.Config, logger *slog.Logger) *App {
	// Create services
	rosterService := roster.New(store, clk, rnd, gameCfg.TotalTeams, logger)
	ledgerService := ledger.New(store, clk, gameCfg, logger)
	gameController := game.NewController(store, rosterService, ledgerService, logger)

	return &App{
		Storage:        store,
		Clock:          clk,
		Random:         rnd,
		RosterService:  rosterService,
		LedgerService:  ledgerService,
		GameController: gameController,
	}
}
