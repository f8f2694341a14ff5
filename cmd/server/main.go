package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/darknight08zz/protocol456/internal/api"
	"github.com/darknight08zz/protocol456/internal/factory"
	"github.com/darknight08zz/protocol456/internal/services/ledger"
	redisstorage "github.com/darknight08zz/protocol456/internal/storage/redis"
)

// sweepInterval is how often the background sweeper checks the current
// round for timeout expiry
const sweepInterval = 5 * time.Second

func main() {
	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Build factory config from environment
	cfg := factory.Config{
		Game:            gameConfigFromEnv(logger),
		AdminPassphrase: os.Getenv("ADMIN_PASSPHRASE"),
		Logger:          logger,
		StorageType:     os.Getenv("STORAGE_TYPE"),
	}

	// Configure Redis if storage type is redis
	if cfg.StorageType == factory.StorageTypeRedis {
		redisURL := os.Getenv("REDIS_URL")
		if redisURL == "" {
			logger.Error("REDIS_URL required when STORAGE_TYPE=redis")
			os.Exit(1)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = redisURL
		cfg.RedisConfig = &redisCfg
	}

	// Create application factory
	app, err := factory.New(cfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if !app.AdminService.Enabled() {
		logger.Warn("ADMIN_PASSPHRASE not set, admin endpoints disabled")
	}

	// Create API router
	router := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		RosterService:  app.RosterService,
		LedgerService:  app.LedgerService,
		GameController: app.GameController,
		AdminService:   app.AdminService,
		Storage:        app.Storage,
	})

	// Create server
	serverConfig := api.DefaultServerConfig()
	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			logger.Error("invalid PORT", slog.String("value", port))
			os.Exit(1)
		}
		serverConfig.Port = p
	}
	server := api.NewServer(router, serverConfig, logger)

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// Background sweep so expired rounds settle even when nobody polls
	go app.GameController.RunSweeper(ctx, sweepInterval)

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}

// gameConfigFromEnv builds the session parameters, starting from the
// defaults and overriding from the environment
func gameConfigFromEnv(logger *slog.Logger) ledger.Config {
	cfg := ledger.DefaultConfig()

	if v := os.Getenv("TOTAL_TEAMS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			logger.Error("invalid TOTAL_TEAMS", slog.String("value", v))
			os.Exit(1)
		}
		cfg.TotalTeams = n
	}

	if v := os.Getenv("TOTAL_ROUNDS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			logger.Error("invalid TOTAL_ROUNDS", slog.String("value", v))
			os.Exit(1)
		}
		cfg.TotalRounds = n
	}

	if v := os.Getenv("ROUND_TIMEOUT_SECONDS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			logger.Error("invalid ROUND_TIMEOUT_SECONDS", slog.String("value", v))
			os.Exit(1)
		}
		cfg.RoundTimeout = time.Duration(n) * time.Second
	}

	return cfg
}
