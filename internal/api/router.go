package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/darknight08zz/protocol456/internal/api/handler"
	"github.com/darknight08zz/protocol456/internal/api/middleware"
	"github.com/darknight08zz/protocol456/internal/services/admin"
	"github.com/darknight08zz/protocol456/internal/services/game"
	"github.com/darknight08zz/protocol456/internal/services/ledger"
	"github.com/darknight08zz/protocol456/internal/services/roster"
	"github.com/darknight08zz/protocol456/internal/storage"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	RosterService  *roster.Service
	LedgerService  *ledger.Service
	GameController *game.Controller
	AdminService   *admin.Service
	Storage        storage.Storage
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	gameHandler := handler.NewGameHandler(cfg.RosterService, cfg.LedgerService, cfg.GameController)
	adminHandler := handler.NewAdminHandler(cfg.RosterService, cfg.GameController, cfg.Storage)

	// Create middleware
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)
	adminMiddleware := middleware.Admin(cfg.AdminService)

	// Game subrouter with common middleware
	api := r.PathPrefix("/api/round2").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Team-facing routes
	api.HandleFunc("/join", gameHandler.Join).Methods(http.MethodPost)
	api.HandleFunc("/submit", gameHandler.Submit).Methods(http.MethodPost)
	api.HandleFunc("/rounds/{number:[0-9]+}/status", gameHandler.RoundStatus).Methods(http.MethodGet)
	api.HandleFunc("/state", gameHandler.State).Methods(http.MethodGet)
	api.HandleFunc("/scoreboard", gameHandler.Scoreboard).Methods(http.MethodGet)

	// Operator routes (passphrase gated)
	adminRoutes := api.PathPrefix("/admin").Subrouter()
	adminRoutes.Use(adminMiddleware)
	adminRoutes.HandleFunc("/reset", adminHandler.Reset).Methods(http.MethodPost)
	adminRoutes.HandleFunc("/teams", adminHandler.Teams).Methods(http.MethodGet)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
