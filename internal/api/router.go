package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/pkalnins/tycoon-go/internal/api/handler"
	"github.com/pkalnins/tycoon-go/internal/api/middleware"
	"github.com/pkalnins/tycoon-go/internal/realtime/sse"
	"github.com/pkalnins/tycoon-go/internal/services/auth"
	"github.com/pkalnins/tycoon-go/internal/services/bot"
	"github.com/pkalnins/tycoon-go/internal/services/lobby"
	"github.com/pkalnins/tycoon-go/internal/services/recovery"
	"github.com/pkalnins/tycoon-go/internal/services/turn"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger          *slog.Logger
	AuthService     *auth.Service
	LobbyController *lobby.Controller
	TurnController  *turn.Controller
	RecoveryService *recovery.Service
	BotService      *bot.Service
	HubManager      *sse.HubManager
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	userHandler := handler.NewUserHandler(cfg.AuthService)
	gameHandler := handler.NewGameHandler(cfg.LobbyController, cfg.TurnController, cfg.RecoveryService, cfg.HubManager, cfg.Logger)
	turnHandler := handler.NewTurnHandler(cfg.TurnController, cfg.BotService)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// User routes (no auth required for creating users/logging in)
	api.HandleFunc("/users/guest", userHandler.CreateGuest).Methods(http.MethodPost)
	api.HandleFunc("/users/register", userHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/users/login", userHandler.Login).Methods(http.MethodPost)

	// Protected user routes
	userProtected := api.PathPrefix("/users").Subrouter()
	userProtected.Use(authMiddleware)
	userProtected.HandleFunc("/me", userHandler.GetMe).Methods(http.MethodGet)
	userProtected.HandleFunc("/logout", userHandler.Logout).Methods(http.MethodPost)

	// Game routes (all require auth)
	games := api.PathPrefix("/games").Subrouter()
	games.Use(authMiddleware)
	games.HandleFunc("", gameHandler.Create).Methods(http.MethodPost)
	games.HandleFunc("/{game_id}", gameHandler.Get).Methods(http.MethodGet)
	games.HandleFunc("/{game_id}/log", gameHandler.Log).Methods(http.MethodGet)
	games.HandleFunc("/{game_id}/join", gameHandler.Join).Methods(http.MethodPost)
	games.HandleFunc("/{game_id}/local-players", gameHandler.AddLocalPlayer).Methods(http.MethodPost)
	games.HandleFunc("/{game_id}/start", gameHandler.Start).Methods(http.MethodPost)
	games.HandleFunc("/{game_id}/reconnect", gameHandler.Reconnect).Methods(http.MethodPost)
	games.HandleFunc("/{game_id}/events", gameHandler.Events).Methods(http.MethodGet)

	// Turn routes (all require auth)
	games.HandleFunc("/{game_id}/roll", turnHandler.Roll).Methods(http.MethodPost)
	games.HandleFunc("/{game_id}/resolve", turnHandler.Resolve).Methods(http.MethodPost)
	games.HandleFunc("/{game_id}/end-turn", turnHandler.EndTurn).Methods(http.MethodPost)
	games.HandleFunc("/{game_id}/jail/pay", turnHandler.PayJailFine).Methods(http.MethodPost)
	games.HandleFunc("/{game_id}/jail/card", turnHandler.UseJailCard).Methods(http.MethodPost)
	games.HandleFunc("/{game_id}/buy", turnHandler.BuyTile).Methods(http.MethodPost)
	games.HandleFunc("/{game_id}/build", turnHandler.Build).Methods(http.MethodPost)
	games.HandleFunc("/{game_id}/auto-turn", turnHandler.AutoTurn).Methods(http.MethodPost)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
