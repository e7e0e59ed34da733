package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/pkalnins/tycoon-go/internal/api/middleware"
	"github.com/pkalnins/tycoon-go/internal/api/request"
	"github.com/pkalnins/tycoon-go/internal/api/response"
	"github.com/pkalnins/tycoon-go/internal/model"
	"github.com/pkalnins/tycoon-go/internal/realtime/sse"
	"github.com/pkalnins/tycoon-go/internal/services/lobby"
	"github.com/pkalnins/tycoon-go/internal/services/recovery"
	"github.com/pkalnins/tycoon-go/internal/services/turn"
)

// GameHandler handles game lifecycle endpoints: creation, joining,
// starting, state reads, reconnection and the SSE stream.
type GameHandler struct {
	lobbyController *lobby.Controller
	turnController  *turn.Controller
	recoveryService *recovery.Service
	hubManager      *sse.HubManager
	broadcaster     *sse.Broadcaster
}

// NewGameHandler creates a new game handler
func NewGameHandler(
	lobbyController *lobby.Controller,
	turnController *turn.Controller,
	recoveryService *recovery.Service,
	hubManager *sse.HubManager,
	logger *slog.Logger,
) *GameHandler {
	var broadcaster *sse.Broadcaster
	if hubManager != nil {
		broadcaster = sse.NewBroadcaster(hubManager, logger)
	}
	return &GameHandler{
		lobbyController: lobbyController,
		turnController:  turnController,
		recoveryService: recoveryService,
		hubManager:      hubManager,
		broadcaster:     broadcaster,
	}
}

// Create handles POST /api/v1/games
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())

	var req request.CreateGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	cfg := model.GameConfig{
		Language:            req.Language,
		InitialBalance:      req.InitialBalance,
		WinCondition:        model.WinCondition(req.WinCondition),
		RoundLimit:          req.RoundLimit,
		ChurchGoal:          req.ChurchGoal,
		DrawWithReplacement: req.DrawWithReplacement,
	}

	game, err := h.lobbyController.CreateGame(r.Context(), user, cfg)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.GameFromModel(game))
}

// Get handles GET /api/v1/games/{game_id}
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	gameID := model.GameID(mux.Vars(r)["game_id"])

	snapshot, err := h.turnController.Snapshot(r.Context(), gameID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SnapshotFromModel(snapshot))
}

// Log handles GET /api/v1/games/{game_id}/log
func (h *GameHandler) Log(w http.ResponseWriter, r *http.Request) {
	gameID := model.GameID(mux.Vars(r)["game_id"])

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			WriteError(w, NewInvalidRequestError("limit must be an integer"))
			return
		}
		limit = parsed
	}

	entries, err := h.turnController.LogTail(r.Context(), gameID, limit)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameLogTailFromModel(entries))
}

// Join handles POST /api/v1/games/{game_id}/join
func (h *GameHandler) Join(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())
	gameID := model.GameID(mux.Vars(r)["game_id"])

	var req request.JoinGameRequest
	if r.Body != nil {
		// Body is optional for joins
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	player, err := h.lobbyController.JoinGame(r.Context(), gameID, user, req.DisplayName, req.Avatar)
	if err != nil {
		WriteError(w, err)
		return
	}

	if h.broadcaster != nil {
		h.broadcaster.PlayerJoined(gameID)
	}

	response.JSON(w, http.StatusCreated, response.PlayerFromModel(player))
}

// AddLocalPlayer handles POST /api/v1/games/{game_id}/local-players
func (h *GameHandler) AddLocalPlayer(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())
	gameID := model.GameID(mux.Vars(r)["game_id"])

	var req request.AddLocalPlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	player, err := h.lobbyController.AddLocalPlayer(r.Context(), gameID, user.ID, req.DisplayName, req.Avatar)
	if err != nil {
		WriteError(w, err)
		return
	}

	if h.broadcaster != nil {
		h.broadcaster.PlayerJoined(gameID)
	}

	response.JSON(w, http.StatusCreated, response.PlayerFromModel(player))
}

// Start handles POST /api/v1/games/{game_id}/start
func (h *GameHandler) Start(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())
	gameID := model.GameID(mux.Vars(r)["game_id"])

	game, err := h.lobbyController.StartGame(r.Context(), gameID, user.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	if h.broadcaster != nil {
		h.broadcaster.GameStarted(gameID)
	}

	response.JSON(w, http.StatusOK, response.GameFromModel(game))
}

// Reconnect handles POST /api/v1/games/{game_id}/reconnect
func (h *GameHandler) Reconnect(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())
	gameID := model.GameID(mux.Vars(r)["game_id"])

	snapshot, err := h.recoveryService.Reconnect(r.Context(), gameID, user.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SnapshotFromModel(snapshot))
}

// Events handles GET /api/v1/games/{game_id}/events (SSE stream)
func (h *GameHandler) Events(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())
	gameID := model.GameID(mux.Vars(r)["game_id"])

	// Verify the game exists before holding a stream open
	if _, err := h.lobbyController.GetGame(r.Context(), gameID); err != nil {
		WriteError(w, err)
		return
	}

	hub := h.hubManager.GetOrCreateHub(gameID)
	sse.ServeSSE(w, r, hub, user.ID)
}
