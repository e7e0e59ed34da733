package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/pkalnins/tycoon-go/internal/api/middleware"
	"github.com/pkalnins/tycoon-go/internal/api/request"
	"github.com/pkalnins/tycoon-go/internal/api/response"
	"github.com/pkalnins/tycoon-go/internal/model"
	"github.com/pkalnins/tycoon-go/internal/services/bot"
	"github.com/pkalnins/tycoon-go/internal/services/turn"
)

// TurnHandler handles in-game turn actions
type TurnHandler struct {
	turnController *turn.Controller
	botService     *bot.Service
}

// NewTurnHandler creates a new turn handler
func NewTurnHandler(turnController *turn.Controller, botService *bot.Service) *TurnHandler {
	return &TurnHandler{
		turnController: turnController,
		botService:     botService,
	}
}

// Roll handles POST /api/v1/games/{game_id}/roll
func (h *TurnHandler) Roll(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, h.turnController.RollDice)
}

// Resolve handles POST /api/v1/games/{game_id}/resolve
func (h *TurnHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, h.turnController.ResolveLanding)
}

// EndTurn handles POST /api/v1/games/{game_id}/end-turn
func (h *TurnHandler) EndTurn(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, h.turnController.EndTurn)
}

// PayJailFine handles POST /api/v1/games/{game_id}/jail/pay
func (h *TurnHandler) PayJailFine(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, h.turnController.PayJailFine)
}

// UseJailCard handles POST /api/v1/games/{game_id}/jail/card
func (h *TurnHandler) UseJailCard(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, h.turnController.UseJailCard)
}

// BuyTile handles POST /api/v1/games/{game_id}/buy
func (h *TurnHandler) BuyTile(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, h.turnController.BuyTile)
}

// Build handles POST /api/v1/games/{game_id}/build
func (h *TurnHandler) Build(w http.ResponseWriter, r *http.Request) {
	var req request.BuildRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	h.act(w, r, func(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (*model.Snapshot, error) {
		return h.turnController.Build(ctx, gameID, playerID, req.TileIndex)
	})
}

// AutoTurn handles POST /api/v1/games/{game_id}/auto-turn. It plays a
// complete turn for the acting seat using a bot strategy, which lets
// the host move local seats along without issuing every action by hand.
func (h *TurnHandler) AutoTurn(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())
	gameID := model.GameID(mux.Vars(r)["game_id"])

	playerID, err := h.resolveActor(r, gameID, user)
	if err != nil {
		WriteError(w, err)
		return
	}

	actions, snapshot, err := h.botService.PlayTurn(r.Context(), gameID, playerID, r.URL.Query().Get("strategy"))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AutoTurnFromModel(actions, snapshot))
}

// turnOp is the common shape of turn controller operations
type turnOp func(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (*model.Snapshot, error)

// act resolves the acting seat and invokes the operation
func (h *TurnHandler) act(w http.ResponseWriter, r *http.Request, op turnOp) {
	user := middleware.MustGetUser(r.Context())
	gameID := model.GameID(mux.Vars(r)["game_id"])

	playerID, err := h.resolveActor(r, gameID, user)
	if err != nil {
		WriteError(w, err)
		return
	}

	snapshot, err := op(r.Context(), gameID, playerID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SnapshotFromModel(snapshot))
}

// resolveActor maps the authenticated user to the seat acting in the
// game. The optional player_id query parameter lets the host act for a
// local seat; a user can otherwise act only through their own seat.
func (h *TurnHandler) resolveActor(r *http.Request, gameID model.GameID, user *model.User) (model.PlayerID, error) {
	snapshot, err := h.turnController.Snapshot(r.Context(), gameID)
	if err != nil {
		return "", err
	}

	if explicit := r.URL.Query().Get("player_id"); explicit != "" {
		for _, p := range snapshot.Players {
			if p.ID != model.PlayerID(explicit) {
				continue
			}
			if p.HeldBy(user.ID) {
				return p.ID, nil
			}
			if p.UserID == nil && snapshot.Game.HostID == user.ID {
				return p.ID, nil
			}
			return "", model.ErrNotYourTurn
		}
		return "", model.ErrPlayerNotFound
	}

	for _, p := range snapshot.Players {
		if p.HeldBy(user.ID) {
			return p.ID, nil
		}
	}
	return "", model.ErrPlayerNotFound
}
