package sse

import (
	"encoding/json"
	"log/slog"

	"github.com/pkalnins/tycoon-go/internal/model"
)

// Broadcaster pushes change events to SSE clients. Events carry only
// identifiers; clients fetch the snapshot to get current state, so a
// lost event degrades to a late refresh rather than a divergent view.
type Broadcaster struct {
	hubManager *HubManager
	logger     *slog.Logger
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hubManager *HubManager, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hubManager: hubManager,
		logger:     logger.With(slog.String("component", "sse-broadcaster")),
	}
}

// changeEvent is the wire payload for game change notifications
type changeEvent struct {
	GameID model.GameID `json:"game_id"`
}

// GameChanged notifies all clients watching the game that its state
// changed and a snapshot refetch is due. Satisfies the turn
// controller's notifier interface.
func (b *Broadcaster) GameChanged(gameID model.GameID) {
	hub := b.hubManager.GetHub(gameID)
	if hub == nil {
		return
	}

	data, err := json.Marshal(changeEvent{GameID: gameID})
	if err != nil {
		b.logger.Error("sse failed to marshal change event",
			slog.String("game_id", string(gameID)),
			slog.Any("error", err))
		return
	}
	hub.BroadcastEvent("game-changed", string(data))
}

// GameFinished tells clients the game reached its end state
func (b *Broadcaster) GameFinished(gameID model.GameID) {
	hub := b.hubManager.GetHub(gameID)
	if hub == nil {
		return
	}

	data, err := json.Marshal(changeEvent{GameID: gameID})
	if err != nil {
		b.logger.Error("sse failed to marshal finish event",
			slog.String("game_id", string(gameID)),
			slog.Any("error", err))
		return
	}
	hub.BroadcastEvent("game-finished", string(data))
}

// PlayerJoined tells waiting-room clients the seat list changed
func (b *Broadcaster) PlayerJoined(gameID model.GameID) {
	hub := b.hubManager.GetHub(gameID)
	if hub == nil {
		return
	}
	hub.BroadcastEvent("player-joined", string(gameID))
}

// GameStarted tells waiting-room clients play has begun
func (b *Broadcaster) GameStarted(gameID model.GameID) {
	hub := b.hubManager.GetHub(gameID)
	if hub == nil {
		return
	}
	hub.BroadcastEvent("game-started", string(gameID))
}
