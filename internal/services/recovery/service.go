package recovery

import (
	"context"
	"errors"
	"log/slog"

	"github.com/pkalnins/tycoon-go/internal/model"
	"github.com/pkalnins/tycoon-go/internal/storage"
)

const logTailLimit = 50

// Service rebuilds a client's view after a disconnect or page reload.
// Recovery is a fresh read of current state, never a replay: the client
// throws its stale view away and renders the snapshot.
type Service struct {
	storage storage.Storage
	logger  *slog.Logger
}

// New creates a new recovery service
func New(storage storage.Storage, logger *slog.Logger) *Service {
	return &Service{storage: storage, logger: logger}
}

// Reconnect validates that the remembered (game, user) pair is still
// live and returns a full snapshot. Three checks run in order: the game
// must exist, it must not be finished, and the user must still hold a
// seat. Any failure is a StaleSessionError naming the failed check, so
// the client knows to forget the session rather than retry.
func (s *Service) Reconnect(ctx context.Context, gameID model.GameID, userID model.UserID) (*model.Snapshot, error) {
	game, err := s.storage.GetGame(ctx, gameID)
	if err != nil {
		if errors.Is(err, model.ErrGameNotFound) {
			return nil, s.stale(gameID, userID, "game no longer exists")
		}
		return nil, err
	}

	if game.Status == model.GameStatusFinished {
		return nil, s.stale(gameID, userID, "game is finished")
	}

	players, err := s.storage.GetPlayersForGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	var seat *model.Player
	for _, p := range players {
		if p.HeldBy(userID) {
			seat = p
			break
		}
	}
	if seat == nil {
		return nil, s.stale(gameID, userID, "user holds no seat in this game")
	}
	if seat.Eliminated {
		return nil, s.stale(gameID, userID, "seat was eliminated")
	}

	tiles, err := s.storage.GetTilesForGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	tail, err := s.storage.GetLogTail(ctx, gameID, logTailLimit)
	if err != nil {
		return nil, err
	}

	s.logger.Info("session recovered",
		slog.String("game_id", string(gameID)),
		slog.String("user_id", string(userID)),
		slog.String("player_id", string(seat.ID)),
	)

	return &model.Snapshot{
		Game:    game,
		Players: players,
		Tiles:   tiles,
		LogTail: tail,
	}, nil
}

func (s *Service) stale(gameID model.GameID, userID model.UserID, check string) error {
	s.logger.Info("stale session rejected",
		slog.String("game_id", string(gameID)),
		slog.String("user_id", string(userID)),
		slog.String("check", check),
	)
	return &model.StaleSessionError{GameID: gameID, UserID: userID, Check: check}
}
