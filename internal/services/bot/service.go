package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pkalnins/tycoon-go/internal/model"
	"github.com/pkalnins/tycoon-go/internal/services/turn"
)

// ErrUnknownStrategy indicates the named strategy is not registered
var ErrUnknownStrategy = errors.New("unknown bot strategy")

const (
	// DefaultStrategy is used when no strategy is named
	DefaultStrategy = "random"

	// maxTurnSteps is a safety limit on the action loop of a single
	// turn, generous enough for chained doubles.
	maxTurnSteps = 24
)

// ActionType represents the kind of action an automated turn took
type ActionType string

const (
	ActionUsedJailCard ActionType = "used_jail_card"
	ActionPaidJailFine ActionType = "paid_jail_fine"
	ActionRolled       ActionType = "rolled"
	ActionResolved     ActionType = "resolved"
	ActionBought       ActionType = "bought"
	ActionBuilt        ActionType = "built"
	ActionEndedTurn    ActionType = "ended_turn"
)

// Action is a single step taken during an automated turn
type Action struct {
	Type      ActionType
	PlayerID  model.PlayerID
	TileIndex int
}

// Service plays complete turns for seats nobody is driving by hand,
// going through the same turn controller as every other actor.
type Service struct {
	turns      *turn.Controller
	strategies map[string]Strategy
	logger     *slog.Logger
}

// NewService creates a new bot Service
func NewService(turns *turn.Controller, strategies map[string]Strategy, logger *slog.Logger) *Service {
	return &Service{
		turns:      turns,
		strategies: strategies,
		logger:     logger.With(slog.String("component", "bot-service")),
	}
}

// PlayTurn drives the seat through one complete turn: jail decisions,
// rolling, resolving, optional purchases and builds, and ending the
// turn. Doubles earn extra rolls within the same call. It stops as soon
// as play passes to another seat, the seat is eliminated, or the game
// finishes. Returns the steps taken and the final snapshot.
func (s *Service) PlayTurn(ctx context.Context, gameID model.GameID, playerID model.PlayerID, strategyName string) ([]Action, *model.Snapshot, error) {
	if strategyName == "" {
		strategyName = DefaultStrategy
	}
	strategy, ok := s.strategies[strategyName]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", ErrUnknownStrategy, strategyName)
	}

	snap, err := s.turns.Snapshot(ctx, gameID)
	if err != nil {
		return nil, nil, err
	}

	var actions []Action
	record := func(t ActionType, tileIndex int) {
		actions = append(actions, Action{Type: t, PlayerID: playerID, TileIndex: tileIndex})
	}

	for step := 0; step < maxTurnSteps; step++ {
		if snap.Game.Status != model.GameStatusActive {
			break
		}
		current := model.CurrentPlayer(snap.Game, snap.Players)
		if current == nil || current.ID != playerID {
			break
		}

		switch snap.Game.Phase {
		case model.PhaseAwaitingRoll:
			if current.InJail {
				if current.JailCards > 0 {
					if snap, err = s.turns.UseJailCard(ctx, gameID, playerID); err != nil {
						return actions, nil, err
					}
					record(ActionUsedJailCard, -1)
					continue
				}
				if strategy.ShouldPayJailFine(current) {
					if snap, err = s.turns.PayJailFine(ctx, gameID, playerID); err != nil {
						return actions, nil, err
					}
					record(ActionPaidJailFine, -1)
					continue
				}
			}
			if snap, err = s.turns.RollDice(ctx, gameID, playerID); err != nil {
				return actions, nil, err
			}
			record(ActionRolled, -1)

		case model.PhaseResolving:
			if snap, err = s.turns.ResolveLanding(ctx, gameID, playerID); err != nil {
				return actions, nil, err
			}
			record(ActionResolved, -1)

		case model.PhaseAwaitingEndTurn:
			tile := model.TileAt(snap.Tiles, current.Position)
			if tile != nil && strategy.ShouldBuy(current, tile) {
				if snap, err = s.turns.BuyTile(ctx, gameID, playerID); err != nil {
					return actions, nil, err
				}
				record(ActionBought, tile.Index)
				continue
			}
			if target := strategy.BuildTarget(current, snap.Tiles); target >= 0 {
				if snap, err = s.turns.Build(ctx, gameID, playerID, target); err != nil {
					return actions, nil, err
				}
				record(ActionBuilt, target)
				continue
			}
			if snap, err = s.turns.EndTurn(ctx, gameID, playerID); err != nil {
				return actions, nil, err
			}
			record(ActionEndedTurn, -1)

		default:
			return actions, snap, nil
		}
	}

	s.logger.Info("automated turn played",
		slog.String("game_id", string(gameID)),
		slog.String("player_id", string(playerID)),
		slog.Int("actions", len(actions)),
	)
	return actions, snap, nil
}
