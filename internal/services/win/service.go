package win

import (
	"github.com/pkalnins/tycoon-go/internal/model"
)

// Service evaluates win conditions. Evaluation is a pure read of the
// working set: it never mutates state, so running it twice over the
// same snapshot always yields the same verdict.
type Service struct{}

// New creates a new win condition evaluator
func New() *Service {
	return &Service{}
}

// Evaluate inspects the game after a committed turn and reports whether
// the configured win condition has been met. Exactly one condition kind
// is active per game.
func (s *Service) Evaluate(game *model.Game, players []*model.Player) (*model.GameResult, bool) {
	if game.Status == model.GameStatusFinished {
		return nil, false
	}

	switch game.WinCondition {
	case model.WinLastPlayerStanding:
		return s.lastPlayerStanding(players)
	case model.WinRoundLimit:
		return s.roundLimit(game, players)
	case model.WinChurchGoal:
		return s.churchGoal(game, players)
	default:
		return nil, false
	}
}

// lastPlayerStanding fires when all but one player is eliminated
func (s *Service) lastPlayerStanding(players []*model.Player) (*model.GameResult, bool) {
	active := model.ActivePlayers(players)
	if len(active) != 1 || len(players) < 2 {
		return nil, false
	}
	return &model.GameResult{
		Winner: active[0].ID,
		Reason: model.WinLastPlayerStanding,
	}, true
}

// roundLimit fires once the configured number of rounds has been
// played; the richest active player wins.
func (s *Service) roundLimit(game *model.Game, players []*model.Player) (*model.GameResult, bool) {
	active := model.ActivePlayers(players)
	if game.RoundLimit <= 0 || len(active) == 0 {
		return nil, false
	}
	if game.CurrentTurn/len(active) < game.RoundLimit {
		return nil, false
	}
	return richest(active, model.WinRoundLimit), true
}

// churchGoal fires once the church fund reaches the configured
// threshold; the richest active player wins.
func (s *Service) churchGoal(game *model.Game, players []*model.Player) (*model.GameResult, bool) {
	active := model.ActivePlayers(players)
	if game.ChurchGoal <= 0 || len(active) == 0 {
		return nil, false
	}
	if game.ChurchFund < game.ChurchGoal {
		return nil, false
	}
	return richest(active, model.WinChurchGoal), true
}

// richest picks the active player with the highest balance. Ties keep
// the first seat as winner and report the others in TieWith.
func richest(active []*model.Player, reason model.WinCondition) *model.GameResult {
	best := active[0]
	for _, p := range active[1:] {
		if p.Balance > best.Balance {
			best = p
		}
	}

	var ties []model.PlayerID
	for _, p := range active {
		if p.ID != best.ID && p.Balance == best.Balance {
			ties = append(ties, p.ID)
		}
	}

	return &model.GameResult{
		Winner:  best.ID,
		TieWith: ties,
		Reason:  reason,
	}
}
