package economy

import (
	"errors"
	"log/slog"

	"github.com/pkalnins/tycoon-go/internal/model"
)

// Service applies economy transactions to players. It works on the
// turn machine's in-memory working set; persistence happens when the
// turn commits.
//
// Apply is two-phase: a transaction that would leave the balance
// negative is never applied, a BankruptcyError is returned instead and
// the caller decides whether to liquidate assets or eliminate the
// player first.
type Service struct {
	logger *slog.Logger
}

// New creates a new economy service
func New(logger *slog.Logger) *Service {
	return &Service{logger: logger}
}

// Apply commits the full signed amount of the transaction, or fails
// without changing anything. An expense that exceeds the balance fails
// with *model.BankruptcyError carrying the shortfall.
func (s *Service) Apply(game *model.Game, player *model.Player, tx model.EconomyTransaction) error {
	next := player.Balance + tx.Signed()
	if next < 0 {
		return &model.BankruptcyError{
			PlayerID:  player.ID,
			Shortfall: -next,
			Reason:    tx.Reason,
		}
	}

	player.Balance = next
	if tx.ToChurch {
		game.ChurchFund += tx.Amount
	}

	s.logger.Debug("transaction applied",
		slog.String("game_id", string(game.ID)),
		slog.String("player_id", string(player.ID)),
		slog.String("reason", tx.Reason),
		slog.String("direction", string(tx.Direction)),
		slog.Int("amount", tx.Amount),
		slog.Int("balance", player.Balance),
	)
	return nil
}

// ApplyOrLiquidate applies the transaction, liquidating the player's
// buildings and then their tiles when the balance falls short. If the
// player still cannot cover the expense they are eliminated: the
// drained balance goes to the creditor (or the church fund when the
// transaction is a levy) and their remaining tiles are released or
// transferred per EliminatePlayer. Reports whether the player survived.
func (s *Service) ApplyOrLiquidate(
	game *model.Game,
	player *model.Player,
	tiles []*model.Tile,
	tx model.EconomyTransaction,
	creditor *model.Player,
) (survived bool, raised []model.EconomyTransaction, err error) {
	applyErr := s.Apply(game, player, tx)
	if applyErr == nil {
		return true, nil, nil
	}

	var bankruptcy *model.BankruptcyError
	if !errors.As(applyErr, &bankruptcy) {
		return false, nil, applyErr
	}

	// Plan the sell-off first without touching any tile, so an
	// elimination hands the creditor the player's assets whole.
	needed := tx.Amount - player.Balance
	plan := s.planLiquidation(player, tiles, needed)

	if player.Balance+planTotal(plan) < tx.Amount {
		// Even a full sell-off falls short: nothing is sold
		s.EliminatePlayer(game, player, tiles, creditor)
		return false, nil, nil
	}

	for _, step := range plan {
		if step.building {
			step.tile.Buildings--
		} else {
			step.tile.OwnerID = nil
		}
		raised = append(raised, step.tx)
		if err := s.Apply(game, player, step.tx); err != nil {
			return false, raised, err
		}
	}
	if err := s.Apply(game, player, tx); err != nil {
		return false, raised, err
	}
	return true, raised, nil
}

// liquidationStep is one planned asset sale: a building demolished at
// half building cost, or tile ownership released at half price.
type liquidationStep struct {
	tile     *model.Tile
	building bool
	tx       model.EconomyTransaction
}

// planLiquidation selects buildings and then tiles to sell until the
// needed amount is raised or the player has nothing left. It mutates
// nothing; the caller commits the steps only when they cover the
// expense.
func (s *Service) planLiquidation(player *model.Player, tiles []*model.Tile, needed int) []liquidationStep {
	var plan []liquidationStep
	total := 0

	for _, t := range tiles {
		if total >= needed {
			break
		}
		if !t.OwnedBy(player.ID) {
			continue
		}
		for level := t.Buildings; level > 0 && total < needed; level-- {
			value := t.BuildingCost / 2
			total += value
			plan = append(plan, liquidationStep{
				tile:     t,
				building: true,
				tx: model.EconomyTransaction{
					PlayerID:  player.ID,
					Amount:    value,
					Reason:    "sold building on " + t.Name,
					Direction: model.DirectionIncome,
				},
			})
		}
	}

	for _, t := range tiles {
		if total >= needed {
			break
		}
		if !t.OwnedBy(player.ID) {
			continue
		}
		value := t.Price / 2
		total += value
		plan = append(plan, liquidationStep{
			tile: t,
			tx: model.EconomyTransaction{
				PlayerID:  player.ID,
				Amount:    value,
				Reason:    "mortgaged " + t.Name,
				Direction: model.DirectionIncome,
			},
		})
	}

	return plan
}

// EliminatePlayer removes a player from the game. Their balance drains
// to the creditor (or is simply forfeited when there is none), their
// buildings are demolished, and their tiles transfer to the creditor or
// return to the bank.
func (s *Service) EliminatePlayer(game *model.Game, player *model.Player, tiles []*model.Tile, creditor *model.Player) {
	if creditor != nil {
		creditor.Balance += player.Balance
	}
	player.Balance = 0
	player.Eliminated = true

	for _, t := range tiles {
		if t.OwnedBy(player.ID) {
			t.Buildings = 0
			if creditor != nil {
				id := creditor.ID
				t.OwnerID = &id
			} else {
				t.OwnerID = nil
			}
		}
	}

	s.logger.Info("player eliminated",
		slog.String("game_id", string(game.ID)),
		slog.String("player_id", string(player.ID)),
	)
}

// BuyTile transfers an unowned ownable tile to the player at its price
func (s *Service) BuyTile(game *model.Game, player *model.Player, tile *model.Tile) error {
	if !tile.Ownable() {
		return model.ErrTileNotOwnable
	}
	if tile.OwnerID != nil {
		return model.ErrTileOwned
	}

	if err := s.Apply(game, player, model.EconomyTransaction{
		PlayerID:  player.ID,
		Amount:    tile.Price,
		Reason:    "bought " + tile.Name,
		Direction: model.DirectionExpense,
	}); err != nil {
		return err
	}

	id := player.ID
	tile.OwnerID = &id
	return nil
}

// Build raises the building level on a property the player owns
func (s *Service) Build(game *model.Game, player *model.Player, tile *model.Tile) error {
	if tile.Type != model.TileProperty {
		return model.ErrTileNotOwnable
	}
	if !tile.OwnedBy(player.ID) {
		return model.ErrNotTileOwner
	}
	if tile.Buildings >= model.MaxBuildings {
		return model.ErrBuildLimit
	}

	if err := s.Apply(game, player, model.EconomyTransaction{
		PlayerID:  player.ID,
		Amount:    tile.BuildingCost,
		Reason:    "built on " + tile.Name,
		Direction: model.DirectionExpense,
	}); err != nil {
		return err
	}

	tile.Buildings++
	return nil
}

func planTotal(plan []liquidationStep) int {
	total := 0
	for _, step := range plan {
		total += step.tx.Amount
	}
	return total
}
