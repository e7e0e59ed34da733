package resolve

import (
	"fmt"

	"github.com/pkalnins/tycoon-go/internal/board"
	"github.com/pkalnins/tycoon-go/internal/model"
)

// Service computes the effects of a landing. It is a pure function of
// its inputs: it never mutates shared state and never touches storage,
// which keeps it independently testable. The turn machine applies the
// returned effects.
type Service struct{}

// New creates a new resolver
func New() *Service {
	return &Service{}
}

// Context carries the read-only working set a landing is resolved
// against.
type Context struct {
	Game    *model.Game
	Player  *model.Player
	Players []*model.Player
	Tiles   []*model.Tile
	Round   int
}

func (c *Context) playerByID(id model.PlayerID) *model.Player {
	for _, p := range c.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// Landing resolves the tile the player is standing on. For card tiles
// the caller draws the card first (inside the turn lock) and passes it
// in; card is nil otherwise.
func (s *Service) Landing(rc *Context, tile *model.Tile, card *model.Card) ([]model.Effect, error) {
	player := rc.Player

	switch tile.Type {
	case model.TileStart, model.TileJail, model.TileFree:
		return nil, nil

	case model.TileProperty, model.TilePort:
		return s.rent(rc, tile), nil

	case model.TileTax:
		return []model.Effect{{
			Kind: model.EffectTransaction,
			Transaction: &model.EconomyTransaction{
				PlayerID:  player.ID,
				Amount:    tile.Price,
				Reason:    tile.Name,
				Direction: model.DirectionExpense,
				ToChurch:  true,
			},
			Description: fmt.Sprintf("%s pays %d in taxes", player.DisplayName, tile.Price),
		}}, nil

	case model.TileChurch:
		return []model.Effect{{
			Kind: model.EffectTransaction,
			Transaction: &model.EconomyTransaction{
				PlayerID:  player.ID,
				Amount:    tile.Price,
				Reason:    "church donation",
				Direction: model.DirectionExpense,
				ToChurch:  true,
			},
			Description: fmt.Sprintf("%s donates %d to the church", player.DisplayName, tile.Price),
		}}, nil

	case model.TileChance, model.TileCommunity:
		if card == nil {
			return nil, model.ErrDeckEmpty
		}
		return s.Card(rc, card)

	case model.TileGoToJail:
		return []model.Effect{{
			Kind:        model.EffectGoToJail,
			Description: fmt.Sprintf("%s is sent to jail", player.DisplayName),
		}}, nil

	default:
		return nil, fmt.Errorf("unhandled tile type %q", tile.Type)
	}
}

// rent computes the rent owed when landing on an owned tile. No rent is
// due on unowned tiles, the player's own tiles, tiles whose owner is in
// jail, or while the lander holds rent immunity.
func (s *Service) rent(rc *Context, tile *model.Tile) []model.Effect {
	player := rc.Player
	if tile.OwnerID == nil || tile.OwnedBy(player.ID) {
		return nil
	}

	ownerID := *tile.OwnerID
	if owner := rc.playerByID(ownerID); owner != nil && owner.InJail {
		return nil
	}

	if player.ImmuneToRent(rc.Round) {
		return []model.Effect{{
			Kind:        model.EffectTransaction,
			Description: fmt.Sprintf("%s is immune to rent on %s", player.DisplayName, tile.Name),
		}}
	}

	amount := tile.Rent(model.PortsOwned(rc.Tiles, ownerID))
	return []model.Effect{
		{
			Kind: model.EffectTransaction,
			Transaction: &model.EconomyTransaction{
				PlayerID:  player.ID,
				Amount:    amount,
				Reason:    "rent for " + tile.Name,
				Direction: model.DirectionExpense,
			},
			Description: fmt.Sprintf("%s pays %d rent for %s", player.DisplayName, amount, tile.Name),
		},
		{
			Kind: model.EffectTransaction,
			Transaction: &model.EconomyTransaction{
				PlayerID:  ownerID,
				Amount:    amount,
				Reason:    "rent from " + tile.Name,
				Direction: model.DirectionIncome,
			},
			Description: fmt.Sprintf("owner of %s collects %d rent", tile.Name, amount),
		},
	}
}

// Card resolves a drawn card into effects. The switch covers every
// member of the CardAction enumeration; a value added to the enum
// without a branch here fails loudly with ErrUnknownCardAction.
func (s *Service) Card(rc *Context, card *model.Card) ([]model.Effect, error) {
	player := rc.Player
	text := card.TextIn(rc.Game.Language)

	switch card.Action {
	case model.CardAddMoney:
		return []model.Effect{{
			Kind: model.EffectTransaction,
			Transaction: &model.EconomyTransaction{
				PlayerID:  player.ID,
				Amount:    card.Value,
				Reason:    "card: " + text,
				Direction: model.DirectionIncome,
			},
			Description: text,
		}}, nil

	case model.CardLoseMoney:
		return []model.Effect{{
			Kind: model.EffectTransaction,
			Transaction: &model.EconomyTransaction{
				PlayerID:  player.ID,
				Amount:    card.Value,
				Reason:    "card: " + text,
				Direction: model.DirectionExpense,
				ToChurch:  true,
			},
			Description: text,
		}}, nil

	case model.CardGoToTile:
		return []model.Effect{{
			Kind:        model.EffectMove,
			MoveTo:      card.Value % board.Size(),
			Description: text,
		}}, nil

	case model.CardGoToTileBonus:
		// The bonus is only due when the forward move wraps past start
		target := card.Value % board.Size()
		return []model.Effect{{
			Kind:           model.EffectMove,
			MoveTo:         target,
			AwardPassBonus: target <= player.Position,
			Description:    text,
		}}, nil

	case model.CardGoToNearestPort:
		return []model.Effect{{
			Kind:        model.EffectMove,
			MoveTo:      nearestPort(rc.Tiles, player.Position),
			Description: text,
		}}, nil

	case model.CardGoToJail:
		return []model.Effect{{
			Kind:        model.EffectGoToJail,
			Description: text,
		}}, nil

	case model.CardGetOutOfJailFree:
		return []model.Effect{{
			Kind:        model.EffectJailCard,
			Description: text,
		}}, nil

	case model.CardPayPerBuilding:
		buildings := model.BuildingsOwned(rc.Tiles, player.ID)
		amount := card.Value * buildings
		if amount == 0 {
			return []model.Effect{{
				Kind:        model.EffectTransaction,
				Description: text + " (no buildings owned)",
			}}, nil
		}
		return []model.Effect{{
			Kind: model.EffectTransaction,
			Transaction: &model.EconomyTransaction{
				PlayerID:  player.ID,
				Amount:    amount,
				Reason:    "card: " + text,
				Direction: model.DirectionExpense,
				ToChurch:  true,
			},
			Description: fmt.Sprintf("%s (%d buildings, %d total)", text, buildings, amount),
		}}, nil

	default:
		return nil, fmt.Errorf("%w: %q", model.ErrUnknownCardAction, card.Action)
	}
}

// nearestPort returns the index of the first port tile at or after the
// given position, wrapping around the board.
func nearestPort(tiles []*model.Tile, from int) int {
	size := board.Size()
	for offset := 0; offset < size; offset++ {
		idx := (from + offset) % size
		if t := model.TileAt(tiles, idx); t != nil && t.Type == model.TilePort {
			return idx
		}
	}
	return from
}
