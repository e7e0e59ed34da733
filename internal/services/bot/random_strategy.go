package bot

import (
	"github.com/pkalnins/tycoon-go/internal/board"
	"github.com/pkalnins/tycoon-go/internal/dependencies/random"
	"github.com/pkalnins/tycoon-go/internal/model"
)

// balanceReserve is what a random bot keeps untouched so a single rent
// hit does not bankrupt it immediately.
const balanceReserve = 100

// RandomStrategy buys and builds on a coin flip whenever it can afford
// to, keeping a small reserve.
type RandomStrategy struct {
	random random.Random
}

// NewRandomStrategy creates a RandomStrategy
func NewRandomStrategy(rnd random.Random) *RandomStrategy {
	return &RandomStrategy{random: rnd}
}

func (s *RandomStrategy) ShouldBuy(player *model.Player, tile *model.Tile) bool {
	if !tile.Ownable() || tile.OwnerID != nil {
		return false
	}
	if player.Balance < tile.Price+balanceReserve {
		return false
	}
	return s.random.Intn(2) == 0
}

func (s *RandomStrategy) BuildTarget(player *model.Player, tiles []*model.Tile) int {
	var candidates []int
	for _, t := range tiles {
		if t.Type != model.TileProperty || !t.OwnedBy(player.ID) {
			continue
		}
		if t.Buildings >= model.MaxBuildings {
			continue
		}
		if player.Balance < t.BuildingCost+balanceReserve {
			continue
		}
		candidates = append(candidates, t.Index)
	}
	if len(candidates) == 0 {
		return -1
	}
	if s.random.Intn(2) != 0 {
		return -1
	}
	return candidates[s.random.Intn(len(candidates))]
}

func (s *RandomStrategy) ShouldPayJailFine(player *model.Player) bool {
	return player.Balance >= board.JailFine+balanceReserve
}
