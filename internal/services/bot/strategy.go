package bot

import (
	"github.com/pkalnins/tycoon-go/internal/model"
)

// Strategy answers the discretionary questions of an automated turn.
// The mandatory mechanics (rolling, resolving, ending) are driven by
// the Service regardless of strategy.
type Strategy interface {
	// ShouldBuy decides whether to buy the unowned tile the player is
	// standing on.
	ShouldBuy(player *model.Player, tile *model.Tile) bool

	// BuildTarget picks the index of an owned tile to build on, or -1
	// to build nothing this turn.
	BuildTarget(player *model.Player, tiles []*model.Tile) int

	// ShouldPayJailFine decides whether to buy out of jail instead of
	// rolling for doubles.
	ShouldPayJailFine(player *model.Player) bool
}
