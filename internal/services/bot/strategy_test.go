package bot

import (
	"testing"

	"github.com/pkalnins/tycoon-go/internal/dependencies/mocks"
	"github.com/pkalnins/tycoon-go/internal/model"
	"github.com/stretchr/testify/assert"
)

func owned(index int, owner model.PlayerID, tileType model.TileType, buildingCost, buildings int) *model.Tile {
	return &model.Tile{
		Index:        index,
		Type:         tileType,
		BuildingCost: buildingCost,
		Buildings:    buildings,
		OwnerID:      &owner,
	}
}

func TestShouldBuy(t *testing.T) {
	rnd := mocks.NewMockRandom()
	strategy := NewRandomStrategy(rnd)
	player := &model.Player{ID: "p0", Balance: 500}

	property := &model.Tile{Index: 3, Type: model.TileProperty, Price: 60}

	rnd.QueueIntn(0)
	assert.True(t, strategy.ShouldBuy(player, property))

	rnd.QueueIntn(1)
	assert.False(t, strategy.ShouldBuy(player, property))
}

func TestShouldBuyRejectsWithoutFlipping(t *testing.T) {
	strategy := NewRandomStrategy(mocks.NewMockRandom())
	player := &model.Player{ID: "p0", Balance: 500}

	tax := &model.Tile{Index: 4, Type: model.TileTax, Price: 100}
	assert.False(t, strategy.ShouldBuy(player, tax))

	taken := owned(3, "p1", model.TileProperty, 50, 0)
	taken.Price = 60
	assert.False(t, strategy.ShouldBuy(player, taken))

	expensive := &model.Tile{Index: 23, Type: model.TileProperty, Price: 450}
	assert.False(t, strategy.ShouldBuy(player, expensive))
}

func TestShouldBuyKeepsReserve(t *testing.T) {
	strategy := NewRandomStrategy(mocks.NewMockRandom())
	player := &model.Player{ID: "p0", Balance: 100}

	// Affordable outright but would eat into the reserve
	property := &model.Tile{Index: 3, Type: model.TileProperty, Price: 60}
	assert.False(t, strategy.ShouldBuy(player, property))
}

func TestBuildTarget(t *testing.T) {
	rnd := mocks.NewMockRandom()
	strategy := NewRandomStrategy(rnd)
	player := &model.Player{ID: "p0", Balance: 500}

	tiles := []*model.Tile{
		owned(3, "p0", model.TileProperty, 50, 0),
		owned(5, "p0", model.TilePort, 0, 0),
		owned(6, "p1", model.TileProperty, 50, 0),
		owned(9, "p0", model.TileProperty, 60, model.MaxBuildings),
	}

	// Flip says build, index picks the only candidate
	rnd.QueueIntn(0, 0)
	assert.Equal(t, 3, strategy.BuildTarget(player, tiles))

	// Flip says skip
	rnd.QueueIntn(1)
	assert.Equal(t, -1, strategy.BuildTarget(player, tiles))
}

func TestBuildTargetNoCandidates(t *testing.T) {
	strategy := NewRandomStrategy(mocks.NewMockRandom())
	player := &model.Player{ID: "p0", Balance: 500}

	tiles := []*model.Tile{
		owned(6, "p1", model.TileProperty, 50, 0),
	}

	assert.Equal(t, -1, strategy.BuildTarget(player, tiles))
}

func TestShouldPayJailFine(t *testing.T) {
	strategy := NewRandomStrategy(mocks.NewMockRandom())

	assert.True(t, strategy.ShouldPayJailFine(&model.Player{Balance: 1000}))
	assert.False(t, strategy.ShouldPayJailFine(&model.Player{Balance: 60}))
}
