// Package board holds the fixed board template and the game's economic
// constants. Tiles created from the template carry per-game state; the
// template itself is immutable reference data.
package board

import (
	"fmt"

	"github.com/pkalnins/tycoon-go/internal/model"
)

// Economic constants shared by every game
const (
	PassStartBonus = 200
	JailFine       = 50
	JailIndex      = 12 // Board index of the jail tile
)

// TemplateTile describes one tile of the board template
type TemplateTile struct {
	Index        int
	Name         string
	Type         model.TileType
	Price        int
	BaseRent     int
	BuildingCost int
}

// template is the default 24-tile board. Indices are fixed; tile state
// (ownership, buildings) lives on the per-game model.Tile rows.
var template = []TemplateTile{
	{0, "Start", model.TileStart, 0, 0, 0},
	{1, "Maple Lane", model.TileProperty, 60, 10, 50},
	{2, "Community Chest", model.TileCommunity, 0, 0, 0},
	{3, "Birch Street", model.TileProperty, 60, 12, 50},
	{4, "City Tax", model.TileTax, 100, 0, 0},
	{5, "North Harbour", model.TilePort, 120, 25, 0},
	{6, "Cedar Avenue", model.TileProperty, 100, 16, 50},
	{7, "Chance", model.TileChance, 0, 0, 0},
	{8, "Willow Road", model.TileProperty, 100, 18, 50},
	{9, "Elm Square", model.TileProperty, 120, 20, 60},
	{10, "Market Row", model.TileProperty, 140, 22, 60},
	{11, "Old Town Gate", model.TileProperty, 140, 24, 60},
	{12, "Jail", model.TileJail, 0, 0, 0},
	{13, "Rose Boulevard", model.TileProperty, 160, 26, 80},
	{14, "Community Chest", model.TileCommunity, 0, 0, 0},
	{15, "Granite Court", model.TileProperty, 180, 28, 80},
	{16, "Harbour Levy", model.TileTax, 150, 0, 0},
	{17, "South Harbour", model.TilePort, 120, 25, 0},
	{18, "Go To Jail", model.TileGoToJail, 0, 0, 0},
	{19, "King's Crescent", model.TileProperty, 220, 35, 100},
	{20, "Church", model.TileChurch, 100, 0, 0},
	{21, "Cathedral Walk", model.TileProperty, 240, 38, 100},
	{22, "Chance", model.TileChance, 0, 0, 0},
	{23, "Castle Hill", model.TileProperty, 280, 45, 120},
}

// Size returns the number of tiles on the board
func Size() int {
	return len(template)
}

// Tiles materializes the template into per-game tile rows
func Tiles(gameID model.GameID) []*model.Tile {
	tiles := make([]*model.Tile, len(template))
	for i, tt := range template {
		tiles[i] = &model.Tile{
			ID:           model.TileID(fmt.Sprintf("%s-t%02d", gameID, tt.Index)),
			GameID:       gameID,
			Index:        tt.Index,
			Name:         tt.Name,
			Type:         tt.Type,
			Price:        tt.Price,
			BaseRent:     tt.BaseRent,
			BuildingCost: tt.BuildingCost,
		}
	}
	return tiles
}
