package model

// TileID uniquely identifies a tile within a game
type TileID string

// TileType classifies a board tile
type TileType string

const (
	TileStart     TileType = "start"
	TileProperty  TileType = "property"
	TilePort      TileType = "port"
	TileTax       TileType = "tax"
	TileChance    TileType = "chance"
	TileCommunity TileType = "community"
	TileJail      TileType = "jail" // Just visiting unless jailed
	TileGoToJail  TileType = "go_to_jail"
	TileFree      TileType = "free"
	TileChurch    TileType = "church"
)

// Tile represents one board position in a game. Tiles are created from
// the board template at game creation and carry per-game ownership state.
type Tile struct {
	ID     TileID
	GameID GameID
	Index  int
	Name   string
	Type   TileType

	// Price is the purchase cost for property/port tiles, and the
	// levy amount for tax/church tiles.
	Price        int
	BaseRent     int
	BuildingCost int

	OwnerID   *PlayerID // nil when unowned
	Buildings int       // Building level, 0..MaxBuildings
}

// MaxBuildings bounds the building level on a single property
const MaxBuildings = 4

// Ownable reports whether the tile can be bought
func (t *Tile) Ownable() bool {
	return t.Type == TileProperty || t.Type == TilePort
}

// OwnedBy reports whether the tile is owned by the given player
func (t *Tile) OwnedBy(playerID PlayerID) bool {
	return t.OwnerID != nil && *t.OwnerID == playerID
}

// Rent returns the rent due when landing on this tile. Property rent
// scales with buildings; port rent scales with the number of ports the
// owner holds (passed by the caller).
func (t *Tile) Rent(ownerPorts int) int {
	switch t.Type {
	case TileProperty:
		return t.BaseRent * (1 + t.Buildings)
	case TilePort:
		if ownerPorts < 1 {
			ownerPorts = 1
		}
		return t.BaseRent * ownerPorts
	default:
		return 0
	}
}

// TileAt returns the tile at the given board index, or nil
func TileAt(tiles []*Tile, index int) *Tile {
	for _, t := range tiles {
		if t.Index == index {
			return t
		}
	}
	return nil
}

// BuildingsOwned counts buildings across all tiles owned by the player
func BuildingsOwned(tiles []*Tile, playerID PlayerID) int {
	total := 0
	for _, t := range tiles {
		if t.OwnedBy(playerID) {
			total += t.Buildings
		}
	}
	return total
}

// PortsOwned counts port tiles owned by the player
func PortsOwned(tiles []*Tile, playerID PlayerID) int {
	count := 0
	for _, t := range tiles {
		if t.Type == TilePort && t.OwnedBy(playerID) {
			count++
		}
	}
	return count
}
