package model

// Snapshot is a consistent point-in-time read of every entity for one
// game. Reconnecting clients receive a snapshot instead of a turn
// replay; state is always read fresh, never reconstructed from the log.
type Snapshot struct {
	Game    *Game
	Players []*Player
	Tiles   []*Tile
	LogTail []*GameLog
}
