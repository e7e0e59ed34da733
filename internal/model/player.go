package model

import "time"

// PlayerID uniquely identifies a seat in a game
type PlayerID string

// Player represents a seat in a game. A seat may be held by an
// authenticated user or be a local player with no user attached.
type Player struct {
	ID     PlayerID
	GameID GameID
	UserID *UserID // nil for local players

	DisplayName string
	Avatar      string

	// Seat is the fixed turn-order index assigned at join time
	Seat int

	// Position on the board, always in [0, board length)
	Position int

	Balance int

	// Jail state
	InJail    bool
	JailTurns int // Failed escape attempts this jail stay
	JailCards int // Get-out-of-jail cards held

	// ImmunityUntil exempts the player from rent until the given round
	ImmunityUntil int

	SkipNextTurn bool

	// DoublesCount tracks consecutive doubles within the player's
	// current run of rolls; three in a row means jail.
	DoublesCount int

	Eliminated bool

	CreatedAt time.Time
}

// Active reports whether the player still holds a live seat
func (p *Player) Active() bool {
	return !p.Eliminated
}

// HeldBy reports whether the seat is held by the given user
func (p *Player) HeldBy(userID UserID) bool {
	return p.UserID != nil && *p.UserID == userID
}

// ImmuneToRent reports whether the player is exempt from rent in the
// given round.
func (p *Player) ImmuneToRent(round int) bool {
	return p.ImmunityUntil >= round && p.ImmunityUntil > 0
}

// ActivePlayers filters out eliminated seats, preserving seat order
func ActivePlayers(players []*Player) []*Player {
	var active []*Player
	for _, p := range players {
		if p.Active() {
			active = append(active, p)
		}
	}
	return active
}

// CurrentPlayer returns the seat whose turn it is, given the game's
// monotonic turn counter. Returns nil if no seat is active.
func CurrentPlayer(game *Game, players []*Player) *Player {
	active := ActivePlayers(players)
	if len(active) == 0 {
		return nil
	}
	return active[game.CurrentTurn%len(active)]
}
