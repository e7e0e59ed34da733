package model

import (
	"errors"
	"fmt"
)

// Common errors used across the application
var (
	// Turn machine errors
	ErrInvalidPhase = errors.New("operation not valid in current phase")
	ErrNotYourTurn  = errors.New("not this player's turn")
	ErrNotInJail    = errors.New("player is not in jail")
	ErrNoJailCard   = errors.New("player holds no get-out-of-jail card")

	// Lobby errors
	ErrGameNotJoinable     = errors.New("game is not accepting players")
	ErrAlreadyInGame       = errors.New("user already holds a seat in this game")
	ErrNotHost             = errors.New("user is not the host")
	ErrInsufficientPlayers = errors.New("insufficient players to start game")
	ErrGameFull            = errors.New("game is full")

	// Entity errors
	ErrGameNotFound   = errors.New("game not found")
	ErrPlayerNotFound = errors.New("player not found")
	ErrTileNotFound   = errors.New("tile not found")
	ErrUserNotFound   = errors.New("user not found")

	// Economy errors
	ErrTileNotOwnable = errors.New("tile cannot be bought")
	ErrTileOwned      = errors.New("tile already has an owner")
	ErrNotTileOwner   = errors.New("player does not own this tile")
	ErrBuildLimit     = errors.New("tile is at maximum building level")

	// Card errors
	ErrDeckEmpty         = errors.New("card deck is empty")
	ErrUnknownCardAction = errors.New("unknown card action")

	// Storage errors
	ErrConflict = errors.New("write conflict, retry from a fresh read")

	// Game over
	ErrGameFinished = errors.New("game is already finished")
)

// ConfigurationError reports a win-condition or deck misconfiguration
// detected at game creation.
type ConfigurationError struct {
	Field  string
	Detail string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Detail)
}

// BankruptcyError is raised instead of applying a transaction that
// would leave the balance negative. The caller decides whether to
// liquidate assets or eliminate the player before any balance changes.
type BankruptcyError struct {
	PlayerID  PlayerID
	Shortfall int // Amount missing after draining the balance
	Reason    string
}

func (e *BankruptcyError) Error() string {
	return fmt.Sprintf("player %s cannot cover %s, short by %d", e.PlayerID, e.Reason, e.Shortfall)
}

// StaleSessionError reports a failed reconnection check. It names the
// check that failed so the calling layer can log it, without leaking
// whether the game or the membership was the mismatch to the client.
type StaleSessionError struct {
	GameID GameID
	UserID UserID
	Check  string
}

func (e *StaleSessionError) Error() string {
	return fmt.Sprintf("stale session for user %s in game %s: %s", e.UserID, e.GameID, e.Check)
}
