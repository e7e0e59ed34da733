package model

import "time"

// LogID uniquely identifies a log entry
type LogID string

// LogAction classifies a game log entry
type LogAction string

const (
	LogPlayerJoined LogAction = "player_joined"
	LogGameStarted  LogAction = "game_started"
	LogDiceRolled   LogAction = "dice_rolled"
	LogMoved        LogAction = "moved"
	LogPassedStart  LogAction = "passed_start"
	LogRentPaid     LogAction = "rent_paid"
	LogTaxPaid      LogAction = "tax_paid"
	LogDonation     LogAction = "donation"
	LogCardDrawn    LogAction = "card_drawn"
	LogCardEffect   LogAction = "card_effect"
	LogTilePurchase LogAction = "tile_purchased"
	LogBuilt        LogAction = "built"
	LogJailed       LogAction = "jailed"
	LogJailReleased LogAction = "jail_released"
	LogJailFine     LogAction = "jail_fine"
	LogTurnSkipped  LogAction = "turn_skipped"
	LogTurnEnded    LogAction = "turn_ended"
	LogLiquidated   LogAction = "liquidated"
	LogEliminated   LogAction = "eliminated"
	LogGameOver     LogAction = "game_over"
)

// GameLog is an append-only audit entry. Entries are never updated or
// deleted; they exist for display and debugging, not for rebuilding
// state.
type GameLog struct {
	ID       LogID
	GameID   GameID
	PlayerID *PlayerID // nil for system events
	Action   LogAction

	Description string
	Round       int

	// Seq orders entries within a game
	Seq int

	CreatedAt time.Time
}
