package model

import "time"

// GameID uniquely identifies a game
type GameID string

// GameStatus represents the lifecycle stage of a game.
// Transitions only ever move forward: waiting -> active -> finished.
type GameStatus string

const (
	GameStatusWaiting  GameStatus = "waiting"  // Players joining, not started
	GameStatusActive   GameStatus = "active"   // Game in progress
	GameStatusFinished GameStatus = "finished" // Win condition reached
)

// TurnPhase represents where the current turn is within the turn state machine
type TurnPhase string

const (
	PhaseAwaitingRoll    TurnPhase = "awaiting_roll"     // Current player must roll
	PhaseResolving       TurnPhase = "resolving"         // Landing must be resolved
	PhaseAwaitingEndTurn TurnPhase = "awaiting_end_turn" // Current player may act, then end turn
	PhaseGameOver        TurnPhase = "game_over"         // Terminal
)

// WinCondition selects the rule used to end a game.
// Exactly one kind is active per game, chosen at creation.
type WinCondition string

const (
	WinLastPlayerStanding WinCondition = "last_player_standing"
	WinRoundLimit         WinCondition = "round_limit"
	WinChurchGoal         WinCondition = "church_goal"
)

// GameConfig holds the creator-supplied settings for a new game
type GameConfig struct {
	Language            string
	InitialBalance      int
	WinCondition        WinCondition
	RoundLimit          int // Required when WinCondition is round_limit
	ChurchGoal          int // Required when WinCondition is church_goal
	DrawWithReplacement bool
}

// Game represents a single Monopoly-style game instance
type Game struct {
	ID     GameID
	HostID UserID
	Status GameStatus

	Language       string
	InitialBalance int

	// Turn management. CurrentTurn is a monotonic counter, not a player
	// index; the acting player is the active player at
	// CurrentTurn mod activePlayerCount.
	CurrentTurn int
	Phase       TurnPhase

	// Last dice roll, valid from the roll until the next one
	Dice [2]int

	// Win condition configuration
	WinCondition WinCondition
	RoundLimit   int
	ChurchGoal   int

	// Aggregate fund fed by taxes, donations and jail fines
	ChurchFund int

	// Card draw policy
	DrawWithReplacement bool

	// Version is bumped on every write for optimistic concurrency
	Version int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CanTransitionTo reports whether moving to the given status is a legal
// forward transition.
func (g *Game) CanTransitionTo(next GameStatus) bool {
	switch g.Status {
	case GameStatusWaiting:
		return next == GameStatusActive
	case GameStatusActive:
		return next == GameStatusFinished
	default:
		return false
	}
}

// Round returns the 1-based round number for the given active player count
func (g *Game) Round(activePlayers int) int {
	if activePlayers <= 0 {
		return 1
	}
	return g.CurrentTurn/activePlayers + 1
}

// GameResult is the terminal verdict produced by win condition evaluation
type GameResult struct {
	Winner  PlayerID
	TieWith []PlayerID // Non-empty when the winner shares the top score
	Reason  WinCondition
}
