package lobby

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pkalnins/tycoon-go/internal/board"
	"github.com/pkalnins/tycoon-go/internal/dependencies/clock"
	"github.com/pkalnins/tycoon-go/internal/dependencies/random"
	"github.com/pkalnins/tycoon-go/internal/model"
	"github.com/pkalnins/tycoon-go/internal/storage"
)

const (
	// GameIDLength is the length of generated game identifiers
	GameIDLength = 10
	// GameIDAlphabet is the set of characters used in game IDs
	GameIDAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

	// MaxPlayers bounds the number of seats per game
	MaxPlayers = 6
	// MinPlayers is the seat count required to start a game
	MinPlayers = 2

	// DefaultInitialBalance is used when the creator does not set one
	DefaultInitialBalance = 1000
)

// Controller manages the waiting-room lifecycle: creating games,
// seating players and starting play. Turn-level play is owned by the
// turn controller.
type Controller struct {
	storage storage.Storage
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger
}

// NewController creates a new lobby controller
func NewController(storage storage.Storage, clock clock.Clock, random random.Random, logger *slog.Logger) *Controller {
	return &Controller{
		storage: storage,
		clock:   clock,
		random:  random,
		logger:  logger,
	}
}

// CreateGame validates the configuration, creates the game in waiting
// status, materializes the board tiles and seats the host.
func (c *Controller) CreateGame(ctx context.Context, host *model.User, cfg model.GameConfig) (*model.Game, error) {
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	now := c.clock.Now()
	gameID := model.GameID(c.random.String(GameIDLength, GameIDAlphabet))

	game := &model.Game{
		ID:                  gameID,
		HostID:              host.ID,
		Status:              model.GameStatusWaiting,
		Language:            cfg.Language,
		InitialBalance:      cfg.InitialBalance,
		Phase:               model.PhaseAwaitingRoll,
		WinCondition:        cfg.WinCondition,
		RoundLimit:          cfg.RoundLimit,
		ChurchGoal:          cfg.ChurchGoal,
		DrawWithReplacement: cfg.DrawWithReplacement,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := c.storage.CreateGame(ctx, game); err != nil {
		return nil, err
	}

	for _, tile := range board.Tiles(gameID) {
		if err := c.storage.SaveTile(ctx, tile); err != nil {
			return nil, err
		}
	}

	if _, err := c.seat(ctx, game, &host.ID, host.DisplayName, host.Avatar, 0); err != nil {
		return nil, err
	}

	c.logger.Info("game created",
		slog.String("game_id", string(gameID)),
		slog.String("host_id", string(host.ID)),
		slog.String("win_condition", string(game.WinCondition)),
	)
	return game, nil
}

// GetGame retrieves a game by ID
func (c *Controller) GetGame(ctx context.Context, gameID model.GameID) (*model.Game, error) {
	return c.storage.GetGame(ctx, gameID)
}

// JoinGame seats a user in a waiting game. A user holds at most one
// seat per game.
func (c *Controller) JoinGame(ctx context.Context, gameID model.GameID, user *model.User, displayName, avatar string) (*model.Player, error) {
	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if game.Status != model.GameStatusWaiting {
		return nil, model.ErrGameNotJoinable
	}

	players, err := c.storage.GetPlayersForGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	for _, p := range players {
		if p.HeldBy(user.ID) {
			return nil, model.ErrAlreadyInGame
		}
	}
	if len(players) >= MaxPlayers {
		return nil, model.ErrGameFull
	}

	if displayName == "" {
		displayName = user.DisplayName
	}
	if avatar == "" {
		avatar = user.Avatar
	}

	player, err := c.seat(ctx, game, &user.ID, displayName, avatar, len(players))
	if err != nil {
		return nil, err
	}

	c.logger.Info("player joined",
		slog.String("game_id", string(gameID)),
		slog.String("player_id", string(player.ID)),
		slog.String("user_id", string(user.ID)),
	)
	return player, nil
}

// AddLocalPlayer lets the host add a seat with no user attached, for
// players sharing the host's device.
func (c *Controller) AddLocalPlayer(ctx context.Context, gameID model.GameID, userID model.UserID, displayName, avatar string) (*model.Player, error) {
	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if game.HostID != userID {
		return nil, model.ErrNotHost
	}
	if game.Status != model.GameStatusWaiting {
		return nil, model.ErrGameNotJoinable
	}

	players, err := c.storage.GetPlayersForGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if len(players) >= MaxPlayers {
		return nil, model.ErrGameFull
	}
	if displayName == "" {
		displayName = fmt.Sprintf("Player %d", len(players)+1)
	}

	return c.seat(ctx, game, nil, displayName, avatar, len(players))
}

// StartGame moves a waiting game to active. Host only, at least two
// seats.
func (c *Controller) StartGame(ctx context.Context, gameID model.GameID, userID model.UserID) (*model.Game, error) {
	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if game.HostID != userID {
		return nil, model.ErrNotHost
	}
	if !game.CanTransitionTo(model.GameStatusActive) {
		return nil, model.ErrGameNotJoinable
	}

	players, err := c.storage.GetPlayersForGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if len(players) < MinPlayers {
		return nil, model.ErrInsufficientPlayers
	}

	game.Status = model.GameStatusActive
	game.Phase = model.PhaseAwaitingRoll
	game.UpdatedAt = c.clock.Now()
	if err := c.storage.UpdateGame(ctx, game); err != nil {
		return nil, err
	}

	if err := c.storage.AppendLog(ctx, &model.GameLog{
		GameID:      gameID,
		Action:      model.LogGameStarted,
		Description: fmt.Sprintf("game started with %d players", len(players)),
		Round:       1,
		CreatedAt:   c.clock.Now(),
	}); err != nil {
		return nil, err
	}

	c.logger.Info("game started",
		slog.String("game_id", string(gameID)),
		slog.Int("player_count", len(players)),
	)
	return game, nil
}

// seat creates a player row at the given seat index and logs the join
func (c *Controller) seat(ctx context.Context, game *model.Game, userID *model.UserID, displayName, avatar string, seatIdx int) (*model.Player, error) {
	now := c.clock.Now()
	player := &model.Player{
		ID:          model.PlayerID(fmt.Sprintf("%s-p%d", game.ID, seatIdx)),
		GameID:      game.ID,
		UserID:      userID,
		DisplayName: displayName,
		Avatar:      avatar,
		Seat:        seatIdx,
		Balance:     game.InitialBalance,
		CreatedAt:   now,
	}

	if err := c.storage.SavePlayer(ctx, player); err != nil {
		return nil, err
	}

	pid := player.ID
	if err := c.storage.AppendLog(ctx, &model.GameLog{
		GameID:      game.ID,
		PlayerID:    &pid,
		Action:      model.LogPlayerJoined,
		Description: displayName + " joined the game",
		Round:       1,
		CreatedAt:   now,
	}); err != nil {
		return nil, err
	}

	return player, nil
}

// validateConfig checks the win-condition configuration at creation
// time. A bad combination is a ConfigurationError, never a silent
// default.
func validateConfig(cfg *model.GameConfig) error {
	if cfg.Language == "" {
		cfg.Language = "en"
	}
	if cfg.InitialBalance == 0 {
		cfg.InitialBalance = DefaultInitialBalance
	}
	if cfg.InitialBalance < 0 {
		return &model.ConfigurationError{Field: "initial_balance", Detail: "must be positive"}
	}

	switch cfg.WinCondition {
	case "":
		cfg.WinCondition = model.WinLastPlayerStanding
	case model.WinLastPlayerStanding:
	case model.WinRoundLimit:
		if cfg.RoundLimit <= 0 {
			return &model.ConfigurationError{Field: "round_limit", Detail: "must be set for the round_limit win condition"}
		}
	case model.WinChurchGoal:
		if cfg.ChurchGoal <= 0 {
			return &model.ConfigurationError{Field: "church_goal", Detail: "must be set for the church_goal win condition"}
		}
	default:
		return &model.ConfigurationError{Field: "win_condition", Detail: "unknown kind " + string(cfg.WinCondition)}
	}

	if cfg.RoundLimit < 0 {
		return &model.ConfigurationError{Field: "round_limit", Detail: "must not be negative"}
	}
	if cfg.ChurchGoal < 0 {
		return &model.ConfigurationError{Field: "church_goal", Detail: "must not be negative"}
	}
	return nil
}
