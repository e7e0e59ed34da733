package storage

import (
	"context"

	"github.com/pkalnins/tycoon-go/internal/model"
)

// Storage defines the interface for data persistence.
//
// UpdateGame is a compare-and-swap on Game.Version: the write succeeds
// only if the stored version still matches, otherwise it fails with
// model.ErrConflict. All other writes are plain row upserts; the turn
// engine orders them after a successful game CAS so that cross-process
// callers lose on the CAS before touching any dependent rows.
type Storage interface {
	// Game operations
	CreateGame(ctx context.Context, game *model.Game) error
	UpdateGame(ctx context.Context, game *model.Game) error
	GetGame(ctx context.Context, id model.GameID) (*model.Game, error)

	// Player operations
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	GetPlayersForGame(ctx context.Context, gameID model.GameID) ([]*model.Player, error)

	// Tile operations
	SaveTile(ctx context.Context, tile *model.Tile) error
	GetTilesForGame(ctx context.Context, gameID model.GameID) ([]*model.Tile, error)

	// Game log operations. AppendLog assigns the entry's Seq; entries
	// are never updated or deleted.
	AppendLog(ctx context.Context, entry *model.GameLog) error
	GetLogTail(ctx context.Context, gameID model.GameID, limit int) ([]*model.GameLog, error)

	// User operations
	SaveUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, id model.UserID) (*model.User, error)

	// Registered user operations
	SaveRegisteredUser(ctx context.Context, ru *model.RegisteredUser) error
	GetRegisteredUser(ctx context.Context, userID model.UserID) (*model.RegisteredUser, error)
	GetRegisteredUserByUsername(ctx context.Context, username string) (*model.RegisteredUser, error)
}
