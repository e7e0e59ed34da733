package redis

import (
	"fmt"

	"github.com/pkalnins/tycoon-go/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "tycoon"

// Key generation functions for each entity type

// gameKey returns the Redis key for a Game
func gameKey(id model.GameID) string {
	return fmt.Sprintf("%s:game:%s", keyPrefix, id)
}

// playerKey returns the Redis key for a Player
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

// playersForGameIndexKey returns the Redis key for the SET of players in a game
func playersForGameIndexKey(gameID model.GameID) string {
	return fmt.Sprintf("%s:idx:players_for_game:%s", keyPrefix, gameID)
}

// tileKey returns the Redis key for a Tile
func tileKey(id model.TileID) string {
	return fmt.Sprintf("%s:tile:%s", keyPrefix, id)
}

// tilesForGameIndexKey returns the Redis key for the SET of tiles in a game
func tilesForGameIndexKey(gameID model.GameID) string {
	return fmt.Sprintf("%s:idx:tiles_for_game:%s", keyPrefix, gameID)
}

// logListKey returns the Redis key for a game's append-only log LIST
func logListKey(gameID model.GameID) string {
	return fmt.Sprintf("%s:log:%s", keyPrefix, gameID)
}

// logSeqKey returns the Redis key for a game's log sequence counter
func logSeqKey(gameID model.GameID) string {
	return fmt.Sprintf("%s:log_seq:%s", keyPrefix, gameID)
}

// userKey returns the Redis key for a User
func userKey(id model.UserID) string {
	return fmt.Sprintf("%s:user:%s", keyPrefix, id)
}

// registeredUserKey returns the Redis key for a RegisteredUser
func registeredUserKey(userID model.UserID) string {
	return fmt.Sprintf("%s:registered_user:%s", keyPrefix, userID)
}

// usernameIndexKey returns the Redis key for the username -> user_id index
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}
