package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/pkalnins/tycoon-go/internal/model"
	"github.com/pkalnins/tycoon-go/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// Entities are stored as copies so callers never alias stored state.
type Storage struct {
	mu sync.RWMutex

	games   map[model.GameID]*model.Game
	players map[model.PlayerID]*model.Player
	tiles   map[model.GameID]map[model.TileID]*model.Tile
	logs    map[model.GameID][]*model.GameLog

	users           map[model.UserID]*model.User
	registered      map[model.UserID]*model.RegisteredUser
	usernamesToUser map[string]model.UserID
}

// New creates a new in-memory storage
func New() *Storage {
	return &Storage{
		games:           make(map[model.GameID]*model.Game),
		players:         make(map[model.PlayerID]*model.Player),
		tiles:           make(map[model.GameID]map[model.TileID]*model.Tile),
		logs:            make(map[model.GameID][]*model.GameLog),
		users:           make(map[model.UserID]*model.User),
		registered:      make(map[model.UserID]*model.RegisteredUser),
		usernamesToUser: make(map[string]model.UserID),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Game operations

func (s *Storage) CreateGame(_ context.Context, game *model.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.games[game.ID]; ok {
		return model.ErrConflict
	}
	game.Version = 1
	copied := *game
	s.games[game.ID] = &copied
	return nil
}

func (s *Storage) UpdateGame(_ context.Context, game *model.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.games[game.ID]
	if !ok {
		return model.ErrGameNotFound
	}
	if stored.Version != game.Version {
		return model.ErrConflict
	}
	game.Version++
	copied := *game
	s.games[game.ID] = &copied
	return nil
}

func (s *Storage) GetGame(_ context.Context, id model.GameID) (*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	game, ok := s.games[id]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	copied := *game
	return &copied, nil
}

// Player operations

func (s *Storage) SavePlayer(_ context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *player
	s.players[player.ID] = &copied
	return nil
}

func (s *Storage) GetPlayer(_ context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	copied := *player
	return &copied, nil
}

func (s *Storage) GetPlayersForGame(_ context.Context, gameID model.GameID) ([]*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var players []*model.Player
	for _, p := range s.players {
		if p.GameID == gameID {
			copied := *p
			players = append(players, &copied)
		}
	}
	sort.Slice(players, func(i, j int) bool { return players[i].Seat < players[j].Seat })
	return players, nil
}

// Tile operations

func (s *Storage) SaveTile(_ context.Context, tile *model.Tile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tiles[tile.GameID] == nil {
		s.tiles[tile.GameID] = make(map[model.TileID]*model.Tile)
	}
	copied := *tile
	s.tiles[tile.GameID][tile.ID] = &copied
	return nil
}

func (s *Storage) GetTilesForGame(_ context.Context, gameID model.GameID) ([]*model.Tile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var tiles []*model.Tile
	for _, t := range s.tiles[gameID] {
		copied := *t
		tiles = append(tiles, &copied)
	}
	sort.Slice(tiles, func(i, j int) bool { return tiles[i].Index < tiles[j].Index })
	return tiles, nil
}

// Game log operations

func (s *Storage) AppendLog(_ context.Context, entry *model.GameLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry.Seq = len(s.logs[entry.GameID]) + 1
	if entry.ID == "" {
		entry.ID = model.LogID(fmt.Sprintf("%s-log-%d", entry.GameID, entry.Seq))
	}
	copied := *entry
	s.logs[entry.GameID] = append(s.logs[entry.GameID], &copied)
	return nil
}

func (s *Storage) GetLogTail(_ context.Context, gameID model.GameID, limit int) ([]*model.GameLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := s.logs[gameID]
	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}

	tail := make([]*model.GameLog, len(entries))
	for i, e := range entries {
		copied := *e
		tail[i] = &copied
	}
	return tail, nil
}

// User operations

func (s *Storage) SaveUser(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *user
	s.users[user.ID] = &copied
	return nil
}

func (s *Storage) GetUser(_ context.Context, id model.UserID) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

// Registered user operations

func (s *Storage) SaveRegisteredUser(_ context.Context, ru *model.RegisteredUser) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *ru
	s.registered[ru.UserID] = &copied
	s.usernamesToUser[ru.Username] = ru.UserID
	return nil
}

func (s *Storage) GetRegisteredUser(_ context.Context, userID model.UserID) (*model.RegisteredUser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ru, ok := s.registered[userID]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	copied := *ru
	return &copied, nil
}

func (s *Storage) GetRegisteredUserByUsername(_ context.Context, username string) (*model.RegisteredUser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	userID, ok := s.usernamesToUser[username]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	ru, ok := s.registered[userID]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	copied := *ru
	return &copied, nil
}
