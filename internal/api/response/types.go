package response

import (
	"time"

	"github.com/pkalnins/tycoon-go/internal/model"
	"github.com/pkalnins/tycoon-go/internal/services/auth"
	"github.com/pkalnins/tycoon-go/internal/services/bot"
)

// User represents a user in API responses
type User struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Avatar      string `json:"avatar,omitempty"`
	IsGuest     bool   `json:"is_guest"`
	IsAdmin     bool   `json:"is_admin,omitempty"`
}

// UserFromModel converts a model.User to a response User
func UserFromModel(u *model.User) User {
	return User{
		ID:          string(u.ID),
		DisplayName: u.DisplayName,
		Avatar:      u.Avatar,
		IsGuest:     u.IsGuest,
		IsAdmin:     u.IsAdmin,
	}
}

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	User         User   `json:"user"`
	SessionToken string `json:"session_token"`
}

// AuthResponseFromSession creates an AuthResponse from a session
func AuthResponseFromSession(s *auth.Session) AuthResponse {
	return AuthResponse{
		User:         UserFromModel(&s.User),
		SessionToken: s.Token,
	}
}

// Player represents a seat in API responses
type Player struct {
	ID            string  `json:"id"`
	UserID        *string `json:"user_id"` // null for local players
	DisplayName   string  `json:"display_name"`
	Avatar        string  `json:"avatar,omitempty"`
	Seat          int     `json:"seat"`
	Position      int     `json:"position"`
	Balance       int     `json:"balance"`
	InJail        bool    `json:"in_jail"`
	JailTurns     int     `json:"jail_turns,omitempty"`
	JailCards     int     `json:"jail_cards,omitempty"`
	ImmunityUntil int     `json:"immunity_until,omitempty"`
	SkipNextTurn  bool    `json:"skip_next_turn,omitempty"`
	Eliminated    bool    `json:"eliminated,omitempty"`
}

// PlayerFromModel converts a model.Player
func PlayerFromModel(p *model.Player) Player {
	var userID *string
	if p.UserID != nil {
		id := string(*p.UserID)
		userID = &id
	}
	return Player{
		ID:            string(p.ID),
		UserID:        userID,
		DisplayName:   p.DisplayName,
		Avatar:        p.Avatar,
		Seat:          p.Seat,
		Position:      p.Position,
		Balance:       p.Balance,
		InJail:        p.InJail,
		JailTurns:     p.JailTurns,
		JailCards:     p.JailCards,
		ImmunityUntil: p.ImmunityUntil,
		SkipNextTurn:  p.SkipNextTurn,
		Eliminated:    p.Eliminated,
	}
}

// Tile represents a board tile
type Tile struct {
	Index        int     `json:"index"`
	Name         string  `json:"name"`
	Type         string  `json:"type"`
	Price        int     `json:"price,omitempty"`
	BaseRent     int     `json:"base_rent,omitempty"`
	BuildingCost int     `json:"building_cost,omitempty"`
	OwnerID      *string `json:"owner_id"`
	Buildings    int     `json:"buildings,omitempty"`
}

// TileFromModel converts a model.Tile
func TileFromModel(t *model.Tile) Tile {
	var ownerID *string
	if t.OwnerID != nil {
		id := string(*t.OwnerID)
		ownerID = &id
	}
	return Tile{
		Index:        t.Index,
		Name:         t.Name,
		Type:         string(t.Type),
		Price:        t.Price,
		BaseRent:     t.BaseRent,
		BuildingCost: t.BuildingCost,
		OwnerID:      ownerID,
		Buildings:    t.Buildings,
	}
}

// LogEntry represents a game log entry
type LogEntry struct {
	Seq         int       `json:"seq"`
	PlayerID    *string   `json:"player_id"` // null for system events
	Action      string    `json:"action"`
	Description string    `json:"description"`
	Round       int       `json:"round"`
	CreatedAt   time.Time `json:"created_at"`
}

// LogEntryFromModel converts a model.GameLog
func LogEntryFromModel(e *model.GameLog) LogEntry {
	var playerID *string
	if e.PlayerID != nil {
		id := string(*e.PlayerID)
		playerID = &id
	}
	return LogEntry{
		Seq:         e.Seq,
		PlayerID:    playerID,
		Action:      string(e.Action),
		Description: e.Description,
		Round:       e.Round,
		CreatedAt:   e.CreatedAt,
	}
}

// GameLogTail is the response for the game log endpoint
type GameLogTail struct {
	Entries []LogEntry `json:"entries"`
}

// GameLogTailFromModel converts a slice of model.GameLog entries
func GameLogTailFromModel(entries []*model.GameLog) GameLogTail {
	converted := make([]LogEntry, len(entries))
	for i, e := range entries {
		converted[i] = LogEntryFromModel(e)
	}
	return GameLogTail{Entries: converted}
}

// Game represents a game in API responses
type Game struct {
	ID                  string `json:"id"`
	HostID              string `json:"host_id"`
	Status              string `json:"status"`
	Language            string `json:"language"`
	InitialBalance      int    `json:"initial_balance"`
	CurrentTurn         int    `json:"current_turn"`
	Phase               string `json:"phase"`
	Dice                [2]int `json:"dice"`
	WinCondition        string `json:"win_condition"`
	RoundLimit          int    `json:"round_limit,omitempty"`
	ChurchGoal          int    `json:"church_goal,omitempty"`
	ChurchFund          int    `json:"church_fund"`
	DrawWithReplacement bool   `json:"draw_with_replacement"`
}

// GameFromModel converts a model.Game
func GameFromModel(g *model.Game) Game {
	return Game{
		ID:                  string(g.ID),
		HostID:              string(g.HostID),
		Status:              string(g.Status),
		Language:            g.Language,
		InitialBalance:      g.InitialBalance,
		CurrentTurn:         g.CurrentTurn,
		Phase:               string(g.Phase),
		Dice:                g.Dice,
		WinCondition:        string(g.WinCondition),
		RoundLimit:          g.RoundLimit,
		ChurchGoal:          g.ChurchGoal,
		ChurchFund:          g.ChurchFund,
		DrawWithReplacement: g.DrawWithReplacement,
	}
}

// BotAction is a single step of an automated turn
type BotAction struct {
	Type      string `json:"type"`
	PlayerID  string `json:"player_id"`
	TileIndex *int   `json:"tile_index,omitempty"`
}

// BotActionFromModel converts a bot.Action
func BotActionFromModel(a bot.Action) BotAction {
	var tileIndex *int
	if a.TileIndex >= 0 {
		idx := a.TileIndex
		tileIndex = &idx
	}
	return BotAction{
		Type:      string(a.Type),
		PlayerID:  string(a.PlayerID),
		TileIndex: tileIndex,
	}
}

// AutoTurn is the response for the automated turn endpoint
type AutoTurn struct {
	Actions  []BotAction `json:"actions"`
	Snapshot Snapshot    `json:"snapshot"`
}

// AutoTurnFromModel converts the result of an automated turn
func AutoTurnFromModel(actions []bot.Action, s *model.Snapshot) AutoTurn {
	converted := make([]BotAction, len(actions))
	for i, a := range actions {
		converted[i] = BotActionFromModel(a)
	}
	return AutoTurn{
		Actions:  converted,
		Snapshot: SnapshotFromModel(s),
	}
}

// Snapshot is the full game state returned by state and turn endpoints
type Snapshot struct {
	Game            Game       `json:"game"`
	Players         []Player   `json:"players"`
	Tiles           []Tile     `json:"tiles"`
	LogTail         []LogEntry `json:"log_tail"`
	CurrentPlayerID string     `json:"current_player_id,omitempty"`
}

// SnapshotFromModel converts a model.Snapshot
func SnapshotFromModel(s *model.Snapshot) Snapshot {
	players := make([]Player, len(s.Players))
	for i, p := range s.Players {
		players[i] = PlayerFromModel(p)
	}
	tiles := make([]Tile, len(s.Tiles))
	for i, t := range s.Tiles {
		tiles[i] = TileFromModel(t)
	}
	tail := make([]LogEntry, len(s.LogTail))
	for i, e := range s.LogTail {
		tail[i] = LogEntryFromModel(e)
	}

	var currentID string
	if s.Game.Status == model.GameStatusActive {
		if current := model.CurrentPlayer(s.Game, s.Players); current != nil {
			currentID = string(current.ID)
		}
	}

	return Snapshot{
		Game:            GameFromModel(s.Game),
		Players:         players,
		Tiles:           tiles,
		LogTail:         tail,
		CurrentPlayerID: currentID,
	}
}
