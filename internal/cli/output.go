package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case User:
		o.printUser(v)
	case AuthResult:
		o.printAuthResult(v)
	case Game:
		o.printGame(v)
	case Player:
		o.printPlayer(v)
	case Snapshot:
		o.printSnapshot(v)
	case AutoTurnResult:
		o.printAutoTurnResult(v)
	case GameLogResult:
		o.printGameLogResult(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// User response type (matches API)
type User struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	IsGuest     bool   `json:"is_guest"`
}

// AuthResult combines user and token
type AuthResult struct {
	User         User   `json:"user"`
	SessionToken string `json:"session_token"`
}

// Game response type
type Game struct {
	ID           string `json:"id"`
	HostID       string `json:"host_id"`
	Status       string `json:"status"`
	Language     string `json:"language"`
	CurrentTurn  int    `json:"current_turn"`
	Phase        string `json:"phase"`
	Dice         [2]int `json:"dice"`
	WinCondition string `json:"win_condition"`
	RoundLimit   int    `json:"round_limit,omitempty"`
	ChurchGoal   int    `json:"church_goal,omitempty"`
	ChurchFund   int    `json:"church_fund"`
}

// Player response type
type Player struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Seat        int    `json:"seat"`
	Position    int    `json:"position"`
	Balance     int    `json:"balance"`
	InJail      bool   `json:"in_jail"`
	JailCards   int    `json:"jail_cards,omitempty"`
	Eliminated  bool   `json:"eliminated,omitempty"`
}

// Tile response type
type Tile struct {
	Index     int     `json:"index"`
	Name      string  `json:"name"`
	Type      string  `json:"type"`
	Price     int     `json:"price,omitempty"`
	OwnerID   *string `json:"owner_id"`
	Buildings int     `json:"buildings,omitempty"`
}

// LogEntry response type
type LogEntry struct {
	Seq         int       `json:"seq"`
	Action      string    `json:"action"`
	Description string    `json:"description"`
	Round       int       `json:"round"`
	CreatedAt   time.Time `json:"created_at"`
}

// Snapshot response type
type Snapshot struct {
	Game            Game       `json:"game"`
	Players         []Player   `json:"players"`
	Tiles           []Tile     `json:"tiles"`
	LogTail         []LogEntry `json:"log_tail"`
	CurrentPlayerID string     `json:"current_player_id,omitempty"`
}

// BotAction response type
type BotAction struct {
	Type      string `json:"type"`
	PlayerID  string `json:"player_id"`
	TileIndex *int   `json:"tile_index,omitempty"`
}

// AutoTurnResult response type
type AutoTurnResult struct {
	Actions  []BotAction `json:"actions"`
	Snapshot Snapshot    `json:"snapshot"`
}

// GameLogResult response type
type GameLogResult struct {
	Entries []LogEntry `json:"entries"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printUser(u User) {
	guestStr := "no"
	if u.IsGuest {
		guestStr = "yes"
	}
	fmt.Printf("User: %s (%s)\n", u.DisplayName, u.ID)
	fmt.Printf("Guest: %s\n", guestStr)
}

func (o *Output) printAuthResult(a AuthResult) {
	o.printUser(a.User)
	fmt.Printf("Token: %s\n", a.SessionToken)
}

func (o *Output) printGame(g Game) {
	fmt.Printf("Game: %s\n", g.ID)
	fmt.Printf("Status: %s\n", g.Status)
	fmt.Printf("Phase: %s\n", g.Phase)
	fmt.Printf("Win Condition: %s\n", g.WinCondition)
	if g.RoundLimit > 0 {
		fmt.Printf("Round Limit: %d\n", g.RoundLimit)
	}
	if g.ChurchGoal > 0 {
		fmt.Printf("Church Goal: %d\n", g.ChurchGoal)
	}
	fmt.Printf("Church Fund: %d\n", g.ChurchFund)
}

func (o *Output) printPlayer(p Player) {
	jailStr := ""
	if p.InJail {
		jailStr = " [in jail]"
	}
	if p.Eliminated {
		jailStr = " [eliminated]"
	}
	fmt.Printf("Player: %s (%s)%s\n", p.DisplayName, p.ID, jailStr)
	fmt.Printf("Seat: %d  Position: %d  Balance: %d\n", p.Seat, p.Position, p.Balance)
}

func (o *Output) printSnapshot(s Snapshot) {
	o.printGame(s.Game)

	fmt.Printf("\nPlayers (%d):\n", len(s.Players))
	for _, p := range s.Players {
		marker := "  "
		if p.ID == s.CurrentPlayerID {
			marker = "* "
		}
		status := ""
		if p.InJail {
			status = " [jail]"
		}
		if p.Eliminated {
			status = " [out]"
		}
		fmt.Printf("%s%s (seat %d) pos=%d balance=%d%s\n", marker, p.DisplayName, p.Seat, p.Position, p.Balance, status)
	}

	owned := 0
	for _, t := range s.Tiles {
		if t.OwnerID != nil {
			owned++
		}
	}
	fmt.Printf("\nBoard: %d tiles, %d owned\n", len(s.Tiles), owned)
	for _, t := range s.Tiles {
		if t.OwnerID == nil {
			continue
		}
		buildStr := ""
		if t.Buildings > 0 {
			buildStr = fmt.Sprintf(" (%d buildings)", t.Buildings)
		}
		fmt.Printf("  %2d %s -> %s%s\n", t.Index, t.Name, *t.OwnerID, buildStr)
	}

	if len(s.LogTail) > 0 {
		fmt.Println("\nRecent events:")
		for _, e := range s.LogTail {
			fmt.Printf("  [r%d] %s\n", e.Round, e.Description)
		}
	}
}

func (o *Output) printAutoTurnResult(r AutoTurnResult) {
	fmt.Printf("Actions (%d):\n", len(r.Actions))
	for _, a := range r.Actions {
		if a.TileIndex != nil {
			fmt.Printf("  %s tile=%d\n", a.Type, *a.TileIndex)
		} else {
			fmt.Printf("  %s\n", a.Type)
		}
	}
	fmt.Println()
	o.printSnapshot(r.Snapshot)
}

func (o *Output) printGameLogResult(r GameLogResult) {
	for _, e := range r.Entries {
		fmt.Printf("[r%d] %s: %s\n", e.Round, e.Action, e.Description)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
