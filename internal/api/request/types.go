package request

// CreateGuestRequest is the request body for creating a guest user
type CreateGuestRequest struct {
	DisplayName string `json:"display_name"`
	Avatar      string `json:"avatar,omitempty"`
}

// RegisterRequest is the request body for registering a user
type RegisterRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
	Avatar      string `json:"avatar,omitempty"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CreateGameRequest is the request body for creating a game
type CreateGameRequest struct {
	Language            string `json:"language,omitempty"`
	InitialBalance      int    `json:"initial_balance,omitempty"`
	WinCondition        string `json:"win_condition,omitempty"`
	RoundLimit          int    `json:"round_limit,omitempty"`
	ChurchGoal          int    `json:"church_goal,omitempty"`
	DrawWithReplacement bool   `json:"draw_with_replacement,omitempty"`
}

// JoinGameRequest is the request body for joining a game
type JoinGameRequest struct {
	DisplayName string `json:"display_name,omitempty"`
	Avatar      string `json:"avatar,omitempty"`
}

// AddLocalPlayerRequest is the request body for the host adding a
// local (same-device) player.
type AddLocalPlayerRequest struct {
	DisplayName string `json:"display_name"`
	Avatar      string `json:"avatar,omitempty"`
}

// BuildRequest is the request body for building on a tile
type BuildRequest struct {
	TileIndex int `json:"tile_index"`
}
