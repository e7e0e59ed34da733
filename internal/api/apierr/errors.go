package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pkalnins/tycoon-go/internal/model"
	"github.com/pkalnins/tycoon-go/internal/services/auth"
	"github.com/pkalnins/tycoon-go/internal/services/bot"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeNotHost             = "NOT_HOST"
	CodeNotYourTurn         = "NOT_YOUR_TURN"
	CodeInvalidPhase        = "INVALID_PHASE"
	CodeNotInJail           = "NOT_IN_JAIL"
	CodeNoJailCard          = "NO_JAIL_CARD"
	CodeGameNotFound        = "GAME_NOT_FOUND"
	CodePlayerNotFound      = "PLAYER_NOT_FOUND"
	CodeTileNotFound        = "TILE_NOT_FOUND"
	CodeGameNotJoinable     = "GAME_NOT_JOINABLE"
	CodeAlreadyInGame       = "ALREADY_IN_GAME"
	CodeGameFull            = "GAME_FULL"
	CodeInsufficientPlayers = "INSUFFICIENT_PLAYERS"
	CodeGameFinished        = "GAME_FINISHED"
	CodeTileNotOwnable      = "TILE_NOT_OWNABLE"
	CodeTileOwned           = "TILE_OWNED"
	CodeNotTileOwner        = "NOT_TILE_OWNER"
	CodeBuildLimit          = "BUILD_LIMIT"
	CodeBankruptcyRisk      = "BANKRUPTCY_RISK"
	CodeConfiguration       = "CONFIGURATION_ERROR"
	CodeStaleSession        = "STALE_SESSION"
	CodeConflict            = "CONFLICT"
	CodeUsernameExists      = "USERNAME_EXISTS"
	CodeInvalidCredentials  = "INVALID_CREDENTIALS"
	CodeInternalError       = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Typed errors carry detail worth passing through
	var cfgErr *model.ConfigurationError
	if errors.As(err, &cfgErr) {
		return &httpError{http.StatusBadRequest, APIError{CodeConfiguration, cfgErr.Error()}}
	}
	var bankErr *model.BankruptcyError
	if errors.As(err, &bankErr) {
		return &httpError{http.StatusConflict, APIError{CodeBankruptcyRisk, bankErr.Error()}}
	}
	var staleErr *model.StaleSessionError
	if errors.As(err, &staleErr) {
		// The failed check stays server-side; clients only learn the
		// session is gone.
		return &httpError{http.StatusGone, APIError{CodeStaleSession, "Session is no longer valid for this game"}}
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrGameNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeGameNotFound, "Game not found"}}
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrTileNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeTileNotFound, "Tile not found"}}
	case errors.Is(err, model.ErrUserNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "User not found"}}
	case errors.Is(err, model.ErrGameNotJoinable):
		return &httpError{http.StatusConflict, APIError{CodeGameNotJoinable, "Game is not accepting players"}}
	case errors.Is(err, model.ErrAlreadyInGame):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyInGame, "Already seated in this game"}}
	case errors.Is(err, model.ErrGameFull):
		return &httpError{http.StatusConflict, APIError{CodeGameFull, "Game is full"}}
	case errors.Is(err, model.ErrNotHost):
		return &httpError{http.StatusForbidden, APIError{CodeNotHost, "Only the host can perform this action"}}
	case errors.Is(err, model.ErrInsufficientPlayers):
		return &httpError{http.StatusConflict, APIError{CodeInsufficientPlayers, "Not enough players to start"}}
	case errors.Is(err, model.ErrNotYourTurn):
		return &httpError{http.StatusForbidden, APIError{CodeNotYourTurn, "Not your turn"}}
	case errors.Is(err, model.ErrInvalidPhase):
		return &httpError{http.StatusConflict, APIError{CodeInvalidPhase, "Action not valid in the current phase"}}
	case errors.Is(err, model.ErrNotInJail):
		return &httpError{http.StatusConflict, APIError{CodeNotInJail, "Player is not in jail"}}
	case errors.Is(err, model.ErrNoJailCard):
		return &httpError{http.StatusConflict, APIError{CodeNoJailCard, "No get-out-of-jail card held"}}
	case errors.Is(err, model.ErrGameFinished):
		return &httpError{http.StatusConflict, APIError{CodeGameFinished, "Game is already finished"}}
	case errors.Is(err, model.ErrTileNotOwnable):
		return &httpError{http.StatusConflict, APIError{CodeTileNotOwnable, "Tile cannot be bought"}}
	case errors.Is(err, model.ErrTileOwned):
		return &httpError{http.StatusConflict, APIError{CodeTileOwned, "Tile already has an owner"}}
	case errors.Is(err, model.ErrNotTileOwner):
		return &httpError{http.StatusForbidden, APIError{CodeNotTileOwner, "Player does not own this tile"}}
	case errors.Is(err, model.ErrBuildLimit):
		return &httpError{http.StatusConflict, APIError{CodeBuildLimit, "Tile is at maximum building level"}}
	case errors.Is(err, model.ErrConflict):
		return &httpError{http.StatusConflict, APIError{CodeConflict, "Concurrent update, retry the request"}}
	case errors.Is(err, bot.ErrUnknownStrategy):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, "Unknown bot strategy"}}

	// Map auth errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid username or password"}}
	case errors.Is(err, auth.ErrInvalidSession):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired session"}}
	case errors.Is(err, auth.ErrUsernameExists):
		return &httpError{http.StatusConflict, APIError{CodeUsernameExists, "Username already exists"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
