package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pkalnins/tycoon-go/internal/api"
	"github.com/pkalnins/tycoon-go/internal/api/response"
	"github.com/pkalnins/tycoon-go/internal/factory"
	"github.com/pkalnins/tycoon-go/internal/testutil"
)

// apiTestServer drives the HTTP API against an in-memory application
type apiTestServer struct {
	t       *testing.T
	handler http.Handler
	app     *factory.TestApp
}

// newAPITestServer creates a test server with all dependencies wired
func newAPITestServer(t *testing.T) *apiTestServer {
	t.Helper()

	app := factory.NewTestApp()
	router := api.NewRouter(api.RouterConfig{
		Logger:          testutil.NopLogger(),
		AuthService:     app.AuthService,
		LobbyController: app.LobbyController,
		TurnController:  app.TurnController,
		RecoveryService: app.RecoveryService,
		BotService:      app.BotService,
		HubManager:      app.HubManager,
	})

	return &apiTestServer{
		t:       t,
		handler: router,
		app:     app,
	}
}

// do makes a JSON request with an optional bearer token
func (ts *apiTestServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	ts.t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(ts.t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func (ts *apiTestServer) get(path, token string) *httptest.ResponseRecorder {
	return ts.do(http.MethodGet, path, token, nil)
}

func (ts *apiTestServer) post(path, token string, body any) *httptest.ResponseRecorder {
	return ts.do(http.MethodPost, path, token, body)
}

// decode unmarshals the response body into target
func (ts *apiTestServer) decode(rr *httptest.ResponseRecorder, target any) {
	ts.t.Helper()
	require.NoError(ts.t, json.Unmarshal(rr.Body.Bytes(), target))
}

// errorCode extracts the error code from an error response body
func (ts *apiTestServer) errorCode(rr *httptest.ResponseRecorder) string {
	ts.t.Helper()
	var resp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	ts.decode(rr, &resp)
	return resp.Error.Code
}

// Helper flows

// createGuest creates a guest user and returns the session token
func (ts *apiTestServer) createGuest(displayName string) string {
	ts.t.Helper()

	rr := ts.post("/api/v1/users/guest", "", map[string]string{"display_name": displayName})
	require.Equal(ts.t, http.StatusCreated, rr.Code)

	var auth response.AuthResponse
	ts.decode(rr, &auth)
	require.NotEmpty(ts.t, auth.SessionToken)
	return auth.SessionToken
}

// createGame creates a game with the given id and returns it
func (ts *apiTestServer) createGame(token, gameID string, body any) response.Game {
	ts.t.Helper()

	ts.app.MockRandom.QueueString(gameID)
	if body == nil {
		body = map[string]any{}
	}
	rr := ts.post("/api/v1/games", token, body)
	require.Equal(ts.t, http.StatusCreated, rr.Code, rr.Body.String())

	var game response.Game
	ts.decode(rr, &game)
	require.Equal(ts.t, gameID, game.ID)
	return game
}

func (ts *apiTestServer) joinGame(gameID, token string) response.Player {
	ts.t.Helper()

	rr := ts.post("/api/v1/games/"+gameID+"/join", token, map[string]any{})
	require.Equal(ts.t, http.StatusCreated, rr.Code, rr.Body.String())

	var player response.Player
	ts.decode(rr, &player)
	return player
}

func (ts *apiTestServer) startGame(gameID, token string) {
	ts.t.Helper()

	rr := ts.post("/api/v1/games/"+gameID+"/start", token, nil)
	require.Equal(ts.t, http.StatusOK, rr.Code, rr.Body.String())
}

// startedGame sets up a two-seat active game and returns the host and
// guest session tokens. The host holds seat 0.
func (ts *apiTestServer) startedGame(gameID string) (hostToken, guestToken string) {
	ts.t.Helper()

	hostToken = ts.createGuest("Anna")
	guestToken = ts.createGuest("Bert")
	ts.createGame(hostToken, gameID, nil)
	ts.joinGame(gameID, guestToken)
	ts.startGame(gameID, hostToken)
	return hostToken, guestToken
}

// roll queues dice and posts a roll for the given token's seat
func (ts *apiTestServer) roll(gameID, token string, d1, d2 int) *httptest.ResponseRecorder {
	ts.t.Helper()
	ts.app.MockRandom.QueueDice(d1, d2)
	return ts.post("/api/v1/games/"+gameID+"/roll", token, nil)
}

// snapshot fetches the current game state
func (ts *apiTestServer) snapshot(gameID, token string) response.Snapshot {
	ts.t.Helper()

	rr := ts.get("/api/v1/games/"+gameID, token)
	require.Equal(ts.t, http.StatusOK, rr.Code, rr.Body.String())

	var snap response.Snapshot
	ts.decode(rr, &snap)
	return snap
}
