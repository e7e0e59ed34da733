package api_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkalnins/tycoon-go/internal/api/response"
)

func TestTurnFlow(t *testing.T) {
	ts := newAPITestServer(t)
	hostToken, guestToken := ts.startedGame("GAMETEST01")

	// Host rolls and lands on Birch Street
	rr := ts.roll("GAMETEST01", hostToken, 1, 2)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var snap response.Snapshot
	ts.decode(rr, &snap)
	assert.Equal(t, [2]int{1, 2}, snap.Game.Dice)
	assert.Equal(t, "resolving", snap.Game.Phase)
	assert.Equal(t, 3, snap.Players[0].Position)

	// Resolve the landing
	rr = ts.post("/api/v1/games/GAMETEST01/resolve", hostToken, nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	ts.decode(rr, &snap)
	assert.Equal(t, "awaiting_end_turn", snap.Game.Phase)

	// Buy the tile landed on
	rr = ts.post("/api/v1/games/GAMETEST01/buy", hostToken, nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	ts.decode(rr, &snap)
	assert.Equal(t, 940, snap.Players[0].Balance)
	require.NotNil(t, snap.Tiles[3].OwnerID)
	assert.Equal(t, "GAMETEST01-p0", *snap.Tiles[3].OwnerID)

	// End the turn, play passes to the second seat
	rr = ts.post("/api/v1/games/GAMETEST01/end-turn", hostToken, nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	ts.decode(rr, &snap)
	assert.Equal(t, "awaiting_roll", snap.Game.Phase)
	assert.Equal(t, "GAMETEST01-p1", snap.CurrentPlayerID)

	// Second seat rolls onto the freshly bought tile and pays rent
	rr = ts.roll("GAMETEST01", guestToken, 1, 2)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	rr = ts.post("/api/v1/games/GAMETEST01/resolve", guestToken, nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	ts.decode(rr, &snap)
	assert.Equal(t, 988, snap.Players[1].Balance)
	assert.Equal(t, 952, snap.Players[0].Balance)
}

func TestRollNotYourTurn(t *testing.T) {
	ts := newAPITestServer(t)
	_, guestToken := ts.startedGame("GAMETEST01")

	rr := ts.roll("GAMETEST01", guestToken, 1, 2)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Equal(t, "NOT_YOUR_TURN", ts.errorCode(rr))
}

func TestEndTurnOutOfPhase(t *testing.T) {
	ts := newAPITestServer(t)
	hostToken, _ := ts.startedGame("GAMETEST01")

	rr := ts.post("/api/v1/games/GAMETEST01/end-turn", hostToken, nil)

	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, "INVALID_PHASE", ts.errorCode(rr))
}

func TestBuyTileInsufficientBalance(t *testing.T) {
	ts := newAPITestServer(t)
	hostToken, _ := ts.startedGame("GAMETEST01")

	// Drain the host's balance below the tile price
	ctx := context.Background()
	player, err := ts.app.Storage.GetPlayer(ctx, "GAMETEST01-p0")
	require.NoError(t, err)
	player.Balance = 50
	require.NoError(t, ts.app.Storage.SavePlayer(ctx, player))

	rr := ts.roll("GAMETEST01", hostToken, 1, 2)
	require.Equal(t, http.StatusOK, rr.Code)
	rr = ts.post("/api/v1/games/GAMETEST01/resolve", hostToken, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.post("/api/v1/games/GAMETEST01/buy", hostToken, nil)

	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, "BANKRUPTCY_RISK", ts.errorCode(rr))
}

func TestBuildRequiresBody(t *testing.T) {
	ts := newAPITestServer(t)
	hostToken, _ := ts.startedGame("GAMETEST01")

	rr := ts.post("/api/v1/games/GAMETEST01/build", hostToken, nil)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "INVALID_REQUEST", ts.errorCode(rr))
}

func TestPayJailFineNotInJail(t *testing.T) {
	ts := newAPITestServer(t)
	hostToken, _ := ts.startedGame("GAMETEST01")

	rr := ts.post("/api/v1/games/GAMETEST01/jail/pay", hostToken, nil)

	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, "NOT_IN_JAIL", ts.errorCode(rr))
}

func TestHostActsForLocalSeat(t *testing.T) {
	ts := newAPITestServer(t)
	hostToken := ts.createGuest("Anna")
	ts.createGame(hostToken, "GAMETEST01", nil)
	rr := ts.post("/api/v1/games/GAMETEST01/local-players", hostToken, map[string]string{
		"display_name": "Grandma",
	})
	require.Equal(t, http.StatusCreated, rr.Code)
	ts.startGame("GAMETEST01", hostToken)

	// Host plays seat 0, then drives the local seat through its turn
	rr = ts.roll("GAMETEST01", hostToken, 1, 2)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	rr = ts.post("/api/v1/games/GAMETEST01/resolve", hostToken, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	rr = ts.post("/api/v1/games/GAMETEST01/end-turn", hostToken, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	ts.app.MockRandom.QueueDice(2, 3)
	rr = ts.post("/api/v1/games/GAMETEST01/roll?player_id=GAMETEST01-p1", hostToken, nil)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var snap response.Snapshot
	ts.decode(rr, &snap)
	assert.Equal(t, 5, snap.Players[1].Position)
}

func TestAutoTurnPlaysWholeTurn(t *testing.T) {
	ts := newAPITestServer(t)
	hostToken, _ := ts.startedGame("GAMETEST01")

	ts.app.MockRandom.QueueDice(1, 2)
	// Buy Birch Street, skip building
	ts.app.MockRandom.QueueIntn(0, 1)
	rr := ts.post("/api/v1/games/GAMETEST01/auto-turn", hostToken, nil)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var result response.AutoTurn
	ts.decode(rr, &result)

	types := make([]string, len(result.Actions))
	for i, a := range result.Actions {
		types[i] = a.Type
	}
	assert.Equal(t, []string{"rolled", "resolved", "bought", "ended_turn"}, types)
	assert.Equal(t, 940, result.Snapshot.Players[0].Balance)
	assert.Equal(t, "GAMETEST01-p1", result.Snapshot.CurrentPlayerID)
}

func TestAutoTurnUnknownStrategy(t *testing.T) {
	ts := newAPITestServer(t)
	hostToken, _ := ts.startedGame("GAMETEST01")

	rr := ts.post("/api/v1/games/GAMETEST01/auto-turn?strategy=ruthless", hostToken, nil)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "INVALID_REQUEST", ts.errorCode(rr))
}

func TestActingForAnotherUsersSeatDenied(t *testing.T) {
	ts := newAPITestServer(t)
	_, guestToken := ts.startedGame("GAMETEST01")

	ts.app.MockRandom.QueueDice(1, 2)
	rr := ts.post("/api/v1/games/GAMETEST01/roll?player_id=GAMETEST01-p0", guestToken, nil)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Equal(t, "NOT_YOUR_TURN", ts.errorCode(rr))
}

func TestActingForUnknownSeat(t *testing.T) {
	ts := newAPITestServer(t)
	hostToken, _ := ts.startedGame("GAMETEST01")

	rr := ts.post("/api/v1/games/GAMETEST01/roll?player_id=nobody", hostToken, nil)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "PLAYER_NOT_FOUND", ts.errorCode(rr))
}
