package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// events makes an SSE request that disconnects after the timeout, since
// the stream otherwise stays open.
func (ts *apiTestServer) events(gameID, token string, timeout time.Duration) *httptest.ResponseRecorder {
	ts.t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/games/"+gameID+"/events", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	req = req.WithContext(ctx)

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func TestSSE_EndpointHeaders(t *testing.T) {
	ts := newAPITestServer(t)
	hostToken, _ := ts.startedGame("GAMETEST01")

	rr := ts.events("GAMETEST01", hostToken, 100*time.Millisecond)

	assert.Equal(t, "text/event-stream", rr.Header().Get("Content-Type"))
	assert.Equal(t, "no-cache", rr.Header().Get("Cache-Control"))
	assert.Equal(t, "keep-alive", rr.Header().Get("Connection"))
	assert.Equal(t, "no", rr.Header().Get("X-Accel-Buffering"))
}

func TestSSE_ConnectedEvent(t *testing.T) {
	ts := newAPITestServer(t)
	hostToken, _ := ts.startedGame("GAMETEST01")

	rr := ts.events("GAMETEST01", hostToken, 100*time.Millisecond)

	body := rr.Body.String()
	assert.Contains(t, body, "event: connected")
	assert.Contains(t, body, `data: {"status":"connected"}`)
}

func TestSSE_RequiresAuthentication(t *testing.T) {
	ts := newAPITestServer(t)
	ts.startedGame("GAMETEST01")

	rr := ts.events("GAMETEST01", "", 100*time.Millisecond)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestSSE_UnknownGame(t *testing.T) {
	ts := newAPITestServer(t)
	token := ts.createGuest("Anna")

	rr := ts.events("NOPE", token, 100*time.Millisecond)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "GAME_NOT_FOUND", ts.errorCode(rr))
}

func TestSSE_HubCreatedOnConnect(t *testing.T) {
	ts := newAPITestServer(t)
	hostToken, _ := ts.startedGame("GAMETEST01")

	// The hub only exists once someone is listening
	assert.Nil(t, ts.app.HubManager.GetHub("GAMETEST01"))

	ts.events("GAMETEST01", hostToken, 100*time.Millisecond)

	assert.NotNil(t, ts.app.HubManager.GetHub("GAMETEST01"))
}
