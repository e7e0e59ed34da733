package sse

import (
	"strings"
	"testing"
	"time"

	"github.com/pkalnins/tycoon-go/internal/model"
	"github.com/pkalnins/tycoon-go/internal/testutil"
)

func newTestBroadcaster() (*HubManager, *Broadcaster) {
	manager := NewHubManager(testutil.NopLogger())
	return manager, NewBroadcaster(manager, testutil.NopLogger())
}

func connectClient(t *testing.T, manager *HubManager, gameID model.GameID) *Client {
	t.Helper()
	hub := manager.GetOrCreateHub(gameID)
	client := NewClient(hub, "u1")
	hub.Register(client)
	time.Sleep(10 * time.Millisecond)
	return client
}

func receive(t *testing.T, client *Client) string {
	t.Helper()
	select {
	case msg := <-client.send:
		return string(msg)
	case <-time.After(100 * time.Millisecond):
		t.Fatal("client did not receive message")
		return ""
	}
}

func TestBroadcaster_GameChanged(t *testing.T) {
	manager, broadcaster := newTestBroadcaster()
	client := connectClient(t, manager, "GAMETEST01")

	broadcaster.GameChanged("GAMETEST01")

	msg := receive(t, client)
	if !strings.Contains(msg, "event: game-changed") {
		t.Errorf("message does not contain event name: %s", msg)
	}
	if !strings.Contains(msg, `"game_id":"GAMETEST01"`) {
		t.Errorf("message does not contain game id: %s", msg)
	}

	manager.RemoveHub("GAMETEST01")
}

func TestBroadcaster_GameFinished(t *testing.T) {
	manager, broadcaster := newTestBroadcaster()
	client := connectClient(t, manager, "GAMETEST01")

	broadcaster.GameFinished("GAMETEST01")

	msg := receive(t, client)
	if !strings.Contains(msg, "event: game-finished") {
		t.Errorf("message does not contain event name: %s", msg)
	}
	if !strings.Contains(msg, `"game_id":"GAMETEST01"`) {
		t.Errorf("message does not contain game id: %s", msg)
	}

	manager.RemoveHub("GAMETEST01")
}

func TestBroadcaster_PlayerJoined(t *testing.T) {
	manager, broadcaster := newTestBroadcaster()
	client := connectClient(t, manager, "GAMETEST01")

	broadcaster.PlayerJoined("GAMETEST01")

	msg := receive(t, client)
	if !strings.Contains(msg, "event: player-joined") {
		t.Errorf("message does not contain event name: %s", msg)
	}
	if !strings.Contains(msg, "data: GAMETEST01") {
		t.Errorf("message does not contain game id: %s", msg)
	}

	manager.RemoveHub("GAMETEST01")
}

func TestBroadcaster_GameStarted(t *testing.T) {
	manager, broadcaster := newTestBroadcaster()
	client := connectClient(t, manager, "GAMETEST01")

	broadcaster.GameStarted("GAMETEST01")

	msg := receive(t, client)
	if !strings.Contains(msg, "event: game-started") {
		t.Errorf("message does not contain event name: %s", msg)
	}

	manager.RemoveHub("GAMETEST01")
}

func TestBroadcaster_NoHubDoesNotPanic(t *testing.T) {
	_, broadcaster := newTestBroadcaster()

	// None of these have a hub registered
	broadcaster.GameChanged("NOEXIST")
	broadcaster.GameFinished("NOEXIST")
	broadcaster.PlayerJoined("NOEXIST")
	broadcaster.GameStarted("NOEXIST")
}
