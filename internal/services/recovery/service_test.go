package recovery

import (
	"context"
	"testing"
	"time"

	"github.com/pkalnins/tycoon-go/internal/board"
	"github.com/pkalnins/tycoon-go/internal/model"
	"github.com/pkalnins/tycoon-go/internal/storage/memory"
	"github.com/pkalnins/tycoon-go/internal/testutil"
	"github.com/stretchr/testify/suite"
)

type ServiceSuite struct {
	suite.Suite
	ctx     context.Context
	storage *memory.Storage
	service *Service
	game    *model.Game
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.storage = memory.New()
	s.service = New(s.storage, testutil.NopLogger())

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s.game = &model.Game{
		ID:           "GAMETEST01",
		HostID:       "u1",
		Status:       model.GameStatusActive,
		Phase:        model.PhaseAwaitingRoll,
		WinCondition: model.WinLastPlayerStanding,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.Require().NoError(s.storage.CreateGame(s.ctx, s.game))

	for _, tile := range board.Tiles(s.game.ID) {
		s.Require().NoError(s.storage.SaveTile(s.ctx, tile))
	}

	s.seat("p0", "u1", 0, false)
	s.seat("p1", "u2", 1, false)

	s.Require().NoError(s.storage.AppendLog(s.ctx, &model.GameLog{
		GameID:      s.game.ID,
		Action:      model.LogGameStarted,
		Description: "game started with 2 players",
		Round:       1,
	}))
}

func (s *ServiceSuite) seat(id string, userID model.UserID, seat int, eliminated bool) {
	s.Require().NoError(s.storage.SavePlayer(s.ctx, &model.Player{
		ID:         model.PlayerID(id),
		GameID:     s.game.ID,
		UserID:     &userID,
		Seat:       seat,
		Balance:    1000,
		Eliminated: eliminated,
	}))
}

func (s *ServiceSuite) TestReconnectReturnsFullSnapshot() {
	snap, err := s.service.Reconnect(s.ctx, s.game.ID, "u1")

	s.Require().NoError(err)
	s.Equal(s.game.ID, snap.Game.ID)
	s.Len(snap.Players, 2)
	s.Len(snap.Tiles, board.Size())
	s.NotEmpty(snap.LogTail)
}

func (s *ServiceSuite) TestReconnectUnknownGameIsStale() {
	_, err := s.service.Reconnect(s.ctx, "missing", "u1")

	var stale *model.StaleSessionError
	s.Require().ErrorAs(err, &stale)
	s.Equal(model.GameID("missing"), stale.GameID)
	s.Equal(model.UserID("u1"), stale.UserID)
}

func (s *ServiceSuite) TestReconnectFinishedGameIsStale() {
	s.game.Status = model.GameStatusFinished
	s.Require().NoError(s.storage.UpdateGame(s.ctx, s.game))

	_, err := s.service.Reconnect(s.ctx, s.game.ID, "u1")

	var stale *model.StaleSessionError
	s.Require().ErrorAs(err, &stale)
	s.Equal("game is finished", stale.Check)
}

func (s *ServiceSuite) TestReconnectWithoutSeatIsStale() {
	_, err := s.service.Reconnect(s.ctx, s.game.ID, "u3")

	var stale *model.StaleSessionError
	s.Require().ErrorAs(err, &stale)
	s.Equal("user holds no seat in this game", stale.Check)
}

func (s *ServiceSuite) TestReconnectEliminatedSeatIsStale() {
	s.seat("p2", "u3", 2, true)

	_, err := s.service.Reconnect(s.ctx, s.game.ID, "u3")

	var stale *model.StaleSessionError
	s.Require().ErrorAs(err, &stale)
	s.Equal("seat was eliminated", stale.Check)
}

func (s *ServiceSuite) TestReconnectWaitingGameIsAllowed() {
	// A lobby that has not started yet is still recoverable
	s.game.Status = model.GameStatusWaiting
	s.Require().NoError(s.storage.UpdateGame(s.ctx, s.game))

	snap, err := s.service.Reconnect(s.ctx, s.game.ID, "u2")

	s.Require().NoError(err)
	s.Equal(model.GameStatusWaiting, snap.Game.Status)
}
