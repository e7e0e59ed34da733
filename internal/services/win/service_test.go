package win

import (
	"testing"

	"github.com/pkalnins/tycoon-go/internal/model"
	"github.com/stretchr/testify/suite"
)

type ServiceSuite struct {
	suite.Suite
	service *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.service = New()
}

func player(id string, balance int, eliminated bool) *model.Player {
	return &model.Player{ID: model.PlayerID(id), Balance: balance, Eliminated: eliminated}
}

// last_player_standing

func (s *ServiceSuite) TestLastPlayerStandingNotYet() {
	game := &model.Game{Status: model.GameStatusActive, WinCondition: model.WinLastPlayerStanding}
	players := []*model.Player{player("p1", 500, false), player("p2", 500, false)}

	_, done := s.service.Evaluate(game, players)

	s.False(done)
}

func (s *ServiceSuite) TestLastPlayerStandingWins() {
	game := &model.Game{Status: model.GameStatusActive, WinCondition: model.WinLastPlayerStanding}
	players := []*model.Player{player("p1", 500, true), player("p2", 500, false), player("p3", 0, true)}

	result, done := s.service.Evaluate(game, players)

	s.Require().True(done)
	s.Equal(model.PlayerID("p2"), result.Winner)
	s.Equal(model.WinLastPlayerStanding, result.Reason)
	s.Empty(result.TieWith)
}

// round_limit

func (s *ServiceSuite) TestRoundLimitNotReached() {
	game := &model.Game{
		Status:       model.GameStatusActive,
		WinCondition: model.WinRoundLimit,
		RoundLimit:   10,
		CurrentTurn:  19, // round 10 of 10 still in progress
	}
	players := []*model.Player{player("p1", 500, false), player("p2", 500, false)}

	_, done := s.service.Evaluate(game, players)

	s.False(done)
}

func (s *ServiceSuite) TestRoundLimitRichestWins() {
	game := &model.Game{
		Status:       model.GameStatusActive,
		WinCondition: model.WinRoundLimit,
		RoundLimit:   10,
		CurrentTurn:  20,
	}
	players := []*model.Player{player("p1", 900, false), player("p2", 1200, false)}

	result, done := s.service.Evaluate(game, players)

	s.Require().True(done)
	s.Equal(model.PlayerID("p2"), result.Winner)
	s.Equal(model.WinRoundLimit, result.Reason)
	s.Empty(result.TieWith)
}

func (s *ServiceSuite) TestRoundLimitTieReported() {
	game := &model.Game{
		Status:       model.GameStatusActive,
		WinCondition: model.WinRoundLimit,
		RoundLimit:   5,
		CurrentTurn:  15,
	}
	players := []*model.Player{
		player("p1", 800, false),
		player("p2", 800, false),
		player("p3", 300, false),
	}

	result, done := s.service.Evaluate(game, players)

	s.Require().True(done)
	s.Equal(model.PlayerID("p1"), result.Winner)
	s.Equal([]model.PlayerID{"p2"}, result.TieWith)
}

func (s *ServiceSuite) TestRoundLimitIgnoresEliminatedBalances() {
	game := &model.Game{
		Status:       model.GameStatusActive,
		WinCondition: model.WinRoundLimit,
		RoundLimit:   5,
		CurrentTurn:  10,
	}
	players := []*model.Player{
		player("p1", 400, false),
		player("p2", 9999, true),
		player("p3", 300, false),
	}

	result, done := s.service.Evaluate(game, players)

	s.Require().True(done)
	s.Equal(model.PlayerID("p1"), result.Winner)
}

// church_goal

func (s *ServiceSuite) TestChurchGoalNotReached() {
	game := &model.Game{
		Status:       model.GameStatusActive,
		WinCondition: model.WinChurchGoal,
		ChurchGoal:   1000,
		ChurchFund:   999,
	}
	players := []*model.Player{player("p1", 500, false), player("p2", 500, false)}

	_, done := s.service.Evaluate(game, players)

	s.False(done)
}

func (s *ServiceSuite) TestChurchGoalRichestWins() {
	game := &model.Game{
		Status:       model.GameStatusActive,
		WinCondition: model.WinChurchGoal,
		ChurchGoal:   1000,
		ChurchFund:   1000,
	}
	players := []*model.Player{player("p1", 700, false), player("p2", 400, false)}

	result, done := s.service.Evaluate(game, players)

	s.Require().True(done)
	s.Equal(model.PlayerID("p1"), result.Winner)
	s.Equal(model.WinChurchGoal, result.Reason)
}

// Guards

func (s *ServiceSuite) TestFinishedGameNeverReevaluates() {
	game := &model.Game{
		Status:       model.GameStatusFinished,
		WinCondition: model.WinChurchGoal,
		ChurchGoal:   100,
		ChurchFund:   500,
	}
	players := []*model.Player{player("p1", 500, false)}

	_, done := s.service.Evaluate(game, players)

	s.False(done)
}
