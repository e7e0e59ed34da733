package resolve

import (
	"testing"

	"github.com/pkalnins/tycoon-go/internal/board"
	"github.com/pkalnins/tycoon-go/internal/model"
	"github.com/stretchr/testify/suite"
)

type ServiceSuite struct {
	suite.Suite
	service *Service
	game    *model.Game
	tiles   []*model.Tile
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.service = New()
	s.game = &model.Game{ID: "game-1", Status: model.GameStatusActive, Language: "en"}
	s.tiles = board.Tiles(s.game.ID)
}

func (s *ServiceSuite) context(player *model.Player, others ...*model.Player) *Context {
	players := append([]*model.Player{player}, others...)
	return &Context{
		Game:    s.game,
		Player:  player,
		Players: players,
		Tiles:   s.tiles,
		Round:   1,
	}
}

func (s *ServiceSuite) tileAt(index int) *model.Tile {
	return model.TileAt(s.tiles, index)
}

func (s *ServiceSuite) own(index int, owner model.PlayerID) *model.Tile {
	t := s.tileAt(index)
	id := owner
	t.OwnerID = &id
	return t
}

// Neutral tiles

func (s *ServiceSuite) TestLandingOnStartIsNoop() {
	p := &model.Player{ID: "p1", DisplayName: "Anna", Position: 0}

	effects, err := s.service.Landing(s.context(p), s.tileAt(0), nil)

	s.NoError(err)
	s.Empty(effects)
}

func (s *ServiceSuite) TestLandingOnJailIsJustVisiting() {
	p := &model.Player{ID: "p1", DisplayName: "Anna", Position: 12}

	effects, err := s.service.Landing(s.context(p), s.tileAt(12), nil)

	s.NoError(err)
	s.Empty(effects)
}

// Rent

func (s *ServiceSuite) TestUnownedPropertyNoRent() {
	p := &model.Player{ID: "p1", DisplayName: "Anna", Position: 1}

	effects, err := s.service.Landing(s.context(p), s.tileAt(1), nil)

	s.NoError(err)
	s.Empty(effects)
}

func (s *ServiceSuite) TestOwnPropertyNoRent() {
	p := &model.Player{ID: "p1", DisplayName: "Anna", Position: 1}
	s.own(1, p.ID)

	effects, err := s.service.Landing(s.context(p), s.tileAt(1), nil)

	s.NoError(err)
	s.Empty(effects)
}

func (s *ServiceSuite) TestRentEmitsExpenseAndMatchingIncome() {
	p := &model.Player{ID: "p1", DisplayName: "Anna", Position: 1}
	owner := &model.Player{ID: "p2", DisplayName: "Bert"}
	s.own(1, owner.ID)

	effects, err := s.service.Landing(s.context(p, owner), s.tileAt(1), nil)

	s.NoError(err)
	s.Require().Len(effects, 2)

	expense := effects[0].Transaction
	s.Require().NotNil(expense)
	s.Equal(p.ID, expense.PlayerID)
	s.Equal(10, expense.Amount)
	s.Equal(model.DirectionExpense, expense.Direction)
	s.False(expense.ToChurch)

	income := effects[1].Transaction
	s.Require().NotNil(income)
	s.Equal(owner.ID, income.PlayerID)
	s.Equal(10, income.Amount)
	s.Equal(model.DirectionIncome, income.Direction)
}

func (s *ServiceSuite) TestRentScalesWithBuildings() {
	p := &model.Player{ID: "p1", DisplayName: "Anna", Position: 1}
	owner := &model.Player{ID: "p2", DisplayName: "Bert"}
	tile := s.own(1, owner.ID)
	tile.Buildings = 3

	effects, err := s.service.Landing(s.context(p, owner), tile, nil)

	s.NoError(err)
	s.Require().Len(effects, 2)
	// base rent 10 * (1 + 3 buildings)
	s.Equal(40, effects[0].Transaction.Amount)
}

func (s *ServiceSuite) TestPortRentScalesWithPortsOwned() {
	p := &model.Player{ID: "p1", DisplayName: "Anna", Position: 5}
	owner := &model.Player{ID: "p2", DisplayName: "Bert"}
	s.own(5, owner.ID)
	s.own(17, owner.ID)

	effects, err := s.service.Landing(s.context(p, owner), s.tileAt(5), nil)

	s.NoError(err)
	s.Require().Len(effects, 2)
	// base rent 25 * 2 ports
	s.Equal(50, effects[0].Transaction.Amount)
}

func (s *ServiceSuite) TestNoRentWhileOwnerInJail() {
	p := &model.Player{ID: "p1", DisplayName: "Anna", Position: 1}
	owner := &model.Player{ID: "p2", DisplayName: "Bert", InJail: true}
	s.own(1, owner.ID)

	effects, err := s.service.Landing(s.context(p, owner), s.tileAt(1), nil)

	s.NoError(err)
	s.Empty(effects)
}

func (s *ServiceSuite) TestRentImmunitySkipsPaymentButLogs() {
	p := &model.Player{ID: "p1", DisplayName: "Anna", Position: 1, ImmunityUntil: 2}
	owner := &model.Player{ID: "p2", DisplayName: "Bert"}
	s.own(1, owner.ID)

	effects, err := s.service.Landing(s.context(p, owner), s.tileAt(1), nil)

	s.NoError(err)
	s.Require().Len(effects, 1)
	s.Nil(effects[0].Transaction)
	s.Contains(effects[0].Description, "immune")
}

// Tax and church

func (s *ServiceSuite) TestTaxTileLeviesToChurchFund() {
	p := &model.Player{ID: "p1", DisplayName: "Anna", Position: 4}

	effects, err := s.service.Landing(s.context(p), s.tileAt(4), nil)

	s.NoError(err)
	s.Require().Len(effects, 1)
	tx := effects[0].Transaction
	s.Require().NotNil(tx)
	s.Equal(100, tx.Amount)
	s.Equal(model.DirectionExpense, tx.Direction)
	s.True(tx.ToChurch)
}

func (s *ServiceSuite) TestChurchTileDonation() {
	p := &model.Player{ID: "p1", DisplayName: "Anna", Position: 20}

	effects, err := s.service.Landing(s.context(p), s.tileAt(20), nil)

	s.NoError(err)
	s.Require().Len(effects, 1)
	tx := effects[0].Transaction
	s.Require().NotNil(tx)
	s.Equal(100, tx.Amount)
	s.True(tx.ToChurch)
}

// Go-to-jail tile

func (s *ServiceSuite) TestGoToJailTile() {
	p := &model.Player{ID: "p1", DisplayName: "Anna", Position: 18}

	effects, err := s.service.Landing(s.context(p), s.tileAt(18), nil)

	s.NoError(err)
	s.Require().Len(effects, 1)
	s.Equal(model.EffectGoToJail, effects[0].Kind)
}

// Card tiles

func (s *ServiceSuite) TestCardTileRequiresDrawnCard() {
	p := &model.Player{ID: "p1", DisplayName: "Anna", Position: 7}

	_, err := s.service.Landing(s.context(p), s.tileAt(7), nil)

	s.ErrorIs(err, model.ErrDeckEmpty)
}

func (s *ServiceSuite) card(action model.CardAction, value int) *model.Card {
	return &model.Card{
		ID:     "c1",
		Deck:   model.DeckChance,
		Text:   map[string]string{"en": "card text", "lv": "kārts teksts"},
		Action: action,
		Value:  value,
	}
}

func (s *ServiceSuite) TestCardAddMoney() {
	p := &model.Player{ID: "p1", DisplayName: "Anna"}

	effects, err := s.service.Card(s.context(p), s.card(model.CardAddMoney, 75))

	s.NoError(err)
	s.Require().Len(effects, 1)
	tx := effects[0].Transaction
	s.Equal(75, tx.Amount)
	s.Equal(model.DirectionIncome, tx.Direction)
}

func (s *ServiceSuite) TestCardLoseMoneyFeedsChurch() {
	p := &model.Player{ID: "p1", DisplayName: "Anna"}

	effects, err := s.service.Card(s.context(p), s.card(model.CardLoseMoney, 40))

	s.NoError(err)
	s.Require().Len(effects, 1)
	tx := effects[0].Transaction
	s.Equal(40, tx.Amount)
	s.Equal(model.DirectionExpense, tx.Direction)
	s.True(tx.ToChurch)
}

func (s *ServiceSuite) TestCardTextFallsBackToEnglish() {
	p := &model.Player{ID: "p1", DisplayName: "Anna"}
	s.game.Language = "de"

	effects, err := s.service.Card(s.context(p), s.card(model.CardAddMoney, 10))

	s.NoError(err)
	s.Equal("card text", effects[0].Description)
}

func (s *ServiceSuite) TestCardGoToTile() {
	p := &model.Player{ID: "p1", DisplayName: "Anna", Position: 10}

	effects, err := s.service.Card(s.context(p), s.card(model.CardGoToTile, 3))

	s.NoError(err)
	s.Require().Len(effects, 1)
	s.Equal(model.EffectMove, effects[0].Kind)
	s.Equal(3, effects[0].MoveTo)
	s.False(effects[0].AwardPassBonus)
}

func (s *ServiceSuite) TestCardGoToTileWithBonus() {
	p := &model.Player{ID: "p1", DisplayName: "Anna", Position: 10}

	effects, err := s.service.Card(s.context(p), s.card(model.CardGoToTileBonus, 0))

	s.NoError(err)
	s.Require().Len(effects, 1)
	s.Equal(0, effects[0].MoveTo)
	s.True(effects[0].AwardPassBonus)
}

func (s *ServiceSuite) TestCardGoToTileWithBonusAheadDoesNotPay() {
	// Moving forward to a tile later on the board never passes start
	p := &model.Player{ID: "p1", DisplayName: "Anna", Position: 22}

	effects, err := s.service.Card(s.context(p), s.card(model.CardGoToTileBonus, 23))

	s.NoError(err)
	s.Require().Len(effects, 1)
	s.Equal(23, effects[0].MoveTo)
	s.False(effects[0].AwardPassBonus)
}

func (s *ServiceSuite) TestCardGoToNearestPortWrapsAroundBoard() {
	// Position 19 is past both ports (5 and 17), so the nearest port
	// wraps around to index 5.
	p := &model.Player{ID: "p1", DisplayName: "Anna", Position: 19}

	effects, err := s.service.Card(s.context(p), s.card(model.CardGoToNearestPort, 0))

	s.NoError(err)
	s.Require().Len(effects, 1)
	s.Equal(model.EffectMove, effects[0].Kind)
	s.Equal(5, effects[0].MoveTo)
}

func (s *ServiceSuite) TestCardGoToNearestPortAhead() {
	p := &model.Player{ID: "p1", DisplayName: "Anna", Position: 10}

	effects, err := s.service.Card(s.context(p), s.card(model.CardGoToNearestPort, 0))

	s.NoError(err)
	s.Equal(17, effects[0].MoveTo)
}

func (s *ServiceSuite) TestCardGoToJail() {
	p := &model.Player{ID: "p1", DisplayName: "Anna"}

	effects, err := s.service.Card(s.context(p), s.card(model.CardGoToJail, 0))

	s.NoError(err)
	s.Require().Len(effects, 1)
	s.Equal(model.EffectGoToJail, effects[0].Kind)
}

func (s *ServiceSuite) TestCardGetOutOfJailFree() {
	p := &model.Player{ID: "p1", DisplayName: "Anna"}

	effects, err := s.service.Card(s.context(p), s.card(model.CardGetOutOfJailFree, 0))

	s.NoError(err)
	s.Require().Len(effects, 1)
	s.Equal(model.EffectJailCard, effects[0].Kind)
}

func (s *ServiceSuite) TestCardPayPerBuilding() {
	p := &model.Player{ID: "p1", DisplayName: "Anna"}
	t1 := s.own(1, p.ID)
	t1.Buildings = 2

	effects, err := s.service.Card(s.context(p), s.card(model.CardPayPerBuilding, 50))

	s.NoError(err)
	s.Require().Len(effects, 1)
	tx := effects[0].Transaction
	s.Require().NotNil(tx)
	s.Equal(100, tx.Amount)
	s.Equal(model.DirectionExpense, tx.Direction)
	s.True(tx.ToChurch)
}

func (s *ServiceSuite) TestCardPayPerBuildingNoBuildings() {
	p := &model.Player{ID: "p1", DisplayName: "Anna"}

	effects, err := s.service.Card(s.context(p), s.card(model.CardPayPerBuilding, 50))

	s.NoError(err)
	s.Require().Len(effects, 1)
	s.Nil(effects[0].Transaction)
}

func (s *ServiceSuite) TestUnknownCardActionFailsLoudly() {
	p := &model.Player{ID: "p1", DisplayName: "Anna"}

	_, err := s.service.Card(s.context(p), s.card("teleport", 0))

	s.ErrorIs(err, model.ErrUnknownCardAction)
}
