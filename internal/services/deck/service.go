package deck

import (
	"log/slog"
	"sync"

	"github.com/pkalnins/tycoon-go/internal/cards"
	"github.com/pkalnins/tycoon-go/internal/dependencies/random"
	"github.com/pkalnins/tycoon-go/internal/model"
)

// Service holds per-game card deck state. Cards themselves are
// immutable reference data; only the draw order is stateful, and it is
// deliberately kept in memory: a process restart reshuffles, which is
// indistinguishable from a fresh shuffle to players.
//
// Draws must happen inside the turn machine's per-game lock so a single
// unambiguous card is logged even under concurrent retry.
type Service struct {
	random random.Random
	logger *slog.Logger

	mu    sync.Mutex
	decks map[deckKey]*gameDeck
}

type deckKey struct {
	gameID model.GameID
	kind   model.DeckKind
}

type gameDeck struct {
	cards           []*model.Card
	order           []int // Shuffled draw order for without-replacement games
	next            int   // Committed rotation position
	pending         int   // Draws handed out but not committed yet
	withReplacement bool
}

// New creates a new deck service
func New(rnd random.Random, logger *slog.Logger) *Service {
	return &Service{
		random: rnd,
		logger: logger,
		decks:  make(map[deckKey]*gameDeck),
	}
}

// Draw returns the next card from the given deck. With replacement
// (the default policy) every draw is uniform over the full deck;
// without replacement the deck is walked in shuffled order and
// reshuffled once exhausted.
//
// Without-replacement draws stay pending until CommitDraws: a turn
// mutation that is retried or abandoned calls DiscardDraws instead, so
// its draws return to the rotation rather than leaking out of it.
func (s *Service) Draw(game *model.Game, kind model.DeckKind) (*model.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := s.deck(game, kind)
	if len(d.cards) == 0 {
		return nil, model.ErrDeckEmpty
	}

	var card *model.Card
	if d.withReplacement {
		card = d.cards[s.random.Intn(len(d.cards))]
	} else {
		if d.next+d.pending >= len(d.order) {
			s.shuffle(d)
		}
		card = d.cards[d.order[d.next+d.pending]]
		d.pending++
	}

	s.logger.Debug("card drawn",
		slog.String("game_id", string(game.ID)),
		slog.String("deck", string(kind)),
		slog.String("card_id", string(card.ID)),
	)
	return card, nil
}

// CommitDraws advances the rotation past the draws made during a
// committed turn mutation.
func (s *Service) CommitDraws(gameID model.GameID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, kind := range []model.DeckKind{model.DeckCommunity, model.DeckChance} {
		if d, ok := s.decks[deckKey{gameID, kind}]; ok {
			d.next += d.pending
			d.pending = 0
		}
	}
}

// DiscardDraws returns pending draws to the rotation after a turn
// mutation was retried or abandoned.
func (s *Service) DiscardDraws(gameID model.GameID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, kind := range []model.DeckKind{model.DeckCommunity, model.DeckChance} {
		if d, ok := s.decks[deckKey{gameID, kind}]; ok {
			d.pending = 0
		}
	}
}

// Forget drops deck state for a finished game
func (s *Service) Forget(gameID model.GameID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.decks, deckKey{gameID, model.DeckCommunity})
	delete(s.decks, deckKey{gameID, model.DeckChance})
}

func (s *Service) deck(game *model.Game, kind model.DeckKind) *gameDeck {
	key := deckKey{game.ID, kind}
	if d, ok := s.decks[key]; ok {
		return d
	}

	d := &gameDeck{
		cards:           cards.Deck(kind),
		withReplacement: game.DrawWithReplacement,
	}
	if !d.withReplacement {
		s.shuffle(d)
	}
	s.decks[key] = d
	return d
}

func (s *Service) shuffle(d *gameDeck) {
	d.order = make([]int, len(d.cards))
	for i := range d.order {
		d.order[i] = i
	}
	s.random.Shuffle(len(d.order), func(i, j int) {
		d.order[i], d.order[j] = d.order[j], d.order[i]
	})
	d.next = 0
	d.pending = 0
}
