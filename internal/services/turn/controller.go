package turn

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/pkalnins/tycoon-go/internal/board"
	"github.com/pkalnins/tycoon-go/internal/dependencies/clock"
	"github.com/pkalnins/tycoon-go/internal/dependencies/random"
	"github.com/pkalnins/tycoon-go/internal/model"
	"github.com/pkalnins/tycoon-go/internal/services/deck"
	"github.com/pkalnins/tycoon-go/internal/services/economy"
	"github.com/pkalnins/tycoon-go/internal/services/resolve"
	"github.com/pkalnins/tycoon-go/internal/services/win"
	"github.com/pkalnins/tycoon-go/internal/storage"
)

const (
	// casRetries bounds the commit retry loop on write conflicts
	casRetries = 3

	// logTailLimit is how many log entries a snapshot carries
	logTailLimit = 50

	// maxJailTurns is the number of failed escape attempts before the
	// fine is taken automatically.
	maxJailTurns = 3

	// maxChainedMoves bounds card-driven movement so a move card landing
	// on another card tile cannot loop forever.
	maxChainedMoves = 3
)

// Notifier receives a signal after every committed game mutation.
// Implemented by the realtime layer; a nil notifier is valid.
type Notifier interface {
	GameChanged(gameID model.GameID)
}

// Controller is the turn state machine. Every mutation of an active
// game goes through it: it serializes turns per game with a keyed
// mutex, mutates a working set in memory, and commits through the
// storage CAS so concurrent processes cannot interleave writes.
type Controller struct {
	storage  storage.Storage
	economy  *economy.Service
	resolver *resolve.Service
	decks    *deck.Service
	win      *win.Service
	clock    clock.Clock
	random   random.Random
	logger   *slog.Logger
	notifier Notifier

	mu    sync.Mutex
	locks map[model.GameID]*sync.Mutex
}

// NewController creates a new turn controller
func NewController(
	storage storage.Storage,
	economy *economy.Service,
	resolver *resolve.Service,
	decks *deck.Service,
	win *win.Service,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:  storage,
		economy:  economy,
		resolver: resolver,
		decks:    decks,
		win:      win,
		clock:    clock,
		random:   random,
		logger:   logger,
		locks:    make(map[model.GameID]*sync.Mutex),
	}
}

// SetNotifier attaches the realtime notifier. Called once during
// wiring, before the controller serves requests.
func (c *Controller) SetNotifier(n Notifier) {
	c.notifier = n
}

// workingSet is the in-memory state a single operation mutates. It is
// loaded fresh at the start of each commit attempt and thrown away on
// conflict.
type workingSet struct {
	game    *model.Game
	players []*model.Player
	tiles   []*model.Tile
	logs    []*model.GameLog
}

func (ws *workingSet) activeCount() int {
	return len(model.ActivePlayers(ws.players))
}

func (ws *workingSet) round() int {
	return ws.game.Round(ws.activeCount())
}

func (ws *workingSet) playerByID(id model.PlayerID) *model.Player {
	for _, p := range ws.players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// RollDice rolls for the current player and moves them, or attempts a
// jail escape if they are jailed. Three consecutive doubles send the
// player to jail with no movement.
func (c *Controller) RollDice(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (*model.Snapshot, error) {
	return c.withGame(ctx, gameID, func(ws *workingSet) error {
		player, err := c.requireTurn(ws, playerID, model.PhaseAwaitingRoll)
		if err != nil {
			return err
		}

		d1, d2 := c.random.Die(), c.random.Die()
		ws.game.Dice = [2]int{d1, d2}
		c.appendLog(ws, &player.ID, model.LogDiceRolled,
			fmt.Sprintf("%s rolled %d and %d", player.DisplayName, d1, d2))

		if player.InJail {
			return c.rollInJail(ws, player, d1, d2)
		}

		if d1 == d2 {
			player.DoublesCount++
		} else {
			player.DoublesCount = 0
		}

		// Speeding: the third consecutive double jails the player where
		// they stand, with no movement and no pass-start bonus.
		if player.DoublesCount >= 3 {
			c.sendToJail(ws, player, player.DisplayName+" rolled three doubles in a row and is sent to jail")
			ws.game.Phase = model.PhaseAwaitingEndTurn
			return nil
		}

		c.movePlayer(ws, player, d1+d2)
		ws.game.Phase = model.PhaseResolving
		return nil
	})
}

// rollInJail handles a roll made from jail. Doubles escape; a third
// failed attempt pays the fine automatically and releases the player.
func (c *Controller) rollInJail(ws *workingSet, player *model.Player, d1, d2 int) error {
	if d1 == d2 {
		player.InJail = false
		player.JailTurns = 0
		player.DoublesCount = 0
		c.appendLog(ws, &player.ID, model.LogJailReleased,
			player.DisplayName+" rolled doubles and leaves jail")
		c.movePlayer(ws, player, d1+d2)
		ws.game.Phase = model.PhaseResolving
		return nil
	}

	player.JailTurns++
	if player.JailTurns < maxJailTurns {
		c.appendLog(ws, &player.ID, model.LogJailed,
			fmt.Sprintf("%s failed to roll doubles (attempt %d of %d)", player.DisplayName, player.JailTurns, maxJailTurns))
		ws.game.Phase = model.PhaseAwaitingEndTurn
		return nil
	}

	// Out of attempts: the fine is mandatory, then the roll counts.
	survived, err := c.chargeToChurch(ws, player, board.JailFine, "jail fine", model.LogJailFine,
		fmt.Sprintf("%s pays the %d jail fine after three failed attempts", player.DisplayName, board.JailFine))
	if err != nil {
		return err
	}
	if !survived {
		return c.turnOverAfterElimination(ws, player)
	}

	player.InJail = false
	player.JailTurns = 0
	c.appendLog(ws, &player.ID, model.LogJailReleased, player.DisplayName+" leaves jail")
	c.movePlayer(ws, player, d1+d2)
	ws.game.Phase = model.PhaseResolving
	return nil
}

// ResolveLanding resolves the tile the current player landed on,
// drawing a card first when the tile calls for one. All effects are
// applied to the working set and logged individually before the commit.
func (c *Controller) ResolveLanding(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (*model.Snapshot, error) {
	return c.withGame(ctx, gameID, func(ws *workingSet) error {
		player, err := c.requireTurn(ws, playerID, model.PhaseResolving)
		if err != nil {
			return err
		}

		if err := c.resolveAt(ws, player, 0); err != nil {
			return err
		}

		if ws.game.Status != model.GameStatusFinished {
			if player.Eliminated {
				return c.turnOverAfterElimination(ws, player)
			}
			ws.game.Phase = model.PhaseAwaitingEndTurn
			c.maybeFinish(ws)
		}
		return nil
	})
}

// resolveAt resolves the player's current tile, following card-driven
// movement up to maxChainedMoves deep.
func (c *Controller) resolveAt(ws *workingSet, player *model.Player, depth int) error {
	if depth >= maxChainedMoves {
		return nil
	}

	tile := model.TileAt(ws.tiles, player.Position)
	if tile == nil {
		return model.ErrTileNotFound
	}

	var card *model.Card
	if tile.Type == model.TileChance || tile.Type == model.TileCommunity {
		kind := model.DeckChance
		if tile.Type == model.TileCommunity {
			kind = model.DeckCommunity
		}
		drawn, err := c.decks.Draw(ws.game, kind)
		if err != nil {
			return err
		}
		card = drawn
		c.appendLog(ws, &player.ID, model.LogCardDrawn,
			fmt.Sprintf("%s drew a card: %s", player.DisplayName, card.TextIn(ws.game.Language)))
	}

	rc := &resolve.Context{
		Game:    ws.game,
		Player:  player,
		Players: ws.players,
		Tiles:   ws.tiles,
		Round:   ws.round(),
	}
	effects, err := c.resolver.Landing(rc, tile, card)
	if err != nil {
		return err
	}

	return c.applyEffects(ws, player, effects, depth)
}

// applyEffects applies resolver output in order. Rent arrives as an
// expense/income pair; the income is skipped when the payer was
// eliminated, since the drained balance already went to the creditor.
func (c *Controller) applyEffects(ws *workingSet, player *model.Player, effects []model.Effect, depth int) error {
	for i := 0; i < len(effects); i++ {
		effect := effects[i]

		switch effect.Kind {
		case model.EffectTransaction:
			if effect.Transaction == nil {
				c.appendLog(ws, &player.ID, model.LogCardEffect, effect.Description)
				continue
			}
			tx := *effect.Transaction

			if tx.PlayerID != player.ID {
				// Income side of a rent pair, owner credited directly
				target := ws.playerByID(tx.PlayerID)
				if target == nil {
					return model.ErrPlayerNotFound
				}
				if err := c.economy.Apply(ws.game, target, tx); err != nil {
					return err
				}
				c.appendLog(ws, &target.ID, model.LogRentPaid, effect.Description)
				continue
			}

			if tx.Direction == model.DirectionIncome {
				if err := c.economy.Apply(ws.game, player, tx); err != nil {
					return err
				}
				c.appendLog(ws, &player.ID, model.LogCardEffect, effect.Description)
				continue
			}

			creditor := c.creditorFor(ws, effects, i)
			survived, raised, err := c.economy.ApplyOrLiquidate(ws.game, player, ws.tiles, tx, creditor)
			if err != nil {
				return err
			}
			for _, r := range raised {
				c.appendLog(ws, &player.ID, model.LogLiquidated, player.DisplayName+" "+r.Reason)
			}
			if !survived {
				c.appendLog(ws, &player.ID, model.LogEliminated,
					player.DisplayName+" went bankrupt and is out of the game")
				// Drop the paired income effect, if any
				return nil
			}
			c.appendLog(ws, &player.ID, actionFor(tx), effect.Description)

		case model.EffectMove:
			if effect.AwardPassBonus {
				c.awardPassBonus(ws, player)
			}
			player.Position = effect.MoveTo % board.Size()
			c.appendLog(ws, &player.ID, model.LogMoved, effect.Description)
			if err := c.resolveAt(ws, player, depth+1); err != nil {
				return err
			}
			if player.Eliminated {
				return nil
			}

		case model.EffectGoToJail:
			c.sendToJail(ws, player, effect.Description)

		case model.EffectJailCard:
			player.JailCards++
			c.appendLog(ws, &player.ID, model.LogCardEffect, effect.Description)

		case model.EffectSkipNextTurn:
			player.SkipNextTurn = true
			c.appendLog(ws, &player.ID, model.LogCardEffect, effect.Description)

		default:
			return fmt.Errorf("unhandled effect kind %q", effect.Kind)
		}
	}
	return nil
}

// creditorFor finds the player the expense at index i is owed to: the
// target of an immediately following income effect of the same amount.
// Levies and taxes have no creditor.
func (c *Controller) creditorFor(ws *workingSet, effects []model.Effect, i int) *model.Player {
	if i+1 >= len(effects) {
		return nil
	}
	next := effects[i+1].Transaction
	if next == nil || next.Direction != model.DirectionIncome {
		return nil
	}
	if next.Amount != effects[i].Transaction.Amount {
		return nil
	}
	return ws.playerByID(next.PlayerID)
}

// EndTurn closes the current player's turn. A non-third double grants
// the same player another roll; otherwise play advances, skipping
// players flagged to sit out and eliminated seats.
func (c *Controller) EndTurn(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (*model.Snapshot, error) {
	return c.withGame(ctx, gameID, func(ws *workingSet) error {
		player, err := c.requireTurn(ws, playerID, model.PhaseAwaitingEndTurn)
		if err != nil {
			return err
		}

		c.appendLog(ws, &player.ID, model.LogTurnEnded, player.DisplayName+" ended their turn")

		// A double earns another roll, unless it was the speeding double
		// that jailed them or they are sitting in jail.
		dice := ws.game.Dice
		if dice[0] == dice[1] && !player.InJail && player.DoublesCount > 0 && player.DoublesCount < 3 {
			ws.game.Phase = model.PhaseAwaitingRoll
			c.maybeFinish(ws)
			return nil
		}

		c.advanceTurn(ws)
		c.maybeFinish(ws)
		return nil
	})
}

// advanceTurn moves play to the next active player and consumes any
// skip-next-turn flags along the way.
func (c *Controller) advanceTurn(ws *workingSet) {
	active := ws.activeCount()
	if active == 0 {
		return
	}

	ws.game.CurrentTurn++
	for i := 0; i < active; i++ {
		next := model.CurrentPlayer(ws.game, ws.players)
		if next == nil || !next.SkipNextTurn {
			break
		}
		next.SkipNextTurn = false
		c.appendLog(ws, &next.ID, model.LogTurnSkipped, next.DisplayName+" sits out this turn")
		ws.game.CurrentTurn++
	}
	ws.game.Phase = model.PhaseAwaitingRoll
}

// turnOverAfterElimination ends the turn of a player who was just
// eliminated. The monotonic counter is advanced until it points at the
// next surviving seat after theirs.
func (c *Controller) turnOverAfterElimination(ws *workingSet, eliminated *model.Player) error {
	c.maybeFinish(ws)
	if ws.game.Status == model.GameStatusFinished {
		return nil
	}

	target := nextActiveAfterSeat(ws.players, eliminated.Seat)
	if target == nil {
		return nil
	}
	active := ws.activeCount()
	for i := 0; i < active; i++ {
		if model.CurrentPlayer(ws.game, ws.players) == target {
			break
		}
		ws.game.CurrentTurn++
	}
	ws.game.Phase = model.PhaseAwaitingRoll
	return nil
}

// nextActiveAfterSeat returns the first active player after the given
// seat in seat order, wrapping around.
func nextActiveAfterSeat(players []*model.Player, seat int) *model.Player {
	active := model.ActivePlayers(players)
	if len(active) == 0 {
		return nil
	}
	for _, p := range active {
		if p.Seat > seat {
			return p
		}
	}
	return active[0]
}

// PayJailFine pays the fine voluntarily before rolling. The fine goes
// to the church fund and the player rolls normally this turn.
func (c *Controller) PayJailFine(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (*model.Snapshot, error) {
	return c.withGame(ctx, gameID, func(ws *workingSet) error {
		player, err := c.requireTurn(ws, playerID, model.PhaseAwaitingRoll)
		if err != nil {
			return err
		}
		if !player.InJail {
			return model.ErrNotInJail
		}

		survived, err := c.chargeToChurch(ws, player, board.JailFine, "jail fine", model.LogJailFine,
			fmt.Sprintf("%s pays the %d jail fine", player.DisplayName, board.JailFine))
		if err != nil {
			return err
		}
		if !survived {
			return c.turnOverAfterElimination(ws, player)
		}

		player.InJail = false
		player.JailTurns = 0
		c.appendLog(ws, &player.ID, model.LogJailReleased, player.DisplayName+" leaves jail")
		return nil
	})
}

// UseJailCard spends a held get-out-of-jail card before rolling
func (c *Controller) UseJailCard(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (*model.Snapshot, error) {
	return c.withGame(ctx, gameID, func(ws *workingSet) error {
		player, err := c.requireTurn(ws, playerID, model.PhaseAwaitingRoll)
		if err != nil {
			return err
		}
		if !player.InJail {
			return model.ErrNotInJail
		}
		if player.JailCards < 1 {
			return model.ErrNoJailCard
		}

		player.JailCards--
		player.InJail = false
		player.JailTurns = 0
		c.appendLog(ws, &player.ID, model.LogJailReleased,
			player.DisplayName+" uses a get-out-of-jail card")
		return nil
	})
}

// BuyTile purchases the unowned tile the current player is standing on.
// A purchase the balance cannot cover is refused outright, it never
// triggers liquidation.
func (c *Controller) BuyTile(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (*model.Snapshot, error) {
	return c.withGame(ctx, gameID, func(ws *workingSet) error {
		player, err := c.requireTurn(ws, playerID, model.PhaseAwaitingEndTurn)
		if err != nil {
			return err
		}

		tile := model.TileAt(ws.tiles, player.Position)
		if tile == nil {
			return model.ErrTileNotFound
		}
		if err := c.economy.BuyTile(ws.game, player, tile); err != nil {
			return err
		}

		c.appendLog(ws, &player.ID, model.LogTilePurchase,
			fmt.Sprintf("%s bought %s for %d", player.DisplayName, tile.Name, tile.Price))
		return nil
	})
}

// Build raises the building level on a property the current player owns
func (c *Controller) Build(ctx context.Context, gameID model.GameID, playerID model.PlayerID, tileIndex int) (*model.Snapshot, error) {
	return c.withGame(ctx, gameID, func(ws *workingSet) error {
		player, err := c.requireTurn(ws, playerID, model.PhaseAwaitingEndTurn)
		if err != nil {
			return err
		}

		tile := model.TileAt(ws.tiles, tileIndex)
		if tile == nil {
			return model.ErrTileNotFound
		}
		if err := c.economy.Build(ws.game, player, tile); err != nil {
			return err
		}

		c.appendLog(ws, &player.ID, model.LogBuilt,
			fmt.Sprintf("%s built on %s (level %d)", player.DisplayName, tile.Name, tile.Buildings))
		return nil
	})
}

// Snapshot returns a consistent read of the full game state
func (c *Controller) Snapshot(ctx context.Context, gameID model.GameID) (*model.Snapshot, error) {
	ws, err := c.load(ctx, gameID)
	if err != nil {
		return nil, err
	}
	tail, err := c.storage.GetLogTail(ctx, gameID, logTailLimit)
	if err != nil {
		return nil, err
	}
	return &model.Snapshot{
		Game:    ws.game,
		Players: ws.players,
		Tiles:   ws.tiles,
		LogTail: tail,
	}, nil
}

// LogTail returns the most recent log entries for a game, oldest first.
// A non-positive or oversized limit falls back to the default tail size.
func (c *Controller) LogTail(ctx context.Context, gameID model.GameID, limit int) ([]*model.GameLog, error) {
	if _, err := c.storage.GetGame(ctx, gameID); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > logTailLimit {
		limit = logTailLimit
	}
	return c.storage.GetLogTail(ctx, gameID, limit)
}

// movePlayer advances the player clockwise, paying the pass-start bonus
// on a wrap.
func (c *Controller) movePlayer(ws *workingSet, player *model.Player, steps int) {
	from := player.Position
	player.Position = (from + steps) % board.Size()
	if from+steps >= board.Size() {
		c.awardPassBonus(ws, player)
	}

	tile := model.TileAt(ws.tiles, player.Position)
	name := "?"
	if tile != nil {
		name = tile.Name
	}
	c.appendLog(ws, &player.ID, model.LogMoved,
		fmt.Sprintf("%s moved to %s", player.DisplayName, name))
}

func (c *Controller) awardPassBonus(ws *workingSet, player *model.Player) {
	// Income never fails
	_ = c.economy.Apply(ws.game, player, model.EconomyTransaction{
		PlayerID:  player.ID,
		Amount:    board.PassStartBonus,
		Reason:    "pass start bonus",
		Direction: model.DirectionIncome,
	})
	c.appendLog(ws, &player.ID, model.LogPassedStart,
		fmt.Sprintf("%s passed start and collects %d", player.DisplayName, board.PassStartBonus))
}

func (c *Controller) sendToJail(ws *workingSet, player *model.Player, description string) {
	player.Position = board.JailIndex
	player.InJail = true
	player.JailTurns = 0
	player.DoublesCount = 0
	c.appendLog(ws, &player.ID, model.LogJailed, description)
}

// chargeToChurch applies a mandatory levy, liquidating if needed.
// Reports whether the player survived.
func (c *Controller) chargeToChurch(ws *workingSet, player *model.Player, amount int, reason string, action model.LogAction, description string) (bool, error) {
	survived, raised, err := c.economy.ApplyOrLiquidate(ws.game, player, ws.tiles, model.EconomyTransaction{
		PlayerID:  player.ID,
		Amount:    amount,
		Reason:    reason,
		Direction: model.DirectionExpense,
		ToChurch:  true,
	}, nil)
	if err != nil {
		return false, err
	}
	for _, r := range raised {
		c.appendLog(ws, &player.ID, model.LogLiquidated, player.DisplayName+" "+r.Reason)
	}
	if !survived {
		c.appendLog(ws, &player.ID, model.LogEliminated,
			player.DisplayName+" went bankrupt and is out of the game")
		return false, nil
	}
	c.appendLog(ws, &player.ID, action, description)
	return true, nil
}

// maybeFinish evaluates the win condition and finishes the game when it
// is met.
func (c *Controller) maybeFinish(ws *workingSet) {
	result, won := c.win.Evaluate(ws.game, ws.players)
	if !won {
		return
	}

	ws.game.Status = model.GameStatusFinished
	ws.game.Phase = model.PhaseGameOver

	winner := ws.playerByID(result.Winner)
	name := string(result.Winner)
	if winner != nil {
		name = winner.DisplayName
	}
	c.appendLog(ws, &result.Winner, model.LogGameOver,
		fmt.Sprintf("%s wins (%s)", name, result.Reason))

	c.decks.Forget(ws.game.ID)
	c.logger.Info("game finished",
		slog.String("game_id", string(ws.game.ID)),
		slog.String("winner", string(result.Winner)),
		slog.String("reason", string(result.Reason)),
	)
}

func actionFor(tx model.EconomyTransaction) model.LogAction {
	switch {
	case tx.ToChurch && tx.Reason == "church donation":
		return model.LogDonation
	case tx.ToChurch:
		return model.LogTaxPaid
	default:
		return model.LogRentPaid
	}
}

// requireTurn validates that the game is active, in the given phase,
// and that the acting player holds the turn.
func (c *Controller) requireTurn(ws *workingSet, playerID model.PlayerID, phase model.TurnPhase) (*model.Player, error) {
	if ws.game.Status == model.GameStatusFinished {
		return nil, model.ErrGameFinished
	}
	if ws.game.Status != model.GameStatusActive {
		return nil, model.ErrInvalidPhase
	}
	if ws.game.Phase != phase {
		return nil, model.ErrInvalidPhase
	}

	current := model.CurrentPlayer(ws.game, ws.players)
	if current == nil || current.ID != playerID {
		return nil, model.ErrNotYourTurn
	}
	return current, nil
}

// withGame serializes the mutation under the per-game lock and commits
// it with a bounded CAS retry. Each attempt reloads the working set and
// returns any card draws to the deck, so a retried mutation runs
// against fresh state without leaking cards from the rotation.
func (c *Controller) withGame(ctx context.Context, gameID model.GameID, fn func(ws *workingSet) error) (*model.Snapshot, error) {
	lock := c.lockFor(gameID)
	lock.Lock()
	defer lock.Unlock()

	var lastErr error
	for attempt := 0; attempt < casRetries; attempt++ {
		ws, err := c.load(ctx, gameID)
		if err != nil {
			return nil, err
		}

		if err := fn(ws); err != nil {
			c.decks.DiscardDraws(gameID)
			return nil, err
		}

		if err := c.commit(ctx, ws); err != nil {
			c.decks.DiscardDraws(gameID)
			if errors.Is(err, model.ErrConflict) {
				lastErr = err
				c.logger.Warn("write conflict, retrying",
					slog.String("game_id", string(gameID)),
					slog.Int("attempt", attempt+1),
				)
				continue
			}
			return nil, err
		}
		c.decks.CommitDraws(gameID)

		if c.notifier != nil {
			c.notifier.GameChanged(gameID)
		}

		tail, err := c.storage.GetLogTail(ctx, gameID, logTailLimit)
		if err != nil {
			return nil, err
		}
		return &model.Snapshot{
			Game:    ws.game,
			Players: ws.players,
			Tiles:   ws.tiles,
			LogTail: tail,
		}, nil
	}
	return nil, lastErr
}

func (c *Controller) load(ctx context.Context, gameID model.GameID) (*workingSet, error) {
	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	players, err := c.storage.GetPlayersForGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	tiles, err := c.storage.GetTilesForGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	return &workingSet{game: game, players: players, tiles: tiles}, nil
}

// commit writes the game row first so cross-process losers fail on the
// CAS before any dependent row is touched.
func (c *Controller) commit(ctx context.Context, ws *workingSet) error {
	ws.game.UpdatedAt = c.clock.Now()
	if err := c.storage.UpdateGame(ctx, ws.game); err != nil {
		return err
	}
	for _, p := range ws.players {
		if err := c.storage.SavePlayer(ctx, p); err != nil {
			return err
		}
	}
	for _, t := range ws.tiles {
		if err := c.storage.SaveTile(ctx, t); err != nil {
			return err
		}
	}
	for _, entry := range ws.logs {
		if err := c.storage.AppendLog(ctx, entry); err != nil {
			return err
		}
	}
	return nil
}

func (c *Controller) appendLog(ws *workingSet, playerID *model.PlayerID, action model.LogAction, description string) {
	ws.logs = append(ws.logs, &model.GameLog{
		GameID:      ws.game.ID,
		PlayerID:    playerID,
		Action:      action,
		Description: description,
		Round:       ws.round(),
		CreatedAt:   c.clock.Now(),
	})
}

func (c *Controller) lockFor(gameID model.GameID) *sync.Mutex {
	c.mu.Lock()
	defer c.mu.Unlock()

	lock, ok := c.locks[gameID]
	if !ok {
		lock = &sync.Mutex{}
		c.locks[gameID] = lock
	}
	return lock
}
