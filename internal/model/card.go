package model

// CardID uniquely identifies a card within its deck
type CardID string

// DeckKind names the two card decks
type DeckKind string

const (
	DeckCommunity DeckKind = "community"
	DeckChance    DeckKind = "chance"
)

// CardAction is the closed enumeration of card effects. The resolver
// switches over every value; an unhandled action is a hard error, never
// a silent no-op.
type CardAction string

const (
	CardAddMoney         CardAction = "add_money"
	CardLoseMoney        CardAction = "lose_money"
	CardGoToTile         CardAction = "go_to_tile"
	CardGoToTileBonus    CardAction = "go_to_tile_and_pass_bonus"
	CardGoToNearestPort  CardAction = "go_to_nearest_port"
	CardGoToJail         CardAction = "go_to_jail"
	CardGetOutOfJailFree CardAction = "get_out_of_jail_card"
	CardPayPerBuilding   CardAction = "pay_per_building"
)

// Card is immutable reference data: decks are fixed at game creation
// and cards are never mutated by play.
type Card struct {
	ID   CardID
	Deck DeckKind

	// Text holds the card wording keyed by language code
	Text map[string]string

	Action CardAction

	// Value is the amount for money actions, the board index for
	// go_to_tile actions, and the per-building unit cost for
	// pay_per_building. Unused otherwise.
	Value int
}

// TextIn returns the card text for the given language, falling back to
// English when the language is missing.
func (c *Card) TextIn(lang string) string {
	if s, ok := c.Text[lang]; ok {
		return s
	}
	return c.Text["en"]
}
