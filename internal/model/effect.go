package model

// TransactionDirection marks a balance delta as income or expense
type TransactionDirection string

const (
	DirectionIncome  TransactionDirection = "income"
	DirectionExpense TransactionDirection = "expense"
)

// EconomyTransaction is an ephemeral signed balance delta. It is
// produced by the resolver, consumed by the economy service within the
// same turn, and never persisted as its own row.
type EconomyTransaction struct {
	PlayerID  PlayerID
	Amount    int // Always positive; Direction carries the sign
	Reason    string
	Direction TransactionDirection

	// ToChurch routes an expense into the game's church fund
	ToChurch bool
}

// Signed returns the delta to apply to the player's balance
func (t EconomyTransaction) Signed() int {
	if t.Direction == DirectionExpense {
		return -t.Amount
	}
	return t.Amount
}

// EffectKind is the closed enumeration of resolver outputs
type EffectKind string

const (
	EffectTransaction  EffectKind = "transaction"
	EffectMove         EffectKind = "move"
	EffectGoToJail     EffectKind = "go_to_jail"
	EffectJailCard     EffectKind = "jail_card"
	EffectSkipNextTurn EffectKind = "skip_next_turn"
)

// Effect is one discrete outcome of resolving a landing. The resolver
// emits effects in order; the turn machine applies them and writes one
// log entry per effect.
type Effect struct {
	Kind EffectKind

	// Transaction is set when Kind is EffectTransaction
	Transaction *EconomyTransaction

	// MoveTo and AwardPassBonus are set when Kind is EffectMove
	MoveTo         int
	AwardPassBonus bool

	// Description is the human wording recorded in the game log
	Description string
}
