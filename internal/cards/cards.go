// Package cards holds the default community and chance decks.
// Cards are immutable reference data; per-game draw state lives in the
// deck service.
package cards

import "github.com/pkalnins/tycoon-go/internal/model"

// Community returns the default community chest deck
func Community() []*model.Card {
	return []*model.Card{
		{
			ID: "cc-01", Deck: model.DeckCommunity,
			Text:   map[string]string{"en": "Bank error in your favour. Collect 75.", "lv": "Bankas kļūda tev par labu. Saņem 75."},
			Action: model.CardAddMoney, Value: 75,
		},
		{
			ID: "cc-02", Deck: model.DeckCommunity,
			Text:   map[string]string{"en": "Doctor's fee. Pay 50.", "lv": "Ārsta rēķins. Maksā 50."},
			Action: model.CardLoseMoney, Value: 50,
		},
		{
			ID: "cc-03", Deck: model.DeckCommunity,
			Text:   map[string]string{"en": "Advance to Start.", "lv": "Dodies uz Startu."},
			Action: model.CardGoToTileBonus, Value: 0,
		},
		{
			ID: "cc-04", Deck: model.DeckCommunity,
			Text:   map[string]string{"en": "Get out of jail free. Keep this card.", "lv": "Tiec ārā no cietuma bez maksas. Paturi šo kārti."},
			Action: model.CardGetOutOfJailFree,
		},
		{
			ID: "cc-05", Deck: model.DeckCommunity,
			Text:   map[string]string{"en": "Street repairs. Pay 40 per building you own.", "lv": "Ielu remonts. Maksā 40 par katru ēku."},
			Action: model.CardPayPerBuilding, Value: 40,
		},
		{
			ID: "cc-06", Deck: model.DeckCommunity,
			Text:   map[string]string{"en": "Inheritance. Collect 100.", "lv": "Mantojums. Saņem 100."},
			Action: model.CardAddMoney, Value: 100,
		},
		{
			ID: "cc-07", Deck: model.DeckCommunity,
			Text:   map[string]string{"en": "Go directly to jail.", "lv": "Dodies tieši uz cietumu."},
			Action: model.CardGoToJail,
		},
	}
}

// Chance returns the default chance deck
func Chance() []*model.Card {
	return []*model.Card{
		{
			ID: "ch-01", Deck: model.DeckChance,
			Text:   map[string]string{"en": "Advance to the nearest harbour.", "lv": "Dodies uz tuvāko ostu."},
			Action: model.CardGoToNearestPort,
		},
		{
			ID: "ch-02", Deck: model.DeckChance,
			Text:   map[string]string{"en": "Speeding fine. Pay 30.", "lv": "Sods par ātruma pārkāpšanu. Maksā 30."},
			Action: model.CardLoseMoney, Value: 30,
		},
		{
			ID: "ch-03", Deck: model.DeckChance,
			Text:   map[string]string{"en": "Take a trip to Old Town Gate.", "lv": "Dodies uz Vecpilsētas vārtiem."},
			Action: model.CardGoToTile, Value: 11,
		},
		{
			ID: "ch-04", Deck: model.DeckChance,
			Text:   map[string]string{"en": "Advance to Castle Hill. Collect the bonus if you pass Start.", "lv": "Dodies uz Pils kalnu. Saņem prēmiju, ja šķērso Startu."},
			Action: model.CardGoToTileBonus, Value: 23,
		},
		{
			ID: "ch-05", Deck: model.DeckChance,
			Text:   map[string]string{"en": "Dividend payout. Collect 60.", "lv": "Dividendes. Saņem 60."},
			Action: model.CardAddMoney, Value: 60,
		},
		{
			ID: "ch-06", Deck: model.DeckChance,
			Text:   map[string]string{"en": "Go directly to jail.", "lv": "Dodies tieši uz cietumu."},
			Action: model.CardGoToJail,
		},
		{
			ID: "ch-07", Deck: model.DeckChance,
			Text:   map[string]string{"en": "Building inspection. Pay 25 per building you own.", "lv": "Ēku inspekcija. Maksā 25 par katru ēku."},
			Action: model.CardPayPerBuilding, Value: 25,
		},
		{
			ID: "ch-08", Deck: model.DeckChance,
			Text:   map[string]string{"en": "Get out of jail free. Keep this card.", "lv": "Tiec ārā no cietuma bez maksas. Paturi šo kārti."},
			Action: model.CardGetOutOfJailFree,
		},
	}
}

// Deck returns the default deck of the given kind
func Deck(kind model.DeckKind) []*model.Card {
	if kind == model.DeckChance {
		return Chance()
	}
	return Community()
}
