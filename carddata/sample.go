// Package carddata bundles a small illustrative HenHur card table. The
// full equipment/card data set is out of scope (spec §1 Non-goals); this
// covers every deck tier and five of the seven effect types (no card
// carries move_player_position or discard_cards), and serves as a
// runnable default for package lobby.
package carddata

import "henhur-arena/card"

const (
	TokenPriorityPlus card.TokenType = "P+"
	TokenRacePlus     card.TokenType = "R+"
	TokenAuctionPlus  card.TokenType = "A+"
	TokenWildPlus     card.TokenType = "W+"
)

// Categories maps the sample token set onto the bonus-partition groups
// used by henhur.Config.TokenCategories.
var Categories = map[card.TokenType]card.TokenCategory{
	TokenPriorityPlus: card.CategoryPriority,
	TokenRacePlus:     card.CategoryRace,
	TokenAuctionPlus:  card.CategoryAuction,
	TokenWildPlus:     card.CategoryWild,
}

// BonusValues gives every sample token a flat +1 contribution.
var BonusValues = map[card.TokenType]int{
	TokenPriorityPlus: 1,
	TokenRacePlus:     1,
	TokenAuctionPlus:  1,
	TokenWildPlus:     1,
}

// Catalog is the full sample deck, keyed by deck tier.
func Catalog() map[card.DeckType][]card.Card {
	return map[card.DeckType][]card.Card{
		card.DeckBase: {
			{
				ID: "base-sprint", Title: "Sprint", DeckType: card.DeckBase,
				TrickNumber: 1, RaceNumber: 3,
				Priority: card.Priority{Base: 1},
				Text:     "Move 3 spaces.",
			},
			{
				ID: "base-hold", Title: "Hold Position", DeckType: card.DeckBase,
				TrickNumber: 2, RaceNumber: 1,
				Priority: card.Priority{Base: 0, Dice: "d4"},
				Text:     "Move 1 space. Gain 1 priority token.",
				Effect: []card.Effect{
					{Type: card.EffectAffectTokenPool, TokenAction: card.TokenGain, TokenType: TokenPriorityPlus, Count: 1},
				},
			},
		},
		card.DeckLap1: {
			{
				ID: "lap1-jockey", Title: "Jockey's Whip", DeckType: card.DeckLap1,
				TrickNumber: 2, RaceNumber: 4,
				Priority: card.Priority{Base: 1, Dice: "d6"},
				Text:     "Move 4 spaces.",
			},
			{
				ID: "lap1-spook", Title: "Spook the Field", DeckType: card.DeckLap1,
				TrickNumber: 3, RaceNumber: 2,
				Priority: card.Priority{Base: 2},
				Text:     "Move 2 spaces. Move a chosen opponent back 2.",
				Effect: []card.Effect{
					{Type: card.EffectMoveOpponentPosition, Distance: -2, TargetSelection: card.TargetChoose},
				},
				BurnEffect: []card.Effect{
					{Type: card.EffectMoveOpponentPosition, Distance: -3, TargetSelection: card.TargetAll},
				},
			},
			{
				ID: "lap1-toll", Title: "Toll Gate", DeckType: card.DeckLap1,
				TrickNumber: 4, RaceNumber: 1,
				Priority: card.Priority{Base: 0, Dice: "d6"},
				Text:     "Move 1 space. Draw 1 card.",
				Effect: []card.Effect{
					{Type: card.EffectDrawCards, Count: 1},
				},
			},
		},
		card.DeckLap2: {
			{
				ID: "lap2-surge", Title: "Second Wind Surge", DeckType: card.DeckLap2,
				TrickNumber: 5, RaceNumber: 5,
				Priority: card.Priority{Base: 2, Dice: "d4"},
				Text:     "Move 5 spaces. Gain 1 race token.",
				Effect: []card.Effect{
					{Type: card.EffectAffectTokenPool, TokenAction: card.TokenGain, TokenType: TokenRacePlus, Count: 1},
				},
				BurnEffect: []card.Effect{
					{Type: card.EffectModifyPriority, Adjustment: 2},
				},
			},
		},
		card.DeckLap3: {
			{
				ID: "lap3-victory-lap", Title: "Victory Lap", DeckType: card.DeckLap3,
				TrickNumber: 6, RaceNumber: 6,
				Priority: card.Priority{Base: 3},
				Text:     "Move 6 spaces. Set pace mat property to 1.",
				Effect: []card.Effect{
					{Type: card.EffectAffectPlayerMat, Property: "pace", Operation: card.MatSet, Value: 1},
				},
			},
		},
	}
}
