package henhur

import (
	"fmt"

	"henhur-arena/card"
)

// DeckPolicy answers §6.3: which lap decks the auction refill may draw
// from, given the current highest lap among players. It is an externally
// supplied pure function, never hard-coded by the engine.
type DeckPolicy func(highestLap int) []card.DeckType

// DefaultDeckPolicy is the conservative default named in SPEC_FULL's
// resolution of §6.3: lap1 is always available, lap2 opens once some
// player has reached lap 2, lap3 once some player has reached lap 3.
func DefaultDeckPolicy(highestLap int) []card.DeckType {
	decks := []card.DeckType{card.DeckLap1}
	if highestLap >= 2 {
		decks = append(decks, card.DeckLap2)
	}
	if highestLap >= 3 {
		decks = append(decks, card.DeckLap3)
	}
	return decks
}

// Config is the engine's immutable-after-start configuration (§3.3).
type Config struct {
	TurnsPerRound int
	HandSize      int
	MaxTokens     int
	BurnSlots     int
	Track         Track

	// SelectedCards optionally filters which card ids seed the shared
	// auction deck and the starting decks (§6.2's HenHur selectedCards
	// option). A nil/empty slice means "use every card in CardsByDeck".
	SelectedCards []string

	TokenCategories  map[card.TokenType]card.TokenCategory
	TokenBonusValues map[card.TokenType]int

	// CardsByDeck is the card-table catalog, keyed by deck tag. The full
	// card/equipment data table is out of scope (spec §1); this holds
	// whatever illustrative set the caller supplies (see package
	// carddata for the bundled sample set).
	CardsByDeck map[card.DeckType][]card.Card

	DeckPolicy DeckPolicy

	Seed int64

	// RecordHistory toggles the supplemented turn-history log.
	RecordHistory bool
}

func (c Config) validate() error {
	if c.TurnsPerRound <= 0 {
		return fmt.Errorf("henhur: TurnsPerRound must be > 0")
	}
	if c.HandSize <= 0 {
		return fmt.Errorf("henhur: HandSize must be > 0")
	}
	if c.MaxTokens < 0 {
		return fmt.Errorf("henhur: MaxTokens must be >= 0")
	}
	if c.BurnSlots <= 0 {
		return fmt.Errorf("henhur: BurnSlots must be > 0")
	}
	if c.Track.SpacesPerLap <= 0 {
		return fmt.Errorf("henhur: Track.SpacesPerLap must be > 0")
	}
	if c.Track.LapsToWin <= 0 {
		return fmt.Errorf("henhur: Track.LapsToWin must be > 0")
	}
	if len(c.CardsByDeck[card.DeckLap1]) == 0 {
		return fmt.Errorf("henhur: CardsByDeck must include at least one lap1 card")
	}
	return nil
}

func (c Config) deckPolicy() DeckPolicy {
	if c.DeckPolicy != nil {
		return c.DeckPolicy
	}
	return DefaultDeckPolicy
}

func (c Config) priorityBonus(tokens []card.TokenType) int {
	return c.bonusFor(tokens, card.CategoryPriority)
}

func (c Config) raceBonus(tokens []card.TokenType) int {
	return c.bonusFor(tokens, card.CategoryRace)
}

func (c Config) auctionBonus(tokens []card.TokenType) int {
	return c.bonusFor(tokens, card.CategoryAuction)
}

func (c Config) bonusFor(tokens []card.TokenType, wanted card.TokenCategory) int {
	total := 0
	for _, t := range tokens {
		cat := c.TokenCategories[t]
		if cat == wanted || cat == card.CategoryWild {
			total += c.TokenBonusValues[t]
		}
	}
	return total
}
