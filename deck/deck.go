// Package deck implements the per-player draw/hand/discard/exhaust piles
// described in spec §4.B. It is deliberately ignorant of turn rules —
// hand refill and drafting are policy decisions made by package henhur.
package deck

import (
	"henhur-arena/card"
	"henhur-arena/dice"
)

// Deck is the triple of ordered card piles a player owns, plus the
// optional exhaust bucket consumed by certain effects.
type Deck struct {
	Draw    []card.Card
	Hand    []card.Card
	Discard []card.Card
	Exhaust []card.Card
}

// Clone returns a deep copy so callers never alias another player's piles.
func (d Deck) Clone() Deck {
	return Deck{
		Draw:    append([]card.Card(nil), d.Draw...),
		Hand:    append([]card.Card(nil), d.Hand...),
		Discard: append([]card.Card(nil), d.Discard...),
		Exhaust: append([]card.Card(nil), d.Exhaust...),
	}
}

// Draw removes up to n cards from the front of the draw pile. If the draw
// pile empties before n is met, the discard pile is shuffled into it and
// drawing continues. The returned slice may be shorter than n if both
// piles run out (§8.3 boundary behavior) — it never panics.
func Draw(d Deck, n int, r dice.Rand) (Deck, []card.Card) {
	drawn := make([]card.Card, 0, n)
	for len(drawn) < n {
		if len(d.Draw) == 0 {
			if len(d.Discard) == 0 {
				break
			}
			d.Draw = append(d.Draw, d.Discard...)
			d.Discard = nil
			dice.Shuffle(r, d.Draw)
		}
		drawn = append(drawn, d.Draw[0])
		d.Draw = d.Draw[1:]
	}
	return d, drawn
}

// DiscardCard appends a card to the discard pile.
func DiscardCard(d Deck, c card.Card) Deck {
	d.Discard = append(d.Discard, c)
	return d
}

// PrependToDraw places a card on top of the draw pile, used by the turn
// engine when a drafted auction card is added to a player's deck.
func PrependToDraw(d Deck, c card.Card) Deck {
	d.Draw = append([]card.Card{c}, d.Draw...)
	return d
}

// RemoveFromHand removes the first card in Hand matching instanceID and
// reports whether it was found.
func RemoveFromHand(d Deck, instanceID string) (Deck, card.Card, bool) {
	for i, c := range d.Hand {
		if c.InstanceID == instanceID {
			removed := c
			d.Hand = append(d.Hand[:i:i], d.Hand[i+1:]...)
			return d, removed, true
		}
	}
	return d, card.Card{}, false
}

// Count returns the total number of cards across the four deck piles
// (draw, hand, discard, exhaust). Burn slots, which the conservation
// invariant (§3.3 invariant 1) also covers, live on the player and are
// not counted here.
func (d Deck) Count() int {
	return len(d.Draw) + len(d.Hand) + len(d.Discard) + len(d.Exhaust)
}
