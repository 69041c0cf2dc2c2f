package bots

import (
	"math/rand"

	"henhur-arena/card"
	"henhur-arena/gameplay"
	"henhur-arena/henhur"
)

// HenhurHandler is the rule-based HenHur brain, remapped from the
// teacher's poker RuleBrain. The card to commit is chosen greedily
// (bestRaceCard / bestAuctionCard / bestDraftPick); the persona's
// burn-eagerness decides whether an auction bid is burned. TokenHoarding
// and BidAggression are not read, and no tokens are ever spent.
type HenhurHandler struct{}

// ActionDelayMs mixes a per-style base delay, a per-batch stagger, and
// uniform random jitter scaled by the persona's randomness: steadier
// personas (lower randomness) think for a more consistent beat, and later
// bots in the same batch wait a bit longer so simultaneous turns don't
// all resolve at once.
func (HenhurHandler) ActionDelayMs(p *Persona, indexInBatch int) int {
	const styleBase = 600
	const stagger = 250
	return styleBase + indexInBatch*stagger + int(rand.Float64()*p.Brain.Randomness*900)
}

func (HenhurHandler) Decide(persona *Persona, playerID string, viewAny any) gameplay.Action {
	view, ok := viewAny.(henhur.View)
	if !ok || view.You == nil || len(view.You.Hand) == 0 {
		return gameplay.Action{Type: "noop"}
	}

	switch view.Phase {
	case henhur.PhaseRaceSelection:
		c := bestRaceCard(view.You.Hand)
		return raceOrBidAction("race_selection", persona, c)
	case henhur.PhaseAuctionSelection:
		c := bestAuctionCard(view.You.Hand)
		return raceOrBidAction("auction_bid", persona, c)
	case henhur.PhaseAuctionDrafting:
		if view.CurrentDrafter != playerID || len(view.AuctionPool) == 0 {
			return gameplay.Action{Type: "noop"}
		}
		c := bestDraftPick(view.AuctionPool)
		return gameplay.Action{Type: "draft", Payload: map[string]any{"cardInstanceId": c.InstanceID}}
	default:
		return gameplay.Action{Type: "noop"}
	}
}

func raceOrBidAction(actionType string, persona *Persona, c card.Card) gameplay.Action {
	willBurn := actionType == "auction_bid" && c.CanBurnInAuction() && persona.Brain.BurnEagerness > 0.5
	return gameplay.Action{
		Type: actionType,
		Payload: map[string]any{
			"cardInstanceId": c.InstanceID,
			"willBurn":       willBurn,
			"tokensUsed":     []string{},
		},
	}
}

// bestRaceCard picks the hand card with the greatest race distance —
// a simple greedy heuristic, not the teacher's probabilistic strength
// estimate, since HenHur cards are public information once drawn.
func bestRaceCard(hand []card.Card) card.Card {
	best := hand[0]
	for _, c := range hand[1:] {
		if c.RaceNumber > best.RaceNumber {
			best = c
		}
	}
	return best
}

func bestAuctionCard(hand []card.Card) card.Card {
	best := hand[0]
	for _, c := range hand[1:] {
		if c.TrickNumber > best.TrickNumber {
			best = c
		}
	}
	return best
}

func bestDraftPick(pool []card.Card) card.Card {
	best := pool[0]
	for _, c := range pool[1:] {
		if c.RaceNumber+c.TrickNumber > best.RaceNumber+best.TrickNumber {
			best = c
		}
	}
	return best
}
