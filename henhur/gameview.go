package henhur

import (
	"henhur-arena/card"
	"henhur-arena/deck"
	"henhur-arena/effects"
)

// The methods below make *Player satisfy effects.PlayerView and *Engine
// satisfy effects.GameView structurally — neither package imports the
// other's concrete types, only effects' own interfaces (see
// effects/effects.go).

func (p *Player) Position() (int, int) { return p.Space, p.Lap }

func (p *Player) SetPosition(space, lap int) {
	p.Space, p.Lap = space, lap
}

func (p *Player) AddDistanceMoved(delta int) { p.DistanceMoved += delta }

func (p *Player) TokenCount(t card.TokenType) int { return p.Tokens[t] }

func (p *Player) TotalTokens() int { return p.totalTokens() }

func (p *Player) SetTokenCount(t card.TokenType, n int) {
	if n < 0 {
		n = 0
	}
	p.Tokens[t] = n
}

func (p *Player) MaxTokens() int { return p.maxTokens }

func (p *Player) AddPriorityModifier(delta int) { p.PriorityModifier += delta }

func (p *Player) SetMatProperty(property string, op card.MatOperation, value int) {
	if op == card.MatAdd {
		p.MatProperties[property] += value
	} else {
		p.MatProperties[property] = value
	}
}

func (e *Engine) TrackLength() int { return e.cfg.Track.SpacesPerLap }

func (e *Engine) Player(id string) (effects.PlayerView, bool) {
	idx, ok := e.index[id]
	if !ok {
		return nil, false
	}
	return e.players[idx], true
}

func (e *Engine) Opponents(excludeID string) []string {
	var out []string
	for _, p := range e.players {
		if p.ID != excludeID {
			out = append(out, p.ID)
		}
	}
	return out
}

func (e *Engine) RandomOpponent(excludeID string) (string, bool) {
	opps := e.Opponents(excludeID)
	if len(opps) == 0 {
		return "", false
	}
	return opps[e.rng.Intn(len(opps))], true
}

// DrawCards is effects.GameView's draw_cards delegate (§4.C). The turn
// engine's own hand refill calls deck.Draw directly, not this method.
func (e *Engine) DrawCards(playerID string, n int) []card.Card {
	idx, ok := e.index[playerID]
	if !ok {
		return nil
	}
	p := e.players[idx]
	var drawn []card.Card
	p.Deck, drawn = deck.Draw(p.Deck, n, e.rng)
	p.Deck.Hand = append(p.Deck.Hand, drawn...)
	return drawn
}

// DiscardCards implements the discard_cards effect's delegate (see the
// documented interpretation in effects/executor.go): it removes up to n
// cards from the front of hand into the discard pile automatically.
func (e *Engine) DiscardCards(playerID string, n int) []card.Card {
	idx, ok := e.index[playerID]
	if !ok {
		return nil
	}
	p := e.players[idx]
	if n > len(p.Deck.Hand) {
		n = len(p.Deck.Hand)
	}
	discarded := append([]card.Card(nil), p.Deck.Hand[:n]...)
	p.Deck.Hand = p.Deck.Hand[n:]
	for _, c := range discarded {
		p.Deck = deck.DiscardCard(p.Deck, c)
	}
	return discarded
}
