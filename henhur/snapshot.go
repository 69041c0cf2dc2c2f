package henhur

import "henhur-arena/card"

// PlayerPublic is what every viewer — including observers — sees about a
// seat: everything except the contents of that player's hand.
type PlayerPublic struct {
	ID        string
	Connected bool
	Space     int
	Lap       int
	Tokens    map[card.TokenType]int
	BurnSlots []*card.Card
	HandCount    int
	DrawCount    int
	DiscardCount int
	Ready        bool

	CardsPlayed   int
	CardsBurned   int
	DistanceMoved int
}

// PlayerPrivate augments PlayerPublic with the one seat's own hand — only
// ever sent to that seat's own viewer.
type PlayerPrivate struct {
	PlayerPublic
	Hand []card.Card
}

// View is the full per-viewer projection described in §4.D.7: public
// state for every seat, plus the viewer's own hand if they hold a seat.
// Observers (viewerID not a seat) get You == nil.
type View struct {
	Round    int
	Turn     int
	TurnType TurnType
	Phase    Phase
	Winner   string

	Track Track

	AuctionPool    []card.Card
	CurrentDrafter string
	AuctionOrder   []string

	Players []PlayerPublic
	You     *PlayerPrivate

	History []TurnRecord
}

// ProjectFor builds the projection a single viewer (player or observer)
// should receive. viewerID == "" or an id with no matching seat yields an
// observer's view.
func (e *Engine) ProjectFor(viewerID string) View {
	e.mu.Lock()
	defer e.mu.Unlock()

	v := View{
		Round:          e.round,
		Turn:           e.turn,
		TurnType:       e.turnType,
		Phase:          e.phase,
		Winner:         e.winner,
		Track:          e.cfg.Track,
		AuctionPool:    append([]card.Card(nil), e.auctionPool...),
		CurrentDrafter: e.currentDrafterLocked(),
		AuctionOrder:   append([]string(nil), e.draftQueue...),
	}
	if e.cfg.RecordHistory {
		v.History = append([]TurnRecord(nil), e.history...)
	}

	for _, p := range e.players {
		pub := publicOf(p)
		v.Players = append(v.Players, pub)
		if p.ID == viewerID {
			priv := PlayerPrivate{PlayerPublic: pub, Hand: append([]card.Card(nil), p.Deck.Hand...)}
			v.You = &priv
		}
	}
	return v
}

func (e *Engine) currentDrafterLocked() string {
	if len(e.draftQueue) == 0 {
		return NoDrafter
	}
	return e.draftQueue[0]
}

func publicOf(p *Player) PlayerPublic {
	tokens := make(map[card.TokenType]int, len(p.Tokens))
	for t, n := range p.Tokens {
		tokens[t] = n
	}
	return PlayerPublic{
		ID:            p.ID,
		Connected:     p.Connected,
		Space:         p.Space,
		Lap:           p.Lap,
		Tokens:        tokens,
		BurnSlots:     append([]*card.Card(nil), p.BurnSlots...),
		HandCount:     len(p.Deck.Hand),
		DrawCount:     len(p.Deck.Draw),
		DiscardCount:  len(p.Deck.Discard),
		Ready:         p.Ready,
		CardsPlayed:   p.CardsPlayed,
		CardsBurned:   p.CardsBurned,
		DistanceMoved: p.DistanceMoved,
	}
}
