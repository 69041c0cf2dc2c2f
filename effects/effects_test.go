package effects

import (
	"testing"

	"henhur-arena/card"
)

type fakePlayer struct {
	space, lap   int
	moved        int
	tokens       map[card.TokenType]int
	maxTokens    int
	priorityMod  int
	matProps     map[string]int
}

func newFakePlayer() *fakePlayer {
	return &fakePlayer{lap: 1, tokens: map[card.TokenType]int{}, maxTokens: 3, matProps: map[string]int{}}
}

func (p *fakePlayer) Position() (int, int)     { return p.space, p.lap }
func (p *fakePlayer) SetPosition(s, l int)     { p.space, p.lap = s, l }
func (p *fakePlayer) AddDistanceMoved(d int)   { p.moved += d }
func (p *fakePlayer) TokenCount(t card.TokenType) int { return p.tokens[t] }
func (p *fakePlayer) TotalTokens() int {
	sum := 0
	for _, v := range p.tokens {
		sum += v
	}
	return sum
}
func (p *fakePlayer) SetTokenCount(t card.TokenType, n int) { p.tokens[t] = n }
func (p *fakePlayer) MaxTokens() int                        { return p.maxTokens }
func (p *fakePlayer) AddPriorityModifier(d int)              { p.priorityMod += d }
func (p *fakePlayer) SetMatProperty(prop string, op card.MatOperation, v int) {
	if op == card.MatAdd {
		p.matProps[prop] += v
	} else {
		p.matProps[prop] = v
	}
}

type fakeGame struct {
	trackLen int
	players  map[string]*fakePlayer
	drawn    map[string]int
	discarded map[string]int
}

func newFakeGame(trackLen int) *fakeGame {
	return &fakeGame{trackLen: trackLen, players: map[string]*fakePlayer{}, drawn: map[string]int{}, discarded: map[string]int{}}
}

func (g *fakeGame) TrackLength() int { return g.trackLen }
func (g *fakeGame) Player(id string) (PlayerView, bool) {
	p, ok := g.players[id]
	return p, ok
}
func (g *fakeGame) Opponents(exclude string) []string {
	var out []string
	for id := range g.players {
		if id != exclude {
			out = append(out, id)
		}
	}
	return out
}
func (g *fakeGame) RandomOpponent(exclude string) (string, bool) {
	for _, id := range g.Opponents(exclude) {
		return id, true
	}
	return "", false
}
func (g *fakeGame) DrawCards(playerID string, n int) []card.Card {
	g.drawn[playerID] += n
	out := make([]card.Card, n)
	return out
}
func (g *fakeGame) DiscardCards(playerID string, n int) []card.Card {
	g.discarded[playerID] += n
	out := make([]card.Card, n)
	return out
}

func TestMovePlayerPositionWraps(t *testing.T) {
	game := newFakeGame(10)
	p := newFakePlayer()
	p.space, p.lap = 8, 1
	game.players["p1"] = p
	ctx := &Context{PlayerID: "p1", Player: p, Game: game}

	Execute([]card.Effect{{Type: card.EffectMovePlayerPosition, Distance: 5}}, ctx)
	if p.space != 3 || p.lap != 2 {
		t.Fatalf("expected space=3 lap=2, got space=%d lap=%d", p.space, p.lap)
	}
	if p.moved != 5 {
		t.Fatalf("expected distanceMoved=5, got %d", p.moved)
	}
}

func TestMovePlayerPositionFloorsAtLap1(t *testing.T) {
	game := newFakeGame(10)
	p := newFakePlayer()
	p.space, p.lap = 2, 1
	game.players["p1"] = p
	ctx := &Context{PlayerID: "p1", Player: p, Game: game}

	Execute([]card.Effect{{Type: card.EffectMovePlayerPosition, Distance: -5}}, ctx)
	if p.space != 0 || p.lap != 1 {
		t.Fatalf("expected floor at space=0 lap=1, got space=%d lap=%d", p.space, p.lap)
	}
}

func TestMoveOpponentChooseRequiresInput(t *testing.T) {
	game := newFakeGame(10)
	p1, p2 := newFakePlayer(), newFakePlayer()
	game.players["p1"], game.players["p2"] = p1, p2
	ctx := &Context{PlayerID: "p1", Player: p1, Game: game}

	out := Execute([]card.Effect{{Type: card.EffectMoveOpponentPosition, Distance: 3, TargetSelection: card.TargetChoose}}, ctx)
	if out.RequiresInput == nil || out.RequiresInput.Kind != "choose_opponent" {
		t.Fatalf("expected RequiresInput choose_opponent, got %+v", out.RequiresInput)
	}
	if p2.space != 0 {
		t.Fatalf("opponent should not have moved yet")
	}
}

func TestMoveOpponentWithTargetAppliesFloor(t *testing.T) {
	game := newFakeGame(10)
	p1, p2 := newFakePlayer(), newFakePlayer()
	p2.space = 2
	game.players["p1"], game.players["p2"] = p1, p2
	ctx := &Context{PlayerID: "p1", Player: p1, Game: game, TargetPlayerID: "p2"}

	Execute([]card.Effect{{Type: card.EffectMoveOpponentPosition, Distance: -5, TargetSelection: card.TargetChoose}}, ctx)
	if p2.space != 0 {
		t.Fatalf("expected opponent floored at 0, got %d", p2.space)
	}
}

func TestAffectTokenPoolGainClippedAtCap(t *testing.T) {
	game := newFakeGame(10)
	p := newFakePlayer()
	p.maxTokens = 3
	p.tokens["R+"] = 2
	p.tokens["A+"] = 1
	game.players["p1"] = p
	ctx := &Context{PlayerID: "p1", Player: p, Game: game}

	Execute([]card.Effect{{Type: card.EffectAffectTokenPool, TokenAction: card.TokenGain, TokenType: "P+", Count: 3}}, ctx)
	if p.tokens["P+"] != 0 {
		t.Fatalf("expected gain clipped to 0 (no room), got %d", p.tokens["P+"])
	}
}

func TestAffectTokenPoolSpendFloorsAtZero(t *testing.T) {
	game := newFakeGame(10)
	p := newFakePlayer()
	p.tokens["R+"] = 1
	game.players["p1"] = p
	ctx := &Context{PlayerID: "p1", Player: p, Game: game}

	Execute([]card.Effect{{Type: card.EffectAffectTokenPool, TokenAction: card.TokenSpend, TokenType: "R+", Count: 5}}, ctx)
	if p.tokens["R+"] != 0 {
		t.Fatalf("expected floor at 0, got %d", p.tokens["R+"])
	}
}

func TestDrawCardsDelegatesToGame(t *testing.T) {
	game := newFakeGame(10)
	p := newFakePlayer()
	game.players["p1"] = p
	ctx := &Context{PlayerID: "p1", Player: p, Game: game}

	Execute([]card.Effect{{Type: card.EffectDrawCards, Count: 2}}, ctx)
	if game.drawn["p1"] != 2 {
		t.Fatalf("expected 2 cards drawn via game, got %d", game.drawn["p1"])
	}
}

func TestUnknownEffectTypeReportsFailureAndContinues(t *testing.T) {
	game := newFakeGame(10)
	p := newFakePlayer()
	game.players["p1"] = p
	ctx := &Context{PlayerID: "p1", Player: p, Game: game}

	out := Execute([]card.Effect{
		{Type: "not_a_real_effect"},
		{Type: card.EffectModifyPriority, Adjustment: 2},
	}, ctx)
	if len(out.Results) != 2 {
		t.Fatalf("expected both effects attempted, got %d results", len(out.Results))
	}
	if out.Results[0].Success {
		t.Fatalf("expected first result to fail")
	}
	if p.priorityMod != 2 {
		t.Fatalf("expected second effect to still execute, priorityMod=%d", p.priorityMod)
	}
}
