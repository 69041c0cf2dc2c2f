package war

import (
	"math/rand"
	"testing"

	"henhur-arena/gameplay"
)

func newTestGame(t *testing.T) *Game {
	t.Helper()
	g0, err := New([]string{"alice", "bob"}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	g := g0.(*Game)
	g.SetRand(rand.New(rand.NewSource(7)))
	return g
}

func TestNewRejectsWrongPlayerCount(t *testing.T) {
	if _, err := New([]string{"alice"}, nil); err == nil {
		t.Fatalf("expected error for 1 player")
	}
	if _, err := New([]string{"alice", "bob", "carol"}, nil); err == nil {
		t.Fatalf("expected error for 3 players")
	}
}

func TestStartDealsEvenHands(t *testing.T) {
	g := newTestGame(t)
	g.Start()
	if len(g.hands["alice"]) != 26 || len(g.hands["bob"]) != 26 {
		t.Fatalf("expected 26/26 split, got %d/%d", len(g.hands["alice"]), len(g.hands["bob"]))
	}
}

func TestFlipWaitsForBothPlayers(t *testing.T) {
	g := newTestGame(t)
	g.Start()
	res := g.ApplyAction("alice", gameplay.Action{Type: "flip"})
	if !res.Success {
		t.Fatalf("expected success, got %s", res.Message)
	}
	if g.phase != phaseBattle {
		t.Fatalf("expected still in battle waiting on bob")
	}
}

func TestHigherCardWinsThePile(t *testing.T) {
	g := newTestGame(t)
	g.hands["alice"] = []int{10, 2}
	g.hands["bob"] = []int{5, 9}
	g.phase = phaseBattle

	g.ApplyAction("alice", gameplay.Action{Type: "flip"})
	g.ApplyAction("bob", gameplay.Action{Type: "flip"})

	if len(g.hands["alice"]) != 3 {
		t.Fatalf("expected alice to have taken the pile (3 cards), got %d", len(g.hands["alice"]))
	}
	if len(g.hands["bob"]) != 1 {
		t.Fatalf("expected bob left with 1 card, got %d", len(g.hands["bob"]))
	}
}

func TestTieTriggersWarAndLoserWithInsufficientCardsLoses(t *testing.T) {
	g := newTestGame(t)
	g.hands["alice"] = []int{10, 9, 8, 7, 6}
	g.hands["bob"] = []int{10, 1} // ties, then can't ante 3 cards for war
	g.phase = phaseBattle

	g.ApplyAction("alice", gameplay.Action{Type: "flip"})
	g.ApplyAction("bob", gameplay.Action{Type: "flip"})

	if g.phase != phaseGameOver {
		t.Fatalf("expected game over once bob can't ante for war, got phase=%v", g.phase)
	}
	if g.winner != "alice" {
		t.Fatalf("expected alice to win, got %s", g.winner)
	}
}

func TestPendingBotsDuringBattle(t *testing.T) {
	g := newTestGame(t)
	g.Start()
	g.ApplyAction("alice", gameplay.Action{Type: "flip"})

	pending := g.PendingBots()
	if len(pending) != 1 || pending[0] != "bob" {
		t.Fatalf("expected only bob pending, got %v", pending)
	}
}
