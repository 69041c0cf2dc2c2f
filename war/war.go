// Package war implements the classic two-player highest-card-wins game,
// with war-on-tie, as a minimal second gameplay.Game variant: the
// simplest possible "complete" hosted game, exercising the same
// actor-style single-threaded engine shape as package henhur without any
// of its resolution complexity.
package war

import (
	"fmt"
	"math/rand"
	"sync"

	"henhur-arena/dice"
	"henhur-arena/gameplay"
)

type phase byte

const (
	phaseWaiting phase = iota
	phaseBattle
	phaseGameOver
)

// Game is a two-player War match.
type Game struct {
	mu sync.Mutex

	players  [2]string
	hands    map[string][]int // rank values, index 0 is the top of the pile
	ready    map[string]bool
	pile     []int // face-up cards accumulated during a war chain
	warDepth int

	phase  phase
	winner string

	rng dice.Rand

	onStateChanged func()
}

// New constructs a two-player War game. It satisfies gameplay.Constructor.
func New(playerIDs []string, _ map[string]any) (gameplay.Game, error) {
	if len(playerIDs) != 2 {
		return nil, fmt.Errorf("war: requires exactly 2 players, got %d", len(playerIDs))
	}
	g := &Game{
		hands: make(map[string][]int, 2),
		ready: make(map[string]bool, 2),
		rng:   rand.New(rand.NewSource(0)),
	}
	g.players[0], g.players[1] = playerIDs[0], playerIDs[1]
	return g, nil
}

// SetRand overrides the shuffle source (for deterministic tests).
func (g *Game) SetRand(r dice.Rand) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rng = r
}

// SetOnStateChanged wires the lobby's broadcast hook, mirroring henhur's
// constructor-supplied callback.
func (g *Game) SetOnStateChanged(fn func()) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.onStateChanged = fn
}

func (g *Game) notify() {
	if g.onStateChanged != nil {
		g.onStateChanged()
	}
}

// Start shuffles a standard 52-card deck (ranks 2-14, four of each) and
// deals it evenly between the two players.
func (g *Game) Start() {
	g.mu.Lock()
	if g.phase != phaseWaiting {
		g.mu.Unlock()
		return
	}
	deck := make([]int, 0, 52)
	for rank := 2; rank <= 14; rank++ {
		for suit := 0; suit < 4; suit++ {
			deck = append(deck, rank)
		}
	}
	dice.Shuffle(g.rng, deck)

	half := len(deck) / 2
	g.hands[g.players[0]] = append([]int(nil), deck[:half]...)
	g.hands[g.players[1]] = append([]int(nil), deck[half:]...)
	g.phase = phaseBattle
	g.mu.Unlock()
	g.notify()
}

// ApplyAction accepts the single "flip" verb; once both players have
// flipped for the current battle, it resolves immediately.
func (g *Game) ApplyAction(playerID string, action gameplay.Action) gameplay.Result {
	g.mu.Lock()
	res, changed := g.applyLocked(playerID, action)
	g.mu.Unlock()
	if changed {
		g.notify()
	}
	return res
}

func (g *Game) applyLocked(playerID string, action gameplay.Action) (gameplay.Result, bool) {
	if g.phase == phaseGameOver {
		return gameplay.Result{Success: false, Message: "game is over"}, false
	}
	if g.phase != phaseBattle {
		return gameplay.Result{Success: false, Message: "not accepting actions right now"}, false
	}
	if action.Type != "flip" {
		return gameplay.Result{Success: false, Message: "unknown action type: " + action.Type}, false
	}
	if !g.isPlayer(playerID) {
		return gameplay.Result{Success: false, Message: "unknown player"}, false
	}
	g.ready[playerID] = true
	if !g.ready[g.players[0]] || !g.ready[g.players[1]] {
		return gameplay.Result{Success: true}, true
	}

	g.resolveBattleLocked()
	return gameplay.Result{Success: true}, true
}

func (g *Game) isPlayer(id string) bool {
	return id == g.players[0] || id == g.players[1]
}

// resolveBattleLocked compares each player's top card, awarding the pile
// to the higher card. A tie starts (or extends) a war: both players ante
// three cards face down and one face up, compared again. A player who
// runs out of cards mid-war loses immediately with whatever they had.
func (g *Game) resolveBattleLocked() {
	g.ready[g.players[0]] = false
	g.ready[g.players[1]] = false

	a, b := g.players[0], g.players[1]
	for {
		if len(g.hands[a]) == 0 {
			g.endGameLocked(b)
			return
		}
		if len(g.hands[b]) == 0 {
			g.endGameLocked(a)
			return
		}

		cardA := g.hands[a][0]
		cardB := g.hands[b][0]
		g.hands[a] = g.hands[a][1:]
		g.hands[b] = g.hands[b][1:]
		g.pile = append(g.pile, cardA, cardB)

		switch {
		case cardA > cardB:
			g.awardPileLocked(a)
			return
		case cardB > cardA:
			g.awardPileLocked(b)
			return
		default:
			g.warDepth++
			if !g.anteWarLocked(a) {
				g.endGameLocked(b)
				return
			}
			if !g.anteWarLocked(b) {
				g.endGameLocked(a)
				return
			}
		}
	}
}

// anteWarLocked moves 3 face-down cards into the pile for one player,
// reporting false if they run out before that or have no card left to
// turn face up (the face-up card itself is drawn by the caller's loop).
func (g *Game) anteWarLocked(playerID string) bool {
	for i := 0; i < 3; i++ {
		if len(g.hands[playerID]) == 0 {
			return false
		}
		g.pile = append(g.pile, g.hands[playerID][0])
		g.hands[playerID] = g.hands[playerID][1:]
	}
	return len(g.hands[playerID]) > 0
}

func (g *Game) awardPileLocked(winner string) {
	dice.Shuffle(g.rng, g.pile)
	g.hands[winner] = append(g.hands[winner], g.pile...)
	g.pile = nil
	g.warDepth = 0
}

func (g *Game) endGameLocked(winner string) {
	g.winner = winner
	g.phase = phaseGameOver
}

// View is War's per-viewer projection: both players' card counts are
// public (nothing is hidden in War), so there is no viewer-specific data.
type View struct {
	Phase      string
	Winner     string
	HandCounts map[string]int
	WarDepth   int
	Ready      map[string]bool
}

func (g *Game) ProjectFor(viewerID string) any {
	g.mu.Lock()
	defer g.mu.Unlock()

	counts := map[string]int{
		g.players[0]: len(g.hands[g.players[0]]),
		g.players[1]: len(g.hands[g.players[1]]),
	}
	ready := map[string]bool{
		g.players[0]: g.ready[g.players[0]],
		g.players[1]: g.ready[g.players[1]],
	}
	return View{
		Phase:      g.phaseName(),
		Winner:     g.winner,
		HandCounts: counts,
		WarDepth:   g.warDepth,
		Ready:      ready,
	}
}

func (g *Game) phaseName() string {
	switch g.phase {
	case phaseWaiting:
		return "waiting"
	case phaseBattle:
		return "battle"
	case phaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

func (g *Game) PendingBots() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.phase != phaseBattle {
		return nil
	}
	var out []string
	for _, id := range g.players {
		if !g.ready[id] {
			out = append(out, id)
		}
	}
	return out
}

func (g *Game) OnPlayerReconnect(oldID, newID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if newID == oldID {
		return
	}
	for i, id := range g.players {
		if id == oldID {
			g.players[i] = newID
			g.hands[newID] = g.hands[oldID]
			g.ready[newID] = g.ready[oldID]
			delete(g.hands, oldID)
			delete(g.ready, oldID)
			return
		}
	}
}

func (g *Game) SetConnected(playerID string, connected bool) {
	// War has no per-seat connection-sensitive logic beyond what the
	// lobby itself tracks; this satisfies gameplay.Game as a no-op.
}
