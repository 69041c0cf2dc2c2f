package henhur

import (
	"math/rand"
	"testing"

	"henhur-arena/card"
	"henhur-arena/carddata"
)

func testConfig() Config {
	return Config{
		TurnsPerRound:    4,
		HandSize:         3,
		MaxTokens:        5,
		BurnSlots:        2,
		Track:            Track{SpacesPerLap: 10, LapsToWin: 2},
		TokenCategories:  carddata.Categories,
		TokenBonusValues: carddata.BonusValues,
		CardsByDeck:      carddata.Catalog(),
		Seed:             1,
		RecordHistory:    true,
	}
}

func newTestEngine(t *testing.T, players ...string) *Engine {
	t.Helper()
	e, err := NewEngine(testConfig(), players, nil)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	e.SetRand(rand.New(rand.NewSource(42)))
	e.Start()
	return e
}

func TestStartDealsHandsAndEntersRaceSelection(t *testing.T) {
	e := newTestEngine(t, "alice", "bob")
	if e.phase != PhaseRaceSelection {
		t.Fatalf("expected race_selection, got %s", e.phase)
	}
	for _, p := range e.players {
		if len(p.Deck.Hand) != e.cfg.HandSize {
			t.Fatalf("player %s expected hand size %d, got %d", p.ID, e.cfg.HandSize, len(p.Deck.Hand))
		}
	}
	if len(e.auctionPool) != len(e.players)+1 {
		t.Fatalf("expected pool of %d, got %d", len(e.players)+1, len(e.auctionPool))
	}
}

func TestRaceSelectionRejectsUnknownCard(t *testing.T) {
	e := newTestEngine(t, "alice", "bob")
	res := e.SubmitRaceSelection("alice", "not-a-real-instance", nil, false)
	if res.Success {
		t.Fatalf("expected failure for unknown card instance")
	}
}

func TestRaceSelectionAdvancesOnceAllReady(t *testing.T) {
	e := newTestEngine(t, "alice", "bob")
	alice := e.players[0]
	bob := e.players[1]

	res := e.SubmitRaceSelection("alice", alice.Deck.Hand[0].InstanceID, nil, false)
	if !res.Success {
		t.Fatalf("alice selection failed: %s", res.Message)
	}
	if e.phase != PhaseRaceSelection {
		t.Fatalf("should still be waiting on bob, got %s", e.phase)
	}

	res = e.SubmitRaceSelection("bob", bob.Deck.Hand[0].InstanceID, nil, false)
	if !res.Success {
		t.Fatalf("bob selection failed: %s", res.Message)
	}
	if e.phase != PhaseRaceReveal {
		t.Fatalf("expected race_reveal once both ready, got %s", e.phase)
	}
}

func TestForceRevealResolvesRaceAndAdvancesTurn(t *testing.T) {
	e := newTestEngine(t, "alice", "bob")
	alice := e.players[0]
	bob := e.players[1]
	aliceCard := alice.Deck.Hand[0]
	bobCard := bob.Deck.Hand[0]

	e.SubmitRaceSelection("alice", aliceCard.InstanceID, nil, false)
	e.SubmitRaceSelection("bob", bobCard.InstanceID, nil, false)
	e.ForceReveal()

	if alice.DistanceMoved == 0 || bob.DistanceMoved == 0 {
		t.Fatalf("expected both players to have moved, got alice=%d bob=%d", alice.DistanceMoved, bob.DistanceMoved)
	}
	if e.turn != 2 {
		t.Fatalf("expected turn to advance to 2, got %d", e.turn)
	}
	if e.turnType != TurnAuction {
		t.Fatalf("turn 2 should be an auction turn, got %s", e.turnType)
	}
	if e.phase != PhaseAuctionSelection {
		t.Fatalf("expected auction_selection, got %s", e.phase)
	}
	if len(e.history) != 1 {
		t.Fatalf("expected one recorded turn, got %d", len(e.history))
	}
}

func TestAuctionDraftOrderFollowsBidValue(t *testing.T) {
	e := newTestEngine(t, "alice", "bob")
	// Force into an auction turn directly for a focused test.
	e.turn = 2
	e.turnType = TurnAuction
	e.phase = PhaseAuctionSelection
	e.revealPoolLocked()

	alice := e.players[0]
	bob := e.players[1]

	// Give each a hand card with a known trick number via direct catalog pull.
	catalog := carddata.Catalog()
	highTrick := catalog[card.DeckLap1][2] // lap1-toll, TrickNumber 4
	lowTrick := catalog[card.DeckBase][0]   // base-sprint, TrickNumber 1
	highTrick.InstanceID = "high#1"
	lowTrick.InstanceID = "low#1"
	alice.Deck.Hand = append(alice.Deck.Hand, highTrick)
	bob.Deck.Hand = append(bob.Deck.Hand, lowTrick)

	e.SubmitAuctionBid("alice", "high#1", nil, false)
	e.SubmitAuctionBid("bob", "low#1", nil, false)
	e.ForceReveal()

	if e.phase != PhaseAuctionDrafting {
		t.Fatalf("expected auction_drafting, got %s", e.phase)
	}
	if e.draftQueue[0] != "alice" {
		t.Fatalf("expected alice (higher trick number) to draft first, got %s", e.draftQueue[0])
	}
}

func TestSubmitDraftOutOfTurnFails(t *testing.T) {
	e := newTestEngine(t, "alice", "bob")
	e.turn = 2
	e.turnType = TurnAuction
	e.phase = PhaseAuctionDrafting
	e.draftQueue = []string{"alice", "bob"}
	e.revealPoolLocked()

	res := e.SubmitDraft("bob", e.auctionPool[0].InstanceID)
	if res.Success {
		t.Fatalf("expected failure drafting out of turn")
	}
}

func TestSubmitDraftAdvancesQueueAndThenTurn(t *testing.T) {
	e := newTestEngine(t, "alice", "bob")
	e.turn = 2
	e.turnType = TurnAuction
	e.phase = PhaseAuctionDrafting
	e.draftQueue = []string{"alice", "bob"}
	e.revealPoolLocked()
	pool := append([]card.Card(nil), e.auctionPool...)

	res := e.SubmitDraft("alice", pool[0].InstanceID)
	if !res.Success {
		t.Fatalf("alice draft failed: %s", res.Message)
	}
	if e.draftQueue[0] != "bob" {
		t.Fatalf("expected bob next, got %v", e.draftQueue)
	}

	res = e.SubmitDraft("bob", pool[1].InstanceID)
	if !res.Success {
		t.Fatalf("bob draft failed: %s", res.Message)
	}
	if len(e.draftQueue) != 0 {
		t.Fatalf("expected empty draft queue after last draft")
	}
	if e.turn != 3 {
		t.Fatalf("expected turn to advance to 3 after drafting finishes, got %d", e.turn)
	}
	if len(e.auctionPool) != 0 {
		t.Fatalf("expected leftover pool cards discarded, got %d", len(e.auctionPool))
	}
}

func TestWinConditionPicksFurthestSpaceOnTie(t *testing.T) {
	e := newTestEngine(t, "alice", "bob")
	e.players[0].Lap = 3
	e.players[0].Space = 5
	e.players[1].Lap = 3
	e.players[1].Space = 7

	if !e.checkWinConditionLocked() {
		t.Fatalf("expected a winner")
	}
	if e.winner != "bob" {
		t.Fatalf("expected bob (greater space) to win, got %s", e.winner)
	}
	if e.phase != PhaseGameOver {
		t.Fatalf("expected game_over phase")
	}
}

func TestActionsFailAfterGameOver(t *testing.T) {
	e := newTestEngine(t, "alice", "bob")
	e.winner = "alice"
	e.phase = PhaseGameOver

	res := e.SubmitRaceSelection("bob", "anything", nil, false)
	if res.Success {
		t.Fatalf("expected failure once game is over")
	}
}

func TestOnPlayerReconnectMarksConnected(t *testing.T) {
	e := newTestEngine(t, "alice", "bob")
	e.SetConnected("alice", false)
	if e.players[0].Connected {
		t.Fatalf("expected alice disconnected")
	}
	e.OnPlayerReconnect("alice", "alice")
	if !e.players[0].Connected {
		t.Fatalf("expected alice reconnected")
	}
}

func TestPendingBotsDuringRaceSelection(t *testing.T) {
	e := newTestEngine(t, "alice", "bob")
	alice := e.players[0]
	e.SubmitRaceSelection("alice", alice.Deck.Hand[0].InstanceID, nil, false)

	pending := e.PendingBots()
	if len(pending) != 1 || pending[0] != "bob" {
		t.Fatalf("expected only bob pending, got %v", pending)
	}
}

func TestProjectForHidesOtherPlayersHands(t *testing.T) {
	e := newTestEngine(t, "alice", "bob")
	view := e.ProjectFor("alice")
	if view.You == nil {
		t.Fatalf("expected alice to see her own hand")
	}
	if len(view.You.Hand) != e.cfg.HandSize {
		t.Fatalf("expected alice's full hand, got %d cards", len(view.You.Hand))
	}
	for _, p := range view.Players {
		if p.ID == "bob" && p.HandCount != e.cfg.HandSize {
			t.Fatalf("expected bob's hand count visible, got %d", p.HandCount)
		}
	}

	observerView := e.ProjectFor("nobody")
	if observerView.You != nil {
		t.Fatalf("expected observer to have no seat")
	}
}
