package henhur

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"henhur-arena/card"
	"henhur-arena/dice"
	"henhur-arena/deck"
	"henhur-arena/effects"

	"github.com/sirupsen/logrus"
)

// Engine is the two-axis turn/phase state machine (§4.D). Every exported
// method locks mu, mutates state, unlocks, then — only on a real state
// change — invokes onStateChanged, mirroring the teacher's table.Table
// event loop without needing a dedicated goroutine per game.
type Engine struct {
	mu  sync.Mutex
	cfg Config
	rng dice.Rand

	players []*Player
	index   map[string]int

	round    int
	turn     int
	turnType TurnType
	phase    Phase

	sharedDeck  []card.Card
	auctionPool []card.Card
	draftQueue  []string

	winner string

	history []TurnRecord

	revealTimer *time.Timer
	revealDelay time.Duration

	cardSeq int

	onStateChanged func()
}

// NewEngine constructs an engine for the given participant ids, in seat
// order. The game does not begin advancing until Start is called.
func NewEngine(cfg Config, participantIDs []string, onStateChanged func()) (*Engine, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if len(participantIDs) < 2 {
		return nil, fmt.Errorf("henhur: need at least 2 players")
	}

	var rng dice.Rand
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng = rand.New(rand.NewSource(seed))

	e := &Engine{
		cfg:            cfg,
		rng:            rng,
		index:          make(map[string]int, len(participantIDs)),
		revealDelay:    2 * time.Second,
		onStateChanged: onStateChanged,
	}
	for i, id := range participantIDs {
		e.players = append(e.players, newPlayer(id, cfg.BurnSlots, cfg.MaxTokens))
		e.index[id] = i
	}
	return e, nil
}

// SetOnStateChanged wires the lobby's broadcast hook. It may be called
// any time, including after Start — useful since the lobby constructs
// the game before it has a callback ready to hand it.
func (e *Engine) SetOnStateChanged(fn func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onStateChanged = fn
}

// SetRand overrides the random source, for deterministic tests (§9). It
// must be called before Start.
func (e *Engine) SetRand(r dice.Rand) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rng = r
}

// SetRevealDelay overrides the simultaneous-reveal pause (default 2s),
// mainly so tests don't wait on a real timer.
func (e *Engine) SetRevealDelay(d time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.revealDelay = d
}

func (e *Engine) nextInstanceID(cardID string) string {
	e.cardSeq++
	return fmt.Sprintf("%s#%d", cardID, e.cardSeq)
}

func (e *Engine) expandDeck(dt card.DeckType) []card.Card {
	catalog := e.cfg.CardsByDeck[dt]
	var allowed map[string]bool
	if len(e.cfg.SelectedCards) > 0 {
		allowed = make(map[string]bool, len(e.cfg.SelectedCards))
		for _, id := range e.cfg.SelectedCards {
			allowed[id] = true
		}
	}
	var out []card.Card
	for _, c := range catalog {
		if allowed != nil && !allowed[c.ID] {
			continue
		}
		copies := c.Copies
		if copies == 0 {
			copies = card.DefaultCopies
		}
		for i := 0; i < copies; i++ {
			out = append(out, c.Copy(e.nextInstanceID(c.ID)))
		}
	}
	return out
}

func (e *Engine) highestLap() int {
	highest := 1
	for _, p := range e.players {
		if p.Lap > highest {
			highest = p.Lap
		}
	}
	return highest
}

func (e *Engine) refillSharedDeck() {
	decks := e.cfg.deckPolicy()(e.highestLap())
	var batch []card.Card
	for _, dt := range decks {
		batch = append(batch, e.expandDeck(dt)...)
	}
	dice.Shuffle(e.rng, batch)
	e.sharedDeck = append(e.sharedDeck, batch...)
}

// revealPoolLocked refreshes the visible auction pool to one card per
// player plus one (§4.D.6), refilling the shared deck from the deck
// policy's currently-eligible laps if it runs short.
func (e *Engine) revealPoolLocked() {
	need := len(e.players) + 1
	if len(e.sharedDeck) < need {
		e.refillSharedDeck()
	}
	if need > len(e.sharedDeck) {
		need = len(e.sharedDeck)
	}
	e.auctionPool = append([]card.Card(nil), e.sharedDeck[:need]...)
	e.sharedDeck = e.sharedDeck[need:]
}

// Start deals starting hands and begins turn 1 (a race turn, §4.D.1). It
// is idempotent once called.
func (e *Engine) Start() {
	e.mu.Lock()
	if e.phase != PhaseWaiting {
		e.mu.Unlock()
		return
	}

	e.sharedDeck = nil
	e.refillSharedDeck()

	for _, p := range e.players {
		base := e.expandDeck(card.DeckBase)
		dice.Shuffle(e.rng, base)
		p.Deck = deck.Deck{Draw: base}
		var drawn []card.Card
		p.Deck, drawn = deck.Draw(p.Deck, e.cfg.HandSize, e.rng)
		p.Deck.Hand = drawn
	}

	e.round, e.turn = 1, 1
	e.turnType = turnTypeForTurn(e.turn)
	e.phase = PhaseRaceSelection
	e.revealPoolLocked()
	e.mu.Unlock()

	e.notify()
}

func (e *Engine) notify() {
	if e.onStateChanged != nil {
		e.onStateChanged()
	}
}

func (e *Engine) allConnectedReadyLocked() bool {
	for _, p := range e.players {
		if p.Connected && !p.Ready {
			return false
		}
	}
	return true
}

func tokensAvailable(p *Player, tokens []card.TokenType) bool {
	need := map[card.TokenType]int{}
	for _, t := range tokens {
		need[t]++
	}
	for t, n := range need {
		if p.Tokens[t] < n {
			return false
		}
	}
	return true
}

func cardInHand(p *Player, instanceID string) (card.Card, bool) {
	for _, c := range p.Deck.Hand {
		if c.InstanceID == instanceID {
			return c, true
		}
	}
	return card.Card{}, false
}

// SubmitRaceSelection records a player's card + token + burn choice for
// the current race turn (§4.D.2). It is a no-op failure if called outside
// race_selection, with an unknown card, or with tokens the player doesn't
// hold.
func (e *Engine) SubmitRaceSelection(playerID, cardInstanceID string, tokensUsed []card.TokenType, willBurn bool) Result {
	e.mu.Lock()
	res, changed := e.submitSelectionLocked(playerID, cardInstanceID, tokensUsed, willBurn, PhaseRaceSelection, PhaseRaceReveal)
	e.mu.Unlock()
	if changed {
		e.notify()
	}
	return res
}

// SubmitAuctionBid records a player's bid for the current auction turn
// (§4.D.3): the same {card, tokensUsed, willBurn} shape as a race
// selection, with willBurn restricted to cards carrying a burn effect.
func (e *Engine) SubmitAuctionBid(playerID, cardInstanceID string, tokensUsed []card.TokenType, willBurn bool) Result {
	e.mu.Lock()
	res, changed := e.submitSelectionLocked(playerID, cardInstanceID, tokensUsed, willBurn, PhaseAuctionSelection, PhaseAuctionReveal)
	e.mu.Unlock()
	if changed {
		e.notify()
	}
	return res
}

func (e *Engine) submitSelectionLocked(playerID, cardInstanceID string, tokensUsed []card.TokenType, willBurn bool, waitPhase, revealPhase Phase) (Result, bool) {
	if e.phase == PhaseGameOver {
		return Result{Success: false, Message: errGameOverMsg}, false
	}
	if e.phase != waitPhase {
		return Result{Success: false, Message: "not accepting selections right now"}, false
	}
	idx, ok := e.index[playerID]
	if !ok {
		return Result{Success: false, Message: "unknown player"}, false
	}
	p := e.players[idx]

	c, found := cardInHand(p, cardInstanceID)
	if !found {
		return Result{Success: false, Message: "card not in hand"}, false
	}
	if !tokensAvailable(p, tokensUsed) {
		return Result{Success: false, Message: "insufficient tokens"}, false
	}
	if willBurn {
		if p.emptyBurnSlot() < 0 {
			return Result{Success: false, Message: "no empty burn slot"}, false
		}
		if waitPhase == PhaseAuctionSelection && !c.CanBurnInAuction() {
			return Result{Success: false, Message: "this card has no burn effect"}, false
		}
	}

	p.Selected = &Selection{
		CardInstanceID: cardInstanceID,
		TokensUsed:     append([]card.TokenType(nil), tokensUsed...),
		WillBurn:       willBurn,
	}
	p.Ready = true

	if !e.allConnectedReadyLocked() {
		return Result{Success: true}, true
	}

	e.phase = revealPhase
	e.armRevealTimerLocked()
	return Result{Success: true}, true
}

func (e *Engine) armRevealTimerLocked() {
	if e.revealTimer != nil {
		e.revealTimer.Stop()
	}
	e.revealTimer = time.AfterFunc(e.revealDelay, e.onRevealElapsed)
}

// ForceReveal resolves the current reveal phase immediately, bypassing
// the timer — used by tests and by a lobby that wants to skip the pause.
func (e *Engine) ForceReveal() {
	if e.revealTimer != nil {
		e.revealTimer.Stop()
	}
	e.onRevealElapsed()
}

func (e *Engine) onRevealElapsed() {
	e.mu.Lock()
	changed := e.resolveRevealLocked()
	e.mu.Unlock()
	if changed {
		e.notify()
	}
}

func (e *Engine) resolveRevealLocked() bool {
	switch e.phase {
	case PhaseRaceReveal:
		e.phase = PhaseRaceResolution
		e.resolveRaceLocked()
		return true
	case PhaseAuctionReveal:
		e.resolveAuctionLocked()
		return true
	default:
		return false
	}
}

type resolvedEntry struct {
	idx      int
	player   *Player
	sel      Selection
	card     card.Card
	priority int
	bidValue int
}

// resolveRaceLocked implements §4.D.2's priority-ordered resolution: roll
// priority for every selection, sort descending (ties keep seat order),
// then move/play/discard-or-burn one player at a time in that order.
func (e *Engine) resolveRaceLocked() {
	var entries []resolvedEntry
	for i, p := range e.players {
		if p.Selected == nil {
			continue
		}
		sel := *p.Selected
		c, found := cardInHand(p, sel.CardInstanceID)
		if !found {
			logrus.WithField("player", p.ID).Warn("henhur: selected card vanished from hand before resolution")
			continue
		}
		pr := dice.RollPriority(e.rng, c.Priority) + p.PriorityModifier + e.cfg.priorityBonus(sel.TokensUsed)
		entries = append(entries, resolvedEntry{idx: i, player: p, sel: sel, card: c, priority: pr})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].priority > entries[j].priority
	})

	var turnEntries []string
	for _, re := range entries {
		turnEntries = append(turnEntries, e.resolveOneRaceEntry(re))
	}

	e.recordTurn(turnEntries)

	if e.checkWinConditionLocked() {
		return
	}
	e.advanceTurnLocked()
}

func (e *Engine) resolveOneRaceEntry(re resolvedEntry) string {
	p := re.player
	distance := re.card.RaceNumber + e.cfg.raceBonus(re.sel.TokensUsed)
	space, lap := effects.MoveWithWrap(e.cfg.Track.SpacesPerLap, p.Space, p.Lap, distance)
	p.Space, p.Lap = space, lap
	p.DistanceMoved += absInt(distance)

	e.consumeSelection(p, re.card, re.sel, false)

	return fmt.Sprintf("%s played %s (priority=%d distance=%d) -> space=%d lap=%d", p.ID, re.card.ID, re.priority, distance, p.Space, p.Lap)
}

// resolveAuctionLocked implements §4.D.3: every bid's value and rolled
// priority are computed once, sorted value desc (ties by priority desc),
// producing the draft order, then every bid's card/tokens are consumed
// before drafting opens.
func (e *Engine) resolveAuctionLocked() {
	var entries []resolvedEntry
	for i, p := range e.players {
		if p.Selected == nil {
			continue
		}
		sel := *p.Selected
		c, found := cardInHand(p, sel.CardInstanceID)
		if !found {
			logrus.WithField("player", p.ID).Warn("henhur: selected bid card vanished from hand before resolution")
			continue
		}
		value := c.TrickNumber + e.cfg.auctionBonus(sel.TokensUsed)
		pr := dice.RollPriority(e.rng, c.Priority)
		entries = append(entries, resolvedEntry{idx: i, player: p, sel: sel, card: c, priority: pr, bidValue: value})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].bidValue != entries[j].bidValue {
			return entries[i].bidValue > entries[j].bidValue
		}
		return entries[i].priority > entries[j].priority
	})

	var turnEntries []string
	var order []string
	for _, re := range entries {
		order = append(order, re.player.ID)
		turnEntries = append(turnEntries, fmt.Sprintf("%s bid %s (value=%d priority=%d)", re.player.ID, re.card.ID, re.bidValue, re.priority))
		e.consumeSelection(re.player, re.card, re.sel, true)
	}

	e.recordTurn(turnEntries)

	e.draftQueue = order
	e.phase = PhaseAuctionDrafting
}

func (e *Engine) consumeSelection(p *Player, c card.Card, sel Selection, isAuction bool) {
	p.Deck, _, _ = deck.RemoveFromHand(p.Deck, sel.CardInstanceID)
	p.CardsPlayed++

	if sel.WillBurn {
		slot := p.emptyBurnSlot()
		burned := c
		if slot >= 0 {
			p.BurnSlots[slot] = &burned
		}
		p.CardsBurned++
		e.runEffects(p, c.BurnEffect, true, "")
	} else {
		p.Deck = deck.DiscardCard(p.Deck, c)
		e.runEffects(p, c.Effect, false, "")
	}

	for _, t := range sel.TokensUsed {
		if p.Tokens[t] > 0 {
			p.Tokens[t]--
		}
	}

	if len(p.Deck.Hand) == 0 {
		var drawn []card.Card
		p.Deck, drawn = deck.Draw(p.Deck, e.cfg.HandSize, e.rng)
		p.Deck.Hand = drawn
	}

	p.resetTurnScratch()
}

func (e *Engine) runEffects(p *Player, effs []card.Effect, isBurn bool, targetPlayerID string) effects.Outcome {
	if len(effs) == 0 {
		return effects.Outcome{}
	}
	ctx := &effects.Context{PlayerID: p.ID, Player: p, Game: e, TargetPlayerID: targetPlayerID, IsBurn: isBurn}
	return effects.Execute(effs, ctx)
}

func (e *Engine) recordTurn(entries []string) {
	if !e.cfg.RecordHistory {
		return
	}
	e.history = append(e.history, TurnRecord{Round: e.round, Turn: e.turn, TurnType: e.turnType, Entries: entries})
}

// SubmitDraft lets the player at the front of the draft queue take one
// card from the revealed pool (§4.D.3). Drafted cards go on top of the
// player's draw pile. When the queue empties, any undrafted pool cards
// are discarded (not returned to the shared deck) and the turn advances.
func (e *Engine) SubmitDraft(playerID, cardInstanceID string) Result {
	e.mu.Lock()
	res, changed := e.submitDraftLocked(playerID, cardInstanceID)
	e.mu.Unlock()
	if changed {
		e.notify()
	}
	return res
}

func (e *Engine) submitDraftLocked(playerID, cardInstanceID string) (Result, bool) {
	if e.phase == PhaseGameOver {
		return Result{Success: false, Message: errGameOverMsg}, false
	}
	if e.phase != PhaseAuctionDrafting {
		return Result{Success: false, Message: "not accepting drafts right now"}, false
	}
	if len(e.draftQueue) == 0 || e.draftQueue[0] != playerID {
		return Result{Success: false, Message: "not your turn to draft"}, false
	}

	poolIdx := -1
	for i, c := range e.auctionPool {
		if c.InstanceID == cardInstanceID {
			poolIdx = i
			break
		}
	}
	if poolIdx < 0 {
		return Result{Success: false, Message: "card not in pool"}, false
	}

	idx, ok := e.index[playerID]
	if !ok {
		return Result{Success: false, Message: "unknown player"}, false
	}
	p := e.players[idx]
	drafted := e.auctionPool[poolIdx]
	e.auctionPool = append(e.auctionPool[:poolIdx:poolIdx], e.auctionPool[poolIdx+1:]...)
	p.Deck = deck.PrependToDraw(p.Deck, drafted)

	e.draftQueue = e.draftQueue[1:]
	if len(e.draftQueue) == 0 {
		e.auctionPool = nil
		if e.checkWinConditionLocked() {
			return Result{Success: true}, true
		}
		e.advanceTurnLocked()
	}
	return Result{Success: true}, true
}

// checkWinConditionLocked implements §4.D.5: any player past the target
// lap count wins; ties broken by greatest space, first-encountered seat
// order breaking any further tie.
func (e *Engine) checkWinConditionLocked() bool {
	var winner *Player
	for _, p := range e.players {
		if p.Lap <= e.cfg.Track.LapsToWin {
			continue
		}
		if winner == nil || p.Space > winner.Space {
			winner = p
		}
	}
	if winner == nil {
		return false
	}
	e.winner = winner.ID
	e.phase = PhaseGameOver
	return true
}

func (e *Engine) advanceTurnLocked() {
	e.draftQueue = nil
	e.turn++
	if e.turn > e.cfg.TurnsPerRound {
		e.round++
		e.turn = 1
	}
	e.turnType = turnTypeForTurn(e.turn)
	for _, p := range e.players {
		p.resetTurnScratch()
	}
	if e.turnType == TurnRace {
		e.phase = PhaseRaceSelection
	} else {
		e.phase = PhaseAuctionSelection
		e.revealPoolLocked()
	}
}

// PendingBots reports which connected players the current phase is still
// waiting on, for package bots' scheduler to key timers off of.
func (e *Engine) PendingBots() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	switch e.phase {
	case PhaseRaceSelection, PhaseAuctionSelection:
		var out []string
		for _, p := range e.players {
			if p.Connected && !p.Ready {
				out = append(out, p.ID)
			}
		}
		return out
	case PhaseAuctionDrafting:
		if len(e.draftQueue) > 0 {
			return []string{e.draftQueue[0]}
		}
		return nil
	default:
		return nil
	}
}

// OnPlayerReconnect marks a rejoining player connected again, rebinding
// the seat if the transport issues a fresh id for the same seat (§4.G).
func (e *Engine) OnPlayerReconnect(oldID, newID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if idx, ok := e.index[newID]; ok {
		e.players[idx].Connected = true
		return
	}
	idx, ok := e.index[oldID]
	if !ok {
		logrus.WithFields(logrus.Fields{"oldID": oldID, "newID": newID}).Warn("henhur: reconnect for unknown seat")
		return
	}
	if newID != oldID {
		delete(e.index, oldID)
		e.index[newID] = idx
		e.players[idx].ID = newID
	}
	e.players[idx].Connected = true
}

// SetConnected flips a seat's connectedness, used when a transport
// session drops without a replacement yet arriving.
func (e *Engine) SetConnected(playerID string, connected bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if idx, ok := e.index[playerID]; ok {
		e.players[idx].Connected = connected
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
