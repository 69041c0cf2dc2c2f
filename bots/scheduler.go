package bots

import (
	"sync"
	"time"

	"henhur-arena/gameplay"
)

// Scheduler times bot decisions the way the teacher's
// table.scheduleNPCAction does: wait out a per-persona "thinking" delay,
// then submit the decision through the same ApplyAction path a human
// player's request would take. Per spec's bot re-planning rule, every
// poke for a lobby cancels that lobby's previously-scheduled timers
// outright and plans a fresh batch from the game's current pending set,
// rather than trying to dedup against what's already ticking.
type Scheduler struct {
	mu       sync.Mutex
	handlers *HandlerRegistry
	timers   map[string][]*time.Timer // lobbyID -> outstanding timers
}

func NewScheduler(handlers *HandlerRegistry) *Scheduler {
	return &Scheduler{handlers: handlers, timers: make(map[string][]*time.Timer)}
}

// PokePending replans every bot decision pending for a lobby: it cancels
// whatever timers that lobby already has running, then schedules one
// fresh timer per seat game.PendingBots() reports, restricted to the
// seats named in botSeats and staggered by their position in the batch.
func (s *Scheduler) PokePending(lobbyID, variant string, game gameplay.Game, botSeats map[string]*Persona) {
	handler, ok := s.handlers.Get(variant)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.timers[lobbyID] {
		t.Stop()
	}
	delete(s.timers, lobbyID)

	var scheduled []*time.Timer
	idx := 0
	for _, playerID := range game.PendingBots() {
		persona, ok := botSeats[playerID]
		if !ok {
			continue
		}
		delay := time.Duration(handler.ActionDelayMs(persona, idx)) * time.Millisecond
		idx++
		pid, p := playerID, persona
		scheduled = append(scheduled, time.AfterFunc(delay, func() {
			s.fire(lobbyID, game, handler, pid, p)
		}))
	}
	if len(scheduled) > 0 {
		s.timers[lobbyID] = scheduled
	}
}

func (s *Scheduler) fire(lobbyID string, game gameplay.Game, handler Handler, playerID string, persona *Persona) {
	if !stillPending(game, playerID) {
		return
	}
	view := game.ProjectFor(playerID)
	action := handler.Decide(persona, playerID, view)
	if action.Type == "" || action.Type == "noop" {
		return
	}
	if !stillPending(game, playerID) {
		return
	}
	game.ApplyAction(playerID, action)
}

func stillPending(game gameplay.Game, playerID string) bool {
	for _, id := range game.PendingBots() {
		if id == playerID {
			return true
		}
	}
	return false
}

// CancelAll stops every outstanding timer across every lobby, used when
// the registry shuts down.
func (s *Scheduler) CancelAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for lobbyID, timers := range s.timers {
		for _, t := range timers {
			t.Stop()
		}
		delete(s.timers, lobbyID)
	}
}
