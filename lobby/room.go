// Package lobby hosts rooms — one per in-progress or pending game of any
// variant — the way the teacher's internal/lobby wraps internal/table:
// a keyed registry with an idle-cleanup sweep, and a per-room actor that
// serializes every join/leave/action against its own state (spec §5).
package lobby

import (
	"fmt"
	"sync"
	"time"

	"henhur-arena/bots"
	"henhur-arena/gameplay"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	defaultMaxSeats     = 6
	defaultMinSeats     = 2
	defaultCleanupAfter = 2 * time.Minute
)

// Result is the total return shape every room operation uses.
type Result struct {
	Success bool
	Message string
}

// Room is one lobby's worth of state: its seat list, its title/options,
// and — once started — the hosted gameplay.Game driving it.
type Room struct {
	mu sync.Mutex

	ID        string
	Title     string
	Variant   string
	Options   map[string]any
	LeaderID  string
	CreatedAt time.Time

	MinSeats int
	MaxSeats int

	seats     []string          // connected/reserved player ids, join order
	connected map[string]bool
	names     map[string]string

	started bool
	game    gameplay.Game

	botSeats map[string]*bots.Persona

	games     *gameplay.Registry
	personas  *bots.Registry
	handlers  *bots.HandlerRegistry
	scheduler *bots.Scheduler

	broadcast func(playerID string, payload any)

	cleanupTimer *time.Timer
	onEmpty      func(roomID string)
}

func newRoom(id, variant string, games *gameplay.Registry, personas *bots.Registry, handlers *bots.HandlerRegistry, scheduler *bots.Scheduler, broadcast func(string, any), onEmpty func(string)) *Room {
	return &Room{
		ID:        id,
		CreatedAt: time.Now(),
		Variant:   variant,
		Options:   map[string]any{},
		MinSeats:  defaultMinSeats,
		MaxSeats:  defaultMaxSeats,
		connected: make(map[string]bool),
		names:     make(map[string]string),
		botSeats:  make(map[string]*bots.Persona),
		games:     games,
		personas:  personas,
		handlers:  handlers,
		scheduler: scheduler,
		broadcast: broadcast,
		onEmpty:   onEmpty,
	}
}

// Join seats a player, making them leader if they're first in. Per
// §4.F's join() algorithm (scenario S6), a displayName matching a
// currently-disconnected seat is treated as that participant resuming
// under a new connection id, not a fresh seat — every websocket
// reconnect mints a brand-new playerID, so this is the only path that
// can ever actually rebind a returning player.
func (r *Room) Join(playerID, displayName string) Result {
	r.mu.Lock()
	changed := false
	defer func() {
		r.mu.Unlock()
		if changed {
			r.broadcastState()
		}
	}()

	if r.connected[playerID] {
		r.names[playerID] = displayName
		return Result{Success: true}
	}
	if oldID, ok := r.disconnectedSeatByNameLocked(displayName); ok {
		r.rebindSeatLocked(oldID, playerID)
		r.cancelCleanupLocked()
		changed = true
		return Result{Success: true}
	}
	if r.started {
		return Result{Success: false, Message: "game already started"}
	}
	if len(r.seats) >= r.MaxSeats {
		return Result{Success: false, Message: "room is full"}
	}

	r.cancelCleanupLocked()
	r.seats = append(r.seats, playerID)
	r.connected[playerID] = true
	r.names[playerID] = displayName
	if r.LeaderID == "" {
		r.LeaderID = playerID
	}
	changed = true
	return Result{Success: true}
}

// HasDisconnectedSeatNamed reports whether the room currently holds a
// disconnected seat under this display name, letting the registry match
// a returning player by name across every open or started room it
// knows about, not just the one a direct join-room call already names.
func (r *Room) HasDisconnectedSeatNamed(displayName string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.disconnectedSeatByNameLocked(displayName)
	return ok
}

// disconnectedSeatByNameLocked finds a currently-disconnected seat
// whose display name matches, for Join's reconnect-by-name fallback.
func (r *Room) disconnectedSeatByNameLocked(displayName string) (string, bool) {
	for _, id := range r.seats {
		if r.names[id] == displayName && !r.connected[id] {
			return id, true
		}
	}
	return "", false
}

// rebindSeatLocked moves a seat from oldID to newID: the seat slice
// entry, connected/names maps, leader id, and (once started) the
// hosted game's own player binding, shared by Join's by-name fallback
// and the explicit Reconnect entry point.
func (r *Room) rebindSeatLocked(oldID, newID string) {
	for i, id := range r.seats {
		if id == oldID {
			r.seats[i] = newID
			break
		}
	}
	r.connected[newID] = true
	delete(r.connected, oldID)
	r.names[newID] = r.names[oldID]
	delete(r.names, oldID)
	if r.LeaderID == oldID {
		r.LeaderID = newID
	}
	if r.game != nil {
		r.game.OnPlayerReconnect(oldID, newID)
	}
}

// Leave marks a seat disconnected (pre-start, it vacates the seat
// entirely; once started it only flips connectedness, per §4.G).
func (r *Room) Leave(playerID string) {
	r.mu.Lock()
	changed := false
	defer func() {
		r.mu.Unlock()
		if changed {
			r.broadcastState()
		}
		r.maybeScheduleCleanup()
	}()

	if !r.connected[playerID] {
		return
	}
	if !r.started {
		r.removeSeatLocked(playerID)
		changed = true
		return
	}
	r.connected[playerID] = false
	if r.game != nil {
		r.game.SetConnected(playerID, false)
	}
	if r.LeaderID == playerID {
		r.transferLeaderLocked()
	}
	changed = true
}

func (r *Room) removeSeatLocked(playerID string) {
	for i, id := range r.seats {
		if id == playerID {
			r.seats = append(r.seats[:i:i], r.seats[i+1:]...)
			break
		}
	}
	delete(r.connected, playerID)
	delete(r.names, playerID)
	if r.LeaderID == playerID {
		r.transferLeaderLocked()
	}
}

func (r *Room) transferLeaderLocked() {
	for _, id := range r.seats {
		if r.connected[id] {
			r.LeaderID = id
			return
		}
	}
	r.LeaderID = ""
}

// Reconnect rebinds a seat under a new transport-assigned id, for a
// player resuming a dropped session (§4.G).
func (r *Room) Reconnect(oldID, newID string) Result {
	r.mu.Lock()
	defer func() {
		r.mu.Unlock()
		r.broadcastState()
	}()

	found := false
	for _, id := range r.seats {
		if id == oldID {
			found = true
			break
		}
	}
	if !found {
		return Result{Success: false, Message: "seat not found"}
	}
	r.rebindSeatLocked(oldID, newID)
	r.cancelCleanupLocked()
	return Result{Success: true}
}

// UpdateTitleAndOptions lets the leader retitle the room and adjust
// variant options before start.
func (r *Room) UpdateTitleAndOptions(playerID, title string, options map[string]any) Result {
	r.mu.Lock()
	defer r.mu.Unlock()

	if playerID != r.LeaderID {
		return Result{Success: false, Message: "only the leader may change room settings"}
	}
	if r.started {
		return Result{Success: false, Message: "game already started"}
	}
	r.Title = title
	for k, v := range options {
		r.Options[k] = v
	}
	return Result{Success: true}
}

// FillWithBots seats bot personas into empty slots up to MinSeats, the
// way the teacher's lobby.fillTableWithNPCs tops off a Quick Join table.
func (r *Room) FillWithBots() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.started || r.personas == nil {
		return
	}
	all := r.personas.All()
	if len(all) == 0 {
		return
	}
	idx := 0
	for len(r.seats) < r.MinSeats {
		persona := all[idx%len(all)]
		idx++
		botID := fmt.Sprintf("bot-%s-%s-%d", r.ID, persona.ID, len(r.seats))
		r.seats = append(r.seats, botID)
		r.connected[botID] = true
		r.names[botID] = persona.Name
		r.botSeats[botID] = persona
	}
}

// Start constructs the variant's Game for the current seat list and
// begins play. The room must have at least MinSeats filled.
func (r *Room) Start(playerID string) Result {
	r.mu.Lock()
	changed := false
	defer func() {
		r.mu.Unlock()
		if changed {
			r.broadcastState()
			r.pokeBots()
		}
	}()

	if playerID != r.LeaderID {
		return Result{Success: false, Message: "only the leader may start the game"}
	}
	if r.started {
		return Result{Success: false, Message: "already started"}
	}
	if len(r.seats) < r.MinSeats {
		return Result{Success: false, Message: "not enough players"}
	}

	game, err := r.games.New(r.Variant, append([]string(nil), r.seats...), r.Options)
	if err != nil {
		return Result{Success: false, Message: err.Error()}
	}
	if sn, ok := game.(gameplay.StateNotifier); ok {
		sn.SetOnStateChanged(func() {
			r.broadcastState()
			r.pokeBots()
		})
	}
	r.game = game
	r.started = true
	game.Start()
	changed = true
	return Result{Success: true}
}

// SubmitAction forwards one player's action to the hosted game, then
// broadcasts the resulting state and pokes any bots now waiting to act.
func (r *Room) SubmitAction(playerID string, action gameplay.Action) Result {
	r.mu.Lock()
	if !r.started || r.game == nil {
		r.mu.Unlock()
		return Result{Success: false, Message: "game has not started"}
	}
	game := r.game
	r.mu.Unlock()

	res := game.ApplyAction(playerID, action)
	r.broadcastState()
	r.pokeBots()
	return Result{Success: res.Success, Message: res.Message}
}

func (r *Room) pokeBots() {
	r.mu.Lock()
	game := r.game
	variant := r.Variant
	botSeats := r.botSeats
	scheduler := r.scheduler
	r.mu.Unlock()
	if game == nil || scheduler == nil || len(botSeats) == 0 {
		return
	}
	scheduler.PokePending(r.ID, variant, game, botSeats)
}

// broadcastState sends every connected seat its own projection (or the
// unstarted lobby roster if the game hasn't begun).
func (r *Room) broadcastState() {
	r.mu.Lock()
	if r.broadcast == nil {
		r.mu.Unlock()
		return
	}
	seats := append([]string(nil), r.seats...)
	started := r.started
	game := r.game
	r.mu.Unlock()

	for _, id := range seats {
		if r.botSeats[id] != nil {
			continue
		}
		var payload any
		if started && game != nil {
			payload = game.ProjectFor(id)
		} else {
			payload = r.rosterSnapshot()
		}
		r.broadcast(id, payload)
	}
}

// RosterSnapshot is the pre-start waiting-room view: who's seated, who's
// the leader, and the room's current title/options.
type RosterSnapshot struct {
	ID       string
	Title    string
	Variant  string
	LeaderID string
	Seats    []string
	Started  bool
}

func (r *Room) rosterSnapshot() RosterSnapshot {
	return RosterSnapshot{
		ID:       r.ID,
		Title:    r.Title,
		Variant:  r.Variant,
		LeaderID: r.LeaderID,
		Seats:    append([]string(nil), r.seats...),
		Started:  r.started,
	}
}

func (r *Room) isEmpty() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range r.seats {
		if r.connected[id] {
			return false
		}
	}
	return true
}

func (r *Room) cancelCleanupLocked() {
	if r.cleanupTimer != nil {
		r.cleanupTimer.Stop()
		r.cleanupTimer = nil
	}
}

func (r *Room) maybeScheduleCleanup() {
	if !r.isEmpty() {
		return
	}
	r.mu.Lock()
	r.cancelCleanupLocked()
	logrus.WithFields(logrus.Fields{
		"room": r.ID,
		"age":  humanize.Time(r.CreatedAt),
	}).Info("lobby: room emptied, scheduling idle cleanup")
	r.cleanupTimer = time.AfterFunc(defaultCleanupAfter, func() {
		if r.scheduler != nil {
			r.scheduler.CancelAll()
		}
		if r.onEmpty != nil {
			r.onEmpty(r.ID)
		}
	})
	r.mu.Unlock()
}

func newRoomID() string {
	return uuid.NewString()
}
