package lobby

import (
	"sync"
	"time"

	"henhur-arena/bots"
	"henhur-arena/gameplay"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
)

// Registry is the process-wide keyed map of rooms, grounded on the
// teacher's lobby.Lobby: a mutex-guarded map plus a background sweep
// that drops rooms nothing is left to occupy.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*Room

	games     *gameplay.Registry
	personas  *bots.Registry
	handlers  *bots.HandlerRegistry
	scheduler *bots.Scheduler

	broadcast func(roomID, playerID string, payload any)

	done     chan struct{}
	stopOnce sync.Once
}

// New builds a registry wired to the given variant/bot catalogs. The
// broadcast callback is invoked with (roomID, playerID, payload) any time
// a room's state changes — package transport supplies the actual
// websocket fan-out.
func New(games *gameplay.Registry, personas *bots.Registry, handlers *bots.HandlerRegistry, broadcast func(roomID, playerID string, payload any)) *Registry {
	reg := &Registry{
		rooms:     make(map[string]*Room),
		games:     games,
		personas:  personas,
		handlers:  handlers,
		scheduler: bots.NewScheduler(handlers),
		broadcast: broadcast,
		done:      make(chan struct{}),
	}
	go reg.cleanupLoop()
	return reg
}

// CreateRoom opens a new room for the given variant and returns it.
func (reg *Registry) CreateRoom(variant string) (*Room, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	id := newRoomID()
	room := newRoom(id, variant, reg.games, reg.personas, reg.handlers, reg.scheduler,
		func(playerID string, payload any) { reg.broadcast(id, playerID, payload) },
		reg.removeRoom,
	)
	reg.rooms[id] = room
	logrus.WithFields(logrus.Fields{"room": id, "variant": variant}).Info("lobby: room created")
	return room, nil
}

// QuickJoin finds an open, unstarted room for variant with a free seat,
// or creates one, mirroring Lobby.QuickStart's resume/join/create order.
// A player already connected under playerID resumes outright; one whose
// displayName matches a disconnected seat in any room of this variant
// resumes by name (§4.F's join() algorithm, scenario S6), started or
// not — only once neither matches does this fall through to opening or
// joining a fresh table.
func (reg *Registry) QuickJoin(variant, playerID, displayName string) (*Room, error) {
	reg.mu.Lock()
	for _, room := range reg.rooms {
		room.mu.Lock()
		resuming := room.Variant == variant && room.connected[playerID]
		room.mu.Unlock()
		if resuming {
			reg.mu.Unlock()
			return room, nil
		}
	}
	for _, room := range reg.rooms {
		if room.Variant == variant && room.HasDisconnectedSeatNamed(displayName) {
			reg.mu.Unlock()
			room.Join(playerID, displayName)
			return room, nil
		}
	}
	for _, room := range reg.rooms {
		room.mu.Lock()
		open := room.Variant == variant && !room.started && len(room.seats) < room.MaxSeats
		room.mu.Unlock()
		if open {
			reg.mu.Unlock()
			room.Join(playerID, displayName)
			return room, nil
		}
	}
	reg.mu.Unlock()

	room, err := reg.CreateRoom(variant)
	if err != nil {
		return nil, err
	}
	room.Join(playerID, displayName)
	return room, nil
}

// Get returns a room by id.
func (reg *Registry) Get(roomID string) (*Room, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	room, ok := reg.rooms[roomID]
	return room, ok
}

// List returns every live room id.
func (reg *Registry) List() []string {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	ids := make([]string, 0, len(reg.rooms))
	for id := range reg.rooms {
		ids = append(ids, id)
	}
	return ids
}

func (reg *Registry) removeRoom(roomID string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	if room, ok := reg.rooms[roomID]; ok {
		if !room.isEmpty() {
			return
		}
		delete(reg.rooms, roomID)
		logrus.WithFields(logrus.Fields{
			"room": roomID,
			"age":  humanize.Time(room.CreatedAt),
		}).Info("lobby: room removed (idle)")
	}
}

func (reg *Registry) cleanupLoop() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			reg.sweepIdle()
		case <-reg.done:
			return
		}
	}
}

func (reg *Registry) sweepIdle() {
	reg.mu.RLock()
	var idle []string
	for id, room := range reg.rooms {
		if room.isEmpty() {
			idle = append(idle, id)
		}
	}
	reg.mu.RUnlock()
	for _, id := range idle {
		reg.removeRoom(id)
	}
}

// Stop shuts down housekeeping and every room's bot scheduler.
func (reg *Registry) Stop() {
	reg.stopOnce.Do(func() {
		close(reg.done)
		reg.mu.Lock()
		defer reg.mu.Unlock()
		reg.scheduler.CancelAll()
	})
}
