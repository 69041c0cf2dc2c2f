package transport

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"henhur-arena/lobby"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

const (
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
	writeWait  = 10 * time.Second
)

// Connection is one websocket session. It joins at most one room at a
// time; reconnecting under a new Connection.ID is handled by Gateway
// looking up the previous session's seat via the displayName match the
// caller supplies on join (§4.G's reconnect-by-name).
type Connection struct {
	ID       string
	Conn     *websocket.Conn
	Send     chan []byte
	Gateway  *Gateway
	LastPing time.Time

	mu     sync.Mutex
	RoomID string
	Room   *lobby.Room
}

// Gateway owns every live websocket connection and the lobby registry
// that backs it.
type Gateway struct {
	mu          sync.RWMutex
	connections map[string]*Connection
	lobby       *lobby.Registry
	nextConnID  uint64
}

func New(lby *lobby.Registry) *Gateway {
	return &Gateway{
		connections: make(map[string]*Connection),
		lobby:       lby,
	}
}

// SetLobby binds the registry after construction, for the common
// startup ordering where the registry's broadcast callback is the
// gateway's own Broadcast method (main wires Gateway before Registry,
// then ties the two together here).
func (g *Gateway) SetLobby(lby *lobby.Registry) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.lobby = lby
}

func (g *Gateway) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logrus.WithError(err).Warn("transport: websocket upgrade failed")
		return
	}

	connID := fmt.Sprintf("conn-%s", uuid.NewString())
	c := &Connection{
		ID:       connID,
		Conn:     conn,
		Send:     make(chan []byte, 256),
		Gateway:  g,
		LastPing: time.Now(),
	}

	g.mu.Lock()
	g.connections[connID] = c
	atomic.AddUint64(&g.nextConnID, 1)
	g.mu.Unlock()

	logrus.WithField("conn", connID).Info("transport: client connected")

	go c.writePump()
	go c.readPump()
}

func (c *Connection) readPump() {
	defer func() {
		c.Gateway.removeConnection(c)
		if c.Room != nil {
			c.Room.Leave(c.ID)
		}
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(65536)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		c.LastPing = time.Now()
		return nil
	})

	for {
		_, data, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logrus.WithError(err).WithField("conn", c.ID).Warn("transport: read error")
			}
			return
		}
		c.handleMessage(data)
	}
}

func (c *Connection) handleMessage(data []byte) {
	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		c.sendError("invalid message format")
		return
	}

	switch msg.Type {
	case ClientQuickJoin:
		c.handleQuickJoin(msg)
	case ClientJoinRoom:
		c.handleJoinRoom(msg)
	case ClientLeaveRoom:
		c.handleLeaveRoom()
	case ClientUpdateSettings:
		c.handleUpdateSettings(msg)
	case ClientStartGame:
		c.handleStartGame()
	case ClientSubmitAction:
		c.handleSubmitAction(msg)
	default:
		c.sendError("unknown message type: " + msg.Type)
	}
}

func (c *Connection) handleQuickJoin(msg ClientMessage) {
	room, err := c.Gateway.lobbyRegistry().QuickJoin(msg.Variant, c.ID, msg.Name)
	if err != nil {
		c.sendError(err.Error())
		return
	}
	c.mu.Lock()
	c.Room, c.RoomID = room, room.ID
	c.mu.Unlock()
	c.send(ServerMessage{Type: ServerJoined, RoomID: room.ID})
}

func (g *Gateway) lobbyRegistry() *lobby.Registry {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.lobby
}

func (c *Connection) handleJoinRoom(msg ClientMessage) {
	room, ok := c.Gateway.lobbyRegistry().Get(msg.RoomID)
	if !ok {
		c.sendError("room not found")
		return
	}
	res := room.Join(c.ID, msg.Name)
	if !res.Success {
		c.sendError(res.Message)
		return
	}
	c.mu.Lock()
	c.Room, c.RoomID = room, room.ID
	c.mu.Unlock()
	c.send(ServerMessage{Type: ServerJoined, RoomID: room.ID})
}

func (c *Connection) handleLeaveRoom() {
	c.mu.Lock()
	room := c.Room
	c.Room, c.RoomID = nil, ""
	c.mu.Unlock()
	if room != nil {
		room.Leave(c.ID)
	}
}

func (c *Connection) handleUpdateSettings(msg ClientMessage) {
	room := c.currentRoom()
	if room == nil {
		c.sendError("not in a room")
		return
	}
	res := room.UpdateTitleAndOptions(c.ID, msg.Title, msg.Options)
	if !res.Success {
		c.sendError(res.Message)
	}
}

func (c *Connection) handleStartGame() {
	room := c.currentRoom()
	if room == nil {
		c.sendError("not in a room")
		return
	}
	room.FillWithBots()
	res := room.Start(c.ID)
	if !res.Success {
		c.sendError(res.Message)
	}
}

func (c *Connection) handleSubmitAction(msg ClientMessage) {
	room := c.currentRoom()
	if room == nil {
		c.sendError("not in a room")
		return
	}
	if msg.Action == nil {
		c.sendError("missing action")
		return
	}
	res := room.SubmitAction(c.ID, *msg.Action)
	if !res.Success {
		c.sendError(res.Message)
	}
}

func (c *Connection) currentRoom() *lobby.Room {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Room
}

func (c *Connection) sendError(msg string) {
	c.send(ServerMessage{Type: ServerError, Error: msg})
}

func (c *Connection) send(msg ServerMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		logrus.WithError(err).Error("transport: failed to marshal outbound message")
		return
	}
	select {
	case c.Send <- data:
	default:
		logrus.WithField("conn", c.ID).Warn("transport: send buffer full, dropping message")
	}
}

func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (g *Gateway) removeConnection(c *Connection) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.connections, c.ID)
	logrus.WithField("conn", c.ID).Info("transport: client disconnected")
}

// Broadcast implements the callback shape lobby.New expects: look up the
// connection for playerID and forward it the room's per-viewer payload.
func (g *Gateway) Broadcast(roomID, playerID string, payload any) {
	g.mu.RLock()
	c, ok := g.connections[playerID]
	g.mu.RUnlock()
	if !ok {
		return
	}
	c.send(ServerMessage{Type: ServerState, RoomID: roomID, Payload: payload})
}
