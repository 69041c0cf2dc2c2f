// Package transport is the websocket gateway: it upgrades HTTP
// connections, decodes the JSON client envelope catalog (§6.1), and
// drives package lobby on the caller's behalf. It is the structural
// descendant of the teacher's gateway.go, with a JSON envelope in place
// of the teacher's generated protobuf (protoc is not invocable in this
// build; the wire format itself is not spec-mandated).
package transport

import "henhur-arena/gameplay"

// ClientMessage is the inbound envelope every websocket frame decodes
// into. Type selects which fields are meaningful.
type ClientMessage struct {
	Type    string          `json:"type"`
	RoomID  string          `json:"roomId,omitempty"`
	Variant string          `json:"variant,omitempty"`
	Title   string          `json:"title,omitempty"`
	Name    string          `json:"name,omitempty"`
	Options map[string]any  `json:"options,omitempty"`
	Action  *gameplay.Action `json:"action,omitempty"`
}

const (
	ClientQuickJoin      = "quick_join"
	ClientJoinRoom       = "join_room"
	ClientLeaveRoom      = "leave_room"
	ClientUpdateSettings = "update_settings"
	ClientStartGame      = "start_game"
	ClientSubmitAction   = "submit_action"
)

// ServerMessage is the outbound envelope. At most one of Payload/Error is
// populated; a "joined" message carries neither.
type ServerMessage struct {
	Type    string `json:"type"`
	RoomID  string `json:"roomId,omitempty"`
	Payload any    `json:"payload,omitempty"`
	Error   string `json:"error,omitempty"`
}

const (
	ServerState = "state"
	ServerError = "error"
	ServerJoined = "joined"
)
