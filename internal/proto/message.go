package proto

import "encoding/json"

// Inbound is the envelope for messages coming from the client.
type Inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

const (
	ProtocolVersion = 1

	InboundTypeHello     = "hello"
	InboundTypeJoinRoom  = "join-room"
	InboundTypeLeaveRoom = "leave-room"
	InboundTypeGetRooms  = "get-rooms"

	OutboundTypeEvent = "event"
	OutboundTypeError = "error"

	EventPlayerJoined = "player-joined"
	EventRoomFull     = "room-full"
	EventStartGame    = "start-game"
	EventRoomsUpdate  = "rooms-update"
)

// HelloData is sent by the client to set its display name.
type HelloData struct {
	Name string `json:"name"`
}

// JoinRoomData requests membership in a room.
type JoinRoomData struct {
	Name   string `json:"name"`
	RoomID string `json:"roomId"`
}

// LeaveRoomData requests removal from a room.
type LeaveRoomData struct {
	RoomID string `json:"roomId"`
}

// Member is one entry of a room's ordered member list.
type Member struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Outbound is the envelope for messages sent to the client.
type Outbound struct {
	Type  string `json:"type"`
	Event string `json:"event,omitempty"`
	Data  any    `json:"data,omitempty"`
	Error *Error `json:"error,omitempty"`
}

// Error describes a protocol-level error response.
type Error struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}
