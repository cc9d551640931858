package core

// EventKind is a notification the coordinator emits to clients.
type EventKind int

const (
	// EventPlayerJoined carries a room's full member list after any
	// membership change in that room.
	EventPlayerJoined EventKind = iota
	// EventRoomFull tells a rejected joiner the room is at capacity.
	EventRoomFull
	// EventStartGame tells room members the room just reached capacity.
	EventStartGame
	// EventRoomsUpdate carries the full room catalog.
	EventRoomsUpdate
)

// Event is sent to clients to describe what happened in the system.
// Members is set for EventPlayerJoined, Rooms for EventRoomsUpdate.
type Event struct {
	Kind    EventKind
	Room    string
	Members []Member
	Rooms   map[string][]Member
}
