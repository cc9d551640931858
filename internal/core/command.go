package core

// CommandKind describes what the client wants to do.
type CommandKind int

const (
	// CommandSetName updates the client's display name.
	CommandSetName CommandKind = iota
	// CommandJoinRoom requests membership in a room.
	CommandJoinRoom
	// CommandLeaveRoom removes the client from a room.
	CommandLeaveRoom
	// CommandListRooms requests the current room catalog.
	CommandListRooms
)

// Command represents an action requested by a client.
type Command struct {
	Kind CommandKind
	Room string
	Name string
}
