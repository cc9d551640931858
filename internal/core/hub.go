package core

import (
	"github.com/rs/zerolog"
)

// Hub is the room-membership coordinator. It tracks registered clients,
// applies join/leave/disconnect transitions against the RoomStore, and
// fans membership events out to the affected connections. Room mutations
// are atomic inside the store; broadcasts happen outside its lock from
// the snapshot each mutation returns.
type Hub struct {
	registry *Registry
	store    *RoomStore
	log      *zerolog.Logger
}

// NewHub constructs a hub around the given store. A nil logger disables
// logging, a nil store gets a default-capacity one; both keep tests light.
func NewHub(store *RoomStore, logger *zerolog.Logger) *Hub {
	if store == nil {
		store = NewRoomStore(0)
	}
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Hub{
		registry: NewRegistry(),
		store:    store,
		log:      logger,
	}
}

// Store exposes the room store for read-only inspection.
func (h *Hub) Store() *RoomStore {
	return h.store
}

// Register adds the client to the connection registry.
func (h *Hub) Register(c *Client) {
	h.registry.Add(c)
	h.log.Debug().Str("client_id", c.ID).Int("total", h.registry.Len()).Msg("client registered")
}

// Unregister removes the client and cleans up every room it occupied.
// It is idempotent: the cleanup runs exactly once per client, and a client
// that joined no rooms unregisters without side effects.
func (h *Hub) Unregister(c *Client) {
	if !h.registry.Remove(c.ID) {
		return
	}

	changes := h.store.RemoveConn(c.ID)
	for _, change := range changes {
		if len(change.Members) > 0 {
			h.toRoom(change.Room, &Event{
				Kind:    EventPlayerJoined,
				Room:    change.Room,
				Members: change.Members,
			})
		}
	}
	if len(changes) > 0 {
		h.broadcastCatalog()
	}

	h.log.Debug().Str("client_id", c.ID).Int("rooms_left", len(changes)).Msg("client unregistered")
}

// Handle applies a client command.
func (h *Hub) Handle(c *Client, cmd *Command) {
	switch cmd.Kind {
	case CommandSetName:
		h.SetName(c, cmd.Name)
	case CommandJoinRoom:
		h.JoinRoom(c, cmd.Room, cmd.Name)
	case CommandLeaveRoom:
		h.LeaveRoom(c, cmd.Room)
	case CommandListRooms:
		h.ListRooms(c)
	}
}

// SetName updates the client's display name. Member records in rooms the
// client already joined keep the name captured at join time.
func (h *Hub) SetName(c *Client, name string) {
	if name == "" {
		return
	}
	c.Name = name
}

// JoinRoom runs the join transition: an atomic capacity check and append
// in the store, then the resulting broadcasts. The joiner's room receives
// the updated member list, the whole server receives the catalog, and a
// join that fills the room additionally signals the game start. A repeat
// join is a no-op that replays the current list to the requester only.
func (h *Hub) JoinRoom(c *Client, roomID, name string) {
	if name == "" {
		name = c.Name
	}

	result := h.store.Join(roomID, c.ID, name)
	switch result.Status {
	case JoinRoomFull:
		h.toOne(c.ID, &Event{Kind: EventRoomFull, Room: roomID})
		h.log.Debug().Str("client_id", c.ID).Str("room", roomID).Msg("join rejected, room full")
		return
	case JoinAlreadyMember:
		h.toOne(c.ID, &Event{
			Kind:    EventPlayerJoined,
			Room:    roomID,
			Members: result.Members,
		})
		return
	}

	h.toRoom(roomID, &Event{
		Kind:    EventPlayerJoined,
		Room:    roomID,
		Members: result.Members,
	})
	if result.Filled {
		h.toRoom(roomID, &Event{Kind: EventStartGame, Room: roomID})
		h.log.Info().Str("room", roomID).Msg("room filled, game starting")
	}
	h.broadcastCatalog()

	h.log.Debug().Str("client_id", c.ID).Str("room", roomID).Int("members", len(result.Members)).Msg("client joined room")
}

// LeaveRoom removes the client from the room. Leaving a room the client is
// not in is a no-op.
func (h *Hub) LeaveRoom(c *Client, roomID string) {
	change, removed := h.store.Leave(roomID, c.ID)
	if !removed {
		return
	}

	if len(change.Members) > 0 {
		h.toRoom(roomID, &Event{
			Kind:    EventPlayerJoined,
			Room:    roomID,
			Members: change.Members,
		})
	}
	h.broadcastCatalog()

	h.log.Debug().Str("client_id", c.ID).Str("room", roomID).Msg("client left room")
}

// ListRooms sends the current catalog to the requester only.
func (h *Hub) ListRooms(c *Client) {
	h.toOne(c.ID, &Event{Kind: EventRoomsUpdate, Rooms: h.store.Snapshot()})
}

// toRoom delivers an event to the connections recorded as room members at
// dispatch time.
func (h *Hub) toRoom(roomID string, event *Event) {
	for _, m := range h.store.MembersOf(roomID) {
		h.toOne(m.ID, event)
	}
}

// toOne delivers an event to a single connection, no-op if it is gone.
func (h *Hub) toOne(connID string, event *Event) {
	c, ok := h.registry.Get(connID)
	if !ok {
		return
	}
	if !c.deliver(event) {
		h.log.Warn().Str("client_id", connID).Msg("event dropped, slow consumer")
	}
}

// toAll delivers an event to every registered connection.
func (h *Hub) toAll(event *Event) {
	for _, c := range h.registry.All() {
		if !c.deliver(event) {
			h.log.Warn().Str("client_id", c.ID).Msg("event dropped, slow consumer")
		}
	}
}

// broadcastCatalog pushes the catalog to everyone after a membership
// mutation. The snapshot is taken after the mutation committed, so the
// payload always reflects the store's newer state.
func (h *Hub) broadcastCatalog() {
	h.toAll(&Event{Kind: EventRoomsUpdate, Rooms: h.store.Snapshot()})
}
