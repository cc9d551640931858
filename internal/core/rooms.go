package core

import "sync"

// DefaultRoomCapacity is the member count at which a room fills and the
// start signal fires.
const DefaultRoomCapacity = 3

// Member is a (connection, display name) pair recorded at join time.
// A later rename does not rewrite member records already in a room.
type Member struct {
	ID   string
	Name string
}

// JoinStatus classifies the outcome of a join attempt.
type JoinStatus int

const (
	// JoinAccepted means the member was appended to the room.
	JoinAccepted JoinStatus = iota
	// JoinAlreadyMember means the connection was already in the room;
	// nothing changed.
	JoinAlreadyMember
	// JoinRoomFull means the room is at capacity; nothing changed.
	JoinRoomFull
)

// JoinResult reports a join outcome together with the room's member list.
// Members is nil only when Status is JoinRoomFull. Filled is true when this
// join brought the room exactly to capacity.
type JoinResult struct {
	Status  JoinStatus
	Members []Member
	Filled  bool
}

// RoomChange records the state of one room after a member removal.
// An empty Members slice means the room was deleted.
type RoomChange struct {
	Room    string
	Members []Member
}

// RoomStore holds every room and its ordered member list. Rooms are created
// on first join and deleted when the last member leaves; an empty room is
// never stored. All mutations are serialized by the store's mutex, so a
// capacity check and the append it guards are atomic as a unit.
type RoomStore struct {
	mu       sync.RWMutex
	capacity int
	rooms    map[string][]Member
	byConn   map[string]map[string]struct{}
}

// NewRoomStore constructs an empty store. A non-positive capacity falls
// back to DefaultRoomCapacity.
func NewRoomStore(capacity int) *RoomStore {
	if capacity <= 0 {
		capacity = DefaultRoomCapacity
	}
	return &RoomStore{
		capacity: capacity,
		rooms:    make(map[string][]Member),
		byConn:   make(map[string]map[string]struct{}),
	}
}

// Capacity returns the member count at which rooms fill.
func (s *RoomStore) Capacity() int {
	return s.capacity
}

// Join appends the connection to the room, creating the room if absent.
// Room identifiers are opaque case-sensitive strings. A repeat join by the
// same connection is a no-op that reports the current member list. A join
// against a full room mutates nothing.
func (s *RoomStore) Join(roomID, connID, name string) JoinResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	members := s.rooms[roomID]
	if _, ok := s.byConn[connID][roomID]; ok {
		return JoinResult{Status: JoinAlreadyMember, Members: copyMembers(members)}
	}
	if len(members) >= s.capacity {
		return JoinResult{Status: JoinRoomFull}
	}

	members = append(members, Member{ID: connID, Name: name})
	s.rooms[roomID] = members
	if s.byConn[connID] == nil {
		s.byConn[connID] = make(map[string]struct{})
	}
	s.byConn[connID][roomID] = struct{}{}

	return JoinResult{
		Status:  JoinAccepted,
		Members: copyMembers(members),
		Filled:  len(members) == s.capacity,
	}
}

// Leave removes the connection from the room. Removing a non-member, or
// naming an unknown room, is a no-op reported by the second return value.
func (s *RoomStore) Leave(roomID, connID string) (RoomChange, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.removeMember(roomID, connID)
}

// RemoveConn removes the connection from every room it occupies, using the
// reverse index, and returns one change record per affected room. A
// connection that joined nothing yields no changes.
func (s *RoomStore) RemoveConn(connID string) []RoomChange {
	s.mu.Lock()
	defer s.mu.Unlock()

	roomIDs := s.byConn[connID]
	if len(roomIDs) == 0 {
		return nil
	}

	changes := make([]RoomChange, 0, len(roomIDs))
	for roomID := range roomIDs {
		if change, ok := s.removeMember(roomID, connID); ok {
			changes = append(changes, change)
		}
	}
	return changes
}

// MembersOf returns a copy of the room's ordered member list, empty if the
// room does not exist.
func (s *RoomStore) MembersOf(roomID string) []Member {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return copyMembers(s.rooms[roomID])
}

// Snapshot returns a deep copy of the full room catalog.
func (s *RoomStore) Snapshot() map[string][]Member {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make(map[string][]Member, len(s.rooms))
	for roomID, members := range s.rooms {
		snapshot[roomID] = copyMembers(members)
	}
	return snapshot
}

// removeMember is the single removal path: it drops the member, maintains
// the reverse index, and deletes the room when it empties. Caller holds the
// write lock.
func (s *RoomStore) removeMember(roomID, connID string) (RoomChange, bool) {
	if _, ok := s.byConn[connID][roomID]; !ok {
		return RoomChange{}, false
	}

	members := s.rooms[roomID]
	remaining := members[:0:0]
	for _, m := range members {
		if m.ID != connID {
			remaining = append(remaining, m)
		}
	}

	if len(remaining) == 0 {
		delete(s.rooms, roomID)
	} else {
		s.rooms[roomID] = remaining
	}

	delete(s.byConn[connID], roomID)
	if len(s.byConn[connID]) == 0 {
		delete(s.byConn, connID)
	}

	return RoomChange{Room: roomID, Members: copyMembers(remaining)}, true
}

func copyMembers(members []Member) []Member {
	out := make([]Member, len(members))
	copy(out, members)
	return out
}
