package core

import (
	"testing"
)

func newTestHub() *Hub {
	return NewHub(NewRoomStore(3), nil)
}

func registered(h *Hub, id, name string) *Client {
	c := NewClient(id, name)
	h.Register(c)
	return c
}

func TestHubJoinSequenceAndStartSignal(t *testing.T) {
	hub := newTestHub()

	alice := registered(hub, "a", "alice")
	bob := registered(hub, "b", "bob")
	carol := registered(hub, "c", "carol")

	hub.JoinRoom(alice, "r1", "alice")
	ev := mustEvent(t, alice.Events, EventPlayerJoined)
	if !sameIDs(ev.Members, "a") {
		t.Fatalf("after first join, members = %v", memberIDs(ev.Members))
	}

	hub.JoinRoom(bob, "r1", "bob")
	ev = mustEvent(t, bob.Events, EventPlayerJoined)
	if !sameIDs(ev.Members, "a", "b") {
		t.Fatalf("after second join, members = %v", memberIDs(ev.Members))
	}
	noEvent(t, bob.Events, EventStartGame)

	hub.JoinRoom(carol, "r1", "carol")
	for _, c := range []*Client{alice, bob, carol} {
		ev = mustEvent(t, c.Events, EventPlayerJoined)
		if !sameIDs(ev.Members, "a", "b", "c") {
			t.Fatalf("after third join, %s saw members %v", c.ID, memberIDs(ev.Members))
		}
		mustEvent(t, c.Events, EventStartGame)
	}
	noEvent(t, alice.Events, EventStartGame)
}

func TestHubFourthJoinerRejected(t *testing.T) {
	hub := newTestHub()

	for _, id := range []string{"a", "b", "c"} {
		hub.JoinRoom(registered(hub, id, id), "r1", id)
	}
	dave := registered(hub, "d", "dave")

	hub.JoinRoom(dave, "r1", "dave")
	mustEvent(t, dave.Events, EventRoomFull)
	noEvent(t, dave.Events, EventPlayerJoined)

	if got := len(hub.Store().MembersOf("r1")); got != 3 {
		t.Fatalf("rejected join mutated the room: %d members", got)
	}
}

func TestHubRepeatJoinReplaysState(t *testing.T) {
	hub := newTestHub()

	alice := registered(hub, "a", "alice")
	bob := registered(hub, "b", "bob")
	hub.JoinRoom(alice, "r1", "alice")
	hub.JoinRoom(bob, "r1", "bob")
	drain(alice.Events)
	drain(bob.Events)

	hub.JoinRoom(alice, "r1", "alice")

	ev := mustEvent(t, alice.Events, EventPlayerJoined)
	if !sameIDs(ev.Members, "a", "b") {
		t.Fatalf("repeat join changed membership: %v", memberIDs(ev.Members))
	}
	// No mutation happened, so no catalog broadcast and nothing for bob.
	noEvent(t, bob.Events, EventPlayerJoined)
	noEvent(t, alice.Events, EventRoomsUpdate)
}

func TestHubDisconnectCleansRooms(t *testing.T) {
	hub := newTestHub()

	alice := registered(hub, "a", "alice")
	bob := registered(hub, "b", "bob")
	observer := registered(hub, "o", "observer")

	hub.JoinRoom(alice, "r2", "alice")
	hub.JoinRoom(bob, "r2", "bob")
	drain(bob.Events)
	drain(observer.Events)

	hub.Unregister(alice)

	ev := mustEvent(t, bob.Events, EventPlayerJoined)
	if !sameIDs(ev.Members, "b") {
		t.Fatalf("after disconnect, members = %v", memberIDs(ev.Members))
	}
	catalog := mustEvent(t, observer.Events, EventRoomsUpdate)
	if members := catalog.Rooms["r2"]; !sameIDs(members, "b") {
		t.Fatalf("catalog after disconnect: %v", memberIDs(members))
	}

	hub.Unregister(bob)

	catalog = mustEvent(t, observer.Events, EventRoomsUpdate)
	if _, ok := catalog.Rooms["r2"]; ok {
		t.Fatal("emptied room still present in the catalog")
	}
}

func TestHubUnregisterIsIdempotent(t *testing.T) {
	hub := newTestHub()

	alice := registered(hub, "a", "alice")
	observer := registered(hub, "o", "observer")
	hub.JoinRoom(alice, "r1", "alice")
	drain(observer.Events)

	hub.Unregister(alice)
	mustEvent(t, observer.Events, EventRoomsUpdate)

	hub.Unregister(alice)
	noEvent(t, observer.Events, EventRoomsUpdate)
}

func TestHubUnregisterWithoutRoomsIsQuiet(t *testing.T) {
	hub := newTestHub()

	loner := registered(hub, "l", "loner")
	observer := registered(hub, "o", "observer")

	hub.Unregister(loner)
	noEvent(t, observer.Events, EventRoomsUpdate)
}

func TestHubListRoomsIsPrivate(t *testing.T) {
	hub := newTestHub()

	alice := registered(hub, "a", "alice")
	bob := registered(hub, "b", "bob")
	hub.JoinRoom(alice, "r1", "alice")
	drain(alice.Events)
	drain(bob.Events)

	hub.Handle(bob, &Command{Kind: CommandListRooms})

	catalog := mustEvent(t, bob.Events, EventRoomsUpdate)
	if members := catalog.Rooms["r1"]; !sameIDs(members, "a") {
		t.Fatalf("catalog = %v", catalog.Rooms)
	}
	noEvent(t, alice.Events, EventRoomsUpdate)
}

func TestHubLeaveRoom(t *testing.T) {
	hub := newTestHub()

	alice := registered(hub, "a", "alice")
	bob := registered(hub, "b", "bob")
	hub.JoinRoom(alice, "r1", "alice")
	hub.JoinRoom(bob, "r1", "bob")
	drain(alice.Events)
	drain(bob.Events)

	hub.Handle(alice, &Command{Kind: CommandLeaveRoom, Room: "r1"})

	ev := mustEvent(t, bob.Events, EventPlayerJoined)
	if !sameIDs(ev.Members, "b") {
		t.Fatalf("after leave, members = %v", memberIDs(ev.Members))
	}

	// Leaving again is a no-op with no broadcasts.
	drain(bob.Events)
	hub.Handle(alice, &Command{Kind: CommandLeaveRoom, Room: "r1"})
	noEvent(t, bob.Events, EventRoomsUpdate)
}

func TestHubRenameKeepsJoinTimeSnapshot(t *testing.T) {
	hub := newTestHub()

	alice := registered(hub, "a", "alice")
	hub.JoinRoom(alice, "r1", "alice")
	hub.Handle(alice, &Command{Kind: CommandSetName, Name: "alicia"})
	hub.JoinRoom(alice, "r2", "")

	if got := hub.Store().MembersOf("r1")[0].Name; got != "alice" {
		t.Fatalf("rename rewrote an existing member record: %s", got)
	}
	if got := hub.Store().MembersOf("r2")[0].Name; got != "alicia" {
		t.Fatalf("join after rename should use the new name: %s", got)
	}
}
