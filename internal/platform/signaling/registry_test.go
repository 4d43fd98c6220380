package signaling

import (
	"testing"
	"time"
)

func newTestPeer(id string) *Peer {
	return &Peer{
		ID:   id,
		Send: make(chan []byte, 256),
	}
}

func TestRegistry_JoinCreatesRoom(t *testing.T) {
	reg := NewRegistry()
	peer := newTestPeer("peer-1")

	reg.Join("room-1", peer)

	if reg.RoomSize("room-1") != 1 {
		t.Fatalf("expected 1 peer in room-1, got %d", reg.RoomSize("room-1"))
	}
	if reg.RoomCount() != 1 {
		t.Fatalf("expected 1 room, got %d", reg.RoomCount())
	}
}

func TestRegistry_LeaveRemovesEmptyRoom(t *testing.T) {
	reg := NewRegistry()
	peer := newTestPeer("peer-1")

	reg.Join("room-1", peer)
	reg.Leave("room-1", peer)

	if reg.RoomSize("room-1") != 0 {
		t.Fatalf("expected 0 peers, got %d", reg.RoomSize("room-1"))
	}
	if reg.RoomCount() != 0 {
		t.Fatalf("expected empty room to be deleted, got %d rooms", reg.RoomCount())
	}
}

func TestRegistry_LeaveIsIdempotent(t *testing.T) {
	reg := NewRegistry()
	peer := newTestPeer("peer-1")

	reg.Join("room-1", peer)
	reg.Leave("room-1", peer)

	// A second leave must not panic (the Send channel is already closed)
	// and must not disturb the registry.
	reg.Leave("room-1", peer)

	if reg.RoomCount() != 0 {
		t.Fatalf("expected 0 rooms, got %d", reg.RoomCount())
	}
}

func TestRegistry_LeaveUnknownRoomIsNoOp(t *testing.T) {
	reg := NewRegistry()
	peer := newTestPeer("peer-1")

	reg.Leave("no-such-room", peer)

	select {
	case _, ok := <-peer.Send:
		if !ok {
			t.Fatal("Send channel should not be closed by leaving an unknown room")
		}
	default:
	}
}

func TestRegistry_BroadcastExcludesSender(t *testing.T) {
	reg := NewRegistry()
	sender := newTestPeer("sender")
	receiver := newTestPeer("receiver")
	other := newTestPeer("other")

	reg.Join("room-1", sender)
	reg.Join("room-1", receiver)
	reg.Join("room-1", other)

	payload := []byte(`{"type":"offer","sdp":"v=0"}`)
	reg.Broadcast("room-1", payload, sender)

	for _, p := range []*Peer{receiver, other} {
		select {
		case got := <-p.Send:
			if string(got) != string(payload) {
				t.Errorf("peer %s: expected %s, got %s", p.ID, payload, got)
			}
		case <-time.After(time.Second):
			t.Fatalf("peer %s: expected to receive broadcast", p.ID)
		}
	}

	select {
	case <-sender.Send:
		t.Fatal("sender must not receive its own broadcast")
	default:
	}
}

func TestRegistry_BroadcastToEmptyRoom(t *testing.T) {
	reg := NewRegistry()
	// Must not panic.
	reg.Broadcast("no-such-room", []byte(`{}`), nil)
}

func TestRegistry_BroadcastIsolatedPerRoom(t *testing.T) {
	reg := NewRegistry()
	a := newTestPeer("a")
	b := newTestPeer("b")

	reg.Join("room-1", a)
	reg.Join("room-2", b)

	reg.Broadcast("room-1", []byte(`{"type":"candidate"}`), nil)

	select {
	case <-b.Send:
		t.Fatal("peer in another room must not receive the broadcast")
	default:
	}

	select {
	case <-a.Send:
	case <-time.After(time.Second):
		t.Fatal("peer in room-1 should receive the broadcast")
	}
}

func TestRegistry_BroadcastSkipsFullBuffer(t *testing.T) {
	reg := NewRegistry()
	sender := newTestPeer("sender")
	slow := &Peer{ID: "slow", Send: make(chan []byte, 1)}
	fast := newTestPeer("fast")

	reg.Join("room-1", sender)
	reg.Join("room-1", slow)
	reg.Join("room-1", fast)

	// Fill the slow peer's buffer.
	slow.Send <- []byte(`{"seq":0}`)

	reg.Broadcast("room-1", []byte(`{"seq":1}`), sender)

	// The fast peer still gets the message even though slow's buffer is full.
	select {
	case <-fast.Send:
	case <-time.After(time.Second):
		t.Fatal("fast peer should receive the broadcast despite a slow peer")
	}
}

func TestRegistry_LeaveAfterBroadcastCleansUp(t *testing.T) {
	reg := NewRegistry()
	a := newTestPeer("a")
	b := newTestPeer("b")

	reg.Join("room-1", a)
	reg.Join("room-1", b)
	reg.Leave("room-1", a)

	if reg.RoomSize("room-1") != 1 {
		t.Fatalf("expected 1 peer after leave, got %d", reg.RoomSize("room-1"))
	}

	reg.Broadcast("room-1", []byte(`{"type":"bye"}`), nil)

	select {
	case <-b.Send:
	case <-time.After(time.Second):
		t.Fatal("remaining peer should still receive broadcasts")
	}
}
