// Package signaling relays WebRTC signaling messages between participants of
// a telemedicine room. Peers join a room, exchange opaque payloads (SDP
// offers/answers, ICE candidates), and leave; the relay never inspects the
// message contents.
package signaling

import (
	"sync"
)

// Conn abstracts a WebSocket connection for testability.
type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Peer represents a single participant connection in a room.
type Peer struct {
	ID     string
	RoomID string
	Send   chan []byte
	conn   Conn
}

// Registry is the central room manager. Each room holds the set of currently
// connected peers. All operations are thread-safe via sync.RWMutex.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]map[*Peer]struct{} // room id -> set of peers
}

// NewRegistry creates a Registry ready to manage signaling rooms.
func NewRegistry() *Registry {
	return &Registry{
		rooms: make(map[string]map[*Peer]struct{}),
	}
}

// Join adds a peer to a room, creating the room if it does not exist yet.
func (r *Registry) Join(roomID string, peer *Peer) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.rooms[roomID] == nil {
		r.rooms[roomID] = make(map[*Peer]struct{})
	}
	r.rooms[roomID][peer] = struct{}{}
	peer.RoomID = roomID
}

// Leave removes a peer from a room and closes its Send channel. Leaving twice,
// or leaving a room the peer never joined, is a no-op. Empty rooms are removed
// from the registry.
func (r *Registry) Leave(roomID string, peer *Peer) {
	r.mu.Lock()
	defer r.mu.Unlock()

	peers, ok := r.rooms[roomID]
	if !ok {
		return
	}
	if _, member := peers[peer]; !member {
		return
	}

	delete(peers, peer)
	if len(peers) == 0 {
		delete(r.rooms, roomID)
	}
	close(peer.Send)
}

// Broadcast delivers data to every peer in the room except the sender.
// Delivery is best-effort and independent per recipient: a peer whose buffer
// is full is skipped so it cannot stall the others. Broadcasting to an
// unknown room is a no-op.
func (r *Registry) Broadcast(roomID string, data []byte, sender *Peer) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	peers, ok := r.rooms[roomID]
	if !ok {
		return
	}

	for peer := range peers {
		if peer == sender {
			continue
		}
		select {
		case peer.Send <- data:
		default:
			// Peer buffer full; skip to avoid blocking.
		}
	}
}

// RoomSize returns the number of peers currently in a room.
func (r *Registry) RoomSize(roomID string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms[roomID])
}

// RoomCount returns the number of rooms with at least one peer.
func (r *Registry) RoomCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms)
}
