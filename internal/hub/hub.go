package hub

import (
	"log"
	"sync"

	"github.com/xingzihai/roomsync/internal/registry"
)

// Conn is one live client link the hub can deliver events to.
type Conn interface {
	ID() string
	Send(v interface{}) error
}

// Hub routes events to connections by room. Delivery is fire-and-forget:
// a failed send is logged and dropped, never retried or acknowledged.
type Hub struct {
	mu       sync.RWMutex
	conns    map[string]Conn
	registry *registry.Registry
}

func New(reg *registry.Registry) *Hub {
	return &Hub{
		conns:    make(map[string]Conn),
		registry: reg,
	}
}

func (h *Hub) Add(c Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[c.ID()] = c
}

func (h *Hub) Remove(connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, connID)
}

// ToRoom delivers v to every connection joined to roomID, sender included.
func (h *Hub) ToRoom(roomID string, v interface{}) {
	for _, id := range h.registry.Members(roomID) {
		h.send(id, v)
	}
}

// ToRoomExceptSender delivers v to every room member except senderID, which
// already holds the state it originated.
func (h *Hub) ToRoomExceptSender(roomID, senderID string, v interface{}) {
	for _, id := range h.registry.Members(roomID) {
		if id == senderID {
			continue
		}
		h.send(id, v)
	}
}

// ToConn delivers v to a single connection.
func (h *Hub) ToConn(connID string, v interface{}) {
	h.send(connID, v)
}

func (h *Hub) send(connID string, v interface{}) {
	h.mu.RLock()
	c, ok := h.conns[connID]
	h.mu.RUnlock()
	if !ok {
		return
	}
	if err := c.Send(v); err != nil {
		log.Printf("send to %s failed: %v", connID, err)
	}
}

// Stats reports the number of live connections the hub can deliver to.
func (h *Hub) Stats() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}
