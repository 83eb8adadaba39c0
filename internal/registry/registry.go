package registry

import "sync"

// Entry records which room a connection belongs to and whether it joined
// as that room's admin. RoomID is empty until the connection joins.
type Entry struct {
	RoomID  string
	IsAdmin bool
}

// Registry tracks live connections. Operations on unknown connection IDs
// are no-ops: a disconnect can race other handlers for the same connection.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

func New() *Registry {
	return &Registry{entries: make(map[string]Entry)}
}

func (r *Registry) Register(connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.entries[connID]; !exists {
		r.entries[connID] = Entry{}
	}
}

func (r *Registry) SetRoom(connID, roomID string, isAdmin bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.entries[connID]; !exists {
		return
	}
	r.entries[connID] = Entry{RoomID: roomID, IsAdmin: isAdmin}
}

func (r *Registry) Get(connID string) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[connID]
	return e, ok
}

func (r *Registry) Remove(connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, connID)
}

// Members returns the IDs of all connections currently joined to roomID.
func (r *Registry) Members(roomID string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var ids []string
	for id, e := range r.entries {
		if e.RoomID == roomID && roomID != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
