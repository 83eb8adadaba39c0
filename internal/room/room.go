package room

import "sync"

// State is the authoritative playback state held per room. Track is nil when
// no track has been started; CurrentTime is meaningless in that case.
type State struct {
	Playing     bool    `json:"playing"`
	CurrentTime float64 `json:"currentTime"`
	Track       *string `json:"track"`
}

// Room pairs the current admin connection with the playback state. An empty
// AdminID means no admin is currently present.
type Room struct {
	AdminID string
	State   State
}

// Store maps room IDs to rooms. Rooms are created lazily on first join and
// never deleted, even at zero membership. Mutations on absent rooms are
// silent no-ops so a stale event cannot crash the server.
type Store struct {
	mu    sync.RWMutex
	rooms map[string]*Room
}

func NewStore() *Store {
	return &Store{rooms: make(map[string]*Room)}
}

// Ensure returns the room for roomID, creating it with no admin and stopped
// playback if it does not exist yet. Idempotent.
func (s *Store) Ensure(roomID string) *Room {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, exists := s.rooms[roomID]
	if !exists {
		r = &Room{}
		s.rooms[roomID] = r
	}
	return r
}

// ClaimAdmin unconditionally records connID as the room's admin. The latest
// claimant wins; any previous admin is silently superseded.
func (s *Store) ClaimAdmin(roomID, connID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.rooms[roomID]; ok {
		r.AdminID = connID
	}
}

// ClearAdminIfMatches clears the admin slot only if it still belongs to
// connID, so a disconnecting former admin cannot clobber a newer claim.
func (s *Store) ClearAdminIfMatches(roomID, connID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.rooms[roomID]; ok && r.AdminID == connID {
		r.AdminID = ""
	}
}

// AdminID returns the room's current admin connection ID, empty if none.
func (s *Store) AdminID(roomID string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.rooms[roomID]
	if !ok {
		return "", false
	}
	return r.AdminID, true
}

func (s *Store) ApplyPlay(roomID string, currentTime float64, track *string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.rooms[roomID]; ok {
		r.State = State{Playing: true, CurrentTime: currentTime, Track: track}
	}
}

func (s *Store) ApplyPause(roomID string, currentTime float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.rooms[roomID]; ok {
		r.State.Playing = false
		r.State.CurrentTime = currentTime
	}
}

// ApplySeek moves the playhead without touching the playing flag.
func (s *Store) ApplySeek(roomID string, currentTime float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.rooms[roomID]; ok {
		r.State.CurrentTime = currentTime
	}
}

func (s *Store) GetState(roomID string) (State, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.rooms[roomID]
	if !ok {
		return State{}, false
	}
	return r.State, true
}

func (s *Store) RoomCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rooms)
}
