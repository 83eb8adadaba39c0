package protocol

import (
	"encoding/json"
	"log"

	"github.com/xingzihai/roomsync/internal/registry"
	"github.com/xingzihai/roomsync/internal/room"
)

// Broadcaster delivers events to room members. Implemented by hub.Hub;
// tests substitute a recorder.
type Broadcaster interface {
	ToRoom(roomID string, v interface{})
	ToRoomExceptSender(roomID, senderID string, v interface{})
	ToConn(connID string, v interface{})
}

// Handler is the room-sync state machine. It owns the join, transport and
// disconnect transitions; everything it touches is injected at construction.
type Handler struct {
	registry    *registry.Registry
	rooms       *room.Store
	broadcaster Broadcaster
}

func NewHandler(reg *registry.Registry, rooms *room.Store, b Broadcaster) *Handler {
	return &Handler{registry: reg, rooms: rooms, broadcaster: b}
}

// HandleConnect registers a fresh, not-yet-joined connection.
func (h *Handler) HandleConnect(connID string) {
	h.registry.Register(connID)
	log.Printf("client connected: %s", connID)
}

// HandleMessage dispatches one inbound client event. Malformed or unknown
// events are dropped; a misbehaving client never takes the server down.
func (h *Handler) HandleMessage(connID string, data []byte) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		log.Printf("invalid message from %s: %v", connID, err)
		return
	}

	switch msg.Type {
	case EventJoinRoom:
		h.join(connID, msg.RoomID, msg.IsAdmin)
	case EventPlayMusic:
		h.play(connID, msg.CurrentTime, msg.Track)
	case EventPauseMusic:
		h.pause(connID, msg.CurrentTime)
	case EventSeekMusic:
		h.seek(connID, msg.CurrentTime)
	case EventChatMessage:
		h.relayChat(connID, msg.Message)
	default:
		log.Printf("unknown event %q from %s", msg.Type, connID)
	}
}

func (h *Handler) join(connID, roomID string, wantsAdmin bool) {
	if roomID == "" {
		return
	}
	h.registry.SetRoom(connID, roomID, wantsAdmin)
	h.rooms.Ensure(roomID)

	if wantsAdmin {
		// Last claim wins; a previous admin is superseded without notice.
		h.rooms.ClaimAdmin(roomID, connID)
	} else if state, ok := h.rooms.GetState(roomID); ok {
		// One-shot catch-up so a late joiner's player matches the room.
		h.broadcaster.ToConn(connID, SyncMusic{
			Type:        EventSyncMusic,
			Playing:     state.Playing,
			CurrentTime: state.CurrentTime,
			Track:       state.Track,
		})
	}

	h.broadcaster.ToRoom(roomID, UserJoined{Type: EventUserJoined, UserID: connID, IsAdmin: wantsAdmin})
	log.Printf("client %s joined room %s (admin=%v)", connID, roomID, wantsAdmin)
}

// adminRoom returns the sender's room if the sender is that room's current
// admin. Everything else means the transport event is silently dropped.
func (h *Handler) adminRoom(connID string) (string, bool) {
	e, ok := h.registry.Get(connID)
	if !ok || e.RoomID == "" || !e.IsAdmin {
		return "", false
	}
	adminID, ok := h.rooms.AdminID(e.RoomID)
	if !ok || adminID != connID {
		return "", false
	}
	return e.RoomID, true
}

func (h *Handler) play(connID string, currentTime float64, track *string) {
	roomID, ok := h.adminRoom(connID)
	if !ok {
		return
	}
	h.rooms.ApplyPlay(roomID, currentTime, track)
	h.broadcaster.ToRoomExceptSender(roomID, connID, Transport{
		Type:        EventPlayMusic,
		CurrentTime: currentTime,
		Track:       track,
	})
}

func (h *Handler) pause(connID string, currentTime float64) {
	roomID, ok := h.adminRoom(connID)
	if !ok {
		return
	}
	h.rooms.ApplyPause(roomID, currentTime)
	h.broadcaster.ToRoomExceptSender(roomID, connID, Transport{
		Type:        EventPauseMusic,
		CurrentTime: currentTime,
	})
}

func (h *Handler) seek(connID string, currentTime float64) {
	roomID, ok := h.adminRoom(connID)
	if !ok {
		return
	}
	h.rooms.ApplySeek(roomID, currentTime)
	h.broadcaster.ToRoomExceptSender(roomID, connID, Transport{
		Type:        EventSeekMusic,
		CurrentTime: currentTime,
	})
}

// HandleDisconnect tears the connection down. The registry entry goes first
// so the userLeft broadcast only reaches the remaining members.
func (h *Handler) HandleDisconnect(connID string) {
	e, ok := h.registry.Get(connID)
	h.registry.Remove(connID)
	if !ok || e.RoomID == "" {
		log.Printf("client disconnected: %s", connID)
		return
	}

	h.broadcaster.ToRoom(e.RoomID, UserLeft{Type: EventUserLeft, UserID: connID})
	// Identity-guarded: a no-op unless this connection still holds the slot.
	h.rooms.ClearAdminIfMatches(e.RoomID, connID)
	log.Printf("client %s disconnected from room %s", connID, e.RoomID)
}
