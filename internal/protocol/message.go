package protocol

// Event names shared with the browser client.
const (
	EventJoinRoom    = "joinRoom"
	EventPlayMusic   = "playMusic"
	EventPauseMusic  = "pauseMusic"
	EventSeekMusic   = "seekMusic"
	EventChatMessage = "chatMessage"
	EventSyncMusic   = "syncMusic"
	EventUserJoined  = "userJoined"
	EventUserLeft    = "userLeft"
)

// Message is the inbound envelope. Only the fields relevant to Type are set.
type Message struct {
	Type        string  `json:"type"`
	RoomID      string  `json:"roomId,omitempty"`
	IsAdmin     bool    `json:"isAdmin,omitempty"`
	CurrentTime float64 `json:"currentTime,omitempty"`
	Track       *string `json:"track,omitempty"`
	Message     string  `json:"message,omitempty"`
}

// SyncMusic is the one-time catch-up snapshot unicast to a joining member.
type SyncMusic struct {
	Type        string  `json:"type"`
	Playing     bool    `json:"playing"`
	CurrentTime float64 `json:"currentTime"`
	Track       *string `json:"track"`
}

// Transport mirrors an admin play/pause/seek out to the rest of the room.
// Track rides along only on play.
type Transport struct {
	Type        string  `json:"type"`
	CurrentTime float64 `json:"currentTime"`
	Track       *string `json:"track,omitempty"`
}

type UserJoined struct {
	Type    string `json:"type"`
	UserID  string `json:"userId"`
	IsAdmin bool   `json:"isAdmin"`
}

type UserLeft struct {
	Type   string `json:"type"`
	UserID string `json:"userId"`
}

type ChatMessage struct {
	Type    string `json:"type"`
	UserID  string `json:"userId"`
	Message string `json:"message"`
}
