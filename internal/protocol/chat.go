package protocol

// relayChat fans a chat message out to the sender's whole room, sender
// included — the client renders its own message off the echo rather than
// optimistically. Nothing is persisted.
func (h *Handler) relayChat(connID, text string) {
	e, ok := h.registry.Get(connID)
	if !ok || e.RoomID == "" {
		return
	}
	h.broadcaster.ToRoom(e.RoomID, ChatMessage{
		Type:    EventChatMessage,
		UserID:  connID,
		Message: text,
	})
}
