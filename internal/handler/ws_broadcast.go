package handler

// BroadcastGameEvent implements service.Broadcaster using the WebSocket hub.
func (h *Hub) BroadcastGameEvent(sessionID string, eventType string, data any) {
	h.BroadcastToSession(sessionID, WSEvent{
		Type:      eventType,
		SessionID: sessionID,
		Data:      data,
	})
}
