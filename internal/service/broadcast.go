package service

// Event types pushed to subscribers of a session.
const (
	EventStateChanged   = "state_changed"
	EventTurnResolved   = "turn_resolved"
	EventAwaitingChoice = "event_awaiting_choice"
	EventGameOver       = "game_over"
)

// Broadcaster sends real-time events to connected clients.
// Implemented by the WebSocket hub.
type Broadcaster interface {
	BroadcastGameEvent(sessionID string, eventType string, data any)
}

// NoopBroadcaster is a no-op implementation for testing or when WS is disabled.
type NoopBroadcaster struct{}

func (NoopBroadcaster) BroadcastGameEvent(string, string, any) {}
