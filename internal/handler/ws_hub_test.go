package handler

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/freeeve/zeitgeist/internal/model"
	"github.com/freeeve/zeitgeist/internal/service"
)

func newTestConn(playerID string) *WSConn {
	return &WSConn{
		conn:     nil, // no real connection for hub tests
		playerID: playerID,
		send:     make(chan []byte, 256),
	}
}

func readEvent(t *testing.T, c *WSConn) WSEvent {
	t.Helper()
	select {
	case msg := <-c.send:
		var event WSEvent
		if err := json.Unmarshal(msg, &event); err != nil {
			t.Fatalf("unmarshal event: %v", err)
		}
		return event
	case <-time.After(time.Second):
		t.Fatal("no event received")
	}
	return WSEvent{}
}

func TestHubRegisterUnregister(t *testing.T) {
	hub := NewHub()
	c := newTestConn("player-1")

	hub.Register(c)
	if hub.ConnectionCount() != 1 {
		t.Errorf("expected 1 connection, got %d", hub.ConnectionCount())
	}

	hub.Unregister(c)
	if hub.ConnectionCount() != 0 {
		t.Errorf("expected 0 connections, got %d", hub.ConnectionCount())
	}
}

func TestHubSubscribeUnsubscribe(t *testing.T) {
	hub := NewHub()
	c := newTestConn("player-1")
	hub.Register(c)
	defer hub.Unregister(c)

	hub.Subscribe(c, "session-1")
	if hub.SubscriberCount("session-1") != 1 {
		t.Errorf("expected 1 subscriber, got %d", hub.SubscriberCount("session-1"))
	}

	hub.Unsubscribe(c, "session-1")
	if hub.SubscriberCount("session-1") != 0 {
		t.Errorf("expected 0 subscribers, got %d", hub.SubscriberCount("session-1"))
	}
}

func TestHubBroadcastToSession(t *testing.T) {
	hub := NewHub()
	c1 := newTestConn("player-1")
	c2 := newTestConn("player-1") // second tab
	c3 := newTestConn("player-2") // not subscribed

	hub.Register(c1)
	hub.Register(c2)
	hub.Register(c3)
	defer hub.Unregister(c1)
	defer hub.Unregister(c2)
	defer hub.Unregister(c3)

	hub.Subscribe(c1, "session-1")
	hub.Subscribe(c2, "session-1")

	hub.BroadcastToSession("session-1", WSEvent{
		Type:      service.EventTurnResolved,
		SessionID: "session-1",
		Data:      map[string]int{"turn": 3},
	})

	if ev := readEvent(t, c1); ev.Type != service.EventTurnResolved {
		t.Errorf("expected turn_resolved, got %s", ev.Type)
	}
	readEvent(t, c2)

	select {
	case <-c3.send:
		t.Error("c3 should not have received broadcast")
	default:
	}
}

func TestHubUnregisterCleansUpSubscriptions(t *testing.T) {
	hub := NewHub()
	c := newTestConn("player-1")
	hub.Register(c)
	hub.Subscribe(c, "session-1")
	hub.Subscribe(c, "session-2")

	hub.Unregister(c)

	if hub.SubscriberCount("session-1") != 0 {
		t.Errorf("expected 0 subscribers for session-1 after unregister")
	}
	if hub.SubscriberCount("session-2") != 0 {
		t.Errorf("expected 0 subscribers for session-2 after unregister")
	}
}

func TestHubConcurrentAccess(t *testing.T) {
	hub := NewHub()
	var wg sync.WaitGroup

	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c := newTestConn("player")
			hub.Register(c)
			hub.Subscribe(c, "session-1")
			hub.BroadcastToSession("session-1", WSEvent{Type: "test", SessionID: "session-1"})
			hub.Unsubscribe(c, "session-1")
			hub.Unregister(c)
		}()
	}

	wg.Wait()
	if hub.ConnectionCount() != 0 {
		t.Errorf("expected 0 connections after concurrent test, got %d", hub.ConnectionCount())
	}
}

func TestHubBroadcastGameEvent(t *testing.T) {
	hub := NewHub()
	c := newTestConn("player-1")
	hub.Register(c)
	defer hub.Unregister(c)
	hub.Subscribe(c, "session-1")

	hub.BroadcastGameEvent("session-1", service.EventGameOver, map[string]bool{"won": true})

	ev := readEvent(t, c)
	if ev.Type != service.EventGameOver {
		t.Errorf("expected game_over, got %s", ev.Type)
	}
	if ev.SessionID != "session-1" {
		t.Errorf("expected session-1, got %s", ev.SessionID)
	}
}

type stubSessions struct {
	owner string
}

func (s stubSessions) GetGame(_ context.Context, sessionID, playerID string) (*model.GameView, error) {
	if sessionID != "session-1" {
		return nil, service.ErrSessionNotFound
	}
	if playerID != s.owner {
		return nil, service.ErrNotOwner
	}
	return &model.GameView{SessionID: sessionID, Turn: 4}, nil
}

func TestHandleClientMessageSubscribe(t *testing.T) {
	hub := NewHub()
	h := NewWSHandler(hub, nil, stubSessions{owner: "player-1"})
	c := newTestConn("player-1")
	hub.Register(c)
	defer hub.Unregister(c)

	h.handleClientMessage(c, ClientMessage{Action: "subscribe", SessionID: "session-1"})
	ev := readEvent(t, c)
	if ev.Type != EventSubscribed {
		t.Fatalf("expected subscribed, got %s", ev.Type)
	}
	if hub.SubscriberCount("session-1") != 1 {
		t.Errorf("expected subscription, got %d", hub.SubscriberCount("session-1"))
	}

	h.handleClientMessage(c, ClientMessage{Action: "unsubscribe", SessionID: "session-1"})
	if hub.SubscriberCount("session-1") != 0 {
		t.Errorf("expected unsubscribed, got %d", hub.SubscriberCount("session-1"))
	}
}

func TestHandleClientMessageRejectsForeignSession(t *testing.T) {
	hub := NewHub()
	h := NewWSHandler(hub, nil, stubSessions{owner: "player-1"})
	c := newTestConn("player-2")
	hub.Register(c)
	defer hub.Unregister(c)

	h.handleClientMessage(c, ClientMessage{Action: "subscribe", SessionID: "session-1"})
	ev := readEvent(t, c)
	if ev.Type != EventError {
		t.Errorf("expected error event, got %s", ev.Type)
	}
	if hub.SubscriberCount("session-1") != 0 {
		t.Error("expected no subscription for a foreign session")
	}

	h.handleClientMessage(c, ClientMessage{Action: "subscribe", SessionID: "missing"})
	if ev := readEvent(t, c); ev.Type != EventError {
		t.Errorf("expected error event for missing session, got %s", ev.Type)
	}
}

func TestClientMessageSerialization(t *testing.T) {
	var parsed ClientMessage
	if err := json.Unmarshal([]byte(`{"action":"subscribe","session_id":"s-1"}`), &parsed); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if parsed.Action != "subscribe" || parsed.SessionID != "s-1" {
		t.Errorf("unexpected message %+v", parsed)
	}
}
