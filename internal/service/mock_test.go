package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/freeeve/zeitgeist/internal/model"
)

type mockCache struct {
	mu     sync.Mutex
	views  map[string]json.RawMessage
	owners map[string]string
	ttls   map[string]time.Duration
	err    error
}

func newMockCache() *mockCache {
	return &mockCache{
		views:  make(map[string]json.RawMessage),
		owners: make(map[string]string),
		ttls:   make(map[string]time.Duration),
	}
}

func (m *mockCache) SetView(_ context.Context, sessionID string, view json.RawMessage, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.views[sessionID] = view
	m.ttls[sessionID] = ttl
	return nil
}

func (m *mockCache) GetView(_ context.Context, sessionID string) (json.RawMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.views[sessionID], nil
}

func (m *mockCache) SetOwner(_ context.Context, sessionID, playerID string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.owners[sessionID] = playerID
	return nil
}

func (m *mockCache) GetOwner(_ context.Context, sessionID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.owners[sessionID], nil
}

func (m *mockCache) DeleteSession(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.views, sessionID)
	delete(m.owners, sessionID)
	return nil
}

type mockTurnRepo struct {
	mu    sync.Mutex
	turns map[string][]model.TurnRecord
	err   error
}

func newMockTurnRepo() *mockTurnRepo {
	return &mockTurnRepo{turns: make(map[string][]model.TurnRecord)}
}

func (m *mockTurnRepo) SaveTurn(_ context.Context, rec model.TurnRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.turns[rec.SessionID] = append(m.turns[rec.SessionID], rec)
	return nil
}

func (m *mockTurnRepo) ListTurns(_ context.Context, sessionID string) ([]model.TurnRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.TurnRecord(nil), m.turns[sessionID]...), nil
}

type mockResultRepo struct {
	mu      sync.Mutex
	results []model.GameResult
}

func (m *mockResultRepo) SaveResult(_ context.Context, res *model.GameResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if res.SessionID == "" {
		return errors.New("missing session id")
	}
	res.ID = "result-" + res.SessionID
	m.results = append(m.results, *res)
	return nil
}

func (m *mockResultRepo) ListResults(_ context.Context, limit int) ([]model.GameResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := append([]model.GameResult(nil), m.results...)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *mockResultRepo) ListResultsByPlayer(_ context.Context, playerID string, limit int) ([]model.GameResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.GameResult
	for _, r := range m.results {
		if r.PlayerID == playerID {
			out = append(out, r)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type broadcastEvent struct {
	sessionID string
	eventType string
	data      any
}

type mockBroadcaster struct {
	mu     sync.Mutex
	events []broadcastEvent
}

func (m *mockBroadcaster) BroadcastGameEvent(sessionID, eventType string, data any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, broadcastEvent{sessionID, eventType, data})
}

func (m *mockBroadcaster) types() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for _, e := range m.events {
		out = append(out, e.eventType)
	}
	return out
}

func (m *mockBroadcaster) count(eventType string) int {
	n := 0
	for _, t := range m.types() {
		if t == eventType {
			n++
		}
	}
	return n
}
