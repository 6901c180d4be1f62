package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/freeeve/zeitgeist/internal/model"
)

// TurnRepository stores per-turn metrics.
type TurnRepository interface {
	SaveTurn(ctx context.Context, rec model.TurnRecord) error
	ListTurns(ctx context.Context, sessionID string) ([]model.TurnRecord, error)
}

// ResultRepository stores finished-game outcomes.
type ResultRepository interface {
	SaveResult(ctx context.Context, res *model.GameResult) error
	ListResults(ctx context.Context, limit int) ([]model.GameResult, error)
	ListResultsByPlayer(ctx context.Context, playerID string, limit int) ([]model.GameResult, error)
}

// ViewCache holds the latest query view of each session (Redis).
type ViewCache interface {
	SetView(ctx context.Context, sessionID string, view json.RawMessage, ttl time.Duration) error
	GetView(ctx context.Context, sessionID string) (json.RawMessage, error)
	SetOwner(ctx context.Context, sessionID, playerID string, ttl time.Duration) error
	GetOwner(ctx context.Context, sessionID string) (string, error)
	DeleteSession(ctx context.Context, sessionID string) error
}
