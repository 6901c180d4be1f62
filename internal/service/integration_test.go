//go:build integration

package service

import (
	"context"
	"testing"
	"time"

	"github.com/freeeve/zeitgeist/internal/repository/postgres"
	redisrepo "github.com/freeeve/zeitgeist/internal/repository/redis"
	"github.com/freeeve/zeitgeist/internal/testutil"
	"github.com/freeeve/zeitgeist/pkg/culture"
)

func TestIntegrationGameLifecycle(t *testing.T) {
	db := testutil.SetupDB(t)
	rdb := testutil.SetupRedis(t)
	testutil.CleanupDB(t, db)
	testutil.CleanupRedis(t, rdb)

	svc := NewGameService(culture.DefaultScenario(), instantWin(),
		redisrepo.NewClientFromPool(rdb), postgres.NewTurnRepo(db), postgres.NewResultRepo(db), nil)
	ctx := context.Background()

	view, err := svc.CreateGame(ctx, "player-1", "open_source", "brazil", seed(7))
	if err != nil {
		t.Fatalf("CreateGame: %v", err)
	}
	rep, _, err := svc.AdvanceTurn(ctx, view.SessionID, "player-1")
	if err != nil {
		t.Fatalf("AdvanceTurn: %v", err)
	}
	if rep.GameOver == nil {
		t.Fatal("expected the game to end")
	}

	turns, err := svc.ListTurns(ctx, view.SessionID, "player-1")
	if err != nil {
		t.Fatalf("ListTurns: %v", err)
	}
	if len(turns) != 1 {
		t.Errorf("expected 1 turn record, got %d", len(turns))
	}

	results, err := svc.ListResults(ctx, "player-1", 10)
	if err != nil {
		t.Fatalf("ListResults: %v", err)
	}
	if len(results) != 1 || results[0].SessionID != view.SessionID {
		t.Errorf("expected the finished session in results, got %+v", results)
	}

	cached, err := svc.GetGame(ctx, view.SessionID, "player-1")
	if err != nil {
		t.Fatalf("GetGame from cache: %v", err)
	}
	if cached.GameOver == nil {
		t.Error("expected cached view to carry the outcome")
	}

	ttl := rdb.TTL(ctx, "session:"+view.SessionID+":view").Val()
	if ttl <= 0 || ttl > 24*time.Hour {
		t.Errorf("expected view TTL within 24h, got %v", ttl)
	}
}
