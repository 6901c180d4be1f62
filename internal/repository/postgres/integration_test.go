//go:build integration

package postgres

import (
	"context"
	"database/sql"
	"testing"

	"github.com/freeeve/zeitgeist/internal/model"
	"github.com/freeeve/zeitgeist/internal/testutil"
)

var testDB *sql.DB

func setup(t *testing.T) {
	t.Helper()
	if testDB == nil {
		testDB = testutil.SetupDB(t)
	}
	testutil.CleanupDB(t, testDB)
}

func TestMigrateIdempotent(t *testing.T) {
	setup(t)
	if err := Migrate(context.Background(), testDB); err != nil {
		t.Fatalf("migrate: %v", err)
	}
}

// --- TurnRepo Tests ---

func TestTurnSaveAndList(t *testing.T) {
	setup(t)
	repo := NewTurnRepo(testDB)
	ctx := context.Background()

	for turn := 3; turn >= 1; turn-- {
		rec := model.TurnRecord{SessionID: "s1", Turn: turn, GlobalAdoption: float64(turn) / 100, InfluencePoints: turn * 10}
		if err := repo.SaveTurn(ctx, rec); err != nil {
			t.Fatalf("save turn %d: %v", turn, err)
		}
	}
	if err := repo.SaveTurn(ctx, model.TurnRecord{SessionID: "other", Turn: 1}); err != nil {
		t.Fatalf("save other: %v", err)
	}

	recs, err := repo.ListTurns(ctx, "s1")
	if err != nil {
		t.Fatalf("list turns: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("expected 3 records, got %d", len(recs))
	}
	for i, rec := range recs {
		if rec.Turn != i+1 {
			t.Errorf("expected turn %d at index %d, got %d", i+1, i, rec.Turn)
		}
	}
	if recs[2].InfluencePoints != 30 {
		t.Errorf("expected 30 IP on turn 3, got %d", recs[2].InfluencePoints)
	}
}

func TestTurnSaveOverwrites(t *testing.T) {
	setup(t)
	repo := NewTurnRepo(testDB)
	ctx := context.Background()

	repo.SaveTurn(ctx, model.TurnRecord{SessionID: "s1", Turn: 1, Income: 3})
	if err := repo.SaveTurn(ctx, model.TurnRecord{SessionID: "s1", Turn: 1, Income: 9, LeadingRivalID: "hustle_culture"}); err != nil {
		t.Fatalf("resave: %v", err)
	}
	recs, _ := repo.ListTurns(ctx, "s1")
	if len(recs) != 1 || recs[0].Income != 9 || recs[0].LeadingRivalID != "hustle_culture" {
		t.Errorf("expected overwritten record, got %+v", recs)
	}
}

func TestTurnListEmpty(t *testing.T) {
	setup(t)
	recs, err := NewTurnRepo(testDB).ListTurns(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("expected no records, got %d", len(recs))
	}
}

// --- ResultRepo Tests ---

func TestResultSaveAssignsID(t *testing.T) {
	setup(t)
	repo := NewResultRepo(testDB)

	res := &model.GameResult{SessionID: "s1", PlayerID: "p1", MovementID: "slow_living", StartRegionID: "usa_west",
		Won: true, Condition: "cultural_dominance", Title: "Cultural Dominance", Turns: 40, FinalAdoption: 0.81}
	if err := repo.SaveResult(context.Background(), res); err != nil {
		t.Fatalf("save result: %v", err)
	}
	if res.ID == "" {
		t.Error("expected generated ID")
	}
	if res.FinishedAt.IsZero() {
		t.Error("expected finished_at to be set")
	}
}

func TestResultSaveTwiceKeepsOne(t *testing.T) {
	setup(t)
	repo := NewResultRepo(testDB)
	ctx := context.Background()

	first := &model.GameResult{SessionID: "s1", PlayerID: "p1", Condition: "economic_collapse", Title: "Economic Collapse"}
	repo.SaveResult(ctx, first)
	second := &model.GameResult{SessionID: "s1", PlayerID: "p1", Condition: "economic_collapse", Title: "Economic Collapse"}
	if err := repo.SaveResult(ctx, second); err != nil {
		t.Fatalf("second save: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("expected existing ID %s, got %s", first.ID, second.ID)
	}

	results, _ := repo.ListResults(ctx, 10)
	if len(results) != 1 {
		t.Errorf("expected 1 result, got %d", len(results))
	}
}

func TestResultListByPlayer(t *testing.T) {
	setup(t)
	repo := NewResultRepo(testDB)
	ctx := context.Background()

	repo.SaveResult(ctx, &model.GameResult{SessionID: "a", PlayerID: "p1", Condition: "x", Title: "x"})
	repo.SaveResult(ctx, &model.GameResult{SessionID: "b", PlayerID: "p2", Condition: "x", Title: "x"})
	repo.SaveResult(ctx, &model.GameResult{SessionID: "c", PlayerID: "p1", Condition: "x", Title: "x"})

	results, err := repo.ListResultsByPlayer(ctx, "p1", 10)
	if err != nil {
		t.Fatalf("list by player: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results for p1, got %d", len(results))
	}
	for _, r := range results {
		if r.PlayerID != "p1" {
			t.Errorf("unexpected player %s", r.PlayerID)
		}
	}

	limited, _ := repo.ListResults(ctx, 1)
	if len(limited) != 1 {
		t.Errorf("expected limit to apply, got %d", len(limited))
	}
}
