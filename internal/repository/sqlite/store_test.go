package sqlite

import (
	"context"
	"math"
	"path/filepath"
	"testing"

	"github.com/freeeve/zeitgeist/internal/model"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "results.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestTurnsRoundTrip(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	for turn := 3; turn >= 1; turn-- {
		if err := s.SaveTurn(ctx, model.TurnRecord{SessionID: "s1", Turn: turn, InfluencePoints: turn * 10}); err != nil {
			t.Fatalf("save turn %d: %v", turn, err)
		}
	}
	if err := s.SaveTurn(ctx, model.TurnRecord{SessionID: "s1", Turn: 2, InfluencePoints: 99}); err != nil {
		t.Fatalf("overwrite turn: %v", err)
	}

	recs, err := s.ListTurns(ctx, "s1")
	if err != nil {
		t.Fatalf("list turns: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("expected 3 turns, got %d", len(recs))
	}
	if recs[0].Turn != 1 {
		t.Errorf("expected turns ordered ascending, first = %d", recs[0].Turn)
	}
	if recs[1].InfluencePoints != 99 {
		t.Errorf("expected overwritten turn to hold 99 IP, got %d", recs[1].InfluencePoints)
	}
	if recs[2].CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}
}

func TestSaveResultIgnoresDuplicateSession(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	first := &model.GameResult{SessionID: "s1", PlayerID: "p1", MovementID: "slow_living", Won: true, Condition: "cultural_dominance"}
	if err := s.SaveResult(ctx, first); err != nil {
		t.Fatalf("save first: %v", err)
	}
	if first.ID == "" {
		t.Error("expected an id to be assigned")
	}

	if err := s.SaveResult(ctx, &model.GameResult{SessionID: "s1", PlayerID: "p1", MovementID: "slow_living"}); err != nil {
		t.Fatalf("save duplicate: %v", err)
	}

	results, err := s.ListResults(ctx, 10)
	if err != nil {
		t.Fatalf("list results: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if !results[0].Won || results[0].ID != first.ID {
		t.Errorf("expected the first result to be kept, got %+v", results[0])
	}
}

func TestSaveResultsBatchAndSummarize(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	batch := []*model.GameResult{
		{SessionID: "a", PlayerID: "autoplay", MovementID: "slow_living", Won: true, Turns: 40, FinalAdoption: 0.8, PeakAdoption: 0.8},
		{SessionID: "b", PlayerID: "autoplay", MovementID: "slow_living", Won: false, Turns: 20, FinalAdoption: 0.2, PeakAdoption: 0.3},
		{SessionID: "c", PlayerID: "someone", MovementID: "open_source", Won: false, Turns: 10, FinalAdoption: 0.1, PeakAdoption: 0.1},
	}
	if err := s.SaveResults(ctx, batch); err != nil {
		t.Fatalf("save batch: %v", err)
	}

	mine, err := s.ListResultsByPlayer(ctx, "autoplay", 10)
	if err != nil {
		t.Fatalf("list by player: %v", err)
	}
	if len(mine) != 2 {
		t.Errorf("expected 2 autoplay results, got %d", len(mine))
	}

	limited, err := s.ListResults(ctx, 1)
	if err != nil {
		t.Fatalf("list limited: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("expected limit 1 to return 1 row, got %d", len(limited))
	}

	sum, err := s.Summarize(ctx)
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if len(sum) != 2 {
		t.Fatalf("expected 2 movement rows, got %d", len(sum))
	}
	if sum[0].MovementID != "open_source" || sum[1].MovementID != "slow_living" {
		t.Errorf("expected rows ordered by movement, got %s, %s", sum[0].MovementID, sum[1].MovementID)
	}
	if sum[1].Games != 2 || sum[1].Wins != 1 {
		t.Errorf("expected 2 games and 1 win, got %d/%d", sum[1].Games, sum[1].Wins)
	}
	if math.Abs(sum[1].AvgTurns-30.0) > 1e-9 {
		t.Errorf("expected avg turns 30, got %f", sum[1].AvgTurns)
	}
	if math.Abs(sum[1].PeakAdoption-0.8) > 1e-9 {
		t.Errorf("expected peak adoption 0.8, got %f", sum[1].PeakAdoption)
	}
}
