package model

import (
	"testing"

	"github.com/freeeve/zeitgeist/pkg/culture"
)

func TestNewTurnRecordPicksLeadingRival(t *testing.T) {
	rep := &culture.TurnReport{
		Turn:            4,
		GlobalAdoption:  0.12,
		InfluencePoints: 30,
		Income:          7,
		EventsActivated: []string{"streaming_boom"},
		RivalShares:     map[string]float64{"a": 0.1, "b": 0.3, "c": 0.3},
	}
	rec := NewTurnRecord("s1", rep)
	if rec.LeadingRivalID != "b" || rec.LeadingRivalShare != 0.3 {
		t.Errorf("expected b at 0.3, got %s at %v", rec.LeadingRivalID, rec.LeadingRivalShare)
	}
	if rec.Turn != 4 || rec.Income != 7 || rec.EventsActivated != 1 {
		t.Errorf("unexpected record %+v", rec)
	}
}

func TestNewGameResultNilWhileActive(t *testing.T) {
	s := &culture.GameState{Status: culture.StatusActive}
	if r := NewGameResult(Session{ID: "s"}, s); r != nil {
		t.Errorf("expected nil result for active game, got %+v", r)
	}

	s.Status = culture.StatusLost
	s.Turn = 9
	s.GameOver = &culture.GameOver{Condition: culture.ConditionEconomicCollapse, Title: "Economic Collapse"}
	r := NewGameResult(Session{ID: "s", PlayerID: "p", Seed: 3}, s)
	if r == nil || r.Won || r.Turns != 9 || r.Condition != "economic_collapse" || r.Seed != 3 {
		t.Errorf("unexpected result %+v", r)
	}
}
