package model

import (
	"time"

	"github.com/freeeve/zeitgeist/pkg/culture"
)

// Session is a live game owned by a player.
type Session struct {
	ID            string    `json:"id"`
	PlayerID      string    `json:"player_id"`
	MovementID    string    `json:"movement_id"`
	StartRegionID string    `json:"start_region_id"`
	Seed          int64     `json:"seed"`
	CreatedAt     time.Time `json:"created_at"`
}

// GameView is the query view of a session returned to clients and cached
// between commands.
type GameView struct {
	SessionID       string                `json:"session_id"`
	Turn            int                   `json:"turn"`
	Status          culture.GameStatus    `json:"status"`
	MovementID      string                `json:"movement_id"`
	MovementName    string                `json:"movement_name"`
	InfluencePoints int                   `json:"influence_points"`
	EvolvedItems    []string              `json:"evolved_items"`
	GlobalAdoption  float64               `json:"global_adoption"`
	PeakAdoption    float64               `json:"peak_adoption"`
	Countries       []culture.CountryView `json:"countries"`
	Rivals          []RivalView           `json:"rivals"`
	Events          []EventView           `json:"events"`
	AwaitingChoice  *EventView            `json:"awaiting_choice,omitempty"`
	GameOver        *culture.GameOver     `json:"game_over,omitempty"`
	RecentEvents    []string              `json:"recent_events,omitempty"`
	UpdatedAt       time.Time             `json:"updated_at"`
}

// RivalView is a rival as seen by the player.
type RivalView struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	Personality  culture.Personality `json:"personality"`
	Stance       culture.Stance      `json:"stance"`
	GlobalShare  float64             `json:"global_share"`
	EvolvedCount int                 `json:"evolved_count"`
}

// EventView is a scheduled, running or finished global event.
type EventView struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	TurnStart   int                 `json:"turn_start"`
	Duration    int                 `json:"duration"`
	Status      culture.EventStatus `json:"status"`
	Options     []OptionView        `json:"options,omitempty"`
	Chosen      string              `json:"chosen_option_id,omitempty"`
}

// OptionView is one choice of an interactive event.
type OptionView struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// TurnRecord is the per-turn metrics row kept for finished and live sessions.
type TurnRecord struct {
	SessionID         string    `json:"session_id" db:"session_id"`
	Turn              int       `json:"turn" db:"turn"`
	GlobalAdoption    float64   `json:"global_adoption" db:"global_adoption"`
	InfluencePoints   int       `json:"influence_points" db:"influence_points"`
	Income            int       `json:"income" db:"income"`
	LeadingRivalID    string    `json:"leading_rival_id,omitempty" db:"leading_rival_id"`
	LeadingRivalShare float64   `json:"leading_rival_share" db:"leading_rival_share"`
	EventsActivated   int       `json:"events_activated" db:"events_activated"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
}

// GameResult is the outcome of a finished game.
type GameResult struct {
	ID            string    `json:"id" db:"id"`
	SessionID     string    `json:"session_id" db:"session_id"`
	PlayerID      string    `json:"player_id" db:"player_id"`
	MovementID    string    `json:"movement_id" db:"movement_id"`
	StartRegionID string    `json:"start_region_id" db:"start_region_id"`
	Seed          int64     `json:"seed" db:"seed"`
	Won           bool      `json:"won" db:"won"`
	Condition     string    `json:"condition" db:"condition"`
	Title         string    `json:"title" db:"title"`
	RivalID       string    `json:"rival_id,omitempty" db:"rival_id"`
	Turns         int       `json:"turns" db:"turns"`
	FinalAdoption float64   `json:"final_adoption" db:"final_adoption"`
	PeakAdoption  float64   `json:"peak_adoption" db:"peak_adoption"`
	FinishedAt    time.Time `json:"finished_at" db:"finished_at"`
}

// NewTurnRecord summarizes a resolved turn.
func NewTurnRecord(sessionID string, rep *culture.TurnReport) TurnRecord {
	rec := TurnRecord{
		SessionID:       sessionID,
		Turn:            rep.Turn,
		GlobalAdoption:  rep.GlobalAdoption,
		InfluencePoints: rep.InfluencePoints,
		Income:          rep.Income,
		EventsActivated: len(rep.EventsActivated),
	}
	for id, share := range rep.RivalShares {
		if share > rec.LeadingRivalShare || (share == rec.LeadingRivalShare && id < rec.LeadingRivalID) {
			rec.LeadingRivalID, rec.LeadingRivalShare = id, share
		}
	}
	return rec
}

// NewGameResult builds the result row for a finished game. It returns nil
// while the game is still active.
func NewGameResult(sess Session, s *culture.GameState) *GameResult {
	if s == nil || s.GameOver == nil {
		return nil
	}
	return &GameResult{
		SessionID:     sess.ID,
		PlayerID:      sess.PlayerID,
		MovementID:    s.MovementID,
		StartRegionID: s.StartRegionID,
		Seed:          sess.Seed,
		Won:           s.GameOver.Won,
		Condition:     string(s.GameOver.Condition),
		Title:         s.GameOver.Title,
		RivalID:       s.GameOver.RivalID,
		Turns:         s.Turn,
		FinalAdoption: s.GlobalAdoption(),
		PeakAdoption:  s.Player.MaxAdoptionEver,
	}
}
