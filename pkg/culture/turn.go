package culture

import (
	"github.com/rs/zerolog/log"
)

// Engine resolves turns. It holds the read-only catalog and tuning plus the
// random source every stochastic decision draws from.
type Engine struct {
	catalog *Catalog
	tuning  Tuning
	rng     Rand
}

// NewEngine creates an engine. A nil rng is replaced by a seed-zero source.
func NewEngine(catalog *Catalog, tuning Tuning, rng Rand) *Engine {
	if rng == nil {
		rng = NewRand(0)
	}
	if catalog == nil {
		catalog = NewCatalog(nil)
	}
	return &Engine{catalog: catalog, tuning: tuning, rng: rng}
}

// Catalog returns the engine's evolution catalog.
func (e *Engine) Catalog() *Catalog { return e.catalog }

// Tuning returns the engine's tuning values.
func (e *Engine) Tuning() Tuning { return e.tuning }

// RivalReport summarizes one rival's turn.
type RivalReport struct {
	RivalID        string  `json:"rival_id"`
	Income         int     `json:"income"`
	Purchased      string  `json:"purchased,omitempty"`
	Gain           float64 `json:"gain"`
	Taken          float64 `json:"taken"`
	ExpandedTo     string  `json:"expanded_to,omitempty"`
	Suppressions   int     `json:"suppressions,omitempty"`
	CounterActions int     `json:"counter_actions,omitempty"`
}

// TurnReport summarizes what happened while resolving a turn.
type TurnReport struct {
	Turn            int                  `json:"turn"`
	EventsActivated []string             `json:"events_activated,omitempty"`
	EventsExpired   []string             `json:"events_expired,omitempty"`
	AwaitingChoice  string               `json:"awaiting_choice,omitempty"`
	PlayerGain      float64              `json:"player_gain"`
	PlayerTaken     float64              `json:"player_taken"`
	SeededRegions   []string             `json:"seeded_regions,omitempty"`
	Archetypes      map[string]Archetype `json:"archetypes,omitempty"`
	ResistanceRises int                  `json:"resistance_rises"`
	Rivals          []RivalReport        `json:"rivals"`
	Normalized      int                  `json:"normalized"`
	Income          int                  `json:"income"`
	InfluencePoints int                  `json:"influence_points"`
	GlobalAdoption  float64              `json:"global_adoption"`
	RivalShares     map[string]float64   `json:"rival_shares"`
	GameOver        *GameOver            `json:"game_over,omitempty"`
}

func (rep *TurnReport) noteArchetype(regionID string, a Archetype) {
	if rep.Archetypes == nil {
		rep.Archetypes = make(map[string]Archetype)
	}
	rep.Archetypes[regionID] = a
}

// AdvanceTurn resolves one turn from prev and returns the next snapshot.
// prev is never modified. It fails while the game is over or while an event
// awaits the player's choice.
func (e *Engine) AdvanceTurn(prev *GameState) (*GameState, *TurnReport, error) {
	if !prev.Active() {
		return nil, nil, reject(ReasonGameOver, "game is over")
	}
	if ev := AwaitingChoice(prev.Events); ev != nil {
		return nil, nil, reject(ReasonEventPending, "event %q awaits a choice", ev.ID)
	}

	next := prev.Clone()
	next.Turn++
	rep := &TurnReport{Turn: next.Turn}

	tr := stepEvents(next.Events, next.Turn)
	for _, ev := range tr.activated {
		rep.EventsActivated = append(rep.EventsActivated, ev.ID)
		next.noteEvent(ev.Name, e.tuning.RecentEventsKept)
	}
	for _, ev := range tr.expired {
		rep.EventsExpired = append(rep.EventsExpired, ev.ID)
	}
	if tr.awaiting != nil {
		rep.AwaitingChoice = tr.awaiting.ID
	}

	e.spreadPlayer(next.Clone(), next, rep)
	for _, rv := range next.Rivals {
		rep.Rivals = append(rep.Rivals, e.runRival(rv, next))
	}
	rep.Normalized = normalizeAll(next)

	rep.Income = Income(next, e.tuning.Income)
	next.Player.InfluencePoints = addIP(next.Player.InfluencePoints, rep.Income)
	if next.Player.InfluencePoints <= 0 {
		next.Player.IPZeroStreak++
	} else {
		next.Player.IPZeroStreak = 0
	}
	rep.GlobalAdoption = next.GlobalAdoption()
	next.Player.MaxAdoptionEver = max(next.Player.MaxAdoptionEver, rep.GlobalAdoption)
	rep.InfluencePoints = next.Player.InfluencePoints
	rep.RivalShares = make(map[string]float64, len(next.Rivals))
	for _, rv := range next.Rivals {
		rep.RivalShares[rv.ID] = next.RivalShare(rv.ID)
	}

	if over := Evaluate(next, e.tuning.Victory); over != nil {
		next.GameOver = over
		if over.Won {
			next.Status = StatusWon
		} else {
			next.Status = StatusLost
		}
		rep.GameOver = over
	}

	log.Debug().
		Int("turn", next.Turn).
		Float64("adoption", rep.GlobalAdoption).
		Int("ip", next.Player.InfluencePoints).
		Int("normalized", rep.Normalized).
		Str("awaiting", rep.AwaitingChoice).
		Msg("Turn resolved")
	return next, rep, nil
}
