package culture

import (
	"fmt"
	"math"
)

// Reason is a machine-readable code for a rejected command.
type Reason string

const (
	ReasonInsufficientIP     Reason = "insufficient_ip"
	ReasonUnmetPrerequisites Reason = "unmet_prerequisites"
	ReasonAlreadyEvolved     Reason = "already_evolved"
	ReasonUnknownItem        Reason = "unknown_item"
	ReasonUnknownRival       Reason = "unknown_rival"
	ReasonInvalidStance      Reason = "invalid_stance"
	ReasonUnknownMovement    Reason = "unknown_movement"
	ReasonUnknownRegion      Reason = "unknown_region"
	ReasonEventPending       Reason = "event_pending"
	ReasonNoPendingChoice    Reason = "no_pending_choice"
	ReasonUnknownOption      Reason = "unknown_option"
	ReasonGameOver           Reason = "game_over"
	ReasonNotStarted         Reason = "not_started"
	ReasonAlreadyStarted     Reason = "already_started"
)

// Rejection is returned when a command is refused. The game state is left
// unchanged. Rejections compare equal under errors.Is when their reasons match.
type Rejection struct {
	Reason Reason
	Detail string
}

func (r *Rejection) Error() string {
	if r.Detail == "" {
		return string(r.Reason)
	}
	return string(r.Reason) + ": " + r.Detail
}

// Is matches any rejection with the same reason.
func (r *Rejection) Is(target error) bool {
	t, ok := target.(*Rejection)
	return ok && t.Reason == r.Reason
}

var (
	ErrInsufficientIP     = &Rejection{Reason: ReasonInsufficientIP}
	ErrUnmetPrerequisites = &Rejection{Reason: ReasonUnmetPrerequisites}
	ErrAlreadyEvolved     = &Rejection{Reason: ReasonAlreadyEvolved}
	ErrUnknownItem        = &Rejection{Reason: ReasonUnknownItem}
	ErrUnknownRival       = &Rejection{Reason: ReasonUnknownRival}
	ErrInvalidStance      = &Rejection{Reason: ReasonInvalidStance}
	ErrUnknownMovement    = &Rejection{Reason: ReasonUnknownMovement}
	ErrUnknownRegion      = &Rejection{Reason: ReasonUnknownRegion}
	ErrEventPending       = &Rejection{Reason: ReasonEventPending}
	ErrNoPendingChoice    = &Rejection{Reason: ReasonNoPendingChoice}
	ErrUnknownOption      = &Rejection{Reason: ReasonUnknownOption}
	ErrGameOver           = &Rejection{Reason: ReasonGameOver}
	ErrNotStarted         = &Rejection{Reason: ReasonNotStarted}
	ErrAlreadyStarted     = &Rejection{Reason: ReasonAlreadyStarted}
)

func reject(reason Reason, format string, args ...any) *Rejection {
	return &Rejection{Reason: reason, Detail: fmt.Sprintf(format, args...)}
}

// NarrativeFunc turns a state summary into flavor headlines.
type NarrativeFunc func(movementName string, globalAdoption float64, recentEvents string) []string

// Game is the command and query surface of a single game. Every command
// builds a new snapshot and swaps it in, so a refused command leaves the
// current snapshot untouched. A Game is not safe for concurrent use.
type Game struct {
	scenario   *Scenario
	engine     *Engine
	state      *GameState
	lastReport *TurnReport
}

// NewGame creates an unstarted game over a scenario.
func NewGame(sc *Scenario, tun Tuning, rng Rand) *Game {
	return &Game{scenario: sc, engine: NewEngine(sc.Catalog(), tun, rng)}
}

// Scenario returns the seed data the game was created from.
func (g *Game) Scenario() *Scenario { return g.scenario }

// Started returns true once Start has succeeded.
func (g *Game) Started() bool { return g.state != nil }

// State returns a deep copy of the current snapshot, or nil before Start.
func (g *Game) State() *GameState {
	if g.state == nil {
		return nil
	}
	return g.state.Clone()
}

// LastReport returns the report of the most recent turn, if any.
func (g *Game) LastReport() *TurnReport { return g.lastReport }

// Start seeds the initial snapshot for the chosen movement and region.
func (g *Game) Start(movementID, startRegionID string) error {
	if g.state != nil {
		return reject(ReasonAlreadyStarted, "game already started")
	}
	s, err := NewInitialState(g.scenario, g.engine.tuning, movementID, startRegionID)
	if err != nil {
		return err
	}
	g.state = s
	return nil
}

func (g *Game) mutable() (*GameState, error) {
	if g.state == nil {
		return nil, reject(ReasonNotStarted, "game not started")
	}
	if !g.state.Active() {
		return nil, reject(ReasonGameOver, "game is over")
	}
	return g.state.Clone(), nil
}

// Evolve buys an evolution item for the player.
func (g *Game) Evolve(itemID string) error {
	next, err := g.mutable()
	if err != nil {
		return err
	}
	item, ok := g.engine.catalog.Item(itemID)
	if !ok {
		return reject(ReasonUnknownItem, "unknown item %q", itemID)
	}
	if next.Player.EvolvedItems[itemID] {
		return reject(ReasonAlreadyEvolved, "item %q already evolved", itemID)
	}
	if !PrerequisitesMet(item, next.Player.EvolvedItems) {
		return reject(ReasonUnmetPrerequisites, "item %q requires %v", itemID, item.Prerequisites)
	}
	if next.Player.InfluencePoints < item.Cost {
		return reject(ReasonInsufficientIP, "item %q costs %d, have %d", itemID, item.Cost, next.Player.InfluencePoints)
	}
	next.Player.InfluencePoints -= item.Cost
	if next.Player.EvolvedItems == nil {
		next.Player.EvolvedItems = make(map[string]bool)
	}
	next.Player.EvolvedItems[itemID] = true
	g.state = next
	return nil
}

// CollectInfluence credits points to the player. Negative amounts count as
// zero. It returns the new balance.
func (g *Game) CollectInfluence(points int) (int, error) {
	next, err := g.mutable()
	if err != nil {
		return 0, err
	}
	next.Player.InfluencePoints = addIP(next.Player.InfluencePoints, max(0, points))
	g.state = next
	return next.Player.InfluencePoints, nil
}

// AdvanceTurn resolves one turn.
func (g *Game) AdvanceTurn() (*TurnReport, error) {
	if g.state == nil {
		return nil, reject(ReasonNotStarted, "game not started")
	}
	next, rep, err := g.engine.AdvanceTurn(g.state)
	if err != nil {
		return nil, err
	}
	g.state = next
	g.lastReport = rep
	return rep, nil
}

// ChooseEventOption resolves the event awaiting the player's choice.
func (g *Game) ChooseEventOption(eventID, optionID string) error {
	next, err := g.mutable()
	if err != nil {
		return err
	}
	ev := AwaitingChoice(next.Events)
	if ev == nil || ev.ID != eventID {
		return reject(ReasonNoPendingChoice, "event %q is not awaiting a choice", eventID)
	}
	opt, ok := ev.Option(optionID)
	if !ok {
		return reject(ReasonUnknownOption, "event %q has no option %q", eventID, optionID)
	}
	bonus := resolveChoice(ev, opt, next.Turn)
	next.Player.InfluencePoints = addIP(next.Player.InfluencePoints, floorIP(math.Round(bonus)))
	g.state = next
	return nil
}

// SetDiplomaticStance changes a rival's stance toward the player for a fixed
// cost. Setting the current stance again is free.
func (g *Game) SetDiplomaticStance(rivalID string, stance Stance) error {
	next, err := g.mutable()
	if err != nil {
		return err
	}
	if !stance.Valid() {
		return reject(ReasonInvalidStance, "invalid stance %q", stance)
	}
	rv := next.Rival(rivalID)
	if rv == nil {
		return reject(ReasonUnknownRival, "unknown rival %q", rivalID)
	}
	if rv.Stance == stance {
		return nil
	}
	cost := g.engine.tuning.StanceChangeCost
	if next.Player.InfluencePoints < cost {
		return reject(ReasonInsufficientIP, "stance change costs %d, have %d", cost, next.Player.InfluencePoints)
	}
	next.Player.InfluencePoints -= cost
	rv.Stance = stance
	g.state = next
	return nil
}

// Headlines asks the narrative collaborator for flavor text about the current
// state. It returns nil before Start or when fn is nil.
func (g *Game) Headlines(fn NarrativeFunc) []string {
	if g.state == nil || fn == nil {
		return nil
	}
	return fn(g.state.MovementName, g.state.GlobalAdoption(), g.state.RecentEventsSummary())
}
