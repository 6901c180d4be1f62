package culture

import (
	"sort"

	"github.com/rs/zerolog/log"
)

// TargetType scopes an event effect.
type TargetType string

const (
	TargetGlobal    TargetType = "global"
	TargetCountry   TargetType = "country"
	TargetSubRegion TargetType = "subregion"
)

// Property names an attribute an event can modify.
type Property string

const (
	PropCulturalOpenness    Property = "culturalOpenness"
	PropEconomicDevelopment Property = "economicDevelopment"
	PropResistanceLevel     Property = "resistanceLevel"
	PropAdoptionRate        Property = "adoptionRateModifier"
	PropIPBonus             Property = "ipBonus"
)

// Known returns true if the modifier system understands p.
func (p Property) Known() bool {
	switch p {
	case PropCulturalOpenness, PropEconomicDevelopment, PropResistanceLevel, PropAdoptionRate, PropIPBonus:
		return true
	}
	return false
}

// Effect is a single modifier contributed by an event.
type Effect struct {
	Target       TargetType `json:"target" yaml:"target"`
	CountryID    string     `json:"country_id,omitempty" yaml:"country_id"`
	SubRegionID  string     `json:"sub_region_id,omitempty" yaml:"sub_region_id"`
	Property     Property   `json:"property" yaml:"property"`
	Value        float64    `json:"value" yaml:"value"`
	IsMultiplier bool       `json:"is_multiplier,omitempty" yaml:"is_multiplier"`
}

// reaches returns true if the effect applies to region r. A nil region only
// matches global effects.
func (e Effect) reaches(r *Region) bool {
	switch e.Target {
	case TargetGlobal:
		return true
	case TargetCountry:
		if r == nil {
			return false
		}
		if r.IsSubRegion() {
			return r.CountryID == e.CountryID
		}
		return r.ID == e.CountryID
	case TargetSubRegion:
		return r != nil && r.IsSubRegion() && r.ID == e.SubRegionID
	}
	return false
}

// EventOption is one choice of an interactive event.
type EventOption struct {
	ID      string   `json:"id" yaml:"id"`
	Label   string   `json:"label" yaml:"label"`
	Effects []Effect `json:"effects" yaml:"effects"`
}

// EventStatus is the lifecycle position of an event.
type EventStatus string

const (
	EventPending        EventStatus = "pending"
	EventAwaitingChoice EventStatus = "awaiting_choice"
	EventActive         EventStatus = "active"
	EventExpired        EventStatus = "expired"
)

// GlobalEvent is a timed modifier source, optionally requiring a player choice.
type GlobalEvent struct {
	ID               string        `json:"id"`
	Name             string        `json:"name"`
	Description      string        `json:"description"`
	TurnStart        int           `json:"turn_start"`
	Duration         int           `json:"duration"`
	Effects          []Effect      `json:"effects"`
	Options          []EventOption `json:"options,omitempty"`
	Status           EventStatus   `json:"status"`
	HasBeenTriggered bool          `json:"has_been_triggered"`
	ChosenOptionID   string        `json:"chosen_option_id,omitempty"`
}

// Interactive returns true if the event requires a player choice.
func (ev *GlobalEvent) Interactive() bool {
	return len(ev.Options) > 0
}

// EndTurn is the first turn on which the event is no longer active.
func (ev *GlobalEvent) EndTurn() int {
	return ev.TurnStart + ev.Duration
}

// Option looks up an option by ID.
func (ev *GlobalEvent) Option(id string) (EventOption, bool) {
	for _, o := range ev.Options {
		if o.ID == id {
			return o, true
		}
	}
	return EventOption{}, false
}

func (ev *GlobalEvent) clone() *GlobalEvent {
	c := *ev
	c.Effects = append([]Effect(nil), ev.Effects...)
	if ev.Options != nil {
		c.Options = make([]EventOption, len(ev.Options))
		for i, o := range ev.Options {
			c.Options[i] = EventOption{ID: o.ID, Label: o.Label, Effects: append([]Effect(nil), o.Effects...)}
		}
	}
	return &c
}

// Modifier accumulates additive and multiplicative contributions.
type Modifier struct {
	Add float64 `json:"add"`
	Mul float64 `json:"mul"`
}

// Apply returns (v + Add) * Mul.
func (m Modifier) Apply(v float64) float64 {
	return (v + m.Add) * m.Mul
}

// Modifiers maps each property to its folded modifier.
type Modifiers map[Property]Modifier

// Get returns the modifier for p, or the identity when none applies.
func (m Modifiers) Get(p Property) Modifier {
	if mod, ok := m[p]; ok {
		return mod
	}
	return Modifier{Mul: 1}
}

// Apply applies the modifier for p to v.
func (m Modifiers) Apply(p Property, v float64) float64 {
	return m.Get(p).Apply(v)
}

// ModifiersFor folds every active event's effects that reach r. Passing a nil
// region folds global effects only. Effects with unknown properties are
// skipped; they are reported once when their event takes effect.
func ModifiersFor(events []*GlobalEvent, r *Region) Modifiers {
	mods := make(Modifiers)
	for _, ev := range events {
		if ev.Status != EventActive {
			continue
		}
		for _, eff := range ev.Effects {
			if !eff.Property.Known() {
				continue
			}
			if !eff.reaches(r) {
				continue
			}
			mod := mods.Get(eff.Property)
			if eff.IsMultiplier {
				mod.Mul *= eff.Value
			} else {
				mod.Add += eff.Value
			}
			mods[eff.Property] = mod
		}
	}
	return mods
}

// eventTransitions records what changed during an event step.
type eventTransitions struct {
	activated []*GlobalEvent
	awaiting  *GlobalEvent
	expired   []*GlobalEvent
}

// stepEvents activates due events and expires finished ones for turn. Option
// events are only opened while no other event awaits a choice, so at most one
// is ever outstanding; later ones stay pending until it is resolved.
func stepEvents(events []*GlobalEvent, turn int) eventTransitions {
	var tr eventTransitions
	awaiting := AwaitingChoice(events)

	due := make([]*GlobalEvent, 0)
	for _, ev := range events {
		if ev.Status == EventPending && ev.TurnStart <= turn {
			due = append(due, ev)
		}
	}
	sort.SliceStable(due, func(i, j int) bool { return due[i].TurnStart < due[j].TurnStart })

	for _, ev := range due {
		if ev.Interactive() {
			if awaiting != nil {
				continue
			}
			ev.Status = EventAwaitingChoice
			ev.HasBeenTriggered = true
			awaiting = ev
			tr.awaiting = ev
			tr.activated = append(tr.activated, ev)
			continue
		}
		ev.Status = EventActive
		ev.HasBeenTriggered = true
		warnUnknownEffects(ev.ID, ev.Effects)
		tr.activated = append(tr.activated, ev)
	}

	for _, ev := range events {
		if ev.Status == EventActive && turn >= ev.EndTurn() {
			ev.Status = EventExpired
			tr.expired = append(tr.expired, ev)
		}
	}
	return tr
}

// warnUnknownEffects logs each effect whose property no consumer reads.
func warnUnknownEffects(eventID string, effects []Effect) {
	for _, eff := range effects {
		if !eff.Property.Known() {
			log.Warn().Str("event", eventID).Str("property", string(eff.Property)).Msg("Skipping effect with unknown property")
		}
	}
}

// AwaitingChoice returns the event blocking turn advancement, if any.
func AwaitingChoice(events []*GlobalEvent) *GlobalEvent {
	for _, ev := range events {
		if ev.Status == EventAwaitingChoice {
			return ev
		}
	}
	return nil
}

// resolveChoice applies option to ev at turn. Global ipBonus effects are paid
// out once and returned; the remaining effects stay active for what is left of
// the event's duration.
func resolveChoice(ev *GlobalEvent, opt EventOption, turn int) float64 {
	ipBonus := 0.0
	var lasting []Effect
	for _, eff := range opt.Effects {
		if eff.Property == PropIPBonus && eff.Target == TargetGlobal && !eff.IsMultiplier {
			ipBonus += eff.Value
			continue
		}
		lasting = append(lasting, eff)
	}

	ev.Effects = lasting
	ev.ChosenOptionID = opt.ID
	warnUnknownEffects(ev.ID, lasting)
	if len(lasting) > 0 && ev.Duration > 0 && turn < ev.EndTurn() {
		ev.Status = EventActive
	} else {
		ev.Status = EventExpired
	}
	return ipBonus
}
