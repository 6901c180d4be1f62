package culture

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed default_scenario.yaml
var defaultScenarioYAML []byte

// Scenario is the static seed data a game is started from. It is read-only
// once loaded and may be shared between games.
type Scenario struct {
	Name      string          `json:"name" yaml:"name"`
	Movements []Movement      `json:"movements" yaml:"movements"`
	Items     []EvolutionItem `json:"items" yaml:"items"`
	Countries []CountrySeed   `json:"countries" yaml:"countries"`
	Rivals    []RivalSeed     `json:"rivals" yaml:"rivals"`
	Events    []EventSeed     `json:"events" yaml:"events"`

	catalog *Catalog
}

// CountrySeed describes a country and its optional sub-regions.
type CountrySeed struct {
	ID           string          `json:"id" yaml:"id"`
	Name         string          `json:"name" yaml:"name"`
	Demographics Demographics    `json:"demographics" yaml:"demographics"`
	SubRegions   []SubRegionSeed `json:"sub_regions,omitempty" yaml:"sub_regions"`
}

// SubRegionSeed describes a sub-region. Unset demographics fall back to the
// parent country.
type SubRegionSeed struct {
	ID                  string   `json:"id" yaml:"id"`
	Name                string   `json:"name" yaml:"name"`
	InternetPenetration *float64 `json:"internet_penetration,omitempty" yaml:"internet_penetration"`
	EducationLevel      *float64 `json:"education_level,omitempty" yaml:"education_level"`
	EconomicDevelopment *float64 `json:"economic_development,omitempty" yaml:"economic_development"`
	CulturalOpenness    *float64 `json:"cultural_openness,omitempty" yaml:"cultural_openness"`
	MediaFreedom        *float64 `json:"media_freedom,omitempty" yaml:"media_freedom"`
}

func (s SubRegionSeed) demographics(parent Demographics) Demographics {
	d := parent
	pick := func(dst *float64, v *float64) {
		if v != nil {
			*dst = clamp01(*v)
		}
	}
	pick(&d.InternetPenetration, s.InternetPenetration)
	pick(&d.EducationLevel, s.EducationLevel)
	pick(&d.EconomicDevelopment, s.EconomicDevelopment)
	pick(&d.CulturalOpenness, s.CulturalOpenness)
	pick(&d.MediaFreedom, s.MediaFreedom)
	return d
}

// RivalSeed describes a rival movement.
type RivalSeed struct {
	ID               string      `json:"id" yaml:"id"`
	Name             string      `json:"name" yaml:"name"`
	Personality      Personality `json:"personality" yaml:"personality"`
	Aggressiveness   float64     `json:"aggressiveness" yaml:"aggressiveness"`
	StartingRegionID string      `json:"starting_region_id" yaml:"starting_region_id"`
}

// EventSeed describes a potential global event.
type EventSeed struct {
	ID          string        `json:"id" yaml:"id"`
	Name        string        `json:"name" yaml:"name"`
	Description string        `json:"description" yaml:"description"`
	TurnStart   int           `json:"turn_start" yaml:"turn_start"`
	Duration    int           `json:"duration" yaml:"duration"`
	Effects     []Effect      `json:"effects,omitempty" yaml:"effects"`
	Options     []EventOption `json:"options,omitempty" yaml:"options"`
}

// ParseScenario decodes and validates a scenario document.
func ParseScenario(raw []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(raw, &sc); err != nil {
		return nil, fmt.Errorf("decode scenario: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	sc.catalog = NewCatalog(sc.Items)
	return &sc, nil
}

// LoadScenario reads a scenario file from disk.
func LoadScenario(path string) (*Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sc, err := ParseScenario(raw)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return sc, nil
}

// DefaultScenario returns the embedded scenario.
func DefaultScenario() *Scenario {
	sc, err := ParseScenario(defaultScenarioYAML)
	if err != nil {
		panic("culture: embedded scenario: " + err.Error())
	}
	return sc
}

// Validate checks that every ID is unique and every reference resolves.
func (sc *Scenario) Validate() error {
	var errs []error
	seen := make(map[string]bool)
	claim := func(kind, id string) {
		if id == "" {
			errs = append(errs, fmt.Errorf("%s with empty id", kind))
			return
		}
		if seen[kind+":"+id] {
			errs = append(errs, fmt.Errorf("duplicate %s %q", kind, id))
		}
		seen[kind+":"+id] = true
	}

	if len(sc.Movements) == 0 {
		errs = append(errs, errors.New("no movements"))
	}
	for _, m := range sc.Movements {
		claim("movement", m.ID)
	}
	for _, it := range sc.Items {
		claim("item", it.ID)
		if it.Cost < 0 {
			errs = append(errs, fmt.Errorf("item %q has negative cost", it.ID))
		}
	}
	for _, it := range sc.Items {
		for _, p := range it.Prerequisites {
			if !seen["item:"+p] {
				errs = append(errs, fmt.Errorf("item %q requires unknown item %q", it.ID, p))
			}
		}
	}
	if len(sc.Countries) == 0 {
		errs = append(errs, errors.New("no countries"))
	}
	for _, c := range sc.Countries {
		claim("region", c.ID)
		for _, sr := range c.SubRegions {
			claim("region", sr.ID)
		}
	}
	for _, rv := range sc.Rivals {
		claim("rival", rv.ID)
		if rv.ID == PlayerFaction {
			errs = append(errs, fmt.Errorf("rival id %q is reserved", rv.ID))
		}
		if !rv.Personality.Valid() {
			errs = append(errs, fmt.Errorf("rival %q has unknown personality %q", rv.ID, rv.Personality))
		}
		if !seen["region:"+rv.StartingRegionID] {
			errs = append(errs, fmt.Errorf("rival %q starts in unknown region %q", rv.ID, rv.StartingRegionID))
		}
	}
	for _, ev := range sc.Events {
		claim("event", ev.ID)
		if ev.Duration < 0 {
			errs = append(errs, fmt.Errorf("event %q has negative duration", ev.ID))
		}
		errs = append(errs, checkEffects(ev.ID, ev.Effects)...)
		opts := make(map[string]bool)
		for _, o := range ev.Options {
			if opts[o.ID] {
				errs = append(errs, fmt.Errorf("event %q has duplicate option %q", ev.ID, o.ID))
			}
			opts[o.ID] = true
			errs = append(errs, checkEffects(ev.ID, o.Effects)...)
		}
	}
	return errors.Join(errs...)
}

// checkEffects rejects ipBonus effects aimed at a country or sub-region.
// Influence income is global, so such an effect could never apply.
func checkEffects(eventID string, effects []Effect) []error {
	var errs []error
	for _, eff := range effects {
		if eff.Property == PropIPBonus && eff.Target != TargetGlobal {
			errs = append(errs, fmt.Errorf("event %q has ipBonus effect targeting %s; ipBonus must be global", eventID, eff.Target))
		}
	}
	return errs
}

// Catalog returns the evolution catalog built from the scenario items.
func (sc *Scenario) Catalog() *Catalog {
	if sc.catalog == nil {
		sc.catalog = NewCatalog(sc.Items)
	}
	return sc.catalog
}

// Movement looks up a movement by ID.
func (sc *Scenario) Movement(id string) (Movement, bool) {
	for _, m := range sc.Movements {
		if m.ID == id {
			return m, true
		}
	}
	return Movement{}, false
}

// NewInitialState builds the turn-zero snapshot. A start region naming a
// country with sub-regions seeds that country's first sub-region.
func NewInitialState(sc *Scenario, tun Tuning, movementID, startRegionID string) (*GameState, error) {
	mv, ok := sc.Movement(movementID)
	if !ok {
		return nil, reject(ReasonUnknownMovement, "unknown movement %q", movementID)
	}

	s := &GameState{
		MovementID:   mv.ID,
		MovementName: mv.Name,
		Status:       StatusActive,
		Player: PlayerState{
			InfluencePoints: max(0, tun.StartingIP),
			EvolvedItems:    make(map[string]bool),
		},
	}
	for _, cs := range sc.Countries {
		c := &Country{Region: Region{ID: cs.ID, Name: cs.Name, Demographics: clampDemographics(cs.Demographics)}}
		for _, srs := range cs.SubRegions {
			c.SubRegions = append(c.SubRegions, &Region{
				ID:           srs.ID,
				Name:         srs.Name,
				CountryID:    cs.ID,
				Demographics: srs.demographics(c.Demographics),
			})
		}
		s.Countries = append(s.Countries, c)
	}

	start := s.seedLeaf(startRegionID)
	if start == nil {
		return nil, reject(ReasonUnknownRegion, "unknown region %q", startRegionID)
	}
	s.StartRegionID = start.ID
	Settle(start, PlayerFaction, tun.StartingShare)
	s.Player.MaxAdoptionEver = s.GlobalAdoption()

	for _, rs := range sc.Rivals {
		home := s.seedLeaf(rs.StartingRegionID)
		if home == nil {
			return nil, fmt.Errorf("rival %q: unknown region %q", rs.ID, rs.StartingRegionID)
		}
		rv := &Rival{
			ID:               rs.ID,
			Name:             rs.Name,
			Personality:      rs.Personality,
			Aggressiveness:   clamp01(rs.Aggressiveness),
			StartingRegionID: home.ID,
			InfluencePoints:  max(0, tun.StartingIP),
			EvolvedItems:     make(map[string]bool),
			Stance:           Neutral,
		}
		Settle(home, rv.ID, tun.StartingShare)
		s.Rivals = append(s.Rivals, rv)
	}

	for _, es := range sc.Events {
		ev := &GlobalEvent{
			ID:          es.ID,
			Name:        es.Name,
			Description: es.Description,
			TurnStart:   es.TurnStart,
			Duration:    es.Duration,
			Effects:     append([]Effect(nil), es.Effects...),
			Status:      EventPending,
		}
		for _, o := range es.Options {
			ev.Options = append(ev.Options, EventOption{ID: o.ID, Label: o.Label, Effects: append([]Effect(nil), o.Effects...)})
		}
		s.Events = append(s.Events, ev)
	}
	return s, nil
}

// seedLeaf resolves a region ID to the leaf that receives a starting share.
func (s *GameState) seedLeaf(id string) *Region {
	if c := s.Country(id); c != nil {
		return c.Leaves()[0]
	}
	r := s.Region(id)
	if r == nil || !r.IsSubRegion() {
		return nil
	}
	return r
}

func clampDemographics(d Demographics) Demographics {
	return Demographics{
		InternetPenetration: clamp01(d.InternetPenetration),
		EducationLevel:      clamp01(d.EducationLevel),
		EconomicDevelopment: clamp01(d.EconomicDevelopment),
		CulturalOpenness:    clamp01(d.CulturalOpenness),
		MediaFreedom:        clamp01(d.MediaFreedom),
	}
}
