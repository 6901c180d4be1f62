package culture

import "sort"

// Personality selects a rival's spread and expansion policy.
type Personality string

const (
	AggressiveExpansionist   Personality = "aggressive_expansionist"
	CautiousConsolidator     Personality = "cautious_consolidator"
	OpportunisticInfiltrator Personality = "opportunistic_infiltrator"
	IsolationistDefender     Personality = "isolationist_defender"
	ZealousPurifier          Personality = "zealous_purifier"
)

// Personalities returns all personalities in a fixed order.
func Personalities() []Personality {
	return []Personality{
		AggressiveExpansionist,
		CautiousConsolidator,
		OpportunisticInfiltrator,
		IsolationistDefender,
		ZealousPurifier,
	}
}

// Valid returns true if p is one of the known personalities.
func (p Personality) Valid() bool {
	for _, known := range Personalities() {
		if p == known {
			return true
		}
	}
	return false
}

// Stance is a rival's diplomatic posture toward the player.
type Stance string

const (
	Allied  Stance = "allied"
	Neutral Stance = "neutral"
	Hostile Stance = "hostile"
)

// Valid returns true if s is a known stance.
func (s Stance) Valid() bool {
	return s == Allied || s == Neutral || s == Hostile
}

// Rival is an AI-controlled movement competing for the same influence space.
type Rival struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Personality      Personality     `json:"personality"`
	Aggressiveness   float64         `json:"aggressiveness"`
	StartingRegionID string          `json:"starting_region_id"`
	InfluencePoints  int             `json:"influence_points"`
	EvolvedItems     map[string]bool `json:"evolved_items,omitempty"`
	Stance           Stance          `json:"stance"`
}

// Owns returns true if the rival has evolved the item.
func (rv *Rival) Owns(itemID string) bool {
	return rv.EvolvedItems[itemID]
}

// EvolvedIDs returns the owned item IDs sorted.
func (rv *Rival) EvolvedIDs() []string {
	return sortedSet(rv.EvolvedItems)
}

func (rv *Rival) clone() *Rival {
	c := *rv
	c.EvolvedItems = cloneSet(rv.EvolvedItems)
	return &c
}

func cloneSet(s map[string]bool) map[string]bool {
	if s == nil {
		return nil
	}
	c := make(map[string]bool, len(s))
	for k, v := range s {
		c[k] = v
	}
	return c
}

func sortedSet(s map[string]bool) []string {
	out := make([]string, 0, len(s))
	for k, ok := range s {
		if ok {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}
