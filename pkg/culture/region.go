package culture

import "sort"

// Archetype is the resistance behavior profile a region adopts once its
// resistance crosses the activation threshold.
type Archetype string

const (
	ArchetypeNone            Archetype = ""
	TraditionalistGuardians  Archetype = "traditionalist_guardians"
	CounterCulturalRebels    Archetype = "counter_cultural_rebels"
	AuthoritarianSuppressors Archetype = "authoritarian_suppressors"
)

// Archetypes lists the assignable archetypes in draw order.
func Archetypes() []Archetype {
	return []Archetype{TraditionalistGuardians, CounterCulturalRebels, AuthoritarianSuppressors}
}

// Demographics are the static 0–1 attributes of a region.
type Demographics struct {
	InternetPenetration float64 `json:"internet_penetration" yaml:"internet_penetration"`
	EducationLevel      float64 `json:"education_level" yaml:"education_level"`
	EconomicDevelopment float64 `json:"economic_development" yaml:"economic_development"`
	CulturalOpenness    float64 `json:"cultural_openness" yaml:"cultural_openness"`
	MediaFreedom        float64 `json:"media_freedom" yaml:"media_freedom"`
}

// Region is a leaf of the map: a country without sub-regions, or a sub-region.
// Its dynamic fields are authoritative only when it is a leaf.
type Region struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CountryID string `json:"country_id,omitempty"` // parent country; empty for countries
	Demographics

	Adoption   float64            `json:"adoption"`
	Resistance float64            `json:"resistance"`
	Archetype  Archetype          `json:"archetype,omitempty"`
	Presence   map[string]float64 `json:"presence,omitempty"` // rival ID -> share
}

// IsSubRegion returns true if the region belongs to a parent country.
func (r *Region) IsSubRegion() bool {
	return r.CountryID != ""
}

// Occupancy returns the total share held by the player and all rivals.
func (r *Region) Occupancy() float64 {
	total := r.Adoption
	for _, id := range r.rivalIDs() {
		total += r.Presence[id]
	}
	return total
}

// StrongestRival returns the rival with the largest share and that share.
// Ties resolve to the lexically smaller rival ID.
func (r *Region) StrongestRival() (string, float64) {
	best, bestShare := "", 0.0
	for _, id := range r.rivalIDs() {
		if s := r.Presence[id]; s > bestShare {
			best, bestShare = id, s
		}
	}
	return best, bestShare
}

// rivalIDs returns the keys of Presence in sorted order so every fold over
// rivals is reproducible.
func (r *Region) rivalIDs() []string {
	ids := make([]string, 0, len(r.Presence))
	for id := range r.Presence {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (r *Region) clone() *Region {
	c := *r
	if r.Presence != nil {
		c.Presence = make(map[string]float64, len(r.Presence))
		for k, v := range r.Presence {
			c.Presence[k] = v
		}
	}
	return &c
}

// Country is a top-level region. When it has sub-regions its dynamic state is
// a view over the children and the embedded fields are never written.
type Country struct {
	Region
	SubRegions []*Region `json:"sub_regions,omitempty"`
}

// HasSubRegions returns true if the country's state is derived from children.
func (c *Country) HasSubRegions() bool {
	return len(c.SubRegions) > 0
}

// Leaves returns the regions that hold authoritative occupancy.
func (c *Country) Leaves() []*Region {
	if !c.HasSubRegions() {
		return []*Region{&c.Region}
	}
	return c.SubRegions
}

// AdoptionLevel is the player's share, averaged over sub-regions when present.
func (c *Country) AdoptionLevel() float64 {
	if !c.HasSubRegions() {
		return c.Adoption
	}
	sum := 0.0
	for _, sr := range c.SubRegions {
		sum += sr.Adoption
	}
	return sum / float64(len(c.SubRegions))
}

// ResistanceLevel is the resistance, averaged over sub-regions when present.
func (c *Country) ResistanceLevel() float64 {
	if !c.HasSubRegions() {
		return c.Resistance
	}
	sum := 0.0
	for _, sr := range c.SubRegions {
		sum += sr.Resistance
	}
	return sum / float64(len(c.SubRegions))
}

// RivalPresence is each rival's share; with sub-regions it is the per-rival
// maximum across children.
func (c *Country) RivalPresence() map[string]float64 {
	out := make(map[string]float64)
	for _, leaf := range c.Leaves() {
		for id, s := range leaf.Presence {
			if s > out[id] {
				out[id] = s
			}
		}
	}
	return out
}

// CountryView is the read-only shape handed to presentation collaborators.
type CountryView struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Adoption   float64            `json:"adoption"`
	Resistance float64            `json:"resistance"`
	Archetype  Archetype          `json:"archetype,omitempty"`
	Presence   map[string]float64 `json:"presence"`
	SubRegions []*Region          `json:"sub_regions,omitempty"`
}

// View flattens the derived country fields into a CountryView. Sub-regions are
// copied so the view can outlive the snapshot.
func (c *Country) View() CountryView {
	v := CountryView{
		ID:         c.ID,
		Name:       c.Name,
		Adoption:   c.AdoptionLevel(),
		Resistance: c.ResistanceLevel(),
		Presence:   c.RivalPresence(),
	}
	if !c.HasSubRegions() {
		v.Archetype = c.Archetype
	}
	for _, sr := range c.SubRegions {
		v.SubRegions = append(v.SubRegions, sr.clone())
	}
	return v
}

func (c *Country) clone() *Country {
	cc := &Country{Region: *c.Region.clone()}
	if c.SubRegions != nil {
		cc.SubRegions = make([]*Region, len(c.SubRegions))
		for i, sr := range c.SubRegions {
			cc.SubRegions[i] = sr.clone()
		}
	}
	return cc
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
