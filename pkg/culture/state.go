package culture

import "strings"

// GameStatus is the overall status of a game.
type GameStatus string

const (
	StatusActive GameStatus = "active"
	StatusWon    GameStatus = "won"
	StatusLost   GameStatus = "lost"
)

// PlayerState is the player's economy and progression.
type PlayerState struct {
	InfluencePoints int             `json:"influence_points"`
	EvolvedItems    map[string]bool `json:"evolved_items,omitempty"`
	MaxAdoptionEver float64         `json:"max_adoption_ever"`
	IPZeroStreak    int             `json:"ip_zero_streak"`
}

// EvolvedIDs returns the owned item IDs sorted.
func (p *PlayerState) EvolvedIDs() []string {
	return sortedSet(p.EvolvedItems)
}

// GameState is a complete snapshot of a game between turns. Turn resolution
// consumes one snapshot and produces the next; a snapshot is never mutated
// after it has been handed out.
type GameState struct {
	Turn          int            `json:"turn"`
	MovementID    string         `json:"movement_id"`
	MovementName  string         `json:"movement_name"`
	StartRegionID string         `json:"start_region_id"`
	Countries     []*Country     `json:"countries"`
	Rivals        []*Rival       `json:"rivals"` // AI turn order
	Events        []*GlobalEvent `json:"events"`
	Player        PlayerState    `json:"player"`
	Status        GameStatus     `json:"status"`
	GameOver      *GameOver      `json:"game_over,omitempty"`
	RecentEvents  []string       `json:"recent_events,omitempty"`
}

// Clone returns a deep copy of the GameState.
func (s *GameState) Clone() *GameState {
	c := &GameState{
		Turn:          s.Turn,
		MovementID:    s.MovementID,
		MovementName:  s.MovementName,
		StartRegionID: s.StartRegionID,
		Status:        s.Status,
		Player: PlayerState{
			InfluencePoints: s.Player.InfluencePoints,
			EvolvedItems:    cloneSet(s.Player.EvolvedItems),
			MaxAdoptionEver: s.Player.MaxAdoptionEver,
			IPZeroStreak:    s.Player.IPZeroStreak,
		},
	}
	c.Countries = make([]*Country, len(s.Countries))
	for i, co := range s.Countries {
		c.Countries[i] = co.clone()
	}
	c.Rivals = make([]*Rival, len(s.Rivals))
	for i, rv := range s.Rivals {
		c.Rivals[i] = rv.clone()
	}
	c.Events = make([]*GlobalEvent, len(s.Events))
	for i, ev := range s.Events {
		c.Events[i] = ev.clone()
	}
	if s.GameOver != nil {
		g := *s.GameOver
		c.GameOver = &g
	}
	if s.RecentEvents != nil {
		c.RecentEvents = append([]string(nil), s.RecentEvents...)
	}
	return c
}

// Leaves returns every region that holds authoritative occupancy, in map order.
func (s *GameState) Leaves() []*Region {
	var out []*Region
	for _, c := range s.Countries {
		out = append(out, c.Leaves()...)
	}
	return out
}

// Region finds any region (country or sub-region) by ID.
func (s *GameState) Region(id string) *Region {
	for _, c := range s.Countries {
		if c.ID == id {
			return &c.Region
		}
		for _, sr := range c.SubRegions {
			if sr.ID == id {
				return sr
			}
		}
	}
	return nil
}

// Country finds a country by ID.
func (s *GameState) Country(id string) *Country {
	for _, c := range s.Countries {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// Rival finds a rival by ID.
func (s *GameState) Rival(id string) *Rival {
	for _, rv := range s.Rivals {
		if rv.ID == id {
			return rv
		}
	}
	return nil
}

// GlobalAdoption is the player's mean share over all leaf regions.
func (s *GameState) GlobalAdoption() float64 {
	leaves := s.Leaves()
	if len(leaves) == 0 {
		return 0
	}
	sum := 0.0
	for _, r := range leaves {
		sum += r.Adoption
	}
	return sum / float64(len(leaves))
}

// RivalShare is a rival's mean share over all leaf regions.
func (s *GameState) RivalShare(rivalID string) float64 {
	leaves := s.Leaves()
	if len(leaves) == 0 {
		return 0
	}
	sum := 0.0
	for _, r := range leaves {
		sum += r.Presence[rivalID]
	}
	return sum / float64(len(leaves))
}

// Active returns true if the game still accepts turns and commands.
func (s *GameState) Active() bool {
	return s.Status == StatusActive
}

// ActiveEvents returns events currently contributing modifiers.
func (s *GameState) ActiveEvents() []*GlobalEvent {
	return s.eventsWith(EventActive)
}

// PendingEvents returns events that have not started yet.
func (s *GameState) PendingEvents() []*GlobalEvent {
	return s.eventsWith(EventPending)
}

func (s *GameState) eventsWith(status EventStatus) []*GlobalEvent {
	var out []*GlobalEvent
	for _, ev := range s.Events {
		if ev.Status == status {
			out = append(out, ev)
		}
	}
	return out
}

// RecentEventsSummary joins recent event names for the narrative generator.
func (s *GameState) RecentEventsSummary() string {
	return strings.Join(s.RecentEvents, "; ")
}

func (s *GameState) noteEvent(name string, keep int) {
	s.RecentEvents = append(s.RecentEvents, name)
	if keep > 0 && len(s.RecentEvents) > keep {
		s.RecentEvents = s.RecentEvents[len(s.RecentEvents)-keep:]
	}
}
