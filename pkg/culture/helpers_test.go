package culture

// fixedRand always returns the same draws, so every roll with a positive
// probability above f succeeds.
type fixedRand struct {
	f float64
	i int
}

func (r fixedRand) Float64() float64 { return r.f }
func (r fixedRand) Intn(n int) int {
	if r.i >= n {
		return n - 1
	}
	return r.i
}

func demo(v float64) Demographics {
	return Demographics{
		InternetPenetration: v,
		EducationLevel:      v,
		EconomicDevelopment: v,
		CulturalOpenness:    v,
		MediaFreedom:        v,
	}
}

// flatState builds an active state of single-leaf countries named by ids.
func flatState(ids ...string) *GameState {
	s := &GameState{
		MovementID:   "m",
		MovementName: "Test Movement",
		Status:       StatusActive,
		Player:       PlayerState{EvolvedItems: map[string]bool{}},
	}
	for _, id := range ids {
		s.Countries = append(s.Countries, &Country{Region: Region{ID: id, Name: id, Demographics: demo(0.5)}})
	}
	return s
}

func addRival(s *GameState, id string, p Personality, home string, share float64) *Rival {
	rv := &Rival{
		ID:               id,
		Name:             id,
		Personality:      p,
		Aggressiveness:   0.5,
		StartingRegionID: home,
		EvolvedItems:     map[string]bool{},
		Stance:           Neutral,
	}
	if share > 0 {
		setShare(s.Region(home), id, share)
	}
	s.Rivals = append(s.Rivals, rv)
	return rv
}

// oneCountryScenario is a minimal scenario with one country and no rivals.
func oneCountryScenario() *Scenario {
	return &Scenario{
		Name:      "solo",
		Movements: []Movement{{ID: "m", Name: "Test Movement"}},
		Items: []EvolutionItem{
			{ID: "basic", Name: "Basic", Cost: 5},
			{ID: "advanced", Name: "Advanced", Cost: 10, Prerequisites: []string{"basic"}},
		},
		Countries: []CountrySeed{{ID: "home", Name: "Home", Demographics: demo(0.5)}},
	}
}
