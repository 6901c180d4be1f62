package culture

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func spreadOnce(e *Engine, s *GameState) (*GameState, *TurnReport) {
	next := s.Clone()
	rep := &TurnReport{}
	e.spreadPlayer(s.Clone(), next, rep)
	return next, rep
}

func TestSpreadSeedsEmptyRegions(t *testing.T) {
	tun := DefaultTuning()
	s := flatState("home", "away")
	s.StartRegionID = "home"
	s.Region("home").Adoption = 0.05

	next, rep := spreadOnce(NewEngine(NewCatalog(nil), tun, fixedRand{}), s)

	assert.Equal(t, []string{"away"}, rep.SeededRegions)
	assert.InDelta(t, tun.Spread.SeedGain, next.Region("away").Adoption, 1e-12)
}

func TestSpreadSeedingCanFail(t *testing.T) {
	s := flatState("home", "away")
	s.StartRegionID = "home"
	s.Region("home").Adoption = 0.05

	next, rep := spreadOnce(NewEngine(NewCatalog(nil), DefaultTuning(), fixedRand{f: 0.999}), s)

	assert.Empty(t, rep.SeededRegions)
	assert.Zero(t, next.Region("away").Adoption)
}

func TestSpreadFavorsEstablishedStartRegion(t *testing.T) {
	s := flatState("home", "away")
	s.StartRegionID = "home"
	s.Region("home").Adoption = 0.05
	s.Region("away").Adoption = 0.05

	next, _ := spreadOnce(NewEngine(NewCatalog(nil), DefaultTuning(), fixedRand{f: 0.999}), s)

	homeGain := next.Region("home").Adoption - 0.05
	awayGain := next.Region("away").Adoption - 0.05
	assert.InDelta(t, 1.2/0.8, homeGain/awayGain, 1e-9)
}

func TestSpreadSlowedByRivalsAndResistance(t *testing.T) {
	base := flatState("x")
	base.Region("x").Adoption = 0.05
	e := NewEngine(NewCatalog(nil), DefaultTuning(), fixedRand{f: 0.999})

	clear, _ := spreadOnce(e, base)
	clearGain := clear.Region("x").Adoption - 0.05

	rivaled := base.Clone()
	setShare(rivaled.Region("x"), "r", 0.5)
	withRival, _ := spreadOnce(e, rivaled)
	assert.InDelta(t, clearGain*(1-0.3*0.5), withRival.Region("x").Adoption-0.05, 1e-12)

	resisted := base.Clone()
	resisted.Region("x").Resistance = 0.2
	withResistance, _ := spreadOnce(e, resisted)
	assert.InDelta(t, clearGain*(1-0.2*0.75), withResistance.Region("x").Adoption-0.05, 1e-12)
}

func TestSpreadAppliesAdoptionRateModifier(t *testing.T) {
	base := flatState("x")
	base.Region("x").Adoption = 0.05
	e := NewEngine(NewCatalog(nil), DefaultTuning(), fixedRand{f: 0.999})
	plain, _ := spreadOnce(e, base)

	boosted := base.Clone()
	boosted.Events = []*GlobalEvent{{ID: "boom", Status: EventActive,
		Effects: []Effect{{Target: TargetGlobal, Property: PropAdoptionRate, Value: 2, IsMultiplier: true}}}}
	got, _ := spreadOnce(e, boosted)

	assert.InDelta(t, 2*(plain.Region("x").Adoption-0.05), got.Region("x").Adoption-0.05, 1e-12)
}
