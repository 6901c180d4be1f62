package culture

// Policy decides where a rival spreads and when it reaches for new ground.
type Policy interface {
	Name() string
	// SpreadBase returns the rival's base gain in leaf r before penalties, or
	// zero when the rival does not spread there.
	SpreadBase(rv *Rival, r *Region, prof Profile, tun RivalTuning) float64
	// WantsExpansion reports whether the rival's expansion trigger holds.
	WantsExpansion(rv *Rival, s *GameState, tun RivalTuning) bool
}

// Suppressor erodes the other factions in a region directly, outside the
// ledger. Not all policies suppress; use a type assertion to check.
type Suppressor interface {
	Suppress(rv *Rival, r *Region, tun RivalTuning, rng Rand) bool
}

// CounterActor raises resistance against the player where it dominates.
// Not all policies do; use a type assertion to check.
type CounterActor interface {
	CounterWeight() float64
}

// PolicyFor returns the policy for a personality.
func PolicyFor(p Personality) Policy {
	switch p {
	case AggressiveExpansionist:
		return AggressivePolicy{}
	case CautiousConsolidator:
		return CautiousPolicy{}
	case OpportunisticInfiltrator:
		return OpportunisticPolicy{}
	case IsolationistDefender:
		return IsolationistPolicy{}
	case ZealousPurifier:
		return ZealousPolicy{}
	default:
		return CautiousPolicy{}
	}
}

func baseRate(rv *Rival, prof Profile) float64 {
	if prof.ScaleByAggressiveness {
		return prof.BaseRate * rv.Aggressiveness
	}
	return prof.BaseRate
}

func expansionChance(rv *Rival, prof Profile) float64 {
	if prof.ScaleByAggressiveness {
		return prof.ExpansionChance * rv.Aggressiveness
	}
	return prof.ExpansionChance
}

// frontierBase applies the frontier factor to regions the rival does not hold.
func frontierBase(rv *Rival, r *Region, prof Profile, tun RivalTuning) float64 {
	base := baseRate(rv, prof)
	if r.Presence[rv.ID] <= 0 {
		base *= tun.FrontierFactor
	}
	return base
}

func holdsAbove(rv *Rival, s *GameState, threshold float64) bool {
	for _, r := range s.Leaves() {
		if r.Presence[rv.ID] > threshold {
			return true
		}
	}
	return false
}

// --- AggressivePolicy ---

// AggressivePolicy spreads everywhere in proportion to aggressiveness.
type AggressivePolicy struct{}

func (AggressivePolicy) Name() string { return string(AggressiveExpansionist) }

func (AggressivePolicy) SpreadBase(rv *Rival, r *Region, prof Profile, tun RivalTuning) float64 {
	return frontierBase(rv, r, prof, tun)
}

func (AggressivePolicy) WantsExpansion(rv *Rival, s *GameState, tun RivalTuning) bool {
	return holdsAbove(rv, s, tun.FootholdThreshold)
}

// --- CautiousPolicy ---

// CautiousPolicy only grows where it already has a foothold.
type CautiousPolicy struct{}

func (CautiousPolicy) Name() string { return string(CautiousConsolidator) }

func (CautiousPolicy) SpreadBase(rv *Rival, r *Region, prof Profile, _ RivalTuning) float64 {
	if r.Presence[rv.ID] <= 0 {
		return 0
	}
	return baseRate(rv, prof)
}

// WantsExpansion holds once the rival's average share over the regions it
// holds exceeds the dominance threshold.
func (CautiousPolicy) WantsExpansion(rv *Rival, s *GameState, tun RivalTuning) bool {
	sum, n := 0.0, 0
	for _, r := range s.Leaves() {
		if v := r.Presence[rv.ID]; v > 0 {
			sum += v
			n++
		}
	}
	return n > 0 && sum/float64(n) > tun.DominanceThreshold
}

func (CautiousPolicy) CounterWeight() float64 { return 1 }

// --- OpportunisticPolicy ---

// OpportunisticPolicy targets contested middle ground.
type OpportunisticPolicy struct{}

func (OpportunisticPolicy) Name() string { return string(OpportunisticInfiltrator) }

func contested(rv *Rival, r *Region, tun RivalTuning) bool {
	others := r.Occupancy() - r.Presence[rv.ID]
	return others > tun.ContestedMin && others < tun.ContestedMax
}

func (OpportunisticPolicy) SpreadBase(rv *Rival, r *Region, prof Profile, tun RivalTuning) float64 {
	if !contested(rv, r, tun) {
		return 0
	}
	return baseRate(rv, prof)
}

func (OpportunisticPolicy) WantsExpansion(rv *Rival, s *GameState, tun RivalTuning) bool {
	for _, r := range s.Leaves() {
		if r.Presence[rv.ID] > 0 && contested(rv, r, tun) {
			return true
		}
	}
	return false
}

// --- IsolationistPolicy ---

// IsolationistPolicy defends its home region and nothing else.
type IsolationistPolicy struct{}

func (IsolationistPolicy) Name() string { return string(IsolationistDefender) }

func (IsolationistPolicy) SpreadBase(rv *Rival, r *Region, prof Profile, _ RivalTuning) float64 {
	if r.ID != rv.StartingRegionID {
		return 0
	}
	return baseRate(rv, prof)
}

func (IsolationistPolicy) WantsExpansion(rv *Rival, s *GameState, tun RivalTuning) bool {
	home := s.Region(rv.StartingRegionID)
	return home != nil && home.Presence[rv.ID] >= tun.HomeHoldThreshold
}

func (IsolationistPolicy) CounterWeight() float64 { return 2 }

// --- ZealousPolicy ---

// ZealousPolicy spreads everywhere at the highest rate and purges other
// factions where it is strong.
type ZealousPolicy struct{}

func (ZealousPolicy) Name() string { return string(ZealousPurifier) }

func (ZealousPolicy) SpreadBase(rv *Rival, r *Region, prof Profile, tun RivalTuning) float64 {
	return frontierBase(rv, r, prof, tun)
}

func (ZealousPolicy) WantsExpansion(rv *Rival, s *GameState, tun RivalTuning) bool {
	return holdsAbove(rv, s, tun.SuppressionThreshold)
}

// Suppress subtracts a flat amount from every other faction in r. Allied
// players are spared.
func (ZealousPolicy) Suppress(rv *Rival, r *Region, tun RivalTuning, rng Rand) bool {
	if r.Presence[rv.ID] <= tun.SuppressionThreshold || !roll(rng, tun.SuppressionChance) {
		return false
	}
	for _, f := range occupants(r, rv.ID) {
		if f == PlayerFaction && rv.Stance == Allied {
			continue
		}
		next := share(r, f) - tun.SuppressionAmount
		if next < pruneEpsilon {
			dropShare(r, f)
			continue
		}
		setShare(r, f, next)
	}
	return true
}

// runRival plays one rival's turn against s.
func (e *Engine) runRival(rv *Rival, s *GameState) RivalReport {
	tun := e.tuning.Rivals
	prof := tun.Profile(rv.Personality)
	policy := PolicyFor(rv.Personality)
	rep := RivalReport{RivalID: rv.ID}

	rep.Income = floorIP(tun.BaseIncome + s.RivalShare(rv.ID)*100*tun.IncomeRate)
	rv.InfluencePoints = addIP(rv.InfluencePoints, rep.Income)
	rep.Purchased = e.rivalPurchase(rv)

	traitFactor := 1 + tun.TraitBonus*e.catalog.traitRatio(rv.EvolvedItems)
	playerWeight := prof.PlayerPenaltyWeight
	if rv.Stance == Allied {
		playerWeight *= tun.AlliedPlayerPenalty
	}
	suppressor, _ := policy.(Suppressor)
	counter, _ := policy.(CounterActor)

	for _, r := range s.Leaves() {
		if base := policy.SpreadBase(rv, r, prof, tun); base > 0 {
			open := effectiveOpenness(r, ModifiersFor(s.Events, r))
			desired := base *
				max(0, 1-prof.OpennessWeight*open) *
				max(0, 1-playerWeight*r.Adoption) *
				traitFactor
			if rv.Stance == Hostile && r.Adoption > 0 {
				desired *= tun.HostileGainMultiplier
			}
			st := Settle(r, rv.ID, desired)
			rep.Gain += st.Gain
			rep.Taken += st.Taken
		}
		if suppressor != nil && suppressor.Suppress(rv, r, tun, e.rng) {
			rep.Suppressions++
		}
		if counter != nil && r.Presence[rv.ID] > tun.CounterThreshold && r.Adoption > 0 &&
			roll(e.rng, tun.CounterChance*rv.Aggressiveness*counter.CounterWeight()) {
			raiseResistance(r, tun.CounterIncrement, e.tuning.Resistance)
			rep.CounterActions++
		}
	}

	if policy.WantsExpansion(rv, s, tun) && roll(e.rng, expansionChance(rv, prof)) {
		var open []*Region
		for _, r := range s.Leaves() {
			if r.Presence[rv.ID] <= 0 {
				open = append(open, r)
			}
		}
		if len(open) > 0 {
			target := open[e.rng.Intn(len(open))]
			if st := Settle(target, rv.ID, tun.ExpansionSeed); st.Gain > 0 {
				rep.ExpandedTo = target.ID
				rep.Gain += st.Gain
			}
		}
	}
	return rep
}

// rivalPurchase buys the cheapest affordable item, breaking cost ties at
// random. It returns the purchased item ID or "".
func (e *Engine) rivalPurchase(rv *Rival) string {
	cands := e.catalog.Affordable(rv.EvolvedItems, rv.InfluencePoints)
	if len(cands) == 0 {
		return ""
	}
	n := 1
	for n < len(cands) && cands[n].Cost == cands[0].Cost {
		n++
	}
	pick := cands[0]
	if n > 1 {
		pick = cands[e.rng.Intn(n)]
	}
	rv.InfluencePoints -= pick.Cost
	if rv.EvolvedItems == nil {
		rv.EvolvedItems = make(map[string]bool)
	}
	rv.EvolvedItems[pick.ID] = true
	return pick.ID
}
