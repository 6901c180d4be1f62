package culture

import "math"

// Income computes the player's influence income for snapshot s:
// base plus each leaf's adoption times its effective economic development,
// plus a bonus per evolved item, with global ipBonus modifiers applied last.
func Income(s *GameState, tun IncomeTuning) int {
	raw := tun.Base
	for _, r := range s.Leaves() {
		econ := clamp01(ModifiersFor(s.Events, r).Apply(PropEconomicDevelopment, r.EconomicDevelopment))
		raw += r.Adoption * econ * tun.AdoptionMultiplier
	}
	raw += float64(len(s.Player.EvolvedIDs())) * tun.TraitBonus
	raw = ModifiersFor(s.Events, nil).Apply(PropIPBonus, raw)
	return max(0, floorIP(raw))
}

// addIP adds delta to a balance, saturating at math.MaxInt and never going
// below zero.
func addIP(ip, delta int) int {
	if delta > 0 && ip > math.MaxInt-delta {
		return math.MaxInt
	}
	return max(0, ip+delta)
}

// floorIP converts a float amount to whole influence points, saturating
// instead of wrapping. NaN counts as zero.
func floorIP(f float64) int {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt:
		return math.MaxInt
	case f <= math.MinInt:
		return math.MinInt
	}
	return int(math.Floor(f))
}
