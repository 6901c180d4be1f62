package culture

// effectiveOpenness is the region's openness after event modifiers.
func effectiveOpenness(r *Region, mods Modifiers) float64 {
	return clamp01(mods.Apply(PropCulturalOpenness, r.CulturalOpenness))
}

// effectiveResistance is the region's resistance after event modifiers and the
// suppressor archetype's stiffening.
func effectiveResistance(r *Region, mods Modifiers, tun ResistanceTuning) float64 {
	res := mods.Apply(PropResistanceLevel, r.Resistance)
	if r.Archetype == AuthoritarianSuppressors {
		res *= tun.SuppressorMultiplier
	}
	return clamp01(res)
}

// assignArchetype draws an archetype for r once its effective resistance
// reaches the activation threshold. An assigned archetype is permanent.
func assignArchetype(r *Region, effRes float64, tun ResistanceTuning, rng Rand) bool {
	if r.Archetype != ArchetypeNone || effRes < tun.ActivationThreshold {
		return false
	}
	all := Archetypes()
	r.Archetype = all[rng.Intn(len(all))]
	return true
}

// archetypeSpreadDebuff is the extra spread penalty from the region's archetype.
func archetypeSpreadDebuff(r *Region, effOpen float64, tun ResistanceTuning) float64 {
	if r.Archetype == TraditionalistGuardians && effOpen < tun.GuardianLowOpenness {
		return tun.GuardianSpreadDebuff
	}
	return 0
}

// updateResistance grows resistance organically while the player's share is
// contested, and otherwise lets it decay. It reports whether resistance rose.
func updateResistance(r *Region, managed bool, tun ResistanceTuning, rng Rand) bool {
	if r.Adoption >= tun.ContestedMin && r.Adoption <= tun.ContestedMax {
		chance, inc := tun.OrganicChance, tun.OrganicIncrease
		if r.Archetype == CounterCulturalRebels && r.Adoption >= tun.RebelAdoptionThreshold {
			chance *= tun.RebelChanceMultiplier
			inc *= tun.RebelIncreaseMultiplier
		}
		if managed {
			inc *= tun.ManagementDampening
		}
		if roll(rng, chance) {
			raiseResistance(r, inc, tun)
			return true
		}
	}

	decay := tun.DecayRate
	if r.Archetype == TraditionalistGuardians {
		decay *= tun.GuardianDecayMultiplier
	}
	r.Resistance = clamp01(r.Resistance - decay)
	return false
}

// raiseResistance adds inc to r's resistance, keeping it under the cap.
func raiseResistance(r *Region, inc float64, tun ResistanceTuning) {
	r.Resistance = min(tun.Cap, clamp01(r.Resistance+inc))
}
