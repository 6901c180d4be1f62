package culture

// spreadPlayer resolves the player's spread for every leaf. Inputs are read
// from view, the post-event snapshot of this turn; writes go to next, which
// must share view's region layout.
func (e *Engine) spreadPlayer(view, next *GameState, rep *TurnReport) {
	sp, rt := e.tuning.Spread, e.tuning.Resistance
	ratio := e.catalog.traitRatio(view.Player.EvolvedItems)
	managed := view.Player.EvolvedItems[rt.ManagementTraitID]
	global := view.GlobalAdoption()

	src, dst := view.Leaves(), next.Leaves()
	for i, r := range src {
		out := dst[i]
		mods := ModifiersFor(view.Events, r)
		effOpen := effectiveOpenness(r, mods)
		effRes := effectiveResistance(r, mods, rt)
		if assignArchetype(out, effRes, rt, e.rng) {
			rep.noteArchetype(out.ID, out.Archetype)
			effRes = effectiveResistance(out, mods, rt)
		}

		var desired float64
		if r.Adoption > 0 {
			desired = sp.InternalGrowthRate +
				r.InternetPenetration*sp.InternetWeight +
				effOpen*sp.OpennessWeight +
				ratio*sp.TraitWeight +
				r.EducationLevel*sp.EducationWeight
			if r.ID == view.StartRegionID && r.Adoption > sp.StartRegionThreshold {
				desired *= sp.StartRegionBoost
			} else {
				desired *= sp.OffStartFactor
			}
			debuff := archetypeSpreadDebuff(out, effOpen, rt)
			desired *= max(0, 1-(effRes*sp.ResistanceWeight+debuff))
		} else {
			p := sp.SeedBaseChance +
				r.InternetPenetration*sp.SeedInternetWeight +
				effOpen*sp.SeedOpennessWeight +
				ratio*sp.SeedTraitWeight +
				r.EducationLevel*sp.SeedEducationWeight +
				global*sp.ContagionWeight
			if roll(e.rng, p*(1-effRes)) {
				desired = sp.SeedGain
				rep.SeededRegions = append(rep.SeededRegions, r.ID)
			}
		}

		if desired > 0 {
			desired = max(0, mods.Apply(PropAdoptionRate, desired))
			_, strongest := r.StrongestRival()
			desired *= max(0, 1-sp.RivalPenaltyOnPlayer*strongest)
			st := Settle(out, PlayerFaction, desired)
			rep.PlayerGain += st.Gain
			rep.PlayerTaken += st.Taken
		}

		if updateResistance(out, managed, rt, e.rng) {
			rep.ResistanceRises++
		}
	}
}
