package culture

// PlayerFaction is the faction ID the ledger uses for the player's share.
const PlayerFaction = "player"

const (
	// pruneEpsilon is the share below which a debited occupant is dropped.
	pruneEpsilon = 1e-3
	// normalizeEpsilon is the drift tolerated before shares are rescaled.
	normalizeEpsilon = 1e-9
)

// Settlement describes the outcome of a single Settle call.
type Settlement struct {
	Gain      float64            `json:"gain"`
	FromEmpty float64            `json:"from_empty"`
	Taken     float64            `json:"taken"`
	Debits    map[string]float64 `json:"debits,omitempty"` // faction -> amount removed
	Pruned    []string           `json:"pruned,omitempty"`
}

func share(r *Region, faction string) float64 {
	if faction == PlayerFaction {
		return r.Adoption
	}
	return r.Presence[faction]
}

func setShare(r *Region, faction string, v float64) {
	v = clamp01(v)
	if faction == PlayerFaction {
		r.Adoption = v
		return
	}
	if r.Presence == nil {
		r.Presence = make(map[string]float64)
	}
	r.Presence[faction] = v
}

func dropShare(r *Region, faction string) {
	if faction == PlayerFaction {
		r.Adoption = 0
		return
	}
	delete(r.Presence, faction)
}

// occupants returns every faction other than self holding a share in r, the
// player first and rivals in ID order.
func occupants(r *Region, self string) []string {
	var out []string
	if self != PlayerFaction && r.Adoption > 0 {
		out = append(out, PlayerFaction)
	}
	for _, id := range r.rivalIDs() {
		if id != self && r.Presence[id] > 0 {
			out = append(out, id)
		}
	}
	return out
}

// Settle grants faction up to desired share of r. Unclaimed space is used
// first; the rest is taken from the other occupants in proportion to their
// shares. Non-positive requests are no-ops.
func Settle(r *Region, faction string, desired float64) Settlement {
	var st Settlement
	if desired <= 0 {
		return st
	}

	others := occupants(r, faction)
	occupied := 0.0
	for _, f := range others {
		occupied += share(r, f)
	}
	own := share(r, faction)
	empty := max(0, 1-occupied-own)

	st.FromEmpty = min(desired, empty)
	remaining := desired - st.FromEmpty
	if remaining > 0 && occupied > 0 {
		st.Taken = min(remaining, occupied)
		st.Debits = make(map[string]float64, len(others))
		for _, f := range others {
			cur := share(r, f)
			debit := st.Taken * cur / occupied
			st.Debits[f] = debit
			next := cur - debit
			if next < pruneEpsilon {
				dropShare(r, f)
				st.Pruned = append(st.Pruned, f)
				continue
			}
			setShare(r, f, next)
		}
	}

	st.Gain = st.FromEmpty + st.Taken
	setShare(r, faction, own+st.Gain)
	return st
}

// Normalize rescales every share in r so the total is at most one. It reports
// whether anything changed. Running it twice is the same as running it once.
func Normalize(r *Region) bool {
	total := r.Occupancy()
	if total <= 1+normalizeEpsilon {
		return false
	}
	scale := 1 / total
	r.Adoption *= scale
	for id, v := range r.Presence {
		r.Presence[id] = v * scale
	}
	return true
}

// normalizeAll runs Normalize on every leaf and returns how many changed.
func normalizeAll(s *GameState) int {
	n := 0
	for _, r := range s.Leaves() {
		if Normalize(r) {
			n++
		}
	}
	return n
}
