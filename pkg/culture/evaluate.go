package culture

import "fmt"

// Condition names how a game ended.
type Condition string

const (
	ConditionCulturalDominance Condition = "cultural_dominance"
	ConditionRivalDominance    Condition = "rival_dominance"
	ConditionEconomicCollapse  Condition = "economic_collapse"
	ConditionMovementCollapse  Condition = "movement_collapse"
)

// GameOver is the terminal outcome shown to the player.
type GameOver struct {
	Won         bool      `json:"won"`
	Condition   Condition `json:"condition"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	RivalID     string    `json:"rival_id,omitempty"`
	Turn        int       `json:"turn"`
}

// Evaluate checks the terminal conditions against s. It returns nil while the
// game goes on. Victory is checked before any loss.
func Evaluate(s *GameState, tun VictoryTuning) *GameOver {
	adoption := s.GlobalAdoption()

	suppressed := true
	for _, rv := range s.Rivals {
		if s.RivalShare(rv.ID) >= tun.RivalSuppressionCeiling {
			suppressed = false
			break
		}
	}
	if adoption >= tun.WinAdoption && suppressed {
		return &GameOver{
			Won:         true,
			Condition:   ConditionCulturalDominance,
			Title:       "Cultural Dominance",
			Description: fmt.Sprintf("%s has become the defining movement of its era.", s.MovementName),
			Turn:        s.Turn,
		}
	}

	for _, rv := range s.Rivals {
		if s.RivalShare(rv.ID) >= tun.DominanceThreshold {
			return &GameOver{
				Condition:   ConditionRivalDominance,
				Title:       "Overtaken by " + rv.Name,
				Description: fmt.Sprintf("%s now holds the world's attention. %s has been pushed to the margins.", rv.Name, s.MovementName),
				RivalID:     rv.ID,
				Turn:        s.Turn,
			}
		}
	}

	if tun.IPZeroStreakLimit > 0 && s.Player.IPZeroStreak >= tun.IPZeroStreakLimit {
		return &GameOver{
			Condition:   ConditionEconomicCollapse,
			Title:       "Economic Collapse",
			Description: fmt.Sprintf("%s ran out of influence for %d turns and could no longer organize.", s.MovementName, s.Player.IPZeroStreak),
			Turn:        s.Turn,
		}
	}

	if s.Turn >= 1 && s.Player.MaxAdoptionEver >= tun.CollapseMinPeak && adoption < tun.CollapseFloor {
		return &GameOver{
			Condition:   ConditionMovementCollapse,
			Title:       "Movement Collapsed",
			Description: fmt.Sprintf("%s peaked at %.0f%% adoption before fading into obscurity.", s.MovementName, s.Player.MaxAdoptionEver*100),
			Turn:        s.Turn,
		}
	}
	return nil
}
