package culture

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tuning holds every numeric constant of the simulation. The zero value is not
// useful; start from DefaultTuning or LoadTuning.
type Tuning struct {
	StartingShare    float64 `yaml:"starting_share"`
	StartingIP       int     `yaml:"starting_ip"`
	StanceChangeCost int     `yaml:"stance_change_cost"`
	RecentEventsKept int     `yaml:"recent_events_kept"`

	Spread     SpreadTuning     `yaml:"spread"`
	Resistance ResistanceTuning `yaml:"resistance"`
	Rivals     RivalTuning      `yaml:"rivals"`
	Income     IncomeTuning     `yaml:"income"`
	Victory    VictoryTuning    `yaml:"victory"`
}

// SpreadTuning weights the player spread formula.
type SpreadTuning struct {
	InternalGrowthRate   float64 `yaml:"internal_growth_rate"`
	InternetWeight       float64 `yaml:"internet_weight"`
	OpennessWeight       float64 `yaml:"openness_weight"`
	TraitWeight          float64 `yaml:"trait_weight"`
	EducationWeight      float64 `yaml:"education_weight"`
	StartRegionBoost     float64 `yaml:"start_region_boost"`
	StartRegionThreshold float64 `yaml:"start_region_threshold"`
	OffStartFactor       float64 `yaml:"off_start_factor"`
	ResistanceWeight     float64 `yaml:"resistance_weight"`

	SeedBaseChance      float64 `yaml:"seed_base_chance"`
	SeedInternetWeight  float64 `yaml:"seed_internet_weight"`
	SeedOpennessWeight  float64 `yaml:"seed_openness_weight"`
	SeedTraitWeight     float64 `yaml:"seed_trait_weight"`
	SeedEducationWeight float64 `yaml:"seed_education_weight"`
	ContagionWeight     float64 `yaml:"contagion_weight"`
	SeedGain            float64 `yaml:"seed_gain"`

	RivalPenaltyOnPlayer float64 `yaml:"rival_penalty_on_player"`
}

// ResistanceTuning drives resistance growth, decay and archetypes.
type ResistanceTuning struct {
	ActivationThreshold     float64 `yaml:"activation_threshold"`
	DecayRate               float64 `yaml:"decay_rate"`
	ContestedMin            float64 `yaml:"contested_min"`
	ContestedMax            float64 `yaml:"contested_max"`
	OrganicChance           float64 `yaml:"organic_chance"`
	OrganicIncrease         float64 `yaml:"organic_increase"`
	ManagementTraitID       string  `yaml:"management_trait_id"`
	ManagementDampening     float64 `yaml:"management_dampening"`
	GuardianDecayMultiplier float64 `yaml:"guardian_decay_multiplier"`
	GuardianLowOpenness     float64 `yaml:"guardian_low_openness"`
	GuardianSpreadDebuff    float64 `yaml:"guardian_spread_debuff"`
	SuppressorMultiplier    float64 `yaml:"suppressor_multiplier"`
	RebelAdoptionThreshold  float64 `yaml:"rebel_adoption_threshold"`
	RebelChanceMultiplier   float64 `yaml:"rebel_chance_multiplier"`
	RebelIncreaseMultiplier float64 `yaml:"rebel_increase_multiplier"`
	Cap                     float64 `yaml:"cap"`
}

// Profile is the per-personality weighting of the rival spread formula.
type Profile struct {
	BaseRate            float64 `yaml:"base_rate"`
	OpennessWeight      float64 `yaml:"openness_weight"`
	PlayerPenaltyWeight float64 `yaml:"player_penalty_weight"`
	ExpansionChance     float64 `yaml:"expansion_chance"`
	// ScaleByAggressiveness multiplies BaseRate and ExpansionChance by the
	// rival's aggressiveness.
	ScaleByAggressiveness bool `yaml:"scale_by_aggressiveness"`
}

// RivalTuning drives the rival AI.
type RivalTuning struct {
	BaseIncome            float64                 `yaml:"base_income"`
	IncomeRate            float64                 `yaml:"income_rate"`
	TraitBonus            float64                 `yaml:"trait_bonus"`
	FrontierFactor        float64                 `yaml:"frontier_factor"`
	ContestedMin          float64                 `yaml:"contested_min"`
	ContestedMax          float64                 `yaml:"contested_max"`
	FootholdThreshold     float64                 `yaml:"foothold_threshold"`
	DominanceThreshold    float64                 `yaml:"dominance_threshold"`
	HomeHoldThreshold     float64                 `yaml:"home_hold_threshold"`
	SuppressionThreshold  float64                 `yaml:"suppression_threshold"`
	SuppressionChance     float64                 `yaml:"suppression_chance"`
	SuppressionAmount     float64                 `yaml:"suppression_amount"`
	CounterThreshold      float64                 `yaml:"counter_threshold"`
	CounterChance         float64                 `yaml:"counter_chance"`
	CounterIncrement      float64                 `yaml:"counter_increment"`
	ExpansionSeed         float64                 `yaml:"expansion_seed"`
	AlliedPlayerPenalty   float64                 `yaml:"allied_player_penalty"`
	HostileGainMultiplier float64                 `yaml:"hostile_gain_multiplier"`
	Profiles              map[Personality]Profile `yaml:"profiles"`
}

// Profile returns the weighting for p, or a zero profile when none is set.
func (t RivalTuning) Profile(p Personality) Profile {
	return t.Profiles[p]
}

// IncomeTuning drives the player's per-turn influence income.
type IncomeTuning struct {
	Base               float64 `yaml:"base"`
	AdoptionMultiplier float64 `yaml:"adoption_multiplier"`
	TraitBonus         float64 `yaml:"trait_bonus"`
}

// VictoryTuning holds the terminal thresholds.
type VictoryTuning struct {
	WinAdoption             float64 `yaml:"win_adoption"`
	RivalSuppressionCeiling float64 `yaml:"rival_suppression_ceiling"`
	DominanceThreshold      float64 `yaml:"dominance_threshold"`
	IPZeroStreakLimit       int     `yaml:"ip_zero_streak_limit"`
	CollapseFloor           float64 `yaml:"collapse_floor"`
	CollapseMinPeak         float64 `yaml:"collapse_min_peak"`
}

// DefaultTuning returns the shipped balance values.
func DefaultTuning() Tuning {
	return Tuning{
		StartingShare:    0.05,
		StartingIP:       10,
		StanceChangeCost: 25,
		RecentEventsKept: 5,
		Spread: SpreadTuning{
			InternalGrowthRate:   0.01,
			InternetWeight:       0.02,
			OpennessWeight:       0.015,
			TraitWeight:          0.03,
			EducationWeight:      0.01,
			StartRegionBoost:     1.2,
			StartRegionThreshold: 0.04,
			OffStartFactor:       0.8,
			ResistanceWeight:     0.75,
			SeedBaseChance:       0.01,
			SeedInternetWeight:   0.03,
			SeedOpennessWeight:   0.03,
			SeedTraitWeight:      0.03,
			SeedEducationWeight:  0.01,
			ContagionWeight:      0.5,
			SeedGain:             0.01,
			RivalPenaltyOnPlayer: 0.3,
		},
		Resistance: ResistanceTuning{
			ActivationThreshold:     0.3,
			DecayRate:               0.002,
			ContestedMin:            0.3,
			ContestedMax:            0.9,
			OrganicChance:           0.1,
			OrganicIncrease:         0.02,
			ManagementTraitID:       "resistance_management",
			ManagementDampening:     0.5,
			GuardianDecayMultiplier: 0.5,
			GuardianLowOpenness:     0.4,
			GuardianSpreadDebuff:    0.1,
			SuppressorMultiplier:    1.25,
			RebelAdoptionThreshold:  0.5,
			RebelChanceMultiplier:   2,
			RebelIncreaseMultiplier: 1.5,
			Cap:                     0.99,
		},
		Rivals: RivalTuning{
			BaseIncome:            3,
			IncomeRate:            0.1,
			TraitBonus:            0.5,
			FrontierFactor:        0.25,
			ContestedMin:          0.2,
			ContestedMax:          0.8,
			FootholdThreshold:     0.2,
			DominanceThreshold:    0.6,
			HomeHoldThreshold:     0.9,
			SuppressionThreshold:  0.3,
			SuppressionChance:     0.15,
			SuppressionAmount:     0.02,
			CounterThreshold:      0.5,
			CounterChance:         0.1,
			CounterIncrement:      0.03,
			ExpansionSeed:         0.02,
			AlliedPlayerPenalty:   2,
			HostileGainMultiplier: 1.2,
			Profiles: map[Personality]Profile{
				AggressiveExpansionist:   {BaseRate: 0.03, OpennessWeight: 0.2, PlayerPenaltyWeight: 0.2, ExpansionChance: 0.3, ScaleByAggressiveness: true},
				CautiousConsolidator:     {BaseRate: 0.025, OpennessWeight: 0.8, PlayerPenaltyWeight: 0.5, ExpansionChance: 0.15},
				OpportunisticInfiltrator: {BaseRate: 0.025, OpennessWeight: 0.2, PlayerPenaltyWeight: 0.2, ExpansionChance: 0.2},
				IsolationistDefender:     {BaseRate: 0.04, OpennessWeight: 0.1, PlayerPenaltyWeight: 0.1, ExpansionChance: 0},
				ZealousPurifier:          {BaseRate: 0.045, OpennessWeight: 0.5, PlayerPenaltyWeight: 0.5, ExpansionChance: 0.25},
			},
		},
		Income: IncomeTuning{
			Base:               5,
			AdoptionMultiplier: 10,
			TraitBonus:         1,
		},
		Victory: VictoryTuning{
			WinAdoption:             0.75,
			RivalSuppressionCeiling: 0.15,
			DominanceThreshold:      0.6,
			IPZeroStreakLimit:       5,
			CollapseFloor:           0.02,
			CollapseMinPeak:         0.1,
		},
	}
}

// LoadTuning reads a YAML file over the defaults. Keys absent from the file
// keep their default values; a profile entry replaces that personality's
// defaults as a whole.
func LoadTuning(path string) (Tuning, error) {
	t := DefaultTuning()
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning %s: %w", path, err)
	}
	return t, nil
}
