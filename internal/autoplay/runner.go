package autoplay

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/freeeve/zeitgeist/internal/model"
	"github.com/freeeve/zeitgeist/pkg/culture"
)

// PlayerID owns every autoplay result.
const PlayerID = "autoplay"

// ConditionTurnLimit marks a game stopped at MaxTurns before any terminal
// condition.
const ConditionTurnLimit = "turn_limit"

// Config configures a single autoplay game.
type Config struct {
	MovementID    string
	StartRegionID string
	Seed          int64
	MaxTurns      int // 0 = 200
	Strategy      Strategy
}

// RunGame plays one game to a terminal state or MaxTurns and returns its
// result. The same config and seed always produce the same result apart from
// the generated IDs.
func RunGame(ctx context.Context, sc *culture.Scenario, tun culture.Tuning, cfg Config) (*model.GameResult, error) {
	if cfg.MaxTurns <= 0 {
		cfg.MaxTurns = 200
	}
	if cfg.Strategy == nil {
		cfg.Strategy = &Autopilot{Collect: DefaultCollect}
	}

	g := culture.NewGame(sc, tun, culture.NewRand(cfg.Seed))
	if err := g.Start(cfg.MovementID, cfg.StartRegionID); err != nil {
		return nil, fmt.Errorf("start game: %w", err)
	}
	sess := model.Session{
		ID:            uuid.NewString(),
		PlayerID:      PlayerID,
		MovementID:    cfg.MovementID,
		StartRegionID: cfg.StartRegionID,
		Seed:          cfg.Seed,
		CreatedAt:     time.Now().UTC(),
	}

	for turn := 0; turn < cfg.MaxTurns; turn++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := cfg.Strategy.PlayTurn(g); err != nil {
			return nil, fmt.Errorf("%s turn %d: %w", cfg.Strategy.Name(), turn+1, err)
		}
		rep, err := g.AdvanceTurn()
		if err != nil {
			return nil, fmt.Errorf("advance turn %d: %w", turn+1, err)
		}
		if rep.GameOver != nil {
			break
		}
	}

	s := g.State()
	res := model.NewGameResult(sess, s)
	if res == nil {
		res = &model.GameResult{
			SessionID:     sess.ID,
			PlayerID:      sess.PlayerID,
			MovementID:    s.MovementID,
			StartRegionID: s.StartRegionID,
			Seed:          sess.Seed,
			Condition:     ConditionTurnLimit,
			Title:         "Turn Limit",
			Turns:         s.Turn,
			FinalAdoption: s.GlobalAdoption(),
			PeakAdoption:  s.Player.MaxAdoptionEver,
		}
	}
	res.ID = uuid.NewString()
	res.FinishedAt = time.Now().UTC()

	log.Debug().
		Str("movement", res.MovementID).
		Int64("seed", res.Seed).
		Str("condition", res.Condition).
		Int("turns", res.Turns).
		Float64("adoption", res.FinalAdoption).
		Msg("Autoplay game finished")
	return res, nil
}
