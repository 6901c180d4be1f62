package autoplay

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/freeeve/zeitgeist/internal/model"
	"github.com/freeeve/zeitgeist/pkg/culture"
)

// BatchConfig configures a run of many seeded games.
type BatchConfig struct {
	Games     int
	Workers   int
	BaseSeed  int64
	Movements []string // empty = every movement in the scenario
	Regions   []string
	MaxTurns  int
	Strategy  Strategy
}

// ErrNoRegions is returned when a batch has no start regions to rotate through.
var ErrNoRegions = errors.New("autoplay: at least one start region is required")

// Setup returns the movement, region and seed of game idx. Games cycle
// through movements first, then regions.
func (c BatchConfig) Setup(idx int) (movementID, regionID string, seed int64) {
	m := c.Movements[idx%len(c.Movements)]
	r := c.Regions[(idx/len(c.Movements))%len(c.Regions)]
	return m, r, c.BaseSeed + int64(idx)
}

// RunBatch plays cfg.Games games on cfg.Workers goroutines. Results keep game
// order; a failed game leaves a nil slot and counts toward the returned
// failure total. onDone, when set, is called once per finished game.
func RunBatch(ctx context.Context, sc *culture.Scenario, tun culture.Tuning, cfg BatchConfig, onDone func()) ([]*model.GameResult, int, error) {
	if len(cfg.Movements) == 0 {
		for _, m := range sc.Movements {
			cfg.Movements = append(cfg.Movements, m.ID)
		}
	}
	if len(cfg.Regions) == 0 {
		return nil, 0, ErrNoRegions
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	sc.Catalog()

	results := make([]*model.GameResult, cfg.Games)
	var mu sync.Mutex
	var wg sync.WaitGroup
	sem := make(chan struct{}, cfg.Workers)
	errCount := 0

	for i := 0; i < cfg.Games; i++ {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		sem <- struct{}{}

		go func(idx int) {
			defer wg.Done()
			defer func() { <-sem }()
			if onDone != nil {
				defer onDone()
			}

			movementID, regionID, seed := cfg.Setup(idx)
			res, err := RunGame(ctx, sc, tun, Config{
				MovementID:    movementID,
				StartRegionID: regionID,
				Seed:          seed,
				MaxTurns:      cfg.MaxTurns,
				Strategy:      cfg.Strategy,
			})
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				log.Error().Err(err).Int("game", idx+1).Str("movement", movementID).Str("region", regionID).Msg("Game failed")
				errCount++
				return
			}
			results[idx] = res
		}(i)
	}

	wg.Wait()
	return results, errCount, ctx.Err()
}
