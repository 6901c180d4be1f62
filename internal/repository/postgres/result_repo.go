package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/freeeve/zeitgeist/internal/model"
)

const resultColumns = `id, session_id, player_id, movement_id, start_region_id, seed, won,
	condition, title, rival_id, turns, final_adoption, peak_adoption, finished_at`

// ResultRepo handles finished-game results.
type ResultRepo struct {
	db *sql.DB
}

// NewResultRepo creates a ResultRepo.
func NewResultRepo(db *sql.DB) *ResultRepo {
	return &ResultRepo{db: db}
}

// SaveResult inserts a result, assigning an ID when empty. A session has at
// most one result; saving it again is a no-op.
func (r *ResultRepo) SaveResult(ctx context.Context, res *model.GameResult) error {
	if res.ID == "" {
		res.ID = uuid.NewString()
	}
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO game_results
		   (id, session_id, player_id, movement_id, start_region_id, seed, won,
		    condition, title, rival_id, turns, final_adoption, peak_adoption)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		 ON CONFLICT (session_id) DO UPDATE SET session_id = EXCLUDED.session_id
		 RETURNING id, finished_at`,
		res.ID, res.SessionID, res.PlayerID, res.MovementID, res.StartRegionID, res.Seed, res.Won,
		res.Condition, res.Title, res.RivalID, res.Turns, res.FinalAdoption, res.PeakAdoption,
	).Scan(&res.ID, &res.FinishedAt)
	if err != nil {
		return fmt.Errorf("save result: %w", err)
	}
	return nil
}

// ListResults returns the most recent results.
func (r *ResultRepo) ListResults(ctx context.Context, limit int) ([]model.GameResult, error) {
	return r.query(ctx,
		`SELECT `+resultColumns+` FROM game_results ORDER BY finished_at DESC LIMIT $1`, limit)
}

// ListResultsByPlayer returns a player's most recent results.
func (r *ResultRepo) ListResultsByPlayer(ctx context.Context, playerID string, limit int) ([]model.GameResult, error) {
	return r.query(ctx,
		`SELECT `+resultColumns+` FROM game_results WHERE player_id = $1
		 ORDER BY finished_at DESC LIMIT $2`, playerID, limit)
}

func (r *ResultRepo) query(ctx context.Context, q string, args ...any) ([]model.GameResult, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	defer rows.Close()

	var results []model.GameResult
	for rows.Next() {
		var g model.GameResult
		if err := rows.Scan(&g.ID, &g.SessionID, &g.PlayerID, &g.MovementID, &g.StartRegionID, &g.Seed, &g.Won,
			&g.Condition, &g.Title, &g.RivalID, &g.Turns, &g.FinalAdoption, &g.PeakAdoption, &g.FinishedAt); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		results = append(results, g)
	}
	return results, rows.Err()
}
