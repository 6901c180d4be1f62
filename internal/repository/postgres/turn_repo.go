package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/freeeve/zeitgeist/internal/model"
)

// TurnRepo handles per-turn metric rows.
type TurnRepo struct {
	db *sql.DB
}

// NewTurnRepo creates a TurnRepo.
func NewTurnRepo(db *sql.DB) *TurnRepo {
	return &TurnRepo{db: db}
}

// SaveTurn inserts a turn record. Re-saving the same turn overwrites it.
func (r *TurnRepo) SaveTurn(ctx context.Context, rec model.TurnRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO turn_records
		   (session_id, turn, global_adoption, influence_points, income, leading_rival_id, leading_rival_share, events_activated)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (session_id, turn) DO UPDATE SET
		   global_adoption = EXCLUDED.global_adoption,
		   influence_points = EXCLUDED.influence_points,
		   income = EXCLUDED.income,
		   leading_rival_id = EXCLUDED.leading_rival_id,
		   leading_rival_share = EXCLUDED.leading_rival_share,
		   events_activated = EXCLUDED.events_activated`,
		rec.SessionID, rec.Turn, rec.GlobalAdoption, rec.InfluencePoints, rec.Income,
		rec.LeadingRivalID, rec.LeadingRivalShare, rec.EventsActivated,
	)
	if err != nil {
		return fmt.Errorf("save turn: %w", err)
	}
	return nil
}

// ListTurns returns a session's turn records in turn order.
func (r *TurnRepo) ListTurns(ctx context.Context, sessionID string) ([]model.TurnRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT session_id, turn, global_adoption, influence_points, income,
		        leading_rival_id, leading_rival_share, events_activated, created_at
		 FROM turn_records WHERE session_id = $1
		 ORDER BY turn`, sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("list turns: %w", err)
	}
	defer rows.Close()

	var recs []model.TurnRecord
	for rows.Next() {
		var rec model.TurnRecord
		if err := rows.Scan(&rec.SessionID, &rec.Turn, &rec.GlobalAdoption, &rec.InfluencePoints, &rec.Income,
			&rec.LeadingRivalID, &rec.LeadingRivalShare, &rec.EventsActivated, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan turn: %w", err)
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}
