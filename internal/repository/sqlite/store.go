// Package sqlite stores turn records and game results in a local SQLite
// file. It backs autoplay batches and single-node servers without Postgres.
package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/freeeve/zeitgeist/internal/model"
)

// Store wraps a SQLite connection.
type Store struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*Store, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &Store{conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS turn_records (
		session_id TEXT NOT NULL,
		turn INTEGER NOT NULL,
		global_adoption REAL NOT NULL,
		influence_points INTEGER NOT NULL,
		income INTEGER NOT NULL,
		leading_rival_id TEXT NOT NULL DEFAULT '',
		leading_rival_share REAL NOT NULL DEFAULT 0,
		events_activated INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL,
		PRIMARY KEY (session_id, turn)
	);

	CREATE TABLE IF NOT EXISTS game_results (
		id TEXT PRIMARY KEY,
		session_id TEXT NOT NULL UNIQUE,
		player_id TEXT NOT NULL,
		movement_id TEXT NOT NULL,
		start_region_id TEXT NOT NULL,
		seed INTEGER NOT NULL,
		won INTEGER NOT NULL,
		condition TEXT NOT NULL,
		title TEXT NOT NULL,
		rival_id TEXT NOT NULL DEFAULT '',
		turns INTEGER NOT NULL,
		final_adoption REAL NOT NULL,
		peak_adoption REAL NOT NULL,
		finished_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_game_results_player ON game_results(player_id, finished_at);
	`
	_, err := s.conn.Exec(schema)
	return err
}

const insertTurn = `INSERT OR REPLACE INTO turn_records
	(session_id, turn, global_adoption, influence_points, income, leading_rival_id, leading_rival_share, events_activated, created_at)
	VALUES (:session_id, :turn, :global_adoption, :influence_points, :income, :leading_rival_id, :leading_rival_share, :events_activated, :created_at)`

const insertResult = `INSERT OR IGNORE INTO game_results
	(id, session_id, player_id, movement_id, start_region_id, seed, won, condition, title, rival_id, turns, final_adoption, peak_adoption, finished_at)
	VALUES (:id, :session_id, :player_id, :movement_id, :start_region_id, :seed, :won, :condition, :title, :rival_id, :turns, :final_adoption, :peak_adoption, :finished_at)`

// SaveTurn inserts a turn record. Re-saving the same turn overwrites it.
func (s *Store) SaveTurn(ctx context.Context, rec model.TurnRecord) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	if _, err := s.conn.NamedExecContext(ctx, insertTurn, rec); err != nil {
		return fmt.Errorf("save turn: %w", err)
	}
	return nil
}

// ListTurns returns a session's turn records in turn order.
func (s *Store) ListTurns(ctx context.Context, sessionID string) ([]model.TurnRecord, error) {
	var recs []model.TurnRecord
	err := s.conn.SelectContext(ctx, &recs,
		"SELECT * FROM turn_records WHERE session_id = ? ORDER BY turn", sessionID)
	if err != nil {
		return nil, fmt.Errorf("list turns: %w", err)
	}
	return recs, nil
}

func prepareResult(res *model.GameResult) {
	if res.ID == "" {
		res.ID = uuid.NewString()
	}
	if res.FinishedAt.IsZero() {
		res.FinishedAt = time.Now().UTC()
	}
}

// SaveResult inserts a result, assigning an ID when empty. A session has at
// most one result; saving it again is a no-op.
func (s *Store) SaveResult(ctx context.Context, res *model.GameResult) error {
	prepareResult(res)
	if _, err := s.conn.NamedExecContext(ctx, insertResult, res); err != nil {
		return fmt.Errorf("save result: %w", err)
	}
	return nil
}

// SaveResults writes a batch of results in one transaction.
func (s *Store) SaveResults(ctx context.Context, results []*model.GameResult) error {
	tx, err := s.conn.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareNamedContext(ctx, insertResult)
	if err != nil {
		return fmt.Errorf("prepare result insert: %w", err)
	}
	defer stmt.Close()

	for _, res := range results {
		prepareResult(res)
		if _, err := stmt.ExecContext(ctx, res); err != nil {
			return fmt.Errorf("insert result %s: %w", res.SessionID, err)
		}
	}
	return tx.Commit()
}

// ListResults returns the most recent results.
func (s *Store) ListResults(ctx context.Context, limit int) ([]model.GameResult, error) {
	var results []model.GameResult
	err := s.conn.SelectContext(ctx, &results,
		"SELECT * FROM game_results ORDER BY finished_at DESC, id LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	return results, nil
}

// ListResultsByPlayer returns a player's most recent results.
func (s *Store) ListResultsByPlayer(ctx context.Context, playerID string, limit int) ([]model.GameResult, error) {
	var results []model.GameResult
	err := s.conn.SelectContext(ctx, &results,
		"SELECT * FROM game_results WHERE player_id = ? ORDER BY finished_at DESC, id LIMIT ?", playerID, limit)
	if err != nil {
		return nil, fmt.Errorf("list results by player: %w", err)
	}
	return results, nil
}

// Summary aggregates results per movement.
type Summary struct {
	MovementID   string  `db:"movement_id" json:"movement_id"`
	Games        int     `db:"games" json:"games"`
	Wins         int     `db:"wins" json:"wins"`
	AvgTurns     float64 `db:"avg_turns" json:"avg_turns"`
	AvgAdoption  float64 `db:"avg_adoption" json:"avg_adoption"`
	PeakAdoption float64 `db:"peak_adoption" json:"peak_adoption"`
}

// Summarize returns per-movement win counts and averages.
func (s *Store) Summarize(ctx context.Context) ([]Summary, error) {
	var out []Summary
	err := s.conn.SelectContext(ctx, &out, `
		SELECT movement_id,
		       COUNT(*) AS games,
		       SUM(won) AS wins,
		       AVG(turns) AS avg_turns,
		       AVG(final_adoption) AS avg_adoption,
		       MAX(peak_adoption) AS peak_adoption
		FROM game_results
		GROUP BY movement_id
		ORDER BY movement_id`)
	if err != nil {
		return nil, fmt.Errorf("summarize results: %w", err)
	}
	return out, nil
}
