package report

import (
	"context"
	"fmt"

	"github.com/bmordue/voting-rings/assert"
	"github.com/bmordue/voting-rings/game"
	"github.com/bmordue/voting-rings/montecarlo"
	"github.com/bmordue/voting-rings/storage"
	"github.com/google/uuid"
)

type OutcomeCount struct {
	Outcome string `db:"outcome"`
	Games   int    `db:"games"`
}

type HistogramBucket struct {
	Rounds int `db:"rounds"`
	Games  int `db:"games"`
}

// Store keeps batch results in duckdb so they can be sliced with SQL
// while the process runs.
type Store struct {
	db storage.DuckDB
}

func NewStore(db storage.DuckDB) *Store {
	assert.AssertNotNil(db)
	return &Store{
		db: db,
	}
}

// InsertBatch stores every result of one batch under a fresh batch id.
func (s *Store) InsertBatch(ctx context.Context, cfg game.Config, results []montecarlo.SimulationResult) (string, error) {
	batchID := uuid.NewString()

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
	insert into simulation_games (
		batch_id,
		game_index,
		loyalists,
		traitors,
		end_condition,
		strategy,
		rounds,
		outcome
	)
	values (?,?,?,?,?,?,?,?)
	`
	stmt, err := tx.PreparexContext(ctx, query)
	if err != nil {
		return "", fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range results {
		_, err := stmt.ExecContext(
			ctx,
			batchID,
			i,
			cfg.Loyalists,
			cfg.Traitors,
			string(cfg.EndCondition),
			string(cfg.Strategy),
			r.RoundsToCompletion,
			string(r.Outcome),
		)
		if err != nil {
			return "", fmt.Errorf("insert game %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	return batchID, nil
}

func (s *Store) OutcomeCounts(ctx context.Context, batchID string) ([]OutcomeCount, error) {
	query := `
	select outcome, count(*) as games
	from simulation_games
	where batch_id = ?
	group by outcome
	order by games desc, outcome
	`
	var counts []OutcomeCount
	err := s.db.SelectContext(ctx, &counts, query, batchID)
	return counts, err
}

// RoundHistogram counts games per number of rounds played.
func (s *Store) RoundHistogram(ctx context.Context, batchID string) ([]HistogramBucket, error) {
	query := `
	select rounds, count(*) as games
	from simulation_games
	where batch_id = ?
	group by rounds
	order by rounds
	`
	var buckets []HistogramBucket
	err := s.db.SelectContext(ctx, &buckets, query, batchID)
	return buckets, err
}

// RoundQuantile is the interpolated q-quantile of rounds played.
func (s *Store) RoundQuantile(ctx context.Context, batchID string, q float64) (float64, error) {
	assert.Assert(q >= 0 && q <= 1, "quantile out of range")

	// duckdb wants a constant quantile, not a bound parameter.
	query := fmt.Sprintf(`
	select quantile_cont(rounds, %g)
	from simulation_games
	where batch_id = ?
	`, q)
	var v float64
	err := s.db.GetContext(ctx, &v, query, batchID)
	return v, err
}
