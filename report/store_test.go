package report

import (
	"context"
	"testing"

	"github.com/bmordue/voting-rings/game"
	"github.com/bmordue/voting-rings/montecarlo"
	"github.com/bmordue/voting-rings/storage"
	"github.com/bmordue/voting-rings/vote"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	db, err := storage.InitDuckDB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewStore(db)
}

type storedGame struct {
	BatchID      string `db:"batch_id"`
	GameIndex    int    `db:"game_index"`
	Loyalists    int    `db:"loyalists"`
	Traitors     int    `db:"traitors"`
	EndCondition string `db:"end_condition"`
	Strategy     string `db:"strategy"`
	Rounds       int    `db:"rounds"`
	Outcome      string `db:"outcome"`
}

func storedGames(t *testing.T, s *Store, batchID string) []storedGame {
	t.Helper()
	query := `
	select batch_id, game_index, loyalists, traitors, end_condition, strategy, rounds, outcome
	from simulation_games
	where batch_id = ?
	order by game_index
	`
	var games []storedGame
	require.NoError(t, s.db.SelectContext(context.Background(), &games, query, batchID))
	return games
}

var cfg = game.Config{Loyalists: 5, Traitors: 1, EndCondition: game.FirstTraitorRemoved, Strategy: vote.KindRandom}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	results := []montecarlo.SimulationResult{
		{RoundsToCompletion: 1, Outcome: game.OutcomeTraitorRemoved},
		{RoundsToCompletion: 3, Outcome: game.OutcomeNoLoyalists},
		{RoundsToCompletion: 1, Outcome: game.OutcomeTraitorRemoved},
		{RoundsToCompletion: 2, Outcome: game.OutcomeTraitorRemoved},
	}
	id, err := s.InsertBatch(ctx, cfg, results)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	games := storedGames(t, s, id)
	require.Len(t, games, 4)
	assert.Equal(t, 3, games[1].Rounds)
	assert.Equal(t, string(game.OutcomeNoLoyalists), games[1].Outcome)
	assert.Equal(t, "random", games[0].Strategy)

	counts, err := s.OutcomeCounts(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []OutcomeCount{
		{Outcome: string(game.OutcomeTraitorRemoved), Games: 3},
		{Outcome: string(game.OutcomeNoLoyalists), Games: 1},
	}, counts)

	hist, err := s.RoundHistogram(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []HistogramBucket{{1, 2}, {2, 1}, {3, 1}}, hist)

	median, err := s.RoundQuantile(ctx, id, 0.5)
	require.NoError(t, err)
	assert.InDelta(t, 1.5, median, 1e-9)
}

func TestStoreSeparatesBatches(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	results, err := montecarlo.RunBatch(ctx, montecarlo.BatchConfig{Iterations: 30, Game: cfg, Seed1: 1, Seed2: 2})
	require.NoError(t, err)

	first, err := s.InsertBatch(ctx, cfg, results)
	require.NoError(t, err)
	second, err := s.InsertBatch(ctx, cfg, results[:10])
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	total := 0
	hist, err := s.RoundHistogram(ctx, first)
	require.NoError(t, err)
	for _, b := range hist {
		total += b.Games
	}
	assert.Equal(t, 30, total, "histogram covers the whole batch")

	assert.Len(t, storedGames(t, s, second), 10)
}
