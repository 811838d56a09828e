package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bmordue/voting-rings/game"
	"github.com/bmordue/voting-rings/montecarlo"
	"github.com/bmordue/voting-rings/roster"
	"github.com/bmordue/voting-rings/vote"
	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanupStack(t *testing.T) {
	out := []int{}
	var cs cleanupStack
	for i := range 5 {
		cs.push("step", func() error {
			out = append(out, i)
			if i%2 == 1 {
				return errors.New("boom")
			}
			return nil
		})
	}

	err := cs.run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "step: boom")
	assert.Equal(t, []int{4, 3, 2, 1, 0}, out)

	assert.NoError(t, cs.run(), "a stack only runs once")
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCommand(viper.New())
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestPlayCommandJSON(t *testing.T) {
	out, err := execute(t, "play", "--loyalists", "4", "--traitors", "1",
		"--end-condition", "all_one_type", "--seed1", "3", "--seed2", "9", "--json")
	require.NoError(t, err)

	var res game.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, game.AllOneType, res.EndCondition)
	assert.Equal(t, uint64(3), res.Seed1)
	assert.Len(t, res.Rounds, res.TotalRounds)
	assert.Contains(t, game.AllOneType.Outcomes(), res.Outcome)
}

func TestBatchCommandRejectsBadConfig(t *testing.T) {
	_, err := execute(t, "batch", "--traitors", "0")
	assert.True(t, errors.Is(err, roster.ErrInvalidCount))

	_, err = execute(t, "batch", "--strategy", "influence", "--end-condition", "all_one_type")
	assert.True(t, errors.Is(err, game.ErrUnsupportedEndCondition))

	_, err = execute(t, "batch", "--iterations", "0")
	assert.Error(t, err)
}

func TestBatchCommandSummary(t *testing.T) {
	out, err := execute(t, "batch", "--iterations", "50", "--seed1", "1", "--seed2", "2", "--workers", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "mean")
	assert.Contains(t, out, string(game.OutcomeTraitorRemoved))
}

func TestSweepCommandSkipsUnsupported(t *testing.T) {
	out, err := execute(t, "sweep", "--max-loyalists", "3", "--max-traitors", "1",
		"--strategies", "random,influence", "--end-conditions", "all_one_type",
		"--iterations", "5", "--seed1", "1", "--seed2", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "random")
	assert.NotContains(t, out, "influence")
}

func TestRunSweepReusesBaseline(t *testing.T) {
	summaries := montecarlo.NewCache(time.Minute)
	rows, err := runSweep(context.Background(), log.New(io.Discard), summaries, sweepOptions{
		minLoyalists: 2,
		maxLoyalists: 4,
		minTraitors:  1,
		maxTraitors:  2,
		strategies:   []vote.Kind{vote.KindRandom, vote.KindFixation},
		conditions:   []game.EndCondition{game.FirstTraitorRemoved, game.AllOneType},
		iterations:   10,
		seed1:        4,
		seed2:        5,
	})
	require.NoError(t, err)

	// 4 combinations with 3x2 points each; every row after the
	// baseline itself looks the baseline up again.
	require.Len(t, rows, 24)
	assert.Equal(t, 24, summaries.Len())
	assert.Equal(t, 24, summaries.Hits())

	for _, r := range rows {
		if r.config.Loyalists == 2 && r.config.Traitors == 1 {
			assert.Equal(t, r.summary, r.baseline)
		}
	}
}

func TestBatchCommandHistogram(t *testing.T) {
	out, err := execute(t, "batch", "--iterations", "40", "--seed1", "1", "--seed2", "2", "--histogram")
	require.NoError(t, err)
	assert.Contains(t, out, "p90 rounds")
	assert.Contains(t, out, "█")
}

func TestLoadConfigSources(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sim.yaml")
	require.NoError(t, os.WriteFile(path, []byte("loyalists: 11\nstrategy: fixation\n"), 0o600))
	t.Setenv("VOTING_RINGS_TRAITORS", "4")

	cmd := newPlayCommand(viper.New())
	cmd.Flags().String("config", "", "")
	cmd.Flags().Bool("debug", false, "")
	require.NoError(t, cmd.Flags().Parse([]string{"--config", path, "--seed1", "5"}))

	cfg, err := loadConfig(viper.New(), cmd)
	require.NoError(t, err)
	assert.Equal(t, 11, cfg.Loyalists)
	assert.Equal(t, 4, cfg.Traitors)
	assert.Equal(t, "fixation", cfg.Strategy)
	assert.Equal(t, uint64(5), cfg.Seed1)

	gcfg, err := cfg.gameConfig()
	require.NoError(t, err)
	assert.Equal(t, vote.KindFixation, gcfg.Strategy)
	assert.Equal(t, game.FirstTraitorRemoved, gcfg.EndCondition)
}
