package montecarlo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/bmordue/voting-rings/game"
	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

var ErrInvalidIterations = errors.New("iterations must be at least 1")

// SimulationResult is the summary of one game in a batch.
type SimulationResult struct {
	RoundsToCompletion int          `json:"roundsToCompletion"`
	Outcome            game.Outcome `json:"outcome"`
}

type BatchConfig struct {
	Iterations int
	Game       game.Config
	// Seed1 and Seed2 seed the source that every per-game seed is drawn
	// from, so a batch is reproducible whatever the worker count.
	Seed1, Seed2 uint64
	// Workers above one plays games concurrently.
	Workers int

	Logger *log.Logger
	// Progress, when set, is called at most once per ProgressInterval
	// with the number of finished games.
	Progress         func(done, total int)
	ProgressInterval time.Duration
}

func (c BatchConfig) Validate() error {
	if c.Iterations < 1 {
		return fmt.Errorf("iterations=%d: %w", c.Iterations, ErrInvalidIterations)
	}
	return c.Game.Validate()
}

type gameSeed struct {
	seed1, seed2 uint64
}

// RunBatch plays cfg.Iterations independent games and returns their
// results in order. Each game gets its own roster, strategies and
// random source.
func RunBatch(ctx context.Context, cfg BatchConfig) ([]SimulationResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	// Seeds are generated up front so the serial and parallel paths
	// play exactly the same games.
	master := rand.New(rand.NewPCG(cfg.Seed1, cfg.Seed2))
	seeds := make([]gameSeed, cfg.Iterations)
	for i := range seeds {
		seeds[i] = gameSeed{master.Uint64(), master.Uint64()}
	}

	interval := cfg.ProgressInterval
	if interval <= 0 {
		interval = time.Second
	}
	progress := &rate.Sometimes{Interval: interval}
	var finished atomic.Int64
	report := func() {
		n := int(finished.Add(1))
		if cfg.Progress == nil {
			return
		}
		if n == cfg.Iterations {
			cfg.Progress(n, cfg.Iterations)
			return
		}
		progress.Do(func() { cfg.Progress(n, cfg.Iterations) })
	}

	logger.Debug("batch started",
		"iterations", cfg.Iterations,
		"loyalists", cfg.Game.Loyalists, "traitors", cfg.Game.Traitors,
		"endCondition", cfg.Game.EndCondition, "strategy", cfg.Game.Strategy,
		"workers", cfg.Workers,
	)

	results := make([]SimulationResult, cfg.Iterations)
	play := func(i int) error {
		g, err := game.New(cfg.Game, game.WithSeed(seeds[i].seed1, seeds[i].seed2))
		if err != nil {
			return fmt.Errorf("game %d: %w", i, err)
		}
		res := g.Run()
		results[i] = SimulationResult{
			RoundsToCompletion: res.TotalRounds,
			Outcome:            res.Outcome,
		}
		report()
		return nil
	}

	if cfg.Workers <= 1 {
		for i := range cfg.Iterations {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if err := play(i); err != nil {
				return nil, err
			}
		}
	} else {
		eg, gctx := errgroup.WithContext(ctx)
		eg.SetLimit(cfg.Workers)
		for i := range cfg.Iterations {
			if gctx.Err() != nil {
				break
			}
			eg.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				return play(i)
			})
		}
		if err := eg.Wait(); err != nil {
			return nil, err
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	logger.Debug("batch finished", "iterations", cfg.Iterations)
	return results, nil
}
