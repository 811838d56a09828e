package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bmordue/voting-rings/game"
	"github.com/bmordue/voting-rings/montecarlo"
	"github.com/bmordue/voting-rings/vote"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type sweepRow struct {
	config  game.Config
	summary montecarlo.Summary
	// baseline is the smallest grid point with the same strategy and
	// end condition.
	baseline montecarlo.Summary
}

type sweepOptions struct {
	minLoyalists, maxLoyalists int
	minTraitors, maxTraitors   int
	strategies                 []vote.Kind
	conditions                 []game.EndCondition
	iterations                 int
	seed1, seed2               uint64
	workers                    int
}

func (o sweepOptions) batch(g game.Config) montecarlo.BatchConfig {
	return montecarlo.BatchConfig{
		Iterations: o.iterations,
		Game:       g,
		Seed1:      o.seed1,
		Seed2:      o.seed2,
		Workers:    o.workers,
	}
}

func newSweepCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Run a batch for every combination of sizes, strategies and end conditions",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v, cmd)
			if err != nil {
				return err
			}
			logger := cfg.logger()

			maxLoyalists := v.GetInt("max-loyalists")
			maxTraitors := v.GetInt("max-traitors")
			if maxLoyalists < cfg.Loyalists || maxTraitors < cfg.Traitors {
				return fmt.Errorf("sweep range is empty: loyalists %d..%d, traitors %d..%d",
					cfg.Loyalists, maxLoyalists, cfg.Traitors, maxTraitors)
			}

			strategies, err := parseAll(v.GetStringSlice("strategies"), vote.ParseKind)
			if err != nil {
				return err
			}
			conditions, err := parseAll(v.GetStringSlice("end-conditions"), game.ParseEndCondition)
			if err != nil {
				return err
			}

			summaries := montecarlo.NewCache(10 * time.Minute)
			rows, err := runSweep(cmd.Context(), logger, summaries, sweepOptions{
				minLoyalists: cfg.Loyalists,
				maxLoyalists: maxLoyalists,
				minTraitors:  cfg.Traitors,
				maxTraitors:  maxTraitors,
				strategies:   strategies,
				conditions:   conditions,
				iterations:   cfg.Iterations,
				seed1:        cfg.Seed1,
				seed2:        cfg.Seed2,
				workers:      cfg.Workers,
			})
			if err != nil {
				return err
			}

			logger.Info("Sweep finished", "points", len(rows), "distinct", summaries.Len(), "cacheHits", summaries.Hits())
			fmt.Fprintln(cmd.OutOrStdout(), renderSweep(rows))
			return nil
		},
	}

	cmd.Flags().Int("loyalists", 2, "Smallest number of loyalists")
	cmd.Flags().Int("traitors", 1, "Smallest number of traitors")
	cmd.Flags().Int("max-loyalists", 8, "Largest number of loyalists")
	cmd.Flags().Int("max-traitors", 2, "Largest number of traitors")
	cmd.Flags().StringSlice("strategies", []string{string(vote.KindRandom)}, "Voting strategies to compare")
	cmd.Flags().StringSlice("end-conditions", []string{string(game.FirstTraitorRemoved)}, "End conditions to compare")
	addSeedFlags(cmd)
	addBatchFlags(cmd)
	return cmd
}

// runSweep summarizes every grid point and compares it with its
// baseline. The baseline is looked up through summaries for every
// row, so it is only played once per strategy and end condition.
func runSweep(ctx context.Context, logger *log.Logger, summaries *montecarlo.Cache, opts sweepOptions) ([]sweepRow, error) {
	var rows []sweepRow
	for _, end := range opts.conditions {
		for _, strategy := range opts.strategies {
			combo := game.Config{Loyalists: 1, Traitors: 1, EndCondition: end, Strategy: strategy}
			if err := combo.Validate(); errors.Is(err, game.ErrUnsupportedEndCondition) {
				logger.Warn("Skipping unsupported combination", "strategy", strategy, "endCondition", end)
				continue
			}

			base := game.Config{Loyalists: opts.minLoyalists, Traitors: opts.minTraitors, EndCondition: end, Strategy: strategy}
			for l := opts.minLoyalists; l <= opts.maxLoyalists; l++ {
				for t := opts.minTraitors; t <= opts.maxTraitors; t++ {
					gcfg := game.Config{Loyalists: l, Traitors: t, EndCondition: end, Strategy: strategy}
					s, hit, err := summaries.Summary(ctx, opts.batch(gcfg))
					if err != nil {
						return nil, fmt.Errorf("sweep %dv%d %s %s: %w", l, t, strategy, end, err)
					}
					baseline, baseHit, err := summaries.Summary(ctx, opts.batch(base))
					if err != nil {
						return nil, fmt.Errorf("sweep baseline %s %s: %w", strategy, end, err)
					}
					logger.Debug("Sweep point", "loyalists", l, "traitors", t,
						"strategy", strategy, "endCondition", end,
						"cached", hit, "baselineCached", baseHit)
					rows = append(rows, sweepRow{config: gcfg, summary: s, baseline: baseline})
				}
			}
		}
	}
	return rows, nil
}

func parseAll[T any](values []string, parse func(string) (T, error)) ([]T, error) {
	out := make([]T, 0, len(values))
	for _, s := range values {
		v, err := parse(s)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
