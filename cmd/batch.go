package main

import (
	"fmt"

	"github.com/bmordue/voting-rings/montecarlo"
	"github.com/bmordue/voting-rings/report"
	"github.com/bmordue/voting-rings/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newBatchCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Play many games and summarize how long they last and who wins",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v, cmd)
			if err != nil {
				return err
			}
			gcfg, err := cfg.gameConfig()
			if err != nil {
				return err
			}
			logger := cfg.logger()

			var cs cleanupStack
			defer func() {
				if cerr := cs.run(); cerr != nil {
					logger.Error("cleanup", "err", cerr)
				}
			}()

			logger.Info("Batch started",
				"iterations", cfg.Iterations, "workers", cfg.Workers,
				"seed1", cfg.Seed1, "seed2", cfg.Seed2,
			)
			results, err := montecarlo.RunBatch(cmd.Context(), montecarlo.BatchConfig{
				Iterations: cfg.Iterations,
				Game:       gcfg,
				Seed1:      cfg.Seed1,
				Seed2:      cfg.Seed2,
				Workers:    cfg.Workers,
				Logger:     logger.WithPrefix("batch"),
				Progress: func(done, total int) {
					logger.Info("Progress", "done", done, "total", total)
				},
			})
			if err != nil {
				return fmt.Errorf("run batch: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderSummary(montecarlo.Summarize(results), gcfg.EndCondition))

			if histogram, _ := cmd.Flags().GetBool("histogram"); !histogram {
				return nil
			}

			db, err := storage.InitDuckDB()
			if err != nil {
				return fmt.Errorf("init duckdb: %w", err)
			}
			cs.push("duckdb", db.Close)

			store := report.NewStore(db)
			batchID, err := store.InsertBatch(cmd.Context(), gcfg, results)
			if err != nil {
				return fmt.Errorf("store batch: %w", err)
			}
			buckets, err := store.RoundHistogram(cmd.Context(), batchID)
			if err != nil {
				return fmt.Errorf("round histogram: %w", err)
			}
			counts, err := store.OutcomeCounts(cmd.Context(), batchID)
			if err != nil {
				return fmt.Errorf("outcome counts: %w", err)
			}
			p90, err := store.RoundQuantile(cmd.Context(), batchID, 0.9)
			if err != nil {
				return fmt.Errorf("round quantile: %w", err)
			}

			fmt.Fprintln(out, renderHistogram(buckets, len(results)))
			fmt.Fprintln(out, renderOutcomeCounts(counts, len(results)))
			fmt.Fprintf(out, "p90 rounds: %.1f\n", p90)
			return nil
		},
	}

	addGameFlags(cmd)
	addSeedFlags(cmd)
	addBatchFlags(cmd)
	cmd.Flags().Bool("histogram", false, "Also print a histogram of rounds played")
	return cmd
}
