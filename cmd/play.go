package main

import (
	"encoding/json"
	"fmt"

	"github.com/bmordue/voting-rings/game"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newPlayCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a single game and log every round",
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

			g, err := game.New(gcfg,
				game.WithSeed(cfg.Seed1, cfg.Seed2),
				game.WithLogger(logger.WithPrefix("engine")),
			)
			if err != nil {
				return fmt.Errorf("new game: %w", err)
			}

			logger.Info("Game started",
				"seed1", cfg.Seed1, "seed2", cfg.Seed2,
				"loyalists", gcfg.Loyalists, "traitors", gcfg.Traitors,
				"endCondition", gcfg.EndCondition, "strategy", gcfg.Strategy,
			)
			for !g.Done() {
				round, _ := g.Step()
				logger.Info("Round",
					"n", round.RoundNumber,
					"votes", round.PhaseOneVotes,
					"tieBreaks", round.TieBreaks,
					"phaseOne", describe(g, round.PhaseOneRemoved),
					"phaseTwo", describe(g, round.PhaseTwoRemoved),
					"remaining", len(round.RemainingActors),
				)
			}

			res := g.Result()
			logger.Info("Game finished", "outcome", res.Outcome, "rounds", res.TotalRounds)

			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			return nil
		},
	}

	addGameFlags(cmd)
	addSeedFlags(cmd)
	cmd.Flags().Bool("json", false, "Write the full game record to stdout as JSON")
	return cmd
}

func describe(g *game.Game, id int) string {
	if id < 0 {
		return "none"
	}
	return fmt.Sprintf("%d (%s)", id, g.Roster().Actor(id).Faction)
}
