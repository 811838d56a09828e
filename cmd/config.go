package main

import (
	"fmt"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/bmordue/voting-rings/game"
	"github.com/bmordue/voting-rings/vote"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const envPrefix = "VOTING_RINGS"

type cliConfig struct {
	Debug bool

	Loyalists    int
	Traitors     int
	EndCondition string
	Strategy     string

	Seed1 uint64
	Seed2 uint64

	Iterations int
	Workers    int
}

// loadConfig resolves settings for cmd from, in order of precedence,
// flags, VOTING_RINGS_* environment variables, the config file and
// flag defaults.
func loadConfig(v *viper.Viper, cmd *cobra.Command) (cliConfig, error) {
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return cliConfig{}, fmt.Errorf("bind flags: %w", err)
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return cliConfig{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	c := cliConfig{
		Debug:        v.GetBool("debug"),
		Loyalists:    v.GetInt("loyalists"),
		Traitors:     v.GetInt("traitors"),
		EndCondition: v.GetString("end-condition"),
		Strategy:     v.GetString("strategy"),
		Seed1:        v.GetUint64("seed1"),
		Seed2:        v.GetUint64("seed2"),
		Iterations:   v.GetInt("iterations"),
		Workers:      v.GetInt("workers"),
	}
	if !v.IsSet("seed1") {
		c.Seed1 = rand.Uint64()
	}
	if !v.IsSet("seed2") {
		c.Seed2 = rand.Uint64()
	}
	return c, nil
}

func (c cliConfig) gameConfig() (game.Config, error) {
	end, err := game.ParseEndCondition(c.EndCondition)
	if err != nil {
		return game.Config{}, err
	}
	strategy, err := vote.ParseKind(c.Strategy)
	if err != nil {
		return game.Config{}, err
	}

	cfg := game.Config{
		Loyalists:    c.Loyalists,
		Traitors:     c.Traitors,
		EndCondition: end,
		Strategy:     strategy,
	}
	return cfg, cfg.Validate()
}

func (c cliConfig) logger() *log.Logger {
	level := log.InfoLevel
	if c.Debug {
		level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: false,
	})
}

func addGameFlags(cmd *cobra.Command) {
	cmd.Flags().Int("loyalists", 7, "Number of loyalists")
	cmd.Flags().Int("traitors", 2, "Number of traitors")
	cmd.Flags().String("end-condition", string(game.FirstTraitorRemoved), "When a game ends: first_traitor_removed or all_one_type")
	cmd.Flags().String("strategy", string(vote.KindRandom), "Voting strategy: random, fixation or influence")
}

func addSeedFlags(cmd *cobra.Command) {
	cmd.Flags().Uint64("seed1", 0, "First seed value, random when unset")
	cmd.Flags().Uint64("seed2", 0, "Second seed value, random when unset")
}

func addBatchFlags(cmd *cobra.Command) {
	cmd.Flags().Int("iterations", 1000, "Games to play per batch")
	cmd.Flags().Int("workers", 1, "Games to play concurrently")
}
