package main

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn("could not load .env file", "err", err)
	}

	err := Execute(ctx)
	cancel()
	if err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func newRootCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "voting-rings",
		Short:         "Monte Carlo simulator for the loyalists and traitors voting game",
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	cmd.PersistentFlags().String("config", "", "Config file (yaml, toml or json)")
	cmd.PersistentFlags().Bool("debug", false, "Include debug logs")

	cmd.AddCommand(
		newPlayCommand(v),
		newBatchCommand(v),
		newSweepCommand(v),
	)
	return cmd
}

func Execute(ctx context.Context) error {
	root := newRootCommand(viper.New())
	return root.ExecuteContext(ctx)
}
