package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solidstat",
		Short: "Solidstat - robust statistical estimation toolkit",
		Long: `Solidstat computes robust statistical estimates and distribution-free
bounds: center, spread, shift, ratio, and disparity, with misrate-indexed
intervals that stay valid without normality assumptions.

It also maintains the shared conformance corpus that keeps all language
ports numerically aligned.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	// Add subcommands
	cmd.AddCommand(newEstimateCommand())
	cmd.AddCommand(newVerifyCommand())
	cmd.AddCommand(newFixturesCommand())

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}
