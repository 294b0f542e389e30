package main

import (
	"fmt"
	"log/slog"

	"github.com/solidstat/solidstat/internal/conformance"
	"github.com/solidstat/solidstat/internal/projectconfig"
	"github.com/spf13/cobra"
)

func newVerifyCommand() *cobra.Command {
	var (
		fixturesDir string
		workers     int
		tolerance   float64
	)

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Validate and execute the shared conformance corpus",
		Long: `Verify runs every fixture of the conformance corpus against this
implementation: estimator values within tolerance, integer margins exactly,
and assumption cases against their expected violations.

Exit code 1 means the corpus ran but some cases did not match; exit code 2
means the run itself failed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(cmd, fixturesDir, workers, tolerance)
		},
	}

	cmd.Flags().StringVar(&fixturesDir, "fixtures", "", "corpus directory (default: from .solidstat.yaml)")
	cmd.Flags().IntVar(&workers, "workers", 0, "concurrent fixture files (default: from .solidstat.yaml)")
	cmd.Flags().Float64Var(&tolerance, "tolerance", 0, "value tolerance (default: from .solidstat.yaml)")

	return cmd
}

func runVerify(cmd *cobra.Command, fixturesDir string, workers int, tolerance float64) error {
	cfg, err := projectconfig.Load(".")
	if err != nil {
		return err
	}

	if fixturesDir == "" {
		fixturesDir = cfg.Paths.Fixtures
	}
	if workers == 0 {
		workers = cfg.Verify.Workers
	}
	if tolerance == 0 {
		tolerance = cfg.Verify.Tolerance
	}

	slog.Debug("verifying corpus", "dir", fixturesDir, "workers", workers, "tolerance", tolerance)

	report, err := conformance.Run(cmd.Context(), conformance.Options{
		Dir:          fixturesDir,
		Tolerance:    tolerance,
		RngTolerance: cfg.Verify.RngTolerance,
		Workers:      workers,
		Logger:       slog.Default(),
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, f := range report.Failures {
		if f.Case != "" {
			fmt.Fprintf(out, "FAIL %s [%s]: %s\n", f.File, f.Case, f.Message)
		} else {
			fmt.Fprintf(out, "FAIL %s: %s\n", f.File, f.Message)
		}
	}
	fmt.Fprintf(out, "%d files, %d cases, %d failures\n", report.Files, report.Cases, len(report.Failures))

	if !report.Passed() {
		return &VerificationFailureError{
			Message: fmt.Sprintf("%d of %d conformance cases failed", len(report.Failures), report.Cases),
		}
	}
	return nil
}
