package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/solidstat/solidstat/internal/conformance"
	"github.com/solidstat/solidstat/internal/projectconfig"
	"github.com/spf13/cobra"
)

func newEstimateCommand() *cobra.Command {
	var (
		inputPath string
		misrate   float64
		seed      string
	)

	cmd := &cobra.Command{
		Use:   "estimate <operation>",
		Short: "Run an estimator over a JSON input file",
		Long: `Run a single estimator or bound operation over sample data.

The input is a JSON object with an "x" array, an optional "y" array for
two-sample operations, and optional "misrate" and "seed" fields. Values may
use the string encodings "NaN", "Infinity", and "-Infinity".

Operations: center, spread, rel-spread, shift, ratio, avg-spread, disparity,
and their -bounds variants.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEstimate(cmd, args[0], inputPath, misrate, seed)
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "JSON input file (default: stdin)")
	cmd.Flags().Float64Var(&misrate, "misrate", 0, "misclassification rate for bound operations")
	cmd.Flags().StringVar(&seed, "seed", "", "seed for randomized bound operations")

	return cmd
}

func runEstimate(cmd *cobra.Command, operation, inputPath string, misrate float64, seed string) error {
	cfg, err := projectconfig.Load(".")
	if err != nil {
		return err
	}

	var data []byte
	if inputPath == "" {
		data, err = io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
	} else {
		data, err = os.ReadFile(inputPath)
		if err != nil {
			return fmt.Errorf("reading input file: %w", err)
		}
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parsing input: %w", err)
	}

	in, err := conformance.DecodeInput(raw)
	if err != nil {
		return err
	}

	// Flags win over input fields, input fields win over config.
	if cmd.Flags().Changed("misrate") {
		in.Misrate = misrate
		in.HasMisrate = true
	} else if !in.HasMisrate {
		in.Misrate = cfg.Estimate.Misrate
		in.HasMisrate = true
	}
	if cmd.Flags().Changed("seed") {
		in.Seed = seed
	} else if in.Seed == "" {
		in.Seed = cfg.Estimate.Seed
	}

	slog.Debug("running estimate", "operation", operation, "n", len(in.X), "m", len(in.Y))

	result, err := conformance.Execute(operation, in)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch len(result) {
	case 1:
		fmt.Fprintln(out, formatFloat(result[0]))
	case 2:
		fmt.Fprintf(out, "[%s; %s]\n", formatFloat(result[0]), formatFloat(result[1]))
	default:
		for _, v := range result {
			fmt.Fprintln(out, formatFloat(v))
		}
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
