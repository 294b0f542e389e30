package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/solidstat/solidstat/internal/conformance"
	"github.com/solidstat/solidstat/internal/projectconfig"
	"github.com/spf13/cobra"
)

func newFixturesCommand() *cobra.Command {
	var fixturesDir string

	cmd := &cobra.Command{
		Use:   "fixtures",
		Short: "Regenerate the deterministic RNG fixtures",
		Long: `Fixtures regenerates the generator portion of the conformance corpus
(tests/rng-*) from fixed seeds. The sequences are deterministic, so other
ports can verify bit-compatible generator behavior against these files.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFixtures(cmd, fixturesDir)
		},
	}

	cmd.Flags().StringVar(&fixturesDir, "fixtures", "", "corpus directory (default: from .solidstat.yaml)")

	return cmd
}

// rngFixtureSpec names one generator fixture and its inputs.
type rngFixtureSpec struct {
	operation string
	file      string
	input     map[string]any
}

// rngFixtureSpecs is the fixed fixture set. Adding a spec here and rerunning
// `solidstat fixtures` extends the corpus for every port.
var rngFixtureSpecs = []rngFixtureSpec{
	{"rng-uniform-float", "seed-alpha-10.json", map[string]any{"seed": "alpha", "n": 10}},
	{"rng-uniform-float", "seed-beta-25.json", map[string]any{"seed": "beta", "n": 25}},
	{"rng-uniform-float", "seed-empty-name-5.json", map[string]any{"seed": "", "n": 5}},
	{"rng-shuffle", "seed-alpha-8.json", map[string]any{
		"seed": "alpha", "x": []any{1.0, 2.0, 3.0, 4.0, 5.0, 6.0, 7.0, 8.0}}},
	{"rng-shuffle", "seed-gamma-5.json", map[string]any{
		"seed": "gamma", "x": []any{10.0, 20.0, 30.0, 40.0, 50.0}}},
	{"rng-sample", "seed-alpha-3-of-8.json", map[string]any{
		"seed": "alpha", "n": 3, "x": []any{1.0, 2.0, 3.0, 4.0, 5.0, 6.0, 7.0, 8.0}}},
	{"rng-resample", "seed-beta-6-of-4.json", map[string]any{
		"seed": "beta", "n": 6, "x": []any{1.5, 2.5, 3.5, 4.5}}},
}

func runFixtures(cmd *cobra.Command, fixturesDir string) error {
	cfg, err := projectconfig.Load(".")
	if err != nil {
		return err
	}
	if fixturesDir == "" {
		fixturesDir = cfg.Paths.Fixtures
	}

	for _, spec := range rngFixtureSpecs {
		in, err := conformance.DecodeInput(spec.input)
		if err != nil {
			return fmt.Errorf("fixture %s/%s: %w", spec.operation, spec.file, err)
		}
		output, err := conformance.Execute(spec.operation, in)
		if err != nil {
			return fmt.Errorf("fixture %s/%s: %w", spec.operation, spec.file, err)
		}

		encoded := make([]any, len(output))
		for i, v := range output {
			encoded[i] = conformance.FormatValue(v)
		}
		doc := map[string]any{
			"input":  spec.input,
			"output": encoded,
		}

		dir := filepath.Join(fixturesDir, spec.operation)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		path := filepath.Join(dir, spec.file)

		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding %s: %w", path, err)
		}
		if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		slog.Debug("wrote fixture", "path", path)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d fixtures under %s\n", len(rngFixtureSpecs), fixturesDir)
	return nil
}
