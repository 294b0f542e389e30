package conformance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/solidstat/solidstat/robust"
	"golang.org/x/sync/errgroup"
)

// Default runner settings; the project config can override them.
const (
	DefaultTolerance    = 1e-9
	DefaultRngTolerance = 1e-15
	DefaultWorkers      = 4
)

// Options configures a corpus run.
type Options struct {
	// Dir is the corpus root (the tests/ directory).
	Dir string

	// Tolerance applies to estimator and bound values.
	Tolerance float64

	// RngTolerance applies to generator sequences.
	RngTolerance float64

	// Workers caps concurrent fixture files.
	Workers int

	Logger *slog.Logger
}

// Failure describes one fixture case that did not match.
type Failure struct {
	File    string
	Case    string
	Message string
}

// Report summarizes a corpus run.
type Report struct {
	Files    int
	Cases    int
	Failures []Failure
}

// Passed reports whether every case matched.
func (r *Report) Passed() bool {
	return len(r.Failures) == 0
}

// fixtureFile is one estimator fixture: an input and its expected output.
type fixtureFile struct {
	Input  map[string]any `json:"input"`
	Output any            `json:"output"`
}

// suiteFile is an assumption suite: cases expected to fail with a specific
// violation.
type suiteFile struct {
	Cases []suiteCase `json:"cases"`
}

type suiteCase struct {
	Name     string           `json:"name"`
	Function string           `json:"function"`
	Inputs   map[string]any   `json:"inputs"`
	Expected robust.Violation `json:"expected_violation"`
}

// manifestFile lists the suite files of the assumptions directory.
type manifestFile struct {
	Suites []string `json:"suites"`
}

// Run executes the whole corpus under opts.Dir: every estimator directory's
// fixture files plus the assumption suites. Files run concurrently; cases
// within a file run in order.
func Run(ctx context.Context, opts Options) (*Report, error) {
	if opts.Tolerance == 0 {
		opts.Tolerance = DefaultTolerance
	}
	if opts.RngTolerance == 0 {
		opts.RngTolerance = DefaultRngTolerance
	}
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	entries, err := os.ReadDir(opts.Dir)
	if err != nil {
		return nil, fmt.Errorf("reading corpus dir: %w", err)
	}

	report := &Report{}
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		operation := entry.Name()
		dir := filepath.Join(opts.Dir, operation)

		if operation == "assumptions" {
			files, err := suiteFiles(dir)
			if err != nil {
				return nil, err
			}
			for _, file := range files {
				g.Go(func() error {
					if err := ctx.Err(); err != nil {
						return err
					}
					cases, failures, err := runSuiteFile(file)
					if err != nil {
						return err
					}
					mu.Lock()
					report.Files++
					report.Cases += cases
					report.Failures = append(report.Failures, failures...)
					mu.Unlock()
					return nil
				})
			}
			continue
		}

		files, err := filepath.Glob(filepath.Join(dir, "*.json"))
		if err != nil {
			return nil, fmt.Errorf("listing %s: %w", dir, err)
		}
		sort.Strings(files)

		tol := opts.Tolerance
		if strings.HasPrefix(operation, "rng") {
			tol = opts.RngTolerance
		}

		for _, file := range files {
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				opts.Logger.Debug("running fixture", "file", file)
				failure, err := runFixtureFile(operation, file, tol)
				if err != nil {
					return err
				}
				mu.Lock()
				report.Files++
				report.Cases++
				if failure != nil {
					report.Failures = append(report.Failures, *failure)
				}
				mu.Unlock()
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(report.Failures, func(i, j int) bool {
		if report.Failures[i].File != report.Failures[j].File {
			return report.Failures[i].File < report.Failures[j].File
		}
		return report.Failures[i].Case < report.Failures[j].Case
	})
	return report, nil
}

// runFixtureFile validates, decodes, executes, and compares one fixture.
// A mismatch is a Failure; anything preventing the comparison is an error.
func runFixtureFile(operation, path string, tol float64) (*Failure, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	if errs := ValidateFixtureBytes(data); len(errs) > 0 {
		return &Failure{File: path, Message: "schema: " + strings.Join(errs, "; ")}, nil
	}

	var fixture fixtureFile
	if err := json.Unmarshal(data, &fixture); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	expected, err := expectedValues(fixture.Output)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	in, err := DecodeInput(fixture.Input)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	actual, err := Execute(operation, in)
	if err != nil {
		return &Failure{File: path, Message: fmt.Sprintf("execution failed: %v", err)}, nil
	}

	if len(actual) != len(expected) {
		return &Failure{
			File:    path,
			Message: fmt.Sprintf("expected %d values, got %d", len(expected), len(actual)),
		}, nil
	}
	for i := range expected {
		if !EqualWithinTolerance(expected[i], actual[i], tol) {
			return &Failure{
				File:    path,
				Message: fmt.Sprintf("value %d: expected %v, got %v", i, expected[i], actual[i]),
			}, nil
		}
	}
	return nil, nil
}

// runSuiteFile executes every case of an assumption suite and checks that
// each fails with exactly the expected violation.
func runSuiteFile(path string) (cases int, failures []Failure, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, nil, fmt.Errorf("reading %s: %w", path, err)
	}

	if errs := ValidateSuiteBytes(data); len(errs) > 0 {
		return 0, []Failure{{File: path, Message: "schema: " + strings.Join(errs, "; ")}}, nil
	}

	var suite suiteFile
	if err := json.Unmarshal(data, &suite); err != nil {
		return 0, nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	for _, c := range suite.Cases {
		cases++
		in, err := DecodeInput(c.Inputs)
		if err != nil {
			return cases, failures, fmt.Errorf("%s case %q: %w", path, c.Name, err)
		}

		_, execErr := Execute(c.Function, in)
		if execErr == nil {
			failures = append(failures, Failure{
				File: path, Case: c.Name,
				Message: fmt.Sprintf("expected %s(%s) violation, got success", c.Expected.ID, c.Expected.Subject),
			})
			continue
		}

		var ae *robust.AssumptionError
		if !errors.As(execErr, &ae) {
			failures = append(failures, Failure{
				File: path, Case: c.Name,
				Message: fmt.Sprintf("expected assumption violation, got: %v", execErr),
			})
			continue
		}
		if ae.Violation != c.Expected {
			failures = append(failures, Failure{
				File: path, Case: c.Name,
				Message: fmt.Sprintf("expected %s(%s), got %s(%s)",
					c.Expected.ID, c.Expected.Subject, ae.Violation.ID, ae.Violation.Subject),
			})
		}
	}
	return cases, failures, nil
}

// suiteFiles resolves the assumption suites: the manifest's list when
// present, otherwise every JSON file except the manifest itself.
func suiteFiles(dir string) ([]string, error) {
	manifestPath := filepath.Join(dir, "manifest.json")
	data, err := os.ReadFile(manifestPath)
	if err == nil {
		var manifest manifestFile
		if err := json.Unmarshal(data, &manifest); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", manifestPath, err)
		}
		files := make([]string, len(manifest.Suites))
		for i, name := range manifest.Suites {
			files[i] = filepath.Join(dir, name)
		}
		return files, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("reading %s: %w", manifestPath, err)
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}
	sort.Strings(files)
	return files, nil
}

// expectedValues normalizes a fixture output into a value list.
func expectedValues(output any) ([]float64, error) {
	if arr, ok := output.([]any); ok {
		return ParseValues(arr)
	}
	v, err := ParseValue(output)
	if err != nil {
		return nil, err
	}
	return []float64{v}, nil
}
