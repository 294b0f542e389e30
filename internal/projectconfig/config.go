// Package projectconfig provides the ProjectConfig struct and loader for
// .solidstat.yaml project-level configuration files.
package projectconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Default values for project configuration. These are the single source of
// truth — New() references them and no other code should duplicate them.
const (
	DefaultFixturesDir = "tests/"

	DefaultTolerance    = 1e-9
	DefaultRngTolerance = 1e-15
	DefaultWorkers      = 4

	DefaultMisrate = 1e-3
	DefaultSeed    = "solidstat"
)

// PathsConfig holds directory paths.
type PathsConfig struct {
	Fixtures string `yaml:"fixtures,omitempty"`
}

// VerifyConfig holds conformance run parameters.
type VerifyConfig struct {
	Tolerance    float64 `yaml:"tolerance,omitempty"`
	RngTolerance float64 `yaml:"rng_tolerance,omitempty"`
	Workers      int     `yaml:"workers,omitempty"`
}

// EstimateConfig holds defaults for the estimate command.
type EstimateConfig struct {
	Misrate float64 `yaml:"misrate,omitempty"`
	Seed    string  `yaml:"seed,omitempty"`
}

// ProjectConfig is the top-level configuration loaded from .solidstat.yaml.
type ProjectConfig struct {
	Paths    PathsConfig    `yaml:"paths,omitempty"`
	Verify   VerifyConfig   `yaml:"verify,omitempty"`
	Estimate EstimateConfig `yaml:"estimate,omitempty"`
}

// New returns a ProjectConfig with all hard-coded defaults populated.
func New() *ProjectConfig {
	return &ProjectConfig{
		Paths: PathsConfig{
			Fixtures: DefaultFixturesDir,
		},
		Verify: VerifyConfig{
			Tolerance:    DefaultTolerance,
			RngTolerance: DefaultRngTolerance,
			Workers:      DefaultWorkers,
		},
		Estimate: EstimateConfig{
			Misrate: DefaultMisrate,
			Seed:    DefaultSeed,
		},
	}
}

// Load finds .solidstat.yaml by walking up from startDir (max 10 levels),
// unmarshals it, and fills in missing fields with defaults.
// If no config file is found, returns defaults with a nil error.
// Real I/O errors (e.g. permission denied) are returned to the caller.
func Load(startDir string) (*ProjectConfig, error) {
	cfg := New()

	data, err := findConfigFile(startDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil // no file found → return defaults
		}
		return nil, fmt.Errorf("loading .solidstat.yaml: %w", err)
	}

	var fileCfg ProjectConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("parsing .solidstat.yaml: %w", err)
	}

	// Merge file values onto defaults.
	mergeConfig(cfg, &fileCfg)
	return cfg, nil
}

// findConfigFile walks up from dir looking for .solidstat.yaml (max 10
// levels). Returns os.ErrNotExist if no config file is found. Propagates
// real I/O errors (e.g. permission denied) instead of silently swallowing
// them.
func findConfigFile(dir string) ([]byte, error) {
	// Convert to absolute path so filepath.Dir(".") walks correctly.
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path %q: %w", dir, err)
	}
	dir = absDir

	for i := 0; i < 10; i++ {
		p := filepath.Join(dir, ".solidstat.yaml")
		data, err := os.ReadFile(p)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break // reached filesystem root
		}
		dir = parent
	}
	return nil, os.ErrNotExist
}

// mergeConfig overlays non-zero values from src onto dst.
func mergeConfig(dst, src *ProjectConfig) {
	if src.Paths.Fixtures != "" {
		dst.Paths.Fixtures = src.Paths.Fixtures
	}

	if src.Verify.Tolerance != 0 {
		dst.Verify.Tolerance = src.Verify.Tolerance
	}
	if src.Verify.RngTolerance != 0 {
		dst.Verify.RngTolerance = src.Verify.RngTolerance
	}
	if src.Verify.Workers != 0 {
		dst.Verify.Workers = src.Verify.Workers
	}

	if src.Estimate.Misrate != 0 {
		dst.Estimate.Misrate = src.Estimate.Misrate
	}
	if src.Estimate.Seed != "" {
		dst.Estimate.Seed = src.Estimate.Seed
	}
}
