// Package config carries the tunables of an analysis run.
package config

import (
	"fmt"
	"os"

	u "github.com/ibex-analyzer/ibex/utils"

	"github.com/ibex-analyzer/ibex/analysis/lattice"
	"github.com/ibex-analyzer/ibex/analysis/num"

	"gopkg.in/yaml.v3"
)

// Config collects the knobs of the numeric analysis.
type Config struct {
	// MaxReductionCycles bounds constraint propagation per
	// assimilated system.
	MaxReductionCycles int `yaml:"max_reduction_cycles"`
	// WideningThresholds lists the landmarks widening may snap to
	// before giving up to ±∞.
	WideningThresholds []int64 `yaml:"widening_thresholds"`
	NoColorize         bool    `yaml:"no_colorize"`
	Verbose            bool    `yaml:"verbose"`
}

// Default returns the configuration used when nothing is specified.
func Default() Config {
	return Config{
		MaxReductionCycles: 10,
	}
}

// Load reads a YAML configuration file. Missing keys keep their
// defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return cfg, nil
}

// Apply pushes the presentation switches into the process-wide
// options.
func (c Config) Apply() {
	u.SetNoColorize(c.NoColorize)
	u.SetVerbose(c.Verbose)
}

// Thresholds builds the widening threshold set.
func (c Config) Thresholds() lattice.Thresholds[num.Z] {
	ns := make([]num.Z, len(c.WideningThresholds))
	for i, n := range c.WideningThresholds {
		ns[i] = num.FromInt64(n)
	}
	return lattice.NewThresholds(ns...)
}
