package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ibex-analyzer/ibex/analysis/lattice"
	"github.com/ibex-analyzer/ibex/analysis/num"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 10, cfg.MaxReductionCycles)
	assert.Empty(t, cfg.WideningThresholds)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ibex.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"max_reduction_cycles: 25\nwidening_thresholds: [0, 100, -10]\nno_colorize: true\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.MaxReductionCycles)
	assert.Equal(t, []int64{0, 100, -10}, cfg.WideningThresholds)
	assert.True(t, cfg.NoColorize)

	ts := cfg.Thresholds()
	assert.Equal(t, 3, ts.Size())
	next := ts.GetNext(lattice.Finite(num.FromInt64(1)))
	assert.True(t, next.Eq(lattice.Finite(num.FromInt64(100))))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
