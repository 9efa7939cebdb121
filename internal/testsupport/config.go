package testsupport

import (
	"path/filepath"
	"testing"

	"luft/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.RawDataDir = filepath.Join(base, "raw_csv")
	cfgVal.Paths.SummariesDir = filepath.Join(base, "summaries")
	cfgVal.Paths.CapsulesDir = filepath.Join(base, "capsules")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.DBPath = filepath.Join(base, "luft.db")
	cfgVal.Paths.MasterIndex = filepath.Join(base, "manifest_master_index.yaml")
	cfgVal.Paths.IndexRoots = []string{base}

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithMinSampleSize overrides the minimum sample size threshold.
func WithMinSampleSize(n int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.DataQuality.MinSampleSize = n
	}
}

// WithIndexRoots overrides the manifest scan roots.
func WithIndexRoots(roots ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Paths.IndexRoots = roots
	}
}
