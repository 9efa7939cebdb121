package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// DataQuality holds the thresholds driving the required validation checks.
type DataQuality struct {
	MinCompleteness  float64 `toml:"min_completeness"`
	MaxMissingValues float64 `toml:"max_missing_values"`
	MinSampleSize    int     `toml:"min_sample_size"`
	MaxOutlierRatio  float64 `toml:"max_outlier_ratio"`
}

// Validation toggles individual validation features.
type Validation struct {
	NumericRangeCheck     bool `toml:"numeric_range_check"`
	CategoricalValidation bool `toml:"categorical_validation"`
	TemporalConsistency   bool `toml:"temporal_consistency"`
	DuplicateDetection    bool `toml:"duplicate_detection"`
}

// Processing holds sizing knobs for batch intake runs.
type Processing struct {
	BatchSize       int `toml:"batch_size"`
	MaxMemoryMB     int `toml:"max_memory_mb"`
	ParallelThreads int `toml:"parallel_threads"`
	ChunkSize       int `toml:"chunk_size"`
}

// RadioFrequency holds the accepted range for frequency-like columns.
type RadioFrequency struct {
	MinFrequencyHz float64 `toml:"min_frequency_hz"`
	MaxFrequencyHz float64 `toml:"max_frequency_hz"`
	SampleRateHz   float64 `toml:"sample_rate_hz"`
	BandwidthHz    float64 `toml:"bandwidth_hz"`
}

// LatticeParameters holds the accepted range for lattice-constant columns.
type LatticeParameters struct {
	MinLatticeConstant float64 `toml:"min_lattice_constant"`
	MaxLatticeConstant float64 `toml:"max_lattice_constant"`
	EnergyThreshold    float64 `toml:"energy_threshold"`
	Precision          float64 `toml:"precision"`
}

// Paths contains directory configuration for intake artifacts.
type Paths struct {
	RawDataDir   string   `toml:"raw_data_dir"`
	SummariesDir string   `toml:"summaries_dir"`
	CapsulesDir  string   `toml:"capsules_dir"`
	LogDir       string   `toml:"log_dir"`
	DBPath       string   `toml:"db_path"`
	IndexRoots   []string `toml:"index_roots"`
	MasterIndex  string   `toml:"master_index"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for an intake run.
//
// Configuration sections by subsystem:
//   - DataQuality: completeness, sample size, and outlier thresholds
//   - Validation: feature toggles for individual checks
//   - Processing: batch sizing for large inputs
//   - RadioFrequency / LatticeParameters: domain range checks
//   - Paths: artifact directories, run database, index roots
//   - Logging: log format and level
type Config struct {
	Version           string            `toml:"version"`
	Description       string            `toml:"description"`
	DataQuality       DataQuality       `toml:"data_quality"`
	Validation        Validation        `toml:"validation"`
	Processing        Processing        `toml:"processing"`
	RadioFrequency    RadioFrequency    `toml:"radio_frequency"`
	LatticeParameters LatticeParameters `toml:"lattice_parameters"`
	Paths             Paths             `toml:"paths"`
	Logging           Logging           `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/luft/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config
// has all path fields expanded and normalized. When no file exists at the
// resolved location the defaults are returned with exists=false.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("luft.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the artifact directories an intake run writes to.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.SummariesDir, c.Paths.CapsulesDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	if db := strings.TrimSpace(c.Paths.DBPath); db != "" {
		if err := os.MkdirAll(filepath.Dir(db), 0o755); err != nil {
			return fmt.Errorf("create database directory: %w", err)
		}
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
