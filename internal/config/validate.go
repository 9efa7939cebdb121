package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateVersion(); err != nil {
		return err
	}
	if err := c.validateDataQuality(); err != nil {
		return err
	}
	if err := c.validateProcessing(); err != nil {
		return err
	}
	if err := c.validateRanges(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateVersion() error {
	ok, err := IsCompatible(c.Version)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("config version %s is incompatible with schema %s", c.Version, SchemaVersion)
	}
	return nil
}

func (c *Config) validateDataQuality() error {
	dq := c.DataQuality
	if dq.MinCompleteness < 0 || dq.MinCompleteness > 1 {
		return errors.New("data_quality.min_completeness must be between 0 and 1")
	}
	if dq.MaxMissingValues < 0 || dq.MaxMissingValues > 1 {
		return errors.New("data_quality.max_missing_values must be between 0 and 1")
	}
	if dq.MinSampleSize <= 0 {
		return errors.New("data_quality.min_sample_size must be positive")
	}
	if dq.MaxOutlierRatio < 0 || dq.MaxOutlierRatio > 1 {
		return errors.New("data_quality.max_outlier_ratio must be between 0 and 1")
	}
	return nil
}

func (c *Config) validateProcessing() error {
	if err := ensurePositiveMap(map[string]int{
		"processing.batch_size":       c.Processing.BatchSize,
		"processing.max_memory_mb":    c.Processing.MaxMemoryMB,
		"processing.parallel_threads": c.Processing.ParallelThreads,
		"processing.chunk_size":       c.Processing.ChunkSize,
	}); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateRanges() error {
	if c.RadioFrequency.MinFrequencyHz >= c.RadioFrequency.MaxFrequencyHz {
		return errors.New("radio_frequency.min_frequency_hz must be below radio_frequency.max_frequency_hz")
	}
	if c.LatticeParameters.MinLatticeConstant >= c.LatticeParameters.MaxLatticeConstant {
		return errors.New("lattice_parameters.min_lattice_constant must be below lattice_parameters.max_lattice_constant")
	}
	if c.LatticeParameters.Precision <= 0 {
		return errors.New("lattice_parameters.precision must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
