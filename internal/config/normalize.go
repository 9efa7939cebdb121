package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeLogging()
	if strings.TrimSpace(c.Version) == "" {
		c.Version = SchemaVersion
	}
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.RawDataDir, err = expandPath(c.Paths.RawDataDir); err != nil {
		return fmt.Errorf("paths.raw_data_dir: %w", err)
	}
	if c.Paths.SummariesDir, err = expandPath(c.Paths.SummariesDir); err != nil {
		return fmt.Errorf("paths.summaries_dir: %w", err)
	}
	if c.Paths.CapsulesDir, err = expandPath(c.Paths.CapsulesDir); err != nil {
		return fmt.Errorf("paths.capsules_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if c.Paths.DBPath, err = expandPath(c.Paths.DBPath); err != nil {
		return fmt.Errorf("paths.db_path: %w", err)
	}
	if c.Paths.MasterIndex, err = expandPath(c.Paths.MasterIndex); err != nil {
		return fmt.Errorf("paths.master_index: %w", err)
	}
	for i, root := range c.Paths.IndexRoots {
		if c.Paths.IndexRoots[i], err = expandPath(root); err != nil {
			return fmt.Errorf("paths.index_roots[%d]: %w", i, err)
		}
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
