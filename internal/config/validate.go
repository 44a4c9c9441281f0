package config

import (
	"fmt"
	"slices"
	"time"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be one of debug, info, warn, error (got %q)", c.LogLevel)
	}
	if err := c.validateDefaults(); err != nil {
		return err
	}
	if !slices.Contains(ExportFormats, c.Export.Format) {
		return fmt.Errorf("export.format must be one of csv, markdown, html, ics (got %q)", c.Export.Format)
	}
	return nil
}

func (c *Config) validateDefaults() error {
	if c.Defaults.Strategy != "" && !validStrategy(c.Defaults.Strategy) {
		return fmt.Errorf("defaults.strategy: unknown strategy %q", c.Defaults.Strategy)
	}
	// Any start date works here; only the cadence fields are checked.
	if err := c.PlanSettings(time.Now()).Validate(); err != nil {
		return fmt.Errorf("defaults: %w", err)
	}
	return nil
}
