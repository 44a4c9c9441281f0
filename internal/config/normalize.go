package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	var err error
	c.DBPath = strings.TrimSpace(c.DBPath)
	if c.DBPath == "" {
		c.DBPath = defaultDBPath
	}
	if c.DBPath, err = ExpandPath(c.DBPath); err != nil {
		return fmt.Errorf("db_path: %w", err)
	}

	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}

	c.Defaults.Strategy = strings.TrimSpace(c.Defaults.Strategy)

	c.Export.Format = strings.ToLower(strings.TrimSpace(c.Export.Format))
	if c.Export.Format == "" {
		c.Export.Format = defaultExportFormat
	}
	if c.Export.Format == "md" {
		c.Export.Format = "markdown"
	}
	return nil
}
