package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// dotenvPath is loaded before environment overrides. Existing environment
// variables win over values in the file.
var dotenvPath = ".env"

func (c *Config) applyEnv() error {
	if err := godotenv.Load(dotenvPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", dotenvPath, err)
	}

	if v := os.Getenv("COURSEPILOT_DB"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("COURSEPILOT_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("COURSEPILOT_SESSIONS_PER_WEEK"); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			c.Defaults.SessionsPerWeek = n
		}
	}
	if v := os.Getenv("COURSEPILOT_SESSION_LENGTH"); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			c.Defaults.SessionLengthMinutes = n
		}
	}
	if v := os.Getenv("COURSEPILOT_INCLUDE_WEEKENDS"); v != "" {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			c.Defaults.IncludeWeekends = b
		}
	}
	return nil
}
