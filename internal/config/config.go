package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alexanderramin/coursepilot/internal/domain"
	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// EnvConfigPath names the environment variable holding an explicit config path.
const EnvConfigPath = "COURSEPILOT_CONFIG"

// PlanDefaults seed the settings of new plans.
type PlanDefaults struct {
	SessionsPerWeek      int    `toml:"sessions_per_week"`
	SessionLengthMinutes int    `toml:"session_length_minutes"`
	IncludeWeekends      bool   `toml:"include_weekends"`
	Strategy             string `toml:"strategy"`
}

// ExportConfig controls plan export.
type ExportConfig struct {
	Format string `toml:"format"`
}

// Config holds the resolved coursepilot configuration.
type Config struct {
	DBPath   string       `toml:"db_path"`
	LogLevel string       `toml:"log_level"`
	Defaults PlanDefaults `toml:"defaults"`
	Export   ExportConfig `toml:"export"`
}

// DefaultConfigPath returns the user config location.
func DefaultConfigPath() (string, error) {
	return ExpandPath("~/.config/coursepilot/config.toml")
}

// Load reads configuration from path, or from the first location found when
// path is empty. It returns the config, the resolved path and whether that
// file existed.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
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

	if err := cfg.applyEnv(); err != nil {
		return nil, "", false, err
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
		expanded, err := ExpandPath(path)
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

	projectPath, err := filepath.Abs("coursepilot.toml")
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

// EnsureDirectories creates the parent directory of the database file.
func (c *Config) EnsureDirectories() error {
	if c.DBPath == "" || c.DBPath == ":memory:" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(c.DBPath), 0o755); err != nil {
		return fmt.Errorf("create database directory: %w", err)
	}
	return nil
}

// SlogLevel maps LogLevel onto a slog level.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// PlanSettings builds plan settings from the configured defaults.
func (c *Config) PlanSettings(start time.Time) domain.PlanSettings {
	s := domain.PlanSettings{
		StartDate:            start,
		SessionsPerWeek:      c.Defaults.SessionsPerWeek,
		SessionLengthMinutes: c.Defaults.SessionLengthMinutes,
		IncludeWeekends:      c.Defaults.IncludeWeekends,
	}
	if st, ok := domain.ParseStrategy(c.Defaults.Strategy); ok {
		adv := domain.DefaultAdvancedSettings()
		adv.Strategy = &st
		adv.SpacedRepetitionEnabled = st == domain.StrategySpacedRepetition
		s.Advanced = &adv
	}
	return s
}

// ExpandPath resolves a leading ~ and makes pathValue absolute. Empty and
// in-memory database paths pass through unchanged.
func ExpandPath(pathValue string) (string, error) {
	if pathValue == "" || pathValue == ":memory:" {
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

// CreateSample writes the commented sample configuration to path.
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
