package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/coursepilot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points HOME and the working directory at fresh temp dirs and clears
// every COURSEPILOT_* variable for the duration of the test.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, key := range []string{
		EnvConfigPath,
		"COURSEPILOT_DB",
		"COURSEPILOT_LOG_LEVEL",
		"COURSEPILOT_SESSIONS_PER_WEEK",
		"COURSEPILOT_SESSION_LENGTH",
		"COURSEPILOT_INCLUDE_WEEKENDS",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	t.Chdir(t.TempDir())
	return home
}

func TestLoadDefaultsWhenNoFile(t *testing.T) {
	home := isolate(t)

	cfg, path, exists, err := Load("")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.Equal(t, filepath.Join(home, ".config", "coursepilot", "config.toml"), path)

	assert.Equal(t, filepath.Join(home, ".coursepilot", "coursepilot.db"), cfg.DBPath)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 3, cfg.Defaults.SessionsPerWeek)
	assert.Equal(t, 60, cfg.Defaults.SessionLengthMinutes)
	assert.Equal(t, "markdown", cfg.Export.Format)
}

func TestLoadCustomPath(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(t.TempDir(), "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
db_path = "~/data/plans.db"
log_level = "DEBUG"

[defaults]
sessions_per_week = 5
session_length_minutes = 45
include_weekends = true
strategy = "time-based"

[export]
format = "md"
`), 0o644))

	cfg, resolved, exists, err := Load(path)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, path, resolved)

	assert.Equal(t, filepath.Join(home, "data", "plans.db"), cfg.DBPath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	assert.Equal(t, 5, cfg.Defaults.SessionsPerWeek)
	assert.Equal(t, 45, cfg.Defaults.SessionLengthMinutes)
	assert.True(t, cfg.Defaults.IncludeWeekends)
	assert.Equal(t, "markdown", cfg.Export.Format)

	s := cfg.PlanSettings(time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC))
	require.NotNil(t, s.Advanced)
	st, ok := s.StrategyOverride()
	require.True(t, ok)
	assert.Equal(t, domain.StrategyTimeBased, st)
}

func TestLoadProjectFile(t *testing.T) {
	isolate(t)
	require.NoError(t, os.WriteFile("coursepilot.toml", []byte("log_level = \"warn\"\n"), 0o644))

	cfg, path, exists, err := Load("")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, "coursepilot.toml", filepath.Base(path))
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadConfigPathFromEnv(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "env.toml")
	require.NoError(t, os.WriteFile(path, []byte("log_level = \"error\"\n"), 0o644))
	t.Setenv(EnvConfigPath, path)

	cfg, resolved, exists, err := Load("")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, path, resolved)
	assert.Equal(t, "error", cfg.LogLevel)
}

func TestEnvOverridesConfigFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[defaults]
sessions_per_week = 2
session_length_minutes = 30
`), 0o644))

	t.Setenv("COURSEPILOT_DB", ":memory:")
	t.Setenv("COURSEPILOT_SESSIONS_PER_WEEK", "6")
	t.Setenv("COURSEPILOT_SESSION_LENGTH", " 90 ")
	t.Setenv("COURSEPILOT_INCLUDE_WEEKENDS", "true")

	cfg, _, _, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":memory:", cfg.DBPath)
	assert.Equal(t, 6, cfg.Defaults.SessionsPerWeek)
	assert.Equal(t, 90, cfg.Defaults.SessionLengthMinutes)
	assert.True(t, cfg.Defaults.IncludeWeekends)
}

func TestMalformedEnvValuesAreIgnored(t *testing.T) {
	isolate(t)
	t.Setenv("COURSEPILOT_SESSIONS_PER_WEEK", "many")
	t.Setenv("COURSEPILOT_INCLUDE_WEEKENDS", "sometimes")

	cfg, _, _, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Defaults.SessionsPerWeek)
	assert.False(t, cfg.Defaults.IncludeWeekends)
}

func TestDotenvFillsUnsetVariables(t *testing.T) {
	isolate(t)
	require.NoError(t, os.WriteFile(".env", []byte("COURSEPILOT_LOG_LEVEL=warn\nCOURSEPILOT_SESSION_LENGTH=120\n"), 0o644))
	t.Setenv("COURSEPILOT_SESSION_LENGTH", "75")

	cfg, _, _, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 75, cfg.Defaults.SessionLengthMinutes, "existing env wins over .env")
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("log_level = \n"), 0o644))

	_, _, _, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"log level", func(c *Config) { c.LogLevel = "loud" }, "log_level"},
		{"sessions per week", func(c *Config) { c.Defaults.SessionsPerWeek = 8 }, "Sessions per week cannot exceed 7"},
		{"session length", func(c *Config) { c.Defaults.SessionLengthMinutes = 10 }, "at least 15 minutes"},
		{"strategy", func(c *Config) { c.Defaults.Strategy = "random" }, "unknown strategy"},
		{"export format", func(c *Config) { c.Export.Format = "pdf" }, "export.format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	require.NoError(t, CreateSample(path))

	cfg, _, exists, err := Load(path)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, Default().Defaults, cfg.Defaults)
}

func TestEnsureDirectories(t *testing.T) {
	dir := t.TempDir()
	cfg := Default()
	cfg.DBPath = filepath.Join(dir, "a", "b", "course.db")
	require.NoError(t, cfg.EnsureDirectories())
	assert.DirExists(t, filepath.Join(dir, "a", "b"))

	cfg.DBPath = ":memory:"
	assert.NoError(t, cfg.EnsureDirectories())
}
