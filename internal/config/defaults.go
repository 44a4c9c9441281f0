package config

import "github.com/alexanderramin/coursepilot/internal/domain"

const (
	defaultDBPath          = "~/.coursepilot/coursepilot.db"
	defaultLogLevel        = "warn"
	defaultSessionsPerWeek = 3
	defaultSessionLength   = 60
	defaultExportFormat    = "markdown"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		DBPath:   defaultDBPath,
		LogLevel: defaultLogLevel,
		Defaults: PlanDefaults{
			SessionsPerWeek:      defaultSessionsPerWeek,
			SessionLengthMinutes: defaultSessionLength,
			IncludeWeekends:      false,
			Strategy:             "",
		},
		Export: ExportConfig{
			Format: defaultExportFormat,
		},
	}
}

// ExportFormats lists the accepted plan export formats.
var ExportFormats = []string{"csv", "markdown", "html", "ics"}

func validStrategy(s string) bool {
	_, ok := domain.ParseStrategy(s)
	return ok
}
