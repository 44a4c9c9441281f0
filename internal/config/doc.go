// Package config loads coursepilot settings.
//
// Values are layered: built-in defaults, then the TOML file, then a .env
// file in the working directory, then COURSEPILOT_* environment variables.
// Plan defaults are validated against the same contract the planner uses.
package config
