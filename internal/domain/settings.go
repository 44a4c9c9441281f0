package domain

import "time"

const (
	MinSessionsPerWeek      = 1
	MaxSessionsPerWeek      = 7
	MinSessionLengthMinutes = 15
	MaxCustomInterval       = 365
	MinSessionCapMinutes    = 15
	MaxSessionCapMinutes    = 300
)

// DefaultRepetitionIntervals are the spaced repetition offsets in days.
var DefaultRepetitionIntervals = []int{1, 3, 7, 14, 30}

// DefaultPlanSettings returns three 60-minute weekday sessions per week
// starting at start.
func DefaultPlanSettings(start time.Time) PlanSettings {
	return PlanSettings{
		StartDate:            start,
		SessionsPerWeek:      3,
		SessionLengthMinutes: 60,
		IncludeWeekends:      false,
	}
}

// Validate checks the settings contract. Violations return an error
// wrapping ErrInvalidSettings with a single-sentence reason.
func (s PlanSettings) Validate() error {
	if s.SessionsPerWeek < MinSessionsPerWeek {
		return InvalidSettings("Sessions per week must be greater than 0")
	}
	if s.SessionsPerWeek > MaxSessionsPerWeek {
		return InvalidSettings("Sessions per week cannot exceed 7")
	}
	if s.SessionLengthMinutes < MinSessionLengthMinutes {
		return InvalidSettings("Session length must be at least 15 minutes")
	}
	if s.StartDate.IsZero() {
		return InvalidSettings("Start date is required")
	}
	if s.Advanced != nil {
		return s.Advanced.Validate()
	}
	return nil
}

// Validate checks the advanced overrides.
func (a AdvancedSettings) Validate() error {
	if a.Strategy != nil {
		valid := false
		for _, st := range AllStrategies {
			if st == *a.Strategy {
				valid = true
				break
			}
		}
		if !valid {
			return InvalidSettings("Unknown distribution strategy " + string(*a.Strategy))
		}
		if a.SpacedRepetitionEnabled && *a.Strategy != StrategySpacedRepetition {
			return InvalidSettings("Spaced repetition enabled but strategy is not spaced repetition")
		}
	}
	if a.MaxSessionDurationMinutes != nil {
		m := *a.MaxSessionDurationMinutes
		if m < MinSessionCapMinutes || m > MaxSessionCapMinutes {
			return InvalidSettings("Maximum session duration must be between 15 and 300 minutes")
		}
	}
	if a.CustomIntervals != nil {
		if len(a.CustomIntervals) == 0 {
			return InvalidSettings("Custom intervals cannot be empty")
		}
		prev := 0
		for _, iv := range a.CustomIntervals {
			if iv <= 0 {
				return InvalidSettings("All custom intervals must be positive")
			}
			if iv > MaxCustomInterval {
				return InvalidSettings("Custom intervals cannot exceed 365 days")
			}
			if iv <= prev {
				return InvalidSettings("Custom intervals must be strictly ascending")
			}
			prev = iv
		}
	}
	if a.UserExperienceLevel != DifficultyUnknown {
		if _, ok := ValidDifficultyLevels[string(a.UserExperienceLevel)]; !ok {
			return InvalidSettings("Unknown experience level " + string(a.UserExperienceLevel))
		}
	}
	return nil
}

// RepetitionIntervals returns the custom intervals when set, otherwise the defaults.
func (s PlanSettings) RepetitionIntervals() []int {
	if s.Advanced != nil && len(s.Advanced.CustomIntervals) > 0 {
		return s.Advanced.CustomIntervals
	}
	return DefaultRepetitionIntervals
}
