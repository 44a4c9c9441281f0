package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var monday = time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)

func TestValidate_Defaults(t *testing.T) {
	require.NoError(t, DefaultPlanSettings(monday).Validate())
}

func TestValidate_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*PlanSettings)
		reason string
	}{
		{"zero sessions", func(s *PlanSettings) { s.SessionsPerWeek = 0 }, "Sessions per week must be greater than 0"},
		{"eight sessions", func(s *PlanSettings) { s.SessionsPerWeek = 8 }, "Sessions per week cannot exceed 7"},
		{"short session", func(s *PlanSettings) { s.SessionLengthMinutes = 14 }, "Session length must be at least 15 minutes"},
		{"no start", func(s *PlanSettings) { s.StartDate = time.Time{} }, "Start date is required"},
		{"intervals not ascending", func(s *PlanSettings) {
			s.Advanced = &AdvancedSettings{CustomIntervals: []int{1, 3, 3}}
		}, "Custom intervals must be strictly ascending"},
		{"interval too large", func(s *PlanSettings) {
			s.Advanced = &AdvancedSettings{CustomIntervals: []int{1, 400}}
		}, "Custom intervals cannot exceed 365 days"},
		{"interval not positive", func(s *PlanSettings) {
			s.Advanced = &AdvancedSettings{CustomIntervals: []int{0, 2}}
		}, "All custom intervals must be positive"},
		{"session cap", func(s *PlanSettings) {
			capMin := 10
			s.Advanced = &AdvancedSettings{MaxSessionDurationMinutes: &capMin}
		}, "Maximum session duration must be between 15 and 300 minutes"},
		{"spaced without strategy", func(s *PlanSettings) {
			st := StrategyHybrid
			s.Advanced = &AdvancedSettings{Strategy: &st, SpacedRepetitionEnabled: true}
		}, "Spaced repetition enabled but strategy is not spaced repetition"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultPlanSettings(monday)
			tt.mutate(&s)
			err := s.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidSettings))
			assert.Equal(t, tt.reason, Reason(err))
		})
	}
}

func TestValidate_PastStartAllowed(t *testing.T) {
	s := DefaultPlanSettings(time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.NoError(t, s.Validate())
}

func TestLimits(t *testing.T) {
	s := DefaultPlanSettings(monday)
	assert.Equal(t, 60*time.Minute, s.StrictLimit())
	assert.Equal(t, 48*time.Minute, s.EffectiveLimit())

	capMin := 45
	s.Advanced = &AdvancedSettings{MaxSessionDurationMinutes: &capMin}
	assert.Equal(t, 45, s.PackingMinutes())
	assert.Equal(t, 36*time.Minute, s.EffectiveLimit())
}

func TestRepetitionIntervals(t *testing.T) {
	s := DefaultPlanSettings(monday)
	assert.Equal(t, []int{1, 3, 7, 14, 30}, s.RepetitionIntervals())

	s.Advanced = &AdvancedSettings{CustomIntervals: []int{2, 4}}
	assert.Equal(t, []int{2, 4}, s.RepetitionIntervals())
}

func TestRecommendForCourse(t *testing.T) {
	beginner := RecommendForCourse(DifficultyBeginner, DifficultyAdvanced, 3)
	require.NotNil(t, beginner.Strategy)
	assert.Equal(t, StrategySpacedRepetition, *beginner.Strategy)
	assert.True(t, beginner.SpacedRepetitionEnabled)
	assert.Equal(t, 45, *beginner.MaxSessionDurationMinutes)
	assert.NoError(t, beginner.Validate())

	mid := RecommendForCourse(DifficultyIntermediate, DifficultyExpert, 10)
	assert.Equal(t, StrategyAdaptive, *mid.Strategy)
	assert.Equal(t, 60, *mid.MaxSessionDurationMinutes)

	adv := RecommendForCourse(DifficultyExpert, DifficultyBeginner, 30)
	assert.Equal(t, StrategyHybrid, *adv.Strategy)
	assert.True(t, adv.PrioritizeDifficultContent)
	assert.Equal(t, 90, *adv.MaxSessionDurationMinutes)
}

func TestParseStrategy(t *testing.T) {
	st, ok := ParseStrategy("Time-Based")
	require.True(t, ok)
	assert.Equal(t, StrategyTimeBased, st)

	_, ok = ParseStrategy("sequential")
	assert.False(t, ok, "sequential is not selectable")
}
