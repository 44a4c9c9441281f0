package domain

import (
	"fmt"
	"time"
)

// CompletionBuffer is the multiplier applied to session duration to
// estimate time spent including notes and transitions.
const CompletionBuffer = 1.25

type PlanSettings struct {
	StartDate            time.Time
	SessionsPerWeek      int
	SessionLengthMinutes int
	IncludeWeekends      bool
	Advanced             *AdvancedSettings
}

// AdvancedSettings overrides the planner's built-in constants.
// A nil field means "use the default".
type AdvancedSettings struct {
	Strategy                   *DistributionStrategy
	DifficultyAdaptation       bool
	SpacedRepetitionEnabled    bool
	CognitiveLoadBalancing     bool
	UserExperienceLevel        DifficultyLevel
	CustomIntervals            []int
	MaxSessionDurationMinutes  *int
	PrioritizeDifficultContent bool
	AdaptivePacing             bool
}

// DefaultAdvancedSettings returns the baseline advanced settings.
func DefaultAdvancedSettings() AdvancedSettings {
	return AdvancedSettings{
		DifficultyAdaptation:   true,
		CognitiveLoadBalancing: true,
		UserExperienceLevel:    DifficultyIntermediate,
		AdaptivePacing:         true,
	}
}

// ForBeginner favours spaced repetition for new learners.
func ForBeginner() AdvancedSettings {
	s := DefaultAdvancedSettings()
	st := StrategySpacedRepetition
	s.Strategy = &st
	s.SpacedRepetitionEnabled = true
	s.UserExperienceLevel = DifficultyBeginner
	return s
}

// ForAdvanced favours adaptive ordering and front-loads difficult content.
func ForAdvanced() AdvancedSettings {
	s := DefaultAdvancedSettings()
	st := StrategyAdaptive
	s.Strategy = &st
	s.CognitiveLoadBalancing = false
	s.UserExperienceLevel = DifficultyAdvanced
	s.PrioritizeDifficultContent = true
	return s
}

// RecommendForCourse picks advanced settings from the learner's level, the
// course's difficulty and its total length.
func RecommendForCourse(user, course DifficultyLevel, totalHours float64) AdvancedSettings {
	var st DistributionStrategy
	switch {
	case user == DifficultyBeginner:
		st = StrategySpacedRepetition
	case user == DifficultyIntermediate && (course == DifficultyAdvanced || course == DifficultyExpert):
		st = StrategyAdaptive
	default:
		st = StrategyHybrid
	}

	maxMin := 60
	switch {
	case totalHours > 20:
		maxMin = 90
	case totalHours < 5:
		maxMin = 45
	}

	s := DefaultAdvancedSettings()
	s.Strategy = &st
	s.SpacedRepetitionEnabled = user == DifficultyBeginner
	s.UserExperienceLevel = user
	s.MaxSessionDurationMinutes = &maxMin
	s.PrioritizeDifficultContent = user == DifficultyAdvanced || user == DifficultyExpert
	return s
}

// StrictLimit is the hard per-session ceiling.
func (s PlanSettings) StrictLimit() time.Duration {
	return time.Duration(s.PackingMinutes()) * time.Minute
}

// EffectiveLimit is 80% of the strict limit with a one minute floor.
func (s PlanSettings) EffectiveLimit() time.Duration {
	eff := time.Duration(float64(s.StrictLimit()) * 0.8)
	if eff < time.Minute {
		eff = time.Minute
	}
	return eff
}

// PackingMinutes is the session length used for packing: the configured
// length, lowered to the advanced session cap when one is set.
func (s PlanSettings) PackingMinutes() int {
	l := s.SessionLengthMinutes
	if s.Advanced != nil && s.Advanced.MaxSessionDurationMinutes != nil && *s.Advanced.MaxSessionDurationMinutes < l {
		l = *s.Advanced.MaxSessionDurationMinutes
	}
	return l
}

// StrategyOverride returns the explicitly requested strategy, if any.
func (s PlanSettings) StrategyOverride() (DistributionStrategy, bool) {
	if s.Advanced == nil || s.Advanced.Strategy == nil {
		return "", false
	}
	return *s.Advanced.Strategy, true
}

type PlanItem struct {
	Date                    time.Time
	ModuleTitle             string
	SectionTitle            string
	VideoIndices            []int
	Completed               bool
	TotalDuration           time.Duration
	EstimatedCompletionTime time.Duration
	OverflowWarnings        []string
	Kind                    ItemKind
	// TimeOfDay is set by the adaptive strategy only.
	TimeOfDay TimeOfDay
}

// IsEmpty reports whether the item has no videos.
func (it *PlanItem) IsEmpty() bool {
	return len(it.VideoIndices) == 0
}

type Plan struct {
	ID        string
	CourseID  string
	Settings  PlanSettings
	Items     []PlanItem
	Strategy  DistributionStrategy
	Applied   []OptimizationPass
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasApplied reports whether the optimizer pass already ran on this plan.
func (p *Plan) HasApplied(pass OptimizationPass) bool {
	for _, a := range p.Applied {
		if a == pass {
			return true
		}
	}
	return false
}

// MarkApplied records pass as done. Repeated calls are no-ops.
func (p *Plan) MarkApplied(pass OptimizationPass) {
	if !p.HasApplied(pass) {
		p.Applied = append(p.Applied, pass)
	}
}

// SetCompleted flips the completion flag of item idx.
func (p *Plan) SetCompleted(idx int, completed bool) error {
	if idx < 0 || idx >= len(p.Items) {
		return fmt.Errorf("plan item index %d out of bounds", idx)
	}
	p.Items[idx].Completed = completed
	return nil
}

// Progress returns completed count, total count and completion percentage.
func (p *Plan) Progress() (done, total int, pct float64) {
	total = len(p.Items)
	for _, it := range p.Items {
		if it.Completed {
			done++
		}
	}
	if total > 0 {
		pct = float64(done) / float64(total) * 100
	}
	return done, total, pct
}

// StudyVideoCount counts video pointers on non-synthetic items.
func (p *Plan) StudyVideoCount() int {
	n := 0
	for _, it := range p.Items {
		if !it.Kind.IsSynthetic() {
			n += len(it.VideoIndices)
		}
	}
	return n
}
