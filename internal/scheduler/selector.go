package scheduler

import (
	"time"

	"github.com/alexanderramin/coursepilot/internal/domain"
)

const (
	minMeanVideoDuration      = time.Minute
	fallbackMeanVideoDuration = 10 * time.Minute
	// perVideoTransition is half of a five minute per-video buffer.
	perVideoTransition = 150 * time.Second
	defaultComplexity  = 0.5
)

// EstimateVideosPerSession estimates how many videos fit one session.
func EstimateVideosPerSession(cs *domain.CourseStructure, s domain.PlanSettings) int {
	mean := fallbackMeanVideoDuration
	if cs != nil {
		var sum time.Duration
		n := 0
		for _, sec := range cs.Sections() {
			if sec.Duration > 0 {
				sum += sec.Duration
				n++
			}
		}
		if n > 0 {
			mean = sum / time.Duration(n)
		}
	}
	if mean < minMeanVideoDuration {
		mean = minMeanVideoDuration
	}
	per := mean + perVideoTransition
	est := int(s.StrictLimit() / per)
	if est < 1 {
		est = 1
	}
	return est
}

// CourseComplexity scores a course in [0,1] from title keywords and
// section lengths. A missing or empty structure scores 0.5.
func CourseComplexity(cs *domain.CourseStructure) float64 {
	if cs == nil {
		return defaultComplexity
	}
	sections := cs.Sections()
	if len(sections) == 0 {
		return defaultComplexity
	}
	total := 0.0
	for _, sec := range sections {
		total += sectionComplexity(sec)
	}
	return clamp01(total / float64(len(sections)))
}

func sectionComplexity(sec domain.Section) float64 {
	score, _ := firstWeight(sec.Title, complexityFactors)
	switch {
	case sec.Duration > 30*time.Minute:
		score += 0.3
	case sec.Duration > 15*time.Minute:
		score += 0.1
	}
	return score
}

// UserExperience infers the learner's level from the commitment implied by
// the settings, unless an explicit level is given.
func UserExperience(s domain.PlanSettings) domain.DifficultyLevel {
	if s.Advanced != nil && s.Advanced.UserExperienceLevel != domain.DifficultyUnknown {
		return s.Advanced.UserExperienceLevel
	}
	spw, l := s.SessionsPerWeek, s.SessionLengthMinutes
	switch {
	case spw >= 5 && l >= 90:
		return domain.DifficultyExpert
	case spw >= 4 && l >= 60:
		return domain.DifficultyAdvanced
	case spw >= 3 && l >= 45:
		return domain.DifficultyIntermediate
	default:
		return domain.DifficultyBeginner
	}
}

// SelectStrategy picks a distribution strategy for a structured course.
// An explicit override in the advanced settings wins.
func SelectStrategy(cs *domain.CourseStructure, s domain.PlanSettings) (domain.DistributionStrategy, error) {
	if cs == nil || len(cs.Modules) == 0 {
		return "", domain.ErrCourseNotStructured
	}
	if st, ok := s.StrategyOverride(); ok {
		return st, nil
	}

	est := EstimateVideosPerSession(cs, s)
	total := cs.SectionCount()
	modules := len(cs.Modules)
	avgModuleSize := total / modules

	switch {
	case CourseComplexity(cs) > 0.8:
		return domain.StrategyAdaptive, nil
	case UserExperience(s) == domain.DifficultyBeginner:
		return domain.StrategySpacedRepetition, nil
	case modules > 3 && avgModuleSize <= 2*est:
		return domain.StrategyModuleBased, nil
	case total > 15*est:
		return domain.StrategyDifficultyBased, nil
	case total > 10*est:
		return domain.StrategyTimeBased, nil
	default:
		return domain.StrategyHybrid, nil
	}
}
