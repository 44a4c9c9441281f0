package scheduler

import (
	"fmt"
	"math"
	"time"

	"github.com/alexanderramin/coursepilot/internal/domain"
)

const (
	maxRecommendedSessionMinutes = 120
	completionWeeksBuffer        = 0.2
	perVideoBuffer               = 5 * time.Minute
	highComplexity               = 0.7
	peakModuleComplexity         = 0.7
	steepCurveStep               = 0.3
	easyStartComplexity          = 0.4
)

// StudyRecommendations is advice derived from a course and the learner's
// settings. It does not depend on any generated plan.
type StudyRecommendations struct {
	OptimalSessionsPerWeek   int
	RecommendedSessionLength int
	StudyStrategy            string
	TimeManagementTips       []string
	Progression              DifficultyProgression
	EstimatedCompletionWeeks int
}

type DifficultyProgression struct {
	StartsEasy             bool
	HasSteepLearningCurve  bool
	ComplexityPeaks        []string
	RecommendedBreakPoints []string
}

// Recommend builds study recommendations for cs. A nil structure yields a
// neutral progression and complexity 0.5.
func Recommend(cs *domain.CourseStructure, s domain.PlanSettings) StudyRecommendations {
	complexity := CourseComplexity(cs)
	level := UserExperience(s)
	videos := 0
	if cs != nil {
		videos = cs.SectionCount()
	}

	r := StudyRecommendations{
		OptimalSessionsPerWeek:   optimalFrequency(level, complexity, videos),
		RecommendedSessionLength: optimalSessionLength(level, complexity),
		StudyStrategy:            studyStrategy(level, complexity),
		TimeManagementTips:       timeManagementTips(s),
		Progression:              difficultyProgression(cs),
		EstimatedCompletionWeeks: estimateCompletionWeeks(cs, s),
	}

	switch level {
	case domain.DifficultyBeginner:
		r.TimeManagementTips = append(r.TimeManagementTips,
			"Start with shorter sessions to build consistency",
			"Take notes during each session for better retention",
			"Don't hesitate to pause and replay difficult sections",
		)
	case domain.DifficultyExpert:
		r.TimeManagementTips = append(r.TimeManagementTips,
			"Focus on practical application over passive watching",
			"Create projects to reinforce learning",
			"Consider teaching concepts to others for deeper understanding",
		)
	}
	if complexity > highComplexity {
		r.TimeManagementTips = append(r.TimeManagementTips,
			"This course has high complexity - consider extending your timeline")
	}
	return r
}

func optimalFrequency(level domain.DifficultyLevel, complexity float64, videos int) int {
	switch level {
	case domain.DifficultyBeginner:
		switch {
		case complexity > 0.7:
			return 5
		case videos > 50:
			return 4
		}
		return 3
	case domain.DifficultyAdvanced:
		if videos > 100 {
			return 5
		}
		return 4
	case domain.DifficultyExpert:
		return 3
	default:
		if complexity > 0.8 {
			return 4
		}
		return 3
	}
}

func optimalSessionLength(level domain.DifficultyLevel, complexity float64) int {
	var base int
	switch level {
	case domain.DifficultyBeginner:
		base = 30
	case domain.DifficultyAdvanced:
		base = 60
	case domain.DifficultyExpert:
		base = 90
	default:
		base = 45
	}
	return min(base+int(complexity*30), maxRecommendedSessionMinutes)
}

func studyStrategy(level domain.DifficultyLevel, complexity float64) string {
	switch {
	case complexity > highComplexity && level == domain.DifficultyBeginner:
		return "Spaced Repetition: This complex course benefits from frequent review sessions"
	case complexity > highComplexity:
		return "Adaptive Learning: Adjust pace based on topic difficulty"
	case level == domain.DifficultyExpert:
		return "Accelerated Learning: Focus on practical application and projects"
	default:
		return "Balanced Approach: Steady progress with regular reviews"
	}
}

func timeManagementTips(s domain.PlanSettings) []string {
	tips := []string{
		"Set a consistent study schedule",
		"Eliminate distractions during study sessions",
		"Use the Pomodoro Technique for better focus",
	}
	if s.SessionsPerWeek >= 5 {
		tips = append(tips, "High frequency schedule - ensure adequate rest between sessions")
	}
	if s.SessionLengthMinutes >= 90 {
		tips = append(tips, "Long sessions - take 10-minute breaks every hour")
	}
	if !s.IncludeWeekends {
		tips = append(tips, "Weekend-free schedule - use weekends for review and practice")
	}
	return tips
}

// difficultyProgression scores each module by the mean of its section
// difficulties (Beginner 0.25 through Expert 1.0).
func difficultyProgression(cs *domain.CourseStructure) DifficultyProgression {
	if cs == nil {
		return DifficultyProgression{StartsEasy: true}
	}
	var dp DifficultyProgression
	scores := make([]float64, 0, len(cs.Modules))
	for _, m := range cs.Modules {
		score := 0.0
		for _, sec := range m.Sections {
			score += float64(AnalyzeSectionDifficulty(sec).Rank()+1) * 0.25
		}
		if len(m.Sections) > 0 {
			score /= float64(len(m.Sections))
		}
		scores = append(scores, score)

		if score > peakModuleComplexity {
			dp.ComplexityPeaks = append(dp.ComplexityPeaks, m.Title)
			dp.RecommendedBreakPoints = append(dp.RecommendedBreakPoints,
				fmt.Sprintf("Consider a break after completing: %s", m.Title))
		}
	}
	dp.StartsEasy = len(scores) > 0 && scores[0] < easyStartComplexity
	for i := 1; i < len(scores); i++ {
		if scores[i]-scores[i-1] > steepCurveStep {
			dp.HasSteepLearningCurve = true
			break
		}
	}
	return dp
}

// estimateCompletionWeeks adds a 20% allowance for reviews and breaks to
// the raw number of weeks.
func estimateCompletionWeeks(cs *domain.CourseStructure, s domain.PlanSettings) int {
	if cs == nil || s.SessionsPerWeek <= 0 {
		return 0
	}
	perSession := VideosPerSessionForCourse(cs, s)
	sessions := ceilDiv(cs.SectionCount(), perSession)
	weeks := EstimateCourseWeeks(sessions, s.SessionsPerWeek)
	return weeks + int(math.Ceil(float64(weeks)*completionWeeksBuffer))
}

// EstimateCourseWeeks is the number of weeks needed for the given number
// of sessions. Zero sessions per week yields zero.
func EstimateCourseWeeks(sessions, sessionsPerWeek int) int {
	if sessionsPerWeek <= 0 {
		return 0
	}
	return ceilDiv(sessions, sessionsPerWeek)
}

// EstimateTotalStudyTime is the watch time plus five minutes per video.
func EstimateTotalStudyTime(videos int, avg time.Duration) time.Duration {
	return avg*time.Duration(videos) + perVideoBuffer*time.Duration(videos)
}

// AverageVideoDuration is the mean of the known section durations with a
// one minute floor. ok is false when no section has a duration.
func AverageVideoDuration(cs *domain.CourseStructure) (avg time.Duration, ok bool) {
	if cs == nil {
		return 0, false
	}
	var sum time.Duration
	n := 0
	for _, sec := range cs.Sections() {
		if sec.Duration > 0 {
			sum += sec.Duration
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return max(sum/time.Duration(n), minMeanVideoDuration), true
}

// SessionCapacity is how many videos of the given average length fit the
// effective limit, at least one.
func SessionCapacity(avg time.Duration, s domain.PlanSettings) int {
	eff := s.EffectiveLimit()
	if avg <= 0 || avg >= eff {
		return 1
	}
	return max(1, int(eff/avg))
}

// FallbackVideosPerSession estimates capacity when no durations are known,
// assuming longer videos for longer sessions.
func FallbackVideosPerSession(s domain.PlanSettings) int {
	l := s.PackingMinutes()
	var avg int
	switch {
	case l <= 30:
		avg = 8
	case l <= 60:
		avg = 12
	case l <= 90:
		avg = 15
	default:
		avg = 18
	}
	return max(1, int(float64(l)*0.8)/avg)
}

// VideosPerSessionForCourse uses real durations when present and the
// fallback otherwise.
func VideosPerSessionForCourse(cs *domain.CourseStructure, s domain.PlanSettings) int {
	if avg, ok := AverageVideoDuration(cs); ok {
		return SessionCapacity(avg, s)
	}
	return FallbackVideosPerSession(s)
}

func ceilDiv(a, b int) int {
	if b <= 0 {
		return 0
	}
	return (a + b - 1) / b
}
