package scheduler

import (
	"math"
	"strings"
	"time"

	"github.com/alexanderramin/coursepilot/internal/domain"
)

type keywordWeight struct {
	keyword string
	weight  float64
}

// complexityFactors feed course complexity. The first matching keyword
// wins for a section.
var complexityFactors = []keywordWeight{
	{"advanced", 0.30},
	{"expert", 0.25},
	{"theory", 0.20},
	{"derivation", 0.20},
	{"proof", 0.20},
	{"project", 0.20},
	{"assignment", 0.15},
	{"exam", 0.15},
	{"test", 0.15},
	{"exercise", 0.12},
	{"practice", 0.10},
	{"lab", 0.10},
	{"introduction", -0.10},
	{"intro", -0.08},
	{"overview", -0.08},
	{"basics", -0.08},
}

var cognitiveLoadFactors = []keywordWeight{
	{"algorithm", 0.9},
	{"theory", 0.8},
	{"concept", 0.7},
	{"example", 0.6},
	{"practice", 0.5},
	{"review", 0.4},
	{"introduction", 0.3},
}

const baseCognitiveLoad = 0.5

var (
	expertTerms   = []string{"advanced", "expert", "complex", "algorithm", "optimization"}
	advancedTerms = []string{"intermediate", "deep", "detailed", "implementation"}
	beginnerTerms = []string{"introduction", "basic", "getting started", "overview"}
)

func firstWeight(title string, table []keywordWeight) (float64, bool) {
	lower := strings.ToLower(title)
	for _, kw := range table {
		if strings.Contains(lower, kw.keyword) {
			return kw.weight, true
		}
	}
	return 0, false
}

// TitleLoad is the cognitive load implied by a title alone.
func TitleLoad(title string) float64 {
	if w, ok := firstWeight(title, cognitiveLoadFactors); ok {
		return w
	}
	return baseCognitiveLoad
}

// CognitiveLoad scales the title load by duration: half an hour is neutral
// and the factor caps at 1.5. A zero duration yields the title-only load.
// The result is clamped to 1.
func CognitiveLoad(title string, d time.Duration) float64 {
	load := TitleLoad(title)
	if d > 0 {
		factor := math.Min(math.Floor(d.Minutes())/30, 1.5)
		load *= factor
	}
	return math.Min(load, 1.0)
}

// AnalyzeSectionDifficulty classifies a section by title keywords, falling
// back to its length in minutes.
func AnalyzeSectionDifficulty(s domain.Section) domain.DifficultyLevel {
	lower := strings.ToLower(s.Title)
	switch {
	case containsAny(lower, expertTerms):
		return domain.DifficultyExpert
	case containsAny(lower, advancedTerms):
		return domain.DifficultyAdvanced
	case containsAny(lower, beginnerTerms):
		return domain.DifficultyBeginner
	}

	minutes := int(s.Duration / time.Minute)
	switch {
	case minutes <= 10:
		return domain.DifficultyBeginner
	case minutes <= 25:
		return domain.DifficultyIntermediate
	case minutes <= 45:
		return domain.DifficultyAdvanced
	default:
		return domain.DifficultyExpert
	}
}

// ClassifySessionType maps a title to its learning activity.
func ClassifySessionType(title string) domain.SessionType {
	lower := strings.ToLower(title)
	switch {
	case containsAny(lower, []string{"introduction", "overview"}):
		return domain.SessionIntroduction
	case containsAny(lower, []string{"practice", "exercise"}):
		return domain.SessionPractice
	case containsAny(lower, []string{"review", "summary"}):
		return domain.SessionReview
	case containsAny(lower, []string{"project", "build"}):
		return domain.SessionProject
	case containsAny(lower, []string{"test", "quiz"}):
		return domain.SessionAssessment
	default:
		return domain.SessionIntroduction
	}
}

// OptimalTimeOfDay suggests when a session is best studied.
func OptimalTimeOfDay(title string) domain.TimeOfDay {
	lower := strings.ToLower(title)
	switch {
	case containsAny(lower, []string{"algorithm", "complex"}):
		return domain.TimeMorning
	case containsAny(lower, []string{"practice", "exercise"}):
		return domain.TimeAfternoon
	case containsAny(lower, []string{"review", "summary"}):
		return domain.TimeEvening
	default:
		return domain.TimeFlexible
	}
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
