package scheduler

import (
	"strings"
	"unicode"

	"github.com/alexanderramin/coursepilot/internal/domain"
)

const (
	minClusteringQuality  = 0.6
	sequentialTitleRatio  = 0.4
	sequentialTopicRatio  = 0.3
	sequentialMinTitleSet = 2
)

var (
	sequenceWords    = []string{"lesson", "part", "chapter", "module", "step", "tutorial"}
	progressionWords = []string{"introduction", "getting started", "basics", "fundamentals", "overview"}
	sequentialTopics = []string{
		"introduction", "basic", "fundamentals", "getting started", "overview",
		"lesson", "part", "chapter", "module", "step", "tutorial",
		"beginner", "intermediate", "advanced", "final", "conclusion", "recap",
	}
)

// IsSequential reports whether the original video order must be kept.
// cs may be nil, in which case only the raw titles are inspected.
func IsSequential(titles []string, cs *domain.CourseStructure) bool {
	if cs == nil {
		return titlesLookSequential(titles)
	}
	if cs.Clustering == nil {
		return true
	}
	if cs.Clustering.QualityScore < minClusteringQuality {
		return true
	}
	if topicsLookSequential(cs.Clustering.ContentTopics) {
		return true
	}

	moduleTitles := make([]string, len(cs.Modules))
	for i, m := range cs.Modules {
		moduleTitles[i] = m.Title
	}
	return titlesLookSequential(moduleTitles)
}

// titlesLookSequential is true when more than 40% of at least two titles
// either pair a sequence word with a number or use progression vocabulary.
func titlesLookSequential(titles []string) bool {
	if len(titles) < sequentialMinTitleSet {
		return false
	}
	hits := 0
	for _, t := range titles {
		lower := strings.ToLower(t)
		if containsAny(lower, sequenceWords) && strings.IndexFunc(lower, isASCIIDigit) >= 0 {
			hits++
			continue
		}
		if containsAny(lower, progressionWords) {
			hits++
		}
	}
	return float64(hits)/float64(len(titles)) > sequentialTitleRatio
}

func topicsLookSequential(topics []domain.TopicInfo) bool {
	if len(topics) == 0 {
		return false
	}
	hits := 0
	for _, tp := range topics {
		if containsAny(strings.ToLower(tp.Keyword), sequentialTopics) {
			hits++
		}
	}
	return float64(hits)/float64(len(topics)) > sequentialTopicRatio
}

func isASCIIDigit(r rune) bool {
	return r < unicode.MaxASCII && unicode.IsDigit(r)
}
