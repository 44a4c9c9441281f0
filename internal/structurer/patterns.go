package structurer

import (
	"regexp"
	"strings"

	"github.com/alexanderramin/coursepilot/internal/domain"
)

// indicatorKeywords is ordered from the broadest grouping word to the
// narrowest. When several appear in a course, the broadest one present
// marks module boundaries and the rest stay as sections.
var indicatorKeywords = []string{
	"module", "chapter", "part", "section", "unit",
	"week", "lesson", "lecture", "tutorial", "step",
}

var (
	digitRunPattern  = regexp.MustCompile(`[0-9]+`)
	namingPattern    = regexp.MustCompile(`^([A-Za-z ]+)\s*[0-9]+`)
)

var (
	beginnerVocabulary = []string{"introduction", "basics", "fundamentals", "getting started", "beginner"}
	advancedVocabulary = []string{"advanced", "expert", "master", "deep dive", "optimization", "architecture"}
)

type patternAnalysis struct {
	hasNumericSequence  bool
	hasExplicitModules  bool
	hasConsistentNaming bool
	// indicators holds every title index containing any indicator keyword.
	indicators []int
	// boundaries holds the indices of titles containing boundaryKeyword.
	boundaries      []int
	boundaryKeyword string
	difficulty      domain.DifficultyLevel
}

func analyzePatterns(titles []string) patternAnalysis {
	var pa patternAnalysis

	numeric := 0
	found := make(map[string][]int)
	for i, t := range titles {
		if digitRunPattern.MatchString(t) {
			numeric++
		}
		lower := strings.ToLower(t)
		matched := false
		for _, kw := range indicatorKeywords {
			if strings.Contains(lower, kw) {
				matched = true
				found[kw] = append(found[kw], i)
			}
		}
		if matched {
			pa.indicators = append(pa.indicators, i)
		}
	}

	pa.hasNumericSequence = numeric*2 > len(titles)
	pa.hasExplicitModules = len(pa.indicators) > 0
	for _, kw := range indicatorKeywords {
		if idx, ok := found[kw]; ok {
			pa.boundaryKeyword = kw
			pa.boundaries = idx
			break
		}
	}

	pa.hasConsistentNaming = hasConsistentNaming(titles)
	pa.difficulty = estimateDifficulty(titles)
	return pa
}

// hasConsistentNaming reports whether some "<words> <number>" prefix is
// shared by more than two titles.
func hasConsistentNaming(titles []string) bool {
	counts := make(map[string]int)
	for _, t := range titles {
		m := namingPattern.FindStringSubmatch(t)
		if m == nil {
			continue
		}
		prefix := normalizeText(m[1])
		if prefix == "" {
			continue
		}
		counts[prefix]++
		if counts[prefix] > 2 {
			return true
		}
	}
	return false
}

func estimateDifficulty(titles []string) domain.DifficultyLevel {
	beginner, advanced := false, false
	for _, t := range titles {
		lower := strings.ToLower(t)
		if containsAny(lower, beginnerVocabulary) {
			beginner = true
		}
		if containsAny(lower, advancedVocabulary) {
			advanced = true
		}
	}
	switch {
	case beginner && advanced:
		return domain.DifficultyMixed
	case beginner:
		return domain.DifficultyBeginner
	case advanced:
		return domain.DifficultyAdvanced
	default:
		return domain.DifficultyIntermediate
	}
}

func selectStrategy(pa patternAnalysis) domain.StructuringStrategy {
	switch {
	case pa.hasExplicitModules && len(pa.boundaries) >= 2:
		return domain.StructuringHierarchical
	case pa.hasNumericSequence && pa.hasConsistentNaming:
		return domain.StructuringSequential
	case pa.hasConsistentNaming:
		return domain.StructuringThematic
	default:
		return domain.StructuringFallback
	}
}

// normalizeText lowercases s, drops punctuation and collapses whitespace.
func normalizeText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	space := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r == ' ' || r == '\t' || r == '\n':
			space = b.Len() > 0
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r > 127:
			if space {
				b.WriteByte(' ')
				space = false
			}
			b.WriteRune(r)
		}
	}
	return b.String()
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
