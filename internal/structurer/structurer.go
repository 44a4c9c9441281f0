// Package structurer infers a module/section hierarchy from an ordered list
// of video titles. It is pure: no I/O, no clock, no shared state.
package structurer

import (
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/alexanderramin/coursepilot/internal/domain"
)

const (
	introDuration   = 5 * time.Minute
	projectDuration = 20 * time.Minute
	defaultDuration = 10 * time.Minute

	moduleTopicLimit = 3
)

// Structure infers a CourseStructure from titles using estimated durations.
func Structure(titles []string) (*domain.CourseStructure, error) {
	return StructureWithDurations(titles, nil)
}

// StructureWithDurations is Structure with externally supplied durations.
// durations may be nil or parallel to titles; positive entries are used
// verbatim and zero entries fall back to the title heuristic.
func StructureWithDurations(titles []string, durations []time.Duration) (*domain.CourseStructure, error) {
	if len(titles) == 0 {
		return nil, domain.InvalidInput("No titles provided")
	}
	if durations != nil && len(durations) != len(titles) {
		return nil, domain.InvalidInput(fmt.Sprintf("Expected %d durations but got %d", len(titles), len(durations)))
	}
	for i, t := range titles {
		if strings.TrimSpace(t) == "" {
			return nil, domain.InvalidInput(fmt.Sprintf("Title at position %d is empty", i))
		}
		if durations != nil && durations[i] < 0 {
			return nil, domain.InvalidInput(fmt.Sprintf("Duration at position %d is negative", i))
		}
	}

	sections := make([]domain.Section, len(titles))
	for i, t := range titles {
		var d time.Duration
		if durations != nil {
			d = durations[i]
		}
		if d <= 0 {
			d = EstimateDuration(t)
		}
		sections[i] = domain.Section{Title: t, VideoIndex: i, Duration: d}
	}

	pa := analyzePatterns(titles)
	strategy := selectStrategy(pa)

	var modules []domain.Module
	var clustering *domain.ClusteringMetadata
	switch strategy {
	case domain.StructuringHierarchical:
		modules = buildHierarchical(sections, pa)
	case domain.StructuringSequential:
		modules = buildSequential(sections)
	case domain.StructuringThematic:
		modules, clustering = buildThematic(sections)
	default:
		modules = buildFallback(sections)
	}

	for i := range modules {
		annotateModule(&modules[i])
	}

	cs := &domain.CourseStructure{Modules: modules, Clustering: clustering}
	cs.Metadata = buildMetadata(cs, pa.difficulty, strategy)
	return cs, nil
}

// EstimateDuration guesses a video's length from its title.
func EstimateDuration(title string) time.Duration {
	lower := strings.ToLower(title)
	switch {
	case strings.Contains(lower, "introduction"):
		return introDuration
	case strings.Contains(lower, "project"), strings.Contains(lower, "exercise"):
		return projectDuration
	default:
		return defaultDuration
	}
}

func annotateModule(m *domain.Module) {
	m.Recalculate()

	titles := make([]string, len(m.Sections))
	for i, s := range m.Sections {
		titles[i] = s.Title
	}
	if m.Difficulty == domain.DifficultyUnknown {
		m.Difficulty = estimateDifficulty(titles)
		if m.Difficulty == domain.DifficultyMixed {
			m.Difficulty = domain.DifficultyIntermediate
		}
	}
	if len(m.TopicKeywords) == 0 {
		m.TopicKeywords = moduleTopics(titles)
	}
}

// moduleTopics returns the most frequent tokens longer than three characters.
func moduleTopics(titles []string) []string {
	counts := make(map[string]int)
	for _, t := range titles {
		for _, tok := range strings.Fields(normalizeText(t)) {
			if utf8.RuneCountInString(tok) >= minThemeTokenLen && digitRunPattern.FindString(tok) != tok {
				counts[tok]++
			}
		}
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	if len(keys) > moduleTopicLimit {
		keys = keys[:moduleTopicLimit]
	}
	return keys
}

func buildMetadata(cs *domain.CourseStructure, difficulty domain.DifficultyLevel, strategy domain.StructuringStrategy) domain.StructureMetadata {
	var total time.Duration
	for _, m := range cs.Modules {
		total += m.TotalDuration
	}

	var content domain.ContentType
	switch strategy {
	case domain.StructuringHierarchical:
		content = domain.ContentHierarchical
	case domain.StructuringSequential:
		content = domain.ContentSequential
	case domain.StructuringThematic:
		content = domain.ContentThematic
	default:
		content = domain.ContentMixed
	}

	return domain.StructureMetadata{
		TotalVideos:            cs.SectionCount(),
		TotalDuration:          total,
		EstimatedDurationHours: total.Hours(),
		DifficultyLevel:        difficulty,
		ContentTypeDetected:    content,
		OriginalOrderPreserved: strategy != domain.StructuringThematic,
		ProcessingStrategyUsed: strategy,
	}
}
