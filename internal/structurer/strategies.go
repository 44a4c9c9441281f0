package structurer

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/alexanderramin/coursepilot/internal/domain"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	fallbackChunkSize = 8
	maxThemes         = 5
	minThemeTokenLen  = 4
)

// buildHierarchical opens a new module at every boundary title. The boundary
// title itself becomes the first section of the module it opens; titles before
// the first boundary go into an "Introduction" module.
func buildHierarchical(sections []domain.Section, pa patternAnalysis) []domain.Module {
	isBoundary := make(map[int]bool, len(pa.boundaries))
	for _, i := range pa.boundaries {
		isBoundary[i] = true
	}

	var modules []domain.Module
	var current *domain.Module
	for _, s := range sections {
		if isBoundary[s.VideoIndex] {
			if current != nil && len(current.Sections) > 0 {
				modules = append(modules, *current)
			}
			current = &domain.Module{Title: extractModuleTitle(s.Title)}
		} else if current == nil {
			current = &domain.Module{Title: "Introduction"}
		}
		current.AddSection(s)
	}
	if current != nil && len(current.Sections) > 0 {
		modules = append(modules, *current)
	}
	return modules
}

// extractModuleTitle returns the text before the first ':' or, failing
// that, the first '-'.
func extractModuleTitle(title string) string {
	head := title
	if i := strings.Index(head, ":"); i >= 0 {
		head = head[:i]
	} else if i := strings.Index(head, "-"); i >= 0 {
		head = head[:i]
	}
	head = strings.TrimSpace(head)
	if head == "" {
		return "Untitled Module"
	}
	return head
}

// optimalChunkSize returns the module size used by sequential structuring.
func optimalChunkSize(n int) int {
	var size int
	switch {
	case n <= 20:
		size = n / 3
	case n <= 50:
		size = n / 5
	case n <= 100:
		size = n / 7
	default:
		size = n / 10
	}
	if size < 1 {
		size = 1
	}
	return size
}

func buildSequential(sections []domain.Section) []domain.Module {
	size := optimalChunkSize(len(sections))
	var modules []domain.Module
	for start := 0; start < len(sections); start += size {
		end := min(start+size, len(sections))
		k := len(modules) + 1
		title := fmt.Sprintf("Module %d", k)
		if words := leadingWords(sections[start].Title, 2); words != "" {
			title = fmt.Sprintf("Module %d: %s", k, words)
		}
		modules = append(modules, domain.NewModule(title, cloneSections(sections[start:end])))
	}
	return modules
}

func leadingWords(s string, n int) string {
	fields := strings.Fields(s)
	if len(fields) > n {
		fields = fields[:n]
	}
	return strings.Join(fields, " ")
}

type themeCandidate struct {
	keyword string
	count   int
}

// themeKeywords returns up to maxThemes lowercase tokens longer than three
// characters that occur more than once, by descending frequency then
// ascending lexical order.
func themeKeywords(titles []string) []themeCandidate {
	counts := make(map[string]int)
	for _, t := range titles {
		for _, tok := range strings.Fields(strings.ToLower(t)) {
			if utf8.RuneCountInString(tok) >= minThemeTokenLen {
				counts[tok]++
			}
		}
	}

	var cands []themeCandidate
	for kw, c := range counts {
		if c > 1 {
			cands = append(cands, themeCandidate{keyword: kw, count: c})
		}
	}
	sort.Slice(cands, func(i, j int) bool {
		if cands[i].count != cands[j].count {
			return cands[i].count > cands[j].count
		}
		return cands[i].keyword < cands[j].keyword
	})
	if len(cands) > maxThemes {
		cands = cands[:maxThemes]
	}
	return cands
}

// buildThematic groups titles under their most frequent shared keyword and
// reports the grouping as clustering metadata.
func buildThematic(sections []domain.Section) ([]domain.Module, *domain.ClusteringMetadata) {
	titles := make([]string, len(sections))
	for i, s := range sections {
		titles[i] = s.Title
	}
	caser := cases.Title(language.English)

	claimed := make([]bool, len(sections))
	claimedCount := 0
	var modules []domain.Module
	var topics []domain.TopicInfo

	for _, cand := range themeKeywords(titles) {
		var group []int
		for i, t := range titles {
			if !claimed[i] && strings.Contains(strings.ToLower(t), cand.keyword) {
				group = append(group, i)
			}
		}
		if len(group) <= 1 {
			continue
		}
		m := domain.Module{Title: caser.String(cand.keyword), TopicKeywords: []string{cand.keyword}}
		for _, i := range group {
			claimed[i] = true
			m.AddSection(sections[i])
		}
		claimedCount += len(group)
		modules = append(modules, m)
		topics = append(topics, domain.TopicInfo{
			Keyword:        cand.keyword,
			RelevanceScore: float64(len(group)) / float64(len(sections)),
			VideoCount:     len(group),
		})
	}

	if len(modules) == 0 {
		return []domain.Module{domain.NewModule("Course Content", cloneSections(sections))}, nil
	}

	var misc domain.Module
	misc.Title = "Miscellaneous"
	for i, s := range sections {
		if !claimed[i] {
			misc.AddSection(s)
		}
	}
	if len(misc.Sections) > 0 {
		modules = append(modules, misc)
	}

	meta := &domain.ClusteringMetadata{
		Algorithm:     "keyword",
		QualityScore:  float64(claimedCount) / float64(len(sections)),
		ClusterCount:  len(topics),
		ContentTopics: topics,
	}
	return modules, meta
}

func buildFallback(sections []domain.Section) []domain.Module {
	var modules []domain.Module
	for start := 0; start < len(sections); start += fallbackChunkSize {
		end := min(start+fallbackChunkSize, len(sections))
		title := fmt.Sprintf("Part %d", len(modules)+1)
		modules = append(modules, domain.NewModule(title, cloneSections(sections[start:end])))
	}
	return modules
}

func cloneSections(s []domain.Section) []domain.Section {
	out := make([]domain.Section, len(s))
	copy(out, s)
	return out
}
