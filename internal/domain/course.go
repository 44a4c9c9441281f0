package domain

import (
	"time"
)

// Section is one video of a course. VideoIndex is its position in the
// imported title list and never changes after structuring.
type Section struct {
	Title      string
	VideoIndex int
	Duration   time.Duration
}

type Module struct {
	Title         string
	Sections      []Section
	TotalDuration time.Duration
	TopicKeywords []string
	Difficulty    DifficultyLevel
}

// NewModule builds a module and computes its total duration.
func NewModule(title string, sections []Section) Module {
	m := Module{Title: title, Sections: sections}
	m.Recalculate()
	return m
}

// AddSection appends s and keeps TotalDuration in step.
func (m *Module) AddSection(s Section) {
	m.Sections = append(m.Sections, s)
	m.TotalDuration += s.Duration
}

// Recalculate recomputes TotalDuration from the contained sections.
func (m *Module) Recalculate() {
	var total time.Duration
	for _, s := range m.Sections {
		total += s.Duration
	}
	m.TotalDuration = total
}

type TopicInfo struct {
	Keyword        string
	RelevanceScore float64
	VideoCount     int
}

// ClusteringMetadata describes how a structure grouped videos by topic.
// Structures built purely from title order carry none.
type ClusteringMetadata struct {
	Algorithm     string
	QualityScore  float64
	ClusterCount  int
	ContentTopics []TopicInfo
}

type StructureMetadata struct {
	TotalVideos            int
	TotalDuration          time.Duration
	EstimatedDurationHours float64
	DifficultyLevel        DifficultyLevel
	ContentTypeDetected    ContentType
	OriginalOrderPreserved bool
	ProcessingStrategyUsed StructuringStrategy
}

type CourseStructure struct {
	Modules    []Module
	Metadata   StructureMetadata
	Clustering *ClusteringMetadata
}

// Sections returns every section in module order.
func (cs *CourseStructure) Sections() []Section {
	var out []Section
	for _, m := range cs.Modules {
		out = append(out, m.Sections...)
	}
	return out
}

// SectionCount returns the number of sections across all modules.
func (cs *CourseStructure) SectionCount() int {
	n := 0
	for _, m := range cs.Modules {
		n += len(m.Sections)
	}
	return n
}

// DurationIndex maps video index to section duration.
func (cs *CourseStructure) DurationIndex() map[int]time.Duration {
	idx := make(map[int]time.Duration, cs.SectionCount())
	for _, m := range cs.Modules {
		for _, s := range m.Sections {
			idx[s.VideoIndex] = s.Duration
		}
	}
	return idx
}

// Course is an imported title list plus its inferred structure.
type Course struct {
	ID        string
	Name      string
	RawTitles []string
	// Durations, when present, is parallel to RawTitles.
	// Zero entries mean unknown.
	Durations []time.Duration
	Structure *CourseStructure
	// SourcePath is the file the course was imported from, if any.
	SourcePath string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsStructured reports whether the course has a structure to plan from.
func (c *Course) IsStructured() bool {
	return c != nil && c.Structure != nil && len(c.Structure.Modules) > 0
}

// VideoTitle returns the raw title for a video index, or "" when out of range.
func (c *Course) VideoTitle(idx int) string {
	if idx < 0 || idx >= len(c.RawTitles) {
		return ""
	}
	return c.RawTitles[idx]
}
