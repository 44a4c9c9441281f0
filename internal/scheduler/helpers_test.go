package scheduler

import (
	"fmt"
	"time"

	"github.com/alexanderramin/coursepilot/internal/domain"
)

type testModule struct {
	title  string
	titles []string
	mins   []int
}

// buildStructure numbers sections across modules in declaration order.
func buildStructure(modules ...testModule) *domain.CourseStructure {
	cs := &domain.CourseStructure{}
	idx := 0
	for _, tm := range modules {
		m := domain.Module{Title: tm.title}
		for i, title := range tm.titles {
			d := time.Duration(0)
			if i < len(tm.mins) {
				d = time.Duration(tm.mins[i]) * time.Minute
			}
			m.AddSection(domain.Section{Title: title, VideoIndex: idx, Duration: d})
			idx++
		}
		cs.Modules = append(cs.Modules, m)
	}
	cs.Metadata.TotalVideos = idx
	return cs
}

// uniformModules builds n modules of size sections, each lasting mins.
func uniformModules(n, size, mins int) *domain.CourseStructure {
	mods := make([]testModule, n)
	for i := range mods {
		tm := testModule{title: fmt.Sprintf("Topic %c", 'A'+i%26)}
		for j := 0; j < size; j++ {
			tm.titles = append(tm.titles, fmt.Sprintf("Topic %c video %d", 'A'+i%26, j))
			tm.mins = append(tm.mins, mins)
		}
		mods[i] = tm
	}
	return buildStructure(mods...)
}

func withClustering(cs *domain.CourseStructure, quality float64, topics ...string) *domain.CourseStructure {
	cm := &domain.ClusteringMetadata{Algorithm: "keyword", QualityScore: quality, ClusterCount: len(cs.Modules)}
	for _, tp := range topics {
		cm.ContentTopics = append(cm.ContentTopics, domain.TopicInfo{Keyword: tp, RelevanceScore: 0.5, VideoCount: 1})
	}
	cs.Clustering = cm
	return cs
}

func courseFrom(cs *domain.CourseStructure) *domain.Course {
	c := &domain.Course{ID: "course-1", Name: "Test course", Structure: cs}
	for _, sec := range cs.Sections() {
		c.RawTitles = append(c.RawTitles, sec.Title)
		c.Durations = append(c.Durations, sec.Duration)
	}
	return c
}

func fixedNow() time.Time {
	return monday.AddDate(0, 0, -7)
}
