package testutil

import (
	"fmt"
	"time"

	"github.com/alexanderramin/coursepilot/internal/domain"
	"github.com/alexanderramin/coursepilot/internal/structurer"
	"github.com/google/uuid"
)

// Monday is a fixed plan start used across tests.
var Monday = time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)

// DefaultTitles is a small hierarchical course.
var DefaultTitles = []string{
	"Chapter 1: Introduction",
	"Installing the toolchain",
	"Hello world",
	"Chapter 2: Basics",
	"Variables and types",
	"Control flow",
	"Chapter 3: Practice",
	"Exercise: fizzbuzz",
	"Project: a todo CLI",
}

// CourseOption customizes a test course.
type CourseOption func(*domain.Course)

func WithTitles(titles ...string) CourseOption {
	return func(c *domain.Course) {
		c.RawTitles = titles
	}
}

// WithUniformDuration gives every video the same duration.
func WithUniformDuration(d time.Duration) CourseOption {
	return func(c *domain.Course) {
		c.Durations = make([]time.Duration, len(c.RawTitles))
		for i := range c.Durations {
			c.Durations[i] = d
		}
	}
}

// Structured runs the structurer on the course titles and durations.
// Apply it after options that change titles or durations.
func Structured() CourseOption {
	return func(c *domain.Course) {
		cs, err := structurer.StructureWithDurations(c.RawTitles, c.Durations)
		if err != nil {
			panic(fmt.Sprintf("structuring test course: %v", err))
		}
		c.Structure = cs
	}
}

func NewTestCourse(name string, opts ...CourseOption) *domain.Course {
	now := time.Now().UTC()
	c := &domain.Course{
		ID:        uuid.New().String(),
		Name:      name,
		RawTitles: append([]string(nil), DefaultTitles...),
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewTestSettings returns three 60-minute weekday sessions per week from Monday.
func NewTestSettings() domain.PlanSettings {
	return domain.DefaultPlanSettings(Monday)
}

// NewTestPlan builds a plan with one study item per pair of videos.
func NewTestPlan(courseID string, videos int) *domain.Plan {
	now := time.Now().UTC()
	p := &domain.Plan{
		ID:        uuid.New().String(),
		CourseID:  courseID,
		Settings:  NewTestSettings(),
		Strategy:  domain.StrategyModuleBased,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for i := 0; i < videos; i += 2 {
		indices := []int{i}
		if i+1 < videos {
			indices = append(indices, i+1)
		}
		total := time.Duration(len(indices)) * 10 * time.Minute
		p.Items = append(p.Items, domain.PlanItem{
			Date:                    Monday.AddDate(0, 0, 2*len(p.Items)),
			ModuleTitle:             fmt.Sprintf("Module %d", len(p.Items)+1),
			SectionTitle:            fmt.Sprintf("Video %d", i+1),
			VideoIndices:            indices,
			TotalDuration:           total,
			EstimatedCompletionTime: time.Duration(float64(total) * domain.CompletionBuffer),
			Kind:                    domain.ItemStudy,
		})
	}
	return p
}
