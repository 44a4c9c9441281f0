package scheduler

import (
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/coursepilot/internal/domain"
	"github.com/alexanderramin/coursepilot/internal/structurer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func thematicCourse() *domain.Course {
	cs := withClustering(uniformModules(4, 4, 20), 0.9, "graphs", "trees", "heaps")
	return courseFrom(cs)
}

func TestGeneratePlan_InvalidSettings(t *testing.T) {
	s := testSettings(10, 3, false)
	_, err := GeneratePlan(thematicCourse(), s, GenerateOptions{Now: fixedNow})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidSettings))
	assert.Equal(t, "Session length must be at least 15 minutes", domain.Reason(err))
}

func TestGeneratePlan_NotStructured(t *testing.T) {
	course := &domain.Course{ID: "c", RawTitles: []string{"a", "b"}}
	_, err := GeneratePlan(course, testSettings(60, 3, false), GenerateOptions{Now: fixedNow})
	assert.True(t, errors.Is(err, domain.ErrCourseNotStructured))

	_, err = GeneratePlan(nil, testSettings(60, 3, false), GenerateOptions{Now: fixedNow})
	assert.True(t, errors.Is(err, domain.ErrCourseNotStructured))
}

func TestGeneratePlan_SequentialCourseKeepsOrder(t *testing.T) {
	titles := []string{
		"Module 1: Introduction",
		"Lesson 1: Getting Started",
		"Lesson 2: Basic Concepts",
		"Module 2: Advanced Topics",
		"Lesson 3: Complex Examples",
	}
	cs, err := structurer.Structure(titles)
	require.NoError(t, err)
	course := &domain.Course{ID: "c", RawTitles: titles, Structure: cs}

	plan, err := GeneratePlan(course, testSettings(30, 3, false), GenerateOptions{Now: fixedNow})
	require.NoError(t, err)

	assert.Equal(t, domain.StrategySequential, plan.Strategy)
	assert.Empty(t, plan.Applied, "optimizer does not run on sequential plans")
	assert.Equal(t, []int{0, 1, 2, 3, 4}, allIndices(plan.Items))
	assert.Equal(t, "c", plan.CourseID)
	assert.Equal(t, fixedNow(), plan.CreatedAt)
}

func TestGeneratePlan_OverrideDoesNotBypassDetector(t *testing.T) {
	cs := uniformModules(2, 3, 10)
	s := testSettings(60, 3, false)
	st := domain.StrategyAdaptive
	s.Advanced = &domain.AdvancedSettings{Strategy: &st}

	plan, err := GeneratePlan(courseFrom(cs), s, GenerateOptions{Now: fixedNow})
	require.NoError(t, err)
	assert.Equal(t, domain.StrategySequential, plan.Strategy)
}

func TestGeneratePlan_ThematicCourseOptimized(t *testing.T) {
	plan, err := GeneratePlan(thematicCourse(), testSettings(60, 3, false), GenerateOptions{Now: fixedNow})
	require.NoError(t, err)

	assert.NotEqual(t, domain.StrategySequential, plan.Strategy)
	assert.Len(t, plan.Applied, 6)
	assert.ElementsMatch(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}, allIndices(plan.Items))
	assert.Positive(t, countKind(plan.Items, domain.ItemReview))
}

func TestGeneratePlan_OverrideOnThematicCourse(t *testing.T) {
	s := testSettings(60, 3, false)
	st := domain.StrategySpacedRepetition
	s.Advanced = &domain.AdvancedSettings{Strategy: &st, SpacedRepetitionEnabled: true}

	plan, err := GeneratePlan(thematicCourse(), s, GenerateOptions{Now: fixedNow})
	require.NoError(t, err)
	assert.Equal(t, domain.StrategySpacedRepetition, plan.Strategy)
	assert.Positive(t, countKind(plan.Items, domain.ItemRepetition))
}

func TestGeneratePlan_PastStartShiftedForward(t *testing.T) {
	s := testSettings(60, 3, false)
	now := monday.AddDate(0, 1, 0)

	plan, err := GeneratePlan(thematicCourse(), s, GenerateOptions{Now: func() time.Time { return now }})
	require.NoError(t, err)
	for _, it := range plan.Items {
		assert.False(t, it.Date.Before(now), "%s dated %s", it.SectionTitle, it.Date)
	}
}
