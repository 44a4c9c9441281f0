package scheduler

import (
	"testing"
	"time"

	"github.com/alexanderramin/coursepilot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecommend_Unstructured(t *testing.T) {
	r := Recommend(nil, testSettings(60, 3, false))

	assert.Equal(t, 3, r.OptimalSessionsPerWeek)
	assert.Equal(t, 60, r.RecommendedSessionLength)
	assert.Equal(t, "Balanced Approach: Steady progress with regular reviews", r.StudyStrategy)
	assert.Contains(t, r.TimeManagementTips, "Weekend-free schedule - use weekends for review and practice")
	assert.True(t, r.Progression.StartsEasy)
	assert.Zero(t, r.EstimatedCompletionWeeks)
}

func TestRecommend_BeginnerTips(t *testing.T) {
	r := Recommend(uniformModules(1, 4, 10), testSettings(30, 2, true))

	assert.Equal(t, 30, r.RecommendedSessionLength)
	assert.Contains(t, r.TimeManagementTips, "Start with shorter sessions to build consistency")
	assert.NotContains(t, r.TimeManagementTips, "Weekend-free schedule - use weekends for review and practice")
}

func TestRecommend_ExpertSchedule(t *testing.T) {
	r := Recommend(uniformModules(1, 4, 10), testSettings(90, 5, false))

	assert.Equal(t, 3, r.OptimalSessionsPerWeek)
	assert.Equal(t, 90, r.RecommendedSessionLength)
	assert.Equal(t, "Accelerated Learning: Focus on practical application and projects", r.StudyStrategy)
	assert.Contains(t, r.TimeManagementTips, "High frequency schedule - ensure adequate rest between sessions")
	assert.Contains(t, r.TimeManagementTips, "Long sessions - take 10-minute breaks every hour")
	assert.Contains(t, r.TimeManagementTips, "Create projects to reinforce learning")
}

func TestDifficultyProgression(t *testing.T) {
	cs := buildStructure(
		testModule{title: "Basics", titles: []string{"Introduction", "Overview"}, mins: []int{5, 5}},
		testModule{title: "Deep end", titles: []string{"Advanced recursion"}, mins: []int{5}},
	)
	dp := difficultyProgression(cs)

	assert.True(t, dp.StartsEasy)
	assert.True(t, dp.HasSteepLearningCurve)
	assert.Equal(t, []string{"Deep end"}, dp.ComplexityPeaks)
	require.Len(t, dp.RecommendedBreakPoints, 1)
	assert.Equal(t, "Consider a break after completing: Deep end", dp.RecommendedBreakPoints[0])
}

func TestEstimateCompletionWeeks(t *testing.T) {
	// four videos per session, three sessions, one week plus a buffer week
	got := estimateCompletionWeeks(uniformModules(1, 12, 10), testSettings(60, 3, false))
	assert.Equal(t, 2, got)
}

func TestEstimateCourseWeeks(t *testing.T) {
	assert.Equal(t, 4, EstimateCourseWeeks(10, 3))
	assert.Equal(t, 3, EstimateCourseWeeks(9, 3))
	assert.Equal(t, 0, EstimateCourseWeeks(5, 0))
}

func TestEstimateTotalStudyTime(t *testing.T) {
	assert.Equal(t, 60*time.Minute, EstimateTotalStudyTime(4, 10*time.Minute))
	assert.Zero(t, EstimateTotalStudyTime(0, 10*time.Minute))
}

func TestFallbackVideosPerSession(t *testing.T) {
	tests := map[int]int{30: 3, 60: 4, 90: 4, 120: 5}
	for minutes, want := range tests {
		assert.Equal(t, want, FallbackVideosPerSession(testSettings(minutes, 3, false)), "%d min", minutes)
	}
}

func TestVideosPerSessionForCourse(t *testing.T) {
	s := testSettings(60, 3, false)
	assert.Equal(t, 4, VideosPerSessionForCourse(uniformModules(1, 3, 10), s))
	assert.Equal(t, 1, VideosPerSessionForCourse(uniformModules(1, 3, 60), s))
	assert.Equal(t, FallbackVideosPerSession(s), VideosPerSessionForCourse(uniformModules(1, 3, 0), s))

	avg, ok := AverageVideoDuration(buildStructure(testModule{title: "x", titles: []string{"a"}, mins: []int{0}}))
	assert.False(t, ok)
	assert.Zero(t, avg)
}

func TestRecommendForCoursePresetValidates(t *testing.T) {
	adv := domain.RecommendForCourse(domain.DifficultyBeginner, domain.DifficultyAdvanced, 30)
	s := testSettings(60, 3, false)
	s.Advanced = &adv
	assert.NoError(t, s.Validate())
}
