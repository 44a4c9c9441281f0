package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/coursepilot/internal/domain"
	"github.com/alexanderramin/coursepilot/internal/repository"
	"github.com/alexanderramin/coursepilot/internal/scheduler"
	"github.com/alexanderramin/coursepilot/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func TestFormatCourseList(t *testing.T) {
	out := stripANSI(FormatCourseList([]repository.CourseSummary{
		{ID: "0123456789abcdef", Name: "Go from zero", VideoCount: 9, Structured: true, PlanCount: 2, CreatedAt: testutil.Monday},
		{ID: "fedcba9876543210", Name: "Rust", VideoCount: 3},
	}))
	assert.Contains(t, out, "01234567")
	assert.NotContains(t, out, "0123456789", "ids are shortened")
	assert.Contains(t, out, "Go from zero")
	assert.Contains(t, out, "yes")
	assert.Contains(t, out, "no")
}

func TestFormatCourseDetail_Structured(t *testing.T) {
	course := testutil.NewTestCourse("Go from zero", testutil.WithUniformDuration(5*time.Minute), testutil.Structured())
	out := stripANSI(FormatCourseDetail(course))

	assert.Contains(t, out, "GO FROM ZERO")
	assert.Contains(t, out, "Modules")
	assert.Contains(t, out, "#1 ")
	assert.Contains(t, out, "#9 ")
	assert.Contains(t, out, "└─ ")
	assert.Contains(t, out, "[ 5m ]")
}

func TestFormatCourseDetail_Unstructured(t *testing.T) {
	course := testutil.NewTestCourse("Raw")
	out := stripANSI(FormatCourseDetail(course))
	assert.Contains(t, out, "not structured")
	assert.Contains(t, out, "#9 Project: a todo CLI")
}

func TestFormatPlan(t *testing.T) {
	course := testutil.NewTestCourse("Go from zero")
	plan := testutil.NewTestPlan(course.ID, 5)
	plan.Items[0].Completed = true
	plan.Items[2].OverflowWarnings = []string{"Session exceeds time limit"}

	out := stripANSI(FormatPlan(course, plan, testutil.Monday))
	assert.Contains(t, out, "1/3 sessions")
	assert.Contains(t, out, "Next")
	assert.Contains(t, out, "#2 Wed Mar 5 (In 2d)")
	assert.Contains(t, out, "WARNINGS")
	assert.Contains(t, out, "#3 Session exceeds time limit")
	assert.Contains(t, out, "✔")
	assert.Contains(t, out, "Module 1: Video 1")
}

func TestFormatPlan_AllDone(t *testing.T) {
	course := testutil.NewTestCourse("Go")
	plan := testutil.NewTestPlan(course.ID, 2)
	plan.Items[0].Completed = true

	out := stripANSI(FormatPlan(course, plan, testutil.Monday))
	assert.NotContains(t, out, "Next")
	assert.NotContains(t, out, "WARNINGS")
}

func TestFormatSettings(t *testing.T) {
	s := testutil.NewTestSettings()
	strategy := domain.StrategyHybrid
	limit := 45
	s.Advanced = &domain.AdvancedSettings{Strategy: &strategy, MaxSessionDurationMinutes: &limit}

	out := FormatSettings(s)
	assert.True(t, strings.HasPrefix(out, "3×/week · 60m sessions · weekdays · from 2025-03-03"), out)
	assert.Contains(t, out, "strategy "+strategy.Label())
	assert.Contains(t, out, "cap 45m")
}

func TestFormatItemDetail(t *testing.T) {
	course := testutil.NewTestCourse("Go")
	plan := testutil.NewTestPlan(course.ID, 4)

	out := stripANSI(FormatItemDetail(course, plan, 1))
	assert.Contains(t, out, "#2")
	assert.Contains(t, out, "#3 Hello world")
	assert.Contains(t, out, "#4 Chapter 2: Basics")
}

func TestFormatAnalysisAndRecommendations(t *testing.T) {
	course := testutil.NewTestCourse("Go", testutil.WithUniformDuration(10*time.Minute), testutil.Structured())
	plan := testutil.NewTestPlan(course.ID, len(course.RawTitles))

	analysis := scheduler.AnalyzePlan(plan)
	out := stripANSI(FormatAnalysis(&analysis))
	assert.Contains(t, out, "PLAN ANALYSIS")
	assert.Contains(t, out, "Score")
	assert.Contains(t, out, "videos/day")

	rec := scheduler.Recommend(course.Structure, testutil.NewTestSettings())
	out = stripANSI(FormatRecommendations(&rec))
	assert.Contains(t, out, "Sessions/week")
	assert.Contains(t, out, "weeks")
}

func TestFormatPlanList(t *testing.T) {
	first, last := testutil.Monday, testutil.Monday.AddDate(0, 0, 14)
	out := stripANSI(FormatPlanList([]repository.PlanSummary{
		{ID: "abcdef0123456789", Strategy: domain.StrategyTimeBased, ItemCount: 4, CompletedCount: 2, FirstDate: &first, LastDate: &last},
		{ID: "empty-plan", Strategy: domain.StrategySequential},
	}))
	assert.Contains(t, out, "abcdef01")
	assert.Contains(t, out, " 50%")
	assert.Contains(t, out, "2025-03-03 → 2025-03-17")
	assert.Contains(t, out, "—")
}
