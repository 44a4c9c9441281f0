package scheduler

import (
	"testing"
	"time"

	"github.com/alexanderramin/coursepilot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allIndices(items []domain.PlanItem) []int {
	var out []int
	for _, it := range items {
		if !it.Kind.IsSynthetic() {
			out = append(out, it.VideoIndices...)
		}
	}
	return out
}

func TestModuleBasedPlan_NeverMixesModules(t *testing.T) {
	cs := uniformModules(3, 3, 20)
	items := moduleBasedPlan(cs, testSettings(60, 3, false))

	require.Len(t, items, 6)
	owner := make(map[int]string)
	for _, m := range cs.Modules {
		for _, sec := range m.Sections {
			owner[sec.VideoIndex] = m.Title
		}
	}
	for _, it := range items {
		for _, idx := range it.VideoIndices {
			assert.Equal(t, it.ModuleTitle, owner[idx])
		}
	}
	assert.ElementsMatch(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8}, allIndices(items))
}

func TestTimeBasedPlan_PacksAcrossModules(t *testing.T) {
	cs := uniformModules(3, 3, 16)
	items := timeBasedPlan(cs, testSettings(60, 3, false))

	// 16 minute videos fit three to a 48 minute session
	require.Len(t, items, 3)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8}, allIndices(items))
	for i := 1; i < len(items); i++ {
		assert.True(t, items[i].Date.After(items[i-1].Date))
	}
}

func TestHybridPlan_MergesUnderfilledNeighbours(t *testing.T) {
	cs := buildStructure(
		testModule{title: "A", titles: []string{"a1"}, mins: []int{10}},
		testModule{title: "B", titles: []string{"b1"}, mins: []int{10}},
		testModule{title: "C", titles: []string{"c1", "c2"}, mins: []int{20, 20}},
	)
	items := hybridPlan(cs, testSettings(60, 3, false))

	require.Len(t, items, 2)
	assert.Equal(t, []int{0, 1}, items[0].VideoIndices)
	assert.Equal(t, "a1 + 1 more", items[0].SectionTitle)
	assert.Equal(t, 20*time.Minute, items[0].TotalDuration)
	assert.Equal(t, []int{2, 3}, items[1].VideoIndices)
}

func TestHybridPlan_SinglePass(t *testing.T) {
	cs := buildStructure(
		testModule{title: "A", titles: []string{"a1"}, mins: []int{10}},
		testModule{title: "B", titles: []string{"b1"}, mins: []int{10}},
		testModule{title: "C", titles: []string{"c1"}, mins: []int{10}},
	)
	items := hybridPlan(cs, testSettings(60, 3, false))

	require.Len(t, items, 2)
	assert.Equal(t, []int{0, 1}, items[0].VideoIndices)
	assert.Equal(t, []int{2}, items[1].VideoIndices)
}

func difficultyCourse() *domain.CourseStructure {
	return buildStructure(testModule{
		title:  "Mixed",
		titles: []string{"Advanced recursion", "Introduction", "Deep dive"},
		mins:   []int{5, 5, 5},
	})
}

func TestDifficultyBasedPlan_EasiestFirst(t *testing.T) {
	items := difficultyBasedPlan(difficultyCourse(), testSettings(60, 3, false))
	require.Len(t, items, 1)
	assert.Equal(t, []int{1, 2, 0}, items[0].VideoIndices)
}

func TestDifficultyBasedPlan_HardestFirst(t *testing.T) {
	s := testSettings(60, 3, false)
	s.Advanced = &domain.AdvancedSettings{PrioritizeDifficultContent: true}

	items := difficultyBasedPlan(difficultyCourse(), s)
	require.Len(t, items, 1)
	assert.Equal(t, []int{0, 2, 1}, items[0].VideoIndices)
}

func TestSpacedRepetitionPlan_DefaultIntervals(t *testing.T) {
	cs := uniformModules(1, 2, 20)
	s := testSettings(60, 3, true)
	items := spacedRepetitionPlan(cs, s)

	require.Len(t, items, 6)
	assert.Equal(t, domain.ItemStudy, items[0].Kind)
	assert.Equal(t, []int{0, 1}, allIndices(items), "repetitions are not study items")

	var offsets []int
	for _, it := range items[1:] {
		assert.Equal(t, domain.ItemRepetition, it.Kind)
		assert.Equal(t, items[0].VideoIndices, it.VideoIndices)
		assert.Equal(t, 24*time.Minute, it.TotalDuration)
		assert.Equal(t, 30*time.Minute, it.EstimatedCompletionTime)
		assert.Contains(t, it.SectionTitle, "(Review #")
		offsets = append(offsets, daysBetween(items[0].Date, it.Date))
	}
	assert.Equal(t, []int{1, 3, 7, 14, 30}, offsets)
}

func TestSpacedRepetitionPlan_CustomIntervals(t *testing.T) {
	cs := uniformModules(1, 1, 20)
	s := testSettings(60, 3, true)
	s.Advanced = &domain.AdvancedSettings{CustomIntervals: []int{2, 4}}

	items := spacedRepetitionPlan(cs, s)
	require.Len(t, items, 3)
	assert.Equal(t, "Review: Topic A video 0 (Review #1)", items[1].SectionTitle)
	assert.Equal(t, "Review: Topic A video 0 (Review #2)", items[2].SectionTitle)
	assert.Equal(t, 2, daysBetween(items[0].Date, items[1].Date))
}

func TestSpacedRepetitionPlan_OversizedSessionKeepsWarning(t *testing.T) {
	cs := buildStructure(testModule{
		title:  "Long",
		titles: []string{"Long lecture", "Short recap"},
		mins:   []int{60, 5},
	})
	s := testSettings(20, 3, true)
	items := spacedRepetitionPlan(cs, s)

	require.Len(t, items, 12)
	for _, it := range items {
		if it.TotalDuration > s.StrictLimit() {
			assert.NotEmpty(t, it.OverflowWarnings, "%s", it.SectionTitle)
		}
		if it.Kind == domain.ItemRepetition && it.TotalDuration <= s.StrictLimit() {
			assert.Empty(t, it.OverflowWarnings, "%s", it.SectionTitle)
		}
	}

	reviews := 0
	for _, it := range items {
		if it.SectionTitle == "Review: Long lecture (Review #1)" {
			reviews++
			assert.Equal(t, 36*time.Minute, it.TotalDuration)
			assert.Len(t, it.OverflowWarnings, 1)
		}
	}
	assert.Equal(t, 1, reviews)
}

func TestAdaptivePlan_OrdersBySessionType(t *testing.T) {
	cs := buildStructure(testModule{
		title:  "Loops",
		titles: []string{"Practice loops", "Build a project", "Introduction"},
		mins:   []int{10, 10, 10},
	})
	items := adaptivePlan(cs, testSettings(60, 3, true))

	require.Len(t, items, 3)
	assert.Equal(t, []int{2}, items[0].VideoIndices)
	assert.Equal(t, []int{0}, items[1].VideoIndices)
	assert.Equal(t, []int{1}, items[2].VideoIndices)
	assert.Equal(t, domain.TimeAfternoon, items[1].TimeOfDay)
	assert.Equal(t, domain.TimeFlexible, items[0].TimeOfDay)
}

func TestAdaptivePlan_HeavyMondayDeferred(t *testing.T) {
	cs := buildStructure(testModule{
		title:  "Algorithms",
		titles: []string{"Algorithm design"},
		mins:   []int{30},
	})
	items := adaptivePlan(cs, testSettings(60, 3, false))

	require.Len(t, items, 1)
	assert.Equal(t, time.Tuesday, items[0].Date.Weekday())
	assert.Equal(t, domain.TimeMorning, items[0].TimeOfDay)
}

func TestAdaptivePlan_SpacingForHardSections(t *testing.T) {
	cs := buildStructure(testModule{
		title:  "Hard",
		titles: []string{"Complex systems", "Complex networks"},
		mins:   []int{10, 10},
	})
	// light expert sections get two extra days
	items := adaptivePlan(cs, testSettings(60, 7, true))

	require.Len(t, items, 2)
	assert.Equal(t, 3, daysBetween(items[0].Date, items[1].Date))
}

func TestAdaptivePlan_OversizedSectionWarns(t *testing.T) {
	cs := buildStructure(testModule{title: "Long", titles: []string{"Marathon"}, mins: []int{90}})
	items := adaptivePlan(cs, testSettings(60, 3, true))

	require.Len(t, items, 1)
	assert.Len(t, items[0].OverflowWarnings, 1)
}

func TestSequentialPlan_PreservesOrderAndFlagsOverrun(t *testing.T) {
	cs := buildStructure(
		testModule{title: "B", titles: []string{"b1", "b2"}, mins: []int{10, 40}},
		testModule{title: "A", titles: []string{"a1"}, mins: []int{10}},
	)
	items := sequentialPlan(cs, testSettings(30, 3, false))

	assert.Equal(t, []int{0, 1, 2}, allIndices(items))
	require.Len(t, items, 3)

	long := items[1]
	assert.Equal(t, []int{1}, long.VideoIndices)
	require.Len(t, long.OverflowWarnings, 2)
	assert.Contains(t, long.OverflowWarnings[0], "exceeds session limit")
	assert.Equal(t, "Session duration (40m) significantly exceeds target (30m)", long.OverflowWarnings[1])

	dates := SessionDates(testSettings(30, 3, false), 3)
	for i := range items {
		assert.Equal(t, dates[i], items[i].Date)
	}
}

func TestSequentialPlan_OverrunUsesSessionCap(t *testing.T) {
	cs := buildStructure(testModule{title: "A", titles: []string{"a1", "a2"}, mins: []int{10, 40}})
	s := testSettings(60, 3, false)
	maxSession := 30
	s.Advanced = &domain.AdvancedSettings{MaxSessionDurationMinutes: &maxSession}

	items := sequentialPlan(cs, s)
	require.Len(t, items, 2)
	require.Len(t, items[1].OverflowWarnings, 2)
	assert.Equal(t, "Session duration (40m) significantly exceeds target (30m)", items[1].OverflowWarnings[1])
}
