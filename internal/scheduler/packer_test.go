package scheduler

import (
	"fmt"
	"testing"
	"time"

	"github.com/alexanderramin/coursepilot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// monday is a fixed Monday used as the start of most test plans.
var monday = time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)

func testSettings(sessionMin, perWeek int, weekends bool) domain.PlanSettings {
	return domain.PlanSettings{
		StartDate:            monday,
		SessionsPerWeek:      perWeek,
		SessionLengthMinutes: sessionMin,
		IncludeWeekends:      weekends,
	}
}

func queueOfMinutes(minutes ...int) []QueueItem {
	q := make([]QueueItem, len(minutes))
	for i, m := range minutes {
		q[i] = QueueItem{
			ModuleTitle:  "Module",
			SectionTitle: fmt.Sprintf("Video %d", i),
			VideoIndex:   i,
			Duration:     time.Duration(m) * time.Minute,
		}
	}
	return q
}

func TestPacker_Limits(t *testing.T) {
	p := NewPacker(testSettings(60, 3, false))
	assert.Equal(t, 60*time.Minute, p.Strict)
	assert.Equal(t, 48*time.Minute, p.Effective)
}

func TestPacker_FrontOrderPreserved(t *testing.T) {
	p := NewPacker(testSettings(60, 3, false))
	ps, rest := p.Next(queueOfMinutes(20, 20, 20, 20), PackUtilization)

	assert.Equal(t, []int{0, 1}, ps.VideoIndices())
	assert.Equal(t, 40*time.Minute, ps.TotalDuration)
	require.Len(t, rest, 2)
	assert.Equal(t, 2, rest[0].VideoIndex)
	assert.Equal(t, 3, rest[1].VideoIndex)
}

func TestPacker_UtilizationSecondPass(t *testing.T) {
	p := NewPacker(testSettings(60, 3, false))
	ps, rest := p.Next(queueOfMinutes(30, 10, 9, 8), PackUtilization)

	assert.Equal(t, []int{0, 1, 3}, ps.VideoIndices())
	assert.Equal(t, 48*time.Minute, ps.TotalDuration)
	require.Len(t, rest, 1)
	assert.Equal(t, 9*time.Minute, rest[0].Duration)
	assert.Equal(t, "Video 0 + 2 more", ps.SectionTitle)
}

func TestPacker_OrderedModeHasNoSecondPass(t *testing.T) {
	p := NewPacker(testSettings(60, 3, false))
	ps, rest := p.Next(queueOfMinutes(30, 10, 9, 8), PackOrdered)

	assert.Equal(t, []int{0, 1}, ps.VideoIndices())
	require.Len(t, rest, 2)
	assert.Equal(t, 2, rest[0].VideoIndex)
}

func TestPacker_OversizedFirstItem(t *testing.T) {
	p := NewPacker(testSettings(60, 3, false))
	ps, rest := p.Next(queueOfMinutes(200, 5), PackUtilization)

	assert.Equal(t, []int{0}, ps.VideoIndices())
	require.Len(t, ps.OverflowWarnings, 1)
	assert.Contains(t, ps.OverflowWarnings[0], "200.0 min")
	assert.Contains(t, ps.OverflowWarnings[0], "60 min")
	assert.Contains(t, ps.OverflowWarnings[0], "Including anyway.")
	assert.Len(t, rest, 1, "oversized item closes the session")
}

func TestPacker_OversizedItemLaterInQueueWaits(t *testing.T) {
	p := NewPacker(testSettings(60, 3, false))
	ps, rest := p.Next(queueOfMinutes(10, 200, 5), PackUtilization)

	assert.Equal(t, []int{0, 2}, ps.VideoIndices(), "second pass skips over the oversized item")
	assert.Empty(t, ps.OverflowWarnings)
	require.Len(t, rest, 1)
	assert.Equal(t, 1, rest[0].VideoIndex)

	ps, rest = p.Next(queueOfMinutes(10, 200, 5), PackOrdered)
	assert.Equal(t, []int{0}, ps.VideoIndices())
	assert.Len(t, rest, 2)
}

func TestPacker_ItemBetweenEffectiveAndStrictAccepted(t *testing.T) {
	p := NewPacker(testSettings(60, 3, false))
	ps, _ := p.Next(queueOfMinutes(55), PackUtilization)

	assert.Equal(t, []int{0}, ps.VideoIndices())
	assert.Empty(t, ps.OverflowWarnings)
}

func TestPacker_CompletionBuffer(t *testing.T) {
	p := NewPacker(testSettings(60, 3, false))
	ps, _ := p.Next(queueOfMinutes(40), PackUtilization)
	assert.Equal(t, 50*time.Minute, ps.EstimatedCompletionTime)
}

func TestPacker_UnknownDurationBudgetedAsTenMinutes(t *testing.T) {
	p := NewPacker(testSettings(30, 3, false))
	// effective limit is 24 minutes; three unknown videos need 30
	ps, rest := p.Next(queueOfMinutes(0, 0, 0), PackUtilization)

	assert.Len(t, ps.Items, 2)
	assert.Equal(t, time.Duration(0), ps.TotalDuration)
	assert.Len(t, rest, 1)
}

func TestPacker_PackAllDrainsQueue(t *testing.T) {
	p := NewPacker(testSettings(60, 3, false))
	sessions := p.PackAll(queueOfMinutes(20, 20, 20, 20, 20), PackOrdered)

	require.Len(t, sessions, 3)
	var got []int
	for _, s := range sessions {
		got = append(got, s.VideoIndices()...)
	}
	assert.Equal(t, []int{0, 1, 2, 3, 4}, got)
}

func TestPacker_SessionCapLowersLimit(t *testing.T) {
	s := testSettings(90, 3, false)
	capMin := 30
	s.Advanced = &domain.AdvancedSettings{MaxSessionDurationMinutes: &capMin}

	p := NewPacker(s)
	assert.Equal(t, 30, p.LimitMinutes)
	assert.Equal(t, 30*time.Minute, p.Strict)
}
