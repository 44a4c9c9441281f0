package scheduler

import (
	"fmt"
	"sort"
	"time"

	"github.com/alexanderramin/coursepilot/internal/domain"
)

const (
	// underUtilizedRatio marks a session as worth merging with its neighbour.
	underUtilizedRatio = 0.5
	repetitionRatio    = 0.6
	// sequentialOverrun flags sessions more than 20% over the target length.
	sequentialOverrun = 1.2
)

// planItems dispatches to the strategy implementation.
func planItems(st domain.DistributionStrategy, cs *domain.CourseStructure, s domain.PlanSettings) []domain.PlanItem {
	switch st {
	case domain.StrategyModuleBased:
		return moduleBasedPlan(cs, s)
	case domain.StrategyTimeBased:
		return timeBasedPlan(cs, s)
	case domain.StrategyDifficultyBased:
		return difficultyBasedPlan(cs, s)
	case domain.StrategySpacedRepetition:
		return spacedRepetitionPlan(cs, s)
	case domain.StrategyAdaptive:
		return adaptivePlan(cs, s)
	case domain.StrategySequential:
		return sequentialPlan(cs, s)
	default:
		return hybridPlan(cs, s)
	}
}

// dateSessions assigns successive calendar dates to packed sessions.
func dateSessions(sessions []PackedSession, s domain.PlanSettings) []domain.PlanItem {
	dates := SessionDates(s, len(sessions))
	items := make([]domain.PlanItem, len(sessions))
	for i, ps := range sessions {
		items[i] = toPlanItem(ps, dates[i])
	}
	return items
}

// queueInVideoOrder flattens the structure and restores the original order.
func queueInVideoOrder(cs *domain.CourseStructure) []QueueItem {
	q := queueFromStructure(cs)
	sort.SliceStable(q, func(i, j int) bool { return q[i].VideoIndex < q[j].VideoIndex })
	return q
}

func moduleSessions(cs *domain.CourseStructure, s domain.PlanSettings) []PackedSession {
	p := NewPacker(s)
	var sessions []PackedSession
	for _, m := range cs.Modules {
		sessions = append(sessions, p.PackAll(queueFromModule(m), PackUtilization)...)
	}
	return sessions
}

func moduleBasedPlan(cs *domain.CourseStructure, s domain.PlanSettings) []domain.PlanItem {
	return dateSessions(moduleSessions(cs, s), s)
}

func timeBasedPlan(cs *domain.CourseStructure, s domain.PlanSettings) []domain.PlanItem {
	return dateSessions(NewPacker(s).PackAll(queueInVideoOrder(cs), PackUtilization), s)
}

// hybridPlan packs per module, then merges neighbouring sessions that are
// both under half full when the pair still fits the effective limit. The
// merge is a single pass; a merged session is not merged again.
func hybridPlan(cs *domain.CourseStructure, s domain.PlanSettings) []domain.PlanItem {
	p := NewPacker(s)
	sessions := moduleSessions(cs, s)
	threshold := time.Duration(float64(p.Strict) * underUtilizedRatio)

	merged := make([]PackedSession, 0, len(sessions))
	for i := 0; i < len(sessions); i++ {
		cur := sessions[i]
		if i+1 < len(sessions) {
			next := sessions[i+1]
			cb, nb := sessionBudget(cur), sessionBudget(next)
			if cb < threshold && nb < threshold && cb+nb <= p.Effective {
				items := append(append([]QueueItem{}, cur.Items...), next.Items...)
				warnings := append(append([]string{}, cur.OverflowWarnings...), next.OverflowWarnings...)
				cur = newPackedSession(items, warnings)
				i++
			}
		}
		merged = append(merged, cur)
	}
	return dateSessions(merged, s)
}

func sessionBudget(ps PackedSession) time.Duration {
	var d time.Duration
	for _, it := range ps.Items {
		d += it.budget()
	}
	return d
}

// difficultyBasedPlan orders sections from easiest to hardest before
// packing, or hardest first when difficult content is prioritized.
func difficultyBasedPlan(cs *domain.CourseStructure, s domain.PlanSettings) []domain.PlanItem {
	q := queueFromStructure(cs)
	rank := make(map[int]int, len(q))
	for _, m := range cs.Modules {
		for _, sec := range m.Sections {
			rank[sec.VideoIndex] = AnalyzeSectionDifficulty(sec).Rank()
		}
	}
	hardFirst := s.Advanced != nil && s.Advanced.PrioritizeDifficultContent
	sort.SliceStable(q, func(i, j int) bool {
		ri, rj := rank[q[i].VideoIndex], rank[q[j].VideoIndex]
		if hardFirst {
			return ri > rj
		}
		return ri < rj
	})
	return dateSessions(NewPacker(s).PackAll(q, PackUtilization), s)
}

// spacedRepetitionPlan schedules the course like timeBasedPlan and adds a
// repetition of every session after each review interval.
func spacedRepetitionPlan(cs *domain.CourseStructure, s domain.PlanSettings) []domain.PlanItem {
	base := timeBasedPlan(cs, s)
	intervals := s.RepetitionIntervals()

	items := make([]domain.PlanItem, 0, len(base)*(len(intervals)+1))
	items = append(items, base...)
	strict := s.StrictLimit()
	for _, it := range base {
		for k, iv := range intervals {
			total := time.Duration(float64(it.TotalDuration) * repetitionRatio)
			var warnings []string
			if total > strict {
				warnings = append(warnings, it.OverflowWarnings...)
			}
			items = append(items, domain.PlanItem{
				Date:                    ShiftDays(it.Date, iv, s),
				ModuleTitle:             it.ModuleTitle,
				SectionTitle:            fmt.Sprintf("Review: %s (Review #%d)", it.SectionTitle, k+1),
				VideoIndices:            append([]int(nil), it.VideoIndices...),
				TotalDuration:           total,
				EstimatedCompletionTime: withCompletionBuffer(total),
				OverflowWarnings:        warnings,
				Kind:                    domain.ItemRepetition,
			})
		}
	}
	sortByDate(items)
	return items
}

type enhancedSession struct {
	queue       QueueItem
	difficulty  domain.DifficultyLevel
	load        float64
	sessionType domain.SessionType
	timeOfDay   domain.TimeOfDay
}

// adaptivePlan gives every section its own session, ordered by activity
// type, difficulty and cognitive load, and spaces hard sessions further apart.
func adaptivePlan(cs *domain.CourseStructure, s domain.PlanSettings) []domain.PlanItem {
	var sessions []enhancedSession
	for _, m := range cs.Modules {
		q := queueFromModule(m)
		for i, sec := range m.Sections {
			sessions = append(sessions, enhancedSession{
				queue:       q[i],
				difficulty:  AnalyzeSectionDifficulty(sec),
				load:        CognitiveLoad(sec.Title, sec.Duration),
				sessionType: ClassifySessionType(sec.Title),
				timeOfDay:   OptimalTimeOfDay(sec.Title),
			})
		}
	}
	sort.SliceStable(sessions, func(i, j int) bool {
		a, b := sessions[i], sessions[j]
		if a.sessionType.Order() != b.sessionType.Order() {
			return a.sessionType.Order() < b.sessionType.Order()
		}
		if a.difficulty.Rank() != b.difficulty.Rank() {
			return a.difficulty.Rank() < b.difficulty.Rank()
		}
		return a.load < b.load
	})

	p := NewPacker(s)
	items := make([]domain.PlanItem, 0, len(sessions))
	date := FirstSessionDate(s)
	for _, es := range sessions {
		d := date
		if es.load > 0.7 && d.Weekday() == time.Monday {
			d = ShiftDays(d, 1, s)
		}
		ps, _ := p.Next([]QueueItem{es.queue}, PackOrdered)
		item := toPlanItem(ps, d)
		item.TimeOfDay = es.timeOfDay
		items = append(items, item)

		date = NextSessionDate(d.AddDate(0, 0, adaptiveSpacing(es)), s)
	}
	return items
}

func adaptiveSpacing(es enhancedSession) int {
	switch {
	case es.difficulty == domain.DifficultyExpert && es.load > 0.8:
		return 3
	case es.difficulty == domain.DifficultyAdvanced && es.load > 0.7:
		return 2
	case es.difficulty == domain.DifficultyExpert:
		return 2
	case es.difficulty == domain.DifficultyAdvanced:
		return 1
	default:
		return 0
	}
}

// sequentialPlan packs videos strictly in their original order.
func sequentialPlan(cs *domain.CourseStructure, s domain.PlanSettings) []domain.PlanItem {
	items := dateSessions(NewPacker(s).PackAll(queueInVideoOrder(cs), PackOrdered), s)
	normalizeSequential(items, s)
	return items
}

// normalizeSequential flags sessions well over the target length and lays
// the dates out again from the start date without touching the order.
func normalizeSequential(items []domain.PlanItem, s domain.PlanSettings) {
	target := time.Duration(s.PackingMinutes()) * time.Minute
	limit := time.Duration(float64(target) * sequentialOverrun)
	dates := SessionDates(s, len(items))
	for i := range items {
		if items[i].TotalDuration > limit {
			items[i].OverflowWarnings = append(items[i].OverflowWarnings, fmt.Sprintf(
				"Session duration (%s) significantly exceeds target (%s)",
				domain.FormatDuration(items[i].TotalDuration), domain.FormatDuration(target)))
		}
		items[i].Date = dates[i]
	}
}

func sortByDate(items []domain.PlanItem) {
	sort.SliceStable(items, func(i, j int) bool { return items[i].Date.Before(items[j].Date) })
}
