package scheduler

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/coursepilot/internal/domain"
)

const (
	minReviewInterval  = 5
	reviewDuration     = 45 * time.Minute
	restCompletionTime = 30 * time.Minute
	minItemsForBreaks  = 10
	overloadFactor     = 1.5
	underloadFactor    = 0.7
	loadPerVideo       = 0.2
	loadAdjustment     = 0.3
	heavyVideoCount    = 5
	heavyTitleLoad     = 0.7
	reviewModuleTitle  = "Review"
	restModuleTitle    = "Consolidation"
	restSectionTitle   = "Rest & Reflection Day"
)

// Optimizer refines generated plans. Each pass records itself on the plan,
// so optimizing an optimized plan changes nothing.
type Optimizer struct {
	Now func() time.Time
}

func NewOptimizer(now func() time.Time) *Optimizer {
	if now == nil {
		now = time.Now
	}
	return &Optimizer{Now: now}
}

type optimizerPass struct {
	name domain.OptimizationPass
	run  func(p *domain.Plan, lookup map[int]domain.Section)
}

// Optimize runs every pass in order on plan. cs supplies section titles and
// durations for load balancing; when nil that pass leaves items alone.
func (o *Optimizer) Optimize(plan *domain.Plan, cs *domain.CourseStructure) {
	var lookup map[int]domain.Section
	if cs != nil {
		lookup = make(map[int]domain.Section, cs.SectionCount())
		for _, sec := range cs.Sections() {
			lookup[sec.VideoIndex] = sec
		}
	}

	passes := []optimizerPass{
		{domain.PassReviews, func(p *domain.Plan, _ map[int]domain.Section) { addReviewSessions(p) }},
		{domain.PassLoadBalance, balanceCognitiveLoad},
		{domain.PassBufferDays, func(p *domain.Plan, _ map[int]domain.Section) { addBufferDays(p) }},
		{domain.PassTiming, func(p *domain.Plan, _ map[int]domain.Section) { adjustTiming(p) }},
		{domain.PassConsolidation, func(p *domain.Plan, _ map[int]domain.Section) { addConsolidationBreaks(p) }},
		{domain.PassNormalization, func(p *domain.Plan, _ map[int]domain.Section) { o.normalize(p) }},
	}
	for _, pass := range passes {
		if plan.HasApplied(pass.name) {
			continue
		}
		pass.run(plan, lookup)
		plan.MarkApplied(pass.name)
	}
}

// addReviewSessions inserts a review after every interval-th item except
// the last one. Reviews never run longer than a session.
func addReviewSessions(p *domain.Plan) {
	n := len(p.Items)
	interval := max(minReviewInterval, n/4)
	length := min(reviewDuration, p.Settings.StrictLimit())
	out := make([]domain.PlanItem, 0, n+n/interval)
	for i, it := range p.Items {
		out = append(out, it)
		if (i+1)%interval == 0 && i < n-1 {
			out = append(out, domain.PlanItem{
				Date:                    NextSessionDate(it.Date, p.Settings),
				ModuleTitle:             reviewModuleTitle,
				SectionTitle:            fmt.Sprintf("Review: Modules 1-%d", (i+1)/interval),
				TotalDuration:           length,
				EstimatedCompletionTime: withCompletionBuffer(length),
				Kind:                    domain.ItemReview,
			})
		}
	}
	p.Items = out
}

func itemLoad(it domain.PlanItem) float64 {
	return loadPerVideo*float64(len(it.VideoIndices)) + TitleLoad(it.SectionTitle)
}

// balanceCognitiveLoad moves the last video of an overloaded study session
// to the next underloaded one that can take it. Loads are adjusted by a
// fixed step after each move instead of being recomputed.
func balanceCognitiveLoad(p *domain.Plan, lookup map[int]domain.Section) {
	if lookup == nil {
		return
	}
	var study []int
	for i, it := range p.Items {
		if it.Kind == domain.ItemStudy {
			study = append(study, i)
		}
	}
	if len(study) < 2 {
		return
	}

	loads := make(map[int]float64, len(study))
	sum := 0.0
	for _, i := range study {
		loads[i] = itemLoad(p.Items[i])
		sum += loads[i]
	}
	target := sum / float64(len(study))
	strict := p.Settings.StrictLimit()

	for a, i := range study {
		src := &p.Items[i]
		if loads[i] <= overloadFactor*target || len(src.VideoIndices) < 2 {
			continue
		}
		last := src.VideoIndices[len(src.VideoIndices)-1]
		moved := lookup[last].Duration
		for _, j := range study[a+1:] {
			dst := &p.Items[j]
			if loads[j] >= underloadFactor*target || dst.TotalDuration+moved > strict {
				continue
			}
			src.VideoIndices = src.VideoIndices[:len(src.VideoIndices)-1]
			dst.VideoIndices = append(dst.VideoIndices, last)
			retitle(src, lookup)
			retitle(dst, lookup)
			loads[i] -= loadAdjustment
			loads[j] += loadAdjustment
			break
		}
	}
}

// retitle recomputes an item's title and durations from its videos.
func retitle(it *domain.PlanItem, lookup map[int]domain.Section) {
	q := make([]QueueItem, len(it.VideoIndices))
	for k, idx := range it.VideoIndices {
		sec := lookup[idx]
		q[k] = QueueItem{ModuleTitle: it.ModuleTitle, SectionTitle: sec.Title, VideoIndex: idx, Duration: sec.Duration}
	}
	ps := newPackedSession(q, nil)
	it.SectionTitle = ps.SectionTitle
	it.TotalDuration = ps.TotalDuration
	it.EstimatedCompletionTime = ps.EstimatedCompletionTime
}

func bufferDays(it domain.PlanItem) int {
	buffer := 0
	if len(it.VideoIndices) > heavyVideoCount {
		buffer = 1
	}
	if TitleLoad(it.SectionTitle) > heavyTitleLoad {
		buffer = max(buffer, 1)
	}
	lower := strings.ToLower(it.SectionTitle)
	if strings.Contains(lower, "advanced") || strings.Contains(lower, "expert") {
		buffer = max(buffer, 2)
	}
	return buffer
}

func addBufferDays(p *domain.Plan) {
	for i := range p.Items {
		if b := bufferDays(p.Items[i]); b > 0 {
			p.Items[i].Date = ShiftDays(p.Items[i].Date, b, p.Settings)
		}
	}
	sortByDate(p.Items)
}

// adjustTiming keeps demanding sessions off Mondays.
func adjustTiming(p *domain.Plan) {
	for i := range p.Items {
		it := &p.Items[i]
		lower := strings.ToLower(it.SectionTitle)
		if (strings.Contains(lower, "advanced") || strings.Contains(lower, "complex")) && it.Date.Weekday() == time.Monday {
			it.Date = ShiftDays(it.Date, 1, p.Settings)
		}
	}
	sortByDate(p.Items)
}

// addConsolidationBreaks inserts a rest day after every quarter of a plan
// with at least ten items.
func addConsolidationBreaks(p *domain.Plan) {
	n := len(p.Items)
	if n < minItemsForBreaks {
		return
	}
	interval := n / 4
	out := make([]domain.PlanItem, 0, n+4)
	for i, it := range p.Items {
		out = append(out, it)
		if i > 0 && i%interval == 0 {
			out = append(out, domain.PlanItem{
				Date:                    ShiftDays(it.Date, 1, p.Settings),
				ModuleTitle:             restModuleTitle,
				SectionTitle:            restSectionTitle,
				EstimatedCompletionTime: restCompletionTime,
				Kind:                    domain.ItemRest,
			})
		}
	}
	p.Items = out
	sortByDate(p.Items)
}

// normalize drops empty study items, moves past dates to tomorrow and
// leaves the items sorted by date.
func (o *Optimizer) normalize(p *domain.Plan) {
	now := o.Now()
	tomorrow := ShiftDays(now, 1, p.Settings)

	kept := p.Items[:0]
	for _, it := range p.Items {
		if it.IsEmpty() && !isNamedSynthetic(it) {
			continue
		}
		if it.Date.Before(now) {
			it.Date = tomorrow
		}
		kept = append(kept, it)
	}
	p.Items = kept
	sortByDate(p.Items)
}

func isNamedSynthetic(it domain.PlanItem) bool {
	if it.Kind == domain.ItemReview || it.Kind == domain.ItemRest {
		return true
	}
	return strings.Contains(it.SectionTitle, "Review") || strings.Contains(it.SectionTitle, "Rest")
}
