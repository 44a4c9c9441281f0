package scheduler

import (
	"fmt"
	"time"

	"github.com/alexanderramin/coursepilot/internal/domain"
)

// PackMode selects how the packer fills a session.
type PackMode int

const (
	// PackUtilization fills leftover slack from anywhere in the queue.
	PackUtilization PackMode = iota
	// PackOrdered only ever takes from the front of the queue.
	PackOrdered
)

const (
	// unknownVideoDuration is budgeted for videos whose length is zero.
	unknownVideoDuration = 10 * time.Minute
	// minFillSlack is the least slack worth a second scan of the queue.
	minFillSlack = 30 * time.Second
)

// QueueItem is one video waiting to be packed.
type QueueItem struct {
	ModuleTitle  string
	SectionTitle string
	VideoIndex   int
	Duration     time.Duration
}

func (q QueueItem) budget() time.Duration {
	if q.Duration <= 0 {
		return unknownVideoDuration
	}
	return q.Duration
}

// PackedSession is a group of videos that fits one study session.
type PackedSession struct {
	ModuleTitle             string
	SectionTitle            string
	Items                   []QueueItem
	TotalDuration           time.Duration
	EstimatedCompletionTime time.Duration
	OverflowWarnings        []string
}

// VideoIndices returns the packed video indices in pick order.
func (ps PackedSession) VideoIndices() []int {
	out := make([]int, len(ps.Items))
	for i, it := range ps.Items {
		out[i] = it.VideoIndex
	}
	return out
}

// Packer carries the per-session budgets derived from plan settings.
type Packer struct {
	LimitMinutes int
	Strict       time.Duration
	Effective    time.Duration
}

func NewPacker(s domain.PlanSettings) Packer {
	return Packer{
		LimitMinutes: s.PackingMinutes(),
		Strict:       s.StrictLimit(),
		Effective:    s.EffectiveLimit(),
	}
}

// Next packs one session from the front of queue and returns it together
// with the unpacked remainder. queue itself is not modified.
func (p Packer) Next(queue []QueueItem, mode PackMode) (PackedSession, []QueueItem) {
	var picked []QueueItem
	var used time.Duration
	var warnings []string
	closed := false

	// First pass: greedy from the front
	rest := queue
	for len(rest) > 0 {
		item := rest[0]
		d := item.budget()
		if d > p.Strict {
			if len(picked) == 0 {
				warnings = append(warnings, p.overflowWarning(item, d))
				picked = append(picked, item)
				used += d
				rest = rest[1:]
				closed = true
			}
			break
		}
		if len(picked) > 0 && used+d > p.Effective {
			break
		}
		picked = append(picked, item)
		used += d
		rest = rest[1:]
	}

	// Second pass: first-fit over the rest of the queue
	if mode == PackUtilization && !closed && len(rest) > 0 && p.Effective-used >= minFillSlack {
		remaining := make([]QueueItem, 0, len(rest))
		for _, item := range rest {
			d := item.budget()
			if p.Effective-used >= minFillSlack && used+d <= p.Effective {
				picked = append(picked, item)
				used += d
				continue
			}
			remaining = append(remaining, item)
		}
		rest = remaining
	}

	return newPackedSession(picked, warnings), rest
}

// PackAll drains queue into consecutive sessions.
func (p Packer) PackAll(queue []QueueItem, mode PackMode) []PackedSession {
	var sessions []PackedSession
	for len(queue) > 0 {
		var s PackedSession
		s, queue = p.Next(queue, mode)
		sessions = append(sessions, s)
	}
	return sessions
}

func (p Packer) overflowWarning(item QueueItem, d time.Duration) string {
	return fmt.Sprintf("Video '%s' (%.1f min) exceeds session limit (%d min). Including anyway.",
		item.SectionTitle, d.Minutes(), p.LimitMinutes)
}

func newPackedSession(items []QueueItem, warnings []string) PackedSession {
	ps := PackedSession{Items: items, OverflowWarnings: warnings}
	if len(items) == 0 {
		return ps
	}
	for _, it := range items {
		ps.TotalDuration += it.Duration
	}
	ps.ModuleTitle = items[0].ModuleTitle
	ps.SectionTitle = sessionTitle(items)
	ps.EstimatedCompletionTime = withCompletionBuffer(ps.TotalDuration)
	return ps
}

func sessionTitle(items []QueueItem) string {
	if len(items) == 1 {
		return items[0].SectionTitle
	}
	return fmt.Sprintf("%s + %d more", items[0].SectionTitle, len(items)-1)
}

func withCompletionBuffer(d time.Duration) time.Duration {
	return time.Duration(float64(d) * domain.CompletionBuffer)
}

// queueFromStructure flattens the sections of every module in module order.
func queueFromStructure(cs *domain.CourseStructure) []QueueItem {
	var q []QueueItem
	for _, m := range cs.Modules {
		q = append(q, queueFromModule(m)...)
	}
	return q
}

func queueFromModule(m domain.Module) []QueueItem {
	q := make([]QueueItem, len(m.Sections))
	for i, s := range m.Sections {
		q[i] = QueueItem{
			ModuleTitle:  m.Title,
			SectionTitle: s.Title,
			VideoIndex:   s.VideoIndex,
			Duration:     s.Duration,
		}
	}
	return q
}

// toPlanItem dates a packed session.
func toPlanItem(ps PackedSession, date time.Time) domain.PlanItem {
	return domain.PlanItem{
		Date:                    date,
		ModuleTitle:             ps.ModuleTitle,
		SectionTitle:            ps.SectionTitle,
		VideoIndices:            ps.VideoIndices(),
		TotalDuration:           ps.TotalDuration,
		EstimatedCompletionTime: ps.EstimatedCompletionTime,
		OverflowWarnings:        ps.OverflowWarnings,
		Kind:                    domain.ItemStudy,
	}
}
