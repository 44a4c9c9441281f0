package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/coursepilot/internal/domain"
	"github.com/alexanderramin/coursepilot/internal/repository"
	"github.com/alexanderramin/coursepilot/internal/scheduler"
)

const sectionWidth = 36

// FormatSettings renders plan settings on one line.
func FormatSettings(s domain.PlanSettings) string {
	days := "weekdays"
	if s.IncludeWeekends {
		days = "all days"
	}
	parts := []string{
		fmt.Sprintf("%d×/week", s.SessionsPerWeek),
		fmt.Sprintf("%dm sessions", s.SessionLengthMinutes),
		days,
		"from " + s.StartDate.Format("2006-01-02"),
	}
	if st, ok := s.StrategyOverride(); ok {
		parts = append(parts, "strategy "+st.Label())
	}
	if s.Advanced != nil && s.Advanced.MaxSessionDurationMinutes != nil {
		parts = append(parts, fmt.Sprintf("cap %dm", *s.Advanced.MaxSessionDurationMinutes))
	}
	return strings.Join(parts, " · ")
}

// FormatPlanList renders the plans of one course.
func FormatPlanList(plans []repository.PlanSummary) string {
	rows := make([][]string, 0, len(plans))
	for _, p := range plans {
		pct := 0.0
		if p.ItemCount > 0 {
			pct = float64(p.CompletedCount) / float64(p.ItemCount)
		}
		span := Dim("—")
		if p.FirstDate != nil && p.LastDate != nil {
			span = p.FirstDate.Format("2006-01-02") + " → " + p.LastDate.Format("2006-01-02")
		}
		rows = append(rows, []string{
			Dim(ShortID(p.ID)),
			p.Strategy.Label(),
			strconv.Itoa(p.ItemCount),
			RenderProgress(pct, 10),
			span,
		})
	}
	return RenderTable(
		[]string{"ID", "Strategy", "Sessions", "Progress", "Dates"},
		rows,
		AlignLeft, AlignLeft, AlignRight,
	)
}

// FormatPlan renders a plan overview box and its session table. now is used
// to describe the next pending session.
func FormatPlan(course *domain.Course, plan *domain.Plan, now time.Time) string {
	done, total, pct := plan.Progress()
	pairs := [][2]string{
		{"Course", course.Name},
		{"Plan", plan.ID},
		{"Strategy", plan.Strategy.Label() + Dim("  "+plan.Strategy.Description())},
		{"Settings", FormatSettings(plan.Settings)},
		{"Progress", fmt.Sprintf("%s  %d/%d sessions", RenderProgress(pct/100, 20), done, total)},
	}
	if next := NextPending(plan); next >= 0 {
		it := plan.Items[next]
		pairs = append(pairs, [2]string{"Next", fmt.Sprintf("#%d %s (%s)",
			next+1, it.Date.Format("Mon Jan 2"), RelativeDateFrom(it.Date, now))})
	}

	var b strings.Builder
	b.WriteString(RenderBox("Study plan", KeyValue(pairs)))
	b.WriteString("\n\n")
	b.WriteString(FormatPlanItems(plan))

	var warnings []string
	for i, it := range plan.Items {
		for _, w := range it.OverflowWarnings {
			warnings = append(warnings, fmt.Sprintf("%s %s", Dim(fmt.Sprintf("#%d", i+1)), StyleYellow.Render(w)))
		}
	}
	if len(warnings) > 0 {
		b.WriteString("\n\n" + Header("Warnings") + "\n")
		b.WriteString(strings.Join(warnings, "\n"))
	}
	return b.String()
}

// FormatPlanItems renders one table row per plan item, numbered from 1.
func FormatPlanItems(plan *domain.Plan) string {
	rows := make([][]string, 0, len(plan.Items))
	for i, it := range plan.Items {
		date := it.Date.Format("Mon 2006-01-02")
		if it.TimeOfDay != "" {
			date += Dim(" " + string(it.TimeOfDay))
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			CheckMark(it.Completed),
			date,
			KindBadge(it.Kind),
			Truncate(ItemTitle(it), sectionWidth),
			strconv.Itoa(len(it.VideoIndices)),
			domain.FormatDuration(it.EstimatedCompletionTime),
		})
	}
	return RenderTable(
		[]string{"#", "", "Date", "Kind", "Session", "Videos", "Est."},
		rows,
		AlignRight, AlignLeft, AlignLeft, AlignLeft, AlignLeft, AlignRight, AlignRight,
	)
}

// ItemTitle names an item as "Module: Section".
func ItemTitle(it domain.PlanItem) string {
	switch {
	case it.ModuleTitle == "":
		return it.SectionTitle
	case it.SectionTitle == "" || it.SectionTitle == it.ModuleTitle:
		return it.ModuleTitle
	default:
		return it.ModuleTitle + ": " + it.SectionTitle
	}
}

// NextPending returns the first incomplete item index, or -1.
func NextPending(plan *domain.Plan) int {
	for i, it := range plan.Items {
		if !it.Completed {
			return i
		}
	}
	return -1
}

// FormatItemDetail lists the videos of one plan item.
func FormatItemDetail(course *domain.Course, plan *domain.Plan, idx int) string {
	it := plan.Items[idx]
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s  %s\n", Bold(fmt.Sprintf("#%d", idx+1)), it.Date.Format("Mon 2006-01-02"), KindBadge(it.Kind))
	fmt.Fprintf(&b, "%s\n", ItemTitle(it))
	for _, v := range it.VideoIndices {
		fmt.Fprintf(&b, "  %s %s\n", Dim(fmt.Sprintf("#%d", v+1)), course.VideoTitle(v))
	}
	fmt.Fprintf(&b, "%s", Dim(fmt.Sprintf("%s of video · about %s with notes",
		domain.FormatDuration(it.TotalDuration), domain.FormatDuration(it.EstimatedCompletionTime))))
	return b.String()
}

// FormatAnalysis renders a plan quality report.
func FormatAnalysis(a *scheduler.PlanAnalysis) string {
	var b strings.Builder
	b.WriteString(Header("Plan analysis") + "\n")
	b.WriteString(KeyValue([][2]string{
		{"Score", RenderScore(a.OverallScore)},
		{"Velocity", fmt.Sprintf("%.1f videos/day (%s) over %d days", a.Velocity.VideosPerDay, a.Velocity.Category, a.Velocity.TotalDays)},
		{"Load", fmt.Sprintf("avg cognitive load %.2f, variance %.3f", a.Load.AverageLoad, a.Load.Variance)},
		{"Overloaded", strconv.Itoa(a.Load.OverloadedSessions)},
		{"Underloaded", strconv.Itoa(a.Load.UnderloadedSessions)},
		{"Gaps", fmt.Sprintf("avg %.1f days, longest %d", a.Temporal.AverageGapDays, a.Temporal.LongestGapDays)},
		{"Weekends", fmt.Sprintf("%.0f%%", a.Temporal.WeekendUtilization*100)},
		{"Consistency", fmt.Sprintf("%.2f", a.Temporal.ConsistencyScore)},
	}))

	tips := append(append([]string(nil), a.Velocity.RecommendedAdjustments...), a.ImprovementSuggestions...)
	if len(tips) > 0 {
		b.WriteString("\n\n" + Header("Suggestions") + "\n")
		for _, s := range tips {
			b.WriteString(StyleYellow.Render("→ ") + s + "\n")
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// FormatRecommendations renders study recommendations for a course.
func FormatRecommendations(r *scheduler.StudyRecommendations) string {
	var b strings.Builder
	b.WriteString(Header("Recommendations") + "\n")
	b.WriteString(KeyValue([][2]string{
		{"Sessions/week", strconv.Itoa(r.OptimalSessionsPerWeek)},
		{"Session length", fmt.Sprintf("%d min", r.RecommendedSessionLength)},
		{"Strategy", r.StudyStrategy},
		{"Estimated", fmt.Sprintf("%d weeks", r.EstimatedCompletionWeeks)},
		{"Starts easy", YesNo(r.Progression.StartsEasy)},
		{"Steep curve", YesNo(r.Progression.HasSteepLearningCurve)},
	}))
	if len(r.Progression.ComplexityPeaks) > 0 {
		b.WriteString("\n\n" + Header("Complexity peaks") + "\n")
		b.WriteString(strings.Join(r.Progression.ComplexityPeaks, "\n"))
	}
	if len(r.Progression.RecommendedBreakPoints) > 0 {
		b.WriteString("\n\n" + Header("Break points") + "\n")
		b.WriteString(strings.Join(r.Progression.RecommendedBreakPoints, "\n"))
	}
	if len(r.TimeManagementTips) > 0 {
		b.WriteString("\n\n" + Header("Tips") + "\n")
		for _, tip := range r.TimeManagementTips {
			b.WriteString(StyleGreen.Render("• ") + tip + "\n")
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}
