package scheduler

import (
	"github.com/alexanderramin/coursepilot/internal/domain"
)

type VelocityCategory string

const (
	VelocitySlow      VelocityCategory = "slow"
	VelocityModerate  VelocityCategory = "moderate"
	VelocityFast      VelocityCategory = "fast"
	VelocityIntensive VelocityCategory = "intensive"
)

type VelocityAnalysis struct {
	VideosPerDay           float64
	Category               VelocityCategory
	TotalDays              int
	RecommendedAdjustments []string
}

type LoadDistribution struct {
	AverageLoad         float64
	Variance            float64
	OverloadedSessions  int
	UnderloadedSessions int
}

type TemporalDistribution struct {
	AverageGapDays     float64
	LongestGapDays     int
	WeekendUtilization float64
	ConsistencyScore   float64
}

// PlanAnalysis is a read-only quality report for a plan.
type PlanAnalysis struct {
	Velocity               VelocityAnalysis
	Load                   LoadDistribution
	Temporal               TemporalDistribution
	OverallScore           float64
	ImprovementSuggestions []string
}

// AnalyzePlan computes velocity, load and temporal metrics, an overall
// score in [0,1] and improvement suggestions. plan is not modified.
func AnalyzePlan(plan *domain.Plan) PlanAnalysis {
	a := PlanAnalysis{
		Velocity: AnalyzeVelocity(plan),
		Load:     AnalyzeLoad(plan),
		Temporal: AnalyzeTemporal(plan),
	}
	a.OverallScore = planScore(a)
	a.ImprovementSuggestions = improvementSuggestions(a, len(plan.Items))
	return a
}

func AnalyzeVelocity(plan *domain.Plan) VelocityAnalysis {
	videos := 0
	for _, it := range plan.Items {
		videos += len(it.VideoIndices)
	}
	days := 0
	if n := len(plan.Items); n > 0 {
		days = daysBetween(plan.Items[0].Date, plan.Items[n-1].Date)
	}
	perDay := 0.0
	if days > 0 {
		perDay = float64(videos) / float64(days)
	}

	var cat VelocityCategory
	switch {
	case perDay < 0.5:
		cat = VelocitySlow
	case perDay < 1.0:
		cat = VelocityModerate
	case perDay < 2.0:
		cat = VelocityFast
	default:
		cat = VelocityIntensive
	}

	return VelocityAnalysis{
		VideosPerDay:           perDay,
		Category:               cat,
		TotalDays:              days,
		RecommendedAdjustments: velocityRecommendations(cat, videos),
	}
}

func velocityRecommendations(cat VelocityCategory, videos int) []string {
	switch cat {
	case VelocitySlow:
		last := "Pace is suitable for deep learning"
		if videos > 50 {
			last = "Course may take longer than expected - consider breaking into phases"
		}
		return []string{
			"Consider increasing session frequency for better momentum",
			"Add more practice sessions to reinforce learning",
			last,
		}
	case VelocityModerate:
		return []string{
			"Good balance between depth and progress",
			"Consider adding review sessions every 2 weeks",
		}
	case VelocityFast:
		return []string{
			"Fast pace - ensure adequate time for practice",
			"Add buffer days for complex topics",
			"Consider spaced repetition for better retention",
		}
	default:
		return []string{
			"Very intensive pace - monitor for burnout",
			"Ensure adequate breaks between sessions",
			"Consider extending session length instead of frequency",
			"Add consolidation days every week",
		}
	}
}

// AnalyzeLoad reports the spread of title-only cognitive load across items.
func AnalyzeLoad(plan *domain.Plan) LoadDistribution {
	if len(plan.Items) == 0 {
		return LoadDistribution{}
	}
	loads := make([]float64, len(plan.Items))
	for i, it := range plan.Items {
		loads[i] = TitleLoad(it.SectionTitle)
	}
	mean, variance := meanVariance(loads)

	ld := LoadDistribution{AverageLoad: mean, Variance: variance}
	for _, l := range loads {
		if l > mean*1.5 {
			ld.OverloadedSessions++
		}
		if l < mean*0.5 {
			ld.UnderloadedSessions++
		}
	}
	return ld
}

// AnalyzeTemporal measures the spacing between consecutive items.
func AnalyzeTemporal(plan *domain.Plan) TemporalDistribution {
	n := len(plan.Items)
	if n < 2 {
		return TemporalDistribution{ConsistencyScore: 1.0}
	}

	gaps := make([]float64, 0, n-1)
	longest := 0
	weekend := 0
	for i := 1; i < n; i++ {
		g := daysBetween(plan.Items[i-1].Date, plan.Items[i].Date)
		gaps = append(gaps, float64(g))
		longest = max(longest, g)
		if isWeekend(plan.Items[i].Date) {
			weekend++
		}
	}
	mean, variance := meanVariance(gaps)

	return TemporalDistribution{
		AverageGapDays:     mean,
		LongestGapDays:     longest,
		WeekendUtilization: float64(weekend) / float64(n),
		ConsistencyScore:   clamp01(1 / (1 + variance)),
	}
}

func planScore(a PlanAnalysis) float64 {
	var velocity float64
	switch a.Velocity.Category {
	case VelocityModerate:
		velocity = 1.0
	case VelocityFast:
		velocity = 0.8
	case VelocitySlow:
		velocity = 0.6
	default:
		velocity = 0.4
	}
	load := max(0, 1-a.Load.Variance)
	return clamp01(0.4*velocity + 0.3*load + 0.3*a.Temporal.ConsistencyScore)
}

func improvementSuggestions(a PlanAnalysis, items int) []string {
	var out []string
	switch a.Velocity.Category {
	case VelocityIntensive:
		out = append(out, "Consider reducing session frequency to prevent burnout")
	case VelocitySlow:
		out = append(out, "Consider increasing session frequency for better momentum")
	}
	if a.Load.OverloadedSessions > items/4 {
		out = append(out, "Many sessions are overloaded - consider redistributing content")
	}
	if a.Load.UnderloadedSessions > items/4 {
		out = append(out, "Many sessions are underloaded - consider consolidating content")
	}
	if a.Temporal.LongestGapDays > 7 {
		out = append(out, "Long gaps between sessions may affect retention - consider more consistent scheduling")
	}
	if a.Temporal.ConsistencyScore < 0.7 {
		out = append(out, "Irregular session spacing - try to maintain consistent intervals")
	}
	return out
}

func meanVariance(vals []float64) (mean, variance float64) {
	if len(vals) == 0 {
		return 0, 0
	}
	for _, v := range vals {
		mean += v
	}
	mean /= float64(len(vals))
	for _, v := range vals {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(vals))
	return mean, variance
}
