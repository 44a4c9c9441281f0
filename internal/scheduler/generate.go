package scheduler

import (
	"time"

	"github.com/alexanderramin/coursepilot/internal/domain"
)

// GenerateOptions carries the injectable clock used when clamping past dates.
type GenerateOptions struct {
	Now func() time.Time
}

func (o GenerateOptions) now() time.Time {
	if o.Now == nil {
		return time.Now()
	}
	return o.Now()
}

// GeneratePlan builds a study plan for a structured course.
//
// Courses whose content reads as sequential keep their original video order
// and skip both strategy selection and the optimizer. Everything else goes
// through the selected (or overridden) strategy and the optimizer. The
// returned plan has no ID; callers assign one when persisting.
func GeneratePlan(course *domain.Course, s domain.PlanSettings, opts GenerateOptions) (*domain.Plan, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if course == nil || !course.IsStructured() {
		return nil, domain.ErrCourseNotStructured
	}
	cs := course.Structure
	now := opts.now()

	plan := &domain.Plan{
		CourseID:  course.ID,
		Settings:  s,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if IsSequential(course.RawTitles, cs) {
		plan.Strategy = domain.StrategySequential
		plan.Items = sequentialPlan(cs, s)
		return plan, nil
	}

	st, err := SelectStrategy(cs, s)
	if err != nil {
		return nil, err
	}
	plan.Strategy = st
	plan.Items = planItems(st, cs, s)

	NewOptimizer(func() time.Time { return now }).Optimize(plan, cs)
	return plan, nil
}
