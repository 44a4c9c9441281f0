package service

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/coursepilot/internal/db"
	"github.com/alexanderramin/coursepilot/internal/domain"
	"github.com/alexanderramin/coursepilot/internal/repository"
	"github.com/alexanderramin/coursepilot/internal/scheduler"
	"github.com/google/uuid"
)

type planService struct {
	courses  repository.CourseRepo
	plans    repository.PlanRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
	now      func() time.Time
}

func NewPlanService(
	courses repository.CourseRepo,
	plans repository.PlanRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) PlanService {
	return &planService{
		courses:  courses,
		plans:    plans,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
		now:      time.Now,
	}
}

func (s *planService) structuredCourse(ctx context.Context, courseID string) (*domain.Course, error) {
	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("loading course %s: %w", courseID, err)
	}
	if !course.IsStructured() {
		return nil, fmt.Errorf("course %s: %w", courseID, domain.ErrCourseNotStructured)
	}
	return course, nil
}

func (s *planService) Generate(ctx context.Context, courseID string, settings domain.PlanSettings) (plan *domain.Plan, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"course_id": courseID}
	defer func() { observe(ctx, s.observer, "generate-plan", startedAt, fields, err) }()

	course, err := s.structuredCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	plan, err = scheduler.GeneratePlan(course, settings, scheduler.GenerateOptions{Now: s.now})
	if err != nil {
		return nil, err
	}
	plan.ID = uuid.New().String()
	fields["plan_id"] = plan.ID
	fields["strategy"] = string(plan.Strategy)
	fields["items"] = len(plan.Items)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLitePlanRepo(tx).Create(ctx, plan)
	})
	if err != nil {
		return nil, fmt.Errorf("saving plan: %w", err)
	}
	return plan, nil
}

func (s *planService) List(ctx context.Context, courseID string) ([]repository.PlanSummary, error) {
	if _, err := s.courses.GetByID(ctx, courseID); err != nil {
		return nil, fmt.Errorf("loading course %s: %w", courseID, err)
	}
	return s.plans.ListByCourse(ctx, courseID)
}

func (s *planService) GetByID(ctx context.Context, id string) (*domain.Plan, error) {
	plan, err := s.plans.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading plan %s: %w", id, err)
	}
	return plan, nil
}

func (s *planService) SetCompleted(ctx context.Context, planID string, item int, completed bool) (*domain.Plan, error) {
	plan, err := s.GetByID(ctx, planID)
	if err != nil {
		return nil, err
	}
	if err := plan.SetCompleted(item, completed); err != nil {
		return nil, err
	}
	plan.UpdatedAt = s.now().UTC()
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLitePlanRepo(tx).SetItemCompleted(ctx, planID, item, completed, plan.UpdatedAt)
	})
	if err != nil {
		return nil, err
	}
	return plan, nil
}

// Regenerate rebuilds a plan from its course with new settings. Items whose
// kind and video indices match a completed item of the old plan stay
// completed.
func (s *planService) Regenerate(ctx context.Context, planID string, settings domain.PlanSettings) (result *RegenerateResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"plan_id": planID}
	defer func() { observe(ctx, s.observer, "regenerate-plan", startedAt, fields, err) }()

	old, err := s.GetByID(ctx, planID)
	if err != nil {
		return nil, err
	}
	course, err := s.structuredCourse(ctx, old.CourseID)
	if err != nil {
		return nil, err
	}

	plan, err := scheduler.GeneratePlan(course, settings, scheduler.GenerateOptions{Now: s.now})
	if err != nil {
		return nil, err
	}
	plan.ID = old.ID
	plan.CreatedAt = old.CreatedAt

	result = &RegenerateResult{Plan: plan}
	done := make(map[string]int)
	for _, it := range old.Items {
		if it.Completed {
			done[itemKey(it)]++
		}
	}
	for i := range plan.Items {
		key := itemKey(plan.Items[i])
		if done[key] > 0 {
			done[key]--
			plan.Items[i].Completed = true
			result.PreservedCompleted++
		}
	}
	for _, n := range done {
		result.DroppedCompleted += n
	}
	fields["strategy"] = string(plan.Strategy)
	fields["items"] = len(plan.Items)
	fields["preserved"] = result.PreservedCompleted
	fields["dropped"] = result.DroppedCompleted

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLitePlanRepo(tx).Replace(ctx, plan)
	})
	if err != nil {
		return nil, fmt.Errorf("saving plan: %w", err)
	}
	return result, nil
}

// itemKey identifies an item across regenerations by kind and videos.
func itemKey(it domain.PlanItem) string {
	var b strings.Builder
	b.WriteString(string(it.Kind))
	b.WriteByte(':')
	for i, idx := range it.VideoIndices {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(idx))
	}
	return b.String()
}

func (s *planService) Analyze(ctx context.Context, planID string) (*scheduler.PlanAnalysis, error) {
	plan, err := s.GetByID(ctx, planID)
	if err != nil {
		return nil, err
	}
	analysis := scheduler.AnalyzePlan(plan)
	return &analysis, nil
}

func (s *planService) Recommend(ctx context.Context, courseID string, settings domain.PlanSettings) (*scheduler.StudyRecommendations, error) {
	course, err := s.structuredCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	rec := scheduler.Recommend(course.Structure, settings)
	return &rec, nil
}

func (s *planService) Export(ctx context.Context, planID string, format ExportFormat, w io.Writer) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"plan_id": planID, "format": string(format)}
	defer func() { observe(ctx, s.observer, "export-plan", startedAt, fields, err) }()

	plan, err := s.GetByID(ctx, planID)
	if err != nil {
		return err
	}
	course, err := s.courses.GetByID(ctx, plan.CourseID)
	if err != nil {
		return fmt.Errorf("loading course %s: %w", plan.CourseID, err)
	}
	return ExportPlan(w, course, plan, format)
}

func (s *planService) Delete(ctx context.Context, id string) error {
	if err := s.plans.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting plan %s: %w", id, err)
	}
	return nil
}
