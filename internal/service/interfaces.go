package service

import (
	"context"
	"io"

	"github.com/alexanderramin/coursepilot/internal/domain"
	"github.com/alexanderramin/coursepilot/internal/importer"
	"github.com/alexanderramin/coursepilot/internal/repository"
	"github.com/alexanderramin/coursepilot/internal/scheduler"
)

// ImportOptions adjusts a course import.
type ImportOptions struct {
	// Name overrides the name from the file.
	Name string
	// SkipStructure stores the course without inferring modules.
	SkipStructure bool
}

// ImportResult holds the outcome of a course import.
type ImportResult struct {
	Course      *domain.Course
	VideoCount  int
	ModuleCount int
}

type CourseService interface {
	Import(ctx context.Context, filePath string, opts ImportOptions) (*ImportResult, error)
	ImportFromSchema(ctx context.Context, ci *importer.CourseImport, opts ImportOptions) (*ImportResult, error)
	List(ctx context.Context) ([]repository.CourseSummary, error)
	GetByID(ctx context.Context, id string) (*domain.Course, error)
	// Structure (re)infers the module structure of a stored course.
	Structure(ctx context.Context, id string) (*domain.Course, error)
	Delete(ctx context.Context, id string) error
}

// RegenerateResult reports how much progress survived a regeneration.
type RegenerateResult struct {
	Plan               *domain.Plan
	PreservedCompleted int
	DroppedCompleted   int
}

type PlanService interface {
	Generate(ctx context.Context, courseID string, settings domain.PlanSettings) (*domain.Plan, error)
	List(ctx context.Context, courseID string) ([]repository.PlanSummary, error)
	GetByID(ctx context.Context, id string) (*domain.Plan, error)
	// SetCompleted marks item (zero-based) done or not done.
	SetCompleted(ctx context.Context, planID string, item int, completed bool) (*domain.Plan, error)
	Regenerate(ctx context.Context, planID string, settings domain.PlanSettings) (*RegenerateResult, error)
	Analyze(ctx context.Context, planID string) (*scheduler.PlanAnalysis, error)
	Recommend(ctx context.Context, courseID string, settings domain.PlanSettings) (*scheduler.StudyRecommendations, error)
	Export(ctx context.Context, planID string, format ExportFormat, w io.Writer) error
	Delete(ctx context.Context, id string) error
}
