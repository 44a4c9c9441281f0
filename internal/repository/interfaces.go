package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/coursepilot/internal/domain"
)

// CourseSummary is the list view of a course.
type CourseSummary struct {
	ID         string
	Name       string
	VideoCount int
	Structured bool
	PlanCount  int
	CreatedAt  time.Time
}

// PlanSummary is the list view of a plan.
type PlanSummary struct {
	ID             string
	CourseID       string
	Strategy       domain.DistributionStrategy
	ItemCount      int
	CompletedCount int
	FirstDate      *time.Time
	LastDate       *time.Time
	CreatedAt      time.Time
}

type CourseRepo interface {
	Create(ctx context.Context, c *domain.Course) error
	GetByID(ctx context.Context, id string) (*domain.Course, error)
	List(ctx context.Context) ([]CourseSummary, error)
	UpdateStructure(ctx context.Context, id string, cs *domain.CourseStructure, updatedAt time.Time) error
	Delete(ctx context.Context, id string) error
}

type PlanRepo interface {
	Create(ctx context.Context, p *domain.Plan) error
	GetByID(ctx context.Context, id string) (*domain.Plan, error)
	ListByCourse(ctx context.Context, courseID string) ([]PlanSummary, error)
	// Replace overwrites the plan's settings, strategy and items.
	Replace(ctx context.Context, p *domain.Plan) error
	SetItemCompleted(ctx context.Context, planID string, position int, completed bool, updatedAt time.Time) error
	Delete(ctx context.Context, id string) error
}
