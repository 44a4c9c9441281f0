package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/alexanderramin/coursepilot/internal/db"
	"github.com/alexanderramin/coursepilot/internal/domain"
	"github.com/alexanderramin/coursepilot/internal/importer"
	"github.com/alexanderramin/coursepilot/internal/repository"
	"github.com/alexanderramin/coursepilot/internal/structurer"
)

type courseService struct {
	courses  repository.CourseRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewCourseService(courses repository.CourseRepo, uow db.UnitOfWork, observers ...UseCaseObserver) CourseService {
	return &courseService{
		courses:  courses,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *courseService) Import(ctx context.Context, filePath string, opts ImportOptions) (*ImportResult, error) {
	ci, err := importer.LoadCourseFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.importCourse(ctx, ci, opts, filePath)
}

func (s *courseService) ImportFromSchema(ctx context.Context, ci *importer.CourseImport, opts ImportOptions) (*ImportResult, error) {
	return s.importCourse(ctx, ci, opts, "")
}

func (s *courseService) importCourse(ctx context.Context, ci *importer.CourseImport, opts ImportOptions, source string) (result *ImportResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"videos": len(ci.Videos)}
	defer func() { observe(ctx, s.observer, "import-course", startedAt, fields, err) }()

	if name := strings.TrimSpace(opts.Name); name != "" {
		ci.Name = name
	}
	if err = importer.Validate(ci); err != nil {
		return nil, err
	}

	course := importer.Convert(ci)
	if source != "" {
		if abs, absErr := filepath.Abs(source); absErr == nil {
			source = abs
		}
		course.SourcePath = source
	}
	fields["course"] = course.Name

	if !opts.SkipStructure {
		if course.Structure, err = structurer.StructureWithDurations(course.RawTitles, course.Durations); err != nil {
			return nil, fmt.Errorf("structuring course: %w", err)
		}
		fields["modules"] = len(course.Structure.Modules)
		fields["structuring"] = string(course.Structure.Metadata.ProcessingStrategyUsed)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteCourseRepo(tx).Create(ctx, course)
	})
	if err != nil {
		return nil, fmt.Errorf("creating course: %w", err)
	}

	result = &ImportResult{Course: course, VideoCount: len(course.RawTitles)}
	if course.Structure != nil {
		result.ModuleCount = len(course.Structure.Modules)
	}
	return result, nil
}

func (s *courseService) List(ctx context.Context) ([]repository.CourseSummary, error) {
	return s.courses.List(ctx)
}

func (s *courseService) GetByID(ctx context.Context, id string) (*domain.Course, error) {
	course, err := s.courses.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading course %s: %w", id, err)
	}
	return course, nil
}

func (s *courseService) Structure(ctx context.Context, id string) (course *domain.Course, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"course_id": id}
	defer func() { observe(ctx, s.observer, "structure-course", startedAt, fields, err) }()

	course, err = s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	cs, err := structurer.StructureWithDurations(course.RawTitles, course.Durations)
	if err != nil {
		return nil, fmt.Errorf("structuring course: %w", err)
	}
	fields["modules"] = len(cs.Modules)
	fields["structuring"] = string(cs.Metadata.ProcessingStrategyUsed)

	now := time.Now().UTC()
	if err = s.courses.UpdateStructure(ctx, id, cs, now); err != nil {
		return nil, err
	}
	course.Structure = cs
	course.UpdatedAt = now
	return course, nil
}

func (s *courseService) Delete(ctx context.Context, id string) error {
	if err := s.courses.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting course %s: %w", id, err)
	}
	return nil
}
