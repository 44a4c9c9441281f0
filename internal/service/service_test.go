package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/coursepilot/internal/db"
	"github.com/alexanderramin/coursepilot/internal/importer"
	"github.com/alexanderramin/coursepilot/internal/repository"
	"github.com/alexanderramin/coursepilot/internal/testutil"
	"github.com/stretchr/testify/require"
)

// fixedNow keeps generated dates in the future relative to testutil.Monday.
var fixedNow = testutil.Monday.Add(-24 * time.Hour)

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *recordingObserver) last(t *testing.T) UseCaseEvent {
	t.Helper()
	o.mu.Lock()
	defer o.mu.Unlock()
	require.NotEmpty(t, o.events)
	return o.events[len(o.events)-1]
}

type fixture struct {
	db       *sql.DB
	courses  CourseService
	plans    PlanService
	observer *recordingObserver
}

func setupServices(t *testing.T) *fixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	return setupServicesWithUoW(t, database, db.NewSQLiteUnitOfWork(database))
}

func setupServicesWithUoW(t *testing.T, database *sql.DB, uow db.UnitOfWork) *fixture {
	t.Helper()
	courseRepo := repository.NewSQLiteCourseRepo(database)
	planRepo := repository.NewSQLitePlanRepo(database)
	obs := &recordingObserver{}

	plans := NewPlanService(courseRepo, planRepo, uow, obs)
	plans.(*planService).now = func() time.Time { return fixedNow }

	return &fixture{
		db:       database,
		courses:  NewCourseService(courseRepo, uow, obs),
		plans:    plans,
		observer: obs,
	}
}

func defaultImport() *importer.CourseImport {
	ci := &importer.CourseImport{Name: "Go from zero"}
	for _, title := range testutil.DefaultTitles {
		ci.Videos = append(ci.Videos, importer.VideoImport{Title: title, DurationSeconds: 600})
	}
	return ci
}

func (f *fixture) importDefault(t *testing.T) string {
	t.Helper()
	res, err := f.courses.ImportFromSchema(context.Background(), defaultImport(), ImportOptions{})
	require.NoError(t, err)
	return res.Course.ID
}
