package importer

import (
	"strings"
	"time"

	"github.com/alexanderramin/coursepilot/internal/domain"
	"github.com/google/uuid"
)

// Convert transforms a validated CourseImport into an unstructured course
// ready for persistence. Call Validate first; Convert assumes the import is
// valid.
func Convert(ci *CourseImport) *domain.Course {
	now := time.Now().UTC()

	course := &domain.Course{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(ci.Name),
		RawTitles: make([]string, len(ci.Videos)),
		CreatedAt: now,
		UpdatedAt: now,
	}

	hasDurations := false
	durations := make([]time.Duration, len(ci.Videos))
	for i, v := range ci.Videos {
		course.RawTitles[i] = strings.TrimSpace(v.Title)
		if v.DurationSeconds > 0 {
			durations[i] = time.Duration(v.DurationSeconds * float64(time.Second))
			hasDurations = true
		}
	}
	if hasDurations {
		course.Durations = durations
	}
	return course
}
