package importer

import (
	"fmt"
	"math"
	"strings"
)

// ValidationError collects every problem found in an import file.
type ValidationError struct {
	Problems []error
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "import validation failed (%d errors):", len(e.Problems))
	for _, p := range e.Problems {
		b.WriteString("\n  - ")
		b.WriteString(p.Error())
	}
	return b.String()
}

// ValidateCourseImport checks the import for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateCourseImport(ci *CourseImport) []error {
	var errs []error

	if strings.TrimSpace(ci.Name) == "" {
		errs = append(errs, fmt.Errorf("name is required"))
	}
	if len(ci.Videos) == 0 {
		errs = append(errs, fmt.Errorf("videos: at least one video is required"))
	}
	for i, v := range ci.Videos {
		if strings.TrimSpace(v.Title) == "" {
			errs = append(errs, fmt.Errorf("videos[%d].title: must not be empty", i))
		}
		if v.DurationSeconds < 0 {
			errs = append(errs, fmt.Errorf("videos[%d].duration_seconds: must not be negative", i))
		}
		if math.IsNaN(v.DurationSeconds) || math.IsInf(v.DurationSeconds, 0) {
			errs = append(errs, fmt.Errorf("videos[%d].duration_seconds: must be a finite number", i))
		}
	}

	return errs
}

// Validate wraps ValidateCourseImport in a *ValidationError, or returns nil.
func Validate(ci *CourseImport) error {
	if errs := ValidateCourseImport(ci); len(errs) > 0 {
		return &ValidationError{Problems: errs}
	}
	return nil
}
