package cli

import (
	"context"
	"fmt"
	"strings"
)

// resolveCourseID accepts a full course UUID or a unique prefix of one.
func resolveCourseID(ctx context.Context, app *App, input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("course ID is required")
	}

	courses, err := app.Courses.List(ctx)
	if err != nil {
		return "", err
	}
	ids := make([]string, len(courses))
	for i, c := range courses {
		ids[i] = c.ID
	}
	return matchID("course", ids, input)
}

// resolvePlanID accepts a full plan UUID or a unique prefix of one, across
// every course.
func resolvePlanID(ctx context.Context, app *App, input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("plan ID is required")
	}

	courses, err := app.Courses.List(ctx)
	if err != nil {
		return "", err
	}
	var ids []string
	for _, c := range courses {
		plans, err := app.Plans.List(ctx, c.ID)
		if err != nil {
			return "", err
		}
		for _, p := range plans {
			ids = append(ids, p.ID)
		}
	}
	return matchID("plan", ids, input)
}

func matchID(entity string, ids []string, input string) (string, error) {
	lower := strings.ToLower(input)
	for _, id := range ids {
		if id == lower {
			return id, nil
		}
	}

	var matches []string
	for _, id := range ids {
		if strings.HasPrefix(id, lower) {
			matches = append(matches, id)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%s not found: %q", entity, input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%s ID prefix %q is ambiguous (%d matches)", entity, input, len(matches))
	}
}
