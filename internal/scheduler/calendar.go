package scheduler

import (
	"time"

	"github.com/alexanderramin/coursepilot/internal/domain"
)

const day = 24 * time.Hour

// DayStep is the number of days between consecutive sessions.
func DayStep(sessionsPerWeek int) int {
	if sessionsPerWeek <= 0 {
		return 7
	}
	step := (7 + sessionsPerWeek - 1) / sessionsPerWeek
	if step < 1 {
		step = 1
	}
	return step
}

// NextSessionDate returns the session date following from.
// The walker adds calendar days without converting time zones.
func NextSessionDate(from time.Time, s domain.PlanSettings) time.Time {
	next := from.AddDate(0, 0, DayStep(s.SessionsPerWeek))
	return adjustForWeekend(next, s)
}

// FirstSessionDate returns the start date, moved to the next weekday when
// weekends are excluded.
func FirstSessionDate(s domain.PlanSettings) time.Time {
	return adjustForWeekend(s.StartDate, s)
}

// SessionDates returns n successive session dates.
func SessionDates(s domain.PlanSettings, n int) []time.Time {
	if n <= 0 {
		return nil
	}
	dates := make([]time.Time, n)
	dates[0] = FirstSessionDate(s)
	for i := 1; i < n; i++ {
		dates[i] = NextSessionDate(dates[i-1], s)
	}
	return dates
}

// ShiftDays moves t by n days and re-applies the weekend policy.
func ShiftDays(t time.Time, n int, s domain.PlanSettings) time.Time {
	return adjustForWeekend(t.AddDate(0, 0, n), s)
}

func adjustForWeekend(t time.Time, s domain.PlanSettings) time.Time {
	if s.IncludeWeekends {
		return t
	}
	for isWeekend(t) {
		t = t.AddDate(0, 0, 1)
	}
	return t
}

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// daysBetween counts whole days from a to b.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a) / day)
}
