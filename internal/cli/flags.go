package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/coursepilot/internal/domain"
	"github.com/alexanderramin/coursepilot/internal/service"
	"github.com/spf13/pflag"
)

const strategyAuto = "auto"

// strategyFlag is a pflag.Value accepting a distribution strategy name or
// "auto" to let the selector choose.
type strategyFlag struct {
	value domain.DistributionStrategy
}

var _ pflag.Value = (*strategyFlag)(nil)

func (f *strategyFlag) String() string {
	if f.value == "" {
		return strategyAuto
	}
	return string(f.value)
}

func (f *strategyFlag) Set(s string) error {
	if strings.EqualFold(strings.TrimSpace(s), strategyAuto) {
		f.value = ""
		return nil
	}
	st, ok := domain.ParseStrategy(strings.TrimSpace(s))
	if !ok {
		return fmt.Errorf("unknown strategy %q (valid: %s)", s, strategyNames())
	}
	f.value = st
	return nil
}

func (f *strategyFlag) Type() string { return "strategy" }

func strategyNames() string {
	names := []string{strategyAuto}
	for _, st := range domain.AllStrategies {
		names = append(names, string(st))
	}
	return strings.Join(names, ", ")
}

// formatFlag is a pflag.Value for export formats.
type formatFlag struct {
	value service.ExportFormat
}

var _ pflag.Value = (*formatFlag)(nil)

func (f *formatFlag) String() string { return string(f.value) }

func (f *formatFlag) Set(s string) error {
	format, err := service.ParseExportFormat(s)
	if err != nil {
		return err
	}
	f.value = format
	return nil
}

func (f *formatFlag) Type() string { return "format" }

// settingsFlags are the plan-settings flags shared by "plan new",
// "plan recommend" and "plan regenerate". Only flags the user set override
// the base settings.
type settingsFlags struct {
	start           string
	sessionsPerWeek int
	sessionLength   int
	weekends        bool
	strategy        strategyFlag
	maxSession      int
	experience      string
}

func (f *settingsFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.start, "start", "", "First study day (YYYY-MM-DD or \"today\")")
	fs.IntVar(&f.sessionsPerWeek, "sessions-per-week", 0, "Study sessions per week, 1-7 (default from config)")
	fs.IntVar(&f.sessionLength, "session-length", 0, "Session length in minutes, at least 15 (default from config)")
	fs.BoolVar(&f.weekends, "weekends", false, "Allow sessions on Saturday and Sunday")
	fs.Var(&f.strategy, "strategy", "Distribution strategy: "+strategyNames())
	fs.IntVar(&f.maxSession, "max-session", 0, "Hard cap on a session in minutes, 15-300")
	fs.StringVar(&f.experience, "experience", "", "Your experience level: beginner, intermediate, advanced or expert")
}

// apply returns base with every changed flag applied. base is not modified.
func (f *settingsFlags) apply(fs *pflag.FlagSet, base domain.PlanSettings, today time.Time) (domain.PlanSettings, error) {
	s := base
	if base.Advanced != nil {
		adv := *base.Advanced
		s.Advanced = &adv
	}

	if fs.Changed("start") {
		start, err := parseStartDate(f.start, today)
		if err != nil {
			return s, err
		}
		s.StartDate = start
	}
	if fs.Changed("sessions-per-week") {
		s.SessionsPerWeek = f.sessionsPerWeek
	}
	if fs.Changed("session-length") {
		s.SessionLengthMinutes = f.sessionLength
	}
	if fs.Changed("weekends") {
		s.IncludeWeekends = f.weekends
	}

	advanced := func() *domain.AdvancedSettings {
		if s.Advanced == nil {
			adv := domain.DefaultAdvancedSettings()
			s.Advanced = &adv
		}
		return s.Advanced
	}
	if fs.Changed("strategy") {
		adv := advanced()
		if f.strategy.value == "" {
			adv.Strategy = nil
			adv.SpacedRepetitionEnabled = false
		} else {
			st := f.strategy.value
			adv.Strategy = &st
			adv.SpacedRepetitionEnabled = st == domain.StrategySpacedRepetition
		}
	}
	if fs.Changed("max-session") {
		limit := f.maxSession
		advanced().MaxSessionDurationMinutes = &limit
	}
	if fs.Changed("experience") {
		level, ok := domain.ValidDifficultyLevels[strings.ToLower(strings.TrimSpace(f.experience))]
		if !ok {
			return s, fmt.Errorf("unknown experience level %q (valid: beginner, intermediate, advanced, expert)", f.experience)
		}
		advanced().UserExperienceLevel = level
	}
	return s, nil
}

func parseStartDate(s string, today time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "today") {
		return today, nil
	}
	t, err := time.ParseInLocation(time.DateOnly, s, today.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid start date %q: use YYYY-MM-DD", s)
	}
	return t, nil
}

// startOfDay truncates t to midnight in its own location.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
