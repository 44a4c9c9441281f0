package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/coursepilot/internal/cli/formatter"
	"github.com/alexanderramin/coursepilot/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// huhTheme returns a huh theme using the formatter palette.
func huhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// planFormValues backs the interactive plan settings form. Numeric fields are
// strings because huh inputs edit text.
type planFormValues struct {
	Start           string
	SessionsPerWeek string
	SessionLength   string
	Weekends        bool
	Strategy        string
}

func newPlanFormValues(s domain.PlanSettings) *planFormValues {
	v := &planFormValues{
		Start:           s.StartDate.Format(time.DateOnly),
		SessionsPerWeek: strconv.Itoa(s.SessionsPerWeek),
		SessionLength:   strconv.Itoa(s.SessionLengthMinutes),
		Weekends:        s.IncludeWeekends,
		Strategy:        strategyAuto,
	}
	if st, ok := s.StrategyOverride(); ok {
		v.Strategy = string(st)
	}
	return v
}

func newPlanSettingsForm(v *planFormValues) *huh.Form {
	strategies := []huh.Option[string]{huh.NewOption("Automatic (pick from course content)", strategyAuto)}
	for _, st := range domain.AllStrategies {
		strategies = append(strategies, huh.NewOption(st.Label(), string(st)))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Start Date (YYYY-MM-DD)").
				Value(&v.Start).
				Validate(validateDate),
			huh.NewInput().
				Title("Sessions per Week").
				Description("1 to 7").
				Value(&v.SessionsPerWeek).
				Validate(validateIntRange(1, 7)),
			huh.NewInput().
				Title("Session Length (minutes)").
				Description("At least 15").
				Value(&v.SessionLength).
				Validate(validateIntRange(15, 0)),
			huh.NewConfirm().
				Title("Study on weekends?").
				Affirmative("Yes").
				Negative("No").
				Value(&v.Weekends),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Distribution Strategy").
				Options(strategies...).
				Value(&v.Strategy),
		),
	).WithTheme(huhTheme()).WithShowHelp(false)
}

// settings returns base with the form values applied.
func (v *planFormValues) settings(base domain.PlanSettings, today time.Time) (domain.PlanSettings, error) {
	s := base
	if base.Advanced != nil {
		adv := *base.Advanced
		s.Advanced = &adv
	}

	start, err := parseStartDate(v.Start, today)
	if err != nil {
		return s, err
	}
	s.StartDate = start

	if s.SessionsPerWeek, err = strconv.Atoi(strings.TrimSpace(v.SessionsPerWeek)); err != nil {
		return s, fmt.Errorf("invalid sessions per week %q", v.SessionsPerWeek)
	}
	if s.SessionLengthMinutes, err = strconv.Atoi(strings.TrimSpace(v.SessionLength)); err != nil {
		return s, fmt.Errorf("invalid session length %q", v.SessionLength)
	}
	s.IncludeWeekends = v.Weekends

	if v.Strategy == strategyAuto || v.Strategy == "" {
		if s.Advanced != nil {
			s.Advanced.Strategy = nil
			s.Advanced.SpacedRepetitionEnabled = false
		}
		return s, nil
	}
	st, ok := domain.ParseStrategy(v.Strategy)
	if !ok {
		return s, fmt.Errorf("unknown strategy %q", v.Strategy)
	}
	if s.Advanced == nil {
		adv := domain.DefaultAdvancedSettings()
		s.Advanced = &adv
	}
	s.Advanced.Strategy = &st
	s.Advanced.SpacedRepetitionEnabled = st == domain.StrategySpacedRepetition
	return s, nil
}

func validateDate(s string) error {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "today") {
		return nil
	}
	if _, err := time.Parse(time.DateOnly, s); err != nil {
		return fmt.Errorf("use YYYY-MM-DD format")
	}
	return nil
}

// validateIntRange accepts integers in [lo, hi]. hi <= 0 means no upper bound.
func validateIntRange(lo, hi int) func(string) error {
	return func(s string) error {
		v, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("enter a number")
		}
		if v < lo || (hi > 0 && v > hi) {
			if hi > 0 {
				return fmt.Errorf("enter a number from %d to %d", lo, hi)
			}
			return fmt.Errorf("enter at least %d", lo)
		}
		return nil
	}
}
