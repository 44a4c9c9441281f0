package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/coursepilot/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// DifficultyStyle colors a difficulty level from green (easy) to red (hard).
func DifficultyStyle(level domain.DifficultyLevel) lipgloss.Style {
	switch level {
	case domain.DifficultyBeginner:
		return StyleGreen
	case domain.DifficultyIntermediate:
		return StyleBlue
	case domain.DifficultyAdvanced:
		return StyleYellow
	case domain.DifficultyExpert:
		return StyleRed
	case domain.DifficultyMixed:
		return StylePurple
	default:
		return StyleDim
	}
}

// KindBadge returns a short colored label for a plan item kind.
func KindBadge(kind domain.ItemKind) string {
	switch kind {
	case domain.ItemRepetition:
		return StylePurple.Render("↻ repeat")
	case domain.ItemReview:
		return StyleBlue.Render("◆ review")
	case domain.ItemRest:
		return StyleDim.Render("○ rest")
	default:
		return StyleFg.Render("● study")
	}
}

// CheckMark renders a done marker, or a dim placeholder when not done.
func CheckMark(done bool) string {
	if done {
		return StyleGreen.Render("✔")
	}
	return StyleDim.Render("·")
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
