package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a progress bar like [████░░░░] 45%.
// The bar is colored based on percentage: green >66%, yellow 33-66%, red <33%.
func RenderProgress(pct float64, width int) string {
	pct = min(max(pct, 0), 1)
	width = max(width, 2)

	filled := min(int(pct*float64(width)), width)
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	if pct < 0.33 {
		style = StyleRed
	} else if pct < 0.66 {
		style = StyleYellow
	}
	return fmt.Sprintf("[%s] %3.0f%%", style.Render(bar), pct*100)
}

// RenderScore renders a 0..1 quality score as a five-star meter.
func RenderScore(score float64) string {
	score = min(max(score, 0), 1)
	stars := int(score*5 + 0.5)
	meter := strings.Repeat("★", stars) + strings.Repeat("☆", 5-stars)

	style := StyleGreen
	if score < 0.4 {
		style = StyleRed
	} else if score < 0.7 {
		style = StyleYellow
	}
	return fmt.Sprintf("%s %.2f", style.Render(meter), score)
}
