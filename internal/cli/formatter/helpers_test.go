package formatter

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// ansiPattern matches ANSI escape sequences.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func TestRelativeDateFrom(t *testing.T) {
	now := time.Date(2026, 2, 7, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input time.Time
		want  string
	}{
		{"today", now, "Today"},
		{"today early", time.Date(2026, 2, 7, 0, 5, 0, 0, time.UTC), "Today"},
		{"tomorrow", now.Add(24 * time.Hour), "Tomorrow"},
		{"tomorrow morning", time.Date(2026, 2, 8, 6, 0, 0, 0, time.UTC), "Tomorrow"},
		{"yesterday", now.Add(-24 * time.Hour), "Yesterday"},
		{"3 days future", now.Add(3 * 24 * time.Hour), "In 3d"},
		{"3 days past", now.Add(-3 * 24 * time.Hour), "3d ago"},
		{"3 weeks future", now.Add(21 * 24 * time.Hour), "In 3w"},
		{"3 months future", now.Add(90 * 24 * time.Hour), "In 3mo"},
		{"2 weeks past", now.Add(-14 * 24 * time.Hour), "2w ago"},
		{"3 months past", now.Add(-90 * 24 * time.Hour), "3mo ago"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RelativeDateFrom(tt.input, now))
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "Hell…", Truncate("Hello world", 5))
	assert.Equal(t, "日本…", Truncate("日本語テキスト", 5), "wide runes take two cells")
	assert.Empty(t, Truncate("anything", 0))
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "0123abcd", ShortID("0123abcd-ffff-4000-8000-000000000000"))
	assert.Equal(t, "abc", ShortID("abc"))
}

func TestKeyValue_AlignsLabels(t *testing.T) {
	out := stripANSI(KeyValue([][2]string{{"ID", "x"}, {"Videos", "9"}}))
	lines := strings.Split(out, "\n")
	assert.Equal(t, []string{"ID      x", "Videos  9"}, lines)
}

func TestRenderBox_Title(t *testing.T) {
	out := stripANSI(RenderBox("my course", "body"))
	assert.Contains(t, out, "MY COURSE")
	assert.Contains(t, out, "body")
	assert.Contains(t, out, "╭")
}

func TestHeader(t *testing.T) {
	out := stripANSI(Header("Tips"))
	assert.Equal(t, "TIPS\n────", out)
}
