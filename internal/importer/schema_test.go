package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, DetectFormat("course.JSON"))
	assert.Equal(t, FormatYAML, DetectFormat("a/b/course.yml"))
	assert.Equal(t, FormatYAML, DetectFormat("course.yaml"))
	assert.Equal(t, FormatCSV, DetectFormat("course.csv"))
	assert.Equal(t, FormatText, DetectFormat("course.txt"))
	assert.Equal(t, FormatText, DetectFormat("playlist"))
}

func TestParse_Text(t *testing.T) {
	in := `# Go course
Introduction | 5:00

Variables and Types | 754s
Functions
Closures | 1:02:03
`
	ci, err := Parse(strings.NewReader(in), FormatText)
	require.NoError(t, err)
	require.Len(t, ci.Videos, 4)

	assert.Equal(t, VideoImport{Title: "Introduction", DurationSeconds: 300}, ci.Videos[0])
	assert.Equal(t, VideoImport{Title: "Variables and Types", DurationSeconds: 754}, ci.Videos[1])
	assert.Equal(t, VideoImport{Title: "Functions"}, ci.Videos[2])
	assert.Equal(t, 3723.0, ci.Videos[3].DurationSeconds)
}

func TestParse_TextBadDuration(t *testing.T) {
	_, err := Parse(strings.NewReader("One\nTwo | soon\n"), FormatText)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestParse_JSON(t *testing.T) {
	in := `{"name": "Algorithms", "videos": [{"title": "Sorting", "duration_seconds": 600}, {"title": "Graphs"}]}`
	ci, err := Parse(strings.NewReader(in), FormatJSON)
	require.NoError(t, err)

	assert.Equal(t, "Algorithms", ci.Name)
	require.Len(t, ci.Videos, 2)
	assert.Equal(t, 600.0, ci.Videos[0].DurationSeconds)
	assert.Zero(t, ci.Videos[1].DurationSeconds)
}

func TestParse_YAML(t *testing.T) {
	in := `name: Algorithms
videos:
  - title: Sorting
    duration_seconds: 600
  - title: Graphs
`
	ci, err := Parse(strings.NewReader(in), FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, "Algorithms", ci.Name)
	require.Len(t, ci.Videos, 2)
	assert.Equal(t, "Graphs", ci.Videos[1].Title)
}

func TestParse_EmptyYAML(t *testing.T) {
	ci, err := Parse(strings.NewReader(""), FormatYAML)
	require.NoError(t, err)
	assert.Empty(t, ci.Videos)
}

func TestParse_CSV(t *testing.T) {
	in := "title,duration_seconds\nSorting,600\n\"Graphs, part 1\",12:00\nTrees\n"
	ci, err := Parse(strings.NewReader(in), FormatCSV)
	require.NoError(t, err)
	require.Len(t, ci.Videos, 3)

	assert.Equal(t, VideoImport{Title: "Sorting", DurationSeconds: 600}, ci.Videos[0])
	assert.Equal(t, VideoImport{Title: "Graphs, part 1", DurationSeconds: 720}, ci.Videos[1])
	assert.Equal(t, VideoImport{Title: "Trees"}, ci.Videos[2])
}

func TestParse_CSVWithoutHeader(t *testing.T) {
	ci, err := Parse(strings.NewReader("Sorting,600\nGraphs,60\n"), FormatCSV)
	require.NoError(t, err)
	assert.Len(t, ci.Videos, 2)
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		err  bool
	}{
		{"", 0, false},
		{"90", 90, false},
		{"1.5", 1.5, false},
		{"12:34", 754, false},
		{"1:00:00", 3600, false},
		{"12m", 720, false},
		{"1h2m", 3720, false},
		{"1:2:3:4", 0, true},
		{"a:b", 0, true},
		{"later", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseDuration(tt.in)
		if tt.err {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestLoadCourseFile_NameFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rust-intro.txt")
	require.NoError(t, os.WriteFile(path, []byte("Hello\nWorld\n"), 0o644))

	ci, err := LoadCourseFile(path)
	require.NoError(t, err)
	assert.Equal(t, "rust-intro", ci.Name)
	assert.Len(t, ci.Videos, 2)
}

func TestLoadCourseFile_Missing(t *testing.T) {
	_, err := LoadCourseFile(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
