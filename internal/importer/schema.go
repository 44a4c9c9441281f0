package importer

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// CourseImport is the on-disk shape of a course: a name and its videos in
// playlist order.
type CourseImport struct {
	Name   string        `json:"name" yaml:"name"`
	Videos []VideoImport `json:"videos" yaml:"videos"`
}

// VideoImport is one video. A zero duration means unknown.
type VideoImport struct {
	Title           string  `json:"title" yaml:"title"`
	DurationSeconds float64 `json:"duration_seconds,omitempty" yaml:"duration_seconds,omitempty"`
}

type Format string

const (
	FormatText Format = "txt"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCSV  Format = "csv"
)

// DetectFormat maps a file extension to an import format. Unknown
// extensions are read as plain text.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".csv":
		return FormatCSV
	default:
		return FormatText
	}
}

// LoadCourseFile reads and parses a course file. The course name defaults
// to the file name without its extension.
func LoadCourseFile(path string) (*CourseImport, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	ci, err := Parse(f, DetectFormat(path))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	if strings.TrimSpace(ci.Name) == "" {
		ci.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return ci, nil
}

// Parse decodes a course from r in the given format.
func Parse(r io.Reader, format Format) (*CourseImport, error) {
	switch format {
	case FormatJSON:
		var ci CourseImport
		if err := json.NewDecoder(r).Decode(&ci); err != nil {
			return nil, fmt.Errorf("decoding json: %w", err)
		}
		return &ci, nil
	case FormatYAML:
		var ci CourseImport
		if err := yaml.NewDecoder(r).Decode(&ci); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decoding yaml: %w", err)
		}
		return &ci, nil
	case FormatCSV:
		return parseCSV(r)
	default:
		return parseText(r)
	}
}

// parseText reads one title per line. Blank lines and lines starting with
// '#' are skipped. A trailing "| <duration>" sets the video length.
func parseText(r io.Reader) (*CourseImport, error) {
	ci := &CourseImport{}
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		v := VideoImport{Title: text}
		if i := strings.LastIndex(text, "|"); i >= 0 {
			secs, err := ParseDuration(strings.TrimSpace(text[i+1:]))
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			v.Title = strings.TrimSpace(text[:i])
			v.DurationSeconds = secs
		}
		ci.Videos = append(ci.Videos, v)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return ci, nil
}

// parseCSV reads title[,duration] rows. A first row whose first cell is
// "title" is treated as a header.
func parseCSV(r io.Reader) (*CourseImport, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	ci := &CourseImport{}
	row := 0
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv: %w", err)
		}
		row++
		if len(rec) == 0 {
			continue
		}
		if row == 1 && strings.EqualFold(strings.TrimSpace(rec[0]), "title") {
			continue
		}
		v := VideoImport{Title: strings.TrimSpace(rec[0])}
		if len(rec) > 1 && strings.TrimSpace(rec[1]) != "" {
			secs, err := ParseDuration(strings.TrimSpace(rec[1]))
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", row, err)
			}
			v.DurationSeconds = secs
		}
		ci.Videos = append(ci.Videos, v)
	}
	return ci, nil
}

// ParseDuration accepts plain seconds ("754"), a Go duration ("12m34s",
// "754s") or a clock value ("12:34", "1:02:03") and returns seconds.
func ParseDuration(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	if secs, err := strconv.ParseFloat(s, 64); err == nil {
		return secs, nil
	}
	if strings.Contains(s, ":") {
		parts := strings.Split(s, ":")
		if len(parts) > 3 {
			return 0, fmt.Errorf("invalid duration %q", s)
		}
		total := 0
		for _, p := range parts {
			n, err := strconv.Atoi(p)
			if err != nil || n < 0 {
				return 0, fmt.Errorf("invalid duration %q", s)
			}
			total = total*60 + n
		}
		return float64(total), nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	return d.Seconds(), nil
}
