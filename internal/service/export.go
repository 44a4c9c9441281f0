package service

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/coursepilot/internal/domain"
	"github.com/jedib0t/go-pretty/v6/table"
)

type ExportFormat string

const (
	ExportCSV      ExportFormat = "csv"
	ExportMarkdown ExportFormat = "markdown"
	ExportHTML     ExportFormat = "html"
	ExportICS      ExportFormat = "ics"
)

// ExportFormats lists the accepted formats in display order.
var ExportFormats = []ExportFormat{ExportCSV, ExportMarkdown, ExportHTML, ExportICS}

// ParseExportFormat accepts a format name or a common alias ("md", "ical").
func ParseExportFormat(s string) (ExportFormat, error) {
	switch f := strings.ToLower(strings.TrimSpace(s)); f {
	case "md":
		return ExportMarkdown, nil
	case "ical", "icalendar":
		return ExportICS, nil
	case "htm":
		return ExportHTML, nil
	default:
		if slices.Contains(ExportFormats, ExportFormat(f)) {
			return ExportFormat(f), nil
		}
	}
	return "", fmt.Errorf("unknown export format %q (valid: csv, markdown, html, ics)", s)
}

// ExportPlan writes plan in the given format. course supplies titles.
func ExportPlan(w io.Writer, course *domain.Course, plan *domain.Plan, format ExportFormat) error {
	switch format {
	case ExportCSV:
		_, err := io.WriteString(w, planTable(course, plan).RenderCSV()+"\n")
		return err
	case ExportMarkdown:
		done, total, pct := plan.Progress()
		_, err := fmt.Fprintf(w, "# %s\n\nStrategy: %s · %d/%d sessions done (%.0f%%)\n\n%s\n",
			course.Name, plan.Strategy, done, total, pct, planTable(course, plan).RenderMarkdown())
		return err
	case ExportHTML:
		_, err := io.WriteString(w, planTable(course, plan).RenderHTML()+"\n")
		return err
	case ExportICS:
		return writeICS(w, course, plan)
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}

func planTable(course *domain.Course, plan *domain.Plan) table.Writer {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "Date", "Module", "Section", "Videos", "Duration", "Estimated", "Kind", "Done"})
	for i, it := range plan.Items {
		done := ""
		if it.Completed {
			done = "x"
		}
		t.AppendRow(table.Row{
			i + 1,
			it.Date.Format(time.DateOnly),
			it.ModuleTitle,
			it.SectionTitle,
			videoList(course, it.VideoIndices),
			domain.FormatDuration(it.TotalDuration),
			domain.FormatDuration(it.EstimatedCompletionTime),
			string(it.Kind),
			done,
		})
	}
	return t
}

func videoList(course *domain.Course, indices []int) string {
	titles := make([]string, len(indices))
	for i, idx := range indices {
		titles[i] = course.VideoTitle(idx)
	}
	return strings.Join(titles, "; ")
}

// writeICS emits one all-day VEVENT per plan item (RFC 5545).
func writeICS(w io.Writer, course *domain.Course, plan *domain.Plan) error {
	stamp := plan.UpdatedAt.UTC().Format("20060102T150405Z")
	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//coursepilot//study plan//EN",
		"CALSCALE:GREGORIAN",
		"X-WR-CALNAME:" + icsEscape(course.Name),
	}
	for i, it := range plan.Items {
		day := it.Date.Format("20060102")
		next := it.Date.AddDate(0, 0, 1).Format("20060102")
		summary := it.SectionTitle
		if summary == "" {
			summary = it.ModuleTitle
		}
		if it.Kind != domain.ItemStudy && it.Kind != "" {
			summary = fmt.Sprintf("[%s] %s", it.Kind, summary)
		}
		var desc strings.Builder
		desc.WriteString(it.ModuleTitle)
		desc.WriteString("\n")
		for _, idx := range it.VideoIndices {
			desc.WriteString("- ")
			desc.WriteString(course.VideoTitle(idx))
			desc.WriteString("\n")
		}
		desc.WriteString("Estimated: " + domain.FormatDuration(it.EstimatedCompletionTime))

		if it.Completed {
			summary = "✓ " + summary
		}
		lines = append(lines,
			"BEGIN:VEVENT",
			"UID:"+plan.ID+"-"+strconv.Itoa(i)+"@coursepilot",
			"DTSTAMP:"+stamp,
			"DTSTART;VALUE=DATE:"+day,
			"DTEND;VALUE=DATE:"+next,
			"SUMMARY:"+icsEscape(summary),
			"DESCRIPTION:"+icsEscape(desc.String()),
			"TRANSP:TRANSPARENT",
			"END:VEVENT",
		)
	}
	lines = append(lines, "END:VCALENDAR")

	for _, l := range lines {
		if _, err := io.WriteString(w, icsFold(l)+"\r\n"); err != nil {
			return err
		}
	}
	return nil
}

var icsEscaper = strings.NewReplacer(`\`, `\\`, ";", `\;`, ",", `\,`, "\r\n", `\n`, "\n", `\n`)

func icsEscape(s string) string {
	return icsEscaper.Replace(s)
}

// icsFold splits content lines longer than 75 octets without breaking a
// UTF-8 sequence. Continuation lines start with a single space.
func icsFold(line string) string {
	const limit = 75
	if len(line) <= limit {
		return line
	}
	var b strings.Builder
	width := limit
	for len(line) > width {
		cut := width
		for cut > 0 && !utf8Start(line[cut]) {
			cut--
		}
		b.WriteString(line[:cut])
		b.WriteString("\r\n ")
		line = line[cut:]
		width = limit - 1
	}
	b.WriteString(line)
	return b.String()
}

func utf8Start(c byte) bool {
	return c&0xC0 != 0x80
}
