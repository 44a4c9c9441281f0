package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/coursepilot/internal/domain"
	"github.com/alexanderramin/coursepilot/internal/repository"
)

const titleWidth = 48

// FormatCourseList renders the course table shown by "course list".
func FormatCourseList(courses []repository.CourseSummary) string {
	rows := make([][]string, 0, len(courses))
	for _, c := range courses {
		structured := StyleGreen.Render("yes")
		if !c.Structured {
			structured = StyleYellow.Render("no")
		}
		rows = append(rows, []string{
			Dim(ShortID(c.ID)),
			Truncate(c.Name, titleWidth),
			strconv.Itoa(c.VideoCount),
			structured,
			strconv.Itoa(c.PlanCount),
			c.CreatedAt.Local().Format("2006-01-02"),
		})
	}
	return RenderTable(
		[]string{"ID", "Name", "Videos", "Structured", "Plans", "Imported"},
		rows,
		AlignLeft, AlignLeft, AlignRight, AlignLeft, AlignRight,
	)
}

// FormatCourseDetail renders a course summary box followed by its module tree.
func FormatCourseDetail(c *domain.Course) string {
	pairs := [][2]string{
		{"ID", c.ID},
		{"Videos", strconv.Itoa(len(c.RawTitles))},
	}
	if c.SourcePath != "" {
		pairs = append(pairs, [2]string{"Source", c.SourcePath})
	}

	if !c.IsStructured() {
		pairs = append(pairs, [2]string{"Structure", StyleYellow.Render("not structured (run: course structure " + ShortID(c.ID) + ")")})
		var b strings.Builder
		b.WriteString(RenderBox(c.Name, KeyValue(pairs)))
		b.WriteString("\n\n")
		for i, title := range c.RawTitles {
			fmt.Fprintf(&b, "%s %s\n", Dim(fmt.Sprintf("#%d", i+1)), title)
		}
		return b.String()
	}

	cs := c.Structure
	md := cs.Metadata
	pairs = append(pairs,
		[2]string{"Modules", strconv.Itoa(len(cs.Modules))},
		[2]string{"Duration", domain.FormatDuration(md.TotalDuration)},
		[2]string{"Difficulty", DifficultyStyle(md.DifficultyLevel).Render(md.DifficultyLevel.Label())},
		[2]string{"Content", string(md.ContentTypeDetected)},
		[2]string{"Structuring", string(md.ProcessingStrategyUsed)},
	)
	if cl := cs.Clustering; cl != nil && len(cl.ContentTopics) > 0 {
		topics := make([]string, 0, len(cl.ContentTopics))
		for _, t := range cl.ContentTopics {
			topics = append(topics, fmt.Sprintf("%s (%d)", t.Keyword, t.VideoCount))
		}
		pairs = append(pairs, [2]string{"Topics", strings.Join(topics, ", ")})
	}

	var b strings.Builder
	b.WriteString(RenderBox(c.Name, KeyValue(pairs)))
	b.WriteString("\n\n")
	b.WriteString(RenderTree(moduleTree(cs)))
	return b.String()
}

func moduleTree(cs *domain.CourseStructure) []TreeItem {
	var items []TreeItem
	for _, m := range cs.Modules {
		detail := domain.FormatDuration(m.TotalDuration)
		if m.Difficulty != domain.DifficultyUnknown {
			detail += " · " + m.Difficulty.Label()
		}
		items = append(items, TreeItem{Title: m.Title, Detail: detail})
		for i, s := range m.Sections {
			items = append(items, TreeItem{
				Title:  Truncate(s.Title, titleWidth),
				Seq:    s.VideoIndex + 1,
				Level:  1,
				IsLast: i == len(m.Sections)-1,
				Detail: domain.FormatDuration(s.Duration),
			})
		}
	}
	return items
}
