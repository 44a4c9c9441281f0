package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/coursepilot/internal/cli/formatter"
	"github.com/alexanderramin/coursepilot/internal/domain"
	"github.com/alexanderramin/coursepilot/internal/service"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type browseKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Detail key.Binding
	Filter key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func defaultBrowseKeyMap() browseKeyMap {
	return browseKeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle: key.NewBinding(key.WithKeys(" ", "space", "x"), key.WithHelp("space", "toggle done")),
		Detail: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "videos")),
		Filter: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "pending only")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	}
}

func (k browseKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Detail, k.Help, k.Quit}
}

func (k browseKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Toggle, k.Detail, k.Filter},
		{k.Help, k.Quit},
	}
}

// itemToggledMsg carries the result of a completion change.
type itemToggledMsg struct {
	plan *domain.Plan
	item int
	err  error
}

// planBrowser lists the sessions of a plan and toggles their completion.
type planBrowser struct {
	ctx    context.Context
	plans  service.PlanService
	course *domain.Course
	plan   *domain.Plan

	keys browseKeyMap
	help help.Model

	cursor      int // position within visible()
	offset      int
	width       int
	height      int
	pendingOnly bool
	showDetail  bool
	status      string
	err         error
}

func newPlanBrowser(ctx context.Context, plans service.PlanService, course *domain.Course, plan *domain.Plan) *planBrowser {
	b := &planBrowser{
		ctx:    ctx,
		plans:  plans,
		course: course,
		plan:   plan,
		keys:   defaultBrowseKeyMap(),
		help:   help.New(),
	}
	if next := formatter.NextPending(plan); next >= 0 {
		b.cursor = next
	}
	return b
}

func (b *planBrowser) Init() tea.Cmd { return nil }

// visible returns the plan indices shown under the current filter.
func (b *planBrowser) visible() []int {
	out := make([]int, 0, len(b.plan.Items))
	for i, it := range b.plan.Items {
		if b.pendingOnly && it.Completed {
			continue
		}
		out = append(out, i)
	}
	return out
}

// selected returns the plan index under the cursor, or -1.
func (b *planBrowser) selected() int {
	vis := b.visible()
	if b.cursor < 0 || b.cursor >= len(vis) {
		return -1
	}
	return vis[b.cursor]
}

func (b *planBrowser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.width, b.height = msg.Width, msg.Height
		b.help.Width = msg.Width
		b.clampScroll()
		return b, nil

	case itemToggledMsg:
		if msg.err != nil {
			b.err = msg.err
			return b, nil
		}
		b.err = nil
		b.plan = msg.plan
		state := "reopened"
		if b.plan.Items[msg.item].Completed {
			state = "done"
		}
		b.status = fmt.Sprintf("Session %d %s", msg.item+1, state)
		b.clampCursor()
		return b, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, b.keys.Quit):
			return b, tea.Quit
		case key.Matches(msg, b.keys.Up):
			if b.cursor > 0 {
				b.cursor--
			}
		case key.Matches(msg, b.keys.Down):
			if b.cursor < len(b.visible())-1 {
				b.cursor++
			}
		case key.Matches(msg, b.keys.Toggle):
			if idx := b.selected(); idx >= 0 {
				return b, b.toggle(idx)
			}
		case key.Matches(msg, b.keys.Detail):
			b.showDetail = !b.showDetail
		case key.Matches(msg, b.keys.Filter):
			current := b.selected()
			b.pendingOnly = !b.pendingOnly
			b.cursor = 0
			for i, idx := range b.visible() {
				if idx >= current {
					b.cursor = i
					break
				}
			}
			b.clampCursor()
		case key.Matches(msg, b.keys.Help):
			b.help.ShowAll = !b.help.ShowAll
		}
		b.clampScroll()
	}
	return b, nil
}

func (b *planBrowser) toggle(idx int) tea.Cmd {
	plans, ctx, planID := b.plans, b.ctx, b.plan.ID
	completed := !b.plan.Items[idx].Completed
	return func() tea.Msg {
		plan, err := plans.SetCompleted(ctx, planID, idx, completed)
		return itemToggledMsg{plan: plan, item: idx, err: err}
	}
}

func (b *planBrowser) clampCursor() {
	n := len(b.visible())
	if b.cursor >= n {
		b.cursor = n - 1
	}
	if b.cursor < 0 {
		b.cursor = 0
	}
}

// listHeight is the number of item rows that fit. Zero means unbounded.
func (b *planBrowser) listHeight() int {
	if b.height == 0 {
		return 0
	}
	reserved := 5
	if b.showDetail {
		reserved += 8
	}
	if h := b.height - reserved; h > 1 {
		return h
	}
	return 1
}

func (b *planBrowser) clampScroll() {
	h := b.listHeight()
	if h == 0 {
		b.offset = 0
		return
	}
	if b.cursor < b.offset {
		b.offset = b.cursor
	}
	if b.cursor >= b.offset+h {
		b.offset = b.cursor - h + 1
	}
}

var (
	browseCursorStyle = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	browseDoneStyle   = lipgloss.NewStyle().Foreground(formatter.ColorDim).Strikethrough(true)
	browseBadgeStyle  = lipgloss.NewStyle().Width(9)
)

func (b *planBrowser) View() string {
	var sb strings.Builder

	done, total, pct := b.plan.Progress()
	sb.WriteString(formatter.Bold(b.course.Name))
	sb.WriteString("  ")
	sb.WriteString(formatter.RenderProgress(pct/100, 20))
	sb.WriteString(fmt.Sprintf(" %d/%d", done, total))
	if b.pendingOnly {
		sb.WriteString(formatter.Dim("  [pending only]"))
	}
	sb.WriteString("\n\n")

	vis := b.visible()
	if len(vis) == 0 {
		sb.WriteString(formatter.Dim("  All sessions done."))
		sb.WriteString("\n")
	}
	end := len(vis)
	if h := b.listHeight(); h > 0 && b.offset+h < end {
		end = b.offset + h
	}
	titleWidth := 48
	if b.width > 0 {
		titleWidth = max(b.width-40, 12)
	}
	for row := b.offset; row < end; row++ {
		idx := vis[row]
		it := b.plan.Items[idx]

		title := formatter.Truncate(formatter.ItemTitle(it), titleWidth)
		if it.Completed {
			title = browseDoneStyle.Render(title)
		}
		line := fmt.Sprintf("%s %3d  %s  %s %s",
			formatter.CheckMark(it.Completed), idx+1, it.Date.Format("Mon Jan 02"), browseBadgeStyle.Render(formatter.KindBadge(it.Kind)), title)

		if row == b.cursor {
			sb.WriteString(browseCursorStyle.Render("> "))
		} else {
			sb.WriteString("  ")
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	if b.showDetail {
		if idx := b.selected(); idx >= 0 {
			sb.WriteString("\n")
			sb.WriteString(formatter.FormatItemDetail(b.course, b.plan, idx))
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\n")
	switch {
	case b.err != nil:
		sb.WriteString(formatter.StyleRed.Render("Error: " + b.err.Error()))
		sb.WriteString("\n")
	case b.status != "":
		sb.WriteString(formatter.StyleGreen.Render(b.status))
		sb.WriteString("\n")
	}
	sb.WriteString(b.help.View(b.keys))
	return sb.String()
}
