package itemlist

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/roadtrack/internal/roadmap"
	"github.com/abhisek/roadtrack/internal/router"
	"github.com/abhisek/roadtrack/internal/screen"
	"github.com/abhisek/roadtrack/internal/screens/itemdetail"
	"github.com/abhisek/roadtrack/internal/tracker"
	"github.com/abhisek/roadtrack/internal/ui/components"
	"github.com/abhisek/roadtrack/internal/ui/layout"
	"github.com/abhisek/roadtrack/internal/ui/theme"
)

// Tracker is the part of tracker.Tracker the list needs.
type Tracker interface {
	Active() (*roadmap.Roadmap, bool)
	Progress() int
	UpdateItem(item roadmap.Item)
	ExportActive(filename string) (string, error)
}

type exportDoneMsg struct {
	path string
	err  error
}

// headerLines is the number of lines View spends above the item rows.
const headerLines = 5

// ListScreen shows the items of the active roadmap.
type ListScreen struct {
	tracker      Tracker
	roadmap      *roadmap.Roadmap
	cursor       int
	scrollOffset int

	message string
	isError bool
}

var _ screen.Screen = (*ListScreen)(nil)
var _ screen.Resumer = (*ListScreen)(nil)
var _ screen.KeyHintProvider = (*ListScreen)(nil)

// New creates a ListScreen over the tracker's active roadmap.
func New(t Tracker) *ListScreen {
	s := &ListScreen{tracker: t}
	s.refresh()
	return s
}

func (s *ListScreen) refresh() {
	rm, ok := s.tracker.Active()
	if !ok {
		rm = &roadmap.Roadmap{}
	}
	s.roadmap = rm
	if s.cursor >= len(rm.Items) {
		s.cursor = max(len(rm.Items)-1, 0)
	}
}

// Cursor returns the index of the selected item.
func (s *ListScreen) Cursor() int {
	return s.cursor
}

func (s *ListScreen) Init() tea.Cmd {
	return nil
}

// Resume reloads the roadmap after the detail screen is closed.
func (s *ListScreen) Resume() tea.Cmd {
	s.refresh()
	return nil
}

func (s *ListScreen) Title() string {
	if s.roadmap.Name == "" {
		return "Roadmap"
	}
	return s.roadmap.Name
}

// KeyHints returns the key binding hints for the footer.
func (s *ListScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open"},
		{Key: "s", Description: "Cycle status"},
		{Key: "x", Description: "Export"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ListScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case exportDoneMsg:
		if msg.err != nil {
			s.message, s.isError = tracker.UserMessage(msg.err), true
		} else {
			s.message, s.isError = "Exported to "+msg.path, false
		}
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "up", "k":
			s.moveCursor(-1)
		case "down", "j":
			s.moveCursor(1)
		case "home", "g":
			s.cursor = 0
		case "end", "G":
			s.cursor = max(len(s.roadmap.Items)-1, 0)
		case "enter":
			return s, s.openItem()
		case "s":
			s.cycleStatus()
		case "x":
			return s, s.export()
		case "q":
			return s, router.Pop()
		}
	}
	return s, nil
}

func (s *ListScreen) moveCursor(delta int) {
	next := s.cursor + delta
	if next >= 0 && next < len(s.roadmap.Items) {
		s.cursor = next
	}
}

func (s *ListScreen) selected() (roadmap.Item, bool) {
	if s.cursor < 0 || s.cursor >= len(s.roadmap.Items) {
		return roadmap.Item{}, false
	}
	return s.roadmap.Items[s.cursor], true
}

func (s *ListScreen) openItem() tea.Cmd {
	it, ok := s.selected()
	if !ok {
		return nil
	}
	return router.Push(itemdetail.New(s.tracker, it))
}

func (s *ListScreen) cycleStatus() {
	it, ok := s.selected()
	if !ok {
		return
	}
	it.Status = it.Status.Next()
	s.tracker.UpdateItem(it)
	s.message = ""
	s.refresh()
}

func (s *ListScreen) export() tea.Cmd {
	t := s.tracker
	return func() tea.Msg {
		path, err := t.ExportActive("")
		return exportDoneMsg{path: path, err: err}
	}
}

// adjustScroll ensures the cursor is visible within the viewport.
func (s *ListScreen) adjustScroll(rows int) {
	if rows <= 0 {
		return
	}
	if s.cursor < s.scrollOffset {
		s.scrollOffset = s.cursor
	}
	if s.cursor >= s.scrollOffset+rows {
		s.scrollOffset = s.cursor - rows + 1
	}
}

func (s *ListScreen) View(width, height int) string {
	var lines []string

	lines = append(lines, theme.Subtitle.Width(width-4).MaxHeight(1).PaddingLeft(2).Render(s.roadmap.Description))

	counts := roadmap.CountByStatus(s.roadmap)
	bar := components.NewProgressBar("Progress", s.tracker.Progress(), true, min(width-4, 60))
	lines = append(lines, "  "+bar.View())
	lines = append(lines, theme.Hint.Render(fmt.Sprintf("  %d completed, %d in progress, %d not started",
		counts[roadmap.StatusCompleted], counts[roadmap.StatusInProgress], counts[roadmap.StatusNotStarted])))

	switch {
	case s.message != "" && s.isError:
		lines = append(lines, "  "+theme.ErrorText.Render(s.message))
	case s.message != "":
		lines = append(lines, "  "+theme.SuccessText.Render(s.message))
	default:
		lines = append(lines, "")
	}
	lines = append(lines, "")

	rows := height - headerLines
	s.adjustScroll(rows)

	for i, it := range s.roadmap.Items {
		if i < s.scrollOffset {
			continue
		}
		if i >= s.scrollOffset+rows {
			break
		}
		lines = append(lines, s.renderRow(it, i == s.cursor, width))
	}

	return strings.Join(lines, "\n")
}

func (s *ListScreen) renderRow(it roadmap.Item, selected bool, width int) string {
	labelWidth := 12
	dueWidth := 11
	due := it.DueDate
	if layout.IsCompactWidth(width) {
		dueWidth, due = 0, ""
	}
	nameWidth := max(width-4-2-labelWidth-dueWidth-6, 10)

	name := truncate(it.Name, nameWidth)

	nameStyle := theme.Unselected
	cursor := "  "
	if selected {
		nameStyle = theme.Selected
		cursor = "▸ "
	}

	return fmt.Sprintf("  %s%s %s  %s  %s",
		cursor,
		theme.StatusStyle(it.Status).Render(it.Status.Icon()),
		nameStyle.Render(fmt.Sprintf("%-*s", nameWidth, name)),
		theme.StatusStyle(it.Status).Render(fmt.Sprintf("%-*s", labelWidth, it.Status.Label())),
		theme.Hint.Render(due),
	)
}

// truncate shortens s to at most width cells, marking the cut with an
// ellipsis.
func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
