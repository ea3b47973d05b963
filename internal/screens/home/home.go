package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/roadtrack/internal/roadmap"
	"github.com/abhisek/roadtrack/internal/router"
	"github.com/abhisek/roadtrack/internal/screen"
	"github.com/abhisek/roadtrack/internal/screens/itemlist"
	"github.com/abhisek/roadtrack/internal/screens/placeholder"
	"github.com/abhisek/roadtrack/internal/tracker"
	"github.com/abhisek/roadtrack/internal/ui/components"
	"github.com/abhisek/roadtrack/internal/ui/layout"
	"github.com/abhisek/roadtrack/internal/ui/theme"
)

const welcome = "Welcome to Roadtrack! Track your progress through a learning roadmap.\n" +
	"Pick one of the example roadmaps or open a roadmap JSON file to get started."

type loadedMsg struct {
	roadmap *roadmap.Roadmap
}

type loadFailedMsg struct {
	err error
}

// HomeScreen offers the ways to load a roadmap.
type HomeScreen struct {
	ctx     context.Context
	tracker *tracker.Tracker
	menu    components.Menu

	prompting bool
	path      components.TextInput

	loading bool
	errLine string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)
var _ screen.InputCapturer = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen. ctx bounds the loads it starts.
func New(ctx context.Context, t *tracker.Tracker) *HomeScreen {
	h := &HomeScreen{
		ctx:     ctx,
		tracker: t,
		path:    components.NewTextInput("Roadmap file", "path/to/roadmap.json", 0),
	}
	h.buildMenu()
	return h
}

func (h *HomeScreen) buildMenu() {
	selected := h.menu.Selected

	var items []components.MenuItem
	for _, ex := range h.tracker.Bundled() {
		id := ex.ID
		hint := ""
		if h.tracker.Store().Has(id) {
			hint = "loaded"
		}
		items = append(items, components.MenuItem{
			Label:  ex.Label + " roadmap",
			Hint:   hint,
			Action: func() tea.Cmd { return h.loadBundled(id) },
		})
	}
	items = append(items, components.MenuItem{
		Label:  "Open a roadmap file",
		Action: h.openPrompt,
	})

	active, ok := h.tracker.Active()
	resume := components.MenuItem{Label: "Continue", Disabled: !ok}
	if ok {
		resume.Hint = active.Name
		resume.Action = func() tea.Cmd { return h.showActive() }
	}
	items = append(items, resume,
		components.MenuItem{Label: "Quit", Action: func() tea.Cmd { return tea.Quit }},
	)

	h.menu = components.NewMenu(items)
	if selected > 0 && selected < len(items) && !items[selected].Disabled {
		h.menu.Selected = selected
	}
}

func (h *HomeScreen) openPrompt() tea.Cmd {
	h.prompting = true
	h.path.SetValue("")
	return h.path.Focus()
}

func (h *HomeScreen) closePrompt() {
	h.prompting = false
	h.path.Blur()
}

func (h *HomeScreen) loadBundled(id string) tea.Cmd {
	h.loading = true
	h.errLine = ""
	ctx, t := h.ctx, h.tracker
	return func() tea.Msg {
		rm, err := t.LoadFromBundled(ctx, id)
		if err != nil {
			return loadFailedMsg{err: err}
		}
		return loadedMsg{roadmap: rm}
	}
}

func (h *HomeScreen) loadFile(path string) tea.Cmd {
	h.loading = true
	h.errLine = ""
	ctx, t := h.ctx, h.tracker
	return func() tea.Msg {
		rm, err := t.LoadFromFile(ctx, path)
		if err != nil {
			return loadFailedMsg{err: err}
		}
		return loadedMsg{roadmap: rm}
	}
}

// showActive navigates to the active roadmap.
func (h *HomeScreen) showActive() tea.Cmd {
	rm, ok := h.tracker.Active()
	if !ok {
		return nil
	}
	if len(rm.Items) == 0 {
		return router.Push(placeholder.New(rm.Name, "This roadmap has no items yet."))
	}
	return router.Push(itemlist.New(h.tracker))
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

// Resume rebuilds the menu so loaded examples and the active roadmap show.
func (h *HomeScreen) Resume() tea.Cmd {
	h.buildMenu()
	return nil
}

// CapturingInput reports whether the file prompt is open.
func (h *HomeScreen) CapturingInput() bool {
	return h.prompting
}

// ErrorLine returns the message of the last failed load, if any.
func (h *HomeScreen) ErrorLine() string {
	return h.errLine
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	if h.prompting {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Load"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		h.loading = false
		h.buildMenu()
		return h, h.showActive()

	case loadFailedMsg:
		h.loading = false
		h.errLine = tracker.UserMessage(msg.err)
		return h, nil

	case tea.KeyPressMsg:
		if h.loading {
			return h, nil
		}
		if h.prompting {
			switch msg.String() {
			case "esc":
				h.closePrompt()
				return h, nil
			case "enter":
				path := strings.TrimSpace(h.path.Value())
				if path == "" {
					return h, nil
				}
				h.closePrompt()
				return h, h.loadFile(path)
			}
			var cmd tea.Cmd
			h.path, cmd = h.path.Update(msg)
			return h, cmd
		}
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	cw := min(width-8, 72)

	var sections []string
	if _, ok := h.tracker.Active(); !ok {
		sections = append(sections, theme.Body.Width(cw).Render(welcome))
	}

	sections = append(sections, theme.Title.Render("Load a roadmap"), h.menu.View())

	if h.prompting {
		sections = append(sections, h.path.View())
	}

	switch {
	case h.loading:
		sections = append(sections, theme.Hint.Render("Loading..."))
	case h.errLine != "":
		sections = append(sections, theme.ErrorText.Width(cw).Render(h.errLine))
	}

	content := theme.Card.Width(cw + 4).Render(strings.Join(sections, "\n\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
