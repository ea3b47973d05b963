package app

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/log"

	"github.com/abhisek/roadtrack/internal/router"
	"github.com/abhisek/roadtrack/internal/screen"
	"github.com/abhisek/roadtrack/internal/screens/home"
	"github.com/abhisek/roadtrack/internal/screens/itemlist"
	"github.com/abhisek/roadtrack/internal/tracker"
	"github.com/abhisek/roadtrack/internal/ui/components"
	"github.com/abhisek/roadtrack/internal/ui/layout"
)

// Options holds the dependencies of the TUI.
type Options struct {
	Tracker *tracker.Tracker
	Logger  *log.Logger
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router  *router.Router
	tracker *tracker.Tracker
	logger  *log.Logger
	width   int
	height  int
}

// newAppModel creates a new AppModel with the home screen. When a roadmap
// with items is already active, its list is opened on top of home.
func newAppModel(ctx context.Context, opts Options) AppModel {
	tr := opts.Tracker
	if tr == nil {
		tr = tracker.New(tracker.Options{Logger: opts.Logger})
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	r := router.New(home.New(ctx, tr))
	if rm, ok := tr.Active(); ok && len(rm.Items) > 0 {
		r.Push(itemlist.New(tr))
	}

	return AppModel{
		router:  r,
		tracker: tr,
		logger:  logger,
	}
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			m.logger.Debug("quit requested")
			return m, tea.Quit
		case "esc":
			if c, ok := m.router.Active().(screen.InputCapturer); ok && c.CapturingInput() {
				break
			}
			if m.router.Depth() > 1 {
				return m, router.Pop()
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) header() string {
	info := layout.HeaderInfo{}
	if active := m.router.Active(); active != nil {
		info.Title = active.Title()
	}
	if rm, ok := m.tracker.Active(); ok {
		info.Roadmap = rm.Name
		info.Progress = components.NewProgressBar("", m.tracker.Progress(), true, 26).View()
	}
	return layout.RenderHeader(info, m.width)
}

func (m AppModel) footer() string {
	var hints []layout.KeyHint
	if p, ok := m.router.Active().(screen.KeyHintProvider); ok {
		hints = p.KeyHints()
	} else if m.router.Depth() > 1 {
		hints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	} else {
		hints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return layout.RenderFooter(hints, "", m.width)
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render draws the full frame for the current terminal size.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	header := m.header()
	footer := m.footer()

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)

	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program and blocks until it exits or ctx is
// canceled.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(newAppModel(ctx, opts), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
