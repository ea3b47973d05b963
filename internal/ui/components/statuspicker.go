package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/roadtrack/internal/roadmap"
	"github.com/abhisek/roadtrack/internal/ui/theme"
)

// StatusChangedMsg is emitted when the picker moves to a different status.
type StatusChangedMsg struct {
	Status roadmap.Status
}

// StatusPicker is a horizontal selector over the roadmap statuses.
type StatusPicker struct {
	Selected roadmap.Status
	focused  bool
}

// NewStatusPicker creates a picker positioned on s.
func NewStatusPicker(s roadmap.Status) StatusPicker {
	if !s.Valid() {
		s = roadmap.StatusNotStarted
	}
	return StatusPicker{Selected: s}
}

// Focus focuses the picker.
func (p *StatusPicker) Focus() { p.focused = true }

// Blur removes focus from the picker.
func (p *StatusPicker) Blur() { p.focused = false }

// Focused reports whether the picker has focus.
func (p StatusPicker) Focused() bool { return p.focused }

// Update moves the selection with the arrow keys while focused.
func (p StatusPicker) Update(msg tea.Msg) (StatusPicker, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || !p.focused {
		return p, nil
	}

	prev := p.Selected
	switch kmsg.String() {
	case "left", "h":
		p.Selected = p.Selected.Prev()
	case "right", "l":
		p.Selected = p.Selected.Next()
	}
	if p.Selected == prev {
		return p, nil
	}
	s := p.Selected
	return p, func() tea.Msg { return StatusChangedMsg{Status: s} }
}

// View renders all statuses with the selected one highlighted.
func (p StatusPicker) View() string {
	parts := make([]string, 0, len(roadmap.AllStatuses()))
	for _, s := range roadmap.AllStatuses() {
		text := s.Icon() + " " + s.Label()
		if s == p.Selected {
			parts = append(parts, theme.StatusStyle(s).Render("["+text+"]"))
			continue
		}
		parts = append(parts, theme.Subtitle.Render(" "+text+" "))
	}

	box := theme.BlurredCard
	if p.focused {
		box = theme.FocusedCard
	}
	return theme.Label.Render("Status") + "\n" + box.Render(strings.Join(parts, "  "))
}
