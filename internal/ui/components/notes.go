package components

import (
	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/roadtrack/internal/ui/theme"
)

// NotesArea wraps bubbles/textarea for free-form item notes.
type NotesArea struct {
	Model textarea.Model
}

// NewNotesArea creates an unfocused notes editor holding value.
func NewNotesArea(value string) NotesArea {
	ta := textarea.New()
	ta.Placeholder = "Add notes..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetHeight(5)
	ta.SetValue(value)
	ta.Blur()
	return NotesArea{Model: ta}
}

// SetWidth resizes the editor.
func (n *NotesArea) SetWidth(w int) {
	n.Model.SetWidth(max(w, 10))
}

// Focus focuses the editor.
func (n *NotesArea) Focus() tea.Cmd {
	return n.Model.Focus()
}

// Blur removes focus from the editor.
func (n *NotesArea) Blur() {
	n.Model.Blur()
}

// Focused reports whether the editor has focus.
func (n NotesArea) Focused() bool {
	return n.Model.Focused()
}

// Update handles messages.
func (n NotesArea) Update(msg tea.Msg) (NotesArea, tea.Cmd) {
	var cmd tea.Cmd
	n.Model, cmd = n.Model.Update(msg)
	return n, cmd
}

// Value returns the current notes.
func (n NotesArea) Value() string {
	return n.Model.Value()
}

// View renders the labelled editor.
func (n NotesArea) View() string {
	box := theme.BlurredCard
	if n.Focused() {
		box = theme.FocusedCard
	}
	return theme.Label.Render("Notes") + "\n" + box.Render(n.Model.View())
}
