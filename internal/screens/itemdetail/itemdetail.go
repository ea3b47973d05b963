package itemdetail

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/roadtrack/internal/roadmap"
	"github.com/abhisek/roadtrack/internal/screen"
	"github.com/abhisek/roadtrack/internal/ui/components"
	"github.com/abhisek/roadtrack/internal/ui/layout"
	"github.com/abhisek/roadtrack/internal/ui/theme"
)

// Updater receives edited items.
type Updater interface {
	UpdateItem(item roadmap.Item)
}

type field int

const (
	fieldStatus field = iota
	fieldDueDate
	fieldNotes
	fieldCount
)

// DetailScreen edits one roadmap item. Status changes are applied right
// away; due date and notes are applied on save.
type DetailScreen struct {
	updater Updater
	item    roadmap.Item

	status  components.StatusPicker
	dueDate components.TextInput
	notes   components.NotesArea
	focus   field

	message string
	isError bool
}

var _ screen.Screen = (*DetailScreen)(nil)
var _ screen.KeyHintProvider = (*DetailScreen)(nil)

// New creates a DetailScreen for item.
func New(updater Updater, item roadmap.Item) *DetailScreen {
	d := &DetailScreen{
		updater: updater,
		item:    item.Clone(),
		status:  components.NewStatusPicker(item.Status),
		dueDate: components.NewTextInput("Due date", "YYYY-MM-DD", 0),
		notes:   components.NewNotesArea(item.Notes),
	}
	d.dueDate.SetValue(item.DueDate)
	d.status.Focus()
	return d
}

// Item returns the item as last applied.
func (d *DetailScreen) Item() roadmap.Item {
	return d.item.Clone()
}

// Dirty reports whether the due date or notes have unsaved edits.
func (d *DetailScreen) Dirty() bool {
	return d.dueDate.Value() != d.item.DueDate || d.notes.Value() != d.item.Notes
}

func (d *DetailScreen) Init() tea.Cmd { return nil }
func (d *DetailScreen) Title() string { return d.item.Name }

func (d *DetailScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Tab", Description: "Next field"}}
	if d.focus == fieldStatus {
		hints = append(hints, layout.KeyHint{Key: "←→", Description: "Status"})
	}
	return append(hints,
		layout.KeyHint{Key: "Ctrl+S", Description: "Save"},
		layout.KeyHint{Key: "Esc", Description: "Back"},
	)
}

func (d *DetailScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case components.StatusChangedMsg:
		d.item.Status = msg.Status
		d.updater.UpdateItem(d.item.Clone())
		d.setMessage("Status set to "+msg.Status.Label()+".", false)
		return d, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "tab":
			return d, d.setFocus((d.focus + 1) % fieldCount)
		case "shift+tab":
			return d, d.setFocus((d.focus + fieldCount - 1) % fieldCount)
		case "ctrl+s":
			d.save()
			return d, nil
		}
		d.message = ""
	}

	var cmd tea.Cmd
	switch d.focus {
	case fieldStatus:
		d.status, cmd = d.status.Update(msg)
	case fieldDueDate:
		d.dueDate, cmd = d.dueDate.Update(msg)
	case fieldNotes:
		d.notes, cmd = d.notes.Update(msg)
	}
	return d, cmd
}

func (d *DetailScreen) setFocus(f field) tea.Cmd {
	d.status.Blur()
	d.dueDate.Blur()
	d.notes.Blur()
	d.focus = f
	switch f {
	case fieldDueDate:
		return d.dueDate.Focus()
	case fieldNotes:
		return d.notes.Focus()
	default:
		d.status.Focus()
		return nil
	}
}

// save applies the due date and notes. A loaded due date is kept as is;
// only one typed here has to be a calendar date.
func (d *DetailScreen) save() {
	due := d.dueDate.Value()
	if due != d.item.DueDate {
		due = strings.TrimSpace(due)
		if due != "" {
			if _, err := time.Parse(time.DateOnly, due); err != nil {
				d.setMessage("Due date must look like 2006-01-02.", true)
				return
			}
		}
	}
	if due == d.item.DueDate && d.notes.Value() == d.item.Notes {
		d.setMessage("Nothing to save.", false)
		return
	}
	d.item.DueDate = due
	d.item.Notes = d.notes.Value()
	d.dueDate.SetValue(due)
	d.updater.UpdateItem(d.item.Clone())
	d.setMessage("Saved.", false)
}

func (d *DetailScreen) setMessage(msg string, isError bool) {
	d.message = msg
	d.isError = isError
}

func (d *DetailScreen) View(width, height int) string {
	contentWidth := min(width-8, 76)
	d.notes.SetWidth(contentWidth - 4)

	var b strings.Builder

	b.WriteString(theme.StatusStyle(d.item.Status).
		Render(fmt.Sprintf("  %s  ", d.item.Status.Icon())))
	b.WriteString(theme.Title.Render(d.item.Name))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(contentWidth).
		Foreground(theme.Text).
		PaddingLeft(2).
		Render(d.item.Description))
	b.WriteString("\n")

	if d.item.ExternalLink != "" {
		b.WriteString("\n" + theme.Subtitle.Render("  Learn more: ") + theme.URL.Render(d.item.ExternalLink) + "\n")
	}
	b.WriteString("\n")

	indent := lipgloss.NewStyle().PaddingLeft(2)
	b.WriteString(indent.Render(d.status.View()) + "\n")
	b.WriteString(indent.Render(d.dueDate.View()) + "\n")
	b.WriteString(indent.Render(d.notes.View()) + "\n")

	switch {
	case d.message != "" && d.isError:
		b.WriteString("\n  " + theme.ErrorText.Render(d.message))
	case d.message != "":
		b.WriteString("\n  " + theme.SuccessText.Render(d.message))
	case d.Dirty():
		b.WriteString("\n  " + theme.Hint.Render("Unsaved changes. Press Ctrl+S to save."))
	}

	return lipgloss.Place(width, height, lipgloss.Left, lipgloss.Top, "\n"+b.String())
}
