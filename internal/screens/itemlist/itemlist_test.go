package itemlist

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/roadtrack/internal/roadmap"
	"github.com/abhisek/roadtrack/internal/router"
	"github.com/abhisek/roadtrack/internal/screens/itemdetail"
	"github.com/abhisek/roadtrack/internal/tracker"
)

func newLoadedTracker(t *testing.T, exportDir string) *tracker.Tracker {
	t.Helper()
	tr := tracker.New(tracker.Options{ExportDir: exportDir})
	_, err := tr.LoadFromBundled(context.Background(), "react")
	require.NoError(t, err)
	return tr
}

func press(s *ListScreen, k string) tea.Cmd {
	var msg tea.KeyPressMsg
	switch k {
	case "enter":
		msg = tea.KeyPressMsg{Code: tea.KeyEnter}
	case "down":
		msg = tea.KeyPressMsg{Code: tea.KeyDown}
	case "up":
		msg = tea.KeyPressMsg{Code: tea.KeyUp}
	default:
		msg = tea.KeyPressMsg{Code: []rune(k)[0], Text: k}
	}
	_, cmd := s.Update(msg)
	return cmd
}

func TestCursorNavigation(t *testing.T) {
	s := New(newLoadedTracker(t, t.TempDir()))
	assert.Equal(t, 0, s.Cursor())

	press(s, "up")
	assert.Equal(t, 0, s.Cursor(), "cursor stays at the top")

	press(s, "down")
	press(s, "j")
	assert.Equal(t, 2, s.Cursor())

	press(s, "G")
	assert.Equal(t, len(s.roadmap.Items)-1, s.Cursor())

	press(s, "down")
	assert.Equal(t, len(s.roadmap.Items)-1, s.Cursor(), "cursor stays at the bottom")

	press(s, "g")
	assert.Equal(t, 0, s.Cursor())
}

func TestEnterPushesDetail(t *testing.T) {
	tr := newLoadedTracker(t, t.TempDir())
	s := New(tr)
	press(s, "down")

	cmd := press(s, "enter")
	require.NotNil(t, cmd)
	push, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)

	detail, ok := push.Screen.(*itemdetail.DetailScreen)
	require.True(t, ok)

	rm, _ := tr.Active()
	assert.Equal(t, rm.Items[1].ID, detail.Item().ID)
}

func TestCycleStatusUpdatesTracker(t *testing.T) {
	tr := newLoadedTracker(t, t.TempDir())
	s := New(tr)

	press(s, "s")
	rm, _ := tr.Active()
	assert.Equal(t, roadmap.StatusInProgress, rm.Items[0].Status)

	press(s, "s")
	press(s, "s")
	rm, _ = tr.Active()
	assert.Equal(t, roadmap.StatusNotStarted, rm.Items[0].Status)
}

func TestResumePicksUpDetailEdits(t *testing.T) {
	tr := newLoadedTracker(t, t.TempDir())
	s := New(tr)

	rm, _ := tr.Active()
	it := rm.Items[0]
	it.Status = roadmap.StatusCompleted
	tr.UpdateItem(it)

	assert.Equal(t, roadmap.StatusNotStarted, s.roadmap.Items[0].Status, "list holds its snapshot until resumed")
	s.Resume()
	assert.Equal(t, roadmap.StatusCompleted, s.roadmap.Items[0].Status)
	assert.Contains(t, s.View(100, 30), "1 completed")
}

func TestExport(t *testing.T) {
	dir := t.TempDir()
	s := New(newLoadedTracker(t, dir))

	cmd := press(s, "x")
	require.NotNil(t, cmd)
	s.Update(cmd())

	assert.False(t, s.isError)
	assert.Contains(t, s.message, "react-developer-progress.json")
	_, err := os.Stat(filepath.Join(dir, "react-developer-progress.json"))
	assert.NoError(t, err)
}

func TestExportFailureShowsMessage(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))
	s := New(newLoadedTracker(t, blocker))

	s.Update(press(s, "x")())

	assert.True(t, s.isError)
	assert.Contains(t, s.View(100, 30), "Could not export the roadmap")
}

func TestQuitPops(t *testing.T) {
	s := New(newLoadedTracker(t, t.TempDir()))
	cmd := press(s, "q")
	require.NotNil(t, cmd)
	assert.IsType(t, router.PopScreenMsg{}, cmd())
}

func TestViewScrollsToCursor(t *testing.T) {
	s := New(newLoadedTracker(t, t.TempDir()))
	rm, _ := s.tracker.Active()
	last := rm.Items[len(rm.Items)-1]

	assert.NotContains(t, s.View(100, headerLines+3), last.Name)
	press(s, "G")
	assert.Contains(t, s.View(100, headerLines+3), last.Name)
}

func TestEmptyTrackerRendersNothingToSelect(t *testing.T) {
	s := New(tracker.New(tracker.Options{}))
	assert.Nil(t, press(s, "enter"))
	press(s, "s")
	assert.Equal(t, "Roadmap", s.Title())
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
}

func TestDueDateHiddenWhenCompact(t *testing.T) {
	tr := newLoadedTracker(t, t.TempDir())
	rm, _ := tr.Active()
	it := rm.Items[0]
	it.DueDate = "2025-06-30"
	tr.UpdateItem(it)

	s := New(tr)
	assert.Contains(t, s.View(120, 30), "2025-06-30")
	assert.NotContains(t, s.View(80, 30), "2025-06-30")
}
