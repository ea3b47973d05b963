package tracker

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/roadtrack/internal/bundled"
	"github.com/abhisek/roadtrack/internal/roadmap"
)

// stubSource serves fixed content and counts fetches.
type stubSource struct {
	data    map[string]string
	err     error
	fetches int
}

func (s *stubSource) Fetch(_ context.Context, ex bundled.Example) ([]byte, error) {
	s.fetches++
	if s.err != nil {
		return nil, s.err
	}
	return []byte(s.data[ex.ID]), nil
}

func newTestTracker(t *testing.T) (*Tracker, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	return New(Options{
		Logger:    log.New(&buf),
		ExportDir: t.TempDir(),
	}), &buf
}

func writeRoadmapFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "upload.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const uploadJSON = `{"name":"X","description":"Y","items":[{"id":"1","name":"A","description":"B"}]}`

func TestLoadFromFileScenario(t *testing.T) {
	tr, _ := newTestTracker(t)

	rm, err := tr.LoadFromFile(context.Background(), writeRoadmapFile(t, uploadJSON))
	require.NoError(t, err)
	require.Len(t, rm.Items, 1)
	assert.Equal(t, roadmap.StatusNotStarted, rm.Items[0].Status)
	assert.Equal(t, "", rm.Items[0].Notes)
	assert.True(t, strings.HasPrefix(tr.Store().ActiveKey(), "file-"))
	assert.Equal(t, 0, tr.Progress())

	tr.UpdateItem(roadmap.Item{ID: "1", Name: "A", Description: "B", Status: roadmap.StatusCompleted, Notes: ""})
	assert.Equal(t, 100, tr.Progress())
}

func TestLoadFromFileTwiceUsesDistinctKeys(t *testing.T) {
	tr, _ := newTestTracker(t)
	path := writeRoadmapFile(t, uploadJSON)

	_, err := tr.LoadFromFile(context.Background(), path)
	require.NoError(t, err)
	first := tr.Store().ActiveKey()

	_, err = tr.LoadFromFile(context.Background(), path)
	require.NoError(t, err)
	assert.NotEqual(t, first, tr.Store().ActiveKey())
	assert.Len(t, tr.Store().Keys(), 2)
}

func TestLoadFailuresLeaveStoreUntouched(t *testing.T) {
	tests := []struct {
		name    string
		content string
		target  any
	}{
		{"parse", `{"name":`, new(*roadmap.ParseError)},
		{"validation", `{"name":"X","items":[]}`, new(*roadmap.ValidationError)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, logs := newTestTracker(t)
			_, err := tr.LoadFromBundled(context.Background(), "react")
			require.NoError(t, err)
			before, _ := tr.Active()

			_, err = tr.LoadFromFile(context.Background(), writeRoadmapFile(t, tt.content))
			require.Error(t, err)
			assert.True(t, errors.As(err, tt.target))

			after, _ := tr.Active()
			assert.True(t, before.Equal(after))
			assert.Equal(t, "react", tr.Store().ActiveKey())
			assert.Equal(t, []string{"react"}, tr.Store().Keys())
			assert.Contains(t, logs.String(), "load roadmap")
		})
	}
}

func TestLoadFromMissingFile(t *testing.T) {
	tr, _ := newTestTracker(t)
	_, err := tr.LoadFromFile(context.Background(), filepath.Join(t.TempDir(), "missing.json"))

	var re *roadmap.ReadError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, "Could not read the roadmap file.", UserMessage(err))
	_, ok := tr.Active()
	assert.False(t, ok)
}

func TestLoadFromBundledCachesPerSession(t *testing.T) {
	src := &stubSource{data: map[string]string{"vue": uploadJSON}}
	tr := New(Options{Source: src, ExportDir: t.TempDir()})

	_, err := tr.LoadFromBundled(context.Background(), "vue")
	require.NoError(t, err)
	tr.UpdateItem(roadmap.Item{ID: "1", Name: "A", Description: "B", Status: roadmap.StatusInProgress})

	// Switch away and back: edits survive and no refetch happens.
	_, err = tr.LoadFromFile(context.Background(), writeRoadmapFile(t, uploadJSON))
	require.NoError(t, err)

	rm, err := tr.LoadFromBundled(context.Background(), "vue")
	require.NoError(t, err)
	assert.Equal(t, 1, src.fetches)
	assert.Equal(t, "vue", tr.Store().ActiveKey())
	assert.Equal(t, roadmap.StatusInProgress, rm.Items[0].Status)
}

func TestLoadFromBundledFailure(t *testing.T) {
	src := &stubSource{err: &bundled.FetchError{ID: "react", StatusCode: 503}}
	tr := New(Options{Source: src})

	_, err := tr.LoadFromBundled(context.Background(), "react")
	var fe *bundled.FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "Could not load the roadmap.", UserMessage(err))
	assert.False(t, tr.Store().Has("react"))
}

func TestLoadFromBundledBrokenContent(t *testing.T) {
	src := &stubSource{data: map[string]string{"react": "not json"}}
	tr := New(Options{Source: src})

	_, err := tr.LoadFromBundled(context.Background(), "react")
	var fe *bundled.FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "Could not load the roadmap.", UserMessage(err))
}

func TestLoadFromBundledUnknown(t *testing.T) {
	tr, _ := newTestTracker(t)
	_, err := tr.LoadFromBundled(context.Background(), "cobol")
	assert.ErrorIs(t, err, bundled.ErrUnknownExample)
	assert.Equal(t, "Could not load the roadmap.", UserMessage(err))
}

func TestUpdateItemWithoutActiveIsNoop(t *testing.T) {
	tr, _ := newTestTracker(t)
	tr.UpdateItem(roadmap.Item{ID: "1", Status: roadmap.StatusCompleted})
	_, ok := tr.Active()
	assert.False(t, ok)
	assert.Equal(t, 0, tr.Progress())
}

func TestExportActive(t *testing.T) {
	tr, _ := newTestTracker(t)
	_, err := tr.LoadFromBundled(context.Background(), "javascript")
	require.NoError(t, err)

	rm, _ := tr.Active()
	it := rm.Items[0]
	it.Status = roadmap.StatusCompleted
	it.Notes = "closures clicked"
	tr.UpdateItem(it)

	path, err := tr.ExportActive("")
	require.NoError(t, err)
	assert.Equal(t, "javascript-fundamentals-progress.json", filepath.Base(path))

	// Re-import the exported file.
	loaded, err := tr.LoadFromFile(context.Background(), path)
	require.NoError(t, err)
	active, _ := tr.Store().Get("javascript")
	assert.True(t, active.Equal(loaded))
	assert.Equal(t, "closures clicked", loaded.Items[0].Notes)
}

func TestExportActiveExplicitName(t *testing.T) {
	tr, _ := newTestTracker(t)
	_, err := tr.LoadFromBundled(context.Background(), "react")
	require.NoError(t, err)

	path, err := tr.ExportActive("mine.json")
	require.NoError(t, err)
	assert.Equal(t, "mine.json", filepath.Base(path))
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestExportWithoutActive(t *testing.T) {
	tr, _ := newTestTracker(t)
	_, err := tr.ExportActive("")
	assert.ErrorIs(t, err, ErrNoActiveRoadmap)
	assert.Equal(t, "Load a roadmap first.", UserMessage(err))
}

func TestExportFailure(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))
	tr := New(Options{ExportDir: blocker})
	_, err := tr.LoadFromBundled(context.Background(), "react")
	require.NoError(t, err)

	_, err = tr.ExportActive("")
	var ee *roadmap.ExportError
	require.True(t, errors.As(err, &ee))
	assert.True(t, strings.HasPrefix(UserMessage(err), "Could not export the roadmap:"))
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "", UserMessage(nil))
	assert.Equal(t, "Could not parse the roadmap file. Make sure it is valid JSON.",
		UserMessage(&roadmap.ParseError{Err: errors.New("x")}))
	assert.Contains(t, UserMessage(&roadmap.ValidationError{}), "invalid roadmap structure")
	assert.Equal(t, "Something went wrong.", UserMessage(errors.New("?")))
}
