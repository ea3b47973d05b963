// Package tracker is the entry point presentation code uses to work with
// roadmaps: loading them from files or bundled examples, reading the active
// one, editing items and exporting.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/abhisek/roadtrack/internal/bundled"
	"github.com/abhisek/roadtrack/internal/roadmap"
	"github.com/abhisek/roadtrack/internal/store"
)

// ErrNoActiveRoadmap is returned by operations that need an active roadmap.
var ErrNoActiveRoadmap = errors.New("no roadmap is loaded")

// Options configures a Tracker.
type Options struct {
	Store     *store.Store
	Source    bundled.Source
	Logger    *log.Logger
	ExportDir string
}

// Tracker owns the session's roadmap store.
type Tracker struct {
	store     *store.Store
	source    bundled.Source
	logger    *log.Logger
	exportDir string
}

// New creates a Tracker. Missing options get defaults: a fresh store, the
// embedded examples, a discarding logger and the current directory.
func New(opts Options) *Tracker {
	t := &Tracker{
		store:     opts.Store,
		source:    opts.Source,
		logger:    opts.Logger,
		exportDir: opts.ExportDir,
	}
	if t.store == nil {
		t.store = store.New()
	}
	if t.source == nil {
		t.source = bundled.EmbeddedSource{}
	}
	if t.logger == nil {
		t.logger = log.New(io.Discard)
	}
	if t.exportDir == "" {
		t.exportDir = "."
	}
	return t
}

// Store returns the underlying store.
func (t *Tracker) Store() *store.Store {
	return t.store
}

// Bundled returns the bundled examples.
func (t *Tracker) Bundled() []bundled.Example {
	return bundled.All()
}

// LoadFromFile loads and validates the roadmap at path, stores it under a
// new upload key and makes it active.
func (t *Tracker) LoadFromFile(ctx context.Context, path string) (*roadmap.Roadmap, error) {
	f, err := os.Open(path)
	if err != nil {
		err = &roadmap.ReadError{Err: err}
		t.logger.Error("open roadmap file", "path", path, "err", err)
		return nil, err
	}
	defer f.Close()
	return t.LoadFromReader(ctx, filepath.Base(path), f)
}

// LoadFromReader is LoadFromFile for an already opened source; name is
// used for logging only.
func (t *Tracker) LoadFromReader(ctx context.Context, name string, r io.Reader) (*roadmap.Roadmap, error) {
	rm, err := roadmap.Load(ctx, r)
	if err != nil {
		t.logger.Error("load roadmap", "source", name, "err", err)
		return nil, err
	}
	key := store.NewUploadKey()
	t.activate(key, rm)
	t.logger.Info("roadmap loaded", "source", name, "key", key, "items", len(rm.Items))
	return rm, nil
}

// LoadFromBundled activates the bundled example id. An example loaded
// earlier in the session is re-activated as is, keeping its edits.
func (t *Tracker) LoadFromBundled(ctx context.Context, id string) (*roadmap.Roadmap, error) {
	if rm, ok := t.store.Get(id); ok {
		if err := t.store.SetActive(id); err != nil {
			return nil, err
		}
		t.logger.Debug("bundled roadmap re-activated", "id", id)
		return rm, nil
	}

	rm, err := bundled.Load(ctx, t.source, id)
	if err != nil {
		t.logger.Error("load bundled roadmap", "id", id, "err", err)
		var fe *bundled.FetchError
		if !errors.As(err, &fe) && !errors.Is(err, bundled.ErrUnknownExample) {
			err = &bundled.FetchError{ID: id, Err: err}
		}
		return nil, err
	}
	t.activate(id, rm)
	t.logger.Info("bundled roadmap loaded", "id", id, "items", len(rm.Items))
	return rm, nil
}

func (t *Tracker) activate(key string, rm *roadmap.Roadmap) {
	t.store.Put(key, rm)
	// The key was just stored, so SetActive cannot fail.
	_ = t.store.SetActive(key)
	t.logger.Debug("session roadmaps", "keys", t.store.Keys())
}

// Active returns a copy of the active roadmap.
func (t *Tracker) Active() (*roadmap.Roadmap, bool) {
	return t.store.Active()
}

// Progress returns the completion percentage of the active roadmap, or 0
// when nothing is loaded.
func (t *Tracker) Progress() int {
	rm, _ := t.store.Active()
	return roadmap.Progress(rm)
}

// UpdateItem replaces the item of the active roadmap that has the same ID.
// Without an active roadmap, or without a matching item, nothing changes.
func (t *Tracker) UpdateItem(item roadmap.Item) {
	var prev roadmap.Item
	if rm, ok := t.store.Active(); ok {
		prev, _ = rm.FindItem(item.ID)
	}
	if !t.store.UpdateItem(item) {
		t.logger.Debug("item update ignored", "id", item.ID, "active", t.store.ActiveKey())
		return
	}
	t.logger.Debug("item updated", "id", item.ID, "from", prev.Status, "to", item.Status)
}

// ExportActive writes the active roadmap to filename inside the export
// directory and returns the written path. An empty filename is derived
// from the roadmap name.
func (t *Tracker) ExportActive(filename string) (string, error) {
	rm, ok := t.store.Active()
	if !ok {
		return "", ErrNoActiveRoadmap
	}
	if filename == "" {
		filename = roadmap.ExportFilename(rm.Name)
	}
	path := filename
	if !filepath.IsAbs(path) {
		path = filepath.Join(t.exportDir, filename)
	}
	if err := roadmap.WriteFile(path, rm); err != nil {
		t.logger.Error("export roadmap", "path", path, "err", err)
		return "", err
	}
	t.logger.Info("roadmap exported", "path", path)
	return path, nil
}

// UserMessage turns an error from this package into a short message fit
// for display. Underlying causes are left to the log.
func UserMessage(err error) string {
	var (
		readErr  *roadmap.ReadError
		parseErr *roadmap.ParseError
		valErr   *roadmap.ValidationError
		fetchErr *bundled.FetchError
		expErr   *roadmap.ExportError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &fetchErr), errors.Is(err, bundled.ErrUnknownExample):
		return "Could not load the roadmap."
	case errors.As(err, &readErr):
		return "Could not read the roadmap file."
	case errors.As(err, &parseErr):
		return "Could not parse the roadmap file. Make sure it is valid JSON."
	case errors.As(err, &valErr):
		return valErr.Error()
	case errors.As(err, &expErr):
		return fmt.Sprintf("Could not export the roadmap: %v", errors.Unwrap(expErr))
	case errors.Is(err, ErrNoActiveRoadmap):
		return "Load a roadmap first."
	default:
		return "Something went wrong."
	}
}
