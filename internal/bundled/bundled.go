// Package bundled provides the example roadmaps that ship with roadtrack.
//
// Examples are identified by a fixed slug. They are served either from
// files compiled into the binary or, when a base URL is configured, over
// plain HTTP GET requests. Bundled content is trusted and is loaded without
// structural validation.
package bundled

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/abhisek/roadtrack/internal/roadmap"
)

// ErrUnknownExample is returned for an id that is not a bundled example.
var ErrUnknownExample = errors.New("unknown bundled example")

// Example describes one bundled roadmap.
type Example struct {
	ID    string
	Label string
	File  string
}

var examples = []Example{
	{ID: "react", Label: "React", File: "react-roadmap.json"},
	{ID: "vue", Label: "Vue.js", File: "vue-roadmap.json"},
	{ID: "javascript", Label: "JavaScript", File: "javascript-roadmap.json"},
}

// All returns the bundled examples in menu order.
func All() []Example {
	return slices.Clone(examples)
}

// Lookup returns the example with the given id.
func Lookup(id string) (Example, bool) {
	for _, e := range examples {
		if e.ID == id {
			return e, true
		}
	}
	return Example{}, false
}

// Source fetches the raw content of a bundled example.
type Source interface {
	Fetch(ctx context.Context, ex Example) ([]byte, error)
}

// FetchError indicates a bundled example could not be retrieved.
type FetchError struct {
	ID         string
	StatusCode int // zero when no response was received
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch example %q: HTTP %d", e.ID, e.StatusCode)
	}
	return fmt.Sprintf("fetch example %q: %v", e.ID, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Load fetches the example with the given id from src and decodes it as
// trusted content.
func Load(ctx context.Context, src Source, id string) (*roadmap.Roadmap, error) {
	ex, ok := Lookup(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownExample, id)
	}
	data, err := src.Fetch(ctx, ex)
	if err != nil {
		var fe *FetchError
		if errors.As(err, &fe) {
			return nil, err
		}
		return nil, &FetchError{ID: id, Err: err}
	}
	return roadmap.Decode(data, roadmap.WithTrusted())
}
