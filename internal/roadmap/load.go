package roadmap

import (
	"context"
	"encoding/json"
	"errors"
	"io"
)

type loadOptions struct {
	trusted bool
}

// LoadOption configures Load and Decode.
type LoadOption func(*loadOptions)

// WithTrusted skips structural validation. Use it only for content that is
// known to be well formed, such as the bundled examples.
func WithTrusted() LoadOption {
	return func(o *loadOptions) { o.trusted = true }
}

// Load reads the whole of r and decodes it with Decode.
// A read failure is returned as *ReadError.
func Load(ctx context.Context, r io.Reader, opts ...LoadOption) (*Roadmap, error) {
	if err := ctx.Err(); err != nil {
		return nil, &ReadError{Err: err}
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &ReadError{Err: err}
	}
	return Decode(data, opts...)
}

// Decode turns raw JSON into a canonical roadmap:
//
//  1. the content must be valid JSON (*ParseError otherwise);
//  2. unless trusted, it must match the roadmap schema (*ValidationError);
//  3. items without a known status get the default one.
//
// No partially valid roadmap is ever returned.
func Decode(data []byte, opts ...LoadOption) (*Roadmap, error) {
	var o loadOptions
	for _, opt := range opts {
		opt(&o)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Err: err}
	}

	if !o.trusted {
		if err := validate(doc); err != nil {
			return nil, err
		}
	}

	var rm Roadmap
	if err := json.Unmarshal(data, &rm); err != nil {
		// Only reachable for trusted content of the wrong shape.
		return nil, &ValidationError{Problems: []string{err.Error()}, Err: err}
	}
	if o.trusted {
		if rm.Name == "" || rm.Description == "" {
			return nil, &ValidationError{Err: errors.New("missing name or description")}
		}
	}

	rm.Items = Normalize(rm.Items)
	return &rm, nil
}

// Normalize returns a copy of items in the same order with missing or
// unknown statuses set to not-started. Missing notes already decode as the
// empty string.
func Normalize(items []Item) []Item {
	out := make([]Item, len(items))
	for i, it := range items {
		if !it.Status.Valid() {
			it.Status = StatusNotStarted
		}
		out[i] = it
	}
	return out
}
