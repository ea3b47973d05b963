package roadmap

import (
	"fmt"
	"strings"
)

// ReadError indicates the roadmap source could not be read.
type ReadError struct {
	Err error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read roadmap: %v", e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// ParseError indicates the roadmap content is not valid JSON.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("roadmap file is not valid JSON: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ValidationError indicates the content is valid JSON but does not have
// the shape of a roadmap.
type ValidationError struct {
	Problems []string
	Err      error
}

func (e *ValidationError) Error() string {
	msg := "invalid roadmap structure: a roadmap needs a name, a description and an items array"
	if len(e.Problems) > 0 {
		msg += ":\n  " + strings.Join(e.Problems, "\n  ")
	}
	return msg
}

func (e *ValidationError) Unwrap() error { return e.Err }

// ExportError indicates the roadmap could not be serialized or saved.
type ExportError struct {
	Path string
	Err  error
}

func (e *ExportError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("export roadmap to %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("export roadmap: %v", e.Err)
}

func (e *ExportError) Unwrap() error { return e.Err }
