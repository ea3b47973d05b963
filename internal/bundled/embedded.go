package bundled

import (
	"context"
	"embed"
	"path"
)

//go:embed data/*.json
var dataFS embed.FS

// EmbeddedSource serves the examples compiled into the binary.
type EmbeddedSource struct{}

// Fetch reads the example file from the embedded filesystem.
func (EmbeddedSource) Fetch(ctx context.Context, ex Example) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return dataFS.ReadFile(path.Join("data", ex.File))
}
