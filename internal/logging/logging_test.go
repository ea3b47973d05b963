package logging

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info", "info", func(l *log.Logger) { l.Info("test") }, true},
		{"debug at info", "info", func(l *log.Logger) { l.Debug("test") }, false},
		{"debug at debug", "debug", func(l *log.Logger) { l.Debug("test") }, true},
		{"warn at error", "error", func(l *log.Logger) { l.Warn("test") }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l, err := New(&buf, tt.level)
			require.NoError(t, err)
			tt.logFunc(l)
			assert.Equal(t, tt.wantLog, buf.Len() > 0)
		})
	}
}

func TestNewInvalidLevel(t *testing.T) {
	_, err := New(&bytes.Buffer{}, "chatty")
	assert.Error(t, err)
}

func TestNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "roadtrack.log")
	l, closer, err := NewFile(path, "info")
	require.NoError(t, err)

	l.Info("loaded roadmap", "key", "react")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "loaded roadmap")
	assert.Contains(t, string(data), "key=react")
}

func TestContextRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(&buf, "info")
	require.NoError(t, err)

	ctx := WithLogger(context.Background(), l)
	assert.Same(t, l, FromContext(ctx))
	assert.NotNil(t, FromContext(context.Background()))
}

func TestDiscard(t *testing.T) {
	Discard().Error("nothing to see")
}
