package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points every config-related location at a temp dir and clears
// the ROADTRACK_* environment.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	for _, k := range []string{EnvConfig, EnvExportDir, EnvExamplesURL, EnvLogLevel, EnvLogFile} {
		t.Setenv(k, "")
	}
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadDefaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ".", cfg.ExportDir)
	assert.Equal(t, "", cfg.ExamplesURL)
	assert.Equal(t, DefaultFetchTimeout, cfg.FetchTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, filepath.Join(dir, "state", "roadtrack", "roadtrack.log"), cfg.LogFile)
}

func TestLoadFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.toml")
	writeFile(t, path, `
export_dir = "/tmp/exports"
examples_url = "https://example.com/roadmaps"
fetch_timeout = "3s"
log_level = "debug"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/exports", cfg.ExportDir)
	assert.Equal(t, "https://example.com/roadmaps", cfg.ExamplesURL)
	assert.Equal(t, 3*time.Second, cfg.FetchTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadDefaultLocation(t *testing.T) {
	isolate(t)
	cfgDir, err := os.UserConfigDir()
	require.NoError(t, err)
	writeFile(t, filepath.Join(cfgDir, "roadtrack", "config.toml"), `export_dir = "from-default"`)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "from-default", cfg.ExportDir)
}

func TestEnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "c.toml")
	writeFile(t, path, `export_dir = "file"
log_level = "warn"`)

	t.Setenv(EnvConfig, path)
	t.Setenv(EnvExportDir, "env")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "env", cfg.ExportDir)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestExplicitMissingFileFails(t *testing.T) {
	dir := isolate(t)
	_, err := Load(filepath.Join(dir, "nope.toml"))
	require.Error(t, err)
}

func TestUnknownKeysRejected(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "c.toml")
	writeFile(t, path, `exprot_dir = "typo"`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exprot_dir")
}

func TestInvalidValues(t *testing.T) {
	dir := isolate(t)

	path := filepath.Join(dir, "level.toml")
	writeFile(t, path, `log_level = "loud"`)
	_, err := Load(path)
	assert.Error(t, err)

	path = filepath.Join(dir, "timeout.toml")
	writeFile(t, path, `fetch_timeout = "-1s"`)
	_, err = Load(path)
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"debug", "debug", false},
		{"INFO", "info", false},
		{" warn ", "warn", false},
		{"warning", "warn", false},
		{"error", "error", false},
		{"trace", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
