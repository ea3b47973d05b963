// Package config loads roadtrack settings.
//
// Values are resolved in priority order (later wins):
//  1. Defaults
//  2. TOML config file (--config, ROADTRACK_CONFIG, or
//     $XDG_CONFIG_HOME/roadtrack/config.toml when it exists)
//  3. ROADTRACK_* environment variables
//  4. Command-line flags, applied by the caller
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Environment variables.
const (
	EnvConfig      = "ROADTRACK_CONFIG"
	EnvExportDir   = "ROADTRACK_EXPORT_DIR"
	EnvExamplesURL = "ROADTRACK_EXAMPLES_URL"
	EnvLogLevel    = "ROADTRACK_LOG_LEVEL"
	EnvLogFile     = "ROADTRACK_LOG_FILE"
)

// DefaultFetchTimeout bounds a single bundled example download.
const DefaultFetchTimeout = 15 * time.Second

// Config holds all roadtrack settings.
type Config struct {
	// ExportDir is where exported roadmaps are written. Default: ".".
	ExportDir string `toml:"export_dir"`

	// ExamplesURL, when set, serves bundled examples over HTTP from
	// <ExamplesURL>/<file> instead of the copies built into the binary.
	ExamplesURL string `toml:"examples_url"`

	// FetchTimeout bounds a single example download. Zero disables it.
	FetchTimeout time.Duration `toml:"fetch_timeout"`

	// LogLevel is one of debug, info, warn, error. Default: info.
	LogLevel string `toml:"log_level"`

	// LogFile receives logs while the TUI owns the terminal.
	// Default: $XDG_STATE_HOME/roadtrack/roadtrack.log.
	LogFile string `toml:"log_file"`
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		ExportDir:    ".",
		FetchTimeout: DefaultFetchTimeout,
		LogLevel:     "info",
		LogFile:      defaultLogFile(),
	}
}

// Load builds a Config from defaults, the config file at path (or the
// default location when path is empty) and the environment.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = os.Getenv(EnvConfig)
		explicit = path != ""
	}
	if !explicit {
		path = defaultConfigFile()
	}

	if path != "" {
		if err := loadFile(&cfg, path); err != nil {
			if explicit || !errors.Is(err, fs.ErrNotExist) {
				return Config{}, fmt.Errorf("load config file %s: %w", path, err)
			}
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that cannot be corrected silently.
func (c Config) Validate() error {
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.FetchTimeout < 0 {
		return fmt.Errorf("fetch_timeout must be >= 0, got %s", c.FetchTimeout)
	}
	return nil
}

func loadFile(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvExportDir); v != "" {
		cfg.ExportDir = v
	}
	if v := os.Getenv(EnvExamplesURL); v != "" {
		cfg.ExamplesURL = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		cfg.LogFile = v
	}
}

// ParseLevel normalizes a log level name.
func ParseLevel(s string) (string, error) {
	switch l := strings.ToLower(strings.TrimSpace(s)); l {
	case "debug", "info", "warn", "error":
		return l, nil
	case "warning":
		return "warn", nil
	default:
		return "", fmt.Errorf("invalid log level %q (want debug, info, warn or error)", s)
	}
}

// defaultConfigFile returns $XDG_CONFIG_HOME/roadtrack/config.toml, or ""
// when the config dir cannot be resolved.
func defaultConfigFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "roadtrack", "config.toml")
}

// defaultLogFile resolves the log path in priority order:
// 1. $XDG_STATE_HOME/roadtrack/roadtrack.log
// 2. ~/.local/state/roadtrack/roadtrack.log
// 3. roadtrack.log in the temp dir
func defaultLogFile() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(os.TempDir(), "roadtrack.log")
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, "roadtrack", "roadtrack.log")
}
