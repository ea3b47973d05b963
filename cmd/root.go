package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/abhisek/roadtrack/internal/bundled"
	"github.com/abhisek/roadtrack/internal/config"
	"github.com/abhisek/roadtrack/internal/logging"
	"github.com/abhisek/roadtrack/internal/tracker"
)

// cli holds state shared by all commands of one invocation.
type cli struct {
	cfg    config.Config
	logger *log.Logger
	closer io.Closer
}

// Execute runs the roadtrack command line.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	c := &cli{logger: logging.Discard()}

	root := &cobra.Command{
		Use:   "roadtrack",
		Short: "Track your progress through a learning roadmap",
		Long: "Roadtrack is a terminal app for working through a learning roadmap: load a bundled " +
			"example or your own roadmap JSON file, mark items as you go, keep notes and export your progress.",
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return c.close()
		},
		RunE: c.runApp,
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "Path to config file (overrides "+config.EnvConfig+" env var)")
	pf.String("export-dir", "", "Directory exported roadmaps are written to")
	pf.String("examples-url", "", "Fetch bundled examples from this base URL instead of the built-in copies")
	pf.String("log-level", "", "Log level: debug, info, warn or error")
	pf.BoolP("verbose", "v", false, "Enable debug logging")

	root.Flags().String("file", "", "Roadmap JSON file to open on start")
	root.Flags().String("example", "", "Bundled example to open on start (react, vue, javascript)")
	root.MarkFlagsMutuallyExclusive("file", "example")

	root.AddCommand(c.examplesCmd())
	root.AddCommand(c.showCmd())
	root.AddCommand(c.validateCmd())
	root.AddCommand(c.exportCmd())
	root.AddCommand(versionCmd())

	return root
}

// setup resolves configuration and builds the logger. The TUI logs to a
// rotated file; subcommands log to stderr.
func (c *cli) setup(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	c.cfg = cfg

	if cmd == cmd.Root() {
		l, closer, err := logging.NewFile(cfg.LogFile, cfg.LogLevel)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		c.logger, c.closer = l, closer
	} else {
		l, err := logging.New(cmd.ErrOrStderr(), cfg.LogLevel)
		if err != nil {
			return err
		}
		c.logger = l
	}

	cmd.SetContext(logging.WithLogger(cmd.Context(), c.logger))
	c.logger.Debug("config resolved", "export_dir", cfg.ExportDir, "examples_url", cfg.ExamplesURL, "log_level", cfg.LogLevel)
	return nil
}

func (c *cli) close() error {
	if c.closer == nil {
		return nil
	}
	err := c.closer.Close()
	c.closer = nil
	return err
}

// resolveConfig loads the config file and environment, then applies the
// flags that were set explicitly (highest priority).
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("export-dir") {
		cfg.ExportDir, _ = flags.GetString("export-dir")
	}
	if flags.Changed("examples-url") {
		cfg.ExamplesURL, _ = flags.GetString("examples-url")
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if v, _ := flags.GetBool("verbose"); v {
		cfg.LogLevel = "debug"
	}

	level, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		return config.Config{}, err
	}
	cfg.LogLevel = level
	return cfg, nil
}

// userError prefixes err with the message the TUI would show for it.
func userError(err error) error {
	msg := tracker.UserMessage(err)
	if msg == err.Error() {
		return err
	}
	return fmt.Errorf("%s: %w", strings.TrimSuffix(msg, "."), err)
}

// newTracker builds a Tracker from the resolved configuration.
func (c *cli) newTracker() *tracker.Tracker {
	var src bundled.Source = bundled.EmbeddedSource{}
	if c.cfg.ExamplesURL != "" {
		src = bundled.NewHTTPSource(c.cfg.ExamplesURL, bundled.WithTimeout(c.cfg.FetchTimeout))
	}
	return tracker.New(tracker.Options{
		Source:    src,
		Logger:    c.logger,
		ExportDir: c.cfg.ExportDir,
	})
}
