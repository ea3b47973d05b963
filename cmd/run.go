package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/roadtrack/internal/app"
)

// runApp builds the tracker, preloads the requested roadmap and launches
// the TUI.
func (c *cli) runApp(cmd *cobra.Command, args []string) error {
	defer c.close()

	ctx := cmd.Context()
	tr := c.newTracker()

	file, _ := cmd.Flags().GetString("file")
	example, _ := cmd.Flags().GetString("example")

	switch {
	case file != "":
		if _, err := tr.LoadFromFile(ctx, file); err != nil {
			return userError(err)
		}
	case example != "":
		if _, err := tr.LoadFromBundled(ctx, example); err != nil {
			return userError(err)
		}
	}

	c.logger.Info("starting tui", "file", file, "example", example)
	return app.Run(ctx, app.Options{
		Tracker: tr,
		Logger:  c.logger,
	})
}
