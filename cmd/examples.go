package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/roadtrack/internal/bundled"
)

func (c *cli) examplesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "examples",
		Short: "List the bundled example roadmaps",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			var httpSrc *bundled.HTTPSource
			if c.cfg.ExamplesURL != "" {
				httpSrc = bundled.NewHTTPSource(c.cfg.ExamplesURL)
			}

			// Header.
			fmt.Fprintf(out, "%-12s  %-12s  %s\n", "ID", "Name", "Source")
			fmt.Fprintln(out, strings.Repeat("─", 60))

			examples := bundled.All()
			for _, ex := range examples {
				source := "built-in:" + ex.File
				if httpSrc != nil {
					source = httpSrc.URL(ex)
				}
				fmt.Fprintf(out, "%-12s  %-12s  %s\n", ex.ID, ex.Label, source)
			}

			fmt.Fprintf(out, "\n%d examples\n", len(examples))
			return nil
		},
	}
}
