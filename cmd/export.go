package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/roadtrack/internal/roadmap"
)

func (c *cli) exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Load a roadmap and write it back in canonical export form",
		Long: "Export loads and validates a roadmap file, fills in defaults for missing statuses and notes, " +
			"and writes the result to the export directory. Use --out - to write to stdout.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tr := c.newTracker()

			file, _ := cmd.Flags().GetString("file")
			out, _ := cmd.Flags().GetString("out")

			rm, err := tr.LoadFromFile(cmd.Context(), file)
			if err != nil {
				return userError(err)
			}

			if out == "-" {
				return roadmap.Export(cmd.OutOrStdout(), rm)
			}

			path, err := tr.ExportActive(out)
			if err != nil {
				return userError(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Exported to", path)
			return nil
		},
	}

	cmd.Flags().String("file", "", "Roadmap JSON file to export")
	cmd.Flags().String("out", "", "Output file name (default: <roadmap-name>-progress.json)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
