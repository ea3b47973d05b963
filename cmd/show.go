package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/roadtrack/internal/roadmap"
)

func (c *cli) showCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print a roadmap's items, statuses and progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			tr := c.newTracker()

			file, _ := cmd.Flags().GetString("file")
			example, _ := cmd.Flags().GetString("example")

			var err error
			switch {
			case file != "":
				_, err = tr.LoadFromFile(ctx, file)
			case example != "":
				_, err = tr.LoadFromBundled(ctx, example)
			default:
				return errors.New("use --file or --example")
			}
			if err != nil {
				return userError(err)
			}

			rm, _ := tr.Active()
			printRoadmap(cmd.OutOrStdout(), rm)
			return nil
		},
	}

	cmd.Flags().String("file", "", "Roadmap JSON file to show")
	cmd.Flags().String("example", "", "Bundled example to show (react, vue, javascript)")
	cmd.MarkFlagsMutuallyExclusive("file", "example")

	return cmd
}

func printRoadmap(out io.Writer, rm *roadmap.Roadmap) {
	fmt.Fprintln(out, rm.Name)
	if rm.Description != "" {
		fmt.Fprintln(out, rm.Description)
	}
	fmt.Fprintln(out)

	// Header.
	fmt.Fprintf(out, "   %-16s  %-40s  %-12s  %s\n", "ID", "Name", "Status", "Due")
	fmt.Fprintln(out, strings.Repeat("─", 86))

	for _, it := range rm.Items {
		name := it.Name
		if r := []rune(name); len(r) > 40 {
			name = string(r[:37]) + "..."
		}
		fmt.Fprintf(out, "%s  %-16s  %-40s  %-12s  %s\n",
			it.Status.Icon(), it.ID, name, it.Status.Label(), it.DueDate)
	}

	counts := roadmap.CountByStatus(rm)
	fmt.Fprintf(out, "\n%d of %d completed, %d in progress (%d%%)\n",
		counts[roadmap.StatusCompleted], len(rm.Items), counts[roadmap.StatusInProgress], roadmap.Progress(rm))
}
