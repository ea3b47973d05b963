package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/roadtrack/internal/logging"
	"github.com/abhisek/roadtrack/internal/roadmap"
)

func (c *cli) validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate PATH",
		Short: "Check that a file is a valid roadmap",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			logger := logging.FromContext(cmd.Context())

			f, err := os.Open(path)
			if err != nil {
				return &roadmap.ReadError{Err: err}
			}
			defer f.Close()

			rm, err := roadmap.Load(cmd.Context(), f)
			if err != nil {
				var ve *roadmap.ValidationError
				if errors.As(err, &ve) {
					logger.Debug("validation failed", "path", path, "problems", len(ve.Problems))
				}
				return fmt.Errorf("%s: %w", path, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s: %q with %d items\n", path, rm.Name, len(rm.Items))
			return nil
		},
	}
}
