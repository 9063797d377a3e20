package commands

import (
	"github.com/spf13/cobra"
)

// NewIndexesCommand creates the indexes command.
func NewIndexesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "indexes <table>",
		Short: "Show a table's indexes",
		Example: `  leapdb indexes users
  leapdb indexes orders -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			idxs, err := cc.Adapter.ListIndexes(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return cc.Renderer.Indexes(idxs)
		},
	}
}
