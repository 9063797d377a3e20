package commands

import (
	"github.com/spf13/cobra"
)

// NewColumnsCommand creates the columns command.
func NewColumnsCommand() *cobra.Command {
	var db string

	cmd := &cobra.Command{
		Use:   "columns <table>",
		Short: "Show a table's columns",
		Long: `Show a table's columns in ordinal order: type, nullability, key
membership, default expression, and comment.`,
		Example: `  leapdb columns users
  leapdb columns orders --db shop`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			cols, err := cc.Adapter.ListColumns(cmd.Context(), args[0], db)
			if err != nil {
				return err
			}
			return cc.Renderer.Columns(cols)
		},
	}

	cmd.Flags().StringVar(&db, "db", "", "Database the table lives in (default: the session's current database)")

	return cmd
}
