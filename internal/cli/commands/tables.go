package commands

import (
	"github.com/spf13/cobra"
)

// NewTablesCommand creates the tables command.
func NewTablesCommand() *cobra.Command {
	var db string

	cmd := &cobra.Command{
		Use:   "tables",
		Short: "List tables with size and row count metadata",
		Long: `List the tables of a database with catalog metadata: data size,
index size, total size, and estimated row count. Sizes the catalog does
not report render as empty cells.

On Redis this lists keys; size columns stay empty.`,
		Example: `  leapdb tables
  leapdb tables --db analytics
  leapdb tables -o json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			tables, err := cc.Adapter.ListTables(cmd.Context(), db)
			if err != nil {
				return err
			}
			return cc.Renderer.Tables(tables)
		},
	}

	cmd.Flags().StringVar(&db, "db", "", "Database to list (default: the session's current database)")

	return cmd
}
