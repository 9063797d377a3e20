package commands

import (
	"github.com/spf13/cobra"
)

// NewDatabasesCommand creates the databases command.
func NewDatabasesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "databases",
		Short: "List databases on the connected server",
		Long: `List the databases visible to the session.

On Redis this lists the 16 numbered keyspaces with their key counts.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			dbs, err := cc.Adapter.ListDatabases(cmd.Context())
			if err != nil {
				return err
			}
			return cc.Renderer.List("DATABASE", dbs)
		},
	}
}
