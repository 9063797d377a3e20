package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapdb/pkg/adapter"
)

// NewInspectCommand creates the inspect command.
func NewInspectCommand() *cobra.Command {
	var db string

	cmd := &cobra.Command{
		Use:   "inspect <key>",
		Short: "Inspect a key's type, TTL, and value",
		Long: `Inspect one key of a key-value engine: its type, remaining TTL,
rendered value, and element count for collections.

Only Redis sessions support key inspection.`,
		Example: `  leapdb -p cache inspect user:1
  leapdb -p cache inspect session:abc --db 3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			inspector, ok := cc.Adapter.(adapter.KeyInspector)
			if !ok {
				return fmt.Errorf("%s does not support key inspection\nHint: inspect works on Redis sessions", cc.EngineType)
			}

			info, err := inspector.InspectKey(cmd.Context(), db, args[0])
			if err != nil {
				return err
			}
			return cc.Renderer.Key(info)
		},
	}

	cmd.Flags().StringVar(&db, "db", "", "Keyspace to select (default: the session's database)")

	return cmd
}
