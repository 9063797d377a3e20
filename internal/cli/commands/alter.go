package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapdb/pkg/core"
	"github.com/leapstack-labs/leapdb/pkg/dialect"
)

// NewAlterCommand creates the alter command and its schema change verbs.
func NewAlterCommand() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "alter",
		Short: "Apply a schema change through per-engine SQL generation",
		Long: `Apply one schema change to a table. The change is described once and
translated into the connected engine's SQL, so the same invocation works
against MySQL and PostgreSQL.

Changes the engine can only approximate are marked best effort in the
generated DDL; translation warnings go to stderr. Use --dry-run to print
the statements without executing them.`,
		Example: `  leapdb alter add-column users age INT --not-null --default 0
  leapdb alter modify-column users age BIGINT
  leapdb alter rename-column users nick nickname
  leapdb alter add-index users idx_nick nick
  leapdb alter drop-index users idx_nick --dry-run`,
	}

	cmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "Print the generated statements without executing them")

	cmd.AddCommand(newAddColumnCommand(&dryRun))
	cmd.AddCommand(newModifyColumnCommand(&dryRun))
	cmd.AddCommand(newDropColumnCommand(&dryRun))
	cmd.AddCommand(newRenameColumnCommand(&dryRun))
	cmd.AddCommand(newAddIndexCommand(&dryRun))
	cmd.AddCommand(newDropIndexCommand(&dryRun))

	return cmd
}

// columnFlags are the shared flags describing a column in add-column and
// modify-column.
type columnFlags struct {
	notNull  bool
	nullable bool
	def      string
	comment  string
}

func (f *columnFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.notNull, "not-null", false, "Mark the column NOT NULL")
	cmd.Flags().BoolVar(&f.nullable, "nullable", false, "Mark the column explicitly nullable")
	cmd.Flags().StringVar(&f.def, "default", "", "Default expression, spliced into the DDL as written")
	cmd.Flags().StringVar(&f.comment, "comment", "", "Column comment")
}

// columnDef builds the column definition. Nullability stays unspecified
// unless one of the flags was given.
func (f *columnFlags) columnDef(name, typ string) (core.ColumnDef, error) {
	if f.notNull && f.nullable {
		return core.ColumnDef{}, fmt.Errorf("--not-null and --nullable are mutually exclusive")
	}

	col := core.ColumnDef{Name: name, Type: typ, Default: f.def, Comment: f.comment}
	switch {
	case f.notNull:
		col.Nullability = core.NullabilityNotNull
	case f.nullable:
		col.Nullability = core.NullabilityNullable
	}
	return col, nil
}

func newAddColumnCommand(dryRun *bool) *cobra.Command {
	flags := &columnFlags{}

	cmd := &cobra.Command{
		Use:   "add-column <table> <column> <type...>",
		Short: "Add a column",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			col, err := flags.columnDef(args[1], strings.Join(args[2:], " "))
			if err != nil {
				return err
			}
			return runAlter(cmd, args[0], core.AddColumn(col), *dryRun)
		},
	}

	flags.register(cmd)
	return cmd
}

func newModifyColumnCommand(dryRun *bool) *cobra.Command {
	flags := &columnFlags{}

	cmd := &cobra.Command{
		Use:   "modify-column <table> <column> <type...>",
		Short: "Change a column's type, nullability, default, or comment",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			col, err := flags.columnDef(args[1], strings.Join(args[2:], " "))
			if err != nil {
				return err
			}
			return runAlter(cmd, args[0], core.ModifyColumn(col), *dryRun)
		},
	}

	flags.register(cmd)
	return cmd
}

func newDropColumnCommand(dryRun *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "drop-column <table> <column>",
		Short: "Drop a column",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAlter(cmd, args[0], core.DropColumn(args[1]), *dryRun)
		},
	}
}

func newRenameColumnCommand(dryRun *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "rename-column <table> <old> <new>",
		Short: "Rename a column",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAlter(cmd, args[0], core.RenameColumn(args[1], args[2]), *dryRun)
		},
	}
}

func newAddIndexCommand(dryRun *bool) *cobra.Command {
	var unique bool
	var comment string

	cmd := &cobra.Command{
		Use:   "add-index <table> <index> <columns...>",
		Short: "Add an index",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx := core.IndexDef{
				Name:    args[1],
				Columns: splitColumns(args[2:]),
				Unique:  unique,
				Comment: comment,
			}
			return runAlter(cmd, args[0], core.AddIndex(idx), *dryRun)
		},
	}

	cmd.Flags().BoolVar(&unique, "unique", false, "Create a unique index")
	cmd.Flags().StringVar(&comment, "comment", "", "Index comment")
	return cmd
}

func newDropIndexCommand(dryRun *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "drop-index <table> <index>",
		Short: "Drop an index",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAlter(cmd, args[0], core.DropIndex(args[1]), *dryRun)
		},
	}
}

// splitColumns accepts both space- and comma-separated column lists.
func splitColumns(args []string) []string {
	var cols []string
	for _, part := range strings.Split(strings.Join(args, ","), ",") {
		if c := strings.TrimSpace(part); c != "" {
			cols = append(cols, c)
		}
	}
	return cols
}

func runAlter(cmd *cobra.Command, table string, op core.AlterOperation, dryRun bool) error {
	if dryRun {
		cc := NewCommandContextWithoutConnection(cmd)

		adapterCfg, err := resolveAdapterConfig(cc.Cfg)
		if err != nil {
			return err
		}
		d, ok := dialect.Get(adapterCfg.Type)
		if !ok {
			return dialect.Unsupported(adapterCfg.Type, op)
		}

		tr, err := d.Translate(table, op)
		if err != nil {
			return err
		}
		return cc.Renderer.Translation(tr)
	}

	cc, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	// Render whatever translated even when execution failed partway, so
	// the operator can see which statements ran.
	tr, execErr := cc.Adapter.AlterTable(cmd.Context(), table, op)
	if len(tr.Statements) > 0 || len(tr.Warnings) > 0 {
		if err := cc.Renderer.Translation(tr); err != nil {
			return err
		}
	}
	return execErr
}
