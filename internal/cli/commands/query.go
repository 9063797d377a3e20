package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// QueryOptions holds options for the query command.
type QueryOptions struct {
	Input string
}

// NewQueryCommand creates the query command.
func NewQueryCommand() *cobra.Command {
	opts := &QueryOptions{}

	cmd := &cobra.Command{
		Use:   "query [text]",
		Short: "Run a query against the connected engine",
		Long: `Run a query against the connected engine and print the normalized result.

SQL engines take one SQL statement. Redis takes a command script: one
command per line, blank lines and #-comments ignored. Results come back
in one shape regardless of engine, so the output formats work the same
everywhere.

When invoked without arguments on a terminal, enters interactive REPL mode.`,
		Example: `  # Execute SQL directly
  leapdb query "SELECT * FROM users WHERE age > 30"

  # Redis commands work the same way
  leapdb -p cache query "GET greeting"

  # Read from a file
  leapdb query -i report.sql

  # Pipe a query in, get machine-readable output
  echo "SELECT * FROM users" | leapdb query -o json

  # Interactive mode
  leapdb query`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "Read the query from a file")

	return cmd
}

func runQuery(cmd *cobra.Command, args []string, opts *QueryOptions) error {
	// Determine query source
	var text string

	switch {
	case len(args) > 0:
		text = strings.Join(args, " ")
	case opts.Input != "":
		content, err := os.ReadFile(opts.Input)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}
		text = string(content)
	case !isTerminal(os.Stdin):
		// Read from stdin (piped input)
		content, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		text = string(content)
	default:
		// No input, TTY detected - enter REPL mode
		return runQueryREPL(cmd)
	}

	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("empty query")
	}

	cc, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	rs, err := cc.Adapter.Query(cmd.Context(), text)
	if err != nil {
		return err
	}
	return cc.Renderer.Result(rs)
}

func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}
