package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapdb/pkg/adapter"
)

// NewReplCommand creates the repl command.
func NewReplCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive query shell",
		Long: `Start an interactive shell against the connected engine.

SQL statements run when terminated with a semicolon and may span lines.
Redis commands run one per line. History persists across sessions.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runQueryREPL(cmd)
		},
	}
}

func runQueryREPL(cmd *cobra.Command) error {
	ctx := cmd.Context()

	cc, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	completer := newReplCompleter(ctx, cc)

	prompt := cc.EngineType + "> "
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		HistoryFile:     historyPath(),
		AutoComplete:    completer,
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	// Key-value engines take one command per line; SQL accumulates until
	// a semicolon.
	_, keyValue := cc.Adapter.(adapter.KeyInspector)

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "LeapDB REPL (engine: %s)\n", cc.EngineType)
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Type .help for commands, .quit to exit")
	_, _ = fmt.Fprintln(cmd.OutOrStdout())

	var multiLineBuffer strings.Builder
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			multiLineBuffer.Reset()
			rl.SetPrompt(prompt)
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		// Handle dot-commands
		if strings.HasPrefix(line, ".") {
			if quit := handleDotCommand(ctx, cmd, cc, line); quit {
				break
			}
			continue
		}

		if keyValue {
			if err := executeAndRender(ctx, cc, line); err != nil {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout())
			continue
		}

		// Accumulate multi-line SQL until semicolon
		multiLineBuffer.WriteString(line)
		if !strings.HasSuffix(line, ";") {
			multiLineBuffer.WriteString(" ")
			rl.SetPrompt("    ...> ")
			continue
		}
		rl.SetPrompt(prompt)

		query := strings.TrimSuffix(multiLineBuffer.String(), ";")
		multiLineBuffer.Reset()

		if err := executeAndRender(ctx, cc, query); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout())
	}

	return nil
}

// executeAndRender executes one query and renders the normalized result.
func executeAndRender(ctx context.Context, cc *CommandContext, text string) error {
	rs, err := cc.Adapter.Query(ctx, text)
	if err != nil {
		return err
	}
	return cc.Renderer.Result(rs)
}

// handleDotCommand executes one REPL dot-command. It returns true when the
// command asks to leave the REPL.
func handleDotCommand(ctx context.Context, cmd *cobra.Command, cc *CommandContext, line string) bool {
	parts := strings.Fields(line)
	command := strings.ToLower(parts[0])

	switch command {
	case ".quit", ".exit":
		return true

	case ".help":
		printREPLHelp(cmd.OutOrStdout())

	case ".databases":
		if dbs, err := cc.Adapter.ListDatabases(ctx); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		} else {
			_ = cc.Renderer.List("DATABASE", dbs)
		}

	case ".tables":
		if tables, err := cc.Adapter.ListTables(ctx, ""); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		} else {
			_ = cc.Renderer.Tables(tables)
		}

	case ".columns":
		if len(parts) < 2 {
			_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Usage: .columns <table>")
			return false
		}
		if cols, err := cc.Adapter.ListColumns(ctx, parts[1], ""); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		} else {
			_ = cc.Renderer.Columns(cols)
		}

	case ".indexes":
		if len(parts) < 2 {
			_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Usage: .indexes <table>")
			return false
		}
		if idxs, err := cc.Adapter.ListIndexes(ctx, parts[1]); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		} else {
			_ = cc.Renderer.Indexes(idxs)
		}

	case ".clear":
		fmt.Print("\033[H\033[2J")

	default:
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Unknown command: %s (type .help for commands)\n", command)
	}
	return false
}

func printREPLHelp(w io.Writer) {
	help := `
Commands:
  .help            Show this help message
  .databases       List databases
  .tables          List tables (or keys, on Redis)
  .columns <name>  Show columns for a table
  .indexes <name>  Show indexes for a table
  .clear           Clear the screen
  .quit / .exit    Exit the REPL

Tips:
  - SQL statements must end with a semicolon (;)
  - Redis commands run one per line, no semicolon needed
  - Use arrow keys to navigate history
  - Tab completion works for table names
`
	_, _ = fmt.Fprintln(w, help)
}

// newReplCompleter creates a readline completer from the session's table
// (or key) names. Best effort: on error only dot-commands complete.
func newReplCompleter(ctx context.Context, cc *CommandContext) *readline.PrefixCompleter {
	var items []readline.PrefixCompleterInterface

	if tables, err := cc.Adapter.ListTables(ctx, ""); err == nil {
		for _, t := range tables {
			items = append(items, readline.PcItem(t.Name))
		}
	}

	items = append(items,
		readline.PcItem(".help"),
		readline.PcItem(".databases"),
		readline.PcItem(".tables"),
		readline.PcItem(".columns"),
		readline.PcItem(".indexes"),
		readline.PcItem(".clear"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	)

	return readline.NewPrefixCompleter(items...)
}

// historyPath returns the REPL history file path, or empty to disable
// persistence when the config directory is unavailable.
func historyPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	path := filepath.Join(dir, "leapdb")
	if err := os.MkdirAll(path, 0755); err != nil {
		return ""
	}
	return filepath.Join(path, "history")
}
