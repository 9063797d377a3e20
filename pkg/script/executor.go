package script

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
)

// Session executes one command against a live connection. The first
// argument is the command name, the rest its arguments; the session is
// command-agnostic. A nil reply with a nil error means the command
// succeeded with an empty result.
type Session interface {
	Do(ctx context.Context, args ...any) (any, error)
}

// Result pairs one script line with its stringified reply. The JSON field
// names match what result renderers expect.
type Result struct {
	Command string `json:"command"`
	Output  string `json:"result"`
}

// Executor runs scripts on one shared session, strictly in order.
type Executor struct {
	session Session
	logger  *slog.Logger
}

// NewExecutor creates an executor over the session.
func NewExecutor(session Session, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Executor{session: session, logger: logger}
}

// Run executes every command of the script in order and returns exactly one
// entry per tokenized line. A failing command records an inline error entry
// and the script continues; it never aborts the remaining lines.
func (e *Executor) Run(ctx context.Context, text string) []Result {
	cmds := Parse(text)
	results := make([]Result, 0, len(cmds))

	for _, cmd := range cmds {
		args := make([]any, len(cmd.Args))
		for i, a := range cmd.Args {
			args[i] = a
		}

		reply, err := e.session.Do(ctx, args...)
		if err != nil {
			e.logger.Debug("command failed", "command", cmd.Args[0], "error", err)
			results = append(results, Result{Command: cmd.Line, Output: fmt.Sprintf("Error: %v", err)})
			continue
		}
		results = append(results, Result{Command: cmd.Line, Output: Stringify(reply)})
	}
	return results
}

// Stringify renders a command reply the way an interactive client shows it:
// nil as "(nil)", status and bulk strings as their text, integers in
// decimal, and nested replies through a debug form.
func Stringify(reply any) string {
	switch v := reply.(type) {
	case nil:
		return "(nil)"
	case string:
		return v
	case []byte:
		return string(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}
