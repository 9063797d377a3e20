// Package output renders command results in the configured format.
//
// A Renderer is built once per command invocation and owns the output
// writers. ModeAuto resolves against the terminal: interactive sessions
// get bordered tables, pipes get markdown.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// OutputMode selects how results are rendered.
type OutputMode string

// The recognized output modes.
const (
	ModeAuto     OutputMode = "auto"
	ModeTable    OutputMode = "table"
	ModeJSON     OutputMode = "json"
	ModeCSV      OutputMode = "csv"
	ModeMarkdown OutputMode = "md"
)

// Mode normalizes a format string to an OutputMode. Unrecognized values
// fall back to ModeAuto.
func Mode(s string) OutputMode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "table", "text":
		return ModeTable
	case "json":
		return ModeJSON
	case "csv":
		return ModeCSV
	case "md", "markdown":
		return ModeMarkdown
	default:
		return ModeAuto
	}
}

// Renderer writes command output in a single mode.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	isTTY  bool
	mode   OutputMode
}

// NewRenderer creates a renderer, detecting whether out is a terminal.
func NewRenderer(out, errOut io.Writer, mode OutputMode) *Renderer {
	return NewRendererWithTTY(out, errOut, isTerminal(out), mode)
}

// NewRendererWithTTY creates a renderer with an explicit TTY state.
// Used by tests to pin auto-mode resolution.
func NewRendererWithTTY(out, errOut io.Writer, isTTY bool, mode OutputMode) *Renderer {
	return &Renderer{out: out, errOut: errOut, isTTY: isTTY, mode: mode}
}

// isTerminal reports whether w is attached to a character device.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

// EffectiveMode resolves ModeAuto against the TTY state.
func (r *Renderer) EffectiveMode() OutputMode {
	if r.mode != ModeAuto {
		return r.mode
	}
	if r.isTTY {
		return ModeTable
	}
	return ModeMarkdown
}

// IsTTY reports whether output goes to a terminal.
func (r *Renderer) IsTTY() bool {
	return r.isTTY
}

// Out returns the primary output writer, for content that bypasses the
// mode machinery (file exports, generated text).
func (r *Renderer) Out() io.Writer {
	return r.out
}

// Printf writes formatted text to the primary output.
func (r *Renderer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.out, format, args...)
}

// Errorf writes formatted text to the error output.
func (r *Renderer) Errorf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.errOut, format, args...)
}

// KeyValue writes one aligned label/value line.
func (r *Renderer) KeyValue(label, value string) {
	_, _ = fmt.Fprintf(r.out, "%-8s %s\n", label+":", value)
}

// JSON writes v as indented JSON.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
