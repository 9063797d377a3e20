// Package script splits multi-line command scripts into per-line token
// lists and executes them strictly in order on one shared session. It is
// engine-agnostic: the session decides what a command means.
package script

import (
	"strings"
	"unicode"
)

// Command is one tokenized script line.
type Command struct {
	// Line is the original line text, trimmed.
	Line string
	// Args is the token list; Args[0] is the command name.
	Args []string
}

// Parse splits a script into commands, one per physical line. Blank lines,
// comment lines (starting # or --), and lines that tokenize to nothing
// produce no entry. Commands never span lines.
func Parse(text string) []Command {
	var cmds []Command
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "--") {
			continue
		}
		args := Tokenize(line)
		if len(args) == 0 {
			continue
		}
		cmds = append(cmds, Command{Line: line, Args: args})
	}
	return cmds
}

// Tokenize splits one line on whitespace outside double quotes. A double
// quote toggles an in-quotes span and is not part of the token; a backslash
// escapes the next character regardless of quote state, the backslash
// itself consumed.
func Tokenize(line string) []string {
	var tokens []string
	var current strings.Builder
	inQuotes := false
	escape := false

	for _, r := range line {
		if escape {
			current.WriteRune(r)
			escape = false
			continue
		}
		switch {
		case r == '\\':
			escape = true
		case r == '"':
			inQuotes = !inQuotes
		case unicode.IsSpace(r) && !inQuotes:
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(r)
		}
	}
	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}
	return tokens
}
