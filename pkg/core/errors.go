package core

import "fmt"

// TranslationError reports a schema change an engine cannot express. It is
// raised before any statement executes.
type TranslationError struct {
	Engine string
	Kind   AlterKind
	Reason string
}

func (e *TranslationError) Error() string {
	return fmt.Sprintf("%s: cannot translate %s: %s", e.Engine, e.Kind, e.Reason)
}

// StatementError reports a failed statement together with its position in
// the translated list, so callers can tell which step of a multi-statement
// change broke.
type StatementError struct {
	Index int
	SQL   string
	Err   error
}

func (e *StatementError) Error() string {
	return fmt.Sprintf("statement %d (%s): %v", e.Index+1, e.SQL, e.Err)
}

func (e *StatementError) Unwrap() error {
	return e.Err
}
