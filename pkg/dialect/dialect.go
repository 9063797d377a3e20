// Package dialect defines the per-engine capability surface of the leapdb
// engine: cell normalization, schema change translation, and identifier
// quoting. Concrete dialects live in pkg/dialects, are pure Go with no
// driver dependencies, and register themselves at init time; a session
// resolves its dialect once from the registry when it opens.
package dialect

import (
	"github.com/leapstack-labs/leapdb/pkg/core"
)

// Dialect is the capability interface every supported engine implements.
// The set of implementations is closed: mysql and postgresql today.
type Dialect interface {
	// Name returns the registry key, e.g. "mysql".
	Name() string

	// Normalize converts one raw driver cell into a normalized value,
	// keyed by the column's type tag. It never fails: a cell no strategy
	// can decode degrades along the tag's fallback chain, to null at
	// worst.
	Normalize(typeTag string, raw any) core.Value

	// Translate renders one schema change into the engine's ordered
	// statement list. An operation the engine cannot express returns a
	// *core.TranslationError before anything executes.
	Translate(table string, op core.AlterOperation) (core.Translation, error)

	// QuoteIdentifier quotes a table or column name for this engine,
	// escaping embedded quote characters.
	QuoteIdentifier(name string) string
}
