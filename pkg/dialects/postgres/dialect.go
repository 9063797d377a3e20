// Package postgres provides the PostgreSQL dialect definition: type
// normalization rules and schema change translation. This package is pure
// Go with no database driver dependencies, so translation and normalization
// stay testable without a connection.
package postgres

import (
	"github.com/leapstack-labs/leapdb/pkg/core"
	"github.com/leapstack-labs/leapdb/pkg/dialect"
)

func init() {
	dialect.Register(Postgres)
}

// Name is the registry key for this dialect. It matches the engine name
// connection profiles use.
const Name = "postgresql"

// Dialect implements dialect.Dialect for PostgreSQL.
type Dialect struct {
	rules *dialect.RuleSet
}

// Postgres is the registered dialect instance.
var Postgres = &Dialect{rules: ruleSet}

var _ dialect.Dialect = (*Dialect)(nil)

// Name returns the registry key.
func (d *Dialect) Name() string {
	return Name
}

// Normalize converts one raw driver cell keyed by its column type tag.
func (d *Dialect) Normalize(typeTag string, raw any) core.Value {
	return d.rules.Normalize(typeTag, raw)
}

// QuoteIdentifier quotes with double quotes, doubling embedded quotes.
func (d *Dialect) QuoteIdentifier(name string) string {
	return dialect.QuoteWith(name, `"`)
}
