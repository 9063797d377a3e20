package postgres

import (
	"github.com/leapstack-labs/leapdb/pkg/dialect"
)

// Normalization rules keyed by the tags the pgx stdlib driver reports via
// DatabaseTypeName (uppercase type names, e.g. INT8, TIMESTAMPTZ). Integer
// tags match exactly so INTERVAL stays on the unknown chain. TIMESTAMPTZ
// renders in UTC so the canonical form does not depend on the session zone.
var rules = []dialect.Rule{
	{
		Tags:  []string{"BOOL", "BOOLEAN"},
		Chain: dialect.Chain{dialect.DecodeBool, dialect.DecodeText},
	},
	{
		Tags:  []string{"INT2", "INT4", "INT8"},
		Chain: dialect.Chain{dialect.DecodeInt, dialect.DecodeUint, dialect.DecodeText},
	},
	{
		Tags:  []string{"FLOAT4", "FLOAT8", "NUMERIC", "MONEY"},
		Chain: dialect.Chain{dialect.DecodeFloat, dialect.DecodeText},
	},
	{
		Tags:  []string{"TIMESTAMP"},
		Chain: dialect.Chain{dialect.DecodeTime(dialect.DateTimeLayout), dialect.DecodeText},
	},
	{
		Tags:  []string{"TIMESTAMPTZ"},
		Chain: dialect.Chain{dialect.DecodeTimeUTC(dialect.TimestampTZLayout), dialect.DecodeText},
	},
	{
		Tags:  []string{"DATE"},
		Chain: dialect.Chain{dialect.DecodeTime(dialect.DateLayout), dialect.DecodeText},
	},
	{
		Tags:  []string{"TIME", "TIMETZ"},
		Chain: dialect.Chain{dialect.DecodeTime(dialect.TimeLayout), dialect.DecodeText},
	},
	{
		Tags:  []string{"JSON", "JSONB"},
		Chain: dialect.Chain{dialect.DecodeJSON, dialect.DecodeText},
	},
	{
		Tags:  []string{"BYTEA", "VARBINARY", "BINARY", "BLOB"},
		Chain: dialect.Chain{dialect.DecodeBinary},
	},
	{
		Tags:  []string{"TEXT", "VARCHAR", "BPCHAR", "CHAR", "NAME"},
		Chain: dialect.Chain{dialect.DecodeText, dialect.DecodeUnknownBinary},
	},
}

var ruleSet = dialect.NewRuleSet(rules, dialect.Chain{
	dialect.DecodeText,
	dialect.DecodeUnknownBinary,
})
