package mysql

import (
	"github.com/leapstack-labs/leapdb/pkg/dialect"
)

// Normalization rules keyed by the tags go-sql-driver/mysql reports via
// DatabaseTypeName. Unsigned integer tags carry an "UNSIGNED " prefix.
// Tags no rule matches take the unknown chain: text when the bytes read as
// UTF-8, a short tagged hex preview otherwise.
var rules = []dialect.Rule{
	{
		Tags:  []string{"BOOLEAN", "BOOL"},
		Chain: dialect.Chain{dialect.DecodeBool, dialect.DecodeText},
	},
	{
		Tags:     []string{"YEAR"},
		Prefixes: []string{"TINYINT", "SMALLINT", "MEDIUMINT", "INT", "INTEGER", "BIGINT", "UNSIGNED"},
		Chain:    dialect.Chain{dialect.DecodeInt, dialect.DecodeUint, dialect.DecodeText},
	},
	{
		Tags:  []string{"FLOAT", "DOUBLE", "REAL", "NUMERIC", "DECIMAL"},
		Chain: dialect.Chain{dialect.DecodeFloat, dialect.DecodeText},
	},
	{
		Tags:  []string{"BIT"},
		Chain: dialect.Chain{dialect.DecodeBit, dialect.DecodeText},
	},
	{
		Tags:  []string{"JSON"},
		Chain: dialect.Chain{dialect.DecodeJSON, dialect.DecodeText},
	},
	{
		Tags:  []string{"TIMESTAMP", "DATETIME"},
		Chain: dialect.Chain{dialect.DecodeTime(dialect.DateTimeLayout), dialect.DecodeText},
	},
	{
		Tags:  []string{"DATE"},
		Chain: dialect.Chain{dialect.DecodeTime(dialect.DateLayout), dialect.DecodeText},
	},
	{
		Tags:  []string{"TIME"},
		Chain: dialect.Chain{dialect.DecodeTime(dialect.TimeLayout), dialect.DecodeText},
	},
	{
		Tags:  []string{"BINARY", "VARBINARY", "BLOB", "TINYBLOB", "MEDIUMBLOB", "LONGBLOB"},
		Chain: dialect.Chain{dialect.DecodeBinary},
	},
	{
		Tags:  []string{"CHAR", "VARCHAR", "TEXT", "TINYTEXT", "MEDIUMTEXT", "LONGTEXT", "ENUM", "SET"},
		Chain: dialect.Chain{dialect.DecodeText, dialect.DecodeUnknownBinary},
	},
}

var ruleSet = dialect.NewRuleSet(rules, dialect.Chain{
	dialect.DecodeText,
	dialect.DecodeUnknownBinary,
})
