package mysql

import (
	"fmt"

	"github.com/leapstack-labs/leapdb/pkg/core"
	"github.com/leapstack-labs/leapdb/pkg/dialect"
)

// Translate renders one schema change as MySQL DDL. Column comments ride
// inline on the column spec, so every operation is a single statement.
func (d *Dialect) Translate(table string, op core.AlterOperation) (core.Translation, error) {
	q := d.QuoteIdentifier

	switch op.Kind {
	case core.AlterAddColumn:
		col, err := dialect.RequireColumn(Name, op)
		if err != nil {
			return core.Translation{}, err
		}
		return single(fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s%s",
			q(table), dialect.ColumnSpec(q, *col), commentClause(col.Comment))), nil

	case core.AlterModifyColumn:
		col, err := dialect.RequireColumn(Name, op)
		if err != nil {
			return core.Translation{}, err
		}
		return single(fmt.Sprintf("ALTER TABLE %s MODIFY COLUMN %s%s",
			q(table), dialect.ColumnSpec(q, *col), commentClause(col.Comment))), nil

	case core.AlterDropColumn:
		name, err := dialect.RequireName(Name, op, "column name")
		if err != nil {
			return core.Translation{}, err
		}
		return single(fmt.Sprintf("ALTER TABLE %s DROP COLUMN %s", q(table), q(name))), nil

	case core.AlterRenameColumn:
		oldName, newName, err := dialect.RequireRename(Name, op)
		if err != nil {
			return core.Translation{}, err
		}
		return single(fmt.Sprintf("ALTER TABLE %s RENAME COLUMN %s TO %s",
			q(table), q(oldName), q(newName))), nil

	case core.AlterAddIndex:
		idx, err := dialect.RequireIndex(Name, op)
		if err != nil {
			return core.Translation{}, err
		}
		return single(dialect.CreateIndexSQL(q, table, *idx)), nil

	case core.AlterDropIndex:
		name, err := dialect.RequireName(Name, op, "index name")
		if err != nil {
			return core.Translation{}, err
		}
		return single(fmt.Sprintf("DROP INDEX %s ON %s", q(name), q(table))), nil

	default:
		return core.Translation{}, dialect.Unsupported(Name, op)
	}
}

func commentClause(comment string) string {
	if comment == "" {
		return ""
	}
	return fmt.Sprintf(" COMMENT '%s'", dialect.EscapeSingleQuotes(comment))
}

func single(sql string) core.Translation {
	return core.Translation{Statements: []core.Statement{{SQL: sql}}}
}
