package postgres

import (
	"fmt"

	"github.com/leapstack-labs/leapdb/pkg/core"
	"github.com/leapstack-labs/leapdb/pkg/dialect"
)

// Translate renders one schema change as PostgreSQL DDL. PostgreSQL has no
// inline column comment syntax: adding a commented column emits a second,
// best-effort COMMENT ON COLUMN statement, and modifying a column cannot
// carry a comment at all, which is surfaced as a warning.
func (d *Dialect) Translate(table string, op core.AlterOperation) (core.Translation, error) {
	q := d.QuoteIdentifier

	switch op.Kind {
	case core.AlterAddColumn:
		col, err := dialect.RequireColumn(Name, op)
		if err != nil {
			return core.Translation{}, err
		}
		tr := core.Translation{Statements: []core.Statement{{
			SQL: fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s", q(table), dialect.ColumnSpec(q, *col)),
		}}}
		if col.Comment != "" {
			tr.Statements = append(tr.Statements, core.Statement{
				SQL: fmt.Sprintf("COMMENT ON COLUMN %s.%s IS '%s'",
					q(table), q(col.Name), dialect.EscapeSingleQuotes(col.Comment)),
				BestEffort: true,
			})
		}
		return tr, nil

	case core.AlterModifyColumn:
		col, err := dialect.RequireColumn(Name, op)
		if err != nil {
			return core.Translation{}, err
		}
		tr := core.Translation{Statements: []core.Statement{{
			SQL: fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s TYPE %s", q(table), q(col.Name), col.Type),
		}}}
		if col.Comment != "" {
			tr.Warnings = append(tr.Warnings,
				fmt.Sprintf("comment on column %q was not applied: postgresql cannot modify a column and its comment in one operation", col.Name))
		}
		return tr, nil

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
		return single(fmt.Sprintf("DROP INDEX %s", q(name))), nil

	default:
		return core.Translation{}, dialect.Unsupported(Name, op)
	}
}

func single(sql string) core.Translation {
	return core.Translation{Statements: []core.Statement{{SQL: sql}}}
}
