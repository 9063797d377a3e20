package dialect

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/leapdb/pkg/core"
)

// QuoteWith quotes an identifier with the given quote string, doubling any
// embedded quote characters.
func QuoteWith(name, quote string) string {
	return quote + strings.ReplaceAll(name, quote, quote+quote) + quote
}

// EscapeSingleQuotes doubles single quotes for embedding in a string
// literal. Both supported SQL engines escape this way.
func EscapeSingleQuotes(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// ColumnSpec renders the column clause shared by the SQL engines: quoted
// name, raw type, nullability, default literal, primary key. Unknown
// nullability emits neither NULL nor NOT NULL. Comments are engine-specific
// and left to the caller.
func ColumnSpec(quote func(string) string, col core.ColumnDef) string {
	var b strings.Builder
	b.WriteString(quote(col.Name))
	b.WriteString(" ")
	b.WriteString(col.Type)
	switch col.Nullability {
	case core.NullabilityNotNull:
		b.WriteString(" NOT NULL")
	case core.NullabilityNullable:
		b.WriteString(" NULL")
	}
	if col.Default != "" {
		b.WriteString(" DEFAULT ")
		b.WriteString(col.Default)
	}
	if col.PrimaryKey {
		b.WriteString(" PRIMARY KEY")
	}
	return b.String()
}

// CreateIndexSQL renders CREATE [UNIQUE] INDEX with the index's columns in
// definition order.
func CreateIndexSQL(quote func(string) string, table string, idx core.IndexDef) string {
	cols := make([]string, len(idx.Columns))
	for i, c := range idx.Columns {
		cols[i] = quote(c)
	}
	unique := ""
	if idx.Unique {
		unique = "UNIQUE "
	}
	return fmt.Sprintf("CREATE %sINDEX %s ON %s (%s)", unique, quote(idx.Name), quote(table), strings.Join(cols, ", "))
}

// Payload validators shared by the translators. Each returns a
// *core.TranslationError naming the missing piece, so callers learn what
// was wrong before any statement executes.

// RequireColumn checks the column payload of AddColumn and ModifyColumn.
func RequireColumn(engine string, op core.AlterOperation) (*core.ColumnDef, error) {
	if op.Column == nil {
		return nil, &core.TranslationError{Engine: engine, Kind: op.Kind, Reason: "missing column definition"}
	}
	if op.Column.Name == "" {
		return nil, &core.TranslationError{Engine: engine, Kind: op.Kind, Reason: "missing column name"}
	}
	if op.Column.Type == "" {
		return nil, &core.TranslationError{Engine: engine, Kind: op.Kind, Reason: "missing column type"}
	}
	return op.Column, nil
}

// RequireName checks the target name of DropColumn and DropIndex.
func RequireName(engine string, op core.AlterOperation, what string) (string, error) {
	if op.Name == "" {
		return "", &core.TranslationError{Engine: engine, Kind: op.Kind, Reason: "missing " + what}
	}
	return op.Name, nil
}

// RequireRename checks that RenameColumn carries both names.
func RequireRename(engine string, op core.AlterOperation) (oldName, newName string, err error) {
	if op.Name == "" {
		return "", "", &core.TranslationError{Engine: engine, Kind: op.Kind, Reason: "missing column name"}
	}
	if op.NewName == "" {
		return "", "", &core.TranslationError{Engine: engine, Kind: op.Kind, Reason: "missing new name"}
	}
	return op.Name, op.NewName, nil
}

// RequireIndex checks the index payload of AddIndex.
func RequireIndex(engine string, op core.AlterOperation) (*core.IndexDef, error) {
	if op.Index == nil {
		return nil, &core.TranslationError{Engine: engine, Kind: op.Kind, Reason: "missing index definition"}
	}
	if op.Index.Name == "" {
		return nil, &core.TranslationError{Engine: engine, Kind: op.Kind, Reason: "missing index name"}
	}
	if len(op.Index.Columns) == 0 {
		return nil, &core.TranslationError{Engine: engine, Kind: op.Kind, Reason: "missing index columns"}
	}
	return op.Index, nil
}

// Unsupported builds the translation error for a variant the engine has no
// rendering for.
func Unsupported(engine string, op core.AlterOperation) error {
	return &core.TranslationError{Engine: engine, Kind: op.Kind, Reason: "unsupported operation"}
}
