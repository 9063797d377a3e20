package core

// =============================================================================
// Nullability
// =============================================================================

// Nullability is the tri-state nullability of a column. The zero value is
// NullabilityUnknown, for callers that do not state a preference.
type Nullability int

const (
	// NullabilityUnknown means the caller left nullability unspecified.
	NullabilityUnknown Nullability = iota
	// NullabilityNullable means the column accepts NULL.
	NullabilityNullable
	// NullabilityNotNull means the column rejects NULL.
	NullabilityNotNull
)

// String returns the string representation of the nullability.
func (n Nullability) String() string {
	switch n {
	case NullabilityNullable:
		return "nullable"
	case NullabilityNotNull:
		return "not null"
	default:
		return "unknown"
	}
}

// NullabilityFromBool converts a known nullable flag to the tri-state form.
func NullabilityFromBool(nullable bool) Nullability {
	if nullable {
		return NullabilityNullable
	}
	return NullabilityNotNull
}

// MarshalText encodes the nullability as its string form, so JSON carries
// "nullable" rather than an enum ordinal.
func (n Nullability) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}

// UnmarshalText decodes the string form produced by MarshalText.
func (n *Nullability) UnmarshalText(text []byte) error {
	switch string(text) {
	case "nullable":
		*n = NullabilityNullable
	case "not null":
		*n = NullabilityNotNull
	default:
		*n = NullabilityUnknown
	}
	return nil
}

// =============================================================================
// Column and index definitions
// =============================================================================

// ColumnDef describes a column, either as introspected from a catalog or as
// requested in a schema change. Type carries the raw engine type string
// (e.g. "VARCHAR(255)", "jsonb"). Default holds a literal expression spliced
// into DDL as written, so an empty string means no default. Comment empty
// means no comment.
type ColumnDef struct {
	Name        string      `json:"name"`
	Type        string      `json:"type"`
	PrimaryKey  bool        `json:"primary_key"`
	Nullability Nullability `json:"nullability"`
	Default     string      `json:"default,omitempty"`
	Comment     string      `json:"comment,omitempty"`
}

// IndexDef describes an index. Column order is semantically significant and
// is preserved through introspection and translation.
type IndexDef struct {
	Name    string   `json:"name"`
	Columns []string `json:"columns"`
	Unique  bool     `json:"unique"`
	Primary bool     `json:"primary"`
	Comment string   `json:"comment,omitempty"`
}

// TableInfo is catalog metadata for one table. Size and count fields are
// Values so oversized unsigned counts degrade to exact decimal text instead
// of wrapping; engines that do not report a field leave it null.
type TableInfo struct {
	Name      string `json:"name"`
	DataSize  Value  `json:"data_size"`
	IndexSize Value  `json:"index_size"`
	TotalSize Value  `json:"total_size"`
	RowCount  Value  `json:"row_count"`
	Comment   string `json:"comment,omitempty"`
}

// =============================================================================
// Alter operations
// =============================================================================

// AlterKind identifies an AlterOperation variant.
type AlterKind int

// The closed set of schema change variants.
const (
	AlterAddColumn AlterKind = iota
	AlterModifyColumn
	AlterDropColumn
	AlterRenameColumn
	AlterAddIndex
	AlterDropIndex
)

// String returns the string representation of the alter kind.
func (k AlterKind) String() string {
	switch k {
	case AlterAddColumn:
		return "add column"
	case AlterModifyColumn:
		return "modify column"
	case AlterDropColumn:
		return "drop column"
	case AlterRenameColumn:
		return "rename column"
	case AlterAddIndex:
		return "add index"
	case AlterDropIndex:
		return "drop index"
	default:
		return "unknown"
	}
}

// AlterOperation is one schema change request against a table. Which payload
// fields are meaningful depends on Kind; translators check the required
// payload and reject the operation before anything executes. Construct
// operations through the constructor functions.
type AlterOperation struct {
	Kind AlterKind

	// Column carries the definition for AddColumn and ModifyColumn.
	Column *ColumnDef

	// Name is the target column name for DropColumn, the old name for
	// RenameColumn, and the index name for DropIndex.
	Name string

	// NewName is the new column name for RenameColumn.
	NewName string

	// Index carries the definition for AddIndex.
	Index *IndexDef
}

// AddColumn builds an add-column operation.
func AddColumn(col ColumnDef) AlterOperation {
	return AlterOperation{Kind: AlterAddColumn, Column: &col}
}

// ModifyColumn builds a modify-column operation.
func ModifyColumn(col ColumnDef) AlterOperation {
	return AlterOperation{Kind: AlterModifyColumn, Column: &col}
}

// DropColumn builds a drop-column operation.
func DropColumn(name string) AlterOperation {
	return AlterOperation{Kind: AlterDropColumn, Name: name}
}

// RenameColumn builds a rename-column operation.
func RenameColumn(oldName, newName string) AlterOperation {
	return AlterOperation{Kind: AlterRenameColumn, Name: oldName, NewName: newName}
}

// AddIndex builds an add-index operation.
func AddIndex(idx IndexDef) AlterOperation {
	return AlterOperation{Kind: AlterAddIndex, Index: &idx}
}

// DropIndex builds a drop-index operation.
func DropIndex(name string) AlterOperation {
	return AlterOperation{Kind: AlterDropIndex, Name: name}
}

// =============================================================================
// Translation output
// =============================================================================

// Statement is one executable DDL statement produced by translation.
type Statement struct {
	SQL string `json:"sql"`

	// BestEffort marks a statement whose failure must not mask the
	// success of the statements before it (e.g. a comment attached after
	// the column itself was added).
	BestEffort bool `json:"best_effort,omitempty"`
}

// Translation is the ordered statement list for one AlterOperation, plus
// warnings about parts of the request the engine cannot express. Statements
// execute in slice order.
type Translation struct {
	Statements []Statement `json:"statements"`
	Warnings   []string    `json:"warnings,omitempty"`
}
