// Package core defines the shared language of the leapdb engine.
//
// This package contains:
//   - The normalized value model (Value, Row, ResultSet)
//   - Schema entities (ColumnDef, IndexDef, AlterOperation, TableInfo)
//   - Translation output types (Statement, Translation)
//   - The error taxonomy shared by dialects and adapters
//
// The Golden Rule: pkg/core imports ONLY the stdlib.
// All other packages depend on core, not the reverse.
package core
