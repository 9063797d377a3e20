package adapter

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/leapdb/pkg/core"
	"github.com/leapstack-labs/leapdb/pkg/dialect"
)

// ErrNotConnected is returned by operations invoked before Connect.
var ErrNotConnected = errors.New("database connection not established")

// BaseSQLAdapter provides common database/sql functionality for adapters.
// Embed this struct in concrete adapter implementations to get standard
// Close, Ping, Exec, Query, and AlterTable implementations. The Dialect
// field must be set before Query or AlterTable are used.
type BaseSQLAdapter struct {
	DB      *sql.DB
	Cfg     Config
	Logger  *slog.Logger
	Dialect dialect.Dialect
}

// Close closes the database connection.
func (b *BaseSQLAdapter) Close() error {
	if b.DB != nil {
		if b.Logger != nil {
			b.Logger.Debug("closing database connection")
		}
		return b.DB.Close()
	}
	return nil
}

// Ping verifies the connection with a round trip.
func (b *BaseSQLAdapter) Ping(ctx context.Context) error {
	if b.DB == nil {
		return ErrNotConnected
	}
	var one int
	if err := b.DB.QueryRowContext(ctx, "SELECT 1").Scan(&one); err != nil {
		return fmt.Errorf("connection test failed: %w", err)
	}
	return nil
}

// Exec executes a SQL statement that doesn't return rows.
func (b *BaseSQLAdapter) Exec(ctx context.Context, sqlStr string) error {
	if b.DB == nil {
		return ErrNotConnected
	}
	_, err := b.DB.ExecContext(ctx, sqlStr)
	if err != nil {
		return fmt.Errorf("failed to execute SQL: %w", err)
	}
	return nil
}

// Query executes a SQL statement and returns the fully normalized result.
// Every cell is decoded through the adapter's dialect using the driver's
// reported column type tag.
func (b *BaseSQLAdapter) Query(ctx context.Context, sqlStr string) (*core.ResultSet, error) {
	if b.DB == nil {
		return nil, ErrNotConnected
	}
	rows, err := b.DB.QueryContext(ctx, sqlStr)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read result columns: %w", err)
	}
	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, fmt.Errorf("failed to read result columns: %w", err)
	}
	tags := make([]string, len(types))
	for i, t := range types {
		tags[i] = t.DatabaseTypeName()
	}

	result := &core.ResultSet{Columns: columns, Rows: []core.Row{}}
	values := make([]any, len(columns))
	ptrs := make([]any, len(columns))
	for i := range values {
		ptrs[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		row := make(core.Row, len(columns))
		for i, raw := range values {
			row[i] = b.Dialect.Normalize(tags[i], raw)
		}
		result.Append(row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read result rows: %w", err)
	}
	return result, nil
}

// AlterTable translates the operation for the adapter's dialect and runs
// the resulting statements in order. A best-effort statement that fails is
// logged and skipped; a required statement that fails aborts the run. The
// translation is always returned so callers can report warnings and show
// what was attempted.
func (b *BaseSQLAdapter) AlterTable(ctx context.Context, table string, op core.AlterOperation) (core.Translation, error) {
	tr, err := b.Dialect.Translate(table, op)
	if err != nil {
		return tr, err
	}
	if b.DB == nil {
		return tr, ErrNotConnected
	}
	for i, stmt := range tr.Statements {
		if _, err := b.DB.ExecContext(ctx, stmt.SQL); err != nil {
			if stmt.BestEffort {
				if b.Logger != nil {
					b.Logger.Warn("best-effort statement failed", "sql", stmt.SQL, "error", err)
				}
				continue
			}
			return tr, &core.StatementError{Index: i, SQL: stmt.SQL, Err: err}
		}
	}
	return tr, nil
}

// IsConnected returns true if the database connection is established.
func (b *BaseSQLAdapter) IsConnected() bool {
	return b.DB != nil
}
