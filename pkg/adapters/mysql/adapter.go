// Package mysql provides a MySQL database adapter for leapdb.
package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	_ "github.com/go-sql-driver/mysql"

	"github.com/leapstack-labs/leapdb/pkg/adapter"
	"github.com/leapstack-labs/leapdb/pkg/core"
	mysqldialect "github.com/leapstack-labs/leapdb/pkg/dialects/mysql"
)

// Adapter implements the adapter.Adapter interface for MySQL.
type Adapter struct {
	adapter.BaseSQLAdapter
}

// New creates a new MySQL adapter instance.
// If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Adapter{
		BaseSQLAdapter: adapter.BaseSQLAdapter{
			Logger:  logger,
			Dialect: mysqldialect.MySQL,
		},
	}
}

// Connect establishes a connection to MySQL.
func (a *Adapter) Connect(ctx context.Context, cfg adapter.Config) error {
	dsn := buildMySQLDSN(cfg)

	a.Logger.Debug("connecting to mysql", slog.String("host", cfg.Host), slog.String("database", cfg.Database))

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return fmt.Errorf("failed to open mysql connection: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping mysql: %w", err)
	}

	a.DB = db
	a.Cfg = cfg
	return nil
}

// buildMySQLDSN constructs a go-sql-driver connection string.
// parseTime is always enabled so temporal columns scan as time.Time.
func buildMySQLDSN(cfg adapter.Config) string {
	host := cfg.Host
	if host == "" {
		host = "localhost"
	}

	port := cfg.Port
	if port == 0 {
		port = 3306
	}

	var b strings.Builder
	if cfg.Username != "" {
		b.WriteString(cfg.Username)
		if cfg.Password != "" {
			b.WriteString(":")
			b.WriteString(cfg.Password)
		}
		b.WriteString("@")
	}
	fmt.Fprintf(&b, "tcp(%s:%d)/%s?parseTime=true", host, port, cfg.Database)

	if len(cfg.Options) > 0 {
		keys := make([]string, 0, len(cfg.Options))
		for k := range cfg.Options {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "&%s=%s", k, cfg.Options[k])
		}
	}

	return b.String()
}

// ListDatabases returns the server's database names.
func (a *Adapter) ListDatabases(ctx context.Context) ([]string, error) {
	if a.DB == nil {
		return nil, adapter.ErrNotConnected
	}

	rows, err := a.DB.QueryContext(ctx, "SHOW DATABASES")
	if err != nil {
		return nil, fmt.Errorf("failed to list databases: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan database name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating databases: %w", err)
	}
	return names, nil
}

// ListTables returns the tables of db with size and row count estimates
// from information_schema. An empty db falls back to the configured
// database, then to the connection's current database.
func (a *Adapter) ListTables(ctx context.Context, db string) ([]core.TableInfo, error) {
	if a.DB == nil {
		return nil, adapter.ErrNotConnected
	}

	db, err := a.resolveDatabase(ctx, db)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT
			TABLE_NAME,
			DATA_LENGTH,
			INDEX_LENGTH,
			TABLE_ROWS,
			TABLE_COMMENT
		FROM information_schema.TABLES
		WHERE TABLE_SCHEMA = ?
		ORDER BY TABLE_NAME
	`

	rows, err := a.DB.QueryContext(ctx, query, db)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tables []core.TableInfo
	for rows.Next() {
		var (
			name      string
			dataLen   sql.NullString
			indexLen  sql.NullString
			tableRows sql.NullString
			comment   sql.NullString
		)
		if err := rows.Scan(&name, &dataLen, &indexLen, &tableRows, &comment); err != nil {
			return nil, fmt.Errorf("failed to scan table info: %w", err)
		}

		// Sizes and row counts are BIGINT UNSIGNED; parse through uint64
		// so values past the int64 range keep their exact magnitude.
		data := uintOrZero(dataLen)
		index := uintOrZero(indexLen)
		tables = append(tables, core.TableInfo{
			Name:      name,
			DataSize:  core.IntegerFromUint64(data),
			IndexSize: core.IntegerFromUint64(index),
			TotalSize: core.IntegerFromUint64(data + index),
			RowCount:  core.IntegerFromUint64(uintOrZero(tableRows)),
			Comment:   comment.String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tables: %w", err)
	}
	return tables, nil
}

// ListColumns returns the table's columns in ordinal order.
func (a *Adapter) ListColumns(ctx context.Context, table, db string) ([]core.ColumnDef, error) {
	if a.DB == nil {
		return nil, adapter.ErrNotConnected
	}

	if db == "" {
		db = a.Cfg.Database
	}

	query := `
		SELECT
			COLUMN_NAME,
			COLUMN_TYPE,
			COLUMN_KEY,
			IS_NULLABLE,
			COLUMN_DEFAULT,
			COLUMN_COMMENT
		FROM information_schema.COLUMNS
		WHERE TABLE_SCHEMA = ` + schemaExpr(db) + ` AND TABLE_NAME = ?
		ORDER BY ORDINAL_POSITION
	`

	args := []any{table}
	if db != "" {
		args = []any{db, table}
	}

	rows, err := a.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list columns: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var columns []core.ColumnDef
	for rows.Next() {
		var (
			name, colType, isNullable string
			key, colDefault, comment  sql.NullString
		)
		if err := rows.Scan(&name, &colType, &key, &isNullable, &colDefault, &comment); err != nil {
			return nil, fmt.Errorf("failed to scan column: %w", err)
		}
		columns = append(columns, core.ColumnDef{
			Name:        name,
			Type:        colType,
			PrimaryKey:  key.String == "PRI",
			Nullability: core.NullabilityFromBool(isNullable == "YES"),
			Default:     colDefault.String,
			Comment:     comment.String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating columns: %w", err)
	}
	return columns, nil
}

// ListIndexes returns the table's indexes. Rows arrive ordered by index
// name and sequence, so consecutive rows for a name form one index.
func (a *Adapter) ListIndexes(ctx context.Context, table string) ([]core.IndexDef, error) {
	if a.DB == nil {
		return nil, adapter.ErrNotConnected
	}

	query := `
		SELECT
			INDEX_NAME,
			COLUMN_NAME,
			NON_UNIQUE,
			INDEX_COMMENT
		FROM information_schema.STATISTICS
		WHERE TABLE_SCHEMA = DATABASE() AND TABLE_NAME = ?
		ORDER BY INDEX_NAME, SEQ_IN_INDEX
	`

	rows, err := a.DB.QueryContext(ctx, query, table)
	if err != nil {
		return nil, fmt.Errorf("failed to list indexes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var indexes []core.IndexDef
	for rows.Next() {
		var (
			name, column string
			nonUnique    int64
			comment      sql.NullString
		)
		if err := rows.Scan(&name, &column, &nonUnique, &comment); err != nil {
			return nil, fmt.Errorf("failed to scan index: %w", err)
		}

		if n := len(indexes); n > 0 && indexes[n-1].Name == name {
			indexes[n-1].Columns = append(indexes[n-1].Columns, column)
			continue
		}
		indexes = append(indexes, core.IndexDef{
			Name:    name,
			Columns: []string{column},
			Unique:  nonUnique == 0,
			Primary: name == "PRIMARY",
			Comment: comment.String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating indexes: %w", err)
	}
	return indexes, nil
}

// resolveDatabase picks the effective database: the explicit argument,
// then the configured database, then the connection's current one.
func (a *Adapter) resolveDatabase(ctx context.Context, db string) (string, error) {
	if db != "" {
		return db, nil
	}
	if a.Cfg.Database != "" {
		return a.Cfg.Database, nil
	}

	var current sql.NullString
	if err := a.DB.QueryRowContext(ctx, "SELECT DATABASE()").Scan(&current); err != nil {
		return "", fmt.Errorf("failed to resolve current database: %w", err)
	}
	return current.String, nil
}

// schemaExpr returns the TABLE_SCHEMA match expression: a placeholder
// when a database is known, otherwise the connection's current database.
func schemaExpr(db string) string {
	if db != "" {
		return "?"
	}
	return "DATABASE()"
}

func uintOrZero(s sql.NullString) uint64 {
	if !s.Valid {
		return 0
	}
	v, err := strconv.ParseUint(strings.TrimSpace(s.String), 10, 64)
	if err != nil {
		return 0
	}
	return v
}

// Ensure Adapter implements adapter.Adapter interface
var _ adapter.Adapter = (*Adapter)(nil)
