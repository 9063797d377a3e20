// Package postgres provides a PostgreSQL database adapter for leapdb.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/leapstack-labs/leapdb/pkg/adapter"
	"github.com/leapstack-labs/leapdb/pkg/core"
	pgdialect "github.com/leapstack-labs/leapdb/pkg/dialects/postgres"
)

// Adapter implements the adapter.Adapter interface for PostgreSQL.
type Adapter struct {
	adapter.BaseSQLAdapter
}

// New creates a new PostgreSQL adapter instance.
// If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Adapter{
		BaseSQLAdapter: adapter.BaseSQLAdapter{
			Logger:  logger,
			Dialect: pgdialect.Postgres,
		},
	}
}

// Connect establishes a connection to PostgreSQL.
func (a *Adapter) Connect(ctx context.Context, cfg adapter.Config) error {
	dsn := buildPostgresDSN(cfg)

	a.Logger.Debug("connecting to postgres", slog.String("host", cfg.Host), slog.String("database", cfg.Database))

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("failed to open postgres connection: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping postgres: %w", err)
	}

	a.DB = db
	a.Cfg = cfg
	return nil
}

// buildPostgresDSN constructs a PostgreSQL connection string.
func buildPostgresDSN(cfg adapter.Config) string {
	// Build key=value format: host=localhost port=5432 user=postgres ...
	host := cfg.Host
	if host == "" {
		host = "localhost"
	}

	port := cfg.Port
	if port == 0 {
		port = 5432
	}

	sslmode := "disable"
	if cfg.Options != nil {
		if mode, ok := cfg.Options["sslmode"]; ok {
			sslmode = mode
		}
	}

	// Build DSN
	dsn := fmt.Sprintf("host=%s port=%d dbname=%s sslmode=%s",
		host, port, cfg.Database, sslmode)

	if cfg.Username != "" {
		dsn += fmt.Sprintf(" user=%s", cfg.Username)
	}
	if cfg.Password != "" {
		dsn += fmt.Sprintf(" password=%s", cfg.Password)
	}

	return dsn
}

// ListDatabases returns the cluster's database names, templates excluded.
func (a *Adapter) ListDatabases(ctx context.Context) ([]string, error) {
	if a.DB == nil {
		return nil, adapter.ErrNotConnected
	}

	rows, err := a.DB.QueryContext(ctx, "SELECT datname FROM pg_database WHERE datistemplate = false")
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

// ListTables returns the public-schema tables of the connected database
// with sizes from the storage functions and the planner's row estimate.
// Switching databases requires a new session, so db is ignored.
func (a *Adapter) ListTables(ctx context.Context, db string) ([]core.TableInfo, error) {
	if a.DB == nil {
		return nil, adapter.ErrNotConnected
	}

	query := `
		SELECT
			c.relname,
			pg_relation_size(c.oid),
			pg_indexes_size(c.oid),
			pg_total_relation_size(c.oid),
			CAST(c.reltuples AS BIGINT),
			obj_description(c.oid, 'pg_class')
		FROM pg_class c
		JOIN pg_namespace n ON n.oid = c.relnamespace
		WHERE n.nspname = 'public' AND c.relkind = 'r'
		ORDER BY c.relname
	`

	rows, err := a.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tables []core.TableInfo
	for rows.Next() {
		var (
			name      string
			dataSize  int64
			indexSize int64
			totalSize int64
			rowCount  int64
			comment   sql.NullString
		)
		if err := rows.Scan(&name, &dataSize, &indexSize, &totalSize, &rowCount, &comment); err != nil {
			return nil, fmt.Errorf("failed to scan table info: %w", err)
		}
		tables = append(tables, core.TableInfo{
			Name:      name,
			DataSize:  core.IntegerValue(dataSize),
			IndexSize: core.IntegerValue(indexSize),
			TotalSize: core.IntegerValue(totalSize),
			RowCount:  core.IntegerValue(rowCount),
			Comment:   comment.String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tables: %w", err)
	}
	return tables, nil
}

// ListColumns returns the table's public-schema columns in ordinal order.
// db is ignored for the same reason as in ListTables.
func (a *Adapter) ListColumns(ctx context.Context, table, db string) ([]core.ColumnDef, error) {
	if a.DB == nil {
		return nil, adapter.ErrNotConnected
	}

	query := `
		SELECT
			c.column_name,
			c.data_type,
			COALESCE(tc.constraint_type = 'PRIMARY KEY', false),
			c.is_nullable,
			c.column_default,
			pg_catalog.col_description(format('%s.%s', c.table_schema, c.table_name)::regclass::oid, c.ordinal_position)
		FROM information_schema.columns c
		LEFT JOIN information_schema.key_column_usage kcu
			ON c.table_schema = kcu.table_schema
			AND c.table_name = kcu.table_name
			AND c.column_name = kcu.column_name
		LEFT JOIN information_schema.table_constraints tc
			ON kcu.constraint_name = tc.constraint_name
			AND tc.constraint_type = 'PRIMARY KEY'
		WHERE c.table_schema = 'public' AND c.table_name = $1
		ORDER BY c.ordinal_position
	`

	rows, err := a.DB.QueryContext(ctx, query, table)
	if err != nil {
		return nil, fmt.Errorf("failed to list columns: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var columns []core.ColumnDef
	for rows.Next() {
		var (
			name, dataType, isNullable string
			isPrimary                  bool
			colDefault, comment        sql.NullString
		)
		if err := rows.Scan(&name, &dataType, &isPrimary, &isNullable, &colDefault, &comment); err != nil {
			return nil, fmt.Errorf("failed to scan column: %w", err)
		}
		columns = append(columns, core.ColumnDef{
			Name:        name,
			Type:        dataType,
			PrimaryKey:  isPrimary,
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

// ListIndexes returns the table's indexes from the system catalogs.
func (a *Adapter) ListIndexes(ctx context.Context, table string) ([]core.IndexDef, error) {
	if a.DB == nil {
		return nil, adapter.ErrNotConnected
	}

	query := `
		SELECT
			i.relname,
			array_to_string(array_agg(a.attname), ','),
			ix.indisunique
		FROM pg_class t
		JOIN pg_index ix ON t.oid = ix.indrelid
		JOIN pg_class i ON i.oid = ix.indexrelid
		JOIN pg_attribute a ON a.attrelid = t.oid AND a.attnum = ANY(ix.indkey)
		WHERE t.relkind = 'r' AND t.relname = $1
		GROUP BY i.relname, ix.indisunique
		ORDER BY i.relname
	`

	rows, err := a.DB.QueryContext(ctx, query, table)
	if err != nil {
		return nil, fmt.Errorf("failed to list indexes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var indexes []core.IndexDef
	for rows.Next() {
		var (
			name     string
			colList  string
			isUnique bool
		)
		if err := rows.Scan(&name, &colList, &isUnique); err != nil {
			return nil, fmt.Errorf("failed to scan index: %w", err)
		}
		indexes = append(indexes, core.IndexDef{
			Name:    name,
			Columns: strings.Split(colList, ","),
			Unique:  isUnique,
			Primary: strings.HasSuffix(name, "_pkey"),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating indexes: %w", err)
	}
	return indexes, nil
}

// Ensure Adapter implements adapter.Adapter interface
var _ adapter.Adapter = (*Adapter)(nil)
