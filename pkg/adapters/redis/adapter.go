// Package redis provides a Redis adapter for leapdb. Queries are command
// scripts rather than SQL, and the catalog surface maps databases to the
// numbered keyspaces and tables to keys.
package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/leapstack-labs/leapdb/pkg/adapter"
	"github.com/leapstack-labs/leapdb/pkg/core"
	"github.com/leapstack-labs/leapdb/pkg/dialect"
	"github.com/leapstack-labs/leapdb/pkg/script"
)

// Adapter implements the adapter.Adapter interface for Redis.
type Adapter struct {
	client *redis.Client
	cfg    adapter.Config
	logger *slog.Logger
}

// New creates a new Redis adapter instance.
// If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Adapter{logger: logger}
}

// Connect establishes a connection to Redis. The configured database
// selects the initial keyspace.
func (a *Adapter) Connect(ctx context.Context, cfg adapter.Config) error {
	host := cfg.Host
	if host == "" {
		host = "localhost"
	}
	port := cfg.Port
	if port == 0 {
		port = 6379
	}

	a.logger.Debug("connecting to redis", slog.String("host", host), slog.Int("port", port))

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", host, port),
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       databaseIndex(cfg.Database),
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return fmt.Errorf("failed to connect to redis: %w", err)
	}

	a.client = client
	a.cfg = cfg
	return nil
}

// Close closes the connection pool.
func (a *Adapter) Close() error {
	if a.client != nil {
		a.logger.Debug("closing redis connection")
		return a.client.Close()
	}
	return nil
}

// Ping verifies the connection with a round trip.
func (a *Adapter) Ping(ctx context.Context) error {
	if a.client == nil {
		return adapter.ErrNotConnected
	}
	if err := a.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("connection test failed: %w", err)
	}
	return nil
}

// IsConnected returns true if the connection is established.
func (a *Adapter) IsConnected() bool {
	return a.client != nil
}

// session adapts one dedicated connection to the script executor. Using a
// dedicated connection keeps stateful commands like SELECT scoped to the
// script they appear in.
type session struct {
	conn *redis.Conn
}

func (s session) Do(ctx context.Context, args ...any) (any, error) {
	cmd := redis.NewCmd(ctx, args...)
	if err := s.conn.Process(ctx, cmd); err != nil {
		// A nil reply is a normal outcome, not a failure.
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	return cmd.Result()
}

// Query executes a command script and returns one (command, result) row
// per executed line.
func (a *Adapter) Query(ctx context.Context, text string) (*core.ResultSet, error) {
	if a.client == nil {
		return nil, adapter.ErrNotConnected
	}

	conn := a.client.Conn()
	defer func() { _ = conn.Close() }()

	exec := script.NewExecutor(session{conn: conn}, a.logger)
	results := exec.Run(ctx, text)

	rs := &core.ResultSet{Columns: []string{"command", "result"}, Rows: []core.Row{}}
	for _, r := range results {
		rs.Append(core.Row{core.TextValue(r.Command), core.TextValue(r.Output)})
	}
	return rs, nil
}

// ListDatabases reports the 16 numbered keyspaces with their key counts.
func (a *Adapter) ListDatabases(ctx context.Context) ([]string, error) {
	if a.client == nil {
		return nil, adapter.ErrNotConnected
	}

	conn := a.client.Conn()
	defer func() { _ = conn.Close() }()

	names := make([]string, 0, 16)
	for i := 0; i < 16; i++ {
		_ = conn.Select(ctx, i).Err()
		count, err := conn.DBSize(ctx).Result()
		if err != nil {
			count = 0
		}
		names = append(names, fmt.Sprintf("db%d (%d)", i, count))
	}
	return names, nil
}

// ListTables returns the keys of the selected keyspace. Only the name is
// known; the size and count columns stay null.
func (a *Adapter) ListTables(ctx context.Context, db string) ([]core.TableInfo, error) {
	if a.client == nil {
		return nil, adapter.ErrNotConnected
	}

	conn := a.client.Conn()
	defer func() { _ = conn.Close() }()

	idx := a.keyspace(db)
	if err := conn.Select(ctx, idx).Err(); err != nil {
		return nil, fmt.Errorf("failed to select database %d: %w", idx, err)
	}

	keys, err := conn.Keys(ctx, "*").Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}

	tables := make([]core.TableInfo, 0, len(keys))
	for _, key := range keys {
		tables = append(tables, core.TableInfo{Name: key})
	}
	return tables, nil
}

// ListColumns describes a key as a single pseudo-column whose type is the
// key's Redis type.
func (a *Adapter) ListColumns(ctx context.Context, table, db string) ([]core.ColumnDef, error) {
	if a.client == nil {
		return nil, adapter.ErrNotConnected
	}

	conn := a.client.Conn()
	defer func() { _ = conn.Close() }()

	idx := a.keyspace(db)
	if err := conn.Select(ctx, idx).Err(); err != nil {
		return nil, fmt.Errorf("failed to select database %d: %w", idx, err)
	}

	keyType, err := conn.Type(ctx, table).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to inspect key type: %w", err)
	}

	return []core.ColumnDef{{
		Name:        "value",
		Type:        keyType,
		Nullability: core.NullabilityNotNull,
		Comment:     "Redis key: " + table,
	}}, nil
}

// ListIndexes returns an empty list; the engine has no indexes.
func (a *Adapter) ListIndexes(ctx context.Context, table string) ([]core.IndexDef, error) {
	if a.client == nil {
		return nil, adapter.ErrNotConnected
	}
	return []core.IndexDef{}, nil
}

// AlterTable always fails; the engine has no schema to change.
func (a *Adapter) AlterTable(ctx context.Context, table string, op core.AlterOperation) (core.Translation, error) {
	return core.Translation{}, dialect.Unsupported("redis", op)
}

// keyspace resolves a database selector, falling back to the session's
// configured database when the selector is empty.
func (a *Adapter) keyspace(db string) int {
	if db == "" {
		db = a.cfg.Database
	}
	return databaseIndex(db)
}

// databaseIndex parses a database selector such as "3", "db3", or
// "db3 (12)". Anything unparsable selects database 0.
func databaseIndex(s string) int {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimPrefix(fields[0], "db"))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// Ensure Adapter implements the adapter interfaces
var (
	_ adapter.Adapter      = (*Adapter)(nil)
	_ adapter.KeyInspector = (*Adapter)(nil)
)
