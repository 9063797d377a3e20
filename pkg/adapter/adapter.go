// Package adapter provides the engine session interface of leapdb and the
// registry sessions are resolved from.
//
// This package contains the public contract that all engine adapters must
// implement. Concrete adapter implementations are in pkg/adapters/
// subdirectories and register themselves at init time; a session resolves
// its adapter once, when it opens.
package adapter

import (
	"context"

	"github.com/leapstack-labs/leapdb/pkg/core"
)

// Config holds connection settings for one engine session.
type Config struct {
	Type     string
	Host     string
	Port     int
	Username string
	Password string
	Database string
	Options  map[string]string
}

// Adapter is the capability surface of one engine session: connectivity,
// normalized querying, catalog introspection, and schema changes. An
// adapter serves a single interactive caller and holds one session; it is
// not safe for concurrent use.
type Adapter interface {
	// Connect establishes the session using the provided config.
	Connect(ctx context.Context, cfg Config) error

	// Close closes the session and releases resources.
	Close() error

	// Ping verifies the session end to end.
	Ping(ctx context.Context) error

	// Query executes one query (or, for key-value engines, one command
	// script) and returns the normalized result.
	Query(ctx context.Context, text string) (*core.ResultSet, error)

	// ListDatabases returns the engine's database names.
	ListDatabases(ctx context.Context) ([]string, error)

	// ListTables returns the tables of db with catalog metadata. An empty
	// db means the session's current database.
	ListTables(ctx context.Context, db string) ([]core.TableInfo, error)

	// ListColumns returns the table's columns in ordinal order.
	ListColumns(ctx context.Context, table, db string) ([]core.ColumnDef, error)

	// ListIndexes returns the table's indexes. Engines without indexes
	// return an empty slice.
	ListIndexes(ctx context.Context, table string) ([]core.IndexDef, error)

	// AlterTable translates one schema change for this engine and
	// executes the resulting statements in order. The translation is
	// returned alongside any execution error so callers can see what ran
	// and which warnings apply.
	AlterTable(ctx context.Context, table string, op core.AlterOperation) (core.Translation, error)
}

// KeyInfo describes one key of a key-value engine.
type KeyInfo struct {
	Key  string `json:"key"`
	Type string `json:"key_type"`

	// TTL is the remaining lifetime in seconds: -1 when the key has no
	// expiry, -2 when the key does not exist.
	TTL int64 `json:"ttl"`

	// Value is the rendered value; collections render as indented JSON.
	Value string `json:"value"`

	// Length is the element count for collection types, nil for scalars.
	Length *int64 `json:"length,omitempty"`
}

// KeyInspector is implemented by adapters whose engine exposes typed keys
// with TTLs rather than relational tables. Callers discover it by type
// assertion.
type KeyInspector interface {
	InspectKey(ctx context.Context, db, key string) (*KeyInfo, error)
}
