// Package redis provides the Redis adapter for leapdb.
//
// This file registers the Redis adapter with the adapter registry.
// Import this package with a blank identifier to register the adapter:
//
//	import _ "github.com/leapstack-labs/leapdb/pkg/adapters/redis"
package redis

import (
	"log/slog"

	"github.com/leapstack-labs/leapdb/pkg/adapter"
)

func init() {
	adapter.Register("redis", func(logger *slog.Logger) adapter.Adapter { return New(logger) })
}
