package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/leapstack-labs/leapdb/pkg/adapter"
)

// InspectKey reports a key's type, TTL, and a rendered value. Collection
// types carry their element count and render as indented JSON, previewing
// at most the first 100 elements.
func (a *Adapter) InspectKey(ctx context.Context, db, key string) (*adapter.KeyInfo, error) {
	if a.client == nil {
		return nil, adapter.ErrNotConnected
	}

	conn := a.client.Conn()
	defer func() { _ = conn.Close() }()

	idx := a.keyspace(db)
	if err := conn.Select(ctx, idx).Err(); err != nil {
		return nil, fmt.Errorf("failed to select database %d: %w", idx, err)
	}

	keyType, err := conn.Type(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to inspect key type: %w", err)
	}
	ttl, err := conn.TTL(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read ttl: %w", err)
	}

	info := &adapter.KeyInfo{Key: key, Type: keyType, TTL: ttlSeconds(ttl)}

	switch keyType {
	case "string":
		value, err := conn.Get(ctx, key).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to read string value: %w", err)
		}
		info.Value = value

	case "list":
		length, err := conn.LLen(ctx, key).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to read list length: %w", err)
		}
		items, err := conn.LRange(ctx, key, 0, 99).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to read list items: %w", err)
		}
		info.Length = &length
		if info.Value, err = renderJSON(items); err != nil {
			return nil, err
		}

	case "set":
		length, err := conn.SCard(ctx, key).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to read set size: %w", err)
		}
		members, err := conn.SMembers(ctx, key).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to read set members: %w", err)
		}
		info.Length = &length
		if info.Value, err = renderJSON(members); err != nil {
			return nil, err
		}

	case "zset":
		length, err := conn.ZCard(ctx, key).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to read sorted set size: %w", err)
		}
		entries, err := conn.ZRangeWithScores(ctx, key, 0, 99).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to read sorted set entries: %w", err)
		}
		scores := make(map[string]float64, len(entries))
		for _, z := range entries {
			scores[fmt.Sprint(z.Member)] = z.Score
		}
		info.Length = &length
		if info.Value, err = renderJSON(scores); err != nil {
			return nil, err
		}

	case "hash":
		length, err := conn.HLen(ctx, key).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to read hash size: %w", err)
		}
		fields, err := conn.HGetAll(ctx, key).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to read hash fields: %w", err)
		}
		info.Length = &length
		if info.Value, err = renderJSON(fields); err != nil {
			return nil, err
		}

	default:
		info.Value = "(unknown type)"
	}

	return info, nil
}

// ttlSeconds converts a TTL reply to seconds, passing through the
// sentinel values: -1 for no expiry, -2 for a missing key.
func ttlSeconds(d time.Duration) int64 {
	if d < 0 {
		return int64(d)
	}
	return int64(d / time.Second)
}

func renderJSON(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to render value: %w", err)
	}
	return string(data), nil
}
