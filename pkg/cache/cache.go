// Package cache is a Redis-backed response cache for upstream listings.
// Entries are grouped by the query they answer (one job's eligible
// candidates, the hire-requests listing) so that a mutation can mark a whole
// group stale and force the next read to re-fetch.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "launchpad:cache"

// Cache stores JSON-encoded responses with group-wide invalidation.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

// New creates a Cache with the given entry TTL.
func New(rdb *redis.Client, ttl time.Duration) (*Cache, error) {
	if rdb == nil {
		return nil, errors.New("cache: redis client is required")
	}
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &Cache{rdb: rdb, ttl: ttl}, nil
}

func entryKey(group, key string) string {
	return fmt.Sprintf("%s:%s:%s", keyPrefix, group, key)
}

func groupKey(group string) string {
	return fmt.Sprintf("%s:group:%s", keyPrefix, group)
}

// Get loads the cached value for (group, key) into dest. The second return
// is false on a miss.
func (c *Cache) Get(ctx context.Context, group, key string, dest any) (bool, error) {
	raw, err := c.rdb.Get(ctx, entryKey(group, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache get: %w", err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("cache decode: %w", err)
	}
	return true, nil
}

// Set stores v under (group, key) and registers the key in the group index
// so Invalidate can find it.
func (c *Cache) Set(ctx context.Context, group, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}

	full := entryKey(group, key)
	pipe := c.rdb.Pipeline()
	pipe.Set(ctx, full, data, c.ttl)
	pipe.SAdd(ctx, groupKey(group), full)
	// The group index outlives its members slightly so sweeps stay cheap.
	pipe.Expire(ctx, groupKey(group), 2*c.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Invalidate drops every entry belonging to the given groups.
func (c *Cache) Invalidate(ctx context.Context, groups ...string) error {
	for _, group := range groups {
		members, err := c.rdb.SMembers(ctx, groupKey(group)).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return fmt.Errorf("cache invalidate %s: %w", group, err)
		}

		pipe := c.rdb.Pipeline()
		if len(members) > 0 {
			pipe.Del(ctx, members...)
		}
		pipe.Del(ctx, groupKey(group))
		if _, err := pipe.Exec(ctx); err != nil {
			return fmt.Errorf("cache invalidate %s: %w", group, err)
		}
	}
	return nil
}
