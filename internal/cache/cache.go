// internal/cache/cache.go
// Package cache is a thin async wrapper over the shared Redis-compatible
// key/value store used to coordinate connector nodes: the "who owns this
// user" claim (internal/session) and liveness checks (/check) both go
// through here. Every operation is idempotent at the API level.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrUnexpectedResponse is returned when Redis answers with something other
// than the 0/1 integer reply these operations are specified against.
var ErrUnexpectedResponse = errors.New("cache: unexpected response")

// Cache wraps a *redis.Client. The zero value is not usable; construct with
// New.
type Cache struct {
    cli *redis.Client
}

// New wraps an already-configured go-redis client.
func New(cli *redis.Client) *Cache {
    return &Cache{cli: cli}
}

// NewFromURL parses a redis:// URL (typically the REDIS_URL env var) and
// returns a ready Cache.
func NewFromURL(url string) (*Cache, error) {
    opts, err := redis.ParseURL(url)
    if err != nil {
        return nil, err
    }
    return New(redis.NewClient(opts)), nil
}

// Ping reports cache liveness; used by the /check HTTP endpoint.
func (c *Cache) Ping(ctx context.Context) error {
    return c.cli.Ping(ctx).Err()
}

// SetIfAbsent implements SET NX [EX ttl]: it returns true if the key was
// newly set, false if it already existed. When ttl is non-zero, the set and
// the expire travel in one SET command so the expire is never applied to a
// key this call did not itself create.
func (c *Cache) SetIfAbsent(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
    return c.cli.SetNX(ctx, key, value, ttl).Result()
}

// HashSet wraps HSETNX on a single field: it sets the field only if it did
// not already exist, returning true if this call created it and false if
// some other value (possibly written by a different connector node) already
// occupied it. This is the primitive the online-user claim in
// internal/session relies on: at most one node may win the claim.
func (c *Cache) HashSet(ctx context.Context, hashKey, field, value string) (bool, error) {
    n, err := c.cli.HSetNX(ctx, hashKey, field, value).Result()
    if err != nil {
        return false, err
    }
    return n, nil
}

// HashDelete wraps HDEL on a single field; returns true if it existed and was
// removed, false if it did not exist.
func (c *Cache) HashDelete(ctx context.Context, hashKey, field string) (bool, error) {
    n, err := c.cli.HDel(ctx, hashKey, field).Result()
    if err != nil {
        return false, err
    }
    switch n {
    case 0:
        return false, nil
    case 1:
        return true, nil
    default:
        return false, ErrUnexpectedResponse
    }
}

// Close releases the underlying connection pool.
func (c *Cache) Close() error {
    return c.cli.Close()
}
