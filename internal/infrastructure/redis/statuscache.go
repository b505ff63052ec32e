package redis

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const linkStatusKeyPrefix = "payments:link-status:"

// LinkStatusCache is a short-TTL read cache for the link-status
// endpoint. All methods are nil-safe and best-effort: a cache error is
// reported as a miss, never as a failure.
type LinkStatusCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewLinkStatusCache(client *redis.Client, ttl time.Duration) *LinkStatusCache {
	return &LinkStatusCache{client: client, ttl: ttl}
}

// Get returns the cached status and whether the cache held a value.
func (c *LinkStatusCache) Get(ctx context.Context, companyID uuid.UUID) (linked, ok bool) {
	if c == nil || c.client == nil {
		return false, false
	}
	val, err := c.client.Get(ctx, linkStatusKeyPrefix+companyID.String()).Result()
	if err != nil {
		return false, false
	}
	return val == "1", true
}

func (c *LinkStatusCache) Set(ctx context.Context, companyID uuid.UUID, linked bool) {
	if c == nil || c.client == nil {
		return
	}
	val := "0"
	if linked {
		val = "1"
	}
	c.client.Set(ctx, linkStatusKeyPrefix+companyID.String(), val, c.ttl)
}

// Invalidate drops the cached status after a link mutation.
func (c *LinkStatusCache) Invalidate(ctx context.Context, companyID uuid.UUID) {
	if c == nil || c.client == nil {
		return
	}
	c.client.Del(ctx, linkStatusKeyPrefix+companyID.String())
}
