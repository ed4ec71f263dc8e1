package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RoleLookup resolves a role from the backing store on cache miss.
type RoleLookup func(ctx context.Context, email string) (string, error)

// RoleCache is a short-lived Redis cache in front of the per-request role
// lookup the authorization gates perform. Entries are invalidated whenever
// a role changes, so a promotion is visible on the next request.
type RoleCache struct {
	client *redis.Client
	lookup RoleLookup
	ttl    time.Duration
	logger *zap.Logger
}

// DefaultTTL keeps entries short-lived; stale reads are bounded by this
// window even if an invalidation is missed.
const DefaultTTL = 60 * time.Second

func NewRoleCache(client *redis.Client, lookup RoleLookup, ttl time.Duration, logger *zap.Logger) *RoleCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RoleCache{
		client: client,
		lookup: lookup,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *RoleCache) key(email string) string {
	return "role:" + email
}

// RoleByEmail returns the cached role for an email, falling back to the
// store on miss or on any Redis error. Redis being down never blocks an
// authorization decision.
func (c *RoleCache) RoleByEmail(ctx context.Context, email string) (string, error) {
	if c.client != nil {
		role, err := c.client.Get(ctx, c.key(email)).Result()
		if err == nil && role != "" {
			return role, nil
		}
		if err != nil && err != redis.Nil {
			c.logger.Warn("Role cache read failed", zap.Error(err), zap.String("email", email))
		}
	}

	role, err := c.lookup(ctx, email)
	if err != nil {
		return "", err
	}

	if c.client != nil {
		if err := c.client.Set(ctx, c.key(email), role, c.ttl).Err(); err != nil {
			c.logger.Warn("Role cache write failed", zap.Error(err), zap.String("email", email))
		}
	}

	return role, nil
}

// Invalidate drops the cached role for an email. Called after role
// promotions and user deletion.
func (c *RoleCache) Invalidate(ctx context.Context, email string) {
	if c.client == nil {
		return
	}
	if err := c.client.Del(ctx, c.key(email)).Err(); err != nil {
		c.logger.Warn("Role cache invalidation failed", zap.Error(err), zap.String("email", email))
	}
}
