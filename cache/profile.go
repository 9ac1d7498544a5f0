// Package cache holds the session profile cache. Profiles are cached in
// Redis with a TTL and invalidated on every profile write, replacing the
// original's ambient session-storage copy with an explicit owner.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"mataro/logger"
	"mataro/models"
)

const DefaultTTL = 5 * time.Minute

// Client is the subset of redis.Cmdable the cache needs.
type Client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// ProfileCache is a read-through cache for user profiles. A nil client
// disables caching entirely; every method degrades to a miss or a no-op.
type ProfileCache struct {
	client Client
	ttl    time.Duration
}

func NewProfileCache(client Client, ttl time.Duration) *ProfileCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &ProfileCache{client: client, ttl: ttl}
}

func key(userID string) string {
	return "mataro:profile:" + userID
}

func (c *ProfileCache) Get(ctx context.Context, userID string) (*models.User, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}

	raw, err := c.client.Get(ctx, key(userID)).Result()
	if err != nil {
		if err != redis.Nil {
			logger.Log.WithError(err).Debug("profile cache read failed")
		}
		return nil, false
	}

	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		logger.Log.WithError(err).Warn("profile cache entry corrupt, dropping")
		c.Invalidate(ctx, userID)
		return nil, false
	}
	return &user, true
}

func (c *ProfileCache) Set(ctx context.Context, user *models.User) {
	if c == nil || c.client == nil || user == nil {
		return
	}

	raw, err := json.Marshal(user)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key(user.ID), raw, c.ttl).Err(); err != nil {
		logger.Log.WithError(err).Debug("profile cache write failed")
	}
}

// Invalidate drops the cached profile. Called on profile updates and on
// auth-state changes so a stale identity never outlives its session.
func (c *ProfileCache) Invalidate(ctx context.Context, userID string) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Del(ctx, key(userID)).Err(); err != nil {
		logger.Log.WithError(err).Debug("profile cache invalidation failed")
	}
}
