// Package redis caches identity lookups made by the bearer middleware.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/artem13815/resumes/pkg/auth"
)

const keyPrefix = "resumes:user:"

// UserLookup is the subset of auth.UserRepository the cache sits in front of.
type UserLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (auth.User, error)
}

// UserCache is a read-through cache for GetByID. Only public fields are
// cached; misses of the underlying store are not cached. A failing Redis
// degrades to the underlying store.
type UserCache struct {
	client *redis.Client
	next   UserLookup
	ttl    time.Duration
	log    *slog.Logger
}

func NewUserCache(client *redis.Client, next UserLookup, ttl time.Duration, log *slog.Logger) *UserCache {
	return &UserCache{client: client, next: next, ttl: ttl, log: log}
}

func (c *UserCache) GetByID(ctx context.Context, id uuid.UUID) (auth.User, error) {
	key := keyPrefix + id.String()

	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var u auth.User
		if err := json.Unmarshal(raw, &u); err == nil {
			return u, nil
		}
		c.log.WarnContext(ctx, "drop corrupt cached user", "user_id", id)
	case !errors.Is(err, redis.Nil):
		c.log.WarnContext(ctx, "user cache read failed", "user_id", id, "error", err)
	}

	u, err := c.next.GetByID(ctx, id)
	if err != nil {
		return auth.User{}, err
	}
	u = u.Public()

	if raw, err := json.Marshal(u); err == nil {
		if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
			c.log.WarnContext(ctx, "user cache write failed", "user_id", id, "error", err)
		}
	}
	return u, nil
}
