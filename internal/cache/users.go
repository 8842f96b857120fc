package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"webpersonal/api/internal/models"
)

// UserCache keeps recently fetched user records in redis so profile
// reads skip postgres. All methods are no-ops when the client is nil.
type UserCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewUserCache(client *redis.Client, ttl time.Duration) *UserCache {
	return &UserCache{client: client, ttl: ttl}
}

func (c *UserCache) Get(ctx context.Context, id string) (models.User, bool) {
	if c == nil || c.client == nil {
		return models.User{}, false
	}

	raw, err := c.client.Get(ctx, userKey(id)).Bytes()
	if err != nil {
		return models.User{}, false
	}

	var user models.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return models.User{}, false
	}
	return user, true
}

func (c *UserCache) Set(ctx context.Context, user models.User) {
	if c == nil || c.client == nil {
		return
	}

	raw, err := json.Marshal(user)
	if err != nil {
		return
	}
	c.client.Set(ctx, userKey(user.ID), raw, c.ttl)
}

func (c *UserCache) Invalidate(ctx context.Context, id string) {
	if c == nil || c.client == nil {
		return
	}
	c.client.Del(ctx, userKey(id))
}

func userKey(id string) string {
	return fmt.Sprintf("user:%s", id)
}
