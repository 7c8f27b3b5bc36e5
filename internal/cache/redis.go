package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "shop:token:"

// RedisTokenCache keeps issued tokens in Redis so several processes can share them.
// Expiry is delegated to the key TTL.
type RedisTokenCache struct {
	client *redis.Client
	prefix string
}

func NewRedisTokenCache(client *redis.Client, keyPrefix string) *RedisTokenCache {
	if keyPrefix == "" {
		keyPrefix = defaultKeyPrefix
	}
	return &RedisTokenCache{client: client, prefix: keyPrefix}
}

func (c *RedisTokenCache) Get(ctx context.Context, username string) (string, bool, error) {
	token, err := c.client.Get(ctx, c.key(username)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get cached token: %w", err)
	}
	return token, true, nil
}

func (c *RedisTokenCache) SetIfAbsent(ctx context.Context, username, token string, ttl time.Duration) (bool, error) {
	if ttl <= 0 {
		return false, nil
	}
	ok, err := c.client.SetNX(ctx, c.key(username), token, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("store cached token: %w", err)
	}
	return ok, nil
}

func (c *RedisTokenCache) key(username string) string {
	return c.prefix + username
}
