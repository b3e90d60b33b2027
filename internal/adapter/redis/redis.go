package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const opTimeout = 3 * time.Second

type RedisAdapter struct {
	client *redis.Client
}

func NewRedisAdapter(client *redis.Client) *RedisAdapter {
	return &RedisAdapter{client: client}
}

// Get returns redis.Nil when the key is absent.
func (r *RedisAdapter) Get(key string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	return r.client.Get(ctx, key).Bytes()
}

func (r *RedisAdapter) Set(key string, value []byte, ttl time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *RedisAdapter) Delete(key string) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	if err := r.client.Del(ctx, key).Err(); err != nil && err != redis.Nil {
		return err
	}
	return nil
}
