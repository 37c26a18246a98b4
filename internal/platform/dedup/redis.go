package dedup

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "storefront:webhook:payment:"

// RedisStore shares processed ids between instances. Each id expires on its
// own after the window.
type RedisStore struct {
	client *redis.Client
	window time.Duration
}

func NewRedisStore(client *redis.Client, window time.Duration) *RedisStore {
	if window <= 0 {
		window = DefaultWindow
	}
	return &RedisStore{client: client, window: window}
}

func (s *RedisStore) Seen(ctx context.Context, id string) (bool, error) {
	n, err := s.client.Exists(ctx, keyPrefix+id).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *RedisStore) MarkSeen(ctx context.Context, id string) (bool, error) {
	ok, err := s.client.SetNX(ctx, keyPrefix+id, time.Now().Unix(), s.window).Result()
	if err != nil {
		return false, err
	}
	return !ok, nil
}

func (s *RedisStore) Forget(ctx context.Context, id string) error {
	return s.client.Del(ctx, keyPrefix+id).Err()
}
