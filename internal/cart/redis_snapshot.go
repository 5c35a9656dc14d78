package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const snapshotKeyPrefix = "cart:"

// RedisSnapshotStore persists cart snapshots as JSON strings with a sliding
// TTL, refreshed on every save.
type RedisSnapshotStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSnapshotStore(client *redis.Client, ttl time.Duration) *RedisSnapshotStore {
	return &RedisSnapshotStore{client: client, ttl: ttl}
}

func (r *RedisSnapshotStore) Load(ctx context.Context, key string) ([]LineItem, error) {
	data, err := r.client.Get(ctx, snapshotKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}
	return UnmarshalSnapshot(data)
}

func (r *RedisSnapshotStore) Save(ctx context.Context, key string, items []LineItem) error {
	data, err := MarshalSnapshot(items)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, snapshotKey(key), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisSnapshotStore) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, snapshotKey(key)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func snapshotKey(session string) string {
	return snapshotKeyPrefix + session
}
