package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"sitecms/backend/services/content-service/internal/style"
)

// SnapshotKey is the redis key of the shared style snapshot.
const SnapshotKey = "content:styles:snapshot"

// RedisSnapshotStore keeps the style snapshot in redis.
type RedisSnapshotStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSnapshotStore returns redis-backed store.
func NewRedisSnapshotStore(client *redis.Client, ttl time.Duration) *RedisSnapshotStore {
	return &RedisSnapshotStore{client: client, ttl: ttl}
}

// Get returns the cached snapshot; a miss is reported as redis.Nil.
func (s *RedisSnapshotStore) Get(ctx context.Context) (*style.Snapshot, error) {
	data, err := s.client.Get(ctx, SnapshotKey).Bytes()
	if err != nil {
		return nil, err
	}
	var snap style.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// Set caches snap.
func (s *RedisSnapshotStore) Set(ctx context.Context, snap *style.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, SnapshotKey, data, s.ttl).Err()
}

// Delete removes the cached snapshot.
func (s *RedisSnapshotStore) Delete(ctx context.Context) error {
	return s.client.Del(ctx, SnapshotKey).Err()
}
