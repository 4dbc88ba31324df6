package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisKeyPrefix namespaces every key this package writes, matching
// spec.md §6's "netaudio:<dialect>:<scope>:<identifier>[:<sub-identifier>]"
// layout. Callers of RedisStore.Get/Set already pass a fully-qualified
// key built with this layout; RedisStore itself only adds the namespace
// prefix shared by every key in the store.
const RedisKeyPrefix = "netaudio"

// RedisStore is a Redis-backed Store, used for cross-process sharing of
// live device state (spec.md §6 "optional external hash-map store"),
// grounded on original_source's actual use of a shared redis.Redis
// instance in _mdns.py.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore wraps an existing *redis.Client. A zero ttl is treated
// as DefaultTTL; expiry is enforced by Redis itself via SET...EX rather
// than a last-seen timestamp comparison, since Redis already evicts
// expired keys on access.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) namespacedKey(key string) string {
	return RedisKeyPrefix + ":" + key
}

// Get implements Store.Get. A key past its Redis-enforced TTL reads as
// a cache miss, matching FileStore's expired-on-read behavior.
func (s *RedisStore) Get(key string, out any) (bool, error) {
	ctx := context.Background()
	data, err := s.client.Get(ctx, s.namespacedKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := json.Unmarshal(data, out); err != nil {
		s.client.Del(ctx, s.namespacedKey(key))
		return false, nil
	}
	return true, nil
}

// Set implements Store.Set, writing value with the store's TTL applied
// atomically via Redis's SET EX.
func (s *RedisStore) Set(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.client.Set(context.Background(), s.namespacedKey(key), data, s.ttl).Err()
}

// Delete implements Store.Delete.
func (s *RedisStore) Delete(key string) error {
	return s.client.Del(context.Background(), s.namespacedKey(key)).Err()
}

// Clear implements Store.Clear, removing only keys under this store's
// namespace prefix so a shared Redis instance isn't wiped wholesale.
func (s *RedisStore) Clear() error {
	ctx := context.Background()
	iter := s.client.Scan(ctx, 0, RedisKeyPrefix+":*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return s.client.Del(ctx, keys...).Err()
}

// Close closes the underlying Redis client connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
