package querycache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore shares cache entries across processes through Redis. Keys are
// namespaced under a prefix so unrelated tenants of the same Redis can
// coexist.
type RedisStore struct {
	redis  redis.UniversalClient
	prefix string
}

// NewRedisStore wraps client with the given key prefix (default "fleetq").
func NewRedisStore(client redis.UniversalClient, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "fleetq"
	}
	return &RedisStore{redis: client, prefix: prefix}
}

func (s *RedisStore) storageKey(key string) string {
	return s.prefix + ":" + key
}

func (s *RedisStore) Get(ctx context.Context, key string) (Entry, bool, error) {
	data, err := s.redis.Get(ctx, s.storageKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Entry{}, false, nil
		}
		return Entry{}, false, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		// Corrupt blob: treat as a miss so the next fetch overwrites it.
		return Entry{}, false, nil
	}
	return entry, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, entry Entry, ttl time.Duration) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("%w: encode entry: %v", ErrStoreUnavailable, err)
	}
	if err := s.redis.Set(ctx, s.storageKey(key), data, ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

func (s *RedisStore) DeleteFamily(ctx context.Context, family string) error {
	return s.deleteByPattern(ctx, s.storageKey(family)+"*", family)
}

func (s *RedisStore) Clear(ctx context.Context) error {
	return s.deleteByPattern(ctx, s.prefix+":*", "")
}

// deleteByPattern walks matching keys with SCAN and deletes them. When
// family is non-empty, matches are re-checked against the family-boundary
// rule so `/buses` never sweeps a hypothetical `/busesX`.
func (s *RedisStore) deleteByPattern(ctx context.Context, pattern, family string) error {
	var cursor uint64
	for {
		keys, next, err := s.redis.Scan(ctx, cursor, pattern, 1000).Result()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}

		victims := keys
		if family != "" {
			victims = victims[:0:0]
			for _, storageKey := range keys {
				key := strings.TrimPrefix(storageKey, s.prefix+":")
				if keyInFamily(key, family) {
					victims = append(victims, storageKey)
				}
			}
		}
		if len(victims) > 0 {
			if err := s.redis.Del(ctx, victims...).Err(); err != nil {
				return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
			}
		}

		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}
