package data

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/nazmul162001/educonnect/internal/core"
	apperrors "github.com/nazmul162001/educonnect/internal/errors"
	"github.com/redis/go-redis/v9"
)

var errEmptyKey = errors.New("key cannot be empty")

// RedisCacheRepo implements core.CacheRepository using Redis.
type RedisCacheRepo struct {
	client redis.UniversalClient
}

var _ core.CacheRepository = (*RedisCacheRepo)(nil)

// NewRedisCacheRepo creates a new RedisCacheRepo with the given Redis client.
func NewRedisCacheRepo(client redis.UniversalClient) *RedisCacheRepo {
	return &RedisCacheRepo{client: client}
}

// Set stores a value with the given TTL. A zero TTL means no expiry.
func (r *RedisCacheRepo) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if key == "" {
		return errEmptyKey
	}
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return apperrors.Unavailable(fmt.Errorf("redis set: %w", err))
	}
	return nil
}

// Get retrieves a value. A missing key returns (nil, nil).
func (r *RedisCacheRepo) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, errEmptyKey
	}
	b, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, apperrors.Unavailable(fmt.Errorf("redis get: %w", err))
	}
	return b, nil
}

// Delete removes a key and reports whether it existed.
func (r *RedisCacheRepo) Delete(ctx context.Context, key string) (bool, error) {
	if key == "" {
		return false, errEmptyKey
	}
	n, err := r.client.Del(ctx, key).Result()
	if err != nil {
		return false, apperrors.Unavailable(fmt.Errorf("redis del: %w", err))
	}
	return n > 0, nil
}

// DeletePrefix removes every key starting with prefix and returns how many were deleted.
func (r *RedisCacheRepo) DeletePrefix(ctx context.Context, prefix string) (int, error) {
	if prefix == "" {
		return 0, errEmptyKey
	}
	if cc, ok := r.client.(*redis.ClusterClient); ok {
		var (
			mu    sync.Mutex
			total int
		)
		err := cc.ForEachMaster(ctx, func(ctx context.Context, node *redis.Client) error {
			n, err := deleteMatching(ctx, node, prefix)
			mu.Lock()
			total += n
			mu.Unlock()
			return err
		})
		return total, err
	}
	return deleteMatching(ctx, r.client, prefix)
}

func deleteMatching(ctx context.Context, c redis.Cmdable, prefix string) (int, error) {
	var (
		cursor  uint64
		deleted int
	)
	for {
		keys, next, err := c.Scan(ctx, cursor, prefix+"*", 200).Result()
		if err != nil {
			return deleted, apperrors.Unavailable(fmt.Errorf("redis scan: %w", err))
		}
		if len(keys) > 0 {
			n, delErr := c.Del(ctx, keys...).Result()
			if delErr != nil {
				return deleted, apperrors.Unavailable(fmt.Errorf("redis del: %w", delErr))
			}
			deleted += int(n)
		}
		if next == 0 {
			return deleted, nil
		}
		cursor = next
	}
}

// Ping checks the Redis connection.
func (r *RedisCacheRepo) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return apperrors.Unavailable(fmt.Errorf("redis ping: %w", err))
	}
	return nil
}
