package data

import (
	"context"
	"testing"
	"time"

	"github.com/nazmul162001/educonnect/internal/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedis creates a Redis client for testing.
// Tests will be skipped if Redis is not available.
func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	return testutil.SetupTestRedis(t)
}

func TestRedisCacheRepo_Set_Get_Delete(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	client := setupTestRedis(t)
	defer client.Close()

	repo := NewRedisCacheRepo(client)
	ctx := context.Background()

	t.Run("set and get", func(t *testing.T) {
		key := "test:key:1"
		value := []byte(`{"name":"Dhaka College"}`)
		ttl := 5 * time.Minute

		require.NoError(t, repo.Set(ctx, key, value, ttl))

		result, err := repo.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, value, result)

		actualTTL := client.TTL(ctx, key).Val()
		assert.True(t, actualTTL > 0 && actualTTL <= ttl)
	})

	t.Run("get non-existent key", func(t *testing.T) {
		result, err := repo.Get(ctx, "non:existent:key")
		require.NoError(t, err)
		assert.Nil(t, result)
	})

	t.Run("delete existing key", func(t *testing.T) {
		key := "test:key:2"
		require.NoError(t, repo.Set(ctx, key, []byte("to be deleted"), time.Minute))

		deleted, err := repo.Delete(ctx, key)
		require.NoError(t, err)
		assert.True(t, deleted)

		result, err := repo.Get(ctx, key)
		require.NoError(t, err)
		assert.Nil(t, result)
	})

	t.Run("delete non-existent key", func(t *testing.T) {
		deleted, err := repo.Delete(ctx, "non:existent:key")
		require.NoError(t, err)
		assert.False(t, deleted)
	})

	t.Run("delete prefix", func(t *testing.T) {
		for _, k := range []string{"colleges:list:a", "colleges:list:b", "colleges:id:1"} {
			require.NoError(t, repo.Set(ctx, k, []byte("x"), time.Minute))
		}

		n, err := repo.DeletePrefix(ctx, "colleges:list:")
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		kept, err := repo.Get(ctx, "colleges:id:1")
		require.NoError(t, err)
		assert.NotNil(t, kept)
	})

	t.Run("ping", func(t *testing.T) {
		assert.NoError(t, repo.Ping(ctx))
	})
}

func TestRedisCacheRepo_Validation(t *testing.T) {
	// Validation fails before any command is sent, so an unreachable address is fine.
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	defer client.Close()

	repo := NewRedisCacheRepo(client)
	ctx := context.Background()

	err := repo.Set(ctx, "", []byte("value"), time.Minute)
	require.ErrorIs(t, err, errEmptyKey)

	_, err = repo.Get(ctx, "")
	require.ErrorIs(t, err, errEmptyKey)

	_, err = repo.Delete(ctx, "")
	require.ErrorIs(t, err, errEmptyKey)

	_, err = repo.DeletePrefix(ctx, "")
	require.ErrorIs(t, err, errEmptyKey)
}
