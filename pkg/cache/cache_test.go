package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"userregistry/pkg/logger"
)

func TestUserCacheKey(t *testing.T) {
	assert.Equal(t, "user:42", UserCacheKey(42))
}

func TestRedisCache_MakeKey(t *testing.T) {
	prefixed := &RedisCache{prefix: "registry"}
	bare := &RedisCache{}

	assert.Equal(t, "registry:user:1", prefixed.makeKey(UserCacheKey(1)))
	assert.Equal(t, "user:1", bare.makeKey(UserCacheKey(1)))
}

func TestRedisCache_UnreachableServer(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { client.Close() })
	c := NewRedisCache(client, logger.NewNop(), "registry")
	ctx := context.Background()

	require.Error(t, c.Ping(ctx))
	require.Error(t, c.Set(ctx, UserCacheKey(1), map[string]int{"id": 1}, time.Minute))
	require.Error(t, c.Delete(ctx, UserCacheKey(1)))

	var dest map[string]int
	err := c.Get(ctx, UserCacheKey(1), &dest)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss)
}

func TestRedisCache_SetRejectsUnencodableValue(t *testing.T) {
	c := NewRedisCache(redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"}), logger.NewNop(), "")

	err := c.Set(context.Background(), "bad", make(chan int), time.Minute)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kodlanamadı")
}
