package testutil

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// NewRedis connects to the redis server named by TEST_REDIS_ADDR.
// The test is skipped when the variable is not set. The client is closed
// when the test finishes.
func NewRedis(t *testing.T) *redis.Client {
	t.Helper()

	client := redis.NewClient(&redis.Options{Addr: requireEnv(t, redisAddrVar)})
	if err := client.Ping(context.Background()).Err(); err != nil {
		client.Close()
		t.Fatalf("testutil.NewRedis: ping: %v", err)
	}

	t.Cleanup(func() { client.Close() })
	return client
}

// RedisKey returns a key unique to this test run and deletes it on cleanup,
// so tests sharing one redis database never see each other's data.
func RedisKey(t *testing.T) string {
	t.Helper()
	key := "test:" + strings.ReplaceAll(t.Name(), "/", ":") + ":" + uuid.NewString()
	t.Cleanup(func() {
		addr := os.Getenv(redisAddrVar)
		if addr == "" {
			return
		}
		c := redis.NewClient(&redis.Options{Addr: addr})
		defer c.Close()
		_ = c.Del(context.Background(), key).Err()
	})
	return key
}
