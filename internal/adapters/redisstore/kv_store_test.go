package redisstore

import (
	"context"
	"testing"

	"fxbot/internal/domain"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupRedis(t *testing.T) *KVStore {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForListeningPort("6379/tcp"),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)

	store := NewKVStore(&redis.Options{Addr: endpoint}, "fxbot:test:")
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.Ping(ctx))
	return store
}

func TestKVStore_Redis(t *testing.T) {
	store := setupRedis(t)
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		_, err := store.Get(ctx, "missing")
		require.ErrorIs(t, err, domain.ErrKeyNotFound)
	})

	t.Run("put then get", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "owner:chat_id", []byte("42")))
		got, err := store.Get(ctx, "owner:chat_id")
		require.NoError(t, err)
		require.Equal(t, "42", string(got))
	})

	t.Run("keys are prefixed", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "k", []byte("v")))
		raw, err := store.client.Get(ctx, "fxbot:test:k").Result()
		require.NoError(t, err)
		require.Equal(t, "v", raw)
	})
}
