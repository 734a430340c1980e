package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exercise(t *testing.T, c Client) {
	t.Helper()
	ctx := context.Background()

	_, err := c.Get(ctx, "missing")
	assert.True(t, IsNotFound(err))

	require.NoError(t, c.Set(ctx, "k", "v", 0))
	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)

	require.NoError(t, c.Delete(ctx, "k"))
	_, err = c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, c.Ping(ctx))
}

func TestMemory(t *testing.T) {
	c := NewMemory("t:", time.Minute)
	exercise(t, c)

	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "short", "v", 10*time.Millisecond))
	time.Sleep(30 * time.Millisecond)
	_, err := c.Get(ctx, "short")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedis(t *testing.T) {
	mini := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mini.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	c := NewRedis(client, "wizauth:id:", time.Minute)
	exercise(t, c)

	require.NoError(t, c.Set(context.Background(), "k2", "v", 0))
	assert.True(t, mini.Exists("wizauth:id:k2"))
	assert.Equal(t, time.Minute, mini.TTL("wizauth:id:k2"))

	// Close no cierra la conexión compartida
	require.NoError(t, c.Close())
	assert.NoError(t, client.Ping(context.Background()).Err())
}
