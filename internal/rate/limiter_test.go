package rate

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	rdb "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedis(t *testing.T) (*rdb.Client, *miniredis.Miniredis) {
	t.Helper()
	mini := miniredis.RunT(t)
	client := rdb.NewClient(&rdb.Options{Addr: mini.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client, mini
}

func TestRedisLimiter_FixedWindow(t *testing.T) {
	client, _ := newRedis(t)
	l := NewRedisLimiter(client, "", 3, time.Minute)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		res, err := l.Allow(ctx, "1.2.3.4")
		require.NoError(t, err)
		assert.True(t, res.Allowed, "hit %d", i)
		assert.Equal(t, int64(3-i), res.Remaining)
	}
	res, err := l.Allow(ctx, "1.2.3.4")
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, int64(4), res.CurrentHits)
	assert.Greater(t, res.RetryAfter, time.Duration(0))

	// otra clave, otro contador
	res, err = l.Allow(ctx, "5.6.7.8")
	require.NoError(t, err)
	assert.True(t, res.Allowed)
}

func TestRedisLimiter_SetsExpiry(t *testing.T) {
	client, mini := newRedis(t)
	l := NewRedisLimiter(client, "test:", 1, time.Minute)
	_, err := l.Allow(context.Background(), "ip with space")
	require.NoError(t, err)

	keys := mini.Keys()
	require.Len(t, keys, 1)
	assert.Contains(t, keys[0], "test:ip_with_space:")
	assert.Greater(t, mini.TTL(keys[0]), time.Duration(0))
}

func TestRedisLimiter_BackendDown(t *testing.T) {
	client, mini := newRedis(t)
	mini.Close()
	_, err := NewRedisLimiter(client, "", 1, time.Minute).Allow(context.Background(), "k")
	assert.Error(t, err)
}

func TestMemoryLimiter_FixedWindow(t *testing.T) {
	l := NewMemoryLimiter(2, time.Minute)
	base := time.Date(2030, 1, 1, 10, 0, 5, 0, time.UTC)
	l.now = func() time.Time { return base }
	ctx := context.Background()

	r1, _ := l.Allow(ctx, "ip")
	r2, _ := l.Allow(ctx, "ip")
	r3, _ := l.Allow(ctx, "ip")
	assert.True(t, r1.Allowed)
	assert.True(t, r2.Allowed)
	assert.False(t, r3.Allowed)
	assert.Equal(t, 55*time.Second, r3.RetryAfter)

	// ventana siguiente
	l.now = func() time.Time { return base.Add(time.Minute) }
	r4, _ := l.Allow(ctx, "ip")
	assert.True(t, r4.Allowed)
	assert.Equal(t, int64(1), r4.CurrentHits)
}
