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

func newTestCache(t *testing.T) (Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisCache(client, "test:"), mr
}

func TestGetSetDelete(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, c.Set(ctx, "k", "v", time.Minute))
	assert.True(t, mr.Exists("test:k"), "keys are stored under the prefix")

	val, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", val)

	require.NoError(t, c.Delete(ctx, "k", "never-set"))
	_, err = c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)

	assert.NoError(t, c.Delete(ctx))
}

func TestExpiration(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", "v", time.Second))
	mr.FastForward(2 * time.Second)

	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestJSON(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	type entry struct {
		Target string `json:"target"`
	}

	require.NoError(t, c.SetJSON(ctx, "j", entry{Target: "https://example.com"}, time.Minute))

	var got entry
	require.NoError(t, c.GetJSON(ctx, "j", &got))
	assert.Equal(t, "https://example.com", got.Target)

	require.NoError(t, c.Set(ctx, "bad", "{not json", time.Minute))
	assert.Error(t, c.GetJSON(ctx, "bad", &got))
	assert.ErrorIs(t, c.GetJSON(ctx, "absent", &got), ErrCacheMiss)
}
