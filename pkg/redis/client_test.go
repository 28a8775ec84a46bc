package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_InvalidURL(t *testing.T) {
	assert.Error(t, Init("not-a-redis-url", ""))
}

func TestClientOperations(t *testing.T) {
	srv := miniredis.RunT(t)
	cli := goredis.NewClient(&goredis.Options{Addr: srv.Addr()})
	SetClient(cli)
	defer cli.Close()
	assert.Same(t, cli, GetClient())

	ctx := context.Background()

	require.NoError(t, Set(ctx, "k", "v", time.Minute))
	val, err := Get(ctx, "k")
	assert.NoError(t, err)
	assert.Equal(t, "v", val)

	ok, err := SetNX(ctx, "k", "other", time.Minute)
	assert.NoError(t, err)
	assert.False(t, ok, "SetNX does not overwrite")

	ok, err = SetNX(ctx, "k2", "v2", time.Minute)
	assert.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, Del(ctx, "k"))
	_, err = Get(ctx, "k")
	assert.ErrorIs(t, err, goredis.Nil)
}
