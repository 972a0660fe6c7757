package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lgbarn/pgnview-go/internal/config"
)

func TestTreeKey(t *testing.T) {
	assert.Equal(t, "pgnview:tree:abc", TreeKey("abc"))
}

func TestNop(t *testing.T) {
	var c Cache = Nop{}
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v")))
	v, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, v)
}

func TestMemory(t *testing.T) {
	m := NewMemory()
	var c Cache = m
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	value := []byte(`{"nodes":[]}`)
	require.NoError(t, c.Set(ctx, "k", value))
	value[0] = 'X'

	got, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"nodes":[]}`, string(got), "stored value is a copy")
	assert.Equal(t, 1, m.Len())
}

func TestNewRedisCache_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err := NewRedisCache(ctx, config.Redis{Addr: "127.0.0.1:1"})
	assert.Error(t, err)
}
