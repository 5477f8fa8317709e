package store

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStateStore(t *testing.T) (*RedisStateStore, *miniredis.Miniredis) {
	t.Helper()
	s := miniredis.RunT(t)
	return NewRedisStateStore(redis.NewClient(&redis.Options{Addr: s.Addr()})), s
}

func TestStateStore_OneShot(t *testing.T) {
	st, _ := newStateStore(t)
	ctx := context.Background()

	require.NoError(t, st.Create(ctx, "oauth:state:abc"))

	ok, err := st.IsStateExists(ctx, "oauth:state:abc")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = st.IsStateExists(ctx, "oauth:state:abc")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStateStore_Expires(t *testing.T) {
	st, s := newStateStore(t)
	ctx := context.Background()

	require.NoError(t, st.Create(ctx, "oauth:state:late"))
	s.FastForward(stateTTL + time.Second)

	ok, err := st.IsStateExists(ctx, "oauth:state:late")
	require.NoError(t, err)
	assert.False(t, ok)
}
