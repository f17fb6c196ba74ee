package store

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/ariefcatur/go-cart-sidebar/internal/redisx"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// requireRedis skips the test unless a Redis server answers on localhost:6379.
func requireRedis(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping Redis test in short mode")
	}
	conn, err := net.DialTimeout("tcp", "localhost:6379", time.Second)
	if err != nil {
		t.Skip("Redis not available at localhost:6379")
	}
	conn.Close()
}

func TestRedisStoreSessionScope(t *testing.T) {
	requireRedis(t)
	ctx := context.Background()
	rdb := redisx.New("localhost:6379")
	defer rdb.Close()

	a := NewRedis(rdb, uuid.NewString(), time.Minute)
	b := NewRedis(rdb, uuid.NewString(), time.Minute)

	require.NoError(t, Save(ctx, a, KeyCart, []entry{{"Fries", 45.25}}))

	got, ok := Load[[]entry](ctx, a, KeyCart)
	require.True(t, ok)
	assert.Equal(t, []entry{{"Fries", 45.25}}, got)

	_, ok = Load[[]entry](ctx, b, KeyCart)
	assert.False(t, ok, "sessions must not share keys")

	require.NoError(t, Clear(ctx, a, KeyCart))
	_, err := a.Get(ctx, KeyCart)
	assert.ErrorIs(t, err, ErrNotFound)
}
