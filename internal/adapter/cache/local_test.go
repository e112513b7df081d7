package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/seu-repo/lapeco-hr/internal/ports"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestLocalCache_SetGetDelete(t *testing.T) {
	c := NewLocalCache(time.Hour, zap.NewNop())
	defer c.Close()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "greeting", "hello", 0))
	require.NoError(t, c.Set(ctx, "period", map[string]string{"start": "2024-06-01"}, 0))

	v, err := c.Get(ctx, "greeting")
	require.NoError(t, err)
	assert.Equal(t, "hello", v)

	v, err = c.Get(ctx, "period")
	require.NoError(t, err)
	assert.JSONEq(t, `{"start":"2024-06-01"}`, v)

	require.NoError(t, c.Delete(ctx, "greeting"))
	_, err = c.Get(ctx, "greeting")
	assert.True(t, errors.Is(err, ports.ErrCacheMiss))
}

func TestLocalCache_Expiry(t *testing.T) {
	c := NewLocalCache(time.Hour, zap.NewNop())
	defer c.Close()
	ctx := context.Background()

	now := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "k", "v", time.Minute))
	_, err := c.Get(ctx, "k")
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = c.Get(ctx, "k")
	assert.ErrorIs(t, err, ports.ErrCacheMiss)

	c.cleanup()
	c.mu.RLock()
	assert.Empty(t, c.data)
	c.mu.RUnlock()
}

func TestLocalCache_CloseIsIdempotent(t *testing.T) {
	c := NewLocalCache(10*time.Millisecond, zap.NewNop())

	assert.NoError(t, c.Close())
	assert.NoError(t, c.Close())
}

func TestNew_FallsBackToLocal(t *testing.T) {
	c := New("", zap.NewNop())
	defer c.Close()

	_, ok := c.(*LocalCache)
	assert.True(t, ok)
}
