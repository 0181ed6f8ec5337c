//go:build integration

package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_Integration(t *testing.T) {
	ctx := context.Background()
	rc, cleanup := SetupRedisContainer(t, ctx)
	defer cleanup()

	store := CreateTestStore(t, rc.Addr, time.Hour)
	defer store.Close()

	t.Run("missing value reads as zero", func(t *testing.T) {
		v, err := store.Get(ctx, "fresh", "num_visits")
		require.NoError(t, err)
		assert.Equal(t, int64(0), v)
	})

	t.Run("set then get", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "s1", "num_visits", 4))
		v, err := store.Get(ctx, "s1", "num_visits")
		require.NoError(t, err)
		assert.Equal(t, int64(4), v)
	})

	t.Run("values expire with the session", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "s2", "num_visits", 1))
		ttl := GetKeyTTL(t, rc.Addr, "session:s2:num_visits")
		assert.Greater(t, ttl, 59*time.Minute)
		assert.LessOrEqual(t, ttl, time.Hour)
	})

	t.Run("closed store releases its connection", func(t *testing.T) {
		closing := CreateTestStore(t, rc.Addr, time.Hour)
		require.NoError(t, closing.Close())

		_, err := closing.Get(ctx, "s1", "num_visits")
		assert.Error(t, err)
	})
}
