package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/wordcount-backend/internal/adapter/cache"
	"github.com/heartmarshall/wordcount-backend/internal/adapter/cache/testhelper"
	"github.com/heartmarshall/wordcount-backend/internal/provider"
)

func TestRedisStore(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping redis integration test in short mode")
	}

	rdb := testhelper.SetupTestRedis(t)
	s := cache.NewRedisStore(rdb, time.Minute)
	ctx := context.Background()

	require.NoError(t, s.Ping(ctx))

	t.Run("miss", func(t *testing.T) {
		_, ok, err := s.Get(ctx, "wc:test:missing")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("found round trip", func(t *testing.T) {
		in := &provider.LookupResult{
			Word:          "owl",
			Found:         true,
			Pronunciation: "oul",
			Definitions: []provider.DefinitionResult{
				{Type: "noun", Definition: "a nocturnal bird of prey", ImageURL: "https://example.com/owl.jpg"},
			},
		}
		require.NoError(t, s.Set(ctx, "wc:test:owl", in))

		got, ok, err := s.Get(ctx, "wc:test:owl")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, in, got)

		ttl, err := rdb.TTL(ctx, "wc:test:owl").Result()
		require.NoError(t, err)
		assert.Greater(t, ttl, time.Duration(0))
	})

	t.Run("not found round trip", func(t *testing.T) {
		in := provider.NotFound("xyzzy", "No definition :(")
		require.NoError(t, s.Set(ctx, "wc:test:xyzzy", in))

		got, ok, err := s.Get(ctx, "wc:test:xyzzy")
		require.NoError(t, err)
		require.True(t, ok)
		assert.False(t, got.Found)
		assert.Equal(t, "No definition :(", got.Message)
	})

	t.Run("corrupt value", func(t *testing.T) {
		require.NoError(t, rdb.Set(ctx, "wc:test:bad", "{not json", 0).Err())

		_, ok, err := s.Get(ctx, "wc:test:bad")
		assert.Error(t, err)
		assert.False(t, ok)
	})
}
