package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/wordcount-backend/internal/provider"
)

func owlResult() *provider.LookupResult {
	return &provider.LookupResult{
		Word:          "owl",
		Found:         true,
		Pronunciation: "oul",
		Definitions: []provider.DefinitionResult{
			{Type: "noun", Definition: "a nocturnal bird of prey", Emoji: "🦉"},
		},
	}
}

func TestMemoryStore_GetSet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewMemoryStore(10, time.Minute)

	_, ok, err := s.Get(ctx, "owl")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "owl", owlResult()))

	got, ok, err := s.Get(ctx, "owl")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, owlResult(), got)
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewMemoryStore(10, time.Minute)

	in := owlResult()
	require.NoError(t, s.Set(ctx, "owl", in))
	in.Definitions[0].Definition = "changed after set"

	got, _, _ := s.Get(ctx, "owl")
	got.Definitions[0].Definition = "changed after get"

	again, _, _ := s.Get(ctx, "owl")
	assert.Equal(t, "a nocturnal bird of prey", again.Definitions[0].Definition)
}

func TestMemoryStore_Evicts(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewMemoryStore(2, time.Minute)

	for _, w := range []string{"a", "b", "c"} {
		require.NoError(t, s.Set(ctx, w, &provider.LookupResult{Word: w}))
	}

	_, ok, _ := s.Get(ctx, "a")
	assert.False(t, ok)
	for _, w := range []string{"b", "c"} {
		_, ok, _ := s.Get(ctx, w)
		assert.True(t, ok, w)
	}
}

func TestMemoryStore_Expires(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewMemoryStore(10, 10*time.Millisecond)

	require.NoError(t, s.Set(ctx, "owl", owlResult()))

	assert.Eventually(t, func() bool {
		_, ok, _ := s.Get(ctx, "owl")
		return !ok
	}, time.Second, 5*time.Millisecond)
}
