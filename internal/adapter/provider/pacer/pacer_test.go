package pacer

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/wordcount-backend/internal/provider"
)

type mockDictionary struct {
	calls atomic.Int32
}

func (m *mockDictionary) Name() string { return "mock" }

func (m *mockDictionary) Lookup(_ context.Context, word string) (*provider.LookupResult, error) {
	m.calls.Add(1)
	return &provider.LookupResult{Word: word, Found: true}, nil
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDictionary_Lookup_Delegates(t *testing.T) {
	t.Parallel()

	next := &mockDictionary{}
	d := New(next, 0, 0, newTestLogger())

	for range 20 {
		res, err := d.Lookup(context.Background(), "owl")
		require.NoError(t, err)
		assert.Equal(t, "owl", res.Word)
	}
	assert.Equal(t, int32(20), next.calls.Load())
	assert.Equal(t, "mock", d.Name())
}

func TestDictionary_Lookup_Paces(t *testing.T) {
	t.Parallel()

	next := &mockDictionary{}
	d := New(next, 50, 1, newTestLogger())

	start := time.Now()
	for range 5 {
		_, err := d.Lookup(context.Background(), "owl")
		require.NoError(t, err)
	}

	// One token is available at once, the next four arrive 20ms apart.
	assert.GreaterOrEqual(t, time.Since(start), 60*time.Millisecond)
}

func TestDictionary_Lookup_CancelledWhileWaiting(t *testing.T) {
	t.Parallel()

	next := &mockDictionary{}
	d := New(next, 0.1, 1, newTestLogger())

	_, err := d.Lookup(context.Background(), "first")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err = d.Lookup(ctx, "second")

	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.GreaterOrEqual(t, time.Since(start), 15*time.Millisecond)
	assert.Equal(t, int32(1), next.calls.Load())
}

func TestDictionary_Lookup_TokenDueBeforeDeadlineIsServed(t *testing.T) {
	t.Parallel()

	next := &mockDictionary{}
	// Tokens are due at 0ms, 100ms and 200ms; the deadline falls between
	// the second and the third.
	d := New(next, 10, 1, newTestLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()

	errs := make(chan error, 3)
	for _, w := range []string{"a", "b", "c"} {
		go func() {
			_, err := d.Lookup(ctx, w)
			errs <- err
		}()
	}

	var served, expired int
	for range 3 {
		err := <-errs
		switch {
		case err == nil:
			served++
		case errors.Is(err, context.DeadlineExceeded):
			expired++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 2, served)
	assert.Equal(t, 1, expired)
	assert.Equal(t, int32(2), next.calls.Load())
}

func TestDictionary_Lookup_AlreadyCancelled(t *testing.T) {
	t.Parallel()

	next := &mockDictionary{}
	d := New(next, 10, 1, newTestLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := d.Lookup(ctx, "owl")

	assert.True(t, errors.Is(err, context.Canceled))
	assert.Zero(t, next.calls.Load())
}
