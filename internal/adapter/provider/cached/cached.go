// Package cached puts a keyed lookup cache in front of a dictionary provider.
package cached

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/wordcount-backend/internal/domain"
	"github.com/heartmarshall/wordcount-backend/internal/provider"
)

type dictionary interface {
	Name() string
	Lookup(ctx context.Context, word string) (*provider.LookupResult, error)
}

// Store persists lookup results by key.
type Store interface {
	Get(ctx context.Context, key string) (*provider.LookupResult, bool, error)
	Set(ctx context.Context, key string, res *provider.LookupResult) error
}

// Dictionary answers lookups from a Store and falls back to the wrapped
// provider on a miss. Found and not-found answers are cached; faults are not.
// A failing store only costs the cache: the lookup still goes to the provider.
type Dictionary struct {
	next   dictionary
	store  Store
	prefix string
	log    *slog.Logger
}

// New wraps next with store. Keys have the form prefix:provider:word.
func New(next dictionary, store Store, prefix string, logger *slog.Logger) *Dictionary {
	return &Dictionary{
		next:   next,
		store:  store,
		prefix: prefix,
		log:    logger.With("adapter", "cache", "provider", next.Name()),
	}
}

// Name returns the wrapped provider's name.
func (d *Dictionary) Name() string { return d.next.Name() }

// Lookup returns the cached result for word or fetches and caches it. A done
// ctx fails the lookup even when the answer is cached.
func (d *Dictionary) Lookup(ctx context.Context, word string) (*provider.LookupResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("cached lookup %q: %w", word, err)
	}

	key := d.Key(word)

	res, ok, err := d.store.Get(ctx, key)
	switch {
	case err != nil:
		d.log.WarnContext(ctx, "cache get failed", slog.String("key", key), slog.String("error", err.Error()))
	case ok:
		d.log.DebugContext(ctx, "cache hit", slog.String("key", key))
		return res, nil
	}

	res, err = d.next.Lookup(ctx, word)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, nil
	}

	if err := d.store.Set(ctx, key, res); err != nil {
		d.log.WarnContext(ctx, "cache set failed", slog.String("key", key), slog.String("error", err.Error()))
	}
	return res, nil
}

// Key returns the cache key for word.
func (d *Dictionary) Key(word string) string {
	key := d.next.Name() + ":" + domain.NormalizeWord(word)
	if d.prefix == "" {
		return key
	}
	return d.prefix + ":" + key
}
