// Package cache provides stores for dictionary lookup results.
package cache

import (
	"context"
	"slices"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/heartmarshall/wordcount-backend/internal/provider"
)

// MemoryStore keeps lookup results in a size-bounded in-process LRU whose
// entries expire after a fixed TTL.
type MemoryStore struct {
	lru *expirable.LRU[string, provider.LookupResult]
}

// NewMemoryStore creates a MemoryStore holding at most size entries.
// A ttl of zero keeps entries until they are evicted.
func NewMemoryStore(size int, ttl time.Duration) *MemoryStore {
	return &MemoryStore{lru: expirable.NewLRU[string, provider.LookupResult](size, nil, ttl)}
}

// Get returns a copy of the cached result for key.
func (s *MemoryStore) Get(_ context.Context, key string) (*provider.LookupResult, bool, error) {
	res, ok := s.lru.Get(key)
	if !ok {
		return nil, false, nil
	}
	res.Definitions = slices.Clone(res.Definitions)
	return &res, true, nil
}

// Set stores a copy of res under key.
func (s *MemoryStore) Set(_ context.Context, key string, res *provider.LookupResult) error {
	v := *res
	v.Definitions = slices.Clone(res.Definitions)
	s.lru.Add(key, v)
	return nil
}
