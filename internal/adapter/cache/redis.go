package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/heartmarshall/wordcount-backend/internal/provider"
)

// RedisStore keeps lookup results in Redis as JSON documents with a TTL, so
// several server instances can share them.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisStore creates a RedisStore on top of an existing client. A ttl of
// zero stores entries without expiry.
func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

type entry struct {
	Word          string            `json:"word"`
	Found         bool              `json:"found"`
	Message       string            `json:"message,omitempty"`
	Pronunciation string            `json:"pronunciation,omitempty"`
	Definitions   []definitionEntry `json:"definitions"`
}

type definitionEntry struct {
	Type       string `json:"type,omitempty"`
	Definition string `json:"definition"`
	Example    string `json:"example,omitempty"`
	Emoji      string `json:"emoji,omitempty"`
	ImageURL   string `json:"imageUrl,omitempty"`
}

// Get returns the cached result for key. A missing key is not an error.
func (s *RedisStore) Get(ctx context.Context, key string) (*provider.LookupResult, bool, error) {
	data, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}

	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, false, fmt.Errorf("redis decode %s: %w", key, err)
	}
	return e.toResult(), true, nil
}

// Set stores res under key.
func (s *RedisStore) Set(ctx context.Context, key string, res *provider.LookupResult) error {
	data, err := json.Marshal(fromResult(res))
	if err != nil {
		return fmt.Errorf("redis encode %s: %w", key, err)
	}
	if err := s.rdb.Set(ctx, key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Ping checks that Redis is reachable.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

// Close closes the underlying client.
func (s *RedisStore) Close() error {
	return s.rdb.Close()
}

func fromResult(res *provider.LookupResult) entry {
	e := entry{
		Word:          res.Word,
		Found:         res.Found,
		Message:       res.Message,
		Pronunciation: res.Pronunciation,
		Definitions:   make([]definitionEntry, 0, len(res.Definitions)),
	}
	for _, d := range res.Definitions {
		e.Definitions = append(e.Definitions, definitionEntry(d))
	}
	return e
}

func (e entry) toResult() *provider.LookupResult {
	res := &provider.LookupResult{
		Word:          e.Word,
		Found:         e.Found,
		Message:       e.Message,
		Pronunciation: e.Pronunciation,
	}
	if len(e.Definitions) > 0 {
		res.Definitions = make([]provider.DefinitionResult, 0, len(e.Definitions))
		for _, d := range e.Definitions {
			res.Definitions = append(res.Definitions, provider.DefinitionResult(d))
		}
	}
	return res
}
