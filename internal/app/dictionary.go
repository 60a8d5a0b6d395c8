package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/heartmarshall/wordcount-backend/internal/adapter/cache"
	"github.com/heartmarshall/wordcount-backend/internal/adapter/provider/cached"
	"github.com/heartmarshall/wordcount-backend/internal/adapter/provider/freedict"
	"github.com/heartmarshall/wordcount-backend/internal/adapter/provider/owlbot"
	"github.com/heartmarshall/wordcount-backend/internal/adapter/provider/pacer"
	"github.com/heartmarshall/wordcount-backend/internal/config"
	"github.com/heartmarshall/wordcount-backend/internal/provider"
	"github.com/heartmarshall/wordcount-backend/internal/transport/rest"
)

const redisPingTimeout = 2 * time.Second

// LookupClient is a named dictionary lookup client.
type LookupClient interface {
	Name() string
	Lookup(ctx context.Context, word string) (*provider.LookupResult, error)
}

// Dictionary is the configured lookup client stack: the provider, wrapped
// in the pacer and the cache when they are enabled.
type Dictionary struct {
	Client LookupClient
	// Checks holds the components the health endpoints ping.
	Checks map[string]rest.Pinger

	closers []func() error
}

// NewDictionary builds the lookup client stack described by cfg. Cache hits
// are answered before the pacer, so they never wait for a token.
func NewDictionary(ctx context.Context, cfg config.DictionaryConfig, cacheCfg config.CacheConfig, logger *slog.Logger) (*Dictionary, error) {
	d := &Dictionary{Checks: make(map[string]rest.Pinger)}

	client, err := newProvider(cfg, logger)
	if err != nil {
		return nil, err
	}

	if cfg.RequestsPerSecond > 0 {
		client = pacer.New(client, cfg.RequestsPerSecond, cfg.Burst, logger)
	}

	if !cacheCfg.Enabled() {
		d.Client = client
		return d, nil
	}

	switch cacheCfg.Backend {
	case config.CacheMemory:
		client = cached.New(client, cache.NewMemoryStore(cacheCfg.Size, cacheCfg.TTL), cacheCfg.KeyPrefix, logger)
	case config.CacheRedis:
		store, err := newRedisStore(ctx, cacheCfg)
		if err != nil {
			return nil, err
		}
		d.Checks["cache"] = store
		d.closers = append(d.closers, store.Close)
		client = cached.New(client, store, cacheCfg.KeyPrefix, logger)
	}

	d.Client = client
	return d, nil
}

// Close releases the resources held by the stack.
func (d *Dictionary) Close() error {
	var errs []error
	for _, c := range d.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}

func newProvider(cfg config.DictionaryConfig, logger *slog.Logger) (LookupClient, error) {
	switch cfg.Provider {
	case config.ProviderOwlbot:
		opts := []owlbot.Option{owlbot.WithTimeout(cfg.Timeout), owlbot.WithRetryDelay(cfg.RetryDelay)}
		if cfg.BaseURL != "" {
			return owlbot.NewProviderWithURL(cfg.BaseURL, cfg.Token, logger, opts...), nil
		}
		return owlbot.NewProvider(cfg.Token, logger, opts...), nil
	case config.ProviderFreeDict:
		opts := []freedict.Option{freedict.WithTimeout(cfg.Timeout), freedict.WithRetryDelay(cfg.RetryDelay)}
		if cfg.BaseURL != "" {
			return freedict.NewProviderWithURL(cfg.BaseURL, logger, opts...), nil
		}
		return freedict.NewProvider(logger, opts...), nil
	default:
		return nil, fmt.Errorf("unknown dictionary provider %q", cfg.Provider)
	}
}

func newRedisStore(ctx context.Context, cfg config.CacheConfig) (*cache.RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	store := cache.NewRedisStore(rdb, cfg.TTL)

	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()
	if err := store.Ping(pingCtx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.RedisAddr, err)
	}
	return store, nil
}
