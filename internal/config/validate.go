package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}

	if err := c.WordCount.validate(); err != nil {
		return fmt.Errorf("wordcount: %w", err)
	}

	if err := c.Dictionary.validate(); err != nil {
		return fmt.Errorf("dictionary: %w", err)
	}

	if err := c.Cache.validate(); err != nil {
		return fmt.Errorf("cache: %w", err)
	}

	return nil
}

func (w *WordCountConfig) validate() error {
	if w.DefaultLimit <= 0 {
		return fmt.Errorf("default_limit must be > 0 (got %d)", w.DefaultLimit)
	}
	if w.MaxLimit <= 0 {
		return fmt.Errorf("max_limit must be > 0 (got %d)", w.MaxLimit)
	}
	if w.DefaultLimit > w.MaxLimit {
		return fmt.Errorf("default_limit (%d) must not exceed max_limit (%d)", w.DefaultLimit, w.MaxLimit)
	}
	if w.MaxUploadBytes <= 0 {
		return fmt.Errorf("max_upload_bytes must be > 0 (got %d)", w.MaxUploadBytes)
	}
	if w.RequestTimeout < 0 {
		return fmt.Errorf("request_timeout must be >= 0 (got %s)", w.RequestTimeout)
	}
	return nil
}

func (d *DictionaryConfig) validate() error {
	d.Provider = strings.ToLower(strings.TrimSpace(d.Provider))
	switch d.Provider {
	case ProviderOwlbot:
		if strings.TrimSpace(d.Token) == "" {
			return fmt.Errorf("token is required for provider %q", ProviderOwlbot)
		}
	case ProviderFreeDict:
	default:
		return fmt.Errorf("unknown provider %q (want %q or %q)", d.Provider, ProviderOwlbot, ProviderFreeDict)
	}

	if d.MaxConcurrent < 0 {
		return fmt.Errorf("max_concurrent must be >= 0 (got %d)", d.MaxConcurrent)
	}
	if d.RequestsPerSecond < 0 {
		return fmt.Errorf("requests_per_second must be >= 0 (got %v)", d.RequestsPerSecond)
	}
	if d.Burst < 0 {
		return fmt.Errorf("burst must be >= 0 (got %d)", d.Burst)
	}
	return nil
}

func (c *CacheConfig) validate() error {
	c.Backend = strings.ToLower(strings.TrimSpace(c.Backend))
	switch c.Backend {
	case "", CacheNone:
		c.Backend = CacheNone
		return nil
	case CacheMemory:
		if c.Size <= 0 {
			return fmt.Errorf("size must be > 0 for the memory backend (got %d)", c.Size)
		}
	case CacheRedis:
		if strings.TrimSpace(c.RedisAddr) == "" {
			return fmt.Errorf("redis_addr is required for the redis backend")
		}
	default:
		return fmt.Errorf("unknown backend %q (want %q, %q or %q)", c.Backend, CacheNone, CacheMemory, CacheRedis)
	}

	if c.TTL < 0 {
		return fmt.Errorf("ttl must be >= 0 (got %s)", c.TTL)
	}
	return nil
}
