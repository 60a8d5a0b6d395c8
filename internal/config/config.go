package config

import "time"

// Dictionary providers.
const (
	ProviderOwlbot   = "owlbot"
	ProviderFreeDict = "freedict"
)

// Cache backends.
const (
	CacheNone   = "none"
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// Config is the root application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Log        LogConfig        `yaml:"log"`
	CORS       CORSConfig       `yaml:"cors"`
	WordCount  WordCountConfig  `yaml:"wordcount"`
	Dictionary DictionaryConfig `yaml:"dictionary"`
	Cache      CacheConfig      `yaml:"cache"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Content-Type,X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"30s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"60s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// WordCountConfig holds limits for the word count endpoint.
type WordCountConfig struct {
	DefaultLimit   int           `yaml:"default_limit"    env:"WORDCOUNT_DEFAULT_LIMIT"    env-default:"10"`
	MaxLimit       int           `yaml:"max_limit"        env:"WORDCOUNT_MAX_LIMIT"        env-default:"100"`
	MaxUploadBytes int64         `yaml:"max_upload_bytes" env:"WORDCOUNT_MAX_UPLOAD_BYTES" env-default:"10485760"`
	RequestTimeout time.Duration `yaml:"request_timeout"  env:"WORDCOUNT_REQUEST_TIMEOUT"  env-default:"30s"`
}

// DictionaryConfig selects and tunes the remote dictionary client.
type DictionaryConfig struct {
	Provider string `yaml:"provider" env:"DICTIONARY_PROVIDER" env-default:"owlbot"`
	// BaseURL overrides the provider's public endpoint.
	BaseURL    string        `yaml:"base_url"    env:"DICTIONARY_BASE_URL"`
	Token      string        `yaml:"token"       env:"DICTIONARY_TOKEN"`
	Timeout    time.Duration `yaml:"timeout"     env:"DICTIONARY_TIMEOUT"     env-default:"10s"`
	RetryDelay time.Duration `yaml:"retry_delay" env:"DICTIONARY_RETRY_DELAY" env-default:"500ms"`
	// MaxConcurrent caps lookups in flight per request; 0 starts one per word.
	MaxConcurrent int `yaml:"max_concurrent" env:"DICTIONARY_MAX_CONCURRENT" env-default:"0"`
	// RequestsPerSecond paces calls to the provider across all requests; 0 disables pacing.
	RequestsPerSecond float64 `yaml:"requests_per_second" env:"DICTIONARY_REQUESTS_PER_SECOND" env-default:"0"`
	Burst             int     `yaml:"burst"               env:"DICTIONARY_BURST"               env-default:"1"`
}

// CacheConfig holds definition cache settings.
type CacheConfig struct {
	Backend       string        `yaml:"backend"        env:"CACHE_BACKEND"        env-default:"none"`
	TTL           time.Duration `yaml:"ttl"            env:"CACHE_TTL"            env-default:"24h"`
	Size          int           `yaml:"size"           env:"CACHE_SIZE"           env-default:"10000"`
	RedisAddr     string        `yaml:"redis_addr"     env:"CACHE_REDIS_ADDR"     env-default:"localhost:6379"`
	RedisPassword string        `yaml:"redis_password" env:"CACHE_REDIS_PASSWORD"`
	RedisDB       int           `yaml:"redis_db"       env:"CACHE_REDIS_DB"       env-default:"0"`
	KeyPrefix     string        `yaml:"key_prefix"     env:"CACHE_KEY_PREFIX"     env-default:"wordcount"`
}

// Enabled reports whether a cache backend is configured.
func (c CacheConfig) Enabled() bool {
	return c.Backend != "" && c.Backend != CacheNone
}
