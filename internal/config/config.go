package config

import (
	"net"
	"strconv"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
	Session   SessionConfig   `yaml:"session"`
	Studio    StudioConfig    `yaml:"studio"`
	Generator GeneratorConfig `yaml:"generator"`
	Prefs     PrefsConfig     `yaml:"prefs"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type,X-Session-Token,X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// SessionConfig holds wizard session settings.
type SessionConfig struct {
	TTL            time.Duration `yaml:"ttl"              env:"SESSION_TTL"              env-default:"2h"`
	SweepInterval  time.Duration `yaml:"sweep_interval"   env:"SESSION_SWEEP_INTERVAL"   env-default:"1m"`
	MaxUploadBytes int64         `yaml:"max_upload_bytes" env:"SESSION_MAX_UPLOAD_BYTES" env-default:"20971520"`
	TokenSecret    string        `yaml:"token_secret"     env:"SESSION_TOKEN_SECRET"     env-required:"true"`
	TokenIssuer    string        `yaml:"token_issuer"     env:"SESSION_TOKEN_ISSUER"     env-default:"creatorcompass"`
}

// StudioConfig holds the artificial delays of the topics and content steps.
type StudioConfig struct {
	TopicsDelay      time.Duration `yaml:"topics_delay"       env:"STUDIO_TOPICS_DELAY"       env-default:"2s"`
	ContentDelay     time.Duration `yaml:"content_delay"      env:"STUDIO_CONTENT_DELAY"      env-default:"1500ms"`
	CopyIndicatorTTL time.Duration `yaml:"copy_indicator_ttl" env:"STUDIO_COPY_INDICATOR_TTL" env-default:"2s"`
}

// Generator providers.
const (
	ProviderHTTP      = "http"
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
	ProviderMock      = "mock"
)

// GeneratorConfig selects and configures the content generator.
type GeneratorConfig struct {
	Provider       string        `yaml:"provider"        env:"GENERATOR_PROVIDER"        env-default:"http"`
	BaseURL        string        `yaml:"base_url"        env:"GENERATOR_BASE_URL"        env-default:"http://localhost:5000"`
	ContentPath    string        `yaml:"content_path"    env:"GENERATOR_CONTENT_PATH"    env-default:"/generate-content"`
	ThumbnailPath  string        `yaml:"thumbnail_path"  env:"GENERATOR_THUMBNAIL_PATH"  env-default:"/generate/thumbnail"`
	Timeout        time.Duration `yaml:"timeout"         env:"GENERATOR_TIMEOUT"         env-default:"60s"`
	SilentFallback bool          `yaml:"silent_fallback" env:"GENERATOR_SILENT_FALLBACK" env-default:"true"`

	// BreakerDelay is how long the circuit stays open before probing again.
	BreakerDelay time.Duration `yaml:"breaker_delay" env:"GENERATOR_BREAKER_DELAY" env-default:"15s"`

	AnthropicAPIKey string `yaml:"anthropic_api_key" env:"ANTHROPIC_API_KEY"`
	AnthropicModel  string `yaml:"anthropic_model"   env:"GENERATOR_ANTHROPIC_MODEL" env-default:"claude-sonnet-4-5"`
	OpenAIAPIKey    string `yaml:"openai_api_key"    env:"OPENAI_API_KEY"`
	OpenAIModel     string `yaml:"openai_model"      env:"GENERATOR_OPENAI_MODEL"    env-default:"gpt-4o-mini"`
	MaxTokens       int64  `yaml:"max_tokens"        env:"GENERATOR_MAX_TOKENS"      env-default:"1024"`
}

// Prefs storage drivers.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
)

// PrefsConfig holds the cross-session preference storage settings.
type PrefsConfig struct {
	Driver          string        `yaml:"driver"             env:"PREFS_DRIVER"             env-default:"memory"`
	DSN             string        `yaml:"dsn"                env:"PREFS_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"PREFS_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"PREFS_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"PREFS_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"PREFS_MAX_CONN_IDLE_TIME" env-default:"30m"`
	MigrateOnStart  bool          `yaml:"migrate_on_start"   env:"PREFS_MIGRATE_ON_START"   env-default:"true"`
}

// RateLimitConfig holds per-IP rate limiting settings.
type RateLimitConfig struct {
	Enabled         bool          `yaml:"enabled"          env:"RATE_LIMIT_ENABLED"          env-default:"true"`
	PerMinute       int           `yaml:"per_minute"       env:"RATE_LIMIT_PER_MINUTE"       env-default:"600"`
	SessionsPerMin  int           `yaml:"sessions_per_min" env:"RATE_LIMIT_SESSIONS_PER_MIN" env-default:"30"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" env:"RATE_LIMIT_CLEANUP_INTERVAL" env-default:"5m"`
}

// MetricsConfig holds Prometheus settings.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" env:"METRICS_ENABLED" env-default:"true"`
	Path    string `yaml:"path"    env:"METRICS_PATH"    env-default:"/metrics"`
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}
