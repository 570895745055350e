package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Session.TokenSecret) < 32 {
		return fmt.Errorf("session.token_secret must be at least 32 characters (got %d)", len(c.Session.TokenSecret))
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("session.ttl must be > 0 (got %s)", c.Session.TTL)
	}
	if c.Session.MaxUploadBytes <= 0 {
		return fmt.Errorf("session.max_upload_bytes must be > 0 (got %d)", c.Session.MaxUploadBytes)
	}

	if c.Studio.TopicsDelay < 0 || c.Studio.ContentDelay < 0 || c.Studio.CopyIndicatorTTL < 0 {
		return fmt.Errorf("studio: delays must not be negative")
	}

	if err := c.Generator.validate(); err != nil {
		return fmt.Errorf("generator: %w", err)
	}

	if err := c.Prefs.validate(); err != nil {
		return fmt.Errorf("prefs: %w", err)
	}

	if c.RateLimit.Enabled && (c.RateLimit.PerMinute <= 0 || c.RateLimit.SessionsPerMin <= 0) {
		return fmt.Errorf("rate_limit: per_minute and sessions_per_min must be > 0")
	}
	if c.RateLimit.Enabled && c.RateLimit.CleanupInterval <= 0 {
		return fmt.Errorf("rate_limit.cleanup_interval must be > 0 (got %s)", c.RateLimit.CleanupInterval)
	}

	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("metrics.path must start with / (got %q)", c.Metrics.Path)
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format)
	}

	return nil
}

func (g *GeneratorConfig) validate() error {
	if g.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %s)", g.Timeout)
	}

	switch g.Provider {
	case ProviderHTTP, ProviderMock:
	case ProviderAnthropic:
		if g.AnthropicAPIKey == "" {
			return fmt.Errorf("anthropic_api_key is required for provider %q", g.Provider)
		}
	case ProviderOpenAI:
		if g.OpenAIAPIKey == "" {
			return fmt.Errorf("openai_api_key is required for provider %q", g.Provider)
		}
	default:
		return fmt.Errorf("unknown provider %q", g.Provider)
	}

	// The HTTP service also serves thumbnails for the anthropic provider.
	if g.Provider == ProviderHTTP || g.Provider == ProviderAnthropic {
		u, err := url.Parse(g.BaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("base_url must be an absolute URL (got %q)", g.BaseURL)
		}
		if !strings.HasPrefix(g.ContentPath, "/") || !strings.HasPrefix(g.ThumbnailPath, "/") {
			return fmt.Errorf("content_path and thumbnail_path must start with /")
		}
	}
	return nil
}

func (p *PrefsConfig) validate() error {
	switch p.Driver {
	case DriverMemory:
		return nil
	case DriverPostgres:
		if p.DSN == "" {
			return fmt.Errorf("dsn is required for driver %q", p.Driver)
		}
		if p.MinConns > p.MaxConns {
			return fmt.Errorf("min_conns (%d) must not exceed max_conns (%d)", p.MinConns, p.MaxConns)
		}
		return nil
	}
	return fmt.Errorf("unknown driver %q", p.Driver)
}
