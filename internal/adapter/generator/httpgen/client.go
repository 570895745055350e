// Package httpgen talks to the external content generation service over HTTP.
package httpgen

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/circuitbreaker"

	"github.com/heartmarshall/creatorcompass-backend/internal/adapter/generator"
	"github.com/heartmarshall/creatorcompass-backend/internal/config"
	"github.com/heartmarshall/creatorcompass-backend/internal/domain"
)

const maxResponseBytes = 1 << 20

type contentRequest struct {
	Query  string `json:"query"`
	Prompt string `json:"prompt"`
	Format string `json:"format,omitempty"`
}

type contentResponse struct {
	Result  string `json:"result"`
	Content string `json:"content"`
}

type thumbnailRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

type thumbnailResponse struct {
	ThumbnailURL string `json:"thumbnail_url"`
	URL          string `json:"url"`
}

// Client calls the generation service through a circuit breaker.
type Client struct {
	contentURL   string
	thumbnailURL string
	httpClient   *http.Client
	breaker      circuitbreaker.CircuitBreaker[*http.Response]
	executor     failsafe.Executor[*http.Response]
	log          *slog.Logger
}

// New creates a Client for the configured base URL and paths.
func New(log *slog.Logger, cfg config.GeneratorConfig) *Client {
	base := strings.TrimRight(cfg.BaseURL, "/")
	log = log.With("adapter", "httpgen")

	delay := cfg.BreakerDelay
	if delay <= 0 {
		delay = 15 * time.Second
	}

	breaker := circuitbreaker.NewBuilder[*http.Response]().
		WithFailureThresholdRatio(5, 10).
		WithDelay(delay).
		WithSuccessThreshold(1).
		HandleIf(func(resp *http.Response, err error) bool {
			if err != nil {
				return true
			}
			return resp != nil && resp.StatusCode >= 500
		}).
		OnStateChanged(func(e circuitbreaker.StateChangedEvent) {
			log.Warn("generator circuit breaker state change",
				slog.String("from", stateName(e.OldState)),
				slog.String("to", stateName(e.NewState)),
			)
		}).
		Build()

	return &Client{
		contentURL:   base + cfg.ContentPath,
		thumbnailURL: base + cfg.ThumbnailPath,
		httpClient:   &http.Client{Timeout: cfg.Timeout},
		breaker:      breaker,
		executor:     failsafe.With[*http.Response](breaker),
		log:          log,
	}
}

// Generate requests text for req. A non-2xx status, transport error, or
// undecodable body is reported as domain.ErrGeneration. A 2xx reply without
// text returns "" and a nil error.
func (c *Client) Generate(ctx context.Context, req domain.GenerationRequest) (string, error) {
	var out contentResponse
	err := c.post(ctx, c.contentURL, contentRequest{
		Query:  req.Query,
		Prompt: req.Query,
		Format: req.Format,
	}, &out)
	if err != nil {
		return "", err
	}

	return generator.FirstNonEmpty(out.Result, out.Content), nil
}

// GenerateThumbnail requests a thumbnail image URL for req.
func (c *Client) GenerateThumbnail(ctx context.Context, req domain.ThumbnailRequest) (string, error) {
	var out thumbnailResponse
	if err := c.post(ctx, c.thumbnailURL, thumbnailRequest(req), &out); err != nil {
		return "", err
	}

	u := strings.TrimSpace(generator.FirstNonEmpty(out.ThumbnailURL, out.URL))
	if u == "" {
		return "", fmt.Errorf("httpgen: empty thumbnail url: %w", domain.ErrGeneration)
	}
	return u, nil
}

// BreakerOpen reports whether the circuit breaker is rejecting calls.
func (c *Client) BreakerOpen() bool {
	return c.breaker.IsOpen()
}

func (c *Client) post(ctx context.Context, url string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("httpgen: marshal request: %w", err)
	}

	start := time.Now()
	resp, err := c.executor.WithContext(ctx).Get(func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		return c.httpClient.Do(req)
	})
	if err != nil {
		if errors.Is(err, circuitbreaker.ErrOpen) {
			c.log.WarnContext(ctx, "generator call rejected, circuit open", slog.String("url", url))
		} else {
			c.log.ErrorContext(ctx, "generator request failed", slog.String("url", url), slog.String("error", err.Error()))
		}
		return fmt.Errorf("httpgen: %w: %w", domain.ErrGeneration, err)
	}
	defer resp.Body.Close()

	c.log.DebugContext(ctx, "generator response",
		slog.String("url", url),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return fmt.Errorf("httpgen: unexpected status %d: %w", resp.StatusCode, domain.ErrGeneration)
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(out); err != nil {
		return fmt.Errorf("httpgen: decode response: %w: %w", domain.ErrGeneration, err)
	}
	return nil
}

func stateName(s circuitbreaker.State) string {
	switch s {
	case circuitbreaker.ClosedState:
		return "closed"
	case circuitbreaker.HalfOpenState:
		return "half-open"
	case circuitbreaker.OpenState:
		return "open"
	default:
		return "unknown"
	}
}
