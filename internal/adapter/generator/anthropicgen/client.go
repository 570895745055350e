// Package anthropicgen generates text with the Anthropic Messages API.
package anthropicgen

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/heartmarshall/creatorcompass-backend/internal/adapter/generator"
	"github.com/heartmarshall/creatorcompass-backend/internal/config"
	"github.com/heartmarshall/creatorcompass-backend/internal/domain"
)

// Client is a text generator backed by Claude. It has no image model, so
// thumbnails come from another provider.
type Client struct {
	client    anthropic.Client
	model     anthropic.Model
	maxTokens int64
	log       *slog.Logger
}

// New creates a Client. Extra options are appended after the API key and
// timeout; tests use them to point at a local server.
func New(log *slog.Logger, cfg config.GeneratorConfig, opts ...option.RequestOption) *Client {
	base := []option.RequestOption{
		option.WithAPIKey(cfg.AnthropicAPIKey),
		option.WithRequestTimeout(cfg.Timeout),
		option.WithMaxRetries(0),
	}
	return &Client{
		client:    anthropic.NewClient(append(base, opts...)...),
		model:     anthropic.Model(cfg.AnthropicModel),
		maxTokens: cfg.MaxTokens,
		log:       log.With("adapter", "anthropic"),
	}
}

// Generate sends req as a single user message and returns the text blocks
// of the reply joined together.
func (c *Client) Generate(ctx context.Context, req domain.GenerationRequest) (string, error) {
	msg, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		System: []anthropic.TextBlockParam{
			{Text: generator.SystemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(generator.UserPrompt(req))),
		},
	})
	if err != nil {
		c.log.ErrorContext(ctx, "anthropic call failed", slog.String("error", err.Error()))
		return "", fmt.Errorf("anthropic: %w: %w", domain.ErrGeneration, err)
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}

	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", fmt.Errorf("anthropic: empty response: %w", domain.ErrGeneration)
	}

	c.log.DebugContext(ctx, "anthropic response",
		slog.String("model", string(msg.Model)),
		slog.Int64("output_tokens", msg.Usage.OutputTokens),
	)
	return text, nil
}
