// Package openaigen generates text with OpenAI chat completions and
// thumbnails with DALL-E 3.
package openaigen

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/heartmarshall/creatorcompass-backend/internal/adapter/generator"
	"github.com/heartmarshall/creatorcompass-backend/internal/config"
	"github.com/heartmarshall/creatorcompass-backend/internal/domain"
)

// Client implements both text and thumbnail generation.
type Client struct {
	client    openai.Client
	model     openai.ChatModel
	maxTokens int64
	log       *slog.Logger
}

// New creates a Client. Extra options are appended after the API key and
// timeout; tests use them to point at a local server.
func New(log *slog.Logger, cfg config.GeneratorConfig, opts ...option.RequestOption) *Client {
	base := []option.RequestOption{
		option.WithAPIKey(cfg.OpenAIAPIKey),
		option.WithRequestTimeout(cfg.Timeout),
		option.WithMaxRetries(0),
	}
	return &Client{
		client:    openai.NewClient(append(base, opts...)...),
		model:     openai.ChatModel(cfg.OpenAIModel),
		maxTokens: cfg.MaxTokens,
		log:       log.With("adapter", "openai"),
	}
}

// Generate returns the first choice of a chat completion for req.
func (c *Client) Generate(ctx context.Context, req domain.GenerationRequest) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(generator.SystemPrompt),
			openai.UserMessage(generator.UserPrompt(req)),
		},
		MaxCompletionTokens: openai.Int(c.maxTokens),
	})
	if err != nil {
		c.log.ErrorContext(ctx, "openai chat call failed", slog.String("error", err.Error()))
		return "", fmt.Errorf("openai: %w: %w", domain.ErrGeneration, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai: no choices: %w", domain.ErrGeneration)
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("openai: empty response: %w", domain.ErrGeneration)
	}
	return text, nil
}

// GenerateThumbnail renders a 1792x1024 HD DALL-E 3 image and returns its URL.
func (c *Client) GenerateThumbnail(ctx context.Context, req domain.ThumbnailRequest) (string, error) {
	resp, err := c.client.Images.Generate(ctx, openai.ImageGenerateParams{
		Prompt:  generator.ThumbnailPrompt(req),
		Model:   openai.ImageModelDallE3,
		Size:    openai.ImageGenerateParamsSize1792x1024,
		Quality: openai.ImageGenerateParamsQualityHD,
		N:       openai.Int(1),
	})
	if err != nil {
		c.log.ErrorContext(ctx, "openai image call failed", slog.String("error", err.Error()))
		return "", fmt.Errorf("openai: %w: %w", domain.ErrGeneration, err)
	}

	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return "", fmt.Errorf("openai: no image url: %w", domain.ErrGeneration)
	}
	return resp.Data[0].URL, nil
}
