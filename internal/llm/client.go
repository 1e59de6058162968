package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
	"go.uber.org/zap"

	"github.com/moatezLita/salesGPT/internal/config"
	"github.com/moatezLita/salesGPT/internal/metrics"
)

// Request is a single system + user message exchange.
type Request struct {
	System      string
	User        string
	Temperature float64
	MaxTokens   int
}

// Completer sends one prompt and returns the raw reply text.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// Client implements Completer on top of openai-go. Retries and timeouts are
// the SDK defaults.
type Client struct {
	api      openai.Client
	model    string
	jsonMode bool
	hasKey   bool
	logger   *zap.Logger
}

// NewClient builds a client for cfg. Extra request options are appended after
// the ones derived from cfg.
func NewClient(cfg config.LLMConfig, logger *zap.Logger, opts ...option.RequestOption) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	base := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		base = append(base, option.WithBaseURL(cfg.BaseURL))
	}

	return &Client{
		api:      openai.NewClient(append(base, opts...)...),
		model:    cfg.Model,
		jsonMode: cfg.JSONMode,
		hasKey:   strings.TrimSpace(cfg.APIKey) != "",
		logger:   logger.Named("llm"),
	}
}

// Complete issues a chat completion and returns the first choice's content.
func (c *Client) Complete(ctx context.Context, req Request) (string, error) {
	if !c.hasKey {
		return "", ErrMissingAPIKey
	}

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.System),
			openai.UserMessage(req.User),
		},
		Temperature: openai.Float(req.Temperature),
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxTokens))
	}
	if c.jsonMode {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		}
	}

	start := time.Now()
	resp, err := c.api.Chat.Completions.New(ctx, params)
	metrics.ObserveLLM(start, err)
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			c.logger.Warn("completion rejected",
				zap.String("model", c.model),
				zap.Int("status", apiErr.StatusCode),
				zap.Duration("latency", time.Since(start)),
			)
			return "", &ProviderError{StatusCode: apiErr.StatusCode, Model: c.model, Err: err}
		}
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", ErrEmptyCompletion
	}

	c.logger.Debug("completion received",
		zap.String("model", c.model),
		zap.Int64("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int64("completion_tokens", resp.Usage.CompletionTokens),
		zap.Duration("latency", time.Since(start)),
	)
	return content, nil
}

// DecodeObject strictly decodes a reply that must be a single JSON object.
func DecodeObject(text string, dst any) error {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "{") {
		return ErrNotJSONObject
	}
	if err := json.Unmarshal([]byte(trimmed), dst); err != nil {
		return fmt.Errorf("%w: %v", ErrNotJSONObject, err)
	}
	return nil
}
