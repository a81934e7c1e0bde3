package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/azure"
	"github.com/openai/openai-go/option"

	"github.com/sozercan/datachat/internal/config"
)

var errNoChoices = errors.New("completion returned no choices")

// OpenAI client implementation
type OpenAI struct {
	client  *openai.Client
	cfg     *config.OpenAIConfig
	timeout time.Duration
}

func NewOpenAI(cfg *config.OpenAIConfig) (*OpenAI, error) {
	var client *openai.Client

	switch cfg.Provider {
	case "azure":
		client = openai.NewClient(
			azure.WithEndpoint(cfg.Endpoint, cfg.APIVersion),
			azure.WithAPIKey(cfg.APIKey),
			option.WithMaxRetries(0),
		)
	case "openai", "":
		client = openai.NewClient(
			option.WithAPIKey(cfg.APIKey),
			option.WithBaseURL(withTrailingSlash(cfg.Endpoint)),
			option.WithMaxRetries(0),
		)
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &OpenAI{
		client:  client,
		cfg:     cfg,
		timeout: timeout,
	}, nil
}

func (o *OpenAI) Complete(ctx context.Context, prompt string, opts ...Option) (*Response, error) {
	if o.cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	options := &Options{
		Model:       o.cfg.Model,
		Temperature: o.cfg.Temperature,
		MaxTokens:   o.cfg.MaxTokens,
	}
	for _, opt := range opts {
		opt(options)
	}

	params := openai.ChatCompletionNewParams{
		Model: openai.F(options.Model),
		Messages: openai.F([]openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		}),
		Temperature: openai.F(options.Temperature),
	}
	if options.MaxTokens > 0 {
		params.MaxTokens = openai.F(options.MaxTokens)
	}

	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	start := time.Now()
	resp, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, errNoChoices
	}

	slog.Debug("Chat completion finished",
		"model", options.Model,
		"duration", time.Since(start),
		"total_tokens", resp.Usage.TotalTokens,
	)

	return &Response{
		Content: strings.TrimSpace(resp.Choices[0].Message.Content),
		Usage: Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}, nil
}

func withTrailingSlash(endpoint string) string {
	if strings.HasSuffix(endpoint, "/") {
		return endpoint
	}
	return endpoint + "/"
}
