package llm

import (
	"context"
	"errors"
)

// ErrMissingAPIKey is returned by Complete when no API credential was configured.
var ErrMissingAPIKey = errors.New("openai api key is not configured")

type Provider interface {
	// Complete sends a single stateless prompt and returns the model's reply
	Complete(ctx context.Context, prompt string, opts ...Option) (*Response, error)
}

type Usage struct {
	PromptTokens     int64
	CompletionTokens int64
	TotalTokens      int64
}

type Option func(*Options)

type Options struct {
	Model       string
	MaxTokens   int64
	Temperature float64
}

type Response struct {
	Content string
	Usage   Usage
}
