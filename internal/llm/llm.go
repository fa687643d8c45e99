// Package llm wraps the chat-completion providers behind a single Client.
package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bookai/backend/internal/config"
	"bookai/backend/internal/httpclient"
)

var (
	// ErrNoCredential is returned when no LLM API key is configured
	ErrNoCredential = errors.New("llm: no API credential configured")
	// ErrEmptyCompletion is returned when the provider answers without text
	ErrEmptyCompletion = errors.New("llm: empty completion")
)

// Request is a single system+user completion
type Request struct {
	System      string
	Prompt      string
	Temperature float32
	MaxTokens   int
	// JSON asks the provider for a JSON object response
	JSON bool
}

// Client abstracts LLM API calls for summarization, analysis and translation
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
	Name() string
}

// clientTimeout is the transport ceiling; each call sets its own tighter deadline
const clientTimeout = 30 * time.Second

// New creates a Client for the configured provider. It returns nil, nil
// when no credential is configured, which disables every LLM path.
func New(ctx context.Context, cfg config.LLMConfig) (Client, error) {
	if cfg.APIKey == "" {
		return nil, nil
	}
	httpClient := httpclient.New(httpclient.Config{Timeout: clientTimeout})

	switch cfg.Provider {
	case config.ProviderGroq, config.ProviderOpenAI:
		return WithQuotaTracking(NewOpenAIClient(cfg.Provider, cfg.APIKey, cfg.BaseURL, cfg.Model, httpClient)), nil
	case config.ProviderGemini:
		client, err := NewGeminiClient(ctx, cfg.APIKey, cfg.Model, httpClient)
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini client: %w", err)
		}
		return WithQuotaTracking(client), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %q", cfg.Provider)
	}
}
