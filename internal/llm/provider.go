package llm

import (
	"context"
	"fmt"
)

// Request is a single chat-completion call.
type Request struct {
	System       string // system message, may be empty
	Prompt       string // user message
	ImageDataURL string // optional data: URL for vision requests
	MaxTokens    int
	Temperature  float32
}

// Provider generates a completion for a request.
type Provider interface {
	Complete(ctx context.Context, req Request) (string, error)

	// Name returns the provider name as used on the command line.
	Name() string
}

// Config selects and configures a provider.
type Config struct {
	Provider string // "openai" or "gemini"
	APIKey   string
	Model    string // provider-specific model name, empty for the default
}

// NewProvider creates the configured chat provider.
func NewProvider(cfg *Config) (Provider, error) {
	switch cfg.Provider {
	case "", "openai":
		return NewOpenAIProvider(cfg.APIKey, cfg.Model)
	case "gemini":
		return NewGeminiProvider(cfg.APIKey, cfg.Model)
	default:
		return nil, fmt.Errorf("unknown chat provider: %s (want openai or gemini)", cfg.Provider)
	}
}
