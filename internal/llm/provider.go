package llm

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// TimeoutLLMCall bounds a single generation request.
const TimeoutLLMCall = 60 * time.Second

// Domain errors for the LLM package.
var (
	ErrUnknownProvider = errors.New("unknown provider")
	ErrEmptyResponse   = errors.New("provider returned no content")
)

// Provider is the interface all text-generation providers implement.
type Provider interface {
	// Name returns the provider identifier (e.g. "ollama", "openai").
	Name() string
	// Generate sends a completion request and returns the raw response.
	Generate(ctx context.Context, req *Request) (*Response, error)
}

// Request represents a single-shot generation request.
type Request struct {
	Model  string
	Prompt string
}

// Response represents a generation response.
type Response struct {
	Content      string
	InputTokens  int
	OutputTokens int
	Model        string
}

// ProviderConfig holds the settings needed to construct a provider.
type ProviderConfig struct {
	Provider string // "ollama" or "openai"
	BaseURL  string // ollama base URL, or openai-compatible base URL override
	APIKey   string // openai only
}

// NewProvider resolves a ProviderConfig to a concrete Provider.
func NewProvider(cfg ProviderConfig) (Provider, error) {
	switch cfg.Provider {
	case "", "ollama":
		return NewOllamaProvider(cfg.BaseURL), nil
	case "openai":
		if cfg.BaseURL != "" {
			return NewOpenAIProviderWithBaseURL(cfg.APIKey, cfg.BaseURL), nil
		}
		return NewOpenAIProvider(cfg.APIKey), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, cfg.Provider)
	}
}
