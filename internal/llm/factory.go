package llm

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrUnknownProvider is returned by NewClient for unsupported providers.
var ErrUnknownProvider = errors.New("unsupported LLM provider")

// Providers lists the names accepted by NewClient.
var Providers = []string{"huggingface", "openai", "groq", "openrouter", "anthropic", "gemini", "ollama"}

// Options configures the client returned by NewClient.
type Options struct {
	APIKey string
	// BaseURL overrides the provider endpoint. For ollama it is the host.
	BaseURL string
	// InferenceProvider selects the Hugging Face routing target.
	InferenceProvider string
	Timeout           time.Duration
}

// NewClient returns a StreamingClient for the specified provider.
func NewClient(ctx context.Context, provider string, options Options) (StreamingClient, error) {
	timeout := options.Timeout
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	httpClient := newHTTPClient(timeout)
	compat := &OpenAIOptions{BaseURL: options.BaseURL, HTTPClient: httpClient}

	switch provider {
	case "huggingface":
		return NewHuggingFaceClient(options.APIKey, options.InferenceProvider, compat)
	case "openai":
		return NewOpenAIClient(options.APIKey, compat)
	case "groq":
		return NewGroqClient(options.APIKey, compat)
	case "openrouter":
		return NewOpenRouterClient(options.APIKey, compat)
	case "anthropic":
		return NewAnthropicClient(options.APIKey, options.BaseURL, httpClient)
	case "gemini":
		return NewGeminiClient(ctx, options.APIKey, options.BaseURL, httpClient)
	case "ollama":
		// Ollama may load the model before sending headers; only the context bounds it
		return NewOllamaClient(options.BaseURL, nil)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, provider)
	}
}
