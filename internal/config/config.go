// Package config loads settings for the chat programs from defaults, an
// optional YAML file, a .env file and the environment.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"go-hfchat/internal/llm"
)

const (
	DefaultProvider  = "huggingface"
	DefaultModel     = "meta-llama/Llama-3.1-8B-Instruct"
	DefaultMaxTokens = 500
	DefaultPrompt    = "How can I learn English easily?"
)

var (
	ErrUnknownProvider = llm.ErrUnknownProvider
	ErrMissingAPIKey   = llm.ErrMissingAPIKey
)

// Config holds all configuration values
type Config struct {
	Provider          string `yaml:"provider" env:"CHAT_PROVIDER"`
	Model             string `yaml:"model" env:"CHAT_MODEL"`
	InferenceProvider string `yaml:"inferenceProvider" env:"CHAT_INFERENCE_PROVIDER"`
	BaseURL           string `yaml:"baseUrl,omitempty" env:"CHAT_BASE_URL"`

	MaxTokens    int     `yaml:"maxTokens" env:"CHAT_MAX_TOKENS"`
	Temperature  float32 `yaml:"temperature,omitempty" env:"CHAT_TEMPERATURE"`
	SystemPrompt string  `yaml:"systemPrompt,omitempty" env:"CHAT_SYSTEM_PROMPT"`

	// HistoryLimit caps how many past turns are resent. Zero resends all.
	HistoryLimit int `yaml:"historyLimit" env:"CHAT_HISTORY_LIMIT"`
	// WrapWidth wraps streamed output at the given column. Zero disables it.
	WrapWidth int           `yaml:"wrapWidth" env:"CHAT_WRAP_WIDTH"`
	Timeout   time.Duration `yaml:"timeout" env:"CHAT_TIMEOUT"`
	LogLevel  string        `yaml:"logLevel" env:"CHAT_LOG_LEVEL"`

	// Credentials are only read from the environment
	HFAPIKey         string `yaml:"-" env:"HF_API_KEY"`
	OpenAIAPIKey     string `yaml:"-" env:"OPENAI_API_KEY"`
	GroqAPIKey       string `yaml:"-" env:"GROQ_API_KEY"`
	OpenRouterAPIKey string `yaml:"-" env:"OPENROUTER_API_KEY"`
	AnthropicAPIKey  string `yaml:"-" env:"ANTHROPIC_API_KEY"`
	GeminiAPIKey     string `yaml:"-" env:"GEMINI_API_KEY"`
	OllamaHost       string `yaml:"-" env:"OLLAMA_HOST"`
}

// DefaultConfig returns the default config.
func DefaultConfig() *Config {
	return &Config{
		Provider:          DefaultProvider,
		Model:             DefaultModel,
		InferenceProvider: llm.DefaultInferenceProvider,
		MaxTokens:         DefaultMaxTokens,
		Timeout:           2 * time.Minute,
		LogLevel:          "warn",
	}
}

// Load builds the config. path may be empty, in which case no file is read.
// A missing .env file is not an error.
func Load(path string) (*Config, error) {
	config := DefaultConfig()

	if path != "" {
		if err := config.ReadFile(path); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	// Load .env file if it exists
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	if err := config.PopulateFromEnvironment(); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	return config, nil
}

// ReadFile merges the YAML file at path into the config. Unknown fields are
// rejected.
func (c *Config) ReadFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// PopulateFromEnvironment populates the config with values from environment
// variables.
func (c *Config) PopulateFromEnvironment() error {
	return env.Parse(c)
}

// APIKey returns the credential for the configured provider. For ollama it
// is empty.
func (c *Config) APIKey() string {
	switch c.Provider {
	case "huggingface":
		return c.HFAPIKey
	case "openai":
		return c.OpenAIAPIKey
	case "groq":
		return c.GroqAPIKey
	case "openrouter":
		return c.OpenRouterAPIKey
	case "anthropic":
		return c.AnthropicAPIKey
	case "gemini":
		return c.GeminiAPIKey
	}
	return ""
}

// APIKeyVariable names the environment variable holding the credential for
// the configured provider.
func (c *Config) APIKeyVariable() string {
	switch c.Provider {
	case "huggingface":
		return "HF_API_KEY"
	case "openai":
		return "OPENAI_API_KEY"
	case "groq":
		return "GROQ_API_KEY"
	case "openrouter":
		return "OPENROUTER_API_KEY"
	case "anthropic":
		return "ANTHROPIC_API_KEY"
	case "gemini":
		return "GEMINI_API_KEY"
	}
	return ""
}

// Validate checks that the config can be used to build a client.
func (c *Config) Validate() error {
	if !slices.Contains(llm.Providers, c.Provider) {
		return fmt.Errorf("%w: %q", ErrUnknownProvider, c.Provider)
	}
	if c.Model == "" {
		return errors.New("model must be set")
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("max tokens must be positive, got %d", c.MaxTokens)
	}
	if c.HistoryLimit < 0 {
		return fmt.Errorf("history limit must not be negative, got %d", c.HistoryLimit)
	}
	if c.WrapWidth < 0 {
		return fmt.Errorf("wrap width must not be negative, got %d", c.WrapWidth)
	}
	if variable := c.APIKeyVariable(); variable != "" && c.APIKey() == "" {
		return fmt.Errorf("%w: %s environment variable is required", ErrMissingAPIKey, variable)
	}
	return nil
}

// ClientOptions returns the options for llm.NewClient.
func (c *Config) ClientOptions() llm.Options {
	options := llm.Options{
		APIKey:            c.APIKey(),
		BaseURL:           c.BaseURL,
		InferenceProvider: c.InferenceProvider,
		Timeout:           c.Timeout,
	}
	if c.Provider == "ollama" && options.BaseURL == "" {
		options.BaseURL = c.OllamaHost
	}
	return options
}
