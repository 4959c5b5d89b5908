package llm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

const (
	defaultOpenAIBaseURL = "https://api.openai.com/v1"
	defaultHTTPTimeout   = 60 * time.Second
)

// OpenAIClient implements StreamingClient for the OpenAI chat completions API
// and every provider that speaks the same protocol.
type OpenAIClient struct {
	client *openai.Client
	name   string
	// modelSuffix is appended to the request model, e.g. ":novita".
	modelSuffix string
}

// OpenAIOptions configures an OpenAI-compatible client.
type OpenAIOptions struct {
	BaseURL    string
	HTTPClient *http.Client
	// Headers are added to every request.
	Headers map[string]string
}

// NewOpenAIClient creates a new OpenAI LLM client.
func NewOpenAIClient(apiKey string, options *OpenAIOptions) (*OpenAIClient, error) {
	return newCompatClient("OpenAI", apiKey, defaultOpenAIBaseURL, options)
}

func newCompatClient(name, apiKey, baseURL string, options *OpenAIOptions) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%s: %w", name, ErrMissingAPIKey)
	}
	if options == nil {
		options = &OpenAIOptions{}
	}

	config := openai.DefaultConfig(apiKey)
	config.BaseURL = strings.TrimRight(baseURL, "/")
	if options.BaseURL != "" {
		config.BaseURL = strings.TrimRight(options.BaseURL, "/")
	}

	httpClient := options.HTTPClient
	if httpClient == nil {
		httpClient = newHTTPClient(defaultHTTPTimeout)
	}
	if len(options.Headers) > 0 {
		copied := *httpClient
		copied.Transport = &headerTransport{base: httpClient.Transport, headers: options.Headers}
		httpClient = &copied
	}
	config.HTTPClient = httpClient

	return &OpenAIClient{
		client: openai.NewClientWithConfig(config),
		name:   name,
	}, nil
}

// Stream implements StreamingClient.
func (c *OpenAIClient) Stream(ctx context.Context, req *Request) (Stream, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	messages := make([]openai.ChatCompletionMessage, len(req.Messages))
	for i, msg := range req.Messages {
		messages[i] = openai.ChatCompletionMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		}
	}

	stream, err := c.client.CreateChatCompletionStream(ctx, openai.ChatCompletionRequest{
		Model:       req.Model + c.modelSuffix,
		Messages:    messages,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
		Stream:      true,
	})
	if err != nil {
		return nil, fmt.Errorf("call %s API: %w", c.name, err)
	}

	return &openAIStream{stream: stream, name: c.name}, nil
}

type openAIStream struct {
	stream *openai.ChatCompletionStream
	name   string
}

// Recv implements Stream.
func (s *openAIStream) Recv() (Chunk, error) {
	for {
		res, err := s.stream.Recv()
		if errors.Is(err, io.EOF) {
			return Chunk{}, io.EOF
		}
		if err != nil {
			return Chunk{}, fmt.Errorf("read %s stream: %w", s.name, err)
		}
		if len(res.Choices) == 0 {
			continue
		}

		choice := res.Choices[0]
		if choice.Delta.Content == "" && choice.FinishReason == "" {
			continue
		}
		return Chunk{
			Content:      choice.Delta.Content,
			FinishReason: string(choice.FinishReason),
		}, nil
	}
}

// Close implements Stream.
func (s *openAIStream) Close() error {
	return s.stream.Close()
}

// headerTransport adds static headers to outgoing requests.
type headerTransport struct {
	base    http.RoundTripper
	headers map[string]string
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	for k, v := range t.headers {
		req.Header.Set(k, v)
	}
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(req)
}
