package llm

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/packages/ssestream"
)

// The Messages API requires max_tokens.
const defaultAnthropicMaxTokens = 1024

// AnthropicClient implements StreamingClient for the Anthropic Claude API.
type AnthropicClient struct {
	client anthropic.Client
}

// NewAnthropicClient creates a new Anthropic LLM client. An empty baseURL
// uses the public API.
func NewAnthropicClient(apiKey, baseURL string, httpClient *http.Client) (*AnthropicClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Anthropic: %w", ErrMissingAPIKey)
	}
	if httpClient == nil {
		httpClient = newHTTPClient(defaultHTTPTimeout)
	}

	options := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(httpClient),
		// Failed requests are reported, not retried
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		options = append(options, option.WithBaseURL(baseURL))
	}

	return &AnthropicClient{client: anthropic.NewClient(options...)}, nil
}

// anthropicParams converts the request. Anthropic takes the system prompt
// separately from the messages.
func anthropicParams(req *Request) anthropic.MessageNewParams {
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultAnthropicMaxTokens
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(req.Model),
		MaxTokens: int64(maxTokens),
	}
	if req.Temperature > 0 {
		params.Temperature = anthropic.Float(float64(req.Temperature))
	}

	for _, msg := range req.Messages {
		switch msg.Role {
		case RoleSystem:
			params.System = []anthropic.TextBlockParam{{Text: msg.Content}}
		case RoleAssistant:
			params.Messages = append(params.Messages, anthropic.NewAssistantMessage(anthropic.NewTextBlock(msg.Content)))
		default:
			params.Messages = append(params.Messages, anthropic.NewUserMessage(anthropic.NewTextBlock(msg.Content)))
		}
	}
	return params
}

// Stream implements StreamingClient.
func (c *AnthropicClient) Stream(ctx context.Context, req *Request) (Stream, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	stream := c.client.Messages.NewStreaming(ctx, anthropicParams(req))
	return &anthropicStream{stream: stream}, nil
}

type anthropicStream struct {
	stream *ssestream.Stream[anthropic.MessageStreamEventUnion]
	done   bool
}

// Recv implements Stream.
func (s *anthropicStream) Recv() (Chunk, error) {
	if s.done {
		return Chunk{}, io.EOF
	}

	for s.stream.Next() {
		switch event := s.stream.Current().AsAny().(type) {
		case anthropic.ContentBlockDeltaEvent:
			if event.Delta.Type == "text_delta" && event.Delta.Text != "" {
				return Chunk{Content: event.Delta.Text}, nil
			}
		case anthropic.MessageDeltaEvent:
			if event.Delta.StopReason != "" {
				return Chunk{FinishReason: string(event.Delta.StopReason)}, nil
			}
		case anthropic.MessageStopEvent:
			s.done = true
			return Chunk{}, io.EOF
		}
	}
	if err := s.stream.Err(); err != nil {
		return Chunk{}, fmt.Errorf("read Anthropic stream: %w", err)
	}
	s.done = true
	return Chunk{}, io.EOF
}

// Close implements Stream.
func (s *anthropicStream) Close() error {
	return s.stream.Close()
}
