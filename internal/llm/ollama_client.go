package llm

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	ollama "github.com/ollama/ollama/api"
)

const defaultOllamaHost = "http://localhost:11434"

var _ StreamingClient = (*OllamaClient)(nil)

// OllamaClient implements StreamingClient for a local or remote Ollama server.
type OllamaClient struct {
	client    *ollama.Client
	keepAlive time.Duration
}

// OllamaOptions configures an OllamaClient. KeepAlive controls how long the
// server keeps the model loaded after a request; zero leaves the server
// default.
type OllamaOptions struct {
	KeepAlive  time.Duration
	HTTPClient *http.Client
}

// NewOllamaClient creates a client for the Ollama server at host. An empty
// host means the default local server.
func NewOllamaClient(host string, options *OllamaOptions) (*OllamaClient, error) {
	if host == "" {
		host = defaultOllamaHost
	}
	if !strings.Contains(host, "://") {
		host = "http://" + host
	}
	base, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("parse ollama host: %w", err)
	}

	httpClient := &http.Client{}
	keepAlive := time.Duration(0)
	if options != nil {
		keepAlive = options.KeepAlive
		if options.HTTPClient != nil {
			httpClient = options.HTTPClient
		}
	}

	return &OllamaClient{
		client:    ollama.NewClient(base, httpClient),
		keepAlive: keepAlive,
	}, nil
}

// Stream implements StreamingClient.
func (c *OllamaClient) Stream(ctx context.Context, req *Request) (Stream, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	messages := make([]ollama.Message, len(req.Messages))
	for i, m := range req.Messages {
		messages[i] = ollama.Message{
			Role:    string(m.Role),
			Content: m.Content,
		}
	}

	options := map[string]any{}
	if req.MaxTokens > 0 {
		options["num_predict"] = req.MaxTokens
	}
	if req.Temperature > 0 {
		options["temperature"] = req.Temperature
	}

	stream := true
	chatReq := &ollama.ChatRequest{
		Model:    req.Model,
		Messages: messages,
		Stream:   &stream,
		Options:  options,
	}
	if c.keepAlive > 0 {
		chatReq.KeepAlive = &ollama.Duration{Duration: c.keepAlive}
	}

	return newChanStream(ctx, func(ctx context.Context, emit func(Chunk) error) error {
		err := c.client.Chat(ctx, chatReq, func(res ollama.ChatResponse) error {
			chunk := Chunk{Content: res.Message.Content}
			if res.Done {
				chunk.FinishReason = res.DoneReason
				if chunk.FinishReason == "" {
					chunk.FinishReason = "stop"
				}
			}
			if chunk.Content == "" && chunk.FinishReason == "" {
				return nil
			}
			return emit(chunk)
		})
		if err != nil {
			return fmt.Errorf("call Ollama API: %w", err)
		}
		// A cancelled body read ends the scan without an error
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("call Ollama API: %w", err)
		}
		return nil
	}), nil
}
