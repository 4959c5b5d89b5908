// Package llm provides a pluggable interface for streaming LLM providers.
package llm

import (
	"context"
	"errors"
)

// Role identifies the author of a message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message represents a single message in a conversation.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Request describes one chat completion.
type Request struct {
	Model    string
	Messages []Message
	// MaxTokens caps the generated output. Zero leaves it to the provider.
	MaxTokens int
	// Temperature of zero means the provider default.
	Temperature float32
}

// Chunk is one incremental fragment of a streamed response.
type Chunk struct {
	Content string
	// FinishReason is set on the fragment that ends the generation, when the
	// provider reports one.
	FinishReason string
}

// Stream is a lazy sequence of fragments. Recv returns io.EOF after the last
// fragment. Close must be called once the caller is done, even after io.EOF.
type Stream interface {
	Recv() (Chunk, error)
	Close() error
}

// StreamingClient is the common interface implemented by all providers.
type StreamingClient interface {
	// Stream opens a streaming completion for the request.
	Stream(ctx context.Context, req *Request) (Stream, error)
}

var (
	// ErrNoMessages is returned when a request carries no messages.
	ErrNoMessages = errors.New("at least one message must be provided")
	// ErrMissingAPIKey is returned when a provider needs a key and none was given.
	ErrMissingAPIKey = errors.New("api key must be provided")
)

func validateRequest(req *Request) error {
	if req == nil || len(req.Messages) == 0 {
		return ErrNoMessages
	}
	return nil
}
