package chat

import (
	"context"
	"io"
	"time"

	"go.uber.org/zap"

	"go-hfchat/internal/llm"
)

// Options holds the request settings shared by Ask and Session.
type Options struct {
	Model        string
	MaxTokens    int
	Temperature  float32
	SystemPrompt string
	// HistoryLimit caps the number of turns resent. Zero resends everything.
	HistoryLimit int
	// WrapWidth wraps streamed output. Zero disables wrapping.
	WrapWidth int
	Logger    *zap.Logger
}

func (o *Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

func (o *Options) request(messages []llm.Message) *llm.Request {
	return &llm.Request{
		Model:       o.Model,
		Messages:    messages,
		MaxTokens:   o.MaxTokens,
		Temperature: o.Temperature,
	}
}

// Ask sends a single user prompt and streams the reply to out.
func Ask(ctx context.Context, client llm.StreamingClient, out io.Writer, options Options, prompt string) (string, error) {
	history := NewHistory(options.SystemPrompt, 0)
	history.Append(llm.RoleUser, prompt)
	return stream(ctx, client, out, &options, history.Messages())
}

func stream(ctx context.Context, client llm.StreamingClient, out io.Writer, options *Options, messages []llm.Message) (string, error) {
	logger := options.logger()
	logger.Debug("Sending request",
		zap.String("model", options.Model),
		zap.Int("messages", len(messages)))

	w := out
	var wrapper *WrapWriter
	if options.WrapWidth > 0 {
		wrapper = NewWrapWriter(out, options.WrapWidth)
		w = wrapper
	}

	start := time.Now()
	reply, err := StreamTo(ctx, client, options.request(messages), w)
	if wrapper != nil {
		if flushErr := wrapper.Flush(); err == nil {
			err = flushErr
		}
	}
	if err != nil {
		logger.Warn("Request failed", zap.Error(err), zap.Int("received", len(reply)))
		return reply, err
	}

	logger.Debug("Received response",
		zap.Int("length", len(reply)),
		zap.Duration("duration", time.Since(start)))
	return reply, nil
}

// Session handles interactive chat with conversation memory
type Session struct {
	client  llm.StreamingClient
	out     io.Writer
	options Options
	history *History
}

// NewSession creates a new Session writing replies to out.
func NewSession(client llm.StreamingClient, out io.Writer, options Options) *Session {
	return &Session{
		client:  client,
		out:     out,
		options: options,
		history: NewHistory(options.SystemPrompt, options.HistoryLimit),
	}
}

// History returns the session's conversation history.
func (s *Session) History() *History {
	return s.history
}

// Send appends input as a user turn, streams the reply and records it as an
// assistant turn. On error the user turn is dropped again so that the
// history only holds completed exchanges.
func (s *Session) Send(ctx context.Context, input string) (string, error) {
	n := s.history.Len()
	s.history.Append(llm.RoleUser, input)

	reply, err := stream(ctx, s.client, s.out, &s.options, s.history.Messages())
	if err != nil {
		s.history.truncate(n)
		return "", err
	}

	s.history.Append(llm.RoleAssistant, reply)
	return reply, nil
}
