package llm

import (
	"context"
	"fmt"
	"io"
	"iter"
	"net/http"

	"google.golang.org/genai"
)

// GeminiClient implements StreamingClient for the Google Gemini API.
type GeminiClient struct {
	client *genai.Client
}

// NewGeminiClient creates a new Google Gemini LLM client.
func NewGeminiClient(ctx context.Context, apiKey, baseURL string, httpClient *http.Client) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini: %w", ErrMissingAPIKey)
	}
	if httpClient == nil {
		httpClient = newHTTPClient(defaultHTTPTimeout)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  httpClient,
		HTTPOptions: genai.HTTPOptions{BaseURL: baseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &GeminiClient{client: client}, nil
}

// geminiContents converts messages to Gemini contents. The system prompt is
// returned separately; assistant turns use the "model" role.
func geminiContents(messages []Message) ([]*genai.Content, *genai.Content) {
	var contents []*genai.Content
	var systemInstruction *genai.Content

	for _, msg := range messages {
		switch msg.Role {
		case RoleSystem:
			systemInstruction = genai.NewContentFromText(msg.Content, genai.RoleUser)
		case RoleAssistant:
			contents = append(contents, genai.NewContentFromText(msg.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(msg.Content, genai.RoleUser))
		}
	}
	return contents, systemInstruction
}

// Stream implements StreamingClient.
func (c *GeminiClient) Stream(ctx context.Context, req *Request) (Stream, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	contents, systemInstruction := geminiContents(req.Messages)
	config := &genai.GenerateContentConfig{
		SystemInstruction: systemInstruction,
	}
	if req.MaxTokens > 0 {
		config.MaxOutputTokens = int32(req.MaxTokens)
	}
	if req.Temperature > 0 {
		config.Temperature = genai.Ptr(req.Temperature)
	}

	seq := c.client.Models.GenerateContentStream(ctx, req.Model, contents, config)
	next, stop := iter.Pull2(seq)
	return &geminiStream{ctx: ctx, next: next, stop: stop}, nil
}

type geminiStream struct {
	ctx  context.Context
	next func() (*genai.GenerateContentResponse, error, bool)
	stop func()
}

// Recv implements Stream.
func (s *geminiStream) Recv() (Chunk, error) {
	for {
		resp, err, ok := s.next()
		if !ok {
			// The SDK ends the sequence quietly when the body read fails
			if err := s.ctx.Err(); err != nil {
				return Chunk{}, fmt.Errorf("read Gemini stream: %w", err)
			}
			return Chunk{}, io.EOF
		}
		if err != nil {
			return Chunk{}, fmt.Errorf("read Gemini stream: %w", err)
		}

		chunk := Chunk{Content: resp.Text()}
		if len(resp.Candidates) > 0 {
			chunk.FinishReason = string(resp.Candidates[0].FinishReason)
		}
		if chunk.Content == "" && chunk.FinishReason == "" {
			continue
		}
		return chunk, nil
	}
}

// Close implements Stream.
func (s *geminiStream) Close() error {
	s.stop()
	return nil
}
