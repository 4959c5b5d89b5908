package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeminiStream(t *testing.T) {
	var captured capturedRequest
	var query string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.Path = r.URL.Path
		captured.Header = r.Header.Clone()
		query = r.URL.Query().Get("alt")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&captured.Payload))

		w.Header().Set("Content-Type", "text/event-stream")
		for _, event := range []string{
			`{"candidates":[{"content":{"role":"model","parts":[{"text":"Hel"}]},"index":0}]}`,
			`{"candidates":[{"content":{"role":"model","parts":[{"text":""}]},"index":0}]}`,
			`{"candidates":[{"content":{"role":"model","parts":[{"text":"lo"}]},"finishReason":"STOP","index":0}]}`,
		} {
			fmt.Fprintf(w, "data: %s\n\n", event)
		}
	}))
	defer server.Close()

	client, err := NewGeminiClient(context.Background(), "gm-key", server.URL, nil)
	require.NoError(t, err)

	stream, err := client.Stream(context.Background(), &Request{
		Model: "gemini-2.0-flash",
		Messages: []Message{
			{Role: RoleSystem, Content: "Be brief."},
			{Role: RoleUser, Content: "Hi"},
		},
		MaxTokens: 500,
	})
	require.NoError(t, err)
	defer stream.Close()

	var chunks []Chunk
	for {
		chunk, err := stream.Recv()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		chunks = append(chunks, chunk)
	}

	assert.Equal(t, []Chunk{
		{Content: "Hel"},
		{Content: "lo", FinishReason: "STOP"},
	}, chunks)

	assert.Equal(t, "/v1beta/models/gemini-2.0-flash:streamGenerateContent", captured.Path)
	assert.Equal(t, "sse", query)
	assert.Equal(t, "gm-key", captured.Header.Get("x-goog-api-key"))

	generationConfig, ok := captured.Payload["generationConfig"].(map[string]any)
	require.True(t, ok, "generationConfig missing from %v", captured.Payload)
	assert.EqualValues(t, 500, generationConfig["maxOutputTokens"])

	systemInstruction, ok := captured.Payload["systemInstruction"].(map[string]any)
	require.True(t, ok, "systemInstruction missing from %v", captured.Payload)
	assert.Equal(t, []any{map[string]any{"text": "Be brief."}}, systemInstruction["parts"])

	contents, ok := captured.Payload["contents"].([]any)
	require.True(t, ok)
	assert.Len(t, contents, 1)
}

func TestGeminiStreamErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error":{"code":400,"message":"API key not valid.","status":"INVALID_ARGUMENT"}}`)
	}))
	defer server.Close()

	client, err := NewGeminiClient(context.Background(), "bad", server.URL, nil)
	require.NoError(t, err)

	stream, err := client.Stream(context.Background(), &Request{
		Model:    "gemini-2.0-flash",
		Messages: []Message{{Role: RoleUser, Content: "Hi"}},
	})
	require.NoError(t, err)

	_, err = Collect(stream)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key not valid.")
}

func TestGeminiContents(t *testing.T) {
	contents, system := geminiContents([]Message{
		{Role: RoleSystem, Content: "Be brief."},
		{Role: RoleUser, Content: "Hi"},
		{Role: RoleAssistant, Content: "Hello"},
		{Role: RoleUser, Content: "Bye"},
	})

	require.NotNil(t, system)
	assert.Equal(t, "Be brief.", system.Parts[0].Text)

	require.Len(t, contents, 3)
	assert.Equal(t, "user", contents[0].Role)
	assert.Equal(t, "model", contents[1].Role)
	assert.Equal(t, "Hello", contents[1].Parts[0].Text)
	assert.Equal(t, "user", contents[2].Role)
}
