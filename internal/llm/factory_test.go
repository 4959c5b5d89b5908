package llm

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientProviders(t *testing.T) {
	ctx := context.Background()
	for _, provider := range Providers {
		t.Run(provider, func(t *testing.T) {
			client, err := NewClient(ctx, provider, Options{APIKey: "key"})
			require.NoError(t, err)
			assert.NotNil(t, client)
		})
	}

	_, err := NewClient(ctx, "bogus", Options{APIKey: "key"})
	assert.ErrorIs(t, err, ErrUnknownProvider)

	_, err = NewClient(ctx, "huggingface", Options{})
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestNewHTTPClientBoundsHeadersOnly(t *testing.T) {
	client := newHTTPClient(50 * time.Millisecond)
	assert.Zero(t, client.Timeout)

	transport, ok := client.Transport.(*http.Transport)
	require.True(t, ok)
	assert.Equal(t, 50*time.Millisecond, transport.ResponseHeaderTimeout)
}

func TestNewClientTimeoutAllowsSlowBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: {\"choices\":[{\"index\":0,\"delta\":{\"content\":\"Hello\"}}]}\n\n")
		w.(http.Flusher).Flush()

		// Longer than the header timeout
		time.Sleep(200 * time.Millisecond)
		fmt.Fprint(w, "data: {\"choices\":[{\"index\":0,\"delta\":{\"content\":\" world\"},\"finish_reason\":\"stop\"}]}\n\n")
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer server.Close()

	client, err := NewClient(context.Background(), "openai", Options{
		APIKey:  "key",
		BaseURL: server.URL,
		Timeout: 50 * time.Millisecond,
	})
	require.NoError(t, err)

	content, err := streamAndCollect(t, client, "gpt-4o-mini")
	require.NoError(t, err)
	assert.Equal(t, "Hello world", content)
}

func TestNewClientTimeoutBoundsHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(time.Second):
		case <-r.Context().Done():
		}
	}))
	defer server.Close()

	client, err := NewClient(context.Background(), "openai", Options{
		APIKey:  "key",
		BaseURL: server.URL,
		Timeout: 50 * time.Millisecond,
	})
	require.NoError(t, err)

	_, err = client.Stream(context.Background(), &Request{
		Model:    "gpt-4o-mini",
		Messages: []Message{{Role: RoleUser, Content: "hi"}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timeout awaiting response headers")
}
