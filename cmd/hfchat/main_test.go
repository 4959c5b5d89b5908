package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatResendsConversation(t *testing.T) {
	color.NoColor = true

	var seen []int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Messages []json.RawMessage `json:"messages"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		seen = append(seen, len(payload.Messages))

		fmt.Fprintf(w, "data: {\"choices\":[{\"index\":0,\"delta\":{\"content\":\"reply %d\"}}]}\n\n", len(seen))
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer server.Close()

	t.Chdir(t.TempDir())
	t.Setenv("CHAT_PROVIDER", "openai")
	t.Setenv("CHAT_MODEL", "gpt-4o-mini")
	t.Setenv("CHAT_BASE_URL", server.URL)
	t.Setenv("OPENAI_API_KEY", "sk-test")

	var out strings.Builder
	cmd := newRootCmd()
	cmd.SetIn(strings.NewReader("hi\nand again\nclear\nfresh\nexit\n"))
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--system", "Be brief."})
	require.NoError(t, cmd.Execute())

	// system + user, then system + user + assistant + user, then reset
	assert.Equal(t, []int{2, 4, 2}, seen)
	assert.Contains(t, out.String(), "Bot: reply 1")
	assert.Contains(t, out.String(), "Bot: reply 3")
}
