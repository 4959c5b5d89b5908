// Package chat implements the one-shot and interactive chat flows on top of
// a streaming LLM client.
package chat

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go-hfchat/internal/llm"
)

// StreamTo opens a streamed completion and writes every fragment to w as it
// arrives. It returns the full text received, which is partial on error.
func StreamTo(ctx context.Context, client llm.StreamingClient, req *llm.Request, w io.Writer) (string, error) {
	stream, err := client.Stream(ctx, req)
	if err != nil {
		return "", err
	}
	defer stream.Close()

	var builder strings.Builder
	for {
		chunk, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return builder.String(), nil
		}
		if err != nil {
			return builder.String(), err
		}
		if chunk.Content == "" {
			continue
		}

		builder.WriteString(chunk.Content)
		if _, err := io.WriteString(w, chunk.Content); err != nil {
			return builder.String(), fmt.Errorf("write output: %w", err)
		}
	}
}
