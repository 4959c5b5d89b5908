package llm

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChanStreamDeliversInOrder(t *testing.T) {
	stream := newChanStream(context.Background(), func(ctx context.Context, emit func(Chunk) error) error {
		for _, s := range []string{"a", "b", "c"} {
			if err := emit(Chunk{Content: s}); err != nil {
				return err
			}
		}
		return nil
	})

	content, err := Collect(stream)
	require.NoError(t, err)
	assert.Equal(t, "abc", content)

	// Recv keeps returning io.EOF once the stream is exhausted
	_, err = stream.Recv()
	assert.ErrorIs(t, err, io.EOF)
}

func TestChanStreamProducerError(t *testing.T) {
	boom := errors.New("boom")
	stream := newChanStream(context.Background(), func(ctx context.Context, emit func(Chunk) error) error {
		if err := emit(Chunk{Content: "partial"}); err != nil {
			return err
		}
		return boom
	})

	content, err := Collect(stream)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "partial", content)
}

func TestChanStreamCloseStopsProducer(t *testing.T) {
	stopped := make(chan error, 1)
	stream := newChanStream(context.Background(), func(ctx context.Context, emit func(Chunk) error) error {
		for {
			if err := emit(Chunk{Content: "x"}); err != nil {
				stopped <- err
				return err
			}
		}
	})

	chunk, err := stream.Recv()
	require.NoError(t, err)
	assert.Equal(t, "x", chunk.Content)

	require.NoError(t, stream.Close())
	assert.ErrorIs(t, <-stopped, context.Canceled)
}
