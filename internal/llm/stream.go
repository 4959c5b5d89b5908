package llm

import (
	"context"
	"errors"
	"io"
	"strings"
)

// Collect drains the stream and returns the concatenated content. The stream
// is closed before returning.
func Collect(stream Stream) (string, error) {
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
		builder.WriteString(chunk.Content)
	}
}

// chanStream adapts callback based producers to Stream. The producer runs in
// its own goroutine and is cancelled by Close.
type chanStream struct {
	chunks <-chan Chunk
	errc   <-chan error
	cancel context.CancelFunc
	err    error
}

// newChanStream starts produce in a goroutine. produce must stop sending once
// ctx is done.
func newChanStream(ctx context.Context, produce func(ctx context.Context, emit func(Chunk) error) error) *chanStream {
	ctx, cancel := context.WithCancel(ctx)
	chunks := make(chan Chunk)
	errc := make(chan error, 1)

	go func() {
		defer close(chunks)
		errc <- produce(ctx, func(c Chunk) error {
			select {
			case chunks <- c:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	}()

	return &chanStream{chunks: chunks, errc: errc, cancel: cancel}
}

// Recv implements Stream.
func (s *chanStream) Recv() (Chunk, error) {
	if s.err != nil {
		return Chunk{}, s.err
	}
	chunk, ok := <-s.chunks
	if ok {
		return chunk, nil
	}
	if err := <-s.errc; err != nil {
		s.err = err
	} else {
		s.err = io.EOF
	}
	return Chunk{}, s.err
}

// Close implements Stream.
func (s *chanStream) Close() error {
	s.cancel()
	// Drain so the producer goroutine can exit.
	for range s.chunks {
	}
	return nil
}
