package chat

import (
	"context"
	"io"
	"os"
	"testing"

	"github.com/fatih/color"

	"go-hfchat/internal/llm"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

// fakeClient replays scripted replies, one per Stream call.
type fakeClient struct {
	replies  [][]string
	errs     []error
	requests []llm.Request
}

func (f *fakeClient) Stream(ctx context.Context, req *llm.Request) (llm.Stream, error) {
	i := len(f.requests)
	copied := *req
	copied.Messages = append([]llm.Message(nil), req.Messages...)
	f.requests = append(f.requests, copied)

	var fragments []string
	if i < len(f.replies) {
		fragments = f.replies[i]
	}
	var err error
	if i < len(f.errs) {
		err = f.errs[i]
	}
	return &fakeStream{fragments: fragments, err: err}, nil
}

// fakeStream yields its fragments, then err or io.EOF.
type fakeStream struct {
	fragments []string
	err       error
	closed    bool
}

func (s *fakeStream) Recv() (llm.Chunk, error) {
	if len(s.fragments) > 0 {
		fragment := s.fragments[0]
		s.fragments = s.fragments[1:]
		return llm.Chunk{Content: fragment}, nil
	}
	if s.err != nil {
		return llm.Chunk{}, s.err
	}
	return llm.Chunk{FinishReason: "stop"}, io.EOF
}

func (s *fakeStream) Close() error {
	s.closed = true
	return nil
}
