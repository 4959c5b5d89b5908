package chat

import (
	"bytes"
	"io"

	"github.com/muesli/reflow/wordwrap"
)

// WrapWriter word-wraps text written to it at a fixed width. Output is line
// buffered: a line is wrapped and forwarded once its newline arrives, the
// remainder on Flush.
type WrapWriter struct {
	w     io.Writer
	width int
	buf   bytes.Buffer
}

// NewWrapWriter returns a WrapWriter forwarding to w. Call Flush once the
// text is complete.
func NewWrapWriter(w io.Writer, width int) *WrapWriter {
	return &WrapWriter{w: w, width: width}
}

// Write implements io.Writer.
func (w *WrapWriter) Write(p []byte) (int, error) {
	w.buf.Write(p)
	for {
		i := bytes.IndexByte(w.buf.Bytes(), '\n')
		if i < 0 {
			return len(p), nil
		}
		line := string(w.buf.Next(i + 1))
		if _, err := io.WriteString(w.w, wordwrap.String(line, w.width)); err != nil {
			return len(p), err
		}
	}
}

// Flush forwards any buffered partial line.
func (w *WrapWriter) Flush() error {
	if w.buf.Len() == 0 {
		return nil
	}
	line := w.buf.String()
	w.buf.Reset()
	_, err := io.WriteString(w.w, wordwrap.String(line, w.width))
	return err
}
