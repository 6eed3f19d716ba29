package stream

import (
	"bytes"
	"fmt"
	"io"
)

// SSEEncoder frames events as Server-Sent Events.
type SSEEncoder struct {
	w io.Writer
}

// NewSSEEncoder wraps w. When w is an http.Flusher every frame is flushed.
func NewSSEEncoder(w io.Writer) *SSEEncoder {
	return &SSEEncoder{w: w}
}

func (e *SSEEncoder) ContentType() string {
	return "text/event-stream"
}

// Encode writes the whole frame with a single Write, so a failure can never leave
// a partial record behind a frame that was already flushed.
func (e *SSEEncoder) Encode(f Frame) error {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "event: %s\nid: %d\ndata: %s\n\n", f.Event, f.ID, f.Data)
	if _, err := e.w.Write(buf.Bytes()); err != nil {
		return err
	}
	flush(e.w)
	return nil
}
