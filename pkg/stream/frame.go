package stream

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aretw0/automata/pkg/domain"
)

// ErrMalformedFrame marks a single frame that could not be serialized.
// Nothing was written for it; the stream itself is still usable.
var ErrMalformedFrame = errors.New("malformed frame")

// Frame is one serialized event, ready to be written.
type Frame struct {
	ID    int              `json:"id"`
	Event domain.EventType `json:"event"`
	Data  json.RawMessage  `json:"data"`
}

// NewFrame serializes the payload of ev.
func NewFrame(id int, ev domain.Event) (Frame, error) {
	if ev.Type == "" {
		return Frame{}, fmt.Errorf("%w: event %d has no type", ErrMalformedFrame, id)
	}
	data, err := json.Marshal(ev.Payload())
	if err != nil {
		return Frame{}, fmt.Errorf("%w: %v", ErrMalformedFrame, err)
	}
	return Frame{ID: id, Event: ev.Type, Data: data}, nil
}

// Encoder writes frames to a consumer, one framed record per call.
type Encoder interface {
	Encode(f Frame) error
	ContentType() string
}

type flusher interface {
	Flush()
}

func flush(w any) {
	if f, ok := w.(flusher); ok {
		f.Flush()
	}
}
