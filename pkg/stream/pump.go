package stream

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/automata/pkg/domain"
)

// Pump writes every event received on events to enc, in order, until the channel
// is closed or ctx is done. It returns the number of frames written.
//
// Frames that cannot be serialized are logged and skipped. Any other encoder
// failure is a stream fault: Pump makes one attempt to deliver an error frame and
// returns the wrapped error. The caller is expected to cancel the producer then.
func Pump(ctx context.Context, events <-chan domain.Event, enc Encoder, logger *slog.Logger) (int, error) {
	written := 0
	seq := 0
	for {
		var (
			ev domain.Event
			ok bool
		)
		select {
		case <-ctx.Done():
			return written, ctx.Err()
		case ev, ok = <-events:
			if !ok {
				return written, nil
			}
		}

		seq++
		frame, err := NewFrame(seq, ev)
		if err == nil {
			err = enc.Encode(frame)
		}
		switch {
		case err == nil:
			written++
		case errors.Is(err, ErrMalformedFrame):
			logger.Warn("skipping malformed frame", "id", seq, "event", ev.Type, "err", err)
		default:
			fault := domain.Event{Type: domain.EventError, Message: fmt.Sprintf("stream fault: %v", err)}
			if f, ferr := NewFrame(seq+1, fault); ferr == nil {
				_ = enc.Encode(f)
			}
			return written, fmt.Errorf("stream fault: %w", err)
		}
	}
}
