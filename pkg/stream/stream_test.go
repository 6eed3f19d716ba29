package stream_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aretw0/automata/internal/logging"
	"github.com/aretw0/automata/internal/runtime"
	"github.com/aretw0/automata/internal/testutils"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/stream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func feed(events ...domain.Event) <-chan domain.Event {
	ch := make(chan domain.Event, len(events))
	for _, ev := range events {
		ch <- ev
	}
	close(ch)
	return ch
}

func acceptingEvent() domain.Event {
	return domain.Event{
		Type: domain.EventAcceptingPath,
		Path: &domain.ExecutionPath{
			Steps:      []domain.ExecutionStep{{From: "S0", Symbol: "a", To: "S1"}},
			FinalState: "S1",
			Accepted:   true,
		},
	}
}

func TestSSEEncoder_Frame(t *testing.T) {
	rec := httptest.NewRecorder()
	enc := stream.NewSSEEncoder(rec)

	frame, err := stream.NewFrame(1, acceptingEvent())
	require.NoError(t, err)
	require.NoError(t, enc.Encode(frame))

	expected := "event: accepting_path\nid: 1\ndata: {\"path\":[{\"from\":\"S0\",\"symbol\":\"a\",\"to\":\"S1\"}],\"final_state\":\"S1\"}\n\n"
	assert.Equal(t, expected, rec.Body.String())
	assert.True(t, rec.Flushed)
	assert.Equal(t, "text/event-stream", enc.ContentType())
}

func TestJSONLinesEncoder_Frame(t *testing.T) {
	var buf bytes.Buffer
	enc := stream.NewJSONLinesEncoder(&buf)

	for i, ev := range []domain.Event{acceptingEvent(), {Type: domain.EventEnd}} {
		frame, err := stream.NewFrame(i+1, ev)
		require.NoError(t, err)
		require.NoError(t, enc.Encode(frame))
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var first stream.Frame
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, 1, first.ID)
	assert.Equal(t, domain.EventAcceptingPath, first.Event)
	assert.JSONEq(t, `{"path":[{"from":"S0","symbol":"a","to":"S1"}],"final_state":"S1"}`, string(first.Data))
	assert.JSONEq(t, `{"id":2,"event":"end","data":{}}`, lines[1])
}

func TestNewFrame_RejectsUntypedEvent(t *testing.T) {
	_, err := stream.NewFrame(3, domain.Event{})
	assert.ErrorIs(t, err, stream.ErrMalformedFrame)
}

func TestPump_ExplorerToSSE(t *testing.T) {
	f := testutils.MustFSA(t, testutils.SingleStep())
	events, err := runtime.Explore(context.Background(), f, runtime.Symbols("a"))
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	n, err := stream.Pump(context.Background(), events, stream.NewSSEEncoder(rec), logging.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	body := rec.Body.String()
	order := []string{"event: accepting_path", "event: progress", "event: summary", "event: end"}
	last := -1
	for _, marker := range order {
		idx := strings.Index(body, marker)
		require.Greater(t, idx, last, "%s out of order", marker)
		last = idx
	}
	assert.Contains(t, body, `data: {"accepted":true,"total_paths_explored":1,"depth_limit_reached":false}`)
}

// pickyEncoder refuses to serialize one event type.
type pickyEncoder struct {
	refuse domain.EventType
	frames []stream.Frame
}

func (e *pickyEncoder) ContentType() string { return "test/picky" }

func (e *pickyEncoder) Encode(f stream.Frame) error {
	if f.Event == e.refuse {
		return fmt.Errorf("%w: refused", stream.ErrMalformedFrame)
	}
	e.frames = append(e.frames, f)
	return nil
}

func TestPump_SkipsMalformedFrames(t *testing.T) {
	enc := &pickyEncoder{refuse: domain.EventProgress}
	events := feed(
		acceptingEvent(),
		domain.Event{Type: domain.EventProgress, Progress: &domain.Progress{PathsExplored: 1}},
		domain.Event{Type: domain.EventEnd},
	)

	n, err := stream.Pump(context.Background(), events, enc, logging.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	require.Len(t, enc.frames, 2)
	assert.Equal(t, domain.EventAcceptingPath, enc.frames[0].Event)
	assert.Equal(t, domain.EventEnd, enc.frames[1].Event)
	assert.Equal(t, 3, enc.frames[1].ID, "ids follow the event sequence")
}

// brokenWriter accepts a fixed number of writes, then fails.
type brokenWriter struct {
	budget int
	buf    bytes.Buffer
}

func (w *brokenWriter) Write(p []byte) (int, error) {
	if w.budget == 0 {
		return 0, errors.New("connection reset")
	}
	w.budget--
	return w.buf.Write(p)
}

func TestPump_StreamFault(t *testing.T) {
	w := &brokenWriter{budget: 1}
	events := feed(acceptingEvent(), acceptingEvent(), domain.Event{Type: domain.EventEnd})

	n, err := stream.Pump(context.Background(), events, stream.NewSSEEncoder(w), logging.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
	assert.Equal(t, 1, n)

	// The frame flushed before the fault is intact.
	assert.True(t, strings.HasPrefix(w.buf.String(), "event: accepting_path\nid: 1\n"))
	assert.True(t, strings.HasSuffix(w.buf.String(), "\n\n"))
}

func TestPump_StreamFaultReportsErrorFrame(t *testing.T) {
	enc := &faultOnce{}
	events := feed(acceptingEvent(), domain.Event{Type: domain.EventEnd})

	_, err := stream.Pump(context.Background(), events, enc, logging.NewNop())
	require.Error(t, err)
	require.Len(t, enc.frames, 1)
	assert.Equal(t, domain.EventError, enc.frames[0].Event)
	assert.Contains(t, string(enc.frames[0].Data), "stream fault")
}

// faultOnce fails the first frame and accepts the rest.
type faultOnce struct {
	failed bool
	frames []stream.Frame
}

func (e *faultOnce) ContentType() string { return "test/fault" }

func (e *faultOnce) Encode(f stream.Frame) error {
	if !e.failed {
		e.failed = true
		return errors.New("write timeout")
	}
	e.frames = append(e.frames, f)
	return nil
}

func TestPump_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	events := make(chan domain.Event)
	n, err := stream.Pump(ctx, events, stream.NewJSONLinesEncoder(&bytes.Buffer{}), logging.NewNop())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, n)
}
