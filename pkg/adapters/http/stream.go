package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/pkg/schema"
	"github.com/aretw0/automata/pkg/stream"
)

const sessionHeader = "X-Session-Id"

// SimulateStream handles the POST /simulate/stream request.
//
// The exploration runs under a registered session. A client disconnect, a
// DELETE /sessions/{id} or a transport failure all cancel the session, which
// stops the explorer and releases its state.
func (s *Server) SimulateStream(w http.ResponseWriter, r *http.Request) {
	if _, ok := w.(http.Flusher); !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.logger.Error("SimulateStream: Streaming not supported")
		return
	}

	var req ExploreRequest
	f, ok := s.load(w, r, &req, func() schema.FSA { return req.FSA })
	if !ok {
		return
	}

	sess := s.Sessions.Start(r.Context())
	defer s.Sessions.Complete(sess.ID)

	events, err := s.Engine.Explore(sess.Context(), f, req.Input, automata.ExploreOptions{
		MaxDepth:  req.MaxDepth,
		SessionID: sess.ID,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	enc := encoderFor(w, r)
	w.Header().Set("Content-Type", enc.ContentType())
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set(sessionHeader, sess.ID)
	w.WriteHeader(http.StatusOK)

	n, err := stream.Pump(sess.Context(), events, enc, s.logger)
	switch {
	case err == nil:
		s.logger.Debug("Stream finished", "session_id", sess.ID, "frames", n)
	case errors.Is(err, sess.Context().Err()):
		s.logger.Info("Stream cancelled", "session_id", sess.ID, "frames", n)
	default:
		s.logger.Warn("Stream fault", "session_id", sess.ID, "frames", n, "error", err)
	}
}

// encoderFor picks JSON Lines when asked for, SSE otherwise.
func encoderFor(w http.ResponseWriter, r *http.Request) stream.Encoder {
	if r.URL.Query().Get("format") == "jsonl" || strings.Contains(r.Header.Get("Accept"), "application/x-ndjson") {
		return stream.NewJSONLinesEncoder(w)
	}
	return stream.NewSSEEncoder(w)
}
